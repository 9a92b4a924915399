package handler_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"testing"

	"github.com/mars1-events-planning/eventool-backend/config"
	"github.com/mars1-events-planning/eventool-backend/internal/auth"
	"github.com/mars1-events-planning/eventool-backend/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

var (
	InvalidJSON = `{"invalid": json}`
)

func newTokenService() auth.TokenService {
	return auth.NewTokenService(config.LoadTestConfig().JWT)
}

// issueToken 以測試設定簽發 token
func issueToken(t *testing.T, organizerID uuid.UUID) string {
	t.Helper()
	token, err := newTokenService().Issue(&model.Organizer{ID: organizerID})
	require.NoError(t, err)
	return token
}

// create JSON request body
func createJSONRequest(data interface{}) *bytes.Buffer {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return bytes.NewBuffer([]byte(""))
	}
	return bytes.NewBuffer(jsonData)
}

// create HTTP request with JSON body
func createJSONHTTPRequest(method, url string, data interface{}) *http.Request {
	req, err := http.NewRequest(method, url, createJSONRequest(data))
	if err != nil {
		return nil
	}
	req.Header.Set("Content-Type", "application/json")
	return req
}

// createUploadRequest 建立帶有 file 欄位的 multipart 請求
func createUploadRequest(t *testing.T, url, fileName, contentType, token string) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if fileName != "" {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", `form-data; name="file"; filename="`+fileName+`"`)
		header.Set("Content-Type", contentType)
		part, err := writer.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write([]byte("\x89PNG\r\n\x1a\nfake"))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req, err := http.NewRequest(http.MethodPost, url, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}
