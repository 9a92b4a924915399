package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/mars1-events-planning/eventool-backend/pkg/logger"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// ImageStorage 上傳檔案並回傳公開 URL
type ImageStorage interface {
	Upload(ctx context.Context, body io.Reader, size int64, contentType, key string) (string, error)
}

// ObjectPutter minio.Client 中上傳所需的部分
type ObjectPutter interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

type MinioImageStorage struct {
	client  ObjectPutter
	bucket  string
	baseURL string
}

// NewMinioImageStorage 公開 URL 為 {scheme}://{endpoint}/{bucket}/{key}
func NewMinioImageStorage(client ObjectPutter, bucket, endpoint string, useSSL bool) ImageStorage {
	scheme := "http"
	if useSSL {
		scheme = "https"
	}
	return &MinioImageStorage{
		client:  client,
		bucket:  bucket,
		baseURL: fmt.Sprintf("%s://%s", scheme, endpoint),
	}
}

func (s *MinioImageStorage) Upload(ctx context.Context, body io.Reader, size int64, contentType, key string) (string, error) {
	log := logger.WithComponent("storage").With(zap.String("key", key))

	_, err := s.client.PutObject(ctx, s.bucket, key, body, size, minio.PutObjectOptions{
		ContentType:  contentType,
		UserMetadata: map[string]string{"x-amz-acl": "public-read"},
	})
	if err != nil {
		log.Error("Failed to upload object", zap.Error(err))
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}

	publicURL, err := url.JoinPath(s.baseURL, s.bucket, key)
	if err != nil {
		return "", err
	}
	log.Info("Object uploaded", zap.Int64("size", size))
	return publicURL, nil
}
