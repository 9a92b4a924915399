package gql

import (
	"errors"

	apperrors "github.com/mars1-events-planning/eventool-backend/pkg/app_errors"
	"github.com/mars1-events-planning/eventool-backend/pkg/logger"

	"go.uber.org/zap"
)

const (
	validationFailedMessage = "Validation failed."
	unexpectedErrorMessage  = "An unexpected error occurred."
)

// Error 帶有 extensions 的 resolver 錯誤，會出現在回應的 errors[].extensions
type Error struct {
	message    string
	extensions map[string]interface{}
}

func (e *Error) Error() string {
	return e.message
}

func (e *Error) Extensions() map[string]interface{} {
	return e.extensions
}

// translate 將應用層錯誤轉為對外的 GraphQL 錯誤，轉換本身失敗時退回通用錯誤
func translate(err error) (out error) {
	if err == nil {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			logger.WithComponent("graphql").Error("Failed to translate error",
				zap.Any("panic", r), zap.Error(err))
			out = unexpectedError()
		}
	}()

	code := apperrors.Code(err)
	ext := map[string]interface{}{"code": code}

	var validationErr *apperrors.ValidationError
	if errors.As(err, &validationErr) {
		ext["validationErrors"] = validationErr.Errors
		return &Error{message: validationFailedMessage, extensions: ext}
	}

	var notFound *apperrors.NotFoundError
	if errors.As(err, &notFound) {
		ext["id"] = notFound.ID.String()
	}

	var stale *apperrors.StaleReferenceError
	if errors.As(err, &stale) {
		ext["id"] = stale.ID.String()
		ext["entity"] = stale.Entity
	}

	if !apperrors.IsDomain(err) && code != apperrors.CodeCancelled {
		logger.WithComponent("graphql").Error("Unexpected resolver error", zap.Error(err))
		return unexpectedError()
	}
	return &Error{message: err.Error(), extensions: ext}
}

func unexpectedError() error {
	return &Error{
		message:    unexpectedErrorMessage,
		extensions: map[string]interface{}{"code": apperrors.CodeInternalServer},
	}
}
