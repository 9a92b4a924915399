package apperrors

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrValidationFailed       = errors.New("validation failed")
	ErrOrganizerNotFound      = errors.New("organizer not found")
	ErrEventNotFound          = errors.New("event not found")
	ErrChecklistNotFound      = errors.New("checklist not found")
	ErrGuestNotFound          = errors.New("guest not found")
	ErrUnauthorized           = errors.New("organizer has no access to this resource")
	ErrUnauthenticated        = errors.New("authentication required")
	ErrStaleReference         = errors.New("referenced entity is not part of the aggregate")
	ErrWrongPassword          = errors.New("wrong password")
	ErrUserNotFound           = errors.New("user with such username not found")
	ErrUsernameShouldBeFilled = errors.New("username should be filled")
	ErrInvalidInput           = errors.New("invalid input")
	ErrConcurrentUpdate       = errors.New("data was changed by another request, please retry")
	ErrInternalServerError    = errors.New("internal server error")
)

const (
	CodeValidation       = "VALIDATION_ERROR"
	CodeNotFound         = "NOT_FOUND"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeUnauthenticated  = "UNAUTHENTICATED"
	CodeStaleReference   = "STALE_REFERENCE"
	CodeWrongPassword    = "WRONG_PASSWORD"
	CodeUserNotFound     = "USER_NOT_FOUND"
	CodeUsernameRequired = "USERNAME_SHOULD_BE_FILLED"
	CodeInvalidInput     = "INVALID_INPUT"
	CodeConflict         = "CONFLICT"
	CodeCancelled        = "CANCELLED"
	CodeInternalServer   = "INTERNAL_SERVER_ERROR"
)

// FieldError 單一欄位的驗證失敗
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationError struct {
	Errors []FieldError
}

func NewValidationError(errs ...FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
	}
	return fmt.Sprintf("%s: %s", ErrValidationFailed.Error(), strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

// NotFoundError 附帶找不到的實體 id
type NotFoundError struct {
	ID  uuid.UUID
	err error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: %s", e.err.Error(), e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return e.err
}

func NewOrganizerNotFound(id uuid.UUID) error {
	return &NotFoundError{ID: id, err: ErrOrganizerNotFound}
}

func NewEventNotFound(id uuid.UUID) error {
	return &NotFoundError{ID: id, err: ErrEventNotFound}
}

func NewChecklistNotFound(id uuid.UUID) error {
	return &NotFoundError{ID: id, err: ErrChecklistNotFound}
}

func NewGuestNotFound(id uuid.UUID) error {
	return &NotFoundError{ID: id, err: ErrGuestNotFound}
}

// StaleReferenceError patch 參照了不在此活動中的巢狀實體
type StaleReferenceError struct {
	Entity string
	ID     uuid.UUID
}

func NewStaleReference(entity string, id uuid.UUID) error {
	return &StaleReferenceError{Entity: entity, ID: id}
}

func (e *StaleReferenceError) Error() string {
	return fmt.Sprintf("no %s with id %s in event", e.Entity, e.ID)
}

func (e *StaleReferenceError) Unwrap() error {
	return ErrStaleReference
}

// Code 將錯誤對應到對外的錯誤代碼
func Code(err error) string {
	switch {
	case errors.Is(err, ErrValidationFailed):
		return CodeValidation
	case errors.Is(err, ErrOrganizerNotFound),
		errors.Is(err, ErrEventNotFound),
		errors.Is(err, ErrChecklistNotFound),
		errors.Is(err, ErrGuestNotFound):
		return CodeNotFound
	case errors.Is(err, ErrUnauthorized):
		return CodeUnauthorized
	case errors.Is(err, ErrUnauthenticated):
		return CodeUnauthenticated
	case errors.Is(err, ErrStaleReference):
		return CodeStaleReference
	case errors.Is(err, ErrWrongPassword):
		return CodeWrongPassword
	case errors.Is(err, ErrUserNotFound):
		return CodeUserNotFound
	case errors.Is(err, ErrUsernameShouldBeFilled):
		return CodeUsernameRequired
	case errors.Is(err, ErrInvalidInput):
		return CodeInvalidInput
	case errors.Is(err, ErrConcurrentUpdate):
		return CodeConflict
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return CodeCancelled
	default:
		return CodeInternalServer
	}
}

// IsDomain 回報錯誤是否為可預期的業務錯誤
func IsDomain(err error) bool {
	code := Code(err)
	return code != CodeInternalServer && code != CodeCancelled
}
