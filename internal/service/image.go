package service

import (
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"

	apperrors "github.com/mars1-events-planning/eventool-backend/pkg/app_errors"

	"github.com/google/uuid"
)

const MaxImageSize int64 = 5 * 1024 * 1024

var (
	allowedImageExtensions   = []string{".jpg", ".jpeg", ".png", ".gif", ".bmp"}
	allowedImageContentTypes = []string{"image/jpeg", "image/png", "image/gif", "image/bmp"}
)

// Image 上傳中的圖片
type Image struct {
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
}

func (img Image) Validate() error {
	var errs []apperrors.FieldError
	if img.Size <= 0 {
		errs = append(errs, apperrors.FieldError{Field: "file", Message: "file is empty"})
	}
	if img.Size > MaxImageSize {
		errs = append(errs, apperrors.FieldError{Field: "file", Message: "file size exceeds the 5 MB limit"})
	}
	ext := strings.ToLower(filepath.Ext(img.FileName))
	if !slices.Contains(allowedImageExtensions, ext) {
		errs = append(errs, apperrors.FieldError{
			Field:   "file",
			Message: fmt.Sprintf("invalid file extension, allowed: %s", strings.Join(allowedImageExtensions, ", ")),
		})
	}
	if !slices.Contains(allowedImageContentTypes, strings.ToLower(img.ContentType)) {
		errs = append(errs, apperrors.FieldError{Field: "file", Message: "invalid content type"})
	}
	if len(errs) > 0 {
		return apperrors.NewValidationError(errs...)
	}
	return nil
}

func organizerAvatarKey(organizerID uuid.UUID) string {
	return fmt.Sprintf("organizers/%s/avatar", organizerID)
}

func guestPhotoKey(eventID, guestID uuid.UUID) string {
	return fmt.Sprintf("events/%s/guests/%s/photo", eventID, guestID)
}

func eventImageKey(eventID, imageID uuid.UUID) string {
	return fmt.Sprintf("events/%s/images/%s", eventID, imageID)
}
