package handler

import (
	"net/http"

	"github.com/mars1-events-planning/eventool-backend/internal/auth"
	"github.com/mars1-events-planning/eventool-backend/internal/service"
	apperrors "github.com/mars1-events-planning/eventool-backend/pkg/app_errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const imageFormField = "file"

type ImageHandler struct {
	events     service.EventService
	organizers service.OrganizerService
}

func NewImageHandler(events service.EventService, organizers service.OrganizerService) *ImageHandler {
	return &ImageHandler{
		events:     events,
		organizers: organizers,
	}
}

func (h *ImageHandler) RegisterRoutes(r *gin.Engine, requireAuth gin.HandlerFunc) {
	router := r.Group("/api", requireAuth)
	{
		router.POST("set-avatar", h.SetAvatar)
		router.POST("set-guest-avatar", h.SetGuestAvatar)
		router.POST("add-event-image", h.AddEventImage)
	}
}

type eventImageQuery struct {
	EventID string `form:"eventId" binding:"required,uuid"`
}

type guestAvatarQuery struct {
	EventID string `form:"eventId" binding:"required,uuid"`
	GuestID string `form:"guestId" binding:"required,uuid"`
}

func (h *ImageHandler) SetAvatar(c *gin.Context) {
	organizerID, ok := h.organizerID(c)
	if !ok {
		return
	}
	h.upload(c, "SetAvatar", func(image service.Image) (string, error) {
		return h.organizers.SetAvatar(c.Request.Context(), organizerID, image)
	})
}

func (h *ImageHandler) SetGuestAvatar(c *gin.Context) {
	organizerID, ok := h.organizerID(c)
	if !ok {
		return
	}
	var query guestAvatarQuery
	if err := BindQuery(c, &query); err != nil {
		return
	}
	eventID, guestID := uuid.MustParse(query.EventID), uuid.MustParse(query.GuestID)

	h.upload(c, "SetGuestAvatar", func(image service.Image) (string, error) {
		return h.events.SetGuestPhoto(c.Request.Context(), organizerID, eventID, guestID, image)
	})
}

func (h *ImageHandler) AddEventImage(c *gin.Context) {
	organizerID, ok := h.organizerID(c)
	if !ok {
		return
	}
	var query eventImageQuery
	if err := BindQuery(c, &query); err != nil {
		return
	}
	eventID := uuid.MustParse(query.EventID)

	h.upload(c, "AddEventImage", func(image service.Image) (string, error) {
		return h.events.AddEventImage(c.Request.Context(), organizerID, eventID, image)
	})
}

func (h *ImageHandler) organizerID(c *gin.Context) (uuid.UUID, bool) {
	organizerID, err := auth.RequireOrganizerID(c.Request.Context())
	if err != nil {
		handleError(c, err, "Authenticate")
		return uuid.Nil, false
	}
	return organizerID, true
}

// upload 讀取 multipart 檔案後交給 store，成功時回傳 {"url": ...}
func (h *ImageHandler) upload(c *gin.Context, operation string, store func(image service.Image) (string, error)) {
	header, err := c.FormFile(imageFormField)
	if err != nil {
		handleError(c, apperrors.NewValidationError(apperrors.FieldError{
			Field:   imageFormField,
			Message: "file should be uploaded",
		}), operation)
		return
	}
	file, err := header.Open()
	if err != nil {
		handleError(c, err, operation)
		return
	}
	defer file.Close()

	url, err := store(service.Image{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	})
	if err != nil {
		handleError(c, err, operation)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}
