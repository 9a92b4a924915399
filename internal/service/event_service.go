package service

import (
	"context"
	"time"

	"github.com/mars1-events-planning/eventool-backend/internal/cache"
	"github.com/mars1-events-planning/eventool-backend/internal/model"
	"github.com/mars1-events-planning/eventool-backend/internal/repository"
	"github.com/mars1-events-planning/eventool-backend/internal/storage"
	"github.com/mars1-events-planning/eventool-backend/internal/validation"
	apperrors "github.com/mars1-events-planning/eventool-backend/pkg/app_errors"
	"github.com/mars1-events-planning/eventool-backend/pkg/optional"

	"github.com/google/uuid"
)

const EventsPageSize = 15

type EventService interface {
	// SaveEvent 依 patch 建立或更新活動，含清單與賓客的調和
	SaveEvent(ctx context.Context, organizerID uuid.UUID, changes model.EventChanges) (*model.Event, error)
	CreateEvent(ctx context.Context, organizerID uuid.UUID, title string) (*model.Event, error)
	EditEvent(ctx context.Context, req model.EditEventRequest) (*model.Event, error)
	SaveChecklist(ctx context.Context, req model.SaveChecklistRequest) (*model.Event, error)
	DeleteChecklist(ctx context.Context, organizerID, eventID, checklistID uuid.UUID) (*model.Event, error)
	DeleteGuest(ctx context.Context, organizerID, eventID, guestID uuid.UUID) (*model.Event, error)
	DeleteEvent(ctx context.Context, organizerID, eventID uuid.UUID) error
	// GetByID 不存在或非建立者時回傳 nil
	GetByID(ctx context.Context, organizerID, eventID uuid.UUID) (*model.Event, error)
	ListByOrganizer(ctx context.Context, organizerID uuid.UUID, page int) ([]*model.Event, error)
	AddEventImage(ctx context.Context, organizerID, eventID uuid.UUID, image Image) (string, error)
	SetGuestPhoto(ctx context.Context, organizerID, eventID, guestID uuid.UUID, image Image) (string, error)
}

type EventServiceImpl struct {
	uow       repository.UnitOfWork
	validator *validation.Validator
	cache     cache.EventCache
	images    storage.ImageStorage
	now       func() time.Time
}

func NewEventService(
	uow repository.UnitOfWork,
	validator *validation.Validator,
	eventCache cache.EventCache,
	images storage.ImageStorage,
) EventService {
	return &EventServiceImpl{
		uow:       uow,
		validator: validator,
		cache:     eventCache,
		images:    images,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *EventServiceImpl) CreateEvent(ctx context.Context, organizerID uuid.UUID, title string) (*model.Event, error) {
	return s.SaveEvent(ctx, organizerID, model.EventChanges{Title: optional.Set(&title)})
}

func (s *EventServiceImpl) EditEvent(ctx context.Context, req model.EditEventRequest) (*model.Event, error) {
	if req.StartAtUtc != nil {
		start := req.StartAtUtc.UTC()
		req.StartAtUtc = &start
	}
	if err := s.validator.EditEvent(req, s.now()); err != nil {
		return nil, err
	}

	return s.mutate(ctx, req.OrganizerID, req.EventID, func(event *model.Event) error {
		event.SetTitle(req.Title)
		event.SetAddress(req.Address)
		event.SetDescription(req.Description)
		return event.SetStartAtUtc(req.StartAtUtc)
	})
}

func (s *EventServiceImpl) SaveChecklist(ctx context.Context, req model.SaveChecklistRequest) (*model.Event, error) {
	if err := s.validator.SaveChecklist(req); err != nil {
		return nil, err
	}

	changes := model.ChecklistChanges{Title: req.Title, Items: req.Items}
	return s.mutate(ctx, req.OrganizerID, req.EventID, func(event *model.Event) error {
		if req.ChecklistID != nil {
			updated := model.NewChecklist(*req.ChecklistID, req.Title, changes.ToItems())
			if event.ReplaceChecklist(updated) {
				return nil
			}
		}
		event.AddChecklist(model.NewChecklist(uuid.New(), req.Title, changes.ToItems()))
		return nil
	})
}

func (s *EventServiceImpl) DeleteChecklist(ctx context.Context, organizerID, eventID, checklistID uuid.UUID) (*model.Event, error) {
	return s.mutate(ctx, organizerID, eventID, func(event *model.Event) error {
		if !event.RemoveChecklist(checklistID) {
			return apperrors.NewChecklistNotFound(checklistID)
		}
		return nil
	})
}

func (s *EventServiceImpl) DeleteGuest(ctx context.Context, organizerID, eventID, guestID uuid.UUID) (*model.Event, error) {
	return s.mutate(ctx, organizerID, eventID, func(event *model.Event) error {
		if !event.RemoveGuest(guestID) {
			return apperrors.NewGuestNotFound(guestID)
		}
		return nil
	})
}

func (s *EventServiceImpl) DeleteEvent(ctx context.Context, organizerID, eventID uuid.UUID) error {
	err := s.uow.ExecuteAndCommit(ctx, func(ctx context.Context, repos repository.Repositories) error {
		event, err := loadOwnedEvent(ctx, repos, organizerID, eventID)
		if err != nil {
			return err
		}
		return repos.Events().Remove(ctx, event)
	})
	if err != nil {
		return err
	}
	s.cache.Invalidate(ctx, eventID)
	return nil
}

func (s *EventServiceImpl) GetByID(ctx context.Context, organizerID, eventID uuid.UUID) (*model.Event, error) {
	event, generation, ok := s.cache.Get(ctx, eventID)
	if ok {
		if !event.IsOwnedBy(organizerID) {
			return nil, nil
		}
		return event, nil
	}

	// 世代號在讀取資料庫前取得，期間若有提交則不回填
	err := s.uow.ExecuteReadOnly(ctx, func(ctx context.Context, repos repository.Repositories) error {
		var err error
		event, err = repos.Events().GetByID(ctx, eventID)
		return err
	})
	if err != nil || event == nil {
		return nil, err
	}

	s.cache.Set(ctx, event, generation)
	if !event.IsOwnedBy(organizerID) {
		return nil, nil
	}
	return event, nil
}

func (s *EventServiceImpl) ListByOrganizer(ctx context.Context, organizerID uuid.UUID, page int) ([]*model.Event, error) {
	if page < 0 {
		return nil, apperrors.NewValidationError(apperrors.FieldError{Field: "page", Message: "page must not be negative"})
	}

	var events []*model.Event
	err := s.uow.ExecuteReadOnly(ctx, func(ctx context.Context, repos repository.Repositories) error {
		var err error
		events, err = repos.Events().ListByCreator(ctx, organizerID, page, EventsPageSize)
		return err
	})
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (s *EventServiceImpl) AddEventImage(ctx context.Context, organizerID, eventID uuid.UUID, image Image) (string, error) {
	if err := image.Validate(); err != nil {
		return "", err
	}

	var url string
	_, err := s.mutate(ctx, organizerID, eventID, func(event *model.Event) error {
		var err error
		url, err = s.images.Upload(ctx, image.Body, image.Size, image.ContentType, eventImageKey(eventID, uuid.New()))
		if err != nil {
			return err
		}
		event.AddImageURL(url)
		return nil
	})
	if err != nil {
		return "", err
	}
	return url, nil
}

func (s *EventServiceImpl) SetGuestPhoto(ctx context.Context, organizerID, eventID, guestID uuid.UUID, image Image) (string, error) {
	if err := image.Validate(); err != nil {
		return "", err
	}

	var url string
	_, err := s.mutate(ctx, organizerID, eventID, func(event *model.Event) error {
		if _, found := event.FindGuest(guestID); !found {
			return apperrors.NewGuestNotFound(guestID)
		}
		var err error
		url, err = s.images.Upload(ctx, image.Body, image.Size, image.ContentType, guestPhotoKey(eventID, guestID))
		if err != nil {
			return err
		}
		event.SetGuestPhoto(guestID, url)
		return nil
	})
	if err != nil {
		return "", err
	}
	return url, nil
}

// mutate 載入 → 檢查建立者 → 修改 → 儲存，失敗時整個交易回滾
func (s *EventServiceImpl) mutate(ctx context.Context, organizerID, eventID uuid.UUID, change func(event *model.Event) error) (*model.Event, error) {
	var saved *model.Event
	err := s.uow.ExecuteAndCommit(ctx, func(ctx context.Context, repos repository.Repositories) error {
		event, err := loadOwnedEvent(ctx, repos, organizerID, eventID)
		if err != nil {
			return err
		}
		if err := change(event); err != nil {
			return err
		}
		if err := repos.Events().Save(ctx, event); err != nil {
			return err
		}
		saved = event
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, eventID)
	return saved, nil
}
