package service

import (
	"context"
	"time"

	"github.com/mars1-events-planning/eventool-backend/internal/model"
	"github.com/mars1-events-planning/eventool-backend/internal/repository"
	apperrors "github.com/mars1-events-planning/eventool-backend/pkg/app_errors"

	"github.com/google/uuid"
)

// SaveEvent 將 patch 套用到既有或新建的活動上，整個流程在同一個交易內完成。
func (s *EventServiceImpl) SaveEvent(ctx context.Context, organizerID uuid.UUID, changes model.EventChanges) (*model.Event, error) {
	var saved *model.Event
	err := s.uow.ExecuteAndCommit(ctx, func(ctx context.Context, repos repository.Repositories) error {
		// 1. 主辦人必須存在
		if err := repos.Organizers().EnsureExists(ctx, organizerID); err != nil {
			return err
		}

		// 2. 任何修改前先完成驗證
		now := s.now()
		if err := s.validator.EventChanges(changes, now); err != nil {
			return err
		}

		// 3. 載入或建立聚合
		event, err := s.loadOrCreate(ctx, repos, organizerID, changes, now)
		if err != nil {
			return err
		}

		// 4. 純量欄位：未出現則不動，明確 null 則清空
		if err := applyScalars(event, changes); err != nil {
			return err
		}

		// 5. 巢狀集合：先清單後賓客
		if err := applyCollections(event, changes); err != nil {
			return err
		}

		// 6. 儲存時更新 ChangedAtUtc
		if err := repos.Events().Save(ctx, event); err != nil {
			return err
		}
		saved = event
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, saved.ID())
	return saved, nil
}

func (s *EventServiceImpl) loadOrCreate(ctx context.Context, repos repository.Repositories, organizerID uuid.UUID, changes model.EventChanges, now time.Time) (*model.Event, error) {
	if changes.IsCreate() {
		return model.NewEvent(uuid.New(), organizerID, now, *changes.Title.Value())
	}

	event, err := loadOwnedEvent(ctx, repos, organizerID, *changes.EventID.Value())
	if err != nil {
		return nil, err
	}
	changes.Title.IfSet(func(title *string) {
		event.SetTitle(*title)
	})
	return event, nil
}

func applyScalars(event *model.Event, changes model.EventChanges) error {
	changes.Address.IfSet(event.SetAddress)
	changes.Description.IfSet(event.SetDescription)

	var err error
	changes.StartDateTimeUtc.IfSet(func(start *time.Time) {
		err = event.SetStartAtUtc(start)
	})
	return err
}

func applyCollections(event *model.Event, changes model.EventChanges) error {
	var err error
	changes.Checklists.IfSet(func(checklists []model.ChecklistChanges) {
		err = reconcileChecklists(event, checklists)
	})
	if err != nil {
		return err
	}
	changes.Guests.IfSet(func(guests []model.GuestChanges) {
		err = reconcileGuests(event, guests)
	})
	return err
}

// reconcileChecklists 新清單先加入，再以同 id 替換既有清單。
// patch 中未提到的清單保留不動。
func reconcileChecklists(event *model.Event, changes []model.ChecklistChanges) error {
	fresh, existing := partition(changes, model.ChecklistChanges.IsNew)

	for _, c := range fresh {
		event.AddChecklist(model.NewChecklist(uuid.New(), c.Title, c.ToItems()))
	}

	for _, c := range existing {
		id := c.ExistingID()
		if !event.RemoveChecklist(id) {
			return apperrors.NewStaleReference("checklist", id)
		}
		event.AddChecklist(model.NewChecklist(id, c.Title, c.ToItems()))
	}
	return nil
}

// reconcileGuests 與清單相同的規則；照片只能透過上傳流程設定，替換時保留
func reconcileGuests(event *model.Event, changes []model.GuestChanges) error {
	fresh, existing := partition(changes, model.GuestChanges.IsNew)

	for _, g := range fresh {
		event.AddGuest(model.NewGuest(uuid.New(), g.Name, g.Contact, g.Tags))
	}

	for _, g := range existing {
		id := g.ExistingID()
		current, found := event.FindGuest(id)
		if !found {
			return apperrors.NewStaleReference("guest", id)
		}
		event.RemoveGuest(id)
		replacement := model.NewGuest(id, g.Name, g.Contact, g.Tags)
		replacement.PhotoURL = current.PhotoURL
		event.AddGuest(replacement)
	}
	return nil
}

func partition[T any](items []T, isNew func(T) bool) (fresh, existing []T) {
	for _, item := range items {
		if isNew(item) {
			fresh = append(fresh, item)
		} else {
			existing = append(existing, item)
		}
	}
	return fresh, existing
}

// loadOwnedEvent 載入活動並檢查建立者
func loadOwnedEvent(ctx context.Context, repos repository.Repositories, organizerID, eventID uuid.UUID) (*model.Event, error) {
	event, err := repos.Events().GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, apperrors.NewEventNotFound(eventID)
	}
	if !event.IsOwnedBy(organizerID) {
		return nil, apperrors.ErrUnauthorized
	}
	return event, nil
}
