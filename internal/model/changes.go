package model

import (
	"time"

	"github.com/mars1-events-planning/eventool-backend/pkg/optional"

	"github.com/google/uuid"
)

// EventChanges 活動的部分更新。EventID 未設定代表建立新活動。
type EventChanges struct {
	EventID          optional.Field[*uuid.UUID]
	Title            optional.Field[*string]
	Description      optional.Field[*string]
	Address          optional.Field[*string]
	StartDateTimeUtc optional.Field[*time.Time]
	Checklists       optional.Field[[]ChecklistChanges]
	Guests           optional.Field[[]GuestChanges]
}

// IsCreate 回報此 patch 是否走建立流程
func (c EventChanges) IsCreate() bool {
	return !c.EventID.IsSet()
}

// ChecklistChanges ChecklistID 未設定或為 nil 代表新清單
type ChecklistChanges struct {
	ChecklistID optional.Field[*uuid.UUID]
	Title       string
	Items       []ChecklistItemChanges
}

type ChecklistItemChanges struct {
	Title string
	Done  optional.Field[bool]
}

// GuestChanges ID 未設定或為 nil 代表新賓客
type GuestChanges struct {
	ID      optional.Field[*uuid.UUID]
	Name    string
	Contact string
	Tags    []string
}

func (c ChecklistChanges) IsNew() bool {
	return isNewReference(c.ChecklistID)
}

// ExistingID 僅在 IsNew 為 false 時呼叫
func (c ChecklistChanges) ExistingID() uuid.UUID {
	return *c.ChecklistID.Value()
}

// ToItems 驗證通過後 Done 必定已設定
func (c ChecklistChanges) ToItems() []ChecklistItem {
	items := make([]ChecklistItem, 0, len(c.Items))
	for _, item := range c.Items {
		items = append(items, ChecklistItem{Title: item.Title, Done: item.Done.Value()})
	}
	return items
}

func (c GuestChanges) IsNew() bool {
	return isNewReference(c.ID)
}

func (c GuestChanges) ExistingID() uuid.UUID {
	return *c.ID.Value()
}

func isNewReference(id optional.Field[*uuid.UUID]) bool {
	return !id.IsSet() || id.Value() == nil
}
