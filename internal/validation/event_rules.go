package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/mars1-events-planning/eventool-backend/internal/model"
	"github.com/mars1-events-planning/eventool-backend/pkg/optional"

	"github.com/google/uuid"
)

const (
	eventTitleMax     = 100
	descriptionMax    = 500
	addressMax        = 150
	checklistTitleMax = 100
	guestNameMax      = 100
	guestContactMax   = 150
	guestTagMax       = 50

	// 單一欄位的編輯沿用較嚴格的長度
	editTitleMax = 80
)

// EventChanges 驗證 patch。建立與更新的差別由 EventID 是否設定決定。
func (v *Validator) EventChanges(changes model.EventChanges, nowUtc time.Time) error {
	c := v.newCollector()

	if changes.EventID.IsSet() {
		id := changes.EventID.Value()
		if id == nil || *id == uuid.Nil {
			c.add("eventId", "eventId should be filled")
		}
		changes.Title.IfSet(func(title *string) {
			c.length("title", deref(title), 2, eventTitleMax)
		})
	} else {
		if !changes.Title.IsSet() {
			c.add("title", "title must be provided")
		} else {
			c.length("title", deref(changes.Title.Value()), 2, eventTitleMax)
		}
	}

	changes.Description.IfSet(func(description *string) {
		c.optionalLength("description", description, descriptionMax)
	})
	changes.Address.IfSet(func(address *string) {
		c.optionalLength("address", address, addressMax)
	})
	changes.StartDateTimeUtc.IfSet(func(start *time.Time) {
		c.future("startDateTimeUtc", start, nowUtc)
	})
	changes.Checklists.IfSet(func(checklists []model.ChecklistChanges) {
		for i, checklist := range checklists {
			prefix := fmt.Sprintf("checklists[%d]", i)
			c.reference(prefix+".checklistId", checklist.ChecklistID)
			c.length(prefix+".title", checklist.Title, 2, checklistTitleMax)
			c.items(prefix, checklist.Items, checklistTitleMax)
		}
	})
	changes.Guests.IfSet(func(guests []model.GuestChanges) {
		for i, guest := range guests {
			c.guest(fmt.Sprintf("guests[%d]", i), guest)
		}
	})

	return c.err()
}

// EditEvent 驗證單次編輯活動的請求
func (v *Validator) EditEvent(req model.EditEventRequest, nowUtc time.Time) error {
	c := v.newCollector()
	c.length("title", req.Title, 2, editTitleMax)
	c.optionalLength("description", req.Description, descriptionMax)
	c.optionalLength("address", req.Address, addressMax)
	c.future("startDateTimeUtc", req.StartAtUtc, nowUtc)
	return c.err()
}

// SaveChecklist 驗證單一清單的新增或覆寫
func (v *Validator) SaveChecklist(req model.SaveChecklistRequest) error {
	c := v.newCollector()
	c.length("title", req.Title, 2, editTitleMax)
	if len(req.Items) == 0 {
		c.add("items", "items should not be empty")
	}
	c.items("", req.Items, editTitleMax)
	return c.err()
}

// optionalLength nil 或空字串代表清空欄位，不檢查長度
func (c *collector) optionalLength(field string, value *string, max int) {
	if value == nil || *value == "" {
		return
	}
	c.check(field, *value, fmt.Sprintf("min=2,max=%d", max),
		fmt.Sprintf("%s must contain from 2 to %d characters", field, max))
}

func (c *collector) future(field string, value *time.Time, nowUtc time.Time) {
	if value == nil {
		return
	}
	if !value.After(nowUtc) {
		c.add(field, "event start must be in the future")
	}
}

func (c *collector) items(prefix string, items []model.ChecklistItemChanges, max int) {
	for j, item := range items {
		field := fmt.Sprintf("items[%d]", j)
		if prefix != "" {
			field = prefix + "." + field
		}
		c.length(field+".title", item.Title, 2, max)
		if !item.Done.IsSet() {
			c.add(field+".done", "done should be filled")
		}
	}
}

// reference 明確指定的 id 不可為空 uuid
func (c *collector) reference(field string, id optional.Field[*uuid.UUID]) {
	if id.IsSet() && id.Value() != nil && *id.Value() == uuid.Nil {
		c.add(field, "id should not be empty")
	}
}

func (c *collector) guest(prefix string, guest model.GuestChanges) {
	c.reference(prefix+".id", guest.ID)
	c.check(prefix+".name", guest.Name, fmt.Sprintf("required,max=%d", guestNameMax),
		fmt.Sprintf("name should be filled and contain at most %d characters", guestNameMax))
	c.check(prefix+".contact", guest.Contact, fmt.Sprintf("required,max=%d", guestContactMax),
		fmt.Sprintf("contact should be filled and contain at most %d characters", guestContactMax))
	for k, tag := range guest.Tags {
		if strings.TrimSpace(tag) == "" || len([]rune(tag)) > guestTagMax {
			c.add(fmt.Sprintf("%s.tags[%d]", prefix, k),
				fmt.Sprintf("tag should be filled and contain at most %d characters", guestTagMax))
		}
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
