package gql

import (
	"fmt"
	"time"

	"github.com/mars1-events-planning/eventool-backend/internal/model"
	apperrors "github.com/mars1-events-planning/eventool-backend/pkg/app_errors"
	"github.com/mars1-events-planning/eventool-backend/pkg/optional"

	"github.com/google/uuid"
	"github.com/graph-gophers/graphql-go"
)

// EventInput 對應 schema 的 EventInput。
// 純量欄位用 Null* 型別保留「是否出現」；清單為 nil 代表未提供或明確 null。
type EventInput struct {
	EventID          NullID
	Title            graphql.NullString
	Description      graphql.NullString
	Address          graphql.NullString
	StartDateTimeUtc graphql.NullTime
	Checklists       *[]*ChecklistInput
	Guests           *[]*GuestInput
}

type ChecklistInput struct {
	ChecklistID NullID
	Title       string
	Items       []*ChecklistItemInput
}

type ChecklistItemInput struct {
	Title string
	Done  graphql.NullBool
}

type GuestInput struct {
	ID      NullID
	Name    string
	Contact string
	Tags    *[]string
}

// toChanges 轉成 EventChanges，無法解析的 id 回傳欄位驗證錯誤
func (in EventInput) toChanges() (model.EventChanges, error) {
	var changes model.EventChanges
	var errs []apperrors.FieldError

	changes.EventID = nullUUID("eventId", in.EventID, &errs)
	changes.Title = nullString(in.Title)
	changes.Description = nullString(in.Description)
	changes.Address = nullString(in.Address)
	if in.StartDateTimeUtc.Set {
		var start *time.Time
		if in.StartDateTimeUtc.Value != nil {
			utc := in.StartDateTimeUtc.Value.Time.UTC()
			start = &utc
		}
		changes.StartDateTimeUtc = optional.Set(start)
	}

	if in.Checklists != nil {
		checklists := make([]model.ChecklistChanges, 0, len(*in.Checklists))
		for i, c := range *in.Checklists {
			checklists = append(checklists, model.ChecklistChanges{
				ChecklistID: nullUUID(fmt.Sprintf("checklists[%d].checklistId", i), c.ChecklistID, &errs),
				Title:       c.Title,
				Items:       toItemChanges(c.Items),
			})
		}
		changes.Checklists = optional.Set(checklists)
	}

	if in.Guests != nil {
		guests := make([]model.GuestChanges, 0, len(*in.Guests))
		for i, g := range *in.Guests {
			guest := model.GuestChanges{
				ID:      nullUUID(fmt.Sprintf("guests[%d].id", i), g.ID, &errs),
				Name:    g.Name,
				Contact: g.Contact,
			}
			if g.Tags != nil {
				guest.Tags = *g.Tags
			}
			guests = append(guests, guest)
		}
		changes.Guests = optional.Set(guests)
	}

	if len(errs) > 0 {
		return model.EventChanges{}, apperrors.NewValidationError(errs...)
	}
	return changes, nil
}

func toItemChanges(items []*ChecklistItemInput) []model.ChecklistItemChanges {
	out := make([]model.ChecklistItemChanges, 0, len(items))
	for _, item := range items {
		changes := model.ChecklistItemChanges{Title: item.Title}
		if item.Done.Set && item.Done.Value != nil {
			changes.Done = optional.Set(*item.Done.Value)
		}
		out = append(out, changes)
	}
	return out
}

func nullString(s graphql.NullString) optional.Field[*string] {
	if !s.Set {
		return optional.NotSet[*string]()
	}
	return optional.Set(s.Value)
}

func nullUUID(field string, id NullID, errs *[]apperrors.FieldError) optional.Field[*uuid.UUID] {
	if !id.Set {
		return optional.NotSet[*uuid.UUID]()
	}
	if id.Value == nil {
		return optional.Set[*uuid.UUID](nil)
	}
	parsed, err := uuid.Parse(string(*id.Value))
	if err != nil {
		*errs = append(*errs, apperrors.FieldError{Field: field, Message: "invalid id"})
		return optional.NotSet[*uuid.UUID]()
	}
	return optional.Set(&parsed)
}

// parseID 解析必填的 ID 參數
func parseID(field string, id graphql.ID) (uuid.UUID, error) {
	parsed, err := uuid.Parse(string(id))
	if err != nil {
		return uuid.Nil, apperrors.NewValidationError(apperrors.FieldError{Field: field, Message: "invalid id"})
	}
	return parsed, nil
}
