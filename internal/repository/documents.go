package repository

import (
	"time"

	"github.com/mars1-events-planning/eventool-backend/internal/model"

	"github.com/google/uuid"
)

// eventDocument 活動以單一 JSONB 文件儲存
type eventDocument struct {
	ID           uuid.UUID           `json:"id"`
	CreatorID    uuid.UUID           `json:"creator_id"`
	Title        string              `json:"title"`
	Address      *string             `json:"address"`
	Description  *string             `json:"description"`
	CreatedAt    time.Time           `json:"created_at"`
	ChangedAtUtc time.Time           `json:"changed_at_utc"`
	StartAtUtc   *time.Time          `json:"start_at_utc"`
	Checklists   []checklistDocument `json:"checklists"`
	Guests       []guestDocument     `json:"guests"`
	ImagesUrls   []string            `json:"images_urls"`
}

type checklistDocument struct {
	ID             uuid.UUID               `json:"id"`
	Title          string                  `json:"title"`
	ChecklistItems []checklistItemDocument `json:"checklist_items"`
}

type checklistItemDocument struct {
	Title string `json:"title"`
	Done  bool   `json:"done"`
}

type guestDocument struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Contact  string    `json:"contact"`
	PhotoURL *string   `json:"photo_url"`
	Tags     []string  `json:"tags"`
}

type organizerDocument struct {
	ID           uuid.UUID `json:"id"`
	FullName     string    `json:"full_name"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"password_hash"`
	PasswordSalt string    `json:"password_salt"`
	PhotoURL     *string   `json:"photo_url"`
}

func toEventDocument(event *model.Event) eventDocument {
	s := event.State()
	doc := eventDocument{
		ID:           s.ID,
		CreatorID:    s.CreatorID,
		Title:        s.Title,
		Address:      s.Address,
		Description:  s.Description,
		CreatedAt:    s.CreatedAt,
		ChangedAtUtc: s.ChangedAtUtc,
		StartAtUtc:   s.StartAtUtc,
		Checklists:   make([]checklistDocument, 0, len(s.Checklists)),
		Guests:       make([]guestDocument, 0, len(s.Guests)),
		ImagesUrls:   s.ImagesUrls,
	}
	for _, c := range s.Checklists {
		items := make([]checklistItemDocument, 0, len(c.Items))
		for _, item := range c.Items {
			items = append(items, checklistItemDocument{Title: item.Title, Done: item.Done})
		}
		doc.Checklists = append(doc.Checklists, checklistDocument{ID: c.ID, Title: c.Title, ChecklistItems: items})
	}
	for _, g := range s.Guests {
		doc.Guests = append(doc.Guests, guestDocument{
			ID:       g.ID,
			Name:     g.Name,
			Contact:  g.Contact,
			PhotoURL: g.PhotoURL,
			Tags:     g.Tags,
		})
	}
	return doc
}

// toDomain 時間一律轉為 UTC 後還原
func (d eventDocument) toDomain() (*model.Event, error) {
	s := model.EventState{
		ID:           d.ID,
		CreatorID:    d.CreatorID,
		Title:        d.Title,
		Address:      d.Address,
		Description:  d.Description,
		CreatedAt:    d.CreatedAt.UTC(),
		ChangedAtUtc: d.ChangedAtUtc.UTC(),
		Checklists:   make([]model.Checklist, 0, len(d.Checklists)),
		Guests:       make([]model.Guest, 0, len(d.Guests)),
		ImagesUrls:   d.ImagesUrls,
	}
	if d.StartAtUtc != nil {
		start := d.StartAtUtc.UTC()
		s.StartAtUtc = &start
	}
	for _, c := range d.Checklists {
		items := make([]model.ChecklistItem, 0, len(c.ChecklistItems))
		for _, item := range c.ChecklistItems {
			items = append(items, model.ChecklistItem{Title: item.Title, Done: item.Done})
		}
		s.Checklists = append(s.Checklists, model.NewChecklist(c.ID, c.Title, items))
	}
	for _, g := range d.Guests {
		guest := model.NewGuest(g.ID, g.Name, g.Contact, g.Tags)
		guest.PhotoURL = g.PhotoURL
		s.Guests = append(s.Guests, guest)
	}
	return model.RestoreEvent(s)
}

func toOrganizerDocument(o *model.Organizer) organizerDocument {
	return organizerDocument{
		ID:           o.ID,
		FullName:     o.FullName,
		Username:     o.Username,
		PasswordHash: o.HashedPassword.Hash,
		PasswordSalt: o.HashedPassword.Salt,
		PhotoURL:     o.PhotoURL,
	}
}

func (d organizerDocument) toDomain() *model.Organizer {
	o := model.NewOrganizer(d.ID, d.Username, d.FullName, model.HashedPassword{
		Hash: d.PasswordHash,
		Salt: d.PasswordSalt,
	})
	o.PhotoURL = d.PhotoURL
	return o
}
