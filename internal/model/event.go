package model

import (
	"errors"
	"slices"
	"time"

	"github.com/google/uuid"
)

var ErrNonUTCTime = errors.New("datetime should be UTC")

// ChecklistItem 清單項目，值物件
type ChecklistItem struct {
	Title string `json:"title"`
	Done  bool   `json:"done"`
}

// Checklist 隸屬於活動的清單，項目整批替換
type Checklist struct {
	ID    uuid.UUID       `json:"id"`
	Title string          `json:"title"`
	Items []ChecklistItem `json:"items"`
}

func NewChecklist(id uuid.UUID, title string, items []ChecklistItem) Checklist {
	return Checklist{ID: id, Title: title, Items: append(make([]ChecklistItem, 0, len(items)), items...)}
}

// Guest 隸屬於活動的賓客
type Guest struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Contact  string    `json:"contact"`
	PhotoURL *string   `json:"photo_url,omitempty"`
	Tags     []string  `json:"tags"`
}

func NewGuest(id uuid.UUID, name, contact string, tags []string) Guest {
	g := Guest{ID: id, Name: name, Contact: contact}
	g.SetTags(tags)
	return g
}

// SetTags 標籤為集合，重複值只保留第一次出現
func (g *Guest) SetTags(tags []string) {
	g.Tags = make([]string, 0, len(tags))
	for _, tag := range tags {
		if !slices.Contains(g.Tags, tag) {
			g.Tags = append(g.Tags, tag)
		}
	}
}

// EventState 活動聚合的完整狀態，用於持久化與還原
type EventState struct {
	ID           uuid.UUID
	CreatorID    uuid.UUID
	Title        string
	Address      *string
	Description  *string
	CreatedAt    time.Time
	ChangedAtUtc time.Time
	StartAtUtc   *time.Time
	Checklists   []Checklist
	Guests       []Guest
	ImagesUrls   []string
}

// Event 活動聚合根。所有時間必須為 UTC。
type Event struct {
	id           uuid.UUID
	creatorID    uuid.UUID
	title        string
	address      *string
	description  *string
	createdAt    time.Time
	changedAtUtc time.Time
	startAtUtc   *time.Time
	checklists   []Checklist
	guests       []Guest
	imagesUrls   []string
}

func NewEvent(id, creatorID uuid.UUID, createdAtUtc time.Time, title string) (*Event, error) {
	if err := ensureUTC(createdAtUtc); err != nil {
		return nil, err
	}
	return &Event{
		id:           id,
		creatorID:    creatorID,
		title:        title,
		createdAt:    createdAtUtc,
		changedAtUtc: createdAtUtc,
		checklists:   []Checklist{},
		guests:       []Guest{},
		imagesUrls:   []string{},
	}, nil
}

// RestoreEvent 由已儲存的狀態重建聚合
func RestoreEvent(s EventState) (*Event, error) {
	if err := ensureUTC(s.CreatedAt); err != nil {
		return nil, err
	}
	if err := ensureUTC(s.ChangedAtUtc); err != nil {
		return nil, err
	}
	e := &Event{
		id:           s.ID,
		creatorID:    s.CreatorID,
		title:        s.Title,
		address:      cloneString(s.Address),
		description:  cloneString(s.Description),
		createdAt:    s.CreatedAt,
		changedAtUtc: s.ChangedAtUtc,
		checklists:   make([]Checklist, 0, len(s.Checklists)),
		guests:       make([]Guest, 0, len(s.Guests)),
		imagesUrls:   make([]string, 0, len(s.ImagesUrls)),
	}
	if err := e.SetStartAtUtc(s.StartAtUtc); err != nil {
		return nil, err
	}
	for _, c := range s.Checklists {
		e.AddChecklist(c)
	}
	for _, g := range s.Guests {
		e.AddGuest(g)
	}
	e.imagesUrls = append(e.imagesUrls, s.ImagesUrls...)
	return e, nil
}

// State 回傳深拷貝，修改不影響聚合
func (e *Event) State() EventState {
	return EventState{
		ID:           e.id,
		CreatorID:    e.creatorID,
		Title:        e.title,
		Address:      cloneString(e.address),
		Description:  cloneString(e.description),
		CreatedAt:    e.createdAt,
		ChangedAtUtc: e.changedAtUtc,
		StartAtUtc:   cloneTime(e.startAtUtc),
		Checklists:   e.Checklists(),
		Guests:       e.Guests(),
		ImagesUrls:   e.ImagesUrls(),
	}
}

func (e *Event) ID() uuid.UUID { return e.id }
func (e *Event) CreatorID() uuid.UUID { return e.creatorID }
func (e *Event) Title() string { return e.title }
func (e *Event) Address() *string { return cloneString(e.address) }
func (e *Event) Description() *string { return cloneString(e.description) }
func (e *Event) CreatedAt() time.Time { return e.createdAt }
func (e *Event) ChangedAtUtc() time.Time { return e.changedAtUtc }
func (e *Event) StartAtUtc() *time.Time { return cloneTime(e.startAtUtc) }

func (e *Event) Checklists() []Checklist {
	out := make([]Checklist, 0, len(e.checklists))
	for _, c := range e.checklists {
		out = append(out, NewChecklist(c.ID, c.Title, c.Items))
	}
	return out
}

func (e *Event) Guests() []Guest {
	out := make([]Guest, 0, len(e.guests))
	for _, g := range e.guests {
		cp := g
		cp.PhotoURL = cloneString(g.PhotoURL)
		cp.Tags = slices.Clone(g.Tags)
		out = append(out, cp)
	}
	return out
}

func (e *Event) ImagesUrls() []string {
	return slices.Clone(e.imagesUrls)
}

// IsOwnedBy 只有建立者可以修改活動
func (e *Event) IsOwnedBy(organizerID uuid.UUID) bool {
	return e.creatorID == organizerID
}

func (e *Event) SetTitle(title string) {
	e.title = title
}

func (e *Event) SetAddress(address *string) {
	e.address = cloneString(address)
}

func (e *Event) SetDescription(description *string) {
	e.description = cloneString(description)
}

func (e *Event) SetStartAtUtc(startAtUtc *time.Time) error {
	if startAtUtc == nil {
		e.startAtUtc = nil
		return nil
	}
	if err := ensureUTC(*startAtUtc); err != nil {
		return err
	}
	e.startAtUtc = cloneTime(startAtUtc)
	return nil
}

// MarkChanged 於每次儲存時更新 ChangedAtUtc
func (e *Event) MarkChanged(nowUtc time.Time) error {
	if err := ensureUTC(nowUtc); err != nil {
		return err
	}
	e.changedAtUtc = nowUtc
	return nil
}

func (e *Event) AddChecklist(checklist Checklist) {
	e.checklists = append(e.checklists, NewChecklist(checklist.ID, checklist.Title, checklist.Items))
}

func (e *Event) FindChecklist(id uuid.UUID) (Checklist, bool) {
	idx := slices.IndexFunc(e.checklists, func(c Checklist) bool { return c.ID == id })
	if idx < 0 {
		return Checklist{}, false
	}
	c := e.checklists[idx]
	return NewChecklist(c.ID, c.Title, c.Items), true
}

func (e *Event) RemoveChecklist(id uuid.UUID) bool {
	before := len(e.checklists)
	e.checklists = slices.DeleteFunc(e.checklists, func(c Checklist) bool { return c.ID == id })
	return len(e.checklists) != before
}

// ReplaceChecklist 原位置替換同 id 的清單
func (e *Event) ReplaceChecklist(checklist Checklist) bool {
	idx := slices.IndexFunc(e.checklists, func(c Checklist) bool { return c.ID == checklist.ID })
	if idx < 0 {
		return false
	}
	e.checklists[idx] = NewChecklist(checklist.ID, checklist.Title, checklist.Items)
	return true
}

func (e *Event) AddGuest(guest Guest) {
	g := NewGuest(guest.ID, guest.Name, guest.Contact, guest.Tags)
	g.PhotoURL = cloneString(guest.PhotoURL)
	e.guests = append(e.guests, g)
}

func (e *Event) FindGuest(id uuid.UUID) (Guest, bool) {
	for _, g := range e.Guests() {
		if g.ID == id {
			return g, true
		}
	}
	return Guest{}, false
}

func (e *Event) RemoveGuest(id uuid.UUID) bool {
	before := len(e.guests)
	e.guests = slices.DeleteFunc(e.guests, func(g Guest) bool { return g.ID == id })
	return len(e.guests) != before
}

func (e *Event) SetGuestPhoto(id uuid.UUID, photoURL string) bool {
	for i := range e.guests {
		if e.guests[i].ID == id {
			e.guests[i].PhotoURL = &photoURL
			return true
		}
	}
	return false
}

func (e *Event) AddImageURL(url string) {
	e.imagesUrls = append(e.imagesUrls, url)
}

func ensureUTC(t time.Time) error {
	if t.Location() != time.UTC {
		return ErrNonUTCTime
	}
	return nil
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
