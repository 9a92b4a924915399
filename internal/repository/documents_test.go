package repository

import (
	"testing"
	"time"

	"github.com/mars1-events-planning/eventool-backend/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventDocument_RoundTrip(t *testing.T) {
	createdAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	start := createdAt.Add(72 * time.Hour)
	photo := "https://cdn.test/guest.png"
	address := "Main street 1"

	event, err := model.NewEvent(uuid.New(), uuid.New(), createdAt, "Birthday")
	require.NoError(t, err)
	event.SetAddress(&address)
	require.NoError(t, event.SetStartAtUtc(&start))
	event.AddChecklist(model.NewChecklist(uuid.New(), "Packing", []model.ChecklistItem{
		{Title: "Cake", Done: false},
		{Title: "Candles", Done: true},
	}))
	guest := model.NewGuest(uuid.New(), "Alice", "alice@example.com", []string{"family"})
	guest.PhotoURL = &photo
	event.AddGuest(guest)
	event.AddImageURL("https://cdn.test/event.png")

	raw, err := EncodeEvent(event)
	require.NoError(t, err)
	decoded, err := DecodeEvent(raw)
	require.NoError(t, err)

	assert.Equal(t, event.State(), decoded.State())
}

func TestEventDocument_SnakeCaseKeys(t *testing.T) {
	event, err := model.NewEvent(uuid.New(), uuid.New(), time.Now().UTC(), "Party")
	require.NoError(t, err)
	event.AddChecklist(model.NewChecklist(uuid.New(), "Food", nil))

	raw, err := EncodeEvent(event)
	require.NoError(t, err)

	for _, key := range []string{`"creator_id"`, `"changed_at_utc"`, `"checklist_items"`, `"images_urls"`} {
		assert.Contains(t, string(raw), key)
	}
}

func TestDecodeEvent_NormalizesToUTC(t *testing.T) {
	raw := []byte(`{
		"id": "6f1c3f4e-6f5a-4c43-9d0e-0b8f4c7d2a11",
		"creator_id": "0b2d1c8e-2f0a-4a7e-8f43-58e1d8c0a7b2",
		"title": "Party",
		"created_at": "2026-03-01T13:00:00+03:00",
		"changed_at_utc": "2026-03-01T13:00:00+03:00",
		"start_at_utc": "2026-03-05T20:00:00+03:00",
		"checklists": [],
		"guests": [],
		"images_urls": []
	}`)

	event, err := DecodeEvent(raw)

	require.NoError(t, err)
	assert.Equal(t, time.UTC, event.CreatedAt().Location())
	assert.Equal(t, 10, event.CreatedAt().Hour())
	require.NotNil(t, event.StartAtUtc())
	assert.Equal(t, time.UTC, event.StartAtUtc().Location())
}

func TestDecodeEvent_Invalid(t *testing.T) {
	_, err := DecodeEvent([]byte(`{"id": 42}`))
	assert.Error(t, err)
}

func TestOrganizerDocument_RoundTrip(t *testing.T) {
	photo := "https://cdn.test/avatar.png"
	organizer := model.NewOrganizer(uuid.New(), "john", "John Doe", model.HashedPassword{Hash: "aGFzaA==", Salt: "c2FsdA=="})
	organizer.PhotoURL = &photo

	assert.Equal(t, organizer, toOrganizerDocument(organizer).toDomain())
}
