package service_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/mars1-events-planning/eventool-backend/config"
	"github.com/mars1-events-planning/eventool-backend/internal/auth"
	"github.com/mars1-events-planning/eventool-backend/internal/cache"
	"github.com/mars1-events-planning/eventool-backend/internal/model"
	"github.com/mars1-events-planning/eventool-backend/internal/repository/memstore"
	"github.com/mars1-events-planning/eventool-backend/internal/service"
	"github.com/mars1-events-planning/eventool-backend/internal/validation"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// fakeImageStorage 記錄上傳的 key，不實際連線
type fakeImageStorage struct {
	mu   sync.Mutex
	keys []string
	err  error
}

func (f *fakeImageStorage) Upload(_ context.Context, body io.Reader, _ int64, _ string, key string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if _, err := io.Copy(io.Discard, body); err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.keys = append(f.keys, key)
	return fmt.Sprintf("https://cdn.test/eventool/%s", key), nil
}

// generationCache 記憶體版的世代快取，beforeSet 可在寫入前暫停
type generationCache struct {
	mu          sync.Mutex
	events      map[uuid.UUID]*model.Event
	generations map[uuid.UUID]int64
	beforeSet   func()
}

func newGenerationCache() *generationCache {
	return &generationCache{
		events:      make(map[uuid.UUID]*model.Event),
		generations: make(map[uuid.UUID]int64),
	}
}

func (c *generationCache) Get(_ context.Context, eventID uuid.UUID) (*model.Event, int64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	event, ok := c.events[eventID]
	return event, c.generations[eventID], ok
}

func (c *generationCache) Set(_ context.Context, event *model.Event, generation int64) {
	if c.beforeSet != nil {
		c.beforeSet()
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generations[event.ID()] != generation {
		return
	}
	c.events[event.ID()] = event
}

func (c *generationCache) Invalidate(_ context.Context, eventID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generations[eventID]++
	delete(c.events, eventID)
}

type testEnv struct {
	store      *memstore.Store
	images     *fakeImageStorage
	events     service.EventService
	organizers service.OrganizerService
}

func setupServices(t *testing.T) *testEnv {
	t.Helper()
	return setupServicesWithCache(t, cache.NopEventCache{})
}

func setupServicesWithCache(t *testing.T, eventCache cache.EventCache) *testEnv {
	t.Helper()

	store := memstore.New()
	images := &fakeImageStorage{}
	validator := validation.New()
	cfg := config.LoadTestConfig()

	return &testEnv{
		store:  store,
		images: images,
		events: service.NewEventService(store, validator, eventCache, images),
		organizers: service.NewOrganizerService(store, validator,
			auth.NewPasswordHasher(), auth.NewTokenService(cfg.JWT), images),
	}
}

func (env *testEnv) registerOrganizer(t *testing.T, username string) *model.Organizer {
	t.Helper()

	organizer, err := env.organizers.Register(context.Background(), model.RegisterOrganizerRequest{
		Username: username,
		FullName: "Test Organizer",
		Password: "Secret1",
	})
	require.NoError(t, err)
	return organizer
}

func (env *testEnv) createEvent(t *testing.T, organizerID uuid.UUID, title string) *model.Event {
	t.Helper()

	event, err := env.events.CreateEvent(context.Background(), organizerID, title)
	require.NoError(t, err)
	return event
}

func strPtr(s string) *string { return &s }

func idPtr(id uuid.UUID) *uuid.UUID { return &id }

func futureTime() time.Time {
	return time.Now().UTC().Add(48 * time.Hour).Truncate(time.Second)
}

func pngImage() service.Image {
	body := []byte("\x89PNG\r\n\x1a\nfake")
	return service.Image{
		FileName:    "photo.PNG",
		ContentType: "image/png",
		Size:        int64(len(body)),
		Body:        bytes.NewReader(body),
	}
}
