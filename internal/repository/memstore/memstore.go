// Package memstore 以記憶體實作 repository.UnitOfWork。
// 每個交易操作一份快照，成功時才替換，失敗或取消時直接丟棄。
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/mars1-events-planning/eventool-backend/internal/model"
	"github.com/mars1-events-planning/eventool-backend/internal/repository"
	apperrors "github.com/mars1-events-planning/eventool-backend/pkg/app_errors"

	"github.com/google/uuid"
)

type Store struct {
	mu         sync.Mutex
	events     map[uuid.UUID]model.EventState
	organizers map[uuid.UUID]model.Organizer
	now        func() time.Time
}

func New() *Store {
	return &Store{
		events:     make(map[uuid.UUID]model.EventState),
		organizers: make(map[uuid.UUID]model.Organizer),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (s *Store) ExecuteAndCommit(ctx context.Context, action func(ctx context.Context, repos repository.Repositories) error) error {
	return s.run(ctx, true, action)
}

func (s *Store) ExecuteReadOnly(ctx context.Context, action func(ctx context.Context, repos repository.Repositories) error) error {
	return s.run(ctx, false, action)
}

// 交易依序執行，等同 serializable
func (s *Store) run(ctx context.Context, commit bool, action func(ctx context.Context, repos repository.Repositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &txState{
		events:     make(map[uuid.UUID]model.EventState, len(s.events)),
		organizers: make(map[uuid.UUID]model.Organizer, len(s.organizers)),
		now:        s.now,
	}
	for id, e := range s.events {
		tx.events[id] = e
	}
	for id, o := range s.organizers {
		tx.organizers[id] = o
	}

	if err := action(ctx, tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if commit {
		s.events = tx.events
		s.organizers = tx.organizers
	}
	return nil
}

type txState struct {
	events     map[uuid.UUID]model.EventState
	organizers map[uuid.UUID]model.Organizer
	now        func() time.Time
}

func (t *txState) Events() repository.EventRepository {
	return eventRepository{t}
}

func (t *txState) Organizers() repository.OrganizerRepository {
	return organizerRepository{t}
}

type eventRepository struct {
	tx *txState
}

func (r eventRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Event, error) {
	state, ok := r.tx.events[id]
	if !ok {
		return nil, ctx.Err()
	}
	return model.RestoreEvent(state)
}

func (r eventRepository) Save(ctx context.Context, event *model.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := event.MarkChanged(r.tx.now()); err != nil {
		return err
	}
	r.tx.events[event.ID()] = event.State()
	return nil
}

func (r eventRepository) Remove(ctx context.Context, event *model.Event) error {
	delete(r.tx.events, event.ID())
	return ctx.Err()
}

func (r eventRepository) ListByCreator(ctx context.Context, creatorID uuid.UUID, page, pageSize int) ([]*model.Event, error) {
	states := make([]model.EventState, 0)
	for _, state := range r.tx.events {
		if state.CreatorID == creatorID {
			states = append(states, state)
		}
	}
	// 時間相同時以 id 排序，分頁結果才穩定
	sort.SliceStable(states, func(i, j int) bool {
		if !states[i].ChangedAtUtc.Equal(states[j].ChangedAtUtc) {
			return states[i].ChangedAtUtc.After(states[j].ChangedAtUtc)
		}
		return states[i].ID.String() < states[j].ID.String()
	})

	events := make([]*model.Event, 0)
	start := page * pageSize
	if start >= len(states) {
		return events, ctx.Err()
	}
	end := min(start+pageSize, len(states))
	for _, state := range states[start:end] {
		event, err := model.RestoreEvent(state)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, ctx.Err()
}

type organizerRepository struct {
	tx *txState
}

func (r organizerRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Organizer, error) {
	o, ok := r.tx.organizers[id]
	if !ok {
		return nil, ctx.Err()
	}
	return cloneOrganizer(o), nil
}

func (r organizerRepository) GetByIDOrFail(ctx context.Context, id uuid.UUID) (*model.Organizer, error) {
	o, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, apperrors.NewOrganizerNotFound(id)
	}
	return o, nil
}

func (r organizerRepository) GetByUsername(ctx context.Context, username string) (*model.Organizer, error) {
	for _, o := range r.tx.organizers {
		if o.Username == username {
			return cloneOrganizer(o), nil
		}
	}
	return nil, ctx.Err()
}

func (r organizerRepository) UsernameTaken(ctx context.Context, username string) (bool, error) {
	o, err := r.GetByUsername(ctx, username)
	return o != nil, err
}

func (r organizerRepository) EnsureExists(ctx context.Context, id uuid.UUID) error {
	_, err := r.GetByIDOrFail(ctx, id)
	return err
}

func (r organizerRepository) Save(ctx context.Context, organizer *model.Organizer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	for id, o := range r.tx.organizers {
		if id != organizer.ID && o.Username == organizer.Username {
			return apperrors.NewValidationError(apperrors.FieldError{
				Field:   "username",
				Message: "username is already taken",
			})
		}
	}
	r.tx.organizers[organizer.ID] = *cloneOrganizer(*organizer)
	return nil
}

func cloneOrganizer(o model.Organizer) *model.Organizer {
	if o.PhotoURL != nil {
		photo := *o.PhotoURL
		o.PhotoURL = &photo
	}
	return &o
}
