package mocks

import (
	"context"

	"github.com/mars1-events-planning/eventool-backend/internal/model"
	"github.com/mars1-events-planning/eventool-backend/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type EventServiceMock struct {
	mock.Mock
}

func NewEventServiceMock() *EventServiceMock {
	return &EventServiceMock{}
}

func (m *EventServiceMock) event(args mock.Arguments) (*model.Event, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (m *EventServiceMock) SaveEvent(ctx context.Context, organizerID uuid.UUID, changes model.EventChanges) (*model.Event, error) {
	return m.event(m.Called(ctx, organizerID, changes))
}

func (m *EventServiceMock) CreateEvent(ctx context.Context, organizerID uuid.UUID, title string) (*model.Event, error) {
	return m.event(m.Called(ctx, organizerID, title))
}

func (m *EventServiceMock) EditEvent(ctx context.Context, req model.EditEventRequest) (*model.Event, error) {
	return m.event(m.Called(ctx, req))
}

func (m *EventServiceMock) SaveChecklist(ctx context.Context, req model.SaveChecklistRequest) (*model.Event, error) {
	return m.event(m.Called(ctx, req))
}

func (m *EventServiceMock) DeleteChecklist(ctx context.Context, organizerID, eventID, checklistID uuid.UUID) (*model.Event, error) {
	return m.event(m.Called(ctx, organizerID, eventID, checklistID))
}

func (m *EventServiceMock) DeleteGuest(ctx context.Context, organizerID, eventID, guestID uuid.UUID) (*model.Event, error) {
	return m.event(m.Called(ctx, organizerID, eventID, guestID))
}

func (m *EventServiceMock) DeleteEvent(ctx context.Context, organizerID, eventID uuid.UUID) error {
	args := m.Called(ctx, organizerID, eventID)
	return args.Error(0)
}

func (m *EventServiceMock) GetByID(ctx context.Context, organizerID, eventID uuid.UUID) (*model.Event, error) {
	return m.event(m.Called(ctx, organizerID, eventID))
}

func (m *EventServiceMock) ListByOrganizer(ctx context.Context, organizerID uuid.UUID, page int) ([]*model.Event, error) {
	args := m.Called(ctx, organizerID, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Event), args.Error(1)
}

func (m *EventServiceMock) AddEventImage(ctx context.Context, organizerID, eventID uuid.UUID, image service.Image) (string, error) {
	args := m.Called(ctx, organizerID, eventID, image)
	return args.String(0), args.Error(1)
}

func (m *EventServiceMock) SetGuestPhoto(ctx context.Context, organizerID, eventID, guestID uuid.UUID, image service.Image) (string, error) {
	args := m.Called(ctx, organizerID, eventID, guestID, image)
	return args.String(0), args.Error(1)
}
