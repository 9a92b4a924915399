package mocks

import (
	"context"

	"github.com/mars1-events-planning/eventool-backend/internal/model"
	"github.com/mars1-events-planning/eventool-backend/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type OrganizerServiceMock struct {
	mock.Mock
}

func NewOrganizerServiceMock() *OrganizerServiceMock {
	return &OrganizerServiceMock{}
}

func (m *OrganizerServiceMock) organizer(args mock.Arguments) (*model.Organizer, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Organizer), args.Error(1)
}

func (m *OrganizerServiceMock) Register(ctx context.Context, req model.RegisterOrganizerRequest) (*model.Organizer, error) {
	return m.organizer(m.Called(ctx, req))
}

func (m *OrganizerServiceMock) Login(ctx context.Context, username, password string) (string, error) {
	args := m.Called(ctx, username, password)
	return args.String(0), args.Error(1)
}

func (m *OrganizerServiceMock) ChangePassword(ctx context.Context, req model.ChangePasswordRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *OrganizerServiceMock) EditOrganizer(ctx context.Context, req model.EditOrganizerRequest) (*model.Organizer, error) {
	return m.organizer(m.Called(ctx, req))
}

func (m *OrganizerServiceMock) GetByID(ctx context.Context, id uuid.UUID) (*model.Organizer, error) {
	return m.organizer(m.Called(ctx, id))
}

func (m *OrganizerServiceMock) GetByUsername(ctx context.Context, username string) (*model.Organizer, error) {
	return m.organizer(m.Called(ctx, username))
}

func (m *OrganizerServiceMock) SetAvatar(ctx context.Context, organizerID uuid.UUID, image service.Image) (string, error) {
	args := m.Called(ctx, organizerID, image)
	return args.String(0), args.Error(1)
}

var (
	_ service.EventService     = (*EventServiceMock)(nil)
	_ service.OrganizerService = (*OrganizerServiceMock)(nil)
)
