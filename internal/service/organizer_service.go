package service

import (
	"context"

	"github.com/mars1-events-planning/eventool-backend/internal/auth"
	"github.com/mars1-events-planning/eventool-backend/internal/model"
	"github.com/mars1-events-planning/eventool-backend/internal/repository"
	"github.com/mars1-events-planning/eventool-backend/internal/storage"
	"github.com/mars1-events-planning/eventool-backend/internal/validation"
	apperrors "github.com/mars1-events-planning/eventool-backend/pkg/app_errors"
	"github.com/mars1-events-planning/eventool-backend/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type OrganizerService interface {
	Register(ctx context.Context, req model.RegisterOrganizerRequest) (*model.Organizer, error)
	// Login 成功時回傳簽發的 token
	Login(ctx context.Context, username, password string) (string, error)
	ChangePassword(ctx context.Context, req model.ChangePasswordRequest) error
	EditOrganizer(ctx context.Context, req model.EditOrganizerRequest) (*model.Organizer, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Organizer, error)
	GetByUsername(ctx context.Context, username string) (*model.Organizer, error)
	SetAvatar(ctx context.Context, organizerID uuid.UUID, image Image) (string, error)
}

type OrganizerServiceImpl struct {
	uow       repository.UnitOfWork
	validator *validation.Validator
	hasher    auth.PasswordHasher
	tokens    auth.TokenService
	images    storage.ImageStorage
}

func NewOrganizerService(
	uow repository.UnitOfWork,
	validator *validation.Validator,
	hasher auth.PasswordHasher,
	tokens auth.TokenService,
	images storage.ImageStorage,
) OrganizerService {
	return &OrganizerServiceImpl{
		uow:       uow,
		validator: validator,
		hasher:    hasher,
		tokens:    tokens,
		images:    images,
	}
}

func (s *OrganizerServiceImpl) Register(ctx context.Context, req model.RegisterOrganizerRequest) (*model.Organizer, error) {
	var organizer *model.Organizer
	err := s.uow.ExecuteAndCommit(ctx, func(ctx context.Context, repos repository.Repositories) error {
		if err := s.validator.Registration(ctx, repos.Organizers(), req); err != nil {
			return err
		}

		hashed, err := s.hasher.Hash(req.Password)
		if err != nil {
			return err
		}

		organizer = model.NewOrganizer(uuid.New(), req.Username, req.FullName, hashed)
		return repos.Organizers().Save(ctx, organizer)
	})
	if err != nil {
		return nil, err
	}

	logger.WithComponent("organizer").Info("Organizer registered",
		zap.String("organizer_id", organizer.ID.String()),
		zap.String("username", organizer.Username))
	return organizer, nil
}

func (s *OrganizerServiceImpl) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" {
		return "", apperrors.ErrUsernameShouldBeFilled
	}

	organizer, err := s.GetByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if organizer == nil {
		return "", apperrors.ErrUserNotFound
	}
	if !s.hasher.Verify(password, organizer.HashedPassword) {
		return "", apperrors.ErrWrongPassword
	}

	return s.tokens.Issue(organizer)
}

func (s *OrganizerServiceImpl) ChangePassword(ctx context.Context, req model.ChangePasswordRequest) error {
	if err := s.validator.ChangePassword(req); err != nil {
		return err
	}

	return s.uow.ExecuteAndCommit(ctx, func(ctx context.Context, repos repository.Repositories) error {
		organizer, err := repos.Organizers().GetByIDOrFail(ctx, req.OrganizerID)
		if err != nil {
			return err
		}
		if !s.hasher.Verify(req.OldPassword, organizer.HashedPassword) {
			return apperrors.ErrWrongPassword
		}

		hashed, err := s.hasher.Hash(req.NewPassword)
		if err != nil {
			return err
		}
		organizer.HashedPassword = hashed
		return repos.Organizers().Save(ctx, organizer)
	})
}

func (s *OrganizerServiceImpl) EditOrganizer(ctx context.Context, req model.EditOrganizerRequest) (*model.Organizer, error) {
	var organizer *model.Organizer
	err := s.uow.ExecuteAndCommit(ctx, func(ctx context.Context, repos repository.Repositories) error {
		var err error
		organizer, err = repos.Organizers().GetByIDOrFail(ctx, req.OrganizerID)
		if err != nil {
			return err
		}
		if err := s.validator.EditOrganizer(ctx, repos.Organizers(), req, organizer.Username); err != nil {
			return err
		}

		if req.Username != nil {
			organizer.Username = *req.Username
		}
		if req.FullName != nil {
			organizer.FullName = *req.FullName
		}
		return repos.Organizers().Save(ctx, organizer)
	})
	if err != nil {
		return nil, err
	}
	return organizer, nil
}

func (s *OrganizerServiceImpl) GetByID(ctx context.Context, id uuid.UUID) (*model.Organizer, error) {
	var organizer *model.Organizer
	err := s.uow.ExecuteReadOnly(ctx, func(ctx context.Context, repos repository.Repositories) error {
		var err error
		organizer, err = repos.Organizers().GetByID(ctx, id)
		return err
	})
	return organizer, err
}

func (s *OrganizerServiceImpl) GetByUsername(ctx context.Context, username string) (*model.Organizer, error) {
	var organizer *model.Organizer
	err := s.uow.ExecuteReadOnly(ctx, func(ctx context.Context, repos repository.Repositories) error {
		var err error
		organizer, err = repos.Organizers().GetByUsername(ctx, username)
		return err
	})
	return organizer, err
}

func (s *OrganizerServiceImpl) SetAvatar(ctx context.Context, organizerID uuid.UUID, image Image) (string, error) {
	if err := image.Validate(); err != nil {
		return "", err
	}

	var url string
	err := s.uow.ExecuteAndCommit(ctx, func(ctx context.Context, repos repository.Repositories) error {
		organizer, err := repos.Organizers().GetByIDOrFail(ctx, organizerID)
		if err != nil {
			return err
		}

		url, err = s.images.Upload(ctx, image.Body, image.Size, image.ContentType, organizerAvatarKey(organizerID))
		if err != nil {
			return err
		}
		organizer.PhotoURL = &url
		return repos.Organizers().Save(ctx, organizer)
	})
	if err != nil {
		return "", err
	}
	return url, nil
}
