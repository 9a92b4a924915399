package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mars1-events-planning/eventool-backend/internal/model"
	apperrors "github.com/mars1-events-planning/eventool-backend/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

type OrganizerRepositoryImpl struct {
	db DBTX
}

func NewOrganizerRepository(db DBTX) OrganizerRepository {
	return &OrganizerRepositoryImpl{
		db: db,
	}
}

func (r *OrganizerRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*model.Organizer, error) {
	query := `
		SELECT data
		FROM organizers
		WHERE id = $1
	`
	return r.getOne(ctx, query, id)
}

func (r *OrganizerRepositoryImpl) GetByIDOrFail(ctx context.Context, id uuid.UUID) (*model.Organizer, error) {
	organizer, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if organizer == nil {
		return nil, apperrors.NewOrganizerNotFound(id)
	}
	return organizer, nil
}

func (r *OrganizerRepositoryImpl) GetByUsername(ctx context.Context, username string) (*model.Organizer, error) {
	query := `
		SELECT data
		FROM organizers
		WHERE username = $1
	`
	return r.getOne(ctx, query, username)
}

func (r *OrganizerRepositoryImpl) UsernameTaken(ctx context.Context, username string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM organizers WHERE username = $1)`

	var taken bool
	if err := r.db.QueryRow(ctx, query, username).Scan(&taken); err != nil {
		return false, fmt.Errorf("failed to check username: %w", err)
	}
	return taken, nil
}

func (r *OrganizerRepositoryImpl) EnsureExists(ctx context.Context, id uuid.UUID) error {
	query := `SELECT EXISTS (SELECT 1 FROM organizers WHERE id = $1)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check organizer: %w", err)
	}
	if !exists {
		return apperrors.NewOrganizerNotFound(id)
	}
	return nil
}

func (r *OrganizerRepositoryImpl) Save(ctx context.Context, organizer *model.Organizer) error {
	data, err := json.Marshal(toOrganizerDocument(organizer))
	if err != nil {
		return fmt.Errorf("failed to encode organizer: %w", err)
	}

	query := `
		INSERT INTO organizers (id, username, data)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE
		SET username = EXCLUDED.username, data = EXCLUDED.data
	`
	_, err = r.db.Exec(ctx, query, organizer.ID, organizer.Username, data)
	if err != nil {
		// 檢查與提交之間的競態由唯一索引擋下
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return apperrors.NewValidationError(apperrors.FieldError{
				Field:   "username",
				Message: "username is already taken",
			})
		}
		return fmt.Errorf("failed to save organizer: %w", err)
	}
	return nil
}

func (r *OrganizerRepositoryImpl) getOne(ctx context.Context, query string, arg any) (*model.Organizer, error) {
	var raw []byte
	err := r.db.QueryRow(ctx, query, arg).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get organizer: %w", err)
	}

	var doc organizerDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode organizer: %w", err)
	}
	return doc.toDomain(), nil
}
