package repository

import (
	"context"

	"github.com/mars1-events-planning/eventool-backend/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type EventRepository interface {
	// GetByID 找不到時回傳 nil, nil
	GetByID(ctx context.Context, id uuid.UUID) (*model.Event, error)
	// Save 新增或覆寫活動，並將 ChangedAtUtc 更新為目前時間
	Save(ctx context.Context, event *model.Event) error
	Remove(ctx context.Context, event *model.Event) error
	// ListByCreator 依 changed_at 由新到舊分頁，page 從 0 開始
	ListByCreator(ctx context.Context, creatorID uuid.UUID, page, pageSize int) ([]*model.Event, error)
}

type OrganizerRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Organizer, error)
	GetByIDOrFail(ctx context.Context, id uuid.UUID) (*model.Organizer, error)
	GetByUsername(ctx context.Context, username string) (*model.Organizer, error)
	UsernameTaken(ctx context.Context, username string) (bool, error)
	EnsureExists(ctx context.Context, id uuid.UUID) error
	Save(ctx context.Context, organizer *model.Organizer) error
}

// Repositories 同一個交易內的 repository 集合
type Repositories interface {
	Events() EventRepository
	Organizers() OrganizerRepository
}

// UnitOfWork 每個請求一個交易範圍：action 回傳 nil 才提交，其餘情況一律回滾
type UnitOfWork interface {
	ExecuteAndCommit(ctx context.Context, action func(ctx context.Context, repos Repositories) error) error
	ExecuteReadOnly(ctx context.Context, action func(ctx context.Context, repos Repositories) error) error
}

// DBTX pgx.Tx 與 *pgxpool.Pool 共同的查詢介面
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type pgRepositories struct {
	events     EventRepository
	organizers OrganizerRepository
}

func NewRepositories(db DBTX) Repositories {
	return &pgRepositories{
		events:     NewEventRepository(db),
		organizers: NewOrganizerRepository(db),
	}
}

func (r *pgRepositories) Events() EventRepository {
	return r.events
}

func (r *pgRepositories) Organizers() OrganizerRepository {
	return r.organizers
}
