package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mars1-events-planning/eventool-backend/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type EventRepositoryImpl struct {
	db DBTX
}

func NewEventRepository(db DBTX) EventRepository {
	return &EventRepositoryImpl{
		db: db,
	}
}

func (r *EventRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*model.Event, error) {
	query := `
		SELECT data
		FROM events
		WHERE id = $1
	`

	var raw []byte
	err := r.db.QueryRow(ctx, query, id).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	return DecodeEvent(raw)
}

func (r *EventRepositoryImpl) Save(ctx context.Context, event *model.Event) error {
	if err := event.MarkChanged(time.Now().UTC()); err != nil {
		return err
	}

	data, err := EncodeEvent(event)
	if err != nil {
		return err
	}

	// creator_id 建立後不可變更
	query := `
		INSERT INTO events (id, creator_id, changed_at, data)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET changed_at = EXCLUDED.changed_at, data = EXCLUDED.data
	`
	_, err = r.db.Exec(ctx, query, event.ID(), event.CreatorID(), event.ChangedAtUtc(), data)
	if err != nil {
		return fmt.Errorf("failed to save event: %w", err)
	}
	return nil
}

func (r *EventRepositoryImpl) Remove(ctx context.Context, event *model.Event) error {
	query := `
		DELETE FROM events
		WHERE id = $1
	`
	if _, err := r.db.Exec(ctx, query, event.ID()); err != nil {
		return fmt.Errorf("failed to remove event: %w", err)
	}
	return nil
}

func (r *EventRepositoryImpl) ListByCreator(ctx context.Context, creatorID uuid.UUID, page, pageSize int) ([]*model.Event, error) {
	query := `
		SELECT data
		FROM events
		WHERE creator_id = $1
		ORDER BY changed_at DESC, id
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, creatorID, pageSize, page*pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	events := make([]*model.Event, 0)
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		event, err := DecodeEvent(raw)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

// EncodeEvent 活動轉為 JSON 文件
func EncodeEvent(event *model.Event) ([]byte, error) {
	data, err := json.Marshal(toEventDocument(event))
	if err != nil {
		return nil, fmt.Errorf("failed to encode event: %w", err)
	}
	return data, nil
}

func DecodeEvent(raw []byte) (*model.Event, error) {
	var doc eventDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode event: %w", err)
	}
	return doc.toDomain()
}
