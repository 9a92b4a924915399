package auth

import (
	"context"

	apperrors "github.com/mars1-events-planning/eventool-backend/pkg/app_errors"

	"github.com/google/uuid"
)

type organizerIDKey struct{}

func WithOrganizerID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, organizerIDKey{}, id)
}

func OrganizerIDFrom(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(organizerIDKey{}).(uuid.UUID)
	return id, ok
}

// RequireOrganizerID 未通過驗證時回傳 ErrUnauthenticated
func RequireOrganizerID(ctx context.Context) (uuid.UUID, error) {
	id, ok := OrganizerIDFrom(ctx)
	if !ok {
		return uuid.Nil, apperrors.ErrUnauthenticated
	}
	return id, nil
}
