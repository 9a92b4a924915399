package auth

import (
	"context"
	"testing"
	"time"

	"github.com/mars1-events-planning/eventool-backend/config"
	"github.com/mars1-events-planning/eventool-backend/internal/model"
	apperrors "github.com/mars1-events-planning/eventool-backend/pkg/app_errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHasher(t *testing.T) {
	hasher := NewPasswordHasher()

	hashed, err := hasher.Hash("Secret1")
	require.NoError(t, err)

	t.Run("Success", func(t *testing.T) {
		assert.True(t, hasher.Verify("Secret1", hashed))
	})

	t.Run("Failed - wrong password", func(t *testing.T) {
		assert.False(t, hasher.Verify("Secret2", hashed))
	})

	t.Run("Failed - corrupted salt", func(t *testing.T) {
		assert.False(t, hasher.Verify("Secret1", model.HashedPassword{Hash: hashed.Hash, Salt: "%%%"}))
	})

	t.Run("FreshSaltPerHash", func(t *testing.T) {
		again, err := hasher.Hash("Secret1")
		require.NoError(t, err)
		assert.NotEqual(t, hashed.Salt, again.Salt)
		assert.NotEqual(t, hashed.Hash, again.Hash)
	})
}

func newTestTokenService(now time.Time) *JWTTokenService {
	cfg := config.LoadTestConfig().JWT
	return &JWTTokenService{cfg: cfg, now: func() time.Time { return now }}
}

func TestTokenService(t *testing.T) {
	organizer := &model.Organizer{ID: uuid.New(), Username: "john"}
	now := time.Now()

	t.Run("Success", func(t *testing.T) {
		svc := newTestTokenService(now)

		token, err := svc.Issue(organizer)
		require.NoError(t, err)

		id, err := svc.Parse(token)
		require.NoError(t, err)
		assert.Equal(t, organizer.ID, id)
	})

	t.Run("Failed - expired", func(t *testing.T) {
		token, err := newTestTokenService(now).Issue(organizer)
		require.NoError(t, err)

		_, err = newTestTokenService(now.Add(2 * time.Hour)).Parse(token)

		assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
	})

	t.Run("Failed - foreign key", func(t *testing.T) {
		claims := Claims{
			OrganizerID: organizer.ID.String(),
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    "eventool-test",
				Audience:  jwt.ClaimStrings{"eventool-test"},
				ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("another-key"))
		require.NoError(t, err)

		_, err = newTestTokenService(now).Parse(token)

		assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
	})

	t.Run("Failed - garbage", func(t *testing.T) {
		_, err := newTestTokenService(now).Parse("not-a-token")
		assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
	})
}

func TestOrganizerContext(t *testing.T) {
	_, err := RequireOrganizerID(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)

	id := uuid.New()
	got, err := RequireOrganizerID(WithOrganizerID(context.Background(), id))
	require.NoError(t, err)
	assert.Equal(t, id, got)
}
