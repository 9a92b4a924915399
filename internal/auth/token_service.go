package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/mars1-events-planning/eventool-backend/config"
	"github.com/mars1-events-planning/eventool-backend/internal/model"
	apperrors "github.com/mars1-events-planning/eventool-backend/pkg/app_errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// OrganizerIDClaim token 中攜帶主辦人 id 的 claim 名稱
const OrganizerIDClaim = "organizerId"

type Claims struct {
	OrganizerID string `json:"organizerId"`
	jwt.RegisteredClaims
}

type TokenService interface {
	Issue(organizer *model.Organizer) (string, error)
	Parse(token string) (uuid.UUID, error)
}

type JWTTokenService struct {
	cfg config.JWTConfig
	now func() time.Time
}

func NewTokenService(cfg config.JWTConfig) TokenService {
	return &JWTTokenService{cfg: cfg, now: time.Now}
}

func (s *JWTTokenService) Issue(organizer *model.Organizer) (string, error) {
	now := s.now().UTC()
	claims := Claims{
		OrganizerID: organizer.ID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.cfg.Issuer,
			Audience:  jwt.ClaimStrings{s.cfg.Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TTL)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.Key))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Parse 驗證簽章、issuer、audience 與到期時間
func (s *JWTTokenService) Parse(token string) (uuid.UUID, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims,
		func(t *jwt.Token) (interface{}, error) { return []byte(s.cfg.Key), nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.cfg.Issuer),
		jwt.WithAudience(s.cfg.Audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return uuid.Nil, errors.Join(apperrors.ErrUnauthenticated, err)
	}
	id, err := uuid.Parse(claims.OrganizerID)
	if err != nil {
		return uuid.Nil, errors.Join(apperrors.ErrUnauthenticated, err)
	}
	return id, nil
}
