package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"

	"github.com/mars1-events-planning/eventool-backend/internal/model"

	"golang.org/x/crypto/pbkdf2"
)

const (
	pbkdf2Iterations = 50000
	saltSize         = 16
	keySize          = 32
)

type PasswordHasher interface {
	Hash(password string) (model.HashedPassword, error)
	Verify(password string, hashed model.HashedPassword) bool
}

// PBKDF2Hasher PBKDF2-SHA256，雜湊與鹽值以 base64 儲存
type PBKDF2Hasher struct {
	iterations int
}

func NewPasswordHasher() PasswordHasher {
	return &PBKDF2Hasher{iterations: pbkdf2Iterations}
}

func (h *PBKDF2Hasher) Hash(password string) (model.HashedPassword, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return model.HashedPassword{}, fmt.Errorf("failed to generate salt: %w", err)
	}
	key := pbkdf2.Key([]byte(password), salt, h.iterations, keySize, sha256.New)
	return model.HashedPassword{
		Hash: base64.StdEncoding.EncodeToString(key),
		Salt: base64.StdEncoding.EncodeToString(salt),
	}, nil
}

func (h *PBKDF2Hasher) Verify(password string, hashed model.HashedPassword) bool {
	salt, err := base64.StdEncoding.DecodeString(hashed.Salt)
	if err != nil {
		return false
	}
	expected, err := base64.StdEncoding.DecodeString(hashed.Hash)
	if err != nil {
		return false
	}
	key := pbkdf2.Key([]byte(password), salt, h.iterations, len(expected), sha256.New)
	return subtle.ConstantTimeCompare(key, expected) == 1
}
