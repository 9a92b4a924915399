package handler

import (
	"net/http"
	"strings"

	"github.com/mars1-events-planning/eventool-backend/internal/auth"
	"github.com/mars1-events-planning/eventool-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const bearerPrefix = "Bearer "

type AuthMiddleware struct {
	tokens auth.TokenService
}

func NewAuthMiddleware(tokens auth.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// Optional token 有效時把主辦人 id 放入 request context，否則以匿名身分繼續
func (m *AuthMiddleware) Optional() gin.HandlerFunc {
	return func(c *gin.Context) {
		m.authenticate(c)
		c.Next()
	}
}

// Required 沒有有效 token 時回傳 401
func (m *AuthMiddleware) Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.authenticate(c) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Next()
	}
}

func (m *AuthMiddleware) authenticate(c *gin.Context) bool {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, bearerPrefix) {
		return false
	}

	organizerID, err := m.tokens.Parse(strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix)))
	if err != nil {
		logger.WithComponent("auth").Debug("Rejected bearer token", zap.Error(err))
		return false
	}

	c.Request = c.Request.WithContext(auth.WithOrganizerID(c.Request.Context(), organizerID))
	return true
}
