package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"coach-booking-api/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	ctxUserIDKey    = "user_id"
	ctxUserEmailKey = "user_email"
	ctxUserNameKey  = "user_name"
)

type AuthMiddleware struct {
	secret []byte
}

func NewAuthMiddleware(cfg config.JWTConfig) *AuthMiddleware {
	return &AuthMiddleware{secret: []byte(cfg.Secret)}
}

type claims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		var token string
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
			token = strings.TrimSpace(authHeader[len("Bearer "):])
		}

		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Access token required",
			})
			c.Abort()
			return
		}

		userID, cl, err := m.validate(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		c.Set(ctxUserIDKey, userID)
		c.Set(ctxUserEmailKey, cl.Email)
		c.Set(ctxUserNameKey, cl.Name)
		c.Next()
	}
}

func (m *AuthMiddleware) validate(token string) (uuid.UUID, *claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil {
		return uuid.Nil, nil, err
	}

	cl, ok := parsed.Claims.(*claims)
	if !ok || !parsed.Valid {
		return uuid.Nil, nil, errors.New("invalid token claims")
	}

	userID, err := uuid.Parse(cl.Subject)
	if err != nil {
		return uuid.Nil, nil, errors.New("invalid subject claim")
	}
	return userID, cl, nil
}

func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get(ctxUserIDKey)
	if !exists {
		return uuid.Nil, false
	}

	id, ok := userID.(uuid.UUID)
	return id, ok
}

func GetUserEmail(c *gin.Context) string {
	if email, exists := c.Get(ctxUserEmailKey); exists {
		if s, ok := email.(string); ok {
			return s
		}
	}
	return ""
}

func GetUserName(c *gin.Context) string {
	if name, exists := c.Get(ctxUserNameKey); exists {
		if s, ok := name.(string); ok {
			return s
		}
	}
	return ""
}
