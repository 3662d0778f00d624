//go:build unit

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"coach-booking-api/internal/handler/middleware"
	"coach-booking-api/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signedToken(t *testing.T, secret string, mutate func(*jwt.RegisteredClaims)) string {
	t.Helper()

	registered := jwt.RegisteredClaims{
		Subject:   uuid.New().String(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	if mutate != nil {
		mutate(&registered)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, struct {
		Email string `json:"email"`
		Name  string `json:"name"`
		jwt.RegisteredClaims
	}{
		Email:            "client@example.com",
		Name:             "Jordan Client",
		RegisteredClaims: registered,
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func authTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	auth := middleware.NewAuthMiddleware(config.JWTConfig{Secret: testSecret})
	router.GET("/protected", auth.RequireAuth(), func(c *gin.Context) {
		userID, _ := middleware.GetUserID(c)
		c.JSON(http.StatusOK, gin.H{
			"user_id": userID,
			"email":   middleware.GetUserEmail(c),
			"name":    middleware.GetUserName(c),
		})
	})
	return router
}

func performAuthRequest(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRequireAuth(t *testing.T) {
	router := authTestRouter()

	t.Run("valid token exposes the user identity", func(t *testing.T) {
		rec := performAuthRequest(router, "Bearer "+signedToken(t, testSecret, nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "client@example.com")
		assert.Contains(t, rec.Body.String(), "Jordan Client")
	})

	t.Run("missing header", func(t *testing.T) {
		rec := performAuthRequest(router, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("non-bearer scheme", func(t *testing.T) {
		rec := performAuthRequest(router, "Basic dXNlcjpwYXNz")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token signed with the wrong secret", func(t *testing.T) {
		rec := performAuthRequest(router, "Bearer "+signedToken(t, "other-secret", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		token := signedToken(t, testSecret, func(cl *jwt.RegisteredClaims) {
			cl.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))
		})
		rec := performAuthRequest(router, "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("subject that is not a uuid", func(t *testing.T) {
		token := signedToken(t, testSecret, func(cl *jwt.RegisteredClaims) {
			cl.Subject = "user-42"
		})
		rec := performAuthRequest(router, "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
