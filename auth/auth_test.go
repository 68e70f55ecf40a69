package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fljobs/backend/config"
	"github.com/fljobs/backend/models"
)

func newTestJWT(secret string) *JWTService {
	return NewJWTService(&config.Config{JWTSecret: secret, JWTExpiryHours: 1})
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := newTestJWT("secret")

	token, err := svc.GenerateToken(&models.User{ID: "u1", Email: "a@b.c"})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID())
	assert.Equal(t, "a@b.c", claims.Email)
}

func TestValidateTokenRejects(t *testing.T) {
	svc := newTestJWT("secret")
	token, err := svc.GenerateToken(&models.User{ID: "u1"})
	require.NoError(t, err)

	_, err = newTestJWT("other").ValidateToken(token)
	assert.Error(t, err, "wrong secret")

	expired := newTestJWT("secret")
	expired.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = expired.ValidateToken(token)
	assert.Error(t, err, "expired")

	_, err = svc.ValidateToken("garbage")
	assert.Error(t, err)

	noSubject, err := svc.GenerateToken(&models.User{})
	require.NoError(t, err)
	_, err = svc.ValidateToken(noSubject)
	assert.Error(t, err)
}

func TestRefreshToken(t *testing.T) {
	svc := newTestJWT("secret")
	start := time.Now()
	svc.now = func() time.Time { return start }
	token, err := svc.GenerateToken(&models.User{ID: "u1"})
	require.NoError(t, err)

	svc.now = func() time.Time { return start.Add(30 * time.Minute) }
	refreshed, err := svc.RefreshToken(token)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(refreshed)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID())
	assert.True(t, claims.ExpiresAt.After(start.Add(80*time.Minute)))
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("password123")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", hash)
	assert.True(t, CheckPassword("password123", hash))
	assert.False(t, CheckPassword("wrong", hash))

	_, err = HashPassword("short")
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := newTestJWT("secret")
	token, err := svc.GenerateToken(&models.User{ID: "u1"})
	require.NoError(t, err)

	r := gin.New()
	r.GET("/me", AuthMiddleware(svc), func(c *gin.Context) {
		c.String(http.StatusOK, GetAuthClaims(c).UserID())
	})

	tests := []struct {
		name   string
		header string
		code   int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"empty bearer", "Bearer ", http.StatusUnauthorized},
		{"bad token", "Bearer nope", http.StatusUnauthorized},
		{"valid", "Bearer " + token, http.StatusOK},
		{"lowercase scheme", "bearer " + token, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.code, w.Code)
			if tt.code == http.StatusOK {
				assert.Equal(t, "u1", w.Body.String())
			}
		})
	}
}
