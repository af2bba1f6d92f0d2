package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"document-service/pkg/middleware"
)

const secret = "very_very_secret_key"

func signedToken(t *testing.T, secret string, uid uint64, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"uid": uid,
		"exp": exp.Unix(),
	})
	s, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func testRouter() (*gin.Engine, *uint64) {
	gin.SetMode(gin.TestMode)
	var gotUID uint64
	r := gin.New()
	r.Use(middleware.Auth(secret))
	r.GET("/ping", func(c *gin.Context) {
		if v, ok := c.Get(middleware.UserIDKey); ok {
			gotUID = v.(uint64)
		}
		c.Status(http.StatusOK)
	})
	return r, &gotUID
}

func TestAuth(t *testing.T) {
	t.Run("Valid token passes and carries uid", func(t *testing.T) {
		r, uid := testRouter()
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("Authorization", "Bearer "+signedToken(t, secret, 42, time.Now().Add(time.Hour)))
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, uint64(42), *uid)
	})

	t.Run("Missing header rejected", func(t *testing.T) {
		r, _ := testRouter()
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Malformed header rejected", func(t *testing.T) {
		r, _ := testRouter()
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("Authorization", "Token abc")
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Wrong secret rejected", func(t *testing.T) {
		r, _ := testRouter()
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("Authorization", "Bearer "+signedToken(t, "other_secret", 42, time.Now().Add(time.Hour)))
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Expired token rejected", func(t *testing.T) {
		r, _ := testRouter()
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("Authorization", "Bearer "+signedToken(t, secret, 42, time.Now().Add(-time.Hour)))
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
