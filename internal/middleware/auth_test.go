package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamaney/card-backend/internal/middleware"
	"github.com/jamaney/card-backend/internal/types"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type stubValidator struct {
	userID uuid.UUID
	err    error
}

func (s *stubValidator) ValidateToken(token string) (*types.TokenClaims, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &types.TokenClaims{UserID: s.userID, TokenID: "jti"}, nil
}

func TestExtractToken(t *testing.T) {
	cases := []struct {
		name   string
		header string
		cookie string
		want   string
	}{
		{"bearer header", "Bearer abc123", "", "abc123"},
		{"lowercase scheme", "bearer abc123", "", "abc123"},
		{"malformed header wins over cookie", "abc123", "fromcookie", ""},
		{"cookie fallback", "", "fromcookie", "fromcookie"},
		{"nothing", "", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				c.Request.Header.Set("Authorization", tc.header)
			}
			if tc.cookie != "" {
				c.Request.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: tc.cookie})
			}
			assert.Equal(t, tc.want, middleware.ExtractToken(c))
		})
	}
}

func TestAuthMiddleware(t *testing.T) {
	userID := uuid.New()

	newRouter := func(v middleware.TokenValidator) *gin.Engine {
		r := gin.New()
		r.Use(middleware.AuthMiddleware(v))
		r.GET("/secure", func(c *gin.Context) {
			got, exists := c.Get("user_id")
			require.True(t, exists)
			c.JSON(http.StatusOK, gin.H{"user_id": got.(uuid.UUID).String()})
		})
		return r
	}

	t.Run("valid token", func(t *testing.T) {
		r := newRouter(&stubValidator{userID: userID})
		req := httptest.NewRequest(http.MethodGet, "/secure", nil)
		req.Header.Set("Authorization", "Bearer good")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), userID.String())
	})

	t.Run("missing token", func(t *testing.T) {
		r := newRouter(&stubValidator{userID: userID})
		req := httptest.NewRequest(http.MethodGet, "/secure", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejected token", func(t *testing.T) {
		r := newRouter(&stubValidator{err: errors.New("token has been revoked")})
		req := httptest.NewRequest(http.MethodGet, "/secure", nil)
		req.Header.Set("Authorization", "Bearer revoked")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
