package api_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamaney/card-backend/internal/api"
)

type stubResolver struct {
	url string
	err error
}

func (s *stubResolver) PresignedURL(ctx context.Context, key string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.url + key, nil
}

func TestMediaRedirect(t *testing.T) {
	r := gin.New()
	r.GET("/media/:key", api.NewMediaHandler(&stubResolver{
		url: "https://bucket.s3.amazonaws.com/cards/",
	}).Get)

	req := httptest.NewRequest(http.MethodGet, "/media/abc.png", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "https://bucket.s3.amazonaws.com/cards/abc.png", w.Header().Get("Location"))
}

func TestMediaRedirectFailure(t *testing.T) {
	r := gin.New()
	r.GET("/media/:key", api.NewMediaHandler(&stubResolver{
		err: errors.New("no such key"),
	}).Get)

	req := httptest.NewRequest(http.MethodGet, "/media/missing.png", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
