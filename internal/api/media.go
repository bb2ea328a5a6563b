package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// MediaResolver turns a stored media key into a fetchable URL.
type MediaResolver interface {
	PresignedURL(ctx context.Context, key string) (string, error)
}

// MediaHandler serves media from a private bucket: each hit on /media/:key
// redirects to a freshly presigned object URL.
type MediaHandler struct {
	media MediaResolver
}

func NewMediaHandler(media MediaResolver) *MediaHandler {
	return &MediaHandler{media: media}
}

func (h *MediaHandler) Get(c *gin.Context) {
	url, err := h.media.PresignedURL(c.Request.Context(), c.Param("key"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "media not found"})
		return
	}
	c.Redirect(http.StatusFound, url)
}
