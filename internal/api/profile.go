package api

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jamaney/card-backend/internal/service"
	"github.com/jamaney/card-backend/internal/types"
)

// errUploadFailed marks server-side upload failures, which respond 500;
// validation rejections stay 400.
var errUploadFailed = errors.New("failed to store upload")

// ProfileHandler covers the owner-facing card operations: the dashboard
// list, the editor's create/update, archive toggling and the vCard stream.
type ProfileHandler struct {
	profiles *service.ProfileService
	storage  service.Storage
}

func NewProfileHandler(profiles *service.ProfileService, storage service.Storage) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, storage: storage}
}

func (h *ProfileHandler) ListProfiles(c *gin.Context) {
	userID := currentUserID(c)

	items, err := h.profiles.ListProfiles(c.Request.Context(), userID, c.Query("filter"), c.Query("q"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list profiles"})
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID := currentUserID(c)
	profileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}

	profile, err := h.profiles.GetProfile(c.Request.Context(), userID, profileID)
	if err != nil {
		respondProfileError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// CreateProfile accepts the editor's multipart payload. Photo and cover
// files are mandatory on first creation.
func (h *ProfileHandler) CreateProfile(c *gin.Context) {
	userID := currentUserID(c)

	var form types.ProfileForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name, job and phone are required"})
		return
	}

	photoURL, err := h.saveFilePart(c, "photo", true)
	if err != nil {
		respondUploadError(c, err)
		return
	}
	coverURL, err := h.saveFilePart(c, "cover", true)
	if err != nil {
		respondUploadError(c, err)
		return
	}

	profile, err := h.profiles.CreateProfile(c.Request.Context(), userID, &form, photoURL, coverURL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create profile"})
		return
	}
	c.JSON(http.StatusCreated, profile)
}

// UpdateProfile replaces the card's text fields; omitted file parts keep
// the existing media.
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID := currentUserID(c)
	profileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}

	var form types.ProfileForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name, job and phone are required"})
		return
	}

	photoURL, err := h.saveFilePart(c, "photo", false)
	if err != nil {
		respondUploadError(c, err)
		return
	}
	coverURL, err := h.saveFilePart(c, "cover", false)
	if err != nil {
		respondUploadError(c, err)
		return
	}

	profile, err := h.profiles.UpdateProfile(c.Request.Context(), userID, profileID, &form, photoURL, coverURL)
	if err != nil {
		respondProfileError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) ToggleArchive(c *gin.Context) {
	userID := currentUserID(c)
	profileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}

	archived, err := h.profiles.ToggleArchive(c.Request.Context(), userID, profileID)
	if err != nil {
		respondProfileError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"is_archived": archived})
}

// VCard streams the contact file for an active card. The public page links
// here, so no authentication is required; archived cards are 404.
func (h *ProfileHandler) VCard(c *gin.Context) {
	profileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}

	profile, err := h.profiles.GetContactCard(c.Request.Context(), profileID)
	if err != nil {
		respondProfileError(c, err)
		return
	}

	body := service.RenderVCard(profile)
	c.Header("Content-Disposition", `attachment; filename="`+service.VCardFilename(profile)+`"`)
	c.Data(http.StatusOK, "text/vcard; charset=utf-8", []byte(body))
}

// Upload hosts a standalone image and returns its URL, for clients that
// pre-upload media instead of attaching it to the profile request.
func (h *ProfileHandler) Upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	url, err := h.saveUpload(c, fh)
	if err != nil {
		respondUploadError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

// saveFilePart stores one named image part. A missing part is an error
// only when required; any present part is validated and uploaded.
func (h *ProfileHandler) saveFilePart(c *gin.Context, field string, required bool) (string, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if required {
			return "", errors.New(field + " image is required")
		}
		return "", nil
	}
	return h.saveUpload(c, fh)
}

func (h *ProfileHandler) saveUpload(c *gin.Context, fh *multipart.FileHeader) (string, error) {
	if err := service.ValidateImageUpload(fh); err != nil {
		return "", err
	}

	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("%w: %v", errUploadFailed, err)
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errUploadFailed, err)
	}

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	url, err := h.storage.Save(c.Request.Context(), service.NewUploadKey(fh.Filename), data, contentType)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errUploadFailed, err)
	}
	return url, nil
}

func currentUserID(c *gin.Context) uuid.UUID {
	userID, _ := c.Get("user_id")
	id, _ := userID.(uuid.UUID)
	return id
}

// respondUploadError distinguishes rejected uploads (client's fault, 400)
// from storage failures (500). The failure detail is not echoed back.
func respondUploadError(c *gin.Context, err error) {
	if errors.Is(err, errUploadFailed) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": errUploadFailed.Error()})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func respondProfileError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrProfileNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
