package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jamaney/card-backend/internal/service"
	"github.com/jamaney/card-backend/internal/types"
)

// PublicHandler renders one card by its unique link with no authentication.
type PublicHandler struct {
	profiles *service.ProfileService
}

func NewPublicHandler(profiles *service.ProfileService) *PublicHandler {
	return &PublicHandler{profiles: profiles}
}

// GetProfile serves the public card view. An archived card exposes nothing
// beyond its slug and the suspended flag.
func (h *PublicHandler) GetProfile(c *gin.Context) {
	profile, err := h.profiles.GetPublicProfile(c.Request.Context(), c.Param("uniqueLink"))
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	if profile.IsArchived {
		c.JSON(http.StatusOK, gin.H{
			"unique_link": profile.UniqueLink,
			"is_archived": true,
		})
		return
	}

	c.JSON(http.StatusOK, types.PublicProfileResponse{
		Profile: *profile,
		Links: types.PublicLinks{
			Phone:    service.TelURL(profile.Phone),
			Email:    service.MailToURL(profile.Email),
			WhatsApp: service.WhatsAppURL(profile.WhatsApp),
			Maps:     service.MapsURL(profile.Address),
			Website:  profile.Website,
			Socials:  service.SocialURLs(profile),
			VCard:    "/api/v1/profiles/" + profile.ID.String() + "/vcard",
		},
	})
}
