package service

import (
	"net/url"
	"strings"

	"github.com/jamaney/card-backend/internal/models"
)

// socialPrefixes maps each supported platform to the host prefix applied
// when the stored value is a bare handle rather than a full URL. This is
// the single place handle-to-URL rules live.
var socialPrefixes = map[string]string{
	"instagram": "https://instagram.com/",
	"facebook":  "https://facebook.com/",
	"linkedin":  "https://linkedin.com/in/",
	"tiktok":    "https://tiktok.com/@",
	"snapchat":  "https://snapchat.com/add/",
	"telegram":  "https://t.me/",
	"youtube":   "https://youtube.com/@",
}

// SocialURL canonicalizes a stored social value for a platform. Full URLs
// pass through untouched; bare handles lose a leading @ and gain the
// platform's host prefix. Unknown platforms and empty values yield "".
func SocialURL(platform, value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	if strings.HasPrefix(value, "http://") || strings.HasPrefix(value, "https://") {
		return value
	}
	prefix, ok := socialPrefixes[platform]
	if !ok {
		return ""
	}
	return prefix + strings.TrimPrefix(value, "@")
}

// SocialURLs resolves every non-empty social field of a profile.
func SocialURLs(p *models.Profile) map[string]string {
	stored := map[string]string{
		"instagram": p.Instagram,
		"facebook":  p.Facebook,
		"linkedin":  p.LinkedIn,
		"tiktok":    p.TikTok,
		"snapchat":  p.Snapchat,
		"telegram":  p.Telegram,
		"youtube":   p.YouTube,
	}
	out := make(map[string]string, len(stored))
	for platform, value := range stored {
		if u := SocialURL(platform, value); u != "" {
			out[platform] = u
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// TelURL builds a telephone deep link.
func TelURL(phone string) string {
	if phone == "" {
		return ""
	}
	return "tel:" + phone
}

// MailToURL builds a mail deep link.
func MailToURL(email string) string {
	if email == "" {
		return ""
	}
	return "mailto:" + email
}

// WhatsAppURL builds a wa.me chat link from a stored number.
func WhatsAppURL(number string) string {
	digits := digitsOnly(number)
	if digits == "" {
		return ""
	}
	return "https://wa.me/" + digits
}

// MapsURL builds a Google Maps search link for a free-form address.
func MapsURL(address string) string {
	if address == "" {
		return ""
	}
	return "https://www.google.com/maps/search/?api=1&query=" + url.QueryEscape(address)
}
