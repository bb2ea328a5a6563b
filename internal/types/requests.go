package types

import "github.com/jamaney/card-backend/internal/models"

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is returned by login, register and session exchange. The
// token is also set as an httpOnly cookie; clients may use either transport.
type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// ProfileForm is the multipart text-field payload of the card editor.
// Photo and cover arrive as file parts next to it.
type ProfileForm struct {
	Name    string `form:"name" binding:"required"`
	Job     string `form:"job" binding:"required"`
	Phone   string `form:"phone" binding:"required"`
	Company string `form:"company"`
	Email   string `form:"email"`

	WhatsApp string `form:"whatsapp"`
	Website  string `form:"website"`
	Address  string `form:"address"`

	Instagram string `form:"instagram"`
	Facebook  string `form:"facebook"`
	LinkedIn  string `form:"linkedin"`
	TikTok    string `form:"tiktok"`
	Snapchat  string `form:"snapchat"`
	Telegram  string `form:"telegram"`
	YouTube   string `form:"youtube"`

	DesignType     string `form:"design_type"`
	PrimaryColor   string `form:"primary_color"`
	SecondaryColor string `form:"secondary_color"`
}

// ProfileListItem is one dashboard entry: the stored profile plus the
// renewal countdown, and a prefilled WhatsApp nudge while the renewal
// window is open.
type ProfileListItem struct {
	models.Profile
	DaysUntilRenewal    int    `json:"days_until_renewal"`
	WhatsAppReminderURL string `json:"whatsapp_reminder_url,omitempty"`
}

// PublicLinks are the action URLs rendered on the public card. Absent
// profile fields produce no entry.
type PublicLinks struct {
	Phone    string            `json:"phone,omitempty"`
	Email    string            `json:"email,omitempty"`
	WhatsApp string            `json:"whatsapp,omitempty"`
	Maps     string            `json:"maps,omitempty"`
	Website  string            `json:"website,omitempty"`
	Socials  map[string]string `json:"socials,omitempty"`
	VCard    string            `json:"vcard"`
}

// PublicProfileResponse is the unauthenticated view of an active card.
type PublicProfileResponse struct {
	models.Profile
	Links PublicLinks `json:"links"`
}
