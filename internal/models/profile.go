package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Default card colors applied when the editor leaves them blank.
const (
	DefaultPrimaryColor   = "#3B82F6"
	DefaultSecondaryColor = "#8B5CF6"
)

// Profile is one digital business card. UniqueLink is the only identifier
// ever exposed to unauthenticated visitors; everything else is owner-scoped.
// Profiles are never hard-deleted, only archived.
type Profile struct {
	ID        uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"profile_id"`
	UserID    uuid.UUID      `gorm:"type:varchar(36);not null;index" json:"-"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name    string `gorm:"size:255;not null" json:"name"`
	Job     string `gorm:"size:255;not null" json:"job"`
	Company string `gorm:"size:255" json:"company,omitempty"`
	Email   string `gorm:"size:255" json:"email,omitempty"`
	Phone   string `gorm:"size:50;not null" json:"phone"`

	WhatsApp string `gorm:"size:50;column:whatsapp" json:"whatsapp,omitempty"`
	Website  string `gorm:"size:512" json:"website,omitempty"`
	Address  string `gorm:"size:512" json:"address,omitempty"`

	Instagram string `gorm:"size:255" json:"instagram,omitempty"`
	Facebook  string `gorm:"size:255" json:"facebook,omitempty"`
	LinkedIn  string `gorm:"size:255;column:linkedin" json:"linkedin,omitempty"`
	TikTok    string `gorm:"size:255;column:tiktok" json:"tiktok,omitempty"`
	Snapchat  string `gorm:"size:255" json:"snapchat,omitempty"`
	Telegram  string `gorm:"size:255" json:"telegram,omitempty"`
	YouTube   string `gorm:"size:255;column:youtube" json:"youtube,omitempty"`

	PhotoURL string `gorm:"size:512" json:"photo_url,omitempty"`
	CoverURL string `gorm:"size:512" json:"cover_url,omitempty"`

	DesignType     string `gorm:"size:50;default:'classic'" json:"design_type"`
	PrimaryColor   string `gorm:"size:20" json:"primary_color"`
	SecondaryColor string `gorm:"size:20" json:"secondary_color"`

	UniqueLink        string    `gorm:"size:255;not null;uniqueIndex" json:"unique_link"`
	IsArchived        bool      `gorm:"not null;default:false" json:"is_archived"`
	SubscriptionStart time.Time `json:"subscription_start"`
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.PrimaryColor == "" {
		p.PrimaryColor = DefaultPrimaryColor
	}
	if p.SecondaryColor == "" {
		p.SecondaryColor = DefaultSecondaryColor
	}
	return nil
}
