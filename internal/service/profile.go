package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jamaney/card-backend/internal/models"
	"github.com/jamaney/card-backend/internal/types"
)

var ErrProfileNotFound = errors.New("profile not found")

// List filters understood by ListProfiles.
const (
	FilterActive   = "active"
	FilterExpiring = "expiring"
	FilterArchived = "archived"
)

// ProfileService handles card CRUD. Every lookup except the public ones is
// scoped to the owning account.
type ProfileService struct {
	db *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

// CreateProfile stores a new card for the owner. The unique link is derived
// from the name plus a random suffix and regenerated on collision; the DB
// unique index backstops a race.
func (s *ProfileService) CreateProfile(ctx context.Context, userID uuid.UUID, form *types.ProfileForm, photoURL, coverURL string) (*models.Profile, error) {
	link, err := s.newUniqueLink(ctx, form.Name)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	profile := models.Profile{
		UserID:            userID,
		UniqueLink:        link,
		SubscriptionStart: now,
		PhotoURL:          photoURL,
		CoverURL:          coverURL,
	}
	applyForm(&profile, form)

	if err := s.db.WithContext(ctx).Create(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetProfile returns one owned card.
func (s *ProfileService) GetProfile(ctx context.Context, userID, profileID uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", profileID, userID).
		First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile replaces the text fields of an owned card. Empty media URLs
// preserve the existing photo and cover.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID, profileID uuid.UUID, form *types.ProfileForm, photoURL, coverURL string) (*models.Profile, error) {
	profile, err := s.GetProfile(ctx, userID, profileID)
	if err != nil {
		return nil, err
	}

	applyForm(profile, form)
	if photoURL != "" {
		profile.PhotoURL = photoURL
	}
	if coverURL != "" {
		profile.CoverURL = coverURL
	}

	if err := s.db.WithContext(ctx).Save(profile).Error; err != nil {
		return nil, err
	}
	return profile, nil
}

// ListProfiles returns the owner's cards as dashboard items, narrowed by
// filter ("" means everything) and a case-insensitive name/job search.
func (s *ProfileService) ListProfiles(ctx context.Context, userID uuid.UUID, filter, query string) ([]types.ProfileListItem, error) {
	var profiles []models.Profile
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&profiles).Error; err != nil {
		return nil, err
	}

	now := time.Now()
	query = strings.ToLower(strings.TrimSpace(query))

	items := make([]types.ProfileListItem, 0, len(profiles))
	for i := range profiles {
		p := profiles[i]
		days := DaysUntilRenewal(p.SubscriptionStart, now)

		switch filter {
		case FilterActive:
			if p.IsArchived {
				continue
			}
		case FilterExpiring:
			if p.IsArchived || !IsExpiring(p.SubscriptionStart, now) {
				continue
			}
		case FilterArchived:
			if !p.IsArchived {
				continue
			}
		}

		if query != "" &&
			!strings.Contains(strings.ToLower(p.Name), query) &&
			!strings.Contains(strings.ToLower(p.Job), query) {
			continue
		}

		item := types.ProfileListItem{Profile: p, DaysUntilRenewal: days}
		if !p.IsArchived && IsExpiring(p.SubscriptionStart, now) {
			item.WhatsAppReminderURL = WhatsAppReminderLink(p.Phone, p.Name)
		}
		items = append(items, item)
	}
	return items, nil
}

// ToggleArchive flips the archived flag of an owned card and returns the
// new value. Applying it twice restores the original state.
func (s *ProfileService) ToggleArchive(ctx context.Context, userID, profileID uuid.UUID) (bool, error) {
	profile, err := s.GetProfile(ctx, userID, profileID)
	if err != nil {
		return false, err
	}
	profile.IsArchived = !profile.IsArchived
	if err := s.db.WithContext(ctx).Save(profile).Error; err != nil {
		return false, err
	}
	return profile.IsArchived, nil
}

// GetPublicProfile looks a card up by its public slug, with no owner scope.
func (s *ProfileService) GetPublicProfile(ctx context.Context, uniqueLink string) (*models.Profile, error) {
	var profile models.Profile
	err := s.db.WithContext(ctx).Where("unique_link = ?", uniqueLink).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetContactCard returns the profile behind a vCard download. Archived
// cards are treated as missing so the suspended state cannot be bypassed.
func (s *ProfileService) GetContactCard(ctx context.Context, profileID uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	err := s.db.WithContext(ctx).First(&profile, "id = ?", profileID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	if profile.IsArchived {
		return nil, ErrProfileNotFound
	}
	return &profile, nil
}

func applyForm(p *models.Profile, form *types.ProfileForm) {
	p.Name = form.Name
	p.Job = form.Job
	p.Phone = form.Phone
	p.Company = form.Company
	p.Email = form.Email
	p.WhatsApp = form.WhatsApp
	p.Website = form.Website
	p.Address = form.Address
	p.Instagram = form.Instagram
	p.Facebook = form.Facebook
	p.LinkedIn = form.LinkedIn
	p.TikTok = form.TikTok
	p.Snapchat = form.Snapchat
	p.Telegram = form.Telegram
	p.YouTube = form.YouTube
	if form.DesignType != "" {
		p.DesignType = form.DesignType
	}
	if form.PrimaryColor != "" {
		p.PrimaryColor = form.PrimaryColor
	}
	if form.SecondaryColor != "" {
		p.SecondaryColor = form.SecondaryColor
	}
}

func (s *ProfileService) newUniqueLink(ctx context.Context, name string) (string, error) {
	for {
		link, err := generateUniqueLink(name)
		if err != nil {
			return "", err
		}
		var count int64
		if err := s.db.WithContext(ctx).
			Model(&models.Profile{}).
			Where("unique_link = ?", link).
			Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return link, nil
		}
	}
}

// generateUniqueLink lowercases the name, replaces every non-alphanumeric
// rune with a dash and appends eight random hex characters.
func generateUniqueLink(name string) (string, error) {
	var slug strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			slug.WriteRune(unicode.ToLower(r))
		} else {
			slug.WriteRune('-')
		}
	}

	suffix := make([]byte, 4)
	if _, err := rand.Read(suffix); err != nil {
		return "", err
	}
	return slug.String() + "-" + hex.EncodeToString(suffix), nil
}
