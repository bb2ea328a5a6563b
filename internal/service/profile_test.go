package service_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/jamaney/card-backend/internal/models"
	"github.com/jamaney/card-backend/internal/service"
	"github.com/jamaney/card-backend/internal/testhelpers"
	"github.com/jamaney/card-backend/internal/types"
)

func setupProfileTest(t *testing.T) (*gorm.DB, *service.ProfileService, uuid.UUID) {
	t.Helper()
	db := testhelpers.SetupSQLite(t)

	user := models.User{Name: "Owner", Email: "owner@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)

	return db, service.NewProfileService(db), user.ID
}

func TestCreateProfileRoundTrip(t *testing.T) {
	_, svc, owner := setupProfileTest(t)
	ctx := context.Background()

	created, err := svc.CreateProfile(ctx, owner, &types.ProfileForm{
		Name:  "A",
		Job:   "B",
		Phone: "+221700000000",
	}, "https://cdn.example.com/photo.png", "https://cdn.example.com/cover.png")
	require.NoError(t, err)

	fetched, err := svc.GetProfile(ctx, owner, created.ID)
	require.NoError(t, err)

	assert.Equal(t, "A", fetched.Name)
	assert.Equal(t, "B", fetched.Job)
	assert.Equal(t, "+221700000000", fetched.Phone)
	assert.Equal(t, "https://cdn.example.com/photo.png", fetched.PhotoURL)
	assert.False(t, fetched.IsArchived)
	assert.Equal(t, models.DefaultPrimaryColor, fetched.PrimaryColor)
	assert.Equal(t, models.DefaultSecondaryColor, fetched.SecondaryColor)
	assert.False(t, fetched.SubscriptionStart.IsZero())
}

func TestUniqueLinkFormat(t *testing.T) {
	_, svc, owner := setupProfileTest(t)

	created, err := svc.CreateProfile(context.Background(), owner, &types.ProfileForm{
		Name:  "Awa Diallo",
		Job:   "Architecte",
		Phone: "+221770000001",
	}, "", "")
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^awa-diallo-[0-9a-f]{8}$`), created.UniqueLink)

	// A second card for the same name must get a different link.
	second, err := svc.CreateProfile(context.Background(), owner, &types.ProfileForm{
		Name:  "Awa Diallo",
		Job:   "Architecte",
		Phone: "+221770000001",
	}, "", "")
	require.NoError(t, err)
	assert.NotEqual(t, created.UniqueLink, second.UniqueLink)
}

func TestGetProfileScopedToOwner(t *testing.T) {
	db, svc, owner := setupProfileTest(t)
	ctx := context.Background()

	created, err := svc.CreateProfile(ctx, owner, &types.ProfileForm{
		Name: "Awa", Job: "Design", Phone: "+221770000001",
	}, "", "")
	require.NoError(t, err)

	other := models.User{Name: "Other", Email: "other@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&other).Error)

	_, err = svc.GetProfile(ctx, other.ID, created.ID)
	assert.ErrorIs(t, err, service.ErrProfileNotFound)
}

func TestUpdateProfilePreservesMedia(t *testing.T) {
	_, svc, owner := setupProfileTest(t)
	ctx := context.Background()

	created, err := svc.CreateProfile(ctx, owner, &types.ProfileForm{
		Name: "Awa", Job: "Design", Phone: "+221770000001",
	}, "https://cdn.example.com/photo.png", "https://cdn.example.com/cover.png")
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(ctx, owner, created.ID, &types.ProfileForm{
		Name: "Awa Diallo", Job: "Architecte", Phone: "+221770000002",
	}, "", "")
	require.NoError(t, err)

	assert.Equal(t, "Awa Diallo", updated.Name)
	assert.Equal(t, "https://cdn.example.com/photo.png", updated.PhotoURL)
	assert.Equal(t, "https://cdn.example.com/cover.png", updated.CoverURL)

	// A new photo replaces the old one; the cover stays.
	updated, err = svc.UpdateProfile(ctx, owner, created.ID, &types.ProfileForm{
		Name: "Awa Diallo", Job: "Architecte", Phone: "+221770000002",
	}, "https://cdn.example.com/photo2.png", "")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/photo2.png", updated.PhotoURL)
	assert.Equal(t, "https://cdn.example.com/cover.png", updated.CoverURL)
}

func TestListProfilesFilters(t *testing.T) {
	db, svc, owner := setupProfileTest(t)
	ctx := context.Background()

	fresh, err := svc.CreateProfile(ctx, owner, &types.ProfileForm{
		Name: "Fresh Card", Job: "Baker", Phone: "+221770000001",
	}, "", "")
	require.NoError(t, err)

	expiring, err := svc.CreateProfile(ctx, owner, &types.ProfileForm{
		Name: "Old Card", Job: "Driver", Phone: "+221770000002",
	}, "", "")
	require.NoError(t, err)
	// Backdate so the renewal countdown lands inside the 30-day window.
	backdated := time.Now().AddDate(-1, 0, 10)
	require.NoError(t, db.Model(&models.Profile{}).
		Where("id = ?", expiring.ID).
		Update("subscription_start", backdated).Error)

	archived, err := svc.CreateProfile(ctx, owner, &types.ProfileForm{
		Name: "Gone Card", Job: "Singer", Phone: "+221770000003",
	}, "", "")
	require.NoError(t, err)
	_, err = svc.ToggleArchive(ctx, owner, archived.ID)
	require.NoError(t, err)

	all, err := svc.ListProfiles(ctx, owner, "", "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	active, err := svc.ListProfiles(ctx, owner, service.FilterActive, "")
	require.NoError(t, err)
	require.Len(t, active, 2)
	// The fresh card is active but far from renewal, so no nudge link.
	for _, item := range active {
		if item.ID == fresh.ID {
			assert.Greater(t, item.DaysUntilRenewal, service.ExpiringWindowDays)
			assert.Empty(t, item.WhatsAppReminderURL)
		}
	}

	exp, err := svc.ListProfiles(ctx, owner, service.FilterExpiring, "")
	require.NoError(t, err)
	require.Len(t, exp, 1)
	assert.Equal(t, expiring.ID, exp[0].ID)
	assert.LessOrEqual(t, exp[0].DaysUntilRenewal, service.ExpiringWindowDays)
	assert.Contains(t, exp[0].WhatsAppReminderURL, "wa.me/221770000002")

	arch, err := svc.ListProfiles(ctx, owner, service.FilterArchived, "")
	require.NoError(t, err)
	require.Len(t, arch, 1)
	assert.Equal(t, archived.ID, arch[0].ID)
	assert.Empty(t, arch[0].WhatsAppReminderURL)
}

func TestListProfilesSearch(t *testing.T) {
	_, svc, owner := setupProfileTest(t)
	ctx := context.Background()

	for _, p := range []types.ProfileForm{
		{Name: "Awa Diallo", Job: "Architecte", Phone: "1"},
		{Name: "Moussa Ndiaye", Job: "Photographe", Phone: "2"},
	} {
		form := p
		_, err := svc.CreateProfile(ctx, owner, &form, "", "")
		require.NoError(t, err)
	}

	// Case-insensitive match on name.
	byName, err := svc.ListProfiles(ctx, owner, "", "AWA")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "Awa Diallo", byName[0].Name)

	// Match on job too.
	byJob, err := svc.ListProfiles(ctx, owner, "", "photo")
	require.NoError(t, err)
	require.Len(t, byJob, 1)
	assert.Equal(t, "Moussa Ndiaye", byJob[0].Name)

	// Empty query returns the filter-scoped set unchanged.
	all, err := svc.ListProfiles(ctx, owner, "", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	none, err := svc.ListProfiles(ctx, owner, "", "zzz")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestToggleArchiveIsItsOwnInverse(t *testing.T) {
	_, svc, owner := setupProfileTest(t)
	ctx := context.Background()

	created, err := svc.CreateProfile(ctx, owner, &types.ProfileForm{
		Name: "Awa", Job: "Design", Phone: "+221770000001",
	}, "", "")
	require.NoError(t, err)

	archived, err := svc.ToggleArchive(ctx, owner, created.ID)
	require.NoError(t, err)
	assert.True(t, archived)

	restored, err := svc.ToggleArchive(ctx, owner, created.ID)
	require.NoError(t, err)
	assert.False(t, restored)

	fetched, err := svc.GetProfile(ctx, owner, created.ID)
	require.NoError(t, err)
	assert.False(t, fetched.IsArchived)
}

func TestGetPublicProfile(t *testing.T) {
	_, svc, owner := setupProfileTest(t)
	ctx := context.Background()

	created, err := svc.CreateProfile(ctx, owner, &types.ProfileForm{
		Name: "Awa", Job: "Design", Phone: "+221770000001",
	}, "", "")
	require.NoError(t, err)

	found, err := svc.GetPublicProfile(ctx, created.UniqueLink)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = svc.GetPublicProfile(ctx, "unknown-slug")
	assert.ErrorIs(t, err, service.ErrProfileNotFound)
}

func TestGetContactCardHidesArchived(t *testing.T) {
	_, svc, owner := setupProfileTest(t)
	ctx := context.Background()

	created, err := svc.CreateProfile(ctx, owner, &types.ProfileForm{
		Name: "Awa", Job: "Design", Phone: "+221770000001",
	}, "", "")
	require.NoError(t, err)

	card, err := svc.GetContactCard(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, card.ID)

	_, err = svc.ToggleArchive(ctx, owner, created.ID)
	require.NoError(t, err)

	_, err = svc.GetContactCard(ctx, created.ID)
	assert.ErrorIs(t, err, service.ErrProfileNotFound)
}
