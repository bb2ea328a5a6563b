package main

import (
	"context"
	"log"

	"github.com/jamaney/card-backend/config"
	"github.com/jamaney/card-backend/internal/database"
	"github.com/jamaney/card-backend/internal/service"
	"github.com/jamaney/card-backend/internal/types"
)

// Seeds a demo account with a few cards for manual testing.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	ctx := context.Background()
	auth := service.NewAuthService(db, cfg.JWTSecret, nil, cfg.SessionVerifyURL)
	profiles := service.NewProfileService(db)

	user, _, err := auth.Register(ctx, "Demo Admin", "demo@jamaney.local", "demo-password")
	if err != nil {
		log.Fatalf("Failed to create demo account: %v", err)
	}

	forms := []types.ProfileForm{
		{
			Name:      "Awa Diallo",
			Job:       "Architecte d'intérieur",
			Company:   "Studio Teranga",
			Phone:     "+221770000001",
			Email:     "awa@studio-teranga.sn",
			Website:   "https://studio-teranga.sn",
			Instagram: "awa.design",
			LinkedIn:  "awa-diallo",
		},
		{
			Name:     "Moussa Ndiaye",
			Job:      "Photographe",
			Phone:    "+221770000002",
			WhatsApp: "+221770000002",
			TikTok:   "@moussa.shoots",
		},
	}

	for i := range forms {
		profile, err := profiles.CreateProfile(ctx, user.ID, &forms[i], "", "")
		if err != nil {
			log.Fatalf("Failed to seed profile %q: %v", forms[i].Name, err)
		}
		log.Printf("Seeded profile %s -> /p/%s", profile.Name, profile.UniqueLink)
	}

	log.Printf("Demo account ready: demo@jamaney.local / demo-password")
}
