package main

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/insightlab/meeting-insights/internal/adapter/repository"
	"github.com/insightlab/meeting-insights/internal/domain/entities"
	"github.com/insightlab/meeting-insights/internal/infrastructure/database"
	"github.com/insightlab/meeting-insights/internal/usecase/nlquery"
	"github.com/insightlab/meeting-insights/pkg/config"
	pkgjwt "github.com/insightlab/meeting-insights/pkg/jwt"
)

func main() {
	log.Println("🚀 Seeding sample minutes...")

	// Load configuration from .env
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	repo := repository.NewMinuteRepository(db, nlquery.CompileOptions{
		DefaultLimit: cfg.Query.DefaultLimit,
		MaxLimit:     cfg.Query.MaxLimit,
	})

	type seedRow struct {
		Week      int
		Date      string
		Topic     string
		Purpose   string
		Summary   string
		Attendees []string
		Decisions []string
		Owner     string
	}

	rows := []seedRow{
		{
			Week: 21, Date: "2025-05-19", Topic: "Sprint planning",
			Purpose: "Plan sprint 12 scope", Summary: "Committed 18 story points",
			Attendees: []string{"Alice", "Bob", "Charlie"},
			Decisions: []string{"Drop the legacy exporter from the sprint"},
			Owner:     "Alice",
		},
		{
			Week: 21, Date: "2025-05-22", Topic: "Architecture review",
			Purpose: "Review the caching proposal", Summary: "Approved with changes",
			Attendees: []string{"Alice", "Diana"},
			Decisions: []string{"Adopt Redis for the answer cache", "Revisit TTLs next month"},
			Owner:     "Diana",
		},
		{
			Week: 22, Date: "2025-05-26", Topic: "Retrospective",
			Purpose: "Sprint 11 retrospective", Summary: "Three action items recorded",
			Attendees: []string{"Alice", "Bob", "Charlie", "Diana", "Eve"},
			Decisions: []string{"Rotate the on-call schedule weekly"},
			Owner:     "Bob",
		},
		{
			Week: 23, Date: "2025-06-02", Topic: "Release readiness",
			Purpose: "Go/no-go for v2.3", Summary: "Go, pending load test results",
			Attendees: []string{"Bob", "Eve"},
			Decisions: []string{"Ship v2.3 on Thursday"},
			Owner:     "Eve",
		},
	}

	minutes := make([]*entities.Minute, 0, len(rows))
	for _, r := range rows {
		date, err := time.Parse("2006-01-02", r.Date)
		if err != nil {
			log.Fatalf("Bad seed date %q: %v", r.Date, err)
		}
		m := entities.NewMinute(r.Week, date, r.Topic)
		m.MeetingPurpose = r.Purpose
		m.Summary = r.Summary
		m.Responsible = r.Owner
		if err := m.SetAttendees(r.Attendees); err != nil {
			log.Fatalf("Failed to encode attendees: %v", err)
		}
		if err := m.SetDecisions(r.Decisions); err != nil {
			log.Fatalf("Failed to encode decisions: %v", err)
		}
		minutes = append(minutes, m)
	}

	inserted, err := repo.BulkInsert(context.Background(), minutes)
	if err != nil {
		log.Fatalf("Failed to insert seed minutes: %v", err)
	}
	log.Printf("✅ Inserted %d seed minutes\n", inserted)

	// Issue a development token so the API can be exercised immediately
	jwtManager := pkgjwt.NewManager(cfg.Auth.AccessSecret, cfg.Auth.AccessExpiry)
	token, err := jwtManager.GenerateAccessToken(uuid.New(), "seed-client", pkgjwt.RoleAdmin)
	if err != nil {
		log.Fatalf("Failed to generate dev token: %v", err)
	}
	log.Printf("🔑 Dev token (admin, expires in %s):\n%s\n", cfg.Auth.AccessExpiry, token)
}
