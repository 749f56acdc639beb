// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"devvault/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultPassword is the password shared by all seeded accounts.
const DefaultPassword = "Password123!ab"

var (
	categories = []string{
		"tooling", "frontend", "backend", "devops", "databases",
		"security", "testing", "career", "cloud", "ai",
	}

	titleStems = []string{
		"A practical guide to", "Notes on", "Lessons learned from",
		"Getting started with", "Deep dive into", "Common pitfalls in",
		"Benchmarking", "Migrating to", "Debugging", "Scaling",
	}

	titleTopics = []string{
		"Go generics", "Postgres indexing", "Redis caching", "CI pipelines",
		"structured logging", "GORM migrations", "JWT auth", "rate limiting",
		"containers", "API versioning", "error handling", "profiling",
	}

	kinds = []models.SubmissionKind{
		models.KindResource, models.KindTutorial, models.KindDiscussion,
		models.KindFeatureSuggestion, models.KindDocImprovement,
		models.KindIssue, models.KindContentReport,
	}
)

// Seeder populates the database with realistic development data.
type Seeder struct {
	db  *gorm.DB
	rng *rand.Rand
}

// NewSeeder returns a Seeder bound to db.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db, rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// ClearAll removes all seeded data. Submissions go first to respect the
// owner foreign key.
func (s *Seeder) ClearAll() error {
	if err := s.db.Unscoped().Where("1 = 1").Delete(&models.Submission{}).Error; err != nil {
		return fmt.Errorf("clear submissions: %w", err)
	}
	if err := s.db.Unscoped().Where("1 = 1").Delete(&models.User{}).Error; err != nil {
		return fmt.Errorf("clear users: %w", err)
	}
	log.Println("Cleared existing data")
	return nil
}

// SeedUsers creates n regular users plus one admin account
// (admin@devvault.local). All accounts share DefaultPassword.
func (s *Seeder) SeedUsers(n int) ([]models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	users := make([]models.User, 0, n+1)
	admin := models.User{
		Name:     "Admin",
		Email:    "admin@devvault.local",
		Password: string(hash),
		Role:     models.RoleAdmin,
	}
	if err := s.db.Create(&admin).Error; err != nil {
		return nil, fmt.Errorf("create admin: %w", err)
	}
	users = append(users, admin)

	for i := 0; i < n; i++ {
		user := models.User{
			Name:     fmt.Sprintf("dev%02d", i+1),
			Email:    fmt.Sprintf("dev%02d@devvault.local", i+1),
			Password: string(hash),
			Role:     models.RoleUser,
		}
		if err := s.db.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("create user %d: %w", i+1, err)
		}
		users = append(users, user)
	}

	log.Printf("Seeded %d users (1 admin)\n", len(users))
	return users, nil
}

// SeedSubmissions creates n submissions across all kinds with a realistic
// status mix: roughly half approved, a third pending, the rest rejected.
// Decisions are attributed to the first admin in users.
func (s *Seeder) SeedSubmissions(users []models.User, n int) error {
	var admin *models.User
	for i := range users {
		if users[i].Role == models.RoleAdmin {
			admin = &users[i]
			break
		}
	}
	if admin == nil {
		return fmt.Errorf("no admin among seeded users")
	}

	created := 0
	for i := 0; i < n; i++ {
		owner := users[s.rng.Intn(len(users))]
		kind := kinds[s.rng.Intn(len(kinds))]

		sub := models.Submission{
			Kind:     kind,
			Title:    s.title(),
			Body:     "Seeded body text for local development.",
			Category: categories[s.rng.Intn(len(categories))],
			OwnerID:  owner.ID,
			Status:   models.StatusPending,
		}
		if kind.RequiresLink() {
			sub.Link = fmt.Sprintf("https://example.com/%s/%d", kind, i)
		}

		roll := s.rng.Float64()
		switch {
		case roll < 0.5:
			s.decide(&sub, models.StatusApproved, admin.ID)
		case roll >= 0.85 && !kind.TwoState():
			s.decide(&sub, models.StatusRejected, admin.ID)
		}

		if err := s.db.Create(&sub).Error; err != nil {
			return fmt.Errorf("create submission %d: %w", i, err)
		}
		created++
	}

	log.Printf("Seeded %d submissions\n", created)
	return nil
}

func (s *Seeder) decide(sub *models.Submission, status models.SubmissionStatus, adminID uint) {
	now := time.Now().Add(-time.Duration(s.rng.Intn(72)) * time.Hour)
	sub.Status = status
	sub.DecidedByUserID = &adminID
	sub.DecidedAt = &now
	if status == models.StatusRejected {
		sub.ReviewNotes = "Does not meet the submission guidelines."
	}
}

func (s *Seeder) title() string {
	return titleStems[s.rng.Intn(len(titleStems))] + " " + titleTopics[s.rng.Intn(len(titleTopics))]
}
