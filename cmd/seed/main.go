// Command main runs the database seeder for DevVault.
package main

import (
	"flag"
	"log"

	"devvault/internal/config"
	"devvault/internal/database"
	"devvault/internal/seed"

	"github.com/joho/godotenv"
)

func main() {
	numUsers := flag.Int("users", 20, "Number of regular users to create")
	numSubmissions := flag.Int("submissions", 100, "Number of submissions to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	// Load .env if present; real env vars still win
	_ = godotenv.Load()

	log.Println("DevVault Database Seeder")
	log.Printf("Target: %d users, %d submissions, clean=%v\n", *numUsers, *numSubmissions, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeeder(db)

	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	users, err := s.SeedUsers(*numUsers)
	if err != nil {
		log.Fatalf("User seeding failed: %v", err)
	}
	if err := s.SeedSubmissions(users, *numSubmissions); err != nil {
		log.Fatalf("Submission seeding failed: %v", err)
	}

	log.Println("Done. All seeded accounts use the password:", seed.DefaultPassword)
}
