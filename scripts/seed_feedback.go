// Manual feedback-question seeding script.
//
// The server seeds the default feedback questions on startup; this script
// exists for running the seed against a database without starting the
// server, for example before a bulk import.
//
// Usage: go run scripts/seed_feedback.go

package main

import (
	"log"
	"os"

	"quiz_backend/internal/config"
	"quiz_backend/internal/repository"
	"quiz_backend/internal/service"
	"quiz_backend/pkg/database"
	"quiz_backend/pkg/logger"

	"gopkg.in/yaml.v3"
)

func main() {
	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Fatalf("Failed to read config file: %v", err)
	}

	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Fatalf("Failed to parse config file: %v", err)
	}

	logger.InitLogger(cfg.Server.Mode)

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	feedback := service.NewFeedbackService(repository.NewFeedbackRepository(db))

	log.Println("Seeding default feedback questions...")
	if err := feedback.EnsureDefaults(); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
	log.Println("Done")
}
