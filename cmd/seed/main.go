package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/rizkypratama/survey-api/config"
	"github.com/rizkypratama/survey-api/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "demo@example.com"
	password := "password123"
	name := "Demo User"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id string
	err = db.QueryRow(`
		INSERT INTO users (email, password_hash, name, is_active)
		VALUES ($1, $2, $3, true)
		ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`, email, hash, name).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s password=%s\n", id, email, password)

	samples := []struct {
		category string
		feedback string
		score    int
		answers  map[string]any
	}{
		{"product", "Solid overall, would like dark mode", 8, map[string]any{"q1": "daily", "q2": "yes"}},
		{"support", "Quick reply on my ticket", 9, map[string]any{"q1": "weekly", "q2": "no"}},
		{"website", "Navigation is confusing on mobile", 5, map[string]any{"q1": "monthly", "q2": "yes"}},
	}
	for _, s := range samples {
		answers, _ := json.Marshal(s.answers)
		if _, err := db.Exec(`
			INSERT INTO survey_responses (user_id, category, answers, feedback, score)
			VALUES ($1, $2, $3, $4, $5)
		`, id, s.category, answers, s.feedback, s.score); err != nil {
			log.Fatalf("failed to seed response: %v", err)
		}
	}
	fmt.Printf("seeded %d sample responses\n", len(samples))
}
