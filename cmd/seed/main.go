// seed inserts a demo user with a couple of categories and notes into the
// local dev database. Run: go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/nbekov/noted/internal/domain"
	"github.com/nbekov/noted/internal/hashing"
	"github.com/nbekov/noted/internal/infrastructure/postgres"
)

const (
	seedUsername = "demo"
	seedEmail    = "demo@noted.local"
	seedPassword = "demo-password"
)

var seedNotes = map[string][]domain.Note{
	"Groceries": {
		{Name: "Weekly", Content: "milk, eggs, bread"},
		{Name: "Party", Content: "crisps, lemonade"},
	},
	"Work": {
		{Name: "Standup", Content: "mention the sweeper rollout"},
		{Name: "Ideas", Content: ""},
	},
}

func main() {
	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}
	pepper := os.Getenv("HASH_PEPPER")
	if pepper == "" {
		log.Fatal("HASH_PEPPER is not set")
	}

	if err := postgres.Migrate(ctx, dbURL); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	pool, err := postgres.NewPool(ctx, dbURL)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	hash, err := hashing.New(pepper).Hash(seedPassword)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	var userID int64
	err = pool.QueryRow(ctx, `
		INSERT INTO users (username, email, password_hash)
		VALUES ($1, $2, $3)
		ON CONFLICT (username) DO UPDATE SET password_hash = EXCLUDED.password_hash
		RETURNING id`,
		seedUsername, seedEmail, hash,
	).Scan(&userID)
	if err != nil {
		log.Fatalf("upsert user: %v", err)
	}

	for categoryName, notes := range seedNotes {
		var categoryID int64
		err = pool.QueryRow(ctx, `
			INSERT INTO categories (name, user_id) VALUES ($1, $2) RETURNING id`,
			categoryName, userID,
		).Scan(&categoryID)
		if err != nil {
			log.Fatalf("insert category %q: %v", categoryName, err)
		}

		for _, note := range notes {
			_, err = pool.Exec(ctx, `
				INSERT INTO notes (name, content, category_id) VALUES ($1, $2, $3)`,
				note.Name, note.Content, categoryID)
			if err != nil {
				log.Fatalf("insert note %q: %v", note.Name, err)
			}
		}
	}

	fmt.Printf("seeded user %q (password %q) with %d categories\n",
		seedUsername, seedPassword, len(seedNotes))
}
