package database

import (
	"database/sql"
	"fmt"
	"log/slog"
)

// Seed populates the database with initial development data: a general
// category and a published welcome post. It is a no-op when any category
// already exists.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM categories").Scan(&count); err != nil {
		return fmt.Errorf("seed check categories: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	var categoryID string
	err := db.QueryRow(`INSERT INTO categories (name) VALUES ($1) RETURNING id`, "General").Scan(&categoryID)
	if err != nil {
		return fmt.Errorf("seed insert category: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO posts (title, content, published, category_id)
		VALUES ($1, $2, TRUE, $3)
	`, "Hello, world", "This is the first post. Edit or delete it from the admin account.", categoryID)
	if err != nil {
		return fmt.Errorf("seed insert post: %w", err)
	}

	slog.Info("database seeded with starter category and post", "category", "General")
	return nil
}
