// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"devblog/internal/models"
)

// CategoryStore manages categories in the database. Category names are
// unique under trimmed comparison; every method trims its name argument
// before touching the database.
type CategoryStore struct {
	db *sql.DB
}

// NewCategoryStore returns a new CategoryStore.
func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

const categoryColumns = `id, name, created_at, updated_at`

// scanCategory scans a row into a Category struct.
func scanCategory(scanner interface{ Scan(...any) error }) (*models.Category, error) {
	var c models.Category
	err := scanner.Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns all categories ordered by name, with post counts.
func (s *CategoryStore) List() ([]models.Category, error) {
	rows, err := s.db.Query(`
		SELECT c.id, c.name, c.created_at, c.updated_at,
		       COUNT(p.id) AS post_count
		FROM categories c
		LEFT JOIN posts p ON p.category_id = c.id
		GROUP BY c.id
		ORDER BY c.name
	`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var items []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt, &c.PostCount); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

// FindByID retrieves a category by ID. Returns nil if not found.
func (s *CategoryStore) FindByID(id uuid.UUID) (*models.Category, error) {
	row := s.db.QueryRow(`SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by id: %w", err)
	}
	return c, nil
}

// FindByName retrieves a category by exact trimmed-name match.
// Returns nil if not found.
func (s *CategoryStore) FindByName(name string) (*models.Category, error) {
	row := s.db.QueryRow(`SELECT `+categoryColumns+` FROM categories WHERE name = $1`, strings.TrimSpace(name))
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by name: %w", err)
	}
	return c, nil
}

// FindOrCreate returns the category with the given trimmed name, creating
// and persisting it on miss. It never fails on a duplicate name.
func (s *CategoryStore) FindOrCreate(name string) (*models.Category, error) {
	name = strings.TrimSpace(name)

	existing, err := s.FindByName(name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	row := s.db.QueryRow(`
		INSERT INTO categories (name)
		VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING `+categoryColumns, name)
	c, err := scanCategory(row)
	if err != nil {
		return nil, fmt.Errorf("find or create category: %w", err)
	}
	return c, nil
}

// Create inserts a new category with the given trimmed name.
// Returns ErrAlreadyExists when the name is taken.
func (s *CategoryStore) Create(name string) (*models.Category, error) {
	name = strings.TrimSpace(name)

	existing, err := s.FindByName(name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyExists
	}

	row := s.db.QueryRow(`INSERT INTO categories (name) VALUES ($1) RETURNING `+categoryColumns, name)
	c, err := scanCategory(row)
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return c, nil
}

// Rename changes a category's name. Returns ErrNotFound when the id is
// absent and ErrAlreadyExists when the trimmed name belongs to a different
// category. Renaming a category to its own current name succeeds.
func (s *CategoryStore) Rename(id uuid.UUID, newName string) (*models.Category, error) {
	newName = strings.TrimSpace(newName)

	existing, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}

	duplicate, err := s.FindByName(newName)
	if err != nil {
		return nil, err
	}
	if duplicate != nil && duplicate.ID != id {
		return nil, ErrAlreadyExists
	}

	row := s.db.QueryRow(`
		UPDATE categories SET name = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING `+categoryColumns, newName, id)
	c, err := scanCategory(row)
	if err != nil {
		return nil, fmt.Errorf("rename category: %w", err)
	}
	return c, nil
}

// Delete removes a category and every post it owns. The post deletion is
// deliberate and explicit here, not left to the schema cascade, so the
// destructive step shows up in application code and logs.
// Returns ErrNotFound when the id is absent; in that case nothing is deleted.
func (s *CategoryStore) Delete(id uuid.UUID) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM posts WHERE category_id = $1`, id); err != nil {
		return fmt.Errorf("delete category posts: %w", err)
	}

	res, err := tx.Exec(`DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete category rows affected: %w", err)
	}
	if affected == 0 {
		// Rollback via the deferred call; no posts are removed either.
		return ErrNotFound
	}

	return tx.Commit()
}
