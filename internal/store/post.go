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

// PostStore handles all post-related database operations.
type PostStore struct {
	db *sql.DB
}

// NewPostStore creates a new PostStore with the given database connection.
func NewPostStore(db *sql.DB) *PostStore {
	return &PostStore{db: db}
}

// postColumns are the post fields selected by every query, joined with the
// owning category's name.
const postColumns = `p.id, p.title, p.content, p.published, p.category_id,
       p.created_at, p.updated_at, c.name`

// sortColumns maps API sort field names to SQL columns. Anything outside
// this map falls back to creation time so user input never reaches the
// ORDER BY clause directly.
var sortColumns = map[string]string{
	"createdAt": "p.created_at",
	"updatedAt": "p.updated_at",
	"title":     "p.title",
}

// Sort describes the requested result ordering.
type Sort struct {
	Field     string
	Ascending bool
}

// Filter selects which posts to list and how to page them.
// A nil CategoryID means no category filter; PublishedOnly hides
// unpublished posts from non-admin viewers.
type Filter struct {
	CategoryID    *uuid.UUID
	PublishedOnly bool
	Page          int // 0-based
	Size          int
	Sort          *Sort // nil means created_at descending
}

// scanPost scans a joined post row.
func scanPost(scanner interface{ Scan(...any) error }) (*models.Post, error) {
	var p models.Post
	err := scanner.Scan(
		&p.ID, &p.Title, &p.Content, &p.Published, &p.CategoryID,
		&p.CreatedAt, &p.UpdatedAt, &p.CategoryName,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// FindByID retrieves a post by its UUID. Returns nil if not found.
func (s *PostStore) FindByID(id uuid.UUID) (*models.Post, error) {
	row := s.db.QueryRow(`
		SELECT `+postColumns+`
		FROM posts p
		JOIN categories c ON c.id = p.category_id
		WHERE p.id = $1
	`, id)
	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post by id: %w", err)
	}
	return p, nil
}

// Create inserts a new post and returns it with generated id and timestamps.
// The post must carry a valid CategoryID.
func (s *PostStore) Create(p *models.Post) (*models.Post, error) {
	row := s.db.QueryRow(`
		INSERT INTO posts (title, content, published, category_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, title, content, published, category_id, created_at, updated_at
	`, p.Title, p.Content, p.Published, p.CategoryID)

	result := &models.Post{CategoryName: p.CategoryName}
	err := row.Scan(
		&result.ID, &result.Title, &result.Content, &result.Published,
		&result.CategoryID, &result.CreatedAt, &result.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return result, nil
}

// Update overwrites all mutable fields of an existing post.
// Returns ErrNotFound when the id is absent.
func (s *PostStore) Update(p *models.Post) (*models.Post, error) {
	row := s.db.QueryRow(`
		UPDATE posts SET
			title = $1, content = $2, published = $3, category_id = $4,
			updated_at = NOW()
		WHERE id = $5
		RETURNING id, title, content, published, category_id, created_at, updated_at
	`, p.Title, p.Content, p.Published, p.CategoryID, p.ID)

	result := &models.Post{CategoryName: p.CategoryName}
	err := row.Scan(
		&result.ID, &result.Title, &result.Content, &result.Published,
		&result.CategoryID, &result.CreatedAt, &result.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	return result, nil
}

// Delete removes a post by ID. Returns ErrNotFound when the id is absent.
func (s *PostStore) Delete(id uuid.UUID) error {
	res, err := s.db.Exec(`DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete post rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns one page of posts matching the filter, with pagination
// metadata computed from a matching count query. The two filter axes
// (category set/unset, published-only on/off) produce four query shapes
// that all share the same ordering and paging.
func (s *PostStore) List(f Filter) (*models.Page, error) {
	where, args := buildWhere(f)

	var total int64
	countQuery := `SELECT COUNT(*) FROM posts p` + where
	if err := s.db.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count posts: %w", err)
	}

	query := `
		SELECT ` + postColumns + `
		FROM posts p
		JOIN categories c ON c.id = p.category_id` + where + `
		ORDER BY ` + orderBy(f.Sort) + `
		LIMIT ` + fmt.Sprintf("$%d", len(args)+1) + ` OFFSET ` + fmt.Sprintf("$%d", len(args)+2)
	args = append(args, f.Size, f.Page*f.Size)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	var items []models.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		items = append(items, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return models.NewPage(items, f.Page, f.Size, total), nil
}

// buildWhere assembles the WHERE clause and its arguments for List.
func buildWhere(f Filter) (string, []any) {
	var conds []string
	var args []any

	if f.CategoryID != nil {
		args = append(args, *f.CategoryID)
		conds = append(conds, fmt.Sprintf("p.category_id = $%d", len(args)))
	}
	if f.PublishedOnly {
		conds = append(conds, "p.published = TRUE")
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// orderBy renders the ORDER BY expression for a sort request. A nil sort
// or an unknown field yields the default: creation time, newest first.
func orderBy(s *Sort) string {
	if s == nil {
		return "p.created_at DESC"
	}
	col, ok := sortColumns[s.Field]
	if !ok {
		return "p.created_at DESC"
	}
	if s.Ascending {
		return col + " ASC"
	}
	return col + " DESC"
}
