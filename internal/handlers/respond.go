// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers implements the JSON REST handlers for posts,
// categories and authentication.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"devblog/internal/models"
)

// Stable machine-readable error codes surfaced to API clients.
const (
	codePostNotFound     = "P001"
	codeCategoryNotFound = "C001"
	codeCategoryExists   = "C002"
	codeAccessDenied     = "A001"
	codeUnauthenticated  = "A002"
	codeValidation       = "V001"
	codeInternal         = "E001"
)

// errorResponse is the error envelope returned by every failing endpoint.
type errorResponse struct {
	Timestamp time.Time `json:"timestamp"`
	Status    int       `json:"status"`
	Error     string    `json:"error"`
	Code      string    `json:"code"`
	Message   string    `json:"message"`
	LoginURL  string    `json:"loginUrl,omitempty"`
}

// categoryResponse is the wire shape of a category.
type categoryResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// postResponse is the full wire shape of a post.
type postResponse struct {
	ID        uuid.UUID        `json:"id"`
	Title     string           `json:"title"`
	Content   string           `json:"content"`
	Published bool             `json:"published"`
	Category  categoryResponse `json:"category"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

// postSummary is the listing shape of a post; it omits the update timestamp.
type postSummary struct {
	ID        uuid.UUID        `json:"id"`
	Title     string           `json:"title"`
	Content   string           `json:"content"`
	Published bool             `json:"published"`
	Category  categoryResponse `json:"category"`
	CreatedAt time.Time        `json:"createdAt"`
}

// pageResponse carries one page of post summaries plus pagination metadata.
type pageResponse struct {
	Content       []postSummary `json:"content"`
	PageNumber    int           `json:"pageNumber"`
	PageSize      int           `json:"pageSize"`
	TotalPages    int           `json:"totalPages"`
	TotalElements int64         `json:"totalElements"`
	First         bool          `json:"first"`
	Last          bool          `json:"last"`
	Empty         bool          `json:"empty"`
}

func toPostResponse(p *models.Post) postResponse {
	return postResponse{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		Published: p.Published,
		Category:  categoryResponse{ID: p.CategoryID, Name: p.CategoryName},
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func toPageResponse(page *models.Page) pageResponse {
	content := make([]postSummary, 0, len(page.Content))
	for i := range page.Content {
		p := &page.Content[i]
		content = append(content, postSummary{
			ID:        p.ID,
			Title:     p.Title,
			Content:   p.Content,
			Published: p.Published,
			Category:  categoryResponse{ID: p.CategoryID, Name: p.CategoryName},
			CreatedAt: p.CreatedAt,
		})
	}
	return pageResponse{
		Content:       content,
		PageNumber:    page.Number,
		PageSize:      page.Size,
		TotalPages:    page.TotalPages,
		TotalElements: page.TotalElements,
		First:         page.First,
		Last:          page.Last,
		Empty:         page.Empty,
	}
}

// writeJSON serializes v with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}

// writeError emits the error envelope with a stable code.
func writeError(w http.ResponseWriter, status int, code, message string) {
	resp := errorResponse{
		Timestamp: time.Now().UTC(),
		Status:    status,
		Error:     http.StatusText(status),
		Code:      code,
		Message:   message,
	}
	if status == http.StatusUnauthorized {
		resp.LoginURL = "/auth/github/login"
	}
	writeJSON(w, status, resp)
}

// writeInternalError logs the cause and returns a generic 500.
func writeInternalError(w http.ResponseWriter, op string, err error) {
	slog.Error(op, "error", err)
	writeError(w, http.StatusInternalServerError, codeInternal, "An internal server error occurred.")
}
