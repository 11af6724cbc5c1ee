// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"devblog/internal/middleware"
	"devblog/internal/models"
	"devblog/internal/store"
)

// categoryFilterAll is the sentinel filter value meaning "no category
// filter", accepted case-insensitively.
const categoryFilterAll = "all"

// Posts groups the post CRUD and listing handlers.
type Posts struct {
	posts      *store.PostStore
	categories *store.CategoryStore
}

// NewPosts creates a new Posts handler group.
func NewPosts(posts *store.PostStore, categories *store.CategoryStore) *Posts {
	return &Posts{posts: posts, categories: categories}
}

// List handles GET /posts. Non-admin viewers only see published posts;
// the admin session sees everything. The optional categoryName filter is
// ignored when blank or "all".
func (h *Posts) List(w http.ResponseWriter, r *http.Request) {
	page, size, sort := parsePageRequest(r)

	sess := middleware.SessionFromCtx(r.Context())
	isAdmin := sess != nil && sess.Admin

	filter := store.Filter{
		PublishedOnly: !isAdmin,
		Page:          page,
		Size:          size,
		Sort:          sort,
	}

	if name := strings.TrimSpace(r.URL.Query().Get("categoryName")); name != "" && !strings.EqualFold(name, categoryFilterAll) {
		// Deliberately find-or-create: filtering by an unknown category
		// name creates that category. Kept for compatibility with the
		// original API's observed behavior; see DESIGN.md.
		category, err := h.categories.FindOrCreate(name)
		if err != nil {
			writeInternalError(w, "resolve category filter failed", err)
			return
		}
		filter.CategoryID = &category.ID
	}

	result, err := h.posts.List(filter)
	if err != nil {
		writeInternalError(w, "list posts failed", err)
		return
	}

	writeJSON(w, http.StatusOK, toPageResponse(result))
}

// Get handles GET /posts/{id}.
func (h *Posts) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, codePostNotFound, "Post not found.")
		return
	}

	post, err := h.posts.FindByID(id)
	if err != nil {
		writeInternalError(w, "find post failed", err)
		return
	}
	if post == nil {
		writeError(w, http.StatusNotFound, codePostNotFound, "Post not found.")
		return
	}

	writeJSON(w, http.StatusOK, toPostResponse(post))
}

// Create handles POST /posts (admin only). The category is resolved via
// find-or-create; published defaults to true when omitted.
func (h *Posts) Create(w http.ResponseWriter, r *http.Request) {
	var req postRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeValidation, "Invalid request body.")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, codeValidation, err.Error())
		return
	}

	category, err := h.categories.FindOrCreate(req.CategoryName)
	if err != nil {
		writeInternalError(w, "resolve category failed", err)
		return
	}

	published := true
	if req.Published != nil {
		published = *req.Published
	}

	post, err := h.posts.Create(&models.Post{
		Title:        req.Title,
		Content:      req.Content,
		Published:    published,
		CategoryID:   category.ID,
		CategoryName: category.Name,
	})
	if err != nil {
		writeInternalError(w, "create post failed", err)
		return
	}

	slog.Info("post created", "id", post.ID, "title", post.Title)
	writeJSON(w, http.StatusCreated, toPostResponse(post))
}

// Update handles PUT /posts/{id} (admin only). All fields are overwritten;
// an omitted published keeps the post's current value.
func (h *Posts) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, codePostNotFound, "Post not found.")
		return
	}

	var req postRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeValidation, "Invalid request body.")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, codeValidation, err.Error())
		return
	}

	existing, err := h.posts.FindByID(id)
	if err != nil {
		writeInternalError(w, "find post failed", err)
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, codePostNotFound, "Post not found.")
		return
	}

	category, err := h.categories.FindOrCreate(req.CategoryName)
	if err != nil {
		writeInternalError(w, "resolve category failed", err)
		return
	}

	published := existing.Published
	if req.Published != nil {
		published = *req.Published
	}

	post, err := h.posts.Update(&models.Post{
		ID:           id,
		Title:        req.Title,
		Content:      req.Content,
		Published:    published,
		CategoryID:   category.ID,
		CategoryName: category.Name,
	})
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, codePostNotFound, "Post not found.")
		return
	}
	if err != nil {
		writeInternalError(w, "update post failed", err)
		return
	}

	writeJSON(w, http.StatusOK, toPostResponse(post))
}

// Delete handles DELETE /posts/{id} (admin only).
func (h *Posts) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, codePostNotFound, "Post not found.")
		return
	}

	err = h.posts.Delete(id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, codePostNotFound, "Post not found.")
		return
	}
	if err != nil {
		writeInternalError(w, "delete post failed", err)
		return
	}

	slog.Info("post deleted", "id", id)
	w.WriteHeader(http.StatusNoContent)
}
