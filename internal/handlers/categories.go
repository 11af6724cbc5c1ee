// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"devblog/internal/store"
)

// Categories groups the category CRUD handlers.
type Categories struct {
	categories *store.CategoryStore
}

// NewCategories creates a new Categories handler group.
func NewCategories(categories *store.CategoryStore) *Categories {
	return &Categories{categories: categories}
}

// List handles GET /categories.
func (h *Categories) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.categories.List()
	if err != nil {
		writeInternalError(w, "list categories failed", err)
		return
	}

	resp := make([]categoryResponse, 0, len(items))
	for _, c := range items {
		resp = append(resp, categoryResponse{ID: c.ID, Name: c.Name})
	}
	writeJSON(w, http.StatusOK, resp)
}

// Create handles POST /categories (admin only).
func (h *Categories) Create(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeValidation, "Invalid request body.")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, codeValidation, err.Error())
		return
	}

	category, err := h.categories.Create(req.Name)
	if errors.Is(err, store.ErrAlreadyExists) {
		writeError(w, http.StatusConflict, codeCategoryExists, "Category already exists.")
		return
	}
	if err != nil {
		writeInternalError(w, "create category failed", err)
		return
	}

	slog.Info("category created", "id", category.ID, "name", category.Name)
	writeJSON(w, http.StatusCreated, categoryResponse{ID: category.ID, Name: category.Name})
}

// Rename handles PUT /categories/{id} (admin only).
func (h *Categories) Rename(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, codeCategoryNotFound, "Category not found.")
		return
	}

	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeValidation, "Invalid request body.")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, codeValidation, err.Error())
		return
	}

	category, err := h.categories.Rename(id, req.Name)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, codeCategoryNotFound, "Category not found.")
		return
	}
	if errors.Is(err, store.ErrAlreadyExists) {
		writeError(w, http.StatusConflict, codeCategoryExists, "Category already exists.")
		return
	}
	if err != nil {
		writeInternalError(w, "rename category failed", err)
		return
	}

	writeJSON(w, http.StatusOK, categoryResponse{ID: category.ID, Name: category.Name})
}

// Delete handles DELETE /categories/{id} (admin only). Deleting a
// category also deletes every post it owns.
func (h *Categories) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, codeCategoryNotFound, "Category not found.")
		return
	}

	err = h.categories.Delete(id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, codeCategoryNotFound, "Category not found.")
		return
	}
	if err != nil {
		writeInternalError(w, "delete category failed", err)
		return
	}

	slog.Info("category deleted", "id", id)
	w.WriteHeader(http.StatusNoContent)
}
