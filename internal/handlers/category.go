// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"linkstash/internal/middleware"
	"linkstash/internal/models"
	"linkstash/internal/store"
)

// Categories groups the category HTTP handlers. Every route in this group
// is gated, reads included.
type Categories struct {
	categories *store.CategoryStore
}

// NewCategories creates a new Categories handler group.
func NewCategories(categories *store.CategoryStore) *Categories {
	return &Categories{categories: categories}
}

// List serves GET /category: all categories sorted by name.
func (h *Categories) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.List()
	if err != nil {
		serverError(w, "list categories failed", err)
		return
	}
	if categories == nil {
		categories = []models.Category{}
	}

	respondJSON(w, http.StatusOK, categories)
}

// Get serves GET /category/{uid}. A miss responds with a null body.
func (h *Categories) Get(w http.ResponseWriter, r *http.Request) {
	category, err := h.categories.FindByUID(chi.URLParam(r, "uid"))
	if err != nil {
		serverError(w, "find category failed", err)
		return
	}

	respondJSON(w, http.StatusOK, category)
}

// createCategoryRequest carries the only user-settable category field.
// The uid is always derived server-side from the name.
type createCategoryRequest struct {
	Name string `json:"name"`
}

// Create serves POST /category. Two names that slugify to the same uid
// conflict: the second writer gets a 409.
func (h *Categories) Create(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if msg := validateCategoryName(req.Name); msg != "" {
		respondMessage(w, http.StatusBadRequest, msg)
		return
	}

	actor := middleware.SessionFromCtx(r.Context()).Email
	category, err := h.categories.Create(req.Name, actor)
	if errors.Is(err, store.ErrConflict) {
		respondMessage(w, http.StatusConflict, "A category with this name already exists.")
		return
	}
	if err != nil {
		serverError(w, "create category failed", err)
		return
	}

	respondJSON(w, http.StatusOK, category)
}

// Update serves PUT /category/{uid}. Renaming re-derives the uid.
func (h *Categories) Update(w http.ResponseWriter, r *http.Request) {
	var patch store.CategoryPatch
	if !decodeJSON(w, r, &patch) {
		return
	}
	if patch.Name != nil {
		if msg := validateCategoryName(*patch.Name); msg != "" {
			respondMessage(w, http.StatusBadRequest, msg)
			return
		}
	}

	actor := middleware.SessionFromCtx(r.Context()).Email
	category, err := h.categories.Update(chi.URLParam(r, "uid"), patch, actor)
	if errors.Is(err, store.ErrNotFound) {
		respondJSON(w, http.StatusOK, nil)
		return
	}
	if errors.Is(err, store.ErrConflict) {
		respondMessage(w, http.StatusConflict, "A category with this name already exists.")
		return
	}
	if err != nil {
		serverError(w, "update category failed", err)
		return
	}

	respondJSON(w, http.StatusOK, category)
}

// Delete serves DELETE /category/{uid}. Responds with the deleted document
// for client confirmation. Links referencing the category name are left
// untouched.
func (h *Categories) Delete(w http.ResponseWriter, r *http.Request) {
	category, err := h.categories.Delete(chi.URLParam(r, "uid"))
	if errors.Is(err, store.ErrNotFound) {
		respondJSON(w, http.StatusOK, nil)
		return
	}
	if err != nil {
		serverError(w, "delete category failed", err)
		return
	}

	respondJSON(w, http.StatusOK, category)
}
