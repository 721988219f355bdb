// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"linkstash/internal/middleware"
	"linkstash/internal/models"
	"linkstash/internal/storage"
	"linkstash/internal/store"
)

// maxImageUpload caps multipart image uploads at 10 MiB.
const maxImageUpload = 10 << 20

// Links groups the link HTTP handlers and their dependencies.
// storageClient may be nil if S3 is not configured.
type Links struct {
	links         *store.LinkStore
	storageClient *storage.Client
}

// NewLinks creates a new Links handler group.
func NewLinks(links *store.LinkStore, storageClient *storage.Client) *Links {
	return &Links{links: links, storageClient: storageClient}
}

// listResponse is the GET /link response envelope.
type listResponse struct {
	Links      []models.Link    `json:"links"`
	Pagination store.Pagination `json:"pagination"`
}

// List serves GET /link?page&limit&search&category. It is deliberately
// ungated: link listing is readable without a session.
func (h *Links) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	opts := store.SearchOptions{
		Term:       q.Get("search"),
		Categories: store.AllCategories(),
	}
	if v, err := strconv.Atoi(q.Get("page")); err == nil {
		opts.Page = v
	}
	if v, err := strconv.Atoi(q.Get("limit")); err == nil {
		opts.Limit = v
	}
	if names, ok := q["category"]; ok {
		opts.Categories = store.Only(names...)
	}

	links, pagination, err := h.links.Search(opts)
	if err != nil {
		serverError(w, "search links failed", err)
		return
	}
	if links == nil {
		links = []models.Link{}
	}

	respondJSON(w, http.StatusOK, listResponse{Links: links, Pagination: pagination})
}

// Get serves GET /link/{id}. Also ungated: the auth wrapper is mounted on
// the mutating verbs of this route only. A miss (or an id that is not a
// UUID) responds with a null body, not a 404.
func (h *Links) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusOK, nil)
		return
	}

	link, err := h.links.FindByID(id)
	if err != nil {
		serverError(w, "find link failed", err)
		return
	}

	respondJSON(w, http.StatusOK, link)
}

// createLinkRequest carries the user-settable link fields. Stamps and
// timestamps are always set server-side.
type createLinkRequest struct {
	Category    string            `json:"category"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Tags        []string          `json:"tags"`
	URL         string            `json:"url"`
	Slug        string            `json:"slug"`
	Status      models.LinkStatus `json:"status"`
}

// Create serves POST /link. Gated.
func (h *Links) Create(w http.ResponseWriter, r *http.Request) {
	var req createLinkRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if msg := validateLink(req.Title, req.Description, req.URL); msg != "" {
		respondMessage(w, http.StatusBadRequest, msg)
		return
	}
	if req.Status != "" && !req.Status.IsValid() {
		respondMessage(w, http.StatusBadRequest, "Invalid status.")
		return
	}

	actor := middleware.SessionFromCtx(r.Context()).Email
	link, err := h.links.Create(&models.Link{
		Category:    req.Category,
		Title:       req.Title,
		Description: req.Description,
		Tags:        req.Tags,
		URL:         req.URL,
		Slug:        req.Slug,
		Status:      req.Status,
	}, actor)
	if err != nil {
		serverError(w, "create link failed", err)
		return
	}

	respondJSON(w, http.StatusOK, link)
}

// Update serves PUT /link/{id}. Gated. Fields present in the patch fully
// replace the stored value; modified_by is re-stamped, added_by is not.
func (h *Links) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusOK, nil)
		return
	}

	var patch store.LinkPatch
	if !decodeJSON(w, r, &patch) {
		return
	}
	if patch.Status != nil && !patch.Status.IsValid() {
		respondMessage(w, http.StatusBadRequest, "Invalid status.")
		return
	}

	actor := middleware.SessionFromCtx(r.Context()).Email
	link, err := h.links.Update(id, patch, actor)
	if errors.Is(err, store.ErrNotFound) {
		respondJSON(w, http.StatusOK, nil)
		return
	}
	if err != nil {
		serverError(w, "update link failed", err)
		return
	}

	respondJSON(w, http.StatusOK, link)
}

// Delete serves DELETE /link/{id}. Gated. Responds with the deleted
// document for client confirmation, or null when nothing matched.
func (h *Links) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusOK, nil)
		return
	}

	link, err := h.links.Delete(id)
	if errors.Is(err, store.ErrNotFound) {
		respondJSON(w, http.StatusOK, nil)
		return
	}
	if err != nil {
		serverError(w, "delete link failed", err)
		return
	}

	respondJSON(w, http.StatusOK, link)
}

// UploadImage serves POST /link/{id}/image. Gated. Stores the multipart
// "image" file in object storage and records its public URL on the link.
func (h *Links) UploadImage(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusOK, nil)
		return
	}

	if h.storageClient == nil {
		serverError(w, "image upload without storage configured", errors.New("storage not configured"))
		return
	}

	if err := r.ParseMultipartForm(maxImageUpload); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid upload.")
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "An image file is required.")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	key := fmt.Sprintf("links/%s/%s", id, header.Filename)
	if err := h.storageClient.Upload(r.Context(), key, contentType, file, header.Size); err != nil {
		serverError(w, "upload link image failed", err)
		return
	}

	actor := middleware.SessionFromCtx(r.Context()).Email
	link, err := h.links.SetImage(id, h.storageClient.FileURL(key), actor)
	if errors.Is(err, store.ErrNotFound) {
		// Link vanished after upload; remove the orphaned object.
		h.storageClient.Delete(r.Context(), key)
		respondJSON(w, http.StatusOK, nil)
		return
	}
	if err != nil {
		serverError(w, "set link image failed", err)
		return
	}

	respondJSON(w, http.StatusOK, link)
}
