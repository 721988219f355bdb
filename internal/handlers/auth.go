// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"net/http"
	"strings"

	"linkstash/internal/models"
	"linkstash/internal/session"
	"linkstash/internal/store"
)

// Auth groups the authentication HTTP handlers.
type Auth struct {
	sessions *session.Store
	users    *store.UserStore
}

// NewAuth creates a new Auth handler group.
func NewAuth(sessions *session.Store, users *store.UserStore) *Auth {
	return &Auth{sessions: sessions, users: users}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register serves POST /auth/register. New accounts always get the user
// role; admins are created by the seed or by hand.
func (h *Auth) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if msg := validateRegistration(req.Email, req.Password); msg != "" {
		respondMessage(w, http.StatusBadRequest, msg)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := h.users.Create(email, req.Password, req.Name, req.Phone, models.RoleUser)
	if errors.Is(err, store.ErrConflict) {
		respondMessage(w, http.StatusConflict, "An account with this email already exists.")
		return
	}
	if err != nil {
		serverError(w, "register failed", err)
		return
	}

	if _, err := h.sessions.Create(r.Context(), w, &session.Data{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
		Role:   user.Role,
	}); err != nil {
		serverError(w, "create session failed", err)
		return
	}

	respondJSON(w, http.StatusOK, user)
}

// Login serves POST /auth/login. Invalid credentials get a single generic
// message so the response never reveals whether the email exists.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := h.users.FindByEmail(email)
	if err != nil {
		serverError(w, "login lookup failed", err)
		return
	}
	if user == nil || !h.users.CheckPassword(user, req.Password) {
		respondMessage(w, http.StatusUnauthorized, "Invalid email or password.")
		return
	}

	if _, err := h.sessions.Create(r.Context(), w, &session.Data{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
		Role:   user.Role,
	}); err != nil {
		serverError(w, "create session failed", err)
		return
	}

	respondJSON(w, http.StatusOK, user)
}

// Logout serves POST /auth/logout. Destroying a session that does not
// exist is not an error.
func (h *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Destroy(r.Context(), w, r); err != nil {
		serverError(w, "destroy session failed", err)
		return
	}
	respondMessage(w, http.StatusOK, "Logged out")
}
