// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the JSON HTTP handlers for the LinkStash API.
// Handlers are grouped by concern (links, categories, auth) and receive
// their dependencies through the handler struct.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// errorBody is the JSON envelope for every error response.
type errorBody struct {
	Message string `json:"message"`
}

// respondJSON writes v as a JSON response with the given status. A nil v
// writes a literal null body — lookups that miss respond with the store's
// null result rather than a 404.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response failed", "error", err)
	}
}

// respondMessage writes a `{message: ...}` body with the given status.
func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorBody{Message: message})
}

// serverError logs the underlying error and responds with the fixed
// generic body. Internal error detail never reaches the client.
func serverError(w http.ResponseWriter, what string, err error) {
	slog.Error(what, "error", err)
	respondMessage(w, http.StatusInternalServerError, "An error occurred")
}

// decodeJSON parses the request body into dst. Returns false (after
// responding 400) when the body is not valid JSON.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}
