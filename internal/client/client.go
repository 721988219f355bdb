// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package client provides a Go client for the LinkStash API and the list
// controller that drives the dashboard table: debounced search, paging,
// per-page sorting, and fetch-on-change with stale-response discard.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"linkstash/internal/models"
	"linkstash/internal/store"
)

// defaultTimeout bounds every outbound call so an unresponsive server
// cannot wedge the caller.
const defaultTimeout = 15 * time.Second

// APIError is a non-2xx response from the server, carrying the message
// from its JSON error body.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

// Client is an HTTP client for the LinkStash API. It keeps the session
// cookie from Login in its jar, so one Client represents one signed-in
// identity.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates an API client for the given base URL.
func New(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("client cookie jar: %w", err)
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: defaultTimeout,
			Jar:     jar,
		},
	}, nil
}

// SearchQuery describes a link listing request.
type SearchQuery struct {
	Term string

	// Categories of nil means all; an empty non-nil slice selects nothing.
	Categories []string

	Page  int
	Limit int
}

// Values encodes the query as URL parameters, the same shape used for
// shareable dashboard URLs.
func (q SearchQuery) Values() url.Values {
	v := url.Values{}
	if q.Term != "" {
		v.Set("search", q.Term)
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	for _, name := range q.Categories {
		v.Add("category", name)
	}
	return v
}

// QueryFromValues decodes URL parameters back into a SearchQuery, so a
// bookmarked dashboard URL restores the same view.
func QueryFromValues(v url.Values) SearchQuery {
	q := SearchQuery{Term: v.Get("search")}
	q.Page, _ = strconv.Atoi(v.Get("page"))
	q.Limit, _ = strconv.Atoi(v.Get("limit"))
	if names, ok := v["category"]; ok {
		q.Categories = names
	}
	return q
}

// SearchResult is one page of links plus pagination metadata.
type SearchResult struct {
	Links      []models.Link    `json:"links"`
	Pagination store.Pagination `json:"pagination"`
}

// SearchLinks fetches one page of the link listing.
func (c *Client) SearchLinks(ctx context.Context, q SearchQuery) (*SearchResult, error) {
	var result SearchResult
	if err := c.do(ctx, http.MethodGet, "/link?"+q.Values().Encode(), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetLink fetches a single link. Returns nil when the server reports no
// such link (a null body).
func (c *Client) GetLink(ctx context.Context, id uuid.UUID) (*models.Link, error) {
	var link *models.Link
	if err := c.do(ctx, http.MethodGet, "/link/"+id.String(), nil, &link); err != nil {
		return nil, err
	}
	return link, nil
}

// CreateLink creates a link and returns the stored document.
func (c *Client) CreateLink(ctx context.Context, fields models.Link) (*models.Link, error) {
	var link models.Link
	if err := c.do(ctx, http.MethodPost, "/link", fields, &link); err != nil {
		return nil, err
	}
	return &link, nil
}

// UpdateLink applies a patch to a link and returns the updated document,
// or nil when the link no longer exists.
func (c *Client) UpdateLink(ctx context.Context, id uuid.UUID, patch store.LinkPatch) (*models.Link, error) {
	var link *models.Link
	if err := c.do(ctx, http.MethodPut, "/link/"+id.String(), patch, &link); err != nil {
		return nil, err
	}
	return link, nil
}

// DeleteLink removes a link and returns the deleted document, or nil when
// nothing matched.
func (c *Client) DeleteLink(ctx context.Context, id uuid.UUID) (*models.Link, error) {
	var link *models.Link
	if err := c.do(ctx, http.MethodDelete, "/link/"+id.String(), nil, &link); err != nil {
		return nil, err
	}
	return link, nil
}

// ListCategories fetches all categories sorted by name. Requires a session.
func (c *Client) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := c.do(ctx, http.MethodGet, "/category", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// Login authenticates and stores the session cookie for later calls.
func (c *Client) Login(ctx context.Context, email, password string) (*models.User, error) {
	body := map[string]string{"email": email, "password": password}
	var user models.User
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout destroys the server-side session.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
}

// do issues a request and decodes the JSON response into out (when non-nil).
// Non-2xx responses become an *APIError with the server's message.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s %s: encode body: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var eb struct {
			Message string `json:"message"`
		}
		if json.NewDecoder(resp.Body).Decode(&eb) == nil {
			apiErr.Message = eb.Message
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}
	return nil
}
