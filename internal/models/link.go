// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// LinkStatus is the lifecycle state of a link. Only two variants exist;
// nothing in the application branches on it yet, but it is persisted and
// round-tripped so existing data keeps its value.
type LinkStatus string

const (
	LinkStatusOpen   LinkStatus = "open"
	LinkStatusClosed LinkStatus = "closed"
)

// IsValid reports whether the status is one of the known variants.
func (s LinkStatus) IsValid() bool {
	return s == LinkStatusOpen || s == LinkStatusClosed
}

// Link represents a stored bookmark. Category is a denormalized reference
// to a Category name — there is no foreign key, and deleting a category
// leaves links pointing at the old name.
type Link struct {
	ID          uuid.UUID  `json:"id"`
	Category    string     `json:"category"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Tags        []string   `json:"tags"`
	URL         string     `json:"url"`
	Slug        string     `json:"slug"` // Dormant: persisted but never populated
	Image       string     `json:"image,omitempty"`
	Status      LinkStatus `json:"status"`
	AddedBy     string     `json:"addedBy"`
	ModifiedBy  string     `json:"modifiedBy"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}
