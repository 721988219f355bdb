// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Category groups links under a human display name. UID is a slug derived
// from Name on every save and is unique across all categories — it is the
// public identifier used in URLs.
type Category struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	UID        string    `json:"uid"`
	AddedBy    string    `json:"addedBy"`
	ModifiedBy string    `json:"modifiedBy"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
