// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store provides database access methods for all LinkStash
// entities. Each store struct wraps a *sql.DB and exposes typed query methods.
//
// Lookups by id/uid return (nil, nil) when no row matches. Mutations on a
// missing row return ErrNotFound; a category uid collision returns
// ErrConflict. The HTTP layer maps both with errors.Is.
package store

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound is returned by update/delete when no row matches.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a write violates a uniqueness
	// constraint, e.g. two category names that slugify to the same uid.
	ErrConflict = errors.New("conflict")
)

// uniqueViolation is the PostgreSQL SQLSTATE for unique constraint errors.
const uniqueViolation = "23505"

// isUniqueViolation reports whether err is a unique constraint violation.
// Concurrent writers racing on the same category uid are resolved by the
// database rejecting the second insert, which surfaces here.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// Pagination describes the window a link search returned and how much
// matched in total.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalLinks int `json:"totalLinks"`
	TotalPages int `json:"totalPages"`
}

// paginate computes pagination metadata for a result set. TotalPages is
// ceil(total/limit), and 0 when nothing matched.
func paginate(page, limit, total int) Pagination {
	totalPages := 0
	if total > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return Pagination{
		Page:       page,
		Limit:      limit,
		TotalLinks: total,
		TotalPages: totalPages,
	}
}

// CategoryFilter restricts a link search to a set of category names.
// The zero value selects every category; use Only to narrow. Modeling
// "all" as its own variant keeps an empty set distinct from no filter.
type CategoryFilter struct {
	names []string
}

// AllCategories matches links in every category.
func AllCategories() CategoryFilter {
	return CategoryFilter{}
}

// Only matches links whose category name is in the given set.
func Only(names ...string) CategoryFilter {
	if len(names) == 0 {
		// An explicit empty selection matches nothing; keep a non-nil
		// slice so it is distinguishable from the all variant.
		names = []string{}
	}
	return CategoryFilter{names: names}
}

// All reports whether the filter matches every category.
func (f CategoryFilter) All() bool {
	return f.names == nil
}

// Names returns the selected category names. Only meaningful when All is false.
func (f CategoryFilter) Names() []string {
	return f.names
}
