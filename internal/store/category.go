// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"linkstash/internal/models"
	"linkstash/internal/slug"
)

// CategoryStore manages categories in the database.
type CategoryStore struct {
	db *sql.DB
}

// NewCategoryStore returns a new CategoryStore.
func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

const categoryColumns = `id, name, uid, added_by, modified_by, created_at, updated_at`

// scanCategory scans a row into a Category struct.
func scanCategory(scanner interface{ Scan(...any) error }) (*models.Category, error) {
	var c models.Category
	err := scanner.Scan(
		&c.ID, &c.Name, &c.UID,
		&c.AddedBy, &c.ModifiedBy, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns all categories sorted by name ascending, case-insensitively.
// There is no pagination: the category count is assumed small.
func (s *CategoryStore) List() ([]models.Category, error) {
	rows, err := s.db.Query(`
		SELECT ` + categoryColumns + `
		FROM categories
		ORDER BY lower(name) ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var items []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(
			&c.ID, &c.Name, &c.UID,
			&c.AddedBy, &c.ModifiedBy, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

// FindByUID retrieves a category by its slug uid. Returns nil if not found.
func (s *CategoryStore) FindByUID(uid string) (*models.Category, error) {
	row := s.db.QueryRow(`SELECT `+categoryColumns+` FROM categories WHERE uid = $1`, uid)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by uid: %w", err)
	}
	return c, nil
}

// Create inserts a new category, deriving its uid from the name. The actor
// is stamped into both added_by and modified_by. A uid collision returns
// ErrConflict.
func (s *CategoryStore) Create(name, actor string) (*models.Category, error) {
	row := s.db.QueryRow(`
		INSERT INTO categories (name, uid, added_by, modified_by)
		VALUES ($1, $2, $3, $3)
		RETURNING `+categoryColumns,
		name, slug.Generate(name), actor,
	)
	result, err := scanCategory(row)
	if isUniqueViolation(err) {
		return nil, fmt.Errorf("create category %q: %w", name, ErrConflict)
	}
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return result, nil
}

// CategoryPatch holds the mutable category fields for an update. Nil
// fields are left unchanged.
type CategoryPatch struct {
	Name *string `json:"name"`
}

// Update merges the patch into the category identified by uid, re-deriving
// the uid from the new name so that renaming changes the public identifier.
// The actor is stamped into modified_by; added_by never changes. Returns
// ErrNotFound when no category matches, ErrConflict when the new uid is
// already taken.
func (s *CategoryStore) Update(uid string, patch CategoryPatch, actor string) (*models.Category, error) {
	existing, err := s.FindByUID(uid)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("update category %q: %w", uid, ErrNotFound)
	}

	name := existing.Name
	if patch.Name != nil {
		name = *patch.Name
	}

	row := s.db.QueryRow(`
		UPDATE categories SET
			name = $1, uid = $2, modified_by = $3, updated_at = NOW()
		WHERE uid = $4
		RETURNING `+categoryColumns,
		name, slug.Generate(name), actor, uid,
	)
	result, err := scanCategory(row)
	if isUniqueViolation(err) {
		return nil, fmt.Errorf("update category %q: %w", uid, ErrConflict)
	}
	if err == sql.ErrNoRows {
		// Deleted between the lookup and the update.
		return nil, fmt.Errorf("update category %q: %w", uid, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	return result, nil
}

// Delete removes the category with the given uid and returns the deleted
// row for client confirmation. Returns ErrNotFound when nothing matches.
// Links referencing the category's name are left untouched.
func (s *CategoryStore) Delete(uid string) (*models.Category, error) {
	row := s.db.QueryRow(`DELETE FROM categories WHERE uid = $1 RETURNING `+categoryColumns, uid)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("delete category %q: %w", uid, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("delete category: %w", err)
	}
	return c, nil
}
