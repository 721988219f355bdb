// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"linkstash/internal/models"
)

// LinkStore handles all link-related database operations, including the
// filtered, paginated search behind the dashboard table.
type LinkStore struct {
	db *sql.DB
}

// NewLinkStore creates a new LinkStore with the given database connection.
func NewLinkStore(db *sql.DB) *LinkStore {
	return &LinkStore{db: db}
}

const linkColumns = `id, category, title, description, tags, url, slug, image, status, added_by, modified_by, created_at, updated_at`

// scanLink scans a row into a Link struct, decoding the jsonb tags column.
func scanLink(scanner interface{ Scan(...any) error }) (*models.Link, error) {
	var l models.Link
	var tags []byte
	err := scanner.Scan(
		&l.ID, &l.Category, &l.Title, &l.Description, &tags,
		&l.URL, &l.Slug, &l.Image, &l.Status,
		&l.AddedBy, &l.ModifiedBy, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(tags, &l.Tags); err != nil {
		return nil, fmt.Errorf("decode tags: %w", err)
	}
	return &l, nil
}

// encodeTags marshals a tag list for the jsonb column, normalizing nil to
// an empty array.
func encodeTags(tags []string) ([]byte, error) {
	if tags == nil {
		tags = []string{}
	}
	return json.Marshal(tags)
}

// SearchOptions describes a link listing request.
type SearchOptions struct {
	// Term, when non-empty, matches case-insensitively as a substring of
	// title, description, category, or any tag.
	Term string

	// Categories narrows the listing to a set of category names.
	Categories CategoryFilter

	// Page is 1-based; values below 1 fall back to 1. Limit falls back
	// to 20 when not positive.
	Page  int
	Limit int
}

const defaultSearchLimit = 20

// Search returns one page of matching links plus pagination metadata.
// A page past the end of the result set returns an empty page, not an
// error. Rows are windowed over (created_at, id) so consecutive pages
// never overlap; callers apply their own display sort.
func (s *LinkStore) Search(opts SearchOptions) ([]models.Link, Pagination, error) {
	page := opts.Page
	if page < 1 {
		page = 1
	}
	limit := opts.Limit
	if limit < 1 {
		limit = defaultSearchLimit
	}

	where, args := buildLinkFilter(opts)

	var total int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM links`+where, args...).Scan(&total); err != nil {
		return nil, Pagination{}, fmt.Errorf("count links: %w", err)
	}

	query := fmt.Sprintf(
		`SELECT %s FROM links%s ORDER BY created_at, id LIMIT $%d OFFSET $%d`,
		linkColumns, where, len(args)+1, len(args)+2,
	)
	rows, err := s.db.Query(query, append(args, limit, (page-1)*limit)...)
	if err != nil {
		return nil, Pagination{}, fmt.Errorf("search links: %w", err)
	}
	defer rows.Close()

	var links []models.Link
	for rows.Next() {
		l, err := scanLink(rows)
		if err != nil {
			return nil, Pagination{}, fmt.Errorf("scan link: %w", err)
		}
		links = append(links, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, Pagination{}, err
	}

	return links, paginate(page, limit, total), nil
}

// buildLinkFilter assembles the WHERE clause and arguments for Search.
func buildLinkFilter(opts SearchOptions) (string, []any) {
	var clauses []string
	var args []any

	if opts.Term != "" {
		args = append(args, likePattern(opts.Term))
		p := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf(
			`(title ILIKE %[1]s OR description ILIKE %[1]s OR category ILIKE %[1]s
			  OR EXISTS (SELECT 1 FROM jsonb_array_elements_text(tags) tag WHERE tag ILIKE %[1]s))`, p))
	}

	if !opts.Categories.All() {
		names := opts.Categories.Names()
		if len(names) == 0 {
			// Explicit empty selection matches nothing.
			clauses = append(clauses, "FALSE")
		} else {
			placeholders := make([]string, len(names))
			for i, name := range names {
				args = append(args, name)
				placeholders[i] = fmt.Sprintf("$%d", len(args))
			}
			clauses = append(clauses, "category IN ("+strings.Join(placeholders, ", ")+")")
		}
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

// likePattern wraps a search term for substring ILIKE matching, escaping
// the LIKE metacharacters so user input never acts as a wildcard.
func likePattern(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(term) + "%"
}

// FindByID retrieves a link by its UUID. Returns nil if not found.
func (s *LinkStore) FindByID(id uuid.UUID) (*models.Link, error) {
	row := s.db.QueryRow(`SELECT `+linkColumns+` FROM links WHERE id = $1`, id)
	l, err := scanLink(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find link by id: %w", err)
	}
	return l, nil
}

// Create inserts a new link, stamping added_by and modified_by with the
// actor. The slug field is persisted as given (it is never derived for
// links) and status defaults to open when unset.
func (s *LinkStore) Create(l *models.Link, actor string) (*models.Link, error) {
	status := l.Status
	if status == "" {
		status = models.LinkStatusOpen
	}

	tags, err := encodeTags(l.Tags)
	if err != nil {
		return nil, fmt.Errorf("create link: %w", err)
	}

	row := s.db.QueryRow(`
		INSERT INTO links (category, title, description, tags, url, slug, image, status, added_by, modified_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
		RETURNING `+linkColumns,
		l.Category, l.Title, l.Description, tags, l.URL, l.Slug, l.Image, status, actor,
	)
	result, err := scanLink(row)
	if err != nil {
		return nil, fmt.Errorf("create link: %w", err)
	}
	return result, nil
}

// LinkPatch holds the mutable link fields for an update. Nil fields are
// left unchanged; present fields replace the stored value entirely.
type LinkPatch struct {
	Category    *string            `json:"category"`
	Title       *string            `json:"title"`
	Description *string            `json:"description"`
	Tags        *[]string          `json:"tags"`
	URL         *string            `json:"url"`
	Status      *models.LinkStatus `json:"status"`
}

// Update applies the patch to the link with the given id, stamping
// modified_by with the actor. added_by is immutable after creation.
// Returns ErrNotFound when no link matches.
func (s *LinkStore) Update(id uuid.UUID, patch LinkPatch, actor string) (*models.Link, error) {
	existing, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("update link %s: %w", id, ErrNotFound)
	}

	if patch.Category != nil {
		existing.Category = *patch.Category
	}
	if patch.Title != nil {
		existing.Title = *patch.Title
	}
	if patch.Description != nil {
		existing.Description = *patch.Description
	}
	if patch.Tags != nil {
		existing.Tags = *patch.Tags
	}
	if patch.URL != nil {
		existing.URL = *patch.URL
	}
	if patch.Status != nil {
		existing.Status = *patch.Status
	}

	tags, err := encodeTags(existing.Tags)
	if err != nil {
		return nil, fmt.Errorf("update link: %w", err)
	}

	row := s.db.QueryRow(`
		UPDATE links SET
			category = $1, title = $2, description = $3, tags = $4,
			url = $5, status = $6, modified_by = $7, updated_at = NOW()
		WHERE id = $8
		RETURNING `+linkColumns,
		existing.Category, existing.Title, existing.Description, tags,
		existing.URL, existing.Status, actor, id,
	)
	result, err := scanLink(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("update link %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("update link: %w", err)
	}
	return result, nil
}

// SetImage records the uploaded image URL for a link, stamping modified_by.
// Returns ErrNotFound when no link matches.
func (s *LinkStore) SetImage(id uuid.UUID, imageURL, actor string) (*models.Link, error) {
	row := s.db.QueryRow(`
		UPDATE links SET image = $1, modified_by = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING `+linkColumns,
		imageURL, actor, id,
	)
	result, err := scanLink(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("set link image %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("set link image: %w", err)
	}
	return result, nil
}

// Delete removes the link with the given id and returns the deleted row
// for client confirmation. Returns ErrNotFound when nothing matches.
func (s *LinkStore) Delete(id uuid.UUID) (*models.Link, error) {
	row := s.db.QueryRow(`DELETE FROM links WHERE id = $1 RETURNING `+linkColumns, id)
	l, err := scanLink(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("delete link %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("delete link: %w", err)
	}
	return l, nil
}
