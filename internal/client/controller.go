// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package client

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"linkstash/internal/models"
	"linkstash/internal/store"
)

// DebounceDelay is how long the controller waits after the last keystroke
// before issuing a search request.
const DebounceDelay = 500 * time.Millisecond

// SortDescriptor selects the display sort for the current page. Sorting
// is applied to the fetched page only, never to the whole result set.
type SortDescriptor struct {
	Column     string // "title", "category", "description", "url", "updatedAt"
	Descending bool
}

// Snapshot is an immutable view of the controller state, delivered to the
// update callback after every change.
type Snapshot struct {
	Loading    bool
	Query      SearchQuery
	Sort       SortDescriptor
	Rows       []models.Link
	Pagination store.Pagination
}

// Controller drives the link table. It re-fetches whenever the debounced
// search term, category filter, page, or rows-per-page change, and
// guarantees that a superseded response never overwrites newer state.
//
// All methods are safe for concurrent use. Fetches run on their own
// goroutines; onUpdate and onError are invoked without the internal lock
// held but never concurrently with themselves, and a snapshot from a
// superseded fetch is never delivered after one from a newer fetch.
type Controller struct {
	api      *Client
	onUpdate func(Snapshot)
	onError  func(error)

	// cbMu serializes callback invocations across fetch goroutines.
	// notifiedGen, guarded by it, is the generation of the last snapshot
	// delivered; snapshots from older generations are dropped so a slow
	// goroutine cannot deliver a superseded view after a newer one.
	cbMu        sync.Mutex
	notifiedGen uint64

	mu         sync.Mutex
	query      SearchQuery
	sort       SortDescriptor
	rows       []models.Link
	pagination store.Pagination
	loading    bool

	// gen identifies the newest issued fetch; responses from older
	// generations are discarded.
	gen    uint64
	cancel context.CancelFunc

	// debounceSeq invalidates a debounce callback that fired before a
	// newer keystroke but had not yet taken the lock.
	debounce    *time.Timer
	debounceSeq uint64
	pending     string

	closed bool
}

// NewController creates a controller. onUpdate receives a snapshot after
// every state change; onError receives fetch and delete failures. Either
// callback may be nil.
func NewController(api *Client, onUpdate func(Snapshot), onError func(error)) *Controller {
	c := &Controller{
		api:      api,
		onUpdate: onUpdate,
		onError:  onError,
		query:    SearchQuery{Page: 1, Limit: 20},
		sort:     SortDescriptor{Column: "title"},
	}
	return c
}

// Restore replaces the view state from decoded URL parameters, as on a
// page load of a bookmarked dashboard URL, and fetches immediately.
func (c *Controller) Restore(q SearchQuery) {
	c.mu.Lock()
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 20
	}
	c.query = q
	c.pending = q.Term
	c.fetchLocked()
	c.mu.Unlock()
}

// Start issues the initial fetch.
func (c *Controller) Start() {
	c.mu.Lock()
	c.fetchLocked()
	c.mu.Unlock()
}

// SetSearch records a new search term. The fetch fires only after the
// term has been stable for DebounceDelay; every keystroke resets the
// timer. Changing the term snaps back to page 1.
func (c *Controller) SetSearch(term string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}

	c.pending = term
	c.debounceSeq++
	seq := c.debounceSeq
	if c.debounce != nil {
		c.debounce.Stop()
	}
	c.debounce = time.AfterFunc(DebounceDelay, func() {
		c.mu.Lock()
		// A fired timer may have been superseded while waiting for the
		// lock; only the newest keystroke's callback may apply pending.
		if c.closed || seq != c.debounceSeq || c.query.Term == c.pending {
			c.mu.Unlock()
			return
		}
		c.query.Term = c.pending
		c.query.Page = 1
		c.fetchLocked()
		c.mu.Unlock()
	})
}

// SetPage moves to the given 1-based page and fetches.
func (c *Controller) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	c.mu.Lock()
	c.query.Page = page
	c.fetchLocked()
	c.mu.Unlock()
}

// SetLimit changes rows-per-page, snaps back to page 1, and fetches.
func (c *Controller) SetLimit(limit int) {
	if limit < 1 {
		limit = 20
	}
	c.mu.Lock()
	c.query.Limit = limit
	c.query.Page = 1
	c.fetchLocked()
	c.mu.Unlock()
}

// SetCategories narrows the listing to the given category names (nil for
// all), snaps back to page 1, and fetches.
func (c *Controller) SetCategories(names []string) {
	c.mu.Lock()
	c.query.Categories = names
	c.query.Page = 1
	c.fetchLocked()
	c.mu.Unlock()
}

// SetSort changes the display sort of the current page. No fetch: the
// sort is purely local.
func (c *Controller) SetSort(desc SortDescriptor) {
	c.mu.Lock()
	c.sort = desc
	gen := c.gen
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.notify(gen, snap)
}

// Refresh re-fetches the current page.
func (c *Controller) Refresh() {
	c.mu.Lock()
	c.fetchLocked()
	c.mu.Unlock()
}

// Delete removes a link after the caller has confirmed the action. On
// success the current page is re-fetched; on failure the rows are left
// untouched and the error is both reported and returned.
func (c *Controller) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := c.api.DeleteLink(ctx, id); err != nil {
		if c.onError != nil {
			c.onError(err)
		}
		return err
	}
	c.Refresh()
	return nil
}

// Snapshot returns the current state with the display sort applied.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Query returns the current view state for encoding into a shareable URL.
func (c *Controller) Query() SearchQuery {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query
}

// Close stops the debounce timer and cancels any in-flight fetch.
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	if c.debounce != nil {
		c.debounce.Stop()
	}
	if c.cancel != nil {
		c.cancel()
	}
	c.mu.Unlock()
}

// fetchLocked starts a new fetch generation, cancelling the previous
// in-flight request. Callers must hold c.mu.
func (c *Controller) fetchLocked() {
	if c.closed {
		return
	}

	c.gen++
	gen := c.gen
	if c.cancel != nil {
		c.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.loading = true
	query := c.query
	snap := c.snapshotLocked()

	go func() {
		c.notify(gen, snap)

		result, err := c.api.SearchLinks(ctx, query)

		c.mu.Lock()
		// A newer fetch was issued while this one was in flight; its
		// response must not overwrite the newer state.
		if gen != c.gen || c.closed {
			c.mu.Unlock()
			return
		}
		c.loading = false
		if err == nil {
			c.rows = result.Links
			c.pagination = result.Pagination
		}
		done := c.snapshotLocked()
		c.mu.Unlock()

		if err != nil && !errors.Is(err, context.Canceled) && c.onError != nil {
			c.onError(err)
		}
		// Failed fetches still return to idle: consumers driven only by
		// onUpdate must see the loading indicator clear.
		c.notify(gen, done)
	}()
}

// snapshotLocked builds a snapshot with the display sort applied.
// Callers must hold c.mu.
func (c *Controller) snapshotLocked() Snapshot {
	rows := make([]models.Link, len(c.rows))
	copy(rows, c.rows)
	sortRows(rows, c.sort)
	return Snapshot{
		Loading:    c.loading,
		Query:      c.query,
		Sort:       c.sort,
		Rows:       rows,
		Pagination: c.pagination,
	}
}

// notify delivers a snapshot tagged with the generation that produced it.
// Out-of-order deliveries from superseded fetch goroutines are dropped so
// the last snapshot a consumer sees is never a stale view.
func (c *Controller) notify(gen uint64, snap Snapshot) {
	if c.onUpdate == nil {
		return
	}
	c.cbMu.Lock()
	defer c.cbMu.Unlock()
	if gen < c.notifiedGen {
		return
	}
	c.notifiedGen = gen
	c.onUpdate(snap)
}

// sortRows stably sorts one page of links by the selected column using
// natural string order, reversed for descending.
func sortRows(rows []models.Link, desc SortDescriptor) {
	if desc.Column == "" {
		return
	}
	sort.SliceStable(rows, func(i, j int) bool {
		a := columnValue(rows[i], desc.Column)
		b := columnValue(rows[j], desc.Column)
		if desc.Descending {
			return b < a
		}
		return a < b
	})
}

// columnValue extracts the sortable string for a column.
func columnValue(l models.Link, column string) string {
	switch column {
	case "title":
		return l.Title
	case "category":
		return l.Category
	case "description":
		return l.Description
	case "url":
		return l.URL
	case "updatedAt":
		return l.UpdatedAt.UTC().Format(time.RFC3339Nano)
	default:
		return ""
	}
}
