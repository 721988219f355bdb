// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"

	"linkstash/internal/models"
)

const testActor = "tester@linkstash.local"

// seedLinks inserts n links with a shared title prefix for later cleanup.
func seedLinks(t *testing.T, links *LinkStore, prefix string, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		_, err := links.Create(&models.Link{
			Title:    fmt.Sprintf("%s %03d", prefix, i),
			Category: "Bookmarks",
			URL:      fmt.Sprintf("https://example.com/%d", i),
		}, testActor)
		if err != nil {
			t.Fatalf("seed link %d: %v", i, err)
		}
	}
}

func TestLinkCreateRoundTrip(t *testing.T) {
	db := testDB(t)
	links := NewLinkStore(db)
	t.Cleanup(func() { cleanLinks(t, db, "roundtrip-link") })

	created, err := links.Create(&models.Link{
		Category:    "Docs",
		Title:       "roundtrip-link Go stdlib",
		Description: "The standard library reference",
		Tags:        []string{"go", "reference"},
		URL:         "https://pkg.go.dev/std",
	}, testActor)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if created.AddedBy != testActor || created.ModifiedBy != testActor {
		t.Errorf("stamps = %q/%q, want both %q", created.AddedBy, created.ModifiedBy, testActor)
	}
	if created.Status != models.LinkStatusOpen {
		t.Errorf("status = %q, want default open", created.Status)
	}

	fetched, err := links.FindByID(created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if fetched == nil {
		t.Fatal("FindByID returned nil for a freshly created link")
	}
	if fetched.Title != created.Title || fetched.Description != created.Description ||
		fetched.Category != created.Category || fetched.URL != created.URL {
		t.Errorf("fetched fields differ from created: %+v vs %+v", fetched, created)
	}
	if len(fetched.Tags) != 2 || fetched.Tags[0] != "go" || fetched.Tags[1] != "reference" {
		t.Errorf("tags = %v, want [go reference] in order", fetched.Tags)
	}
}

func TestLinkFindByIDMissing(t *testing.T) {
	db := testDB(t)
	links := NewLinkStore(db)

	l, err := links.FindByID(uuid.New())
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if l != nil {
		t.Errorf("FindByID for random id = %+v, want nil", l)
	}
}

func TestLinkUpdateStamps(t *testing.T) {
	db := testDB(t)
	links := NewLinkStore(db)
	t.Cleanup(func() { cleanLinks(t, db, "stamp-link") })

	created, err := links.Create(&models.Link{Title: "stamp-link original"}, testActor)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	const updater = "editor@linkstash.local"
	newTitle := "stamp-link renamed"
	updated, err := links.Update(created.ID, LinkPatch{Title: &newTitle}, updater)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	if updated.Title != newTitle {
		t.Errorf("title = %q, want %q", updated.Title, newTitle)
	}
	if updated.AddedBy != testActor {
		t.Errorf("addedBy changed to %q, must stay %q", updated.AddedBy, testActor)
	}
	if updated.ModifiedBy != updater {
		t.Errorf("modifiedBy = %q, want %q", updated.ModifiedBy, updater)
	}
	// Untouched fields survive a partial patch.
	if updated.Category != created.Category || updated.URL != created.URL {
		t.Errorf("partial patch clobbered untouched fields: %+v", updated)
	}
}

func TestLinkUpdateMissing(t *testing.T) {
	db := testDB(t)
	links := NewLinkStore(db)

	title := "nope"
	_, err := links.Update(uuid.New(), LinkPatch{Title: &title}, testActor)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Update on missing link: err = %v, want ErrNotFound", err)
	}
}

func TestLinkDeleteReturnsDocument(t *testing.T) {
	db := testDB(t)
	links := NewLinkStore(db)
	t.Cleanup(func() { cleanLinks(t, db, "delete-link") })

	created, err := links.Create(&models.Link{Title: "delete-link victim"}, testActor)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	deleted, err := links.Delete(created.ID)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if deleted.ID != created.ID || deleted.Title != created.Title {
		t.Errorf("Delete returned %+v, want the deleted document", deleted)
	}

	if _, err := links.Delete(created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete: err = %v, want ErrNotFound", err)
	}
}

func TestLinkSearchPagination(t *testing.T) {
	db := testDB(t)
	links := NewLinkStore(db)
	const prefix = "pagination-link"
	t.Cleanup(func() { cleanLinks(t, db, prefix) })

	seedLinks(t, links, prefix, 25)

	page1, p1, err := links.Search(SearchOptions{Term: prefix, Page: 1, Limit: 20})
	if err != nil {
		t.Fatalf("Search page 1: %v", err)
	}
	if len(page1) != 20 {
		t.Errorf("page 1 has %d links, want 20", len(page1))
	}
	if p1.TotalLinks != 25 || p1.TotalPages != 2 {
		t.Errorf("pagination = %+v, want totalLinks=25 totalPages=2", p1)
	}

	page2, p2, err := links.Search(SearchOptions{Term: prefix, Page: 2, Limit: 20})
	if err != nil {
		t.Fatalf("Search page 2: %v", err)
	}
	if len(page2) != 5 {
		t.Errorf("page 2 has %d links, want 5", len(page2))
	}
	if p2.TotalPages != 2 {
		t.Errorf("page 2 pagination = %+v, want totalPages=2", p2)
	}

	// Consecutive pages must not overlap.
	seen := make(map[uuid.UUID]bool, 25)
	for _, l := range append(page1, page2...) {
		if seen[l.ID] {
			t.Fatalf("link %s appears on both pages", l.ID)
		}
		seen[l.ID] = true
	}
}

func TestLinkSearchPastEnd(t *testing.T) {
	db := testDB(t)
	links := NewLinkStore(db)
	const prefix = "pastend-link"
	t.Cleanup(func() { cleanLinks(t, db, prefix) })

	seedLinks(t, links, prefix, 3)

	rows, p, err := links.Search(SearchOptions{Term: prefix, Page: 99, Limit: 20})
	if err != nil {
		t.Fatalf("Search past end: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("page 99 returned %d rows, want empty page", len(rows))
	}
	if p.TotalLinks != 3 || p.TotalPages != 1 {
		t.Errorf("pagination = %+v, want totalLinks=3 totalPages=1", p)
	}
}

func TestLinkSearchNoMatches(t *testing.T) {
	db := testDB(t)
	links := NewLinkStore(db)

	rows, p, err := links.Search(SearchOptions{Term: "no-such-term-anywhere-xyzzy", Page: 5})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("got %d rows, want none", len(rows))
	}
	if p.TotalLinks != 0 || p.TotalPages != 0 {
		t.Errorf("pagination = %+v, want totalLinks=0 totalPages=0", p)
	}
}

func TestLinkSearchMatchesAllFields(t *testing.T) {
	db := testDB(t)
	links := NewLinkStore(db)
	const prefix = "fieldmatch-link"
	t.Cleanup(func() { cleanLinks(t, db, prefix) })

	// The term "design" appears only in the category here.
	if _, err := links.Create(&models.Link{
		Title:       prefix + " color palette site",
		Description: "nice palettes",
		Category:    "Design Ideas",
		Tags:        []string{"colors"},
	}, testActor); err != nil {
		t.Fatalf("Create: %v", err)
	}
	// And only in a tag here.
	if _, err := links.Create(&models.Link{
		Title:    prefix + " grid generator",
		Category: "Utilities",
		Tags:     []string{"css", "DESIGN"},
	}, testActor); err != nil {
		t.Fatalf("Create: %v", err)
	}
	// Control: no field contains the term.
	if _, err := links.Create(&models.Link{
		Title:    prefix + " icon pack",
		Category: "Icons",
	}, testActor); err != nil {
		t.Fatalf("Create: %v", err)
	}

	rows, _, err := links.Search(SearchOptions{Term: "design"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	matched := make(map[string]bool)
	for _, l := range rows {
		matched[l.Title] = true
	}
	if !matched[prefix+" color palette site"] {
		t.Error("search term in category did not match")
	}
	if !matched[prefix+" grid generator"] {
		t.Error("search term in tag did not match case-insensitively")
	}
	if matched[prefix+" icon pack"] {
		t.Error("control link matched without the term in any field")
	}
}

func TestLinkSearchCategoryFilter(t *testing.T) {
	db := testDB(t)
	links := NewLinkStore(db)
	const prefix = "catfilter-link"
	t.Cleanup(func() { cleanLinks(t, db, prefix) })

	for _, cat := range []string{"Docs", "Docs", "Icons"} {
		if _, err := links.Create(&models.Link{Title: prefix, Category: cat}, testActor); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	rows, p, err := links.Search(SearchOptions{Term: prefix, Categories: Only("Docs")})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if p.TotalLinks != 2 {
		t.Errorf("totalLinks = %d, want 2", p.TotalLinks)
	}
	for _, l := range rows {
		if l.Category != "Docs" {
			t.Errorf("filtered search returned category %q", l.Category)
		}
	}

	// Empty selection matches nothing.
	_, p, err = links.Search(SearchOptions{Term: prefix, Categories: Only()})
	if err != nil {
		t.Fatalf("Search empty selection: %v", err)
	}
	if p.TotalLinks != 0 {
		t.Errorf("empty selection totalLinks = %d, want 0", p.TotalLinks)
	}
}

func TestLinkSetImage(t *testing.T) {
	db := testDB(t)
	links := NewLinkStore(db)
	t.Cleanup(func() { cleanLinks(t, db, "image-link") })

	created, err := links.Create(&models.Link{Title: "image-link shot"}, testActor)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	const imageURL = "https://cdn.example.com/links/shot.png"
	updated, err := links.SetImage(created.ID, imageURL, "uploader@linkstash.local")
	if err != nil {
		t.Fatalf("SetImage: %v", err)
	}
	if updated.Image != imageURL {
		t.Errorf("image = %q, want %q", updated.Image, imageURL)
	}
	if updated.ModifiedBy != "uploader@linkstash.local" {
		t.Errorf("modifiedBy = %q, want uploader", updated.ModifiedBy)
	}

	if _, err := links.SetImage(uuid.New(), imageURL, testActor); !errors.Is(err, ErrNotFound) {
		t.Errorf("SetImage on missing link: err = %v, want ErrNotFound", err)
	}
}
