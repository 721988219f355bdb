// Session tests require a reachable Valkey instance and are skipped
// otherwise.
package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"linkstash/internal/models"
)

func testClient(t *testing.T) *redis.Client {
	t.Helper()

	host := os.Getenv("VALKEY_HOST")
	if host == "" {
		host = "localhost"
	}
	port := os.Getenv("VALKEY_PORT")
	if port == "" {
		port = "6379"
	}

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: os.Getenv("VALKEY_PASSWORD"),
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping integration test: valkey not reachable: %v", err)
	}

	t.Cleanup(func() { client.Close() })
	return client
}

// requestWithCookie builds a request carrying the session cookie set by a
// previous response.
func requestWithCookie(rec *httptest.ResponseRecorder) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		if c.Name == CookieName {
			req.AddCookie(c)
		}
	}
	return req
}

func TestSessionRoundTrip(t *testing.T) {
	store := NewStore(testClient(t), false)
	ctx := context.Background()

	rec := httptest.NewRecorder()
	id, err := store.Create(ctx, rec, &Data{
		UserID: uuid.New(),
		Email:  "session-test@linkstash.local",
		Name:   "Session Test",
		Role:   models.RoleUser,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	t.Cleanup(func() { store.client.Del(ctx, keyPrefix+id) })

	cookies := rec.Result().Cookies()
	var found *http.Cookie
	for _, c := range cookies {
		if c.Name == CookieName {
			found = c
		}
	}
	if found == nil {
		t.Fatal("no session cookie set on response")
	}
	if found.Value != id {
		t.Errorf("cookie value = %q, want session id %q", found.Value, id)
	}
	if !found.HttpOnly {
		t.Error("session cookie is not HttpOnly")
	}

	data, err := store.Get(ctx, requestWithCookie(rec))
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if data == nil {
		t.Fatal("Get returned nil for a live session")
	}
	if data.Email != "session-test@linkstash.local" || data.Role != models.RoleUser {
		t.Errorf("round-tripped data = %+v", data)
	}
	if data.CreatedAt.IsZero() {
		t.Error("CreatedAt not stamped")
	}
}

func TestSessionGetWithoutCookie(t *testing.T) {
	store := NewStore(testClient(t), false)

	data, err := store.Get(context.Background(), httptest.NewRequest(http.MethodGet, "/", nil))
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if data != nil {
		t.Errorf("Get without cookie = %+v, want nil", data)
	}
}

func TestSessionGetUnknownID(t *testing.T) {
	store := NewStore(testClient(t), false)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "deadbeef"})

	data, err := store.Get(context.Background(), req)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if data != nil {
		t.Errorf("Get with unknown id = %+v, want nil", data)
	}
}

func TestSessionDestroy(t *testing.T) {
	store := NewStore(testClient(t), false)
	ctx := context.Background()

	rec := httptest.NewRecorder()
	if _, err := store.Create(ctx, rec, &Data{Email: "destroy-test@linkstash.local"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	req := requestWithCookie(rec)
	destroyRec := httptest.NewRecorder()
	if err := store.Destroy(ctx, destroyRec, req); err != nil {
		t.Fatalf("Destroy: %v", err)
	}

	// The session is gone from Valkey.
	data, err := store.Get(ctx, req)
	if err != nil {
		t.Fatalf("Get after destroy: %v", err)
	}
	if data != nil {
		t.Errorf("session survived Destroy: %+v", data)
	}

	// And the cookie is expired on the response.
	var cleared bool
	for _, c := range destroyRec.Result().Cookies() {
		if c.Name == CookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("Destroy did not expire the session cookie")
	}

	// Destroying with no cookie at all is a no-op, not an error.
	if err := store.Destroy(ctx, httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil)); err != nil {
		t.Errorf("Destroy without cookie: %v", err)
	}
}

func TestSessionDestroyValkeyUnreachable(t *testing.T) {
	// No skip: this client is never pinged and the delete is expected to
	// fail. Logout stays best-effort, so the cookie must clear anyway.
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	defer client.Close()
	store := NewStore(client, false)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "deadbeef"})
	rec := httptest.NewRecorder()

	if err := store.Destroy(context.Background(), rec, req); err != nil {
		t.Fatalf("Destroy: %v", err)
	}

	var cleared bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == CookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("cookie not cleared when the session delete failed")
	}
}
