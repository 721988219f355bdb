package storage

import "testing"

func newTestClient(t *testing.T, publicURL string) *Client {
	t.Helper()
	c, err := New("https://s3.example.com/", "us-east-1", "key", "secret", "linkstash-images", publicURL)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if c == nil {
		t.Fatal("New returned nil for a configured client")
	}
	return c
}

func TestNewUnconfigured(t *testing.T) {
	tests := []struct {
		name                        string
		endpoint, accessKey, secret string
	}{
		{name: "no endpoint", accessKey: "k", secret: "s"},
		{name: "no access key", endpoint: "https://s3.example.com", secret: "s"},
		{name: "no secret", endpoint: "https://s3.example.com", accessKey: "k"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.endpoint, "us-east-1", tt.accessKey, tt.secret, "bucket", "")
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			if c != nil {
				t.Error("partial configuration should yield a nil client")
			}
		})
	}
}

func TestFileURL(t *testing.T) {
	c := newTestClient(t, "")
	want := "https://s3.example.com/linkstash-images/links/abc/shot.png"
	if got := c.FileURL("links/abc/shot.png"); got != want {
		t.Errorf("FileURL = %q, want %q", got, want)
	}

	cdn := newTestClient(t, "https://cdn.example.com/")
	want = "https://cdn.example.com/links/abc/shot.png"
	if got := cdn.FileURL("links/abc/shot.png"); got != want {
		t.Errorf("FileURL with public URL = %q, want %q", got, want)
	}
}

func TestExtractKey(t *testing.T) {
	c := newTestClient(t, "https://cdn.example.com")

	key, ok := c.ExtractKey("https://cdn.example.com/links/abc/shot.png")
	if !ok || key != "links/abc/shot.png" {
		t.Errorf("ExtractKey via public URL = %q, %v", key, ok)
	}

	// Path-style URLs resolve too, even when a public URL is configured.
	key, ok = c.ExtractKey("https://s3.example.com/linkstash-images/links/abc/shot.png")
	if !ok || key != "links/abc/shot.png" {
		t.Errorf("ExtractKey via endpoint = %q, %v", key, ok)
	}

	if _, ok := c.ExtractKey("https://elsewhere.example.com/x.png"); ok {
		t.Error("ExtractKey accepted a foreign URL")
	}
}
