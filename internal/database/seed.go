package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"linkstash/internal/slug"
)

// starterCategories are created on first run so a fresh install has
// somewhere to file links.
var starterCategories = []string{
	"UI Libraries",
	"Icons",
	"Design Ideas",
	"Illustrations",
	"Bookmarks",
	"Utilities",
	"Docs",
}

// Seed populates the database with initial development data: a default
// admin user and the starter categories. It is a no-op when users already
// exist.
func Seed(db *sql.DB) error {
	// Check if any users exist already.
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	// Hash the default admin password.
	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	const adminEmail = "admin@linkstash.local"

	_, err = db.Exec(`
		INSERT INTO users (email, password_hash, name, role)
		VALUES ($1, $2, $3, $4)
	`, adminEmail, string(hash), "Admin", "admin")
	if err != nil {
		return fmt.Errorf("seed insert admin: %w", err)
	}

	for _, name := range starterCategories {
		_, err = db.Exec(`
			INSERT INTO categories (name, uid, added_by, modified_by)
			VALUES ($1, $2, $3, $3)
			ON CONFLICT (uid) DO NOTHING
		`, name, slug.Generate(name), adminEmail)
		if err != nil {
			return fmt.Errorf("seed insert category %q: %w", name, err)
		}
	}

	slog.Info("database seeded with default admin user and starter categories",
		"email", adminEmail,
		"password", "admin",
	)

	return nil
}
