package migrate

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// sqliteSchema mirrors the goose migrations for local sqlite databases and
// repository tests. Keep both in step.
var sqliteSchema = []string{
	`PRAGMA foreign_keys = ON`,
	`CREATE TABLE IF NOT EXISTS mpa_ratings (
		id   INTEGER PRIMARY KEY,
		name TEXT NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS genres (
		id   INTEGER PRIMARY KEY,
		name TEXT NOT NULL UNIQUE
	)`,
	`INSERT OR IGNORE INTO mpa_ratings (id, name) VALUES
		(1, 'G'), (2, 'PG'), (3, 'PG-13'), (4, 'R'), (5, 'NC-17')`,
	`INSERT OR IGNORE INTO genres (id, name) VALUES
		(1, 'Comedy'), (2, 'Drama'), (3, 'Cartoon'), (4, 'Thriller'), (5, 'Documentary'), (6, 'Action')`,
	`CREATE TABLE IF NOT EXISTS films (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		name         TEXT NOT NULL,
		description  VARCHAR(200) NOT NULL DEFAULT '',
		release_date DATE NOT NULL,
		duration     INTEGER NOT NULL CHECK (duration > 0),
		mpa_id       INTEGER NOT NULL REFERENCES mpa_ratings (id),
		created_at   DATETIME,
		updated_at   DATETIME
	)`,
	`CREATE TABLE IF NOT EXISTS film_genres (
		film_id  INTEGER NOT NULL REFERENCES films (id) ON DELETE CASCADE,
		genre_id INTEGER NOT NULL REFERENCES genres (id),
		PRIMARY KEY (film_id, genre_id)
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		email      TEXT NOT NULL,
		login      TEXT NOT NULL,
		name       TEXT NOT NULL,
		birthday   DATE NOT NULL,
		created_at DATETIME,
		updated_at DATETIME
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email_lower ON users (lower(email))`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_users_login_lower ON users (lower(login))`,
	`CREATE TABLE IF NOT EXISTS likes (
		film_id    INTEGER NOT NULL REFERENCES films (id) ON DELETE CASCADE,
		user_id    INTEGER NOT NULL REFERENCES users (id) ON DELETE CASCADE,
		created_at DATETIME,
		PRIMARY KEY (film_id, user_id)
	)`,
	`CREATE TABLE IF NOT EXISTS friendships (
		user_id    INTEGER NOT NULL REFERENCES users (id) ON DELETE CASCADE,
		friend_id  INTEGER NOT NULL REFERENCES users (id) ON DELETE CASCADE,
		status     TEXT NOT NULL CHECK (status IN ('PENDING', 'CONFIRMED')),
		created_at DATETIME,
		updated_at DATETIME,
		PRIMARY KEY (user_id, friend_id),
		CHECK (user_id <> friend_id)
	)`,
}

// ApplySQLiteSchema creates the schema and seeds the catalog on a sqlite
// connection. It is idempotent.
func ApplySQLiteSchema(ctx context.Context, db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("db is required")
	}
	conn := db.WithContext(ctx)
	for _, stmt := range sqliteSchema {
		if err := conn.Exec(stmt).Error; err != nil {
			return fmt.Errorf("apply sqlite schema: %w", err)
		}
	}
	return nil
}
