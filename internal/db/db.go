package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Connect opens a pgx pool against the configured database and verifies the
// connection before handing it out.
func Connect(ctx context.Context, url string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}

// Migrate applies the catalog schema. Names and descriptions are JSONB maps
// keyed by language code.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	const schema = `
CREATE TABLE IF NOT EXISTS categories (
	id       TEXT PRIMARY KEY,
	names    JSONB NOT NULL DEFAULT '{}',
	ordering INT NOT NULL DEFAULT 0,
	hidden   BOOLEAN NOT NULL DEFAULT FALSE
);

CREATE TABLE IF NOT EXISTS subcategories (
	id          TEXT PRIMARY KEY,
	category_id TEXT NOT NULL REFERENCES categories(id) ON DELETE CASCADE,
	names       JSONB NOT NULL DEFAULT '{}',
	ordering    INT NOT NULL DEFAULT 0,
	hidden      BOOLEAN NOT NULL DEFAULT FALSE
);

CREATE TABLE IF NOT EXISTS menu_items (
	id             TEXT PRIMARY KEY,
	subcategory_id TEXT NOT NULL REFERENCES subcategories(id) ON DELETE CASCADE,
	names          JSONB NOT NULL DEFAULT '{}',
	descriptions   JSONB NOT NULL DEFAULT '{}',
	price_cents    INT NOT NULL DEFAULT 0,
	ordering       INT NOT NULL DEFAULT 0,
	hidden         BOOLEAN NOT NULL DEFAULT FALSE,
	allergen_ids   TEXT[] NOT NULL DEFAULT '{}',
	supplement_ids TEXT[] NOT NULL DEFAULT '{}',
	side_dish_ids  TEXT[] NOT NULL DEFAULT '{}',
	photo          TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS allergens (
	id    TEXT PRIMARY KEY,
	names JSONB NOT NULL DEFAULT '{}'
);

CREATE TABLE IF NOT EXISTS supplements (
	id          TEXT PRIMARY KEY,
	names       JSONB NOT NULL DEFAULT '{}',
	price_cents INT NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS side_dishes (
	id          TEXT PRIMARY KEY,
	names       JSONB NOT NULL DEFAULT '{}',
	price_cents INT NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS staff (
	id       TEXT PRIMARY KEY,
	email    TEXT NOT NULL UNIQUE,
	password TEXT NOT NULL,
	name     TEXT NOT NULL DEFAULT ''
);
`
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
