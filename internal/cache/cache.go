// Package cache persists resolved webpage URLs so repeat passes do not
// re-bill the AI providers for the same company.
package cache

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/sells-group/webfix-cli/internal/match"
)

// Cache is a sqlite-backed resolution cache keyed by hashed company
// name+country.
type Cache struct {
	db *sql.DB
}

// Open opens (and migrates) a cache database at the given path.
func Open(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, eris.Wrap(err, "cache: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close() //nolint:errcheck
			return nil, eris.Wrapf(err, "cache: exec %s", pragma)
		}
	}

	c := &Cache{db: db}
	if err := c.migrate(); err != nil {
		db.Close() //nolint:errcheck
		return nil, err
	}
	return c, nil
}

const migration = `
CREATE TABLE IF NOT EXISTS resolutions (
	company_hash TEXT PRIMARY KEY,
	company      TEXT NOT NULL,
	country      TEXT NOT NULL,
	webpage      TEXT NOT NULL,
	resolved_at  DATETIME NOT NULL DEFAULT (datetime('now'))
);
`

func (c *Cache) migrate() error {
	_, err := c.db.Exec(migration)
	return eris.Wrap(err, "cache: migrate")
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// key returns SHA-256 hex of the normalized name and country.
func key(company, country string) string {
	normalized := match.Normalize(company) + "|" + strings.ToUpper(strings.TrimSpace(country))
	h := sha256.Sum256([]byte(normalized))
	return fmt.Sprintf("%x", h)
}

// Get looks up a cached webpage for the company. The second return is false
// on a miss.
func (c *Cache) Get(ctx context.Context, company, country string) (string, bool) {
	var webpage string
	row := c.db.QueryRowContext(ctx,
		"SELECT webpage FROM resolutions WHERE company_hash = ?", key(company, country))
	if err := row.Scan(&webpage); err != nil {
		return "", false
	}
	zap.L().Debug("resolution cache hit", zap.String("company", company))
	return webpage, true
}

// Put stores a resolved webpage, replacing any previous entry.
func (c *Cache) Put(ctx context.Context, company, country, webpage string) error {
	_, err := c.db.ExecContext(ctx, `
		INSERT INTO resolutions (company_hash, company, country, webpage, resolved_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (company_hash) DO UPDATE SET
			webpage = excluded.webpage,
			resolved_at = excluded.resolved_at`,
		key(company, country), company, country, webpage, time.Now().UTC())
	return eris.Wrap(err, "cache: put")
}
