// Package incremental persists per-artifact content hashes between builds so
// unchanged artifacts can skip their writes.
package incremental

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Cache is a SQLite-backed logical-path → content-hash store. Safe for
// concurrent use within one process.
type Cache struct {
	db *sql.DB
	mu sync.Mutex
}

// Open creates or opens the cache database. Use ":memory:" for tests.
func Open(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open artifact cache: %w", err)
	}

	c := &Cache{db: db}
	if err := c.initialize(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize artifact cache schema: %w", err)
	}
	return c, nil
}

func (c *Cache) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS artifacts (
		logical_path TEXT PRIMARY KEY,
		content_hash TEXT NOT NULL,
		updated_at INTEGER NOT NULL
	);
	`
	_, err := c.db.Exec(schema)
	return err
}

// Lookup returns the stored content hash for a logical path.
func (c *Cache) Lookup(ctx context.Context, logicalPath string) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var hash string
	err := c.db.QueryRowContext(ctx,
		"SELECT content_hash FROM artifacts WHERE logical_path = ?", logicalPath).Scan(&hash)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("lookup artifact %s: %w", logicalPath, err)
	}
	return hash, true, nil
}

// Store upserts the content hash for a logical path.
func (c *Cache) Store(ctx context.Context, logicalPath, contentHash string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, err := c.db.ExecContext(ctx, `
		INSERT INTO artifacts (logical_path, content_hash, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(logical_path) DO UPDATE SET
			content_hash = excluded.content_hash,
			updated_at = excluded.updated_at
	`, logicalPath, contentHash, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("store artifact %s: %w", logicalPath, err)
	}
	return nil
}

// PruneExcept removes rows whose logical path is not in keep, so deleted
// posts do not leave cache entries behind. An empty keep set clears the
// cache.
func (c *Cache) PruneExcept(ctx context.Context, keep map[string]bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(keep) == 0 {
		if _, err := c.db.ExecContext(ctx, "DELETE FROM artifacts"); err != nil {
			return fmt.Errorf("prune artifact cache: %w", err)
		}
		return nil
	}

	placeholders := make([]string, 0, len(keep))
	args := make([]any, 0, len(keep))
	for path := range keep {
		placeholders = append(placeholders, "?")
		args = append(args, path)
	}
	query := fmt.Sprintf("DELETE FROM artifacts WHERE logical_path NOT IN (%s)",
		strings.Join(placeholders, ","))
	if _, err := c.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("prune artifact cache: %w", err)
	}
	return nil
}

// Len counts stored entries.
func (c *Cache) Len(ctx context.Context) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var n int
	if err := c.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM artifacts").Scan(&n); err != nil {
		return 0, fmt.Errorf("count artifact cache: %w", err)
	}
	return n, nil
}

// Close releases the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}
