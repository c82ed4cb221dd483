package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// SQLite backed cache for raw directory payloads. Entries older than the
// TTL are treated as misses and overwritten on the next fetch.
type SqliteSnapshotCache struct {
	DB  *sql.DB
	TTL time.Duration
}

func NewSqliteSnapshotCache(db *sql.DB, ttl time.Duration) *SqliteSnapshotCache {
	return &SqliteSnapshotCache{DB: db, TTL: ttl}
}

func (s *SqliteSnapshotCache) GetPayload(ctx context.Context, resource string) ([]byte, bool, error) {
	if s.DB == nil {
		return nil, false, errors.New("snapshot cache: db is nil")
	}

	if resource == "" {
		return nil, false, errors.New("get snapshot cache: resource must not be empty")
	}

	q := `
	SELECT payload, fetched_at
    FROM directory_cache
    WHERE resource = ?;
	`

	var payload []byte
	var fetchedAt int64
	err := s.DB.QueryRowContext(ctx, q, resource).Scan(&payload, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get snapshot cache: query directory_cache table: %w", err)
	}

	if s.TTL > 0 && time.Since(time.Unix(fetchedAt, 0)) > s.TTL {
		return nil, false, nil
	}

	return payload, true, nil
}

func (s *SqliteSnapshotCache) PutPayload(ctx context.Context, resource string, payload []byte) error {
	if s.DB == nil {
		return errors.New("snapshot cache: db is nil")
	}

	if resource == "" {
		return errors.New("insert snapshot cache: resource must not be empty")
	}

	q := `
	INSERT OR REPLACE INTO directory_cache (
        resource,
        payload,
        fetched_at
    )
    VALUES (?, ?, ?);
	`

	if _, err := s.DB.ExecContext(ctx, q, resource, payload, time.Now().Unix()); err != nil {
		return fmt.Errorf("insert snapshot cache resource=%q: %w", resource, err)
	}

	return nil
}

// Initialize the SQLite cache schema.
func InitSqliteSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	q := `
	CREATE TABLE IF NOT EXISTS directory_cache (
        resource TEXT PRIMARY KEY,
        payload BLOB NOT NULL,
        fetched_at INTEGER NOT NULL
    );
	`

	if _, err := db.Exec(q); err != nil {
		return fmt.Errorf("init schema: create directory_cache table: %w", err)
	}

	return nil
}
