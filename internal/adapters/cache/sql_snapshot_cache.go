package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"drone-dispatch-service/internal/platform/obs"
)

// SQLSnapshotCache is a Postgres backed cache for raw directory payloads.
type SQLSnapshotCache struct {
	DB  *sql.DB
	TTL time.Duration
}

func NewSQLSnapshotCache(db *sql.DB, ttl time.Duration) *SQLSnapshotCache {
	return &SQLSnapshotCache{DB: db, TTL: ttl}
}

func (s *SQLSnapshotCache) GetPayload(ctx context.Context, resource string) (_ []byte, _ bool, err error) {
	defer obs.Time(ctx, "snapshot.cache.GetPayload")(&err)

	if s.DB == nil {
		return nil, false, errors.New("snapshot cache: db is nil")
	}

	if resource == "" {
		return nil, false, errors.New("get snapshot cache: resource must not be empty")
	}

	q := `
	SELECT payload, fetched_at
    FROM directory_cache
    WHERE resource = $1;
	`

	var payload []byte
	var fetchedAt time.Time
	err = s.DB.QueryRowContext(ctx, q, resource).Scan(&payload, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get snapshot cache: query directory_cache table: %w", err)
	}

	if s.TTL > 0 && time.Since(fetchedAt) > s.TTL {
		return nil, false, nil
	}

	return payload, true, nil
}

func (s *SQLSnapshotCache) PutPayload(ctx context.Context, resource string, payload []byte) (err error) {
	defer obs.Time(ctx, "snapshot.cache.PutPayload")(&err)

	if s.DB == nil {
		return errors.New("snapshot cache: db is nil")
	}

	if resource == "" {
		return errors.New("insert snapshot cache: resource must not be empty")
	}

	q := `
	INSERT INTO directory_cache (resource, payload, fetched_at)
    VALUES ($1, $2, now())
    ON CONFLICT (resource)
    DO UPDATE SET payload = EXCLUDED.payload, fetched_at = EXCLUDED.fetched_at;
	`

	if _, err := s.DB.ExecContext(ctx, q, resource, payload); err != nil {
		return fmt.Errorf("insert snapshot cache resource=%q: %w", resource, err)
	}

	return nil
}

// Initialize the Postgres cache schema.
func InitSQLSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	q := `
	CREATE TABLE IF NOT EXISTS directory_cache (
        resource TEXT PRIMARY KEY,
        payload BYTEA NOT NULL,
        fetched_at TIMESTAMPTZ NOT NULL
    );
	`

	if _, err := db.Exec(q); err != nil {
		return fmt.Errorf("init schema: create directory_cache table: %w", err)
	}

	return nil
}
