package main

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"drone-dispatch-service/internal/adapters/cache"
	"drone-dispatch-service/internal/adapters/directory"
	"drone-dispatch-service/internal/config"
	"drone-dispatch-service/internal/platform/db"
	"drone-dispatch-service/internal/ports"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"
)

// dbtool initializes the snapshot cache schema and optionally warms it
// with a full directory fetch so the first server request is served hot.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	ttl, err := time.ParseDuration(config.Get("DIRECTORY_CACHE_TTL", "5m"))
	if err != nil {
		log.Fatalf("invalid DIRECTORY_CACHE_TTL: %v", err)
	}

	snapshots, closeCache, err := openCache(ttl)
	if err != nil {
		log.Fatal(err)
	}
	defer closeCache()
	log.Println("Schema ready.")

	directoryURL := strings.TrimSpace(os.Getenv("FLEET_DIRECTORY_URL"))
	if directoryURL == "" {
		log.Println("FLEET_DIRECTORY_URL not set, skipping warm-up.")
		return
	}

	if err := warmUp(directoryURL, snapshots); err != nil {
		log.Fatal(err)
	}
	log.Println("Warm-up complete.")
}

func openCache(ttl time.Duration) (ports.SnapshotCache, func(), error) {
	if databaseURL := strings.TrimSpace(os.Getenv("DATABASE_URL")); databaseURL != "" {
		conn, err := db.Open(databaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := cache.InitSQLSchema(conn); err != nil {
			conn.Close()
			return nil, nil, err
		}
		return cache.NewSQLSnapshotCache(conn, ttl), func() { conn.Close() }, nil
	}

	dbPath := config.Get("DB_PATH", "data/app.db")
	conn, err := db.OpenSQLite(dbPath)
	if err != nil {
		return nil, nil, err
	}
	if err := cache.InitSqliteSchema(conn); err != nil {
		conn.Close()
		return nil, nil, err
	}
	return cache.NewSqliteSnapshotCache(conn, ttl), func() { conn.Close() }, nil
}

// warmUp pulls every directory resource once through the caching wrapper.
func warmUp(directoryURL string, snapshots ports.SnapshotCache) error {
	upstream, err := directory.NewHTTPDirectory(directoryURL)
	if err != nil {
		return err
	}
	fleet := directory.NewCachedDirectory(upstream, snapshots)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	log.Println("Warming directory snapshots...")
	if _, err := fleet.Vehicles(ctx); err != nil {
		return err
	}
	if _, err := fleet.LaunchPoints(ctx); err != nil {
		return err
	}
	if _, err := fleet.Availability(ctx); err != nil {
		return err
	}
	if _, err := fleet.NoFlyZones(ctx); err != nil {
		return err
	}

	return nil
}
