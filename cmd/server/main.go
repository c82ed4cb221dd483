package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"drone-dispatch-service/internal/adapters/cache"
	"drone-dispatch-service/internal/adapters/directory"
	"drone-dispatch-service/internal/api"
	"drone-dispatch-service/internal/config"
	"drone-dispatch-service/internal/platform/db"
	"drone-dispatch-service/internal/ports"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"
)

// main is the application composition root.
// It wires concrete adapters (directory client, snapshot cache) behind
// ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	directoryURL := os.Getenv("FLEET_DIRECTORY_URL")
	if strings.TrimSpace(directoryURL) == "" {
		log.Fatal("FLEET_DIRECTORY_URL is required")
	}

	port := config.Get("PORT", "8080")
	ttl, err := time.ParseDuration(config.Get("DIRECTORY_CACHE_TTL", "5m"))
	if err != nil {
		log.Fatalf("invalid DIRECTORY_CACHE_TTL: %v", err)
	}

	upstream, err := directory.NewHTTPDirectory(directoryURL)
	if err != nil {
		log.Fatal(err)
	}

	snapshots, closeCache, err := openSnapshotCache(ttl)
	if err != nil {
		log.Fatal(err)
	}
	defer closeCache()

	fleet := directory.NewCachedDirectory(upstream, snapshots)
	router := api.NewRouter(fleet)

	// Write timeout is generous: a large dispatch batch can spend real
	// time in pathfinding before the response starts.
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

// openSnapshotCache picks the cache backend from the environment:
// REDIS_URL, then DATABASE_URL (postgres), then a local sqlite file.
func openSnapshotCache(ttl time.Duration) (ports.SnapshotCache, func(), error) {
	if redisURL := strings.TrimSpace(os.Getenv("REDIS_URL")); redisURL != "" {
		opt, err := redis.ParseURL(redisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("open snapshot cache: parse REDIS_URL: %w", err)
		}
		client := redis.NewClient(opt)
		log.Println("Snapshot cache backend=redis")
		return cache.NewRedisSnapshotCache(client, ttl), func() { client.Close() }, nil
	}

	if databaseURL := strings.TrimSpace(os.Getenv("DATABASE_URL")); databaseURL != "" {
		conn, err := db.Open(databaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("open snapshot cache: %w", err)
		}
		if err := cache.InitSQLSchema(conn); err != nil {
			conn.Close()
			return nil, nil, fmt.Errorf("open snapshot cache: %w", err)
		}
		log.Println("Snapshot cache backend=postgres")
		return cache.NewSQLSnapshotCache(conn, ttl), func() { conn.Close() }, nil
	}

	dbPath := config.Get("DB_PATH", "data/app.db")
	conn, err := db.OpenSQLite(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open snapshot cache: %w", err)
	}
	if err := cache.InitSqliteSchema(conn); err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("open snapshot cache: %w", err)
	}
	log.Printf("Snapshot cache backend=sqlite path=%s", dbPath)
	return cache.NewSqliteSnapshotCache(conn, ttl), func() { conn.Close() }, nil
}
