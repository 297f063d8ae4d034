package database

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// PgxPool matches the methods of *pgxpool.Pool used by the repositories, so
// tests can swap in pgxmock.
type PgxPool interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
}

var (
	Postgres *pgxpool.Pool
	Redis    *redis.Client
)

// ConnectDatabases opens the hosted Postgres pool and the Redis client. Both
// are required; the server does not start without them.
func ConnectDatabases() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	connectPostgres(ctx)
	connectRedis(ctx)

	log.Println("✅ All datastores connected")
}

func connectPostgres(ctx context.Context) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("❌ DATABASE_URL missing — the hosted Postgres backend is required")
	}

	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		log.Fatal("❌ Invalid DATABASE_URL:", err)
	}
	cfg.MaxConns = 20
	cfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		log.Fatal("❌ Postgres connection failed:", err)
	}
	if err := pool.Ping(ctx); err != nil {
		log.Fatal("❌ Postgres ping failed:", err)
	}

	// Note: tables are created manually via scripts/schema.sql on the hosted
	// backend; the service never runs DDL.
	Postgres = pool
	log.Println("✅ Connected to Postgres")
}

func connectRedis(ctx context.Context) {
	Redis = redis.NewClient(&redis.Options{
		Addr:     os.Getenv("REDIS_HOST"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	if err := Redis.Ping(ctx).Err(); err != nil {
		log.Fatal("❌ Redis connection failed:", err)
	}
	log.Println("✅ Connected to Redis")
}

// Close releases both clients; used by graceful shutdown.
func Close() {
	if Postgres != nil {
		Postgres.Close()
	}
	if Redis != nil {
		if err := Redis.Close(); err != nil {
			log.Println("⚠️  Redis close:", err)
		}
	}
}
