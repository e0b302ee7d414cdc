package db

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/nastyazhadan/order-intake/internal/infrastructure/db/migrator"
)

// SetupDB opens a pool and brings the schema up to date before returning it.
// Migrations borrow a connection from the same pool.
func SetupDB(ctx context.Context, dbURI string, migrationsFS fs.FS) (*pgxpool.Pool, error) {
	const op = "db.SetupDB"

	poolConfig, err := pgxpool.ParseConfig(dbURI)
	if err != nil {
		return nil, fmt.Errorf("%s: parse uri: %w", op, err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("%s: open pool: %w", op, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%s: ping: %w", op, err)
	}

	sqlDB := stdlib.OpenDBFromPool(pool)
	defer sqlDB.Close()

	if err := migrator.NewMigrator(sqlDB, migrationsFS).Up(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return pool, nil
}
