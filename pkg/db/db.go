// Package db connects to the postgres history store
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"homegame-server/internal/config"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/sirupsen/logrus"

	_ "github.com/golang-migrate/migrate/v4/source/file" // needed
	_ "github.com/lib/pq"                                // needed
)

// ErrNotConfigured is returned when no DSN is configured
var ErrNotConfigured = errors.New("no postgres DSN configured")

// Open connects to the configured database and waits up to timeout for it to accept connections
func Open(ctx context.Context, timeout time.Duration) (*sql.DB, error) {
	dsn := config.Instance().PGDSN
	if dsn == "" {
		return nil, ErrNotConfigured
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(time.Millisecond * 500)
	defer ticker.Stop()

	for {
		err := db.PingContext(ctx)
		if err == nil {
			return db, nil
		}

		select {
		case <-ctx.Done():
			_ = db.Close()
			return nil, fmt.Errorf("could not connect to database: %w", err)
		case <-ticker.C:
		}
	}
}

// Migrate runs the migrations
func Migrate(db *sql.DB) error {
	migrationsPath := config.Instance().MigrationsPath

	logrus.WithField("migrationsPath", migrationsPath).Info("running migrations")
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance(fmt.Sprintf("file://%s", migrationsPath), "postgres", driver)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	return nil
}
