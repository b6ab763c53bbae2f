package database

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/golang-migrate/migrate/v4"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	// Registers the "pgx" driver with database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/shivanshkc/pinterestauth/pkg/config"
)

// migrations holds the SQL migration files, applied in order by Migrate.
//
//go:embed migrations/*.sql
var migrations embed.FS

// Connect opens a connection pool to Postgres and verifies it with a ping.
func Connect(ctx context.Context, conf config.Config) (*sql.DB, error) {
	db, err := sql.Open("pgx", DSN(conf))
	if err != nil {
		return nil, fmt.Errorf("error in sql.Open call: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("error in db.PingContext call: %w", err)
	}

	slog.InfoContext(ctx, "connected to database", "addr", conf.Database.Addr, "database", conf.Database.Database)
	return db, nil
}

// DSN builds the Postgres connection string from the configs.
func DSN(conf config.Config) string {
	u := &url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(conf.Database.Username, conf.Database.Password),
		Host:   conf.Database.Addr,
		Path:   "/" + conf.Database.Database,
	}

	if conf.Database.SSLMode != "" {
		u.RawQuery = url.Values{"sslmode": []string{conf.Database.SSLMode}}.Encode()
	}

	return u.String()
}

// Migrate applies all pending migrations.
func Migrate(db *sql.DB) error {
	source, err := iofs.New(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("error in iofs.New call: %w", err)
	}

	driver, err := migratepgx.WithInstance(db, &migratepgx.Config{})
	if err != nil {
		return fmt.Errorf("error in migratepgx.WithInstance call: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "pgx5", driver)
	if err != nil {
		return fmt.Errorf("error in migrate.NewWithInstance call: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("error in migrate.Up call: %w", err)
	}

	version, dirty, _ := m.Version()
	slog.Info("database migrations applied", "version", version, "dirty", dirty)
	return nil
}
