// Package testutil provides helpers for integration tests against a real Postgres.
// Every helper skips the test when TEST_DATABASE_URL is not set, so unit tests
// run without a database.
package testutil

import (
	"context"
	"database/sql"
	"os"
	"testing"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"

	"github.com/m04kA/SMC-RentalService/migrations"
)

// EnvDatabaseURL имя переменной окружения с DSN тестовой БД
const EnvDatabaseURL = "TEST_DATABASE_URL"

// NewSQLDB opens a *sql.DB from TEST_DATABASE_URL and closes it when the test ends.
func NewSQLDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := requireDSN(t)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Fatalf("testutil.NewSQLDB: open: %v", err)
	}

	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		t.Fatalf("testutil.NewSQLDB: ping: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

// NewMigratedDB opens the test database, applies all embedded migrations
// and empties every table, so each test starts from a clean schema.
func NewMigratedDB(t *testing.T) *sql.DB {
	t.Helper()

	db := NewSQLDB(t)
	ctx := context.Background()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		t.Fatalf("testutil.NewMigratedDB: create goose provider: %v", err)
	}

	if _, err := provider.Up(ctx); err != nil {
		t.Fatalf("testutil.NewMigratedDB: run migrations: %v", err)
	}

	Truncate(t, db)
	return db
}

// Truncate очищает все таблицы сервиса и сбрасывает последовательности
func Truncate(t *testing.T, db *sql.DB) {
	t.Helper()

	const query = `TRUNCATE admin_notifications, maintenance_requests, bookings, booking_requests, apartments
		RESTART IDENTITY CASCADE`

	if _, err := db.ExecContext(context.Background(), query); err != nil {
		t.Fatalf("testutil.Truncate: %v", err)
	}
}

func requireDSN(t *testing.T) string {
	t.Helper()

	dsn := os.Getenv(EnvDatabaseURL)
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping integration test")
	}
	return dsn
}
