package testutil

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/go-sql-driver/mysql"

	"orderdesk/internal/infrastructure/migrations"
)

// testDSN points at a local MySQL database named 'orderdesk_test' with the
// session pinned to UTC.
const testDSN = "root:@tcp(localhost:3306)/orderdesk_test?parseTime=true&loc=UTC&multiStatements=true&time_zone=%27%2B00%3A00%27"

// SetupTestDB opens the test database and skips the test when it is unreachable.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("mysql", testDSN)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		t.Skipf("test database not available: %v", err)
	}

	return db
}

// CleanupTestDB empties every table, children first, and closes the connection.
func CleanupTestDB(t *testing.T, db *sql.DB) {
	if db == nil {
		return
	}

	tables := []string{"order_items", "orders", "items", "accounts"}
	for _, table := range tables {
		if _, err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)); err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}

	db.Close()
}

// SetupTestTables applies the embedded schema migrations.
func SetupTestTables(t *testing.T, db *sql.DB) {
	t.Helper()

	m, err := migrations.New(db)
	if err != nil {
		t.Fatalf("failed to create migrator: %v", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		t.Fatalf("failed to apply migrations: %v", err)
	}
}
