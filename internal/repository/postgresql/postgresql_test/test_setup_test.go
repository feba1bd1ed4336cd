package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/cmlabs-hris/homestay-backend-go/internal/pkg/database"
)

// TestDatabaseSetup holds a connection to the integration database.
type TestDatabaseSetup struct {
	DB *database.DB
}

// NewTestDatabase connects to TEST_DATABASE_URL and applies the schema.
// It returns nil, nil when the variable is unset.
func NewTestDatabase(ctx context.Context) (*TestDatabaseSetup, error) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		return nil, nil
	}

	db, err := database.NewPostgreSQLDB(ctx, dsn, database.PoolOptions{MaxConns: 10})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to test database: %w", err)
	}

	setup := &TestDatabaseSetup{DB: db}
	if err := setup.applySchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return setup, nil
}

func (t *TestDatabaseSetup) applySchema(ctx context.Context) error {
	_, file, _, _ := runtime.Caller(0)
	path := filepath.Join(filepath.Dir(file), "..", "..", "..", "..", "migrations", "0001_staff_scheduling.sql")
	schema, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read schema: %w", err)
	}
	if _, err := t.DB.Exec(ctx, string(schema)); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// TruncateAllTables removes every row and resets staff ids.
func (t *TestDatabaseSetup) TruncateAllTables(ctx context.Context) error {
	tx, err := t.DB.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tables := []string{
		"attendance_logs",
		"work_shifts",
		"staff_profiles",
	}

	for _, table := range tables {
		_, err := tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table))
		if err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit(ctx)
}

// InsertStaff creates a staff profile and returns its id.
func (t *TestDatabaseSetup) InsertStaff(ctx context.Context, name, department string, active bool) (int64, error) {
	var id int64
	err := t.DB.QueryRow(ctx,
		`INSERT INTO staff_profiles (full_name, department, position, is_active) VALUES ($1, $2, 'staff', $3) RETURNING id`,
		name, department, active,
	).Scan(&id)
	return id, err
}

// Close closes the pool.
func (t *TestDatabaseSetup) Close() {
	t.DB.Close()
}
