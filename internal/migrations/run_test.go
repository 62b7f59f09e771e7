package migrations

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func getTestDB(t *testing.T) *sql.DB {
	t.Helper()
	testcontainers.SkipIfProviderIsNotHealthy(t)
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("gym"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := sql.Open("pgx", dsn)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = db.Close()
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})
	return db
}

func migrationsPath(t *testing.T) string {
	t.Helper()
	path, err := filepath.Abs(filepath.Join("..", "..", "migrations"))
	require.NoError(t, err)
	return path
}

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var exists bool
	err := db.QueryRow(`
		SELECT EXISTS (
			SELECT 1 FROM information_schema.tables
			WHERE table_schema = 'public' AND table_name = $1
		)`, name).Scan(&exists)
	require.NoError(t, err)
	return exists
}

func TestRunMigrations(t *testing.T) {
	db := getTestDB(t)

	require.NoError(t, Run(db, migrationsPath(t)))

	for _, table := range []string{"admins", "clients", "payments", "client_history"} {
		require.True(t, tableExists(t, db, table), "table %s should exist", table)
	}

	var exists bool
	err := db.QueryRow(`
		SELECT EXISTS (
			SELECT 1 FROM pg_indexes
			WHERE schemaname = 'public' AND tablename = 'clients' AND indexname = 'idx_clients_end_date'
		)`).Scan(&exists)
	require.NoError(t, err)
	require.True(t, exists, "index should exist")
}

func TestRunMigrations_Idempotent(t *testing.T) {
	db := getTestDB(t)
	path := migrationsPath(t)

	require.NoError(t, Run(db, path))
	require.NoError(t, Run(db, path))
}

func TestRunMigrations_CascadeDelete(t *testing.T) {
	db := getTestDB(t)
	require.NoError(t, Run(db, migrationsPath(t)))

	var clientID string
	err := db.QueryRow(`
		INSERT INTO clients (full_name, phone, plan_type, plan_amount, start_date, end_date)
		VALUES ('Ann', '555', 'Monthly', 1000, '2024-01-01', '2024-02-01')
		RETURNING id`).Scan(&clientID)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO payments (client_id, amount, payment_date) VALUES ($1, 1000, '2024-01-01')`, clientID)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO client_history (client_id, action_type, description) VALUES ($1, 'CREATED', 'x')`, clientID)
	require.NoError(t, err)

	_, err = db.Exec(`DELETE FROM clients WHERE id = $1`, clientID)
	require.NoError(t, err)

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM payments`).Scan(&count))
	require.Zero(t, count)
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM client_history`).Scan(&count))
	require.Zero(t, count)
}

func TestRunMigrations_BadPath(t *testing.T) {
	db := getTestDB(t)
	require.Error(t, Run(db, filepath.Join(t.TempDir(), "nope")))
}
