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

func getTestDSN(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	return dsn
}

func getMigrationsPath(t *testing.T) string {
	projectRoot, err := filepath.Abs("../..")
	require.NoError(t, err)
	return filepath.Join(projectRoot, "migrations")
}

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	var exists bool
	err := db.QueryRow(`
		SELECT EXISTS (
			SELECT 1 FROM information_schema.tables
			WHERE table_schema = 'public' AND table_name = $1
		)
	`, name).Scan(&exists)
	require.NoError(t, err)
	return exists
}

func TestUp_CreatesSchema(t *testing.T) {
	dsn := getTestDSN(t)
	path := getMigrationsPath(t)

	require.NoError(t, Up(dsn, path))

	db, err := sql.Open("pgx", dsn)
	require.NoError(t, err)
	defer db.Close()

	require.True(t, tableExists(t, db, "users"), "Table 'users' should exist")
	require.True(t, tableExists(t, db, "zadania"), "Table 'zadania' should exist")

	var role string
	err = db.QueryRow(`INSERT INTO users (login, password_hash) VALUES ('jan', 'x') RETURNING rola`).Scan(&role)
	require.NoError(t, err)
	require.Equal(t, "USER", role)

	_, err = db.Exec(`INSERT INTO users (login, password_hash) VALUES ('jan', 'y')`)
	require.Error(t, err, "login must be unique")

	version, dirty, ok, err := Version(dsn, path)
	require.NoError(t, err)
	require.True(t, ok)
	require.False(t, dirty)
	require.Equal(t, uint(1), version)
}

func TestUp_Idempotent(t *testing.T) {
	dsn := getTestDSN(t)
	path := getMigrationsPath(t)

	require.NoError(t, Up(dsn, path))
	require.NoError(t, Up(dsn, path), "Running migrations twice should not fail")
}

func TestDown_DropsSchema(t *testing.T) {
	dsn := getTestDSN(t)
	path := getMigrationsPath(t)

	require.NoError(t, Up(dsn, path))
	require.NoError(t, Down(dsn, path))

	db, err := sql.Open("pgx", dsn)
	require.NoError(t, err)
	defer db.Close()

	require.False(t, tableExists(t, db, "zadania"))
	require.False(t, tableExists(t, db, "users"))

	_, _, ok, err := Version(dsn, path)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestUp_BadPath(t *testing.T) {
	dsn := getTestDSN(t)
	require.Error(t, Up(dsn, "/definitely/missing/migrations"))
}
