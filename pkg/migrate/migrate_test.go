package migrate

import (
	"context"
	"database/sql"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openSQLite(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return sqlDB
}

func TestEmbeddedMigrationsAreValid(t *testing.T) {
	require.NoError(t, Validate())
}

func TestValidateFSRejectsBadFiles(t *testing.T) {
	bad := fstest.MapFS{
		"m/20250101000000_ok.sql":  {Data: []byte("-- +goose Up\n-- +goose Down\n")},
		"m/20250101000000_dup.sql": {Data: []byte("-- +goose Up\n-- +goose Down\n")},
	}
	require.Error(t, ValidateFS(bad, "m"))

	missingDown := fstest.MapFS{
		"m/20250101000000_ok.sql": {Data: []byte("-- +goose Up\n")},
	}
	require.Error(t, ValidateFS(missingDown, "m"))

	badName := fstest.MapFS{"m/first.sql": {Data: []byte("")}}
	require.Error(t, ValidateFS(badName, "m"))
}

func TestRunUpAndDownOnSQLite(t *testing.T) {
	ctx := context.Background()
	db := openSQLite(t)

	require.NoError(t, Run(ctx, db, "sqlite", "up"))

	_, err := db.ExecContext(ctx, `INSERT INTO storefront_kv (entry_key, entry_value, updated_at) VALUES ('k', 'v', CURRENT_TIMESTAMP)`)
	require.NoError(t, err)

	require.NoError(t, MigrateToVersion(ctx, db, "sqlite", "0"))
	_, err = db.ExecContext(ctx, `SELECT 1 FROM storefront_kv`)
	require.Error(t, err)
}

func TestRunRejectsUnknownDriver(t *testing.T) {
	require.Error(t, Run(context.Background(), openSQLite(t), "redis", "up"))
	require.Error(t, Run(context.Background(), nil, "sqlite", "up"))
}
