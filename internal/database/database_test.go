package database

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/jask/benchexplorer/internal/database/repository"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		// database/sql keeps a connection opener goroutine per *sql.DB until Close
		goleak.IgnoreTopFunction("database/sql.(*DB).connectionOpener"),
	)
}

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenMigrated(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestRunMigrationsIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "twice.db")
	require.NoError(t, RunMigrations(path))
	require.NoError(t, RunMigrations(path))

	db, err := Open(path)
	require.NoError(t, err)
	defer db.Close()

	var name string
	require.NoError(t, db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name='presets'`).Scan(&name))
	require.Equal(t, "presets", name)
}

func TestMigrateReportsFirstApplyOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "presets.db")

	applied, err := Migrate(path)
	require.NoError(t, err)
	require.True(t, applied)

	applied, err = Migrate(path)
	require.NoError(t, err)
	require.False(t, applied)

	db, created, err := OpenStore(path)
	require.NoError(t, err)
	defer db.Close()
	require.False(t, created)
}

func TestSeedDefaults(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	db := openTestDB(t)

	require.NoError(t, SeedDefaults(ctx, db, 50))
	require.NoError(t, SeedDefaults(ctx, db, 10))

	repo := repository.NewPresetRepo(db)
	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, DefaultPresetName, list[0].Name)
	require.Equal(t, "all-datasets", list[0].Slug)
	require.Equal(t, 50, list[0].State.Cursor.PageSize)
	require.True(t, list[0].State.Criteria.IsZero())
}

func TestWithTxRollsBack(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	err := WithTx(db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`INSERT INTO presets(id, slug, name, state) VALUES ('x', 'x', 'x', '{}')`); err != nil {
			return err
		}
		return sql.ErrTxDone
	})
	require.ErrorIs(t, err, sql.ErrTxDone)

	n, err := repository.NewPresetRepo(db).Count(ctx)
	require.NoError(t, err)
	require.Zero(t, n)

	require.NoError(t, WithTx(db, func(tx *sql.Tx) error {
		_, err := tx.Exec(`INSERT INTO presets(id, slug, name, state) VALUES ('y', 'y', 'y', '{}')`)
		return err
	}))
	n, err = repository.NewPresetRepo(db).Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestNowIsUTCSeconds(t *testing.T) {
	now := Now()
	require.Equal(t, time.UTC, now.Location())
	require.Zero(t, now.Nanosecond())
}
