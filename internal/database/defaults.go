package database

import (
	"context"
	"database/sql"

	"github.com/jask/benchexplorer/internal/database/repository"
	"github.com/jask/benchexplorer/internal/explorer"
)

// DefaultPresetName is the preset seeded into an empty store.
const DefaultPresetName = "All datasets"

// SeedDefaults ensures a fresh store offers one preset that restores the
// all-inclusive view. It is idempotent and safe to run on every startup.
func SeedDefaults(ctx context.Context, db *sql.DB, pageSize int) error {
	presets := repository.NewPresetRepo(db)
	n, err := presets.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	_, err = presets.Upsert(ctx, repository.Preset{
		Name:  DefaultPresetName,
		State: explorer.NewState(pageSize),
	})
	return err
}
