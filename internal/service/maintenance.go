package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jask/benchexplorer/internal/database"
)

// MaintenanceService houses destructive actions on the preset store.
type MaintenanceService struct {
	DB       *sql.DB
	PageSize int
}

// Reset deletes every saved preset and reseeds the default one. The schema is
// kept so the app can continue running.
func (s *MaintenanceService) Reset(ctx context.Context) error {
	if s.DB == nil {
		return fmt.Errorf("maintenance: %w", ErrPresetsDisabled)
	}
	if err := database.WithTx(s.DB, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM presets"); err != nil {
			return fmt.Errorf("reset table presets: %w", err)
		}
		return nil
	}); err != nil {
		return err
	}
	_, _ = s.DB.ExecContext(ctx, "VACUUM")
	return database.SeedDefaults(ctx, s.DB, s.PageSize)
}
