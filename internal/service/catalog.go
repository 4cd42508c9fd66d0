package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jask/benchexplorer/internal/config"
	"github.com/jask/benchexplorer/internal/database"
	"github.com/jask/benchexplorer/internal/database/repository"
	"github.com/jask/benchexplorer/internal/dataset"
	"github.com/jask/benchexplorer/internal/explorer"
)

// ErrPresetsDisabled is returned by preset operations when no store is open.
var ErrPresetsDisabled = errors.New("presets disabled: no database configured")

// Catalog is the loaded benchmark table plus the optional preset store.
type Catalog struct {
	Table   *dataset.Table
	Load    dataset.LoadResult
	Options explorer.Options
	Presets *repository.PresetRepo
	Log     *zap.Logger
	Now     func() time.Time

	db *sql.DB
}

// NewCatalog wraps an already-loaded table. presets may be nil.
func NewCatalog(table *dataset.Table, presets *repository.PresetRepo, log *zap.Logger) *Catalog {
	if log == nil {
		log = zap.NewNop()
	}
	return &Catalog{
		Table:   table,
		Options: explorer.Discover(table.Records()),
		Presets: presets,
		Log:     log,
		Now:     database.Now,
	}
}

// Open loads the catalogue named by cfg and opens the preset store. An unreadable
// catalogue is fatal; a store that cannot be opened only disables presets.
func Open(ctx context.Context, cfg config.Config, log *zap.Logger) (*Catalog, error) {
	if log == nil {
		log = zap.NewNop()
	}
	table, res, err := dataset.LoadFile(cfg.Data.Path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", cfg.Data.Path, err)
	}
	log.Info("catalogue loaded",
		zap.String("path", cfg.Data.Path),
		zap.Int("loaded", res.Loaded),
		zap.Int("degraded", res.Degraded),
		zap.Int("skipped", res.Skipped))
	for _, issue := range res.Issues {
		log.Warn("row issue", zap.Error(issue))
	}

	c := NewCatalog(table, nil, log)
	c.Load = res

	if cfg.Database.Path == "" {
		log.Info("preset store disabled")
		return c, nil
	}
	db, err := openStore(ctx, cfg.Database.Path, cfg.UI.PageSize)
	if err != nil {
		log.Warn("preset store unavailable", zap.String("path", cfg.Database.Path), zap.Error(err))
		return c, nil
	}
	c.db = db
	c.Presets = repository.NewPresetRepo(db)
	return c, nil
}

// OpenPresets opens only the preset store, for commands that never touch the
// catalogue. Unlike Open, a store failure is returned.
func OpenPresets(ctx context.Context, cfg config.Config, log *zap.Logger) (*Catalog, error) {
	if cfg.Database.Path == "" {
		return nil, ErrPresetsDisabled
	}
	db, err := openStore(ctx, cfg.Database.Path, cfg.UI.PageSize)
	if err != nil {
		return nil, fmt.Errorf("open preset store: %w", err)
	}
	c := NewCatalog(dataset.NewTable(nil), repository.NewPresetRepo(db), log)
	c.db = db
	return c, nil
}

// openStore migrates and opens the preset store. The default preset is seeded
// only when the schema is created, never on later opens.
func openStore(ctx context.Context, path string, pageSize int) (*sql.DB, error) {
	db, created, err := database.OpenStore(path)
	if err != nil {
		return nil, err
	}
	if !created {
		return db, nil
	}
	if err := database.SeedDefaults(ctx, db, pageSize); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("seed defaults: %w", err)
	}
	return db, nil
}

// DB exposes the preset store connection; nil when presets are disabled.
func (c *Catalog) DB() *sql.DB { return c.db }

func (c *Catalog) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

func (c *Catalog) Records() []dataset.Record { return c.Table.Records() }

// Recompute runs one interaction's worth of filtering, paging and aggregation.
func (c *Catalog) Recompute(s explorer.State) (explorer.State, explorer.Result) {
	next, res := explorer.Recompute(c.Records(), s)
	c.Log.Debug("recompute",
		zap.Int("filtered", len(res.Filtered)),
		zap.Int("page", next.Cursor.Page),
		zap.Int("pages", res.Page.TotalPages))
	return next, res
}

// SavePreset stores the filters, sort and page size of s under name.
// Page index, selection and tab are not part of a preset.
func (c *Catalog) SavePreset(ctx context.Context, name string, s explorer.State) (repository.Preset, error) {
	if c.Presets == nil {
		return repository.Preset{}, ErrPresetsDisabled
	}
	s.Cursor.Page = 0
	s.Selected = nil
	s.Tab = ""
	p, err := c.Presets.Upsert(ctx, repository.Preset{Name: name, State: s})
	if err != nil {
		return repository.Preset{}, err
	}
	c.Log.Info("preset saved", zap.String("slug", p.Slug))
	return p, nil
}

// ApplyPreset returns current with the preset's filters, sort and page size,
// back on the first page with no selection.
func (c *Catalog) ApplyPreset(ctx context.Context, slug string, current explorer.State) (explorer.State, error) {
	if c.Presets == nil {
		return current, ErrPresetsDisabled
	}
	p, err := c.Presets.Get(ctx, slug)
	if err != nil {
		return current, err
	}
	if err := c.Presets.Touch(ctx, p.Slug, c.Now()); err != nil {
		c.Log.Warn("preset touch failed", zap.String("slug", p.Slug), zap.Error(err))
	}
	next := current.
		WithCriteria(p.State.Criteria).
		WithSort(p.State.Sort).
		WithPageSize(p.State.Cursor.PageSize).
		ClearSelection()
	c.Log.Info("preset applied", zap.String("slug", p.Slug))
	return next, nil
}

func (c *Catalog) ListPresets(ctx context.Context) ([]repository.Preset, error) {
	if c.Presets == nil {
		return nil, ErrPresetsDisabled
	}
	return c.Presets.List(ctx)
}

func (c *Catalog) DeletePreset(ctx context.Context, slug string) error {
	if c.Presets == nil {
		return ErrPresetsDisabled
	}
	return c.Presets.Delete(ctx, slug)
}
