package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jask/benchexplorer/internal/explorer"
)

// ErrNotFound is returned when no preset has the requested slug.
var ErrNotFound = errors.New("preset not found")

// PresetRepo handles saved views.
type PresetRepo struct {
	db *sql.DB
}

func NewPresetRepo(db *sql.DB) *PresetRepo { return &PresetRepo{db: db} }

// Upsert stores p under Slugify(p.Name). Saving an existing name replaces its
// state and keeps its id and usage.
func (r *PresetRepo) Upsert(ctx context.Context, p Preset) (Preset, error) {
	name := strings.TrimSpace(p.Name)
	slug := Slugify(name)
	if slug == "" {
		return Preset{}, ErrEmptyName
	}
	state, err := explorer.EncodeState(p.State)
	if err != nil {
		return Preset{}, err
	}
	id := p.ID
	if id == "" {
		id = uuid.NewString()
	}
	_, err = r.db.ExecContext(ctx, `
	INSERT INTO presets(id, slug, name, state, created_at, updated_at)
	VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
	ON CONFLICT(slug) DO UPDATE SET
	 name=excluded.name,
	 state=excluded.state,
	 updated_at=CURRENT_TIMESTAMP;
	`, id, slug, name, string(state))
	if err != nil {
		return Preset{}, fmt.Errorf("upsert preset %q: %w", slug, err)
	}
	return r.Get(ctx, slug)
}

// Get looks a preset up by slug; the argument is slugified first.
func (r *PresetRepo) Get(ctx context.Context, slug string) (Preset, error) {
	row := r.db.QueryRowContext(ctx, `
	SELECT id, slug, name, state, use_count, last_used_at, created_at, updated_at
	FROM presets WHERE slug = ?`, Slugify(slug))
	p, err := scanPreset(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Preset{}, fmt.Errorf("%w: %s", ErrNotFound, slug)
	}
	return p, err
}

// List returns presets most recently used first, never-used ones last, then by slug.
func (r *PresetRepo) List(ctx context.Context) ([]Preset, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, slug, name, state, use_count, last_used_at, created_at, updated_at
	FROM presets
	ORDER BY last_used_at IS NULL, last_used_at DESC, slug`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Preset
	for rows.Next() {
		p, err := scanPreset(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Touch records one use of a preset.
func (r *PresetRepo) Touch(ctx context.Context, slug string, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `
	UPDATE presets SET use_count = use_count + 1, last_used_at = ? WHERE slug = ?`,
		at.UTC(), Slugify(slug))
	if err != nil {
		return err
	}
	return expectOne(res, slug)
}

func (r *PresetRepo) Delete(ctx context.Context, slug string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM presets WHERE slug = ?`, Slugify(slug))
	if err != nil {
		return err
	}
	return expectOne(res, slug)
}

func (r *PresetRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM presets`).Scan(&n)
	return n, err
}

func expectOne(res sql.Result, slug string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, slug)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPreset(s scanner) (Preset, error) {
	var (
		p        Preset
		state    string
		lastUsed sql.NullTime
	)
	if err := s.Scan(&p.ID, &p.Slug, &p.Name, &state, &p.UseCount, &lastUsed, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return Preset{}, err
	}
	st, err := explorer.DecodeState([]byte(state))
	if err != nil {
		return Preset{}, fmt.Errorf("preset %s: %w", p.Slug, err)
	}
	p.State = st
	if lastUsed.Valid {
		t := lastUsed.Time
		p.LastUsedAt = &t
	}
	return p, nil
}
