package repository

import (
	"time"

	"github.com/jask/benchexplorer/internal/explorer"
)

// Preset is a named, saved explorer view.
type Preset struct {
	ID         string
	Slug       string
	Name       string
	State      explorer.State
	UseCount   int
	LastUsedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
