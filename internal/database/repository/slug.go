package repository

import (
	"errors"
	"strings"
)

// ErrEmptyName rejects presets without a usable name.
var ErrEmptyName = errors.New("preset name required")

const maxSlugLen = 63

// Slugify turns a display name into a lookup key: lower-case alphanumerics
// separated by single dashes.
func Slugify(raw string) string {
	raw = strings.ToLower(strings.TrimSpace(raw))
	var b strings.Builder
	b.Grow(len(raw))
	lastDash := false
	for i := 0; i < len(raw); i++ {
		ch := raw[i]
		isAlphaNum := (ch >= 'a' && ch <= 'z') || (ch >= '0' && ch <= '9')
		switch {
		case isAlphaNum:
			b.WriteByte(ch)
			lastDash = false
		case ch == '_' || ch == '-':
			if b.Len() > 0 && !lastDash {
				b.WriteByte(ch)
				lastDash = true
			}
		default:
			if b.Len() > 0 && !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	slug := strings.Trim(b.String(), "-_")
	if len(slug) > maxSlugLen {
		slug = strings.TrimRight(slug[:maxSlugLen], "-_")
	}
	return slug
}
