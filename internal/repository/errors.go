package repository

import (
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("record not found")

	// ErrConflict is returned when an insert would violate a uniqueness
	// constraint, e.g. a duplicate block or friendship edge.
	ErrConflict = errors.New("record already exists")
)

// translate maps gorm lookup errors onto the package sentinels so callers
// never depend on gorm directly.
func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
