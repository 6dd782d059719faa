package services

import (
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound is returned for reads of rows that are absent or belong to
// another tenant. It unwraps to gorm.ErrRecordNotFound so callers keep a
// single not-found check.
var ErrNotFound = gorm.ErrRecordNotFound

// IsNotFound reports whether err is a missing-row failure.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
