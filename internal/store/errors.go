package store

import (
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a unit, association or permit does not exist.
var ErrNotFound = errors.New("not found")

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
