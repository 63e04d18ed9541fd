package repositories

import (
	"errors"

	"gorm.io/gorm"
)

// ErrDuplicate is returned when a unique column (slug, username, coupon
// code) already holds the value being written.
var ErrDuplicate = errors.New("duplicate value for unique field")

func translate(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	return err
}
