package repository

import (
	"errors"

	"gorm.io/gorm"
)

// IsDuplicate reports whether err is the store's unique-constraint
// violation. Name-availability pre-checks race with concurrent inserts;
// callers use this to classify the loser of such a race instead of
// reporting an internal error.
func IsDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
