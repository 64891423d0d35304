package repositories

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"jobboard/pkg/utils"
)

// mapWriteError folds driver-specific unique violations into
// utils.ErrDuplicateEntry.
func mapWriteError(err error) error {
	if err == nil {
		return nil
	}
	if isDuplicateEntryError(err) {
		return utils.ErrDuplicateEntry
	}
	return err
}

func isDuplicateEntryError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key")
}

func like(term string) string {
	return "%" + strings.ToLower(term) + "%"
}
