package database

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ConflictField identifies which unique field a duplicate-key error is
// about, by scanning the constraint name Postgres reports. Returns the
// first candidate that matches, or false when err is not a duplicate.
func ConflictField(err error, candidates ...string) (string, bool) {
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		return "", false
	}
	msg := err.Error()
	for _, field := range candidates {
		if strings.Contains(msg, field) {
			return field, true
		}
	}
	if len(candidates) > 0 {
		return candidates[0], true
	}
	return "", true
}
