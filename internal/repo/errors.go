package repo

import (
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrNotFound: no row matched the lookup.
	ErrNotFound = errors.New("record not found")
	// ErrConflict: unique constraint violated (serial number, auth
	// code, squadron code, assignment pair) or a restrict rule blocked
	// a delete.
	ErrConflict = errors.New("conflicting record")
	// ErrBadReference: a referenced row does not exist.
	ErrBadReference = errors.New("referenced record not found")
)

// translate maps driver-independent GORM sentinels (TranslateError is
// on) onto the store error taxonomy. Anything else passes through and
// surfaces as an internal error.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrConflict
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return ErrBadReference
	}
	return err
}
