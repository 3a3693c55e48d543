package repository

import (
	"errors"

	"github.com/amirasaad/balabank/pkg/domain"
	"gorm.io/gorm"
)

// MapGormErrorToDomain converts GORM errors to domain errors, keeping
// database concerns inside the infrastructure layer. It traverses the error
// chain because GORM wraps driver errors.
func MapGormErrorToDomain(err error) error {
	if err == nil {
		return nil
	}
	for current := err; current != nil; current = errors.Unwrap(current) {
		switch {
		case errors.Is(current, gorm.ErrDuplicatedKey):
			return domain.ErrConflict
		case errors.Is(current, gorm.ErrRecordNotFound):
			return domain.ErrNotFound
		}
	}
	return err
}
