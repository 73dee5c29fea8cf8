package repositories

import (
	"errors"
	"fmt"

	"ecoreport/internal/core/domain"

	"gorm.io/gorm"
)

// translate maps gorm errors onto the domain error kinds
func translate(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: %s", domain.ErrNotFound, what)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %s already exists", domain.ErrConflict, what)
	default:
		return fmt.Errorf("%w: %s: %v", domain.ErrCollaborator, what, err)
	}
}
