package service

import (
	"errors"

	"gorm.io/gorm"

	apperrors "dataconsult/internal/errors"
)

// storeErr translates a repository error: a missing row becomes NotFound with
// the given message, anything else is Internal.
func storeErr(err error, notFound string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NotFound(notFound)
	}
	return apperrors.Internal(err)
}
