package services

import (
	"errors"

	"eventhub-backend/internal/apperrors"

	"gorm.io/gorm"
)

// SearchQuery carries the caller-facing search inputs shared by the listing
// endpoints. Empty fields mean "no filter".
type SearchQuery struct {
	Search    string
	Status    string
	Category  string
	City      string
	Sort      string
	Direction string
	Page      int
	PerPage   int
}

// asNotFound converts a missing-record storage error into the API's NOT_FOUND
// code; other errors pass through untouched.
func asNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrNotFound
	}
	return err
}
