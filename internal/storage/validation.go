// Package storage provides the data persistence layer for the wheelhouse application.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/wheelhouse-cycles/wheelhouse/internal/model"
)

// Validation errors.
var (
	ErrNilContext     = errors.New("context cannot be nil")
	ErrEmptyString    = errors.New("string parameter cannot be empty")
	ErrNilParameter   = errors.New("parameter cannot be nil")
	ErrEmptySlice     = errors.New("slice cannot be empty")
	ErrInvalidID      = errors.New("identifier must be positive")
	ErrInvalidBicycle = errors.New("invalid bicycle")
	ErrInvalidRental  = errors.New("invalid rental")
	ErrInvalidMember  = errors.New("invalid member")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateID ensures an identifier is positive.
func validateID(id int64, paramName string) error {
	if id <= 0 {
		return fmt.Errorf("%w: %s", ErrInvalidID, paramName)
	}
	return nil
}

// validateBicycles validates a slice of bicycles before persistence.
func validateBicycles(bikes []model.Bicycle) error {
	if bikes == nil {
		return fmt.Errorf("%w: bicycles", ErrNilParameter)
	}
	if len(bikes) == 0 {
		return fmt.Errorf("%w: bicycles", ErrEmptySlice)
	}
	for i := range bikes {
		if err := bikes[i].Validate(); err != nil {
			return fmt.Errorf("%w at index %d: %v", ErrInvalidBicycle, i, err)
		}
	}
	return nil
}

// validateRental validates a single rental record.
func validateRental(r *model.Rental) error {
	if r == nil {
		return fmt.Errorf("%w: rental", ErrNilParameter)
	}
	if r.BicycleID <= 0 {
		return fmt.Errorf("%w: bicycle ID must be positive", ErrInvalidRental)
	}
	if r.MemberID <= 0 {
		return fmt.Errorf("%w: member ID must be positive", ErrInvalidRental)
	}
	if r.RentalDate.IsZero() {
		return fmt.Errorf("%w: rental date is required", ErrInvalidRental)
	}
	return nil
}
