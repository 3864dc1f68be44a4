// Package service defines the interfaces for all application services.
package service

import (
	"context"

	"github.com/wheelhouse-cycles/wheelhouse/internal/model"
)

// BicycleFilter defines criteria for catalog queries. String matches are
// case-insensitive; empty fields are unconstrained.
type BicycleFilter struct {
	Brand     string
	Type      string
	FrameSize string
	Status    string
}

// Storage defines the contract for the persistence layer.
type Storage interface {
	// Bicycle operations
	SaveBicycles(ctx context.Context, bikes []model.Bicycle) error
	GetBicycle(ctx context.Context, id int64) (*model.Bicycle, error)
	SearchBicycles(ctx context.Context, filter BicycleFilter) ([]model.Bicycle, error)
	UpdateBicycleStatus(ctx context.Context, id int64, status model.Status) error
	UpdateBicycleCondition(ctx context.Context, id int64, label string) error
	CountByStatus(ctx context.Context) (map[model.Status]int, error)

	// Rental operations
	SaveRentals(ctx context.Context, rentals []model.Rental) error
	OpenRental(ctx context.Context, rental *model.Rental) error
	CloseRental(ctx context.Context, rentalID int64) error
	GetOpenRental(ctx context.Context, bicycleID int64) (*model.Rental, error)
	CountOpenRentalsByMember(ctx context.Context, memberID int64) (int, error)
	RentalCounts(ctx context.Context) (map[int64]int, error)

	// Member operations
	SaveMember(ctx context.Context, member *model.Member) error
	GetMember(ctx context.Context, id int64) (*model.Member, error)
	GetAllMembers(ctx context.Context) ([]model.Member, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}
