// Package rental implements the rent and return workflows: membership and
// availability checks, rental record-keeping, and return fee posting.
package rental

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/wheelhouse-cycles/wheelhouse/internal/common"
	"github.com/wheelhouse-cycles/wheelhouse/internal/model"
	"github.com/wheelhouse-cycles/wheelhouse/internal/service"
)

// Service coordinates rentals and returns against the store.
type Service struct {
	storage service.Storage
	now     func() time.Time
}

// NewService creates a rental service.
func NewService(storage service.Storage) *Service {
	return &Service{storage: storage, now: time.Now}
}

// Confirmation summarizes a successful rental for display.
type Confirmation struct {
	RentalDate time.Time
	DueDate    time.Time
	Brand      string
	Type       model.BicycleType
	BicycleID  int64
	MemberID   int64
	DailyRate  float64
}

// Rent hires a bicycle out to a member. The member must exist with an active
// membership and spare rental allowance, the bicycle must be available, and
// the duration must be at least one day.
func (s *Service) Rent(ctx context.Context, memberID, bicycleID int64, days int) (*Confirmation, error) {
	if days < 1 {
		return nil, common.NewUserError("rental duration must be at least 1 day", nil)
	}

	member, err := s.storage.GetMember(ctx, memberID)
	if err != nil {
		return nil, common.NewUserError(fmt.Sprintf("member %d not found", memberID), err)
	}
	if !member.MembershipActive(s.now()) {
		return nil, common.NewUserError(
			fmt.Sprintf("membership for member %d has expired", memberID),
			common.ErrMembershipExpired)
	}

	open, err := s.storage.CountOpenRentalsByMember(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to count open rentals: %w", err)
	}
	if open >= member.RentalLimit {
		return nil, common.NewUserError(
			"rental limit reached; please return a bicycle before renting another",
			common.ErrRentalLimit)
	}

	bike, err := s.storage.GetBicycle(ctx, bicycleID)
	if err != nil {
		return nil, common.NewUserError(fmt.Sprintf("bicycle %d not found", bicycleID), err)
	}
	switch bike.Status {
	case model.StatusAvailable:
	case model.StatusRented:
		return nil, common.NewUserError(
			"this bicycle is already rented; please try another", common.ErrNotAvailable)
	case model.StatusOutOfService:
		return nil, common.NewUserError(
			"this bicycle is out of service and cannot be rented", common.ErrNotAvailable)
	}

	rentalDate := s.now()
	rental := &model.Rental{
		BicycleID:  bicycleID,
		MemberID:   memberID,
		RentalDate: rentalDate,
		DueDate:    rentalDate.AddDate(0, 0, days),
	}
	if err := s.storage.OpenRental(ctx, rental); err != nil {
		return nil, fmt.Errorf("failed to record rental: %w", err)
	}
	if err := s.storage.UpdateBicycleStatus(ctx, bicycleID, model.StatusRented); err != nil {
		return nil, fmt.Errorf("failed to mark bicycle rented: %w", err)
	}

	slog.Info("Bicycle rented",
		"bicycle_id", bicycleID,
		"member_id", memberID,
		"due_date", rental.DueDate.Format("2006-01-02"))

	return &Confirmation{
		BicycleID:  bicycleID,
		MemberID:   memberID,
		Brand:      bike.Brand,
		Type:       bike.Type,
		DailyRate:  bike.RentalRate,
		RentalDate: rental.RentalDate,
		DueDate:    rental.DueDate,
	}, nil
}

// Receipt summarizes a completed return for display.
type Receipt struct {
	RentalDate time.Time
	DueDate    time.Time
	ReturnedAt time.Time
	Charges    Charges
	BicycleID  int64
	DailyRate  float64
	Damaged    bool
}

// Return closes an open rental, posts late and damage charges, and restores
// the bicycle's availability. A positive damage charge marks the bicycle
// damaged and takes it out of service.
func (s *Service) Return(ctx context.Context, bicycleID int64, damageCharge float64) (*Receipt, error) {
	if damageCharge < 0 {
		return nil, common.NewUserError("damage charge must be non-negative", nil)
	}

	bike, err := s.storage.GetBicycle(ctx, bicycleID)
	if err != nil {
		return nil, common.NewUserError(fmt.Sprintf("bicycle %d not found", bicycleID), err)
	}
	if bike.Status != model.StatusRented {
		return nil, common.NewUserError(
			fmt.Sprintf("bicycle %d is not currently rented", bicycleID), common.ErrNotRented)
	}

	rental, err := s.storage.GetOpenRental(ctx, bicycleID)
	if err != nil {
		return nil, common.NewUserError(
			fmt.Sprintf("no rental record found for bicycle %d", bicycleID), err)
	}

	returnedAt := s.now()
	charges := CalculateCharges(rental.DueDate, returnedAt, bike.RentalRate, damageCharge)

	if err := s.storage.CloseRental(ctx, rental.ID); err != nil {
		return nil, fmt.Errorf("failed to close rental: %w", err)
	}

	damaged := damageCharge > 0
	if damaged {
		if err := s.storage.UpdateBicycleCondition(ctx, bicycleID, "Damaged"); err != nil {
			return nil, fmt.Errorf("failed to update bicycle condition: %w", err)
		}
		if err := s.storage.UpdateBicycleStatus(ctx, bicycleID, model.StatusOutOfService); err != nil {
			return nil, fmt.Errorf("failed to mark bicycle out of service: %w", err)
		}
	} else {
		if err := s.storage.UpdateBicycleStatus(ctx, bicycleID, model.StatusAvailable); err != nil {
			return nil, fmt.Errorf("failed to mark bicycle available: %w", err)
		}
	}

	slog.Info("Bicycle returned",
		"bicycle_id", bicycleID,
		"late_days", charges.LateDays,
		"total_due", charges.Total(),
		"damaged", damaged)

	return &Receipt{
		BicycleID:  bicycleID,
		DailyRate:  bike.RentalRate,
		RentalDate: rental.RentalDate,
		DueDate:    rental.DueDate,
		ReturnedAt: returnedAt,
		Charges:    charges,
		Damaged:    damaged,
	}, nil
}
