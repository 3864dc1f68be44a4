package model

import (
	"fmt"
	"time"
)

// Rental records a single hire of a bicycle by a member. ReturnedAt is nil
// while the rental is open.
type Rental struct {
	RentalDate time.Time
	DueDate    time.Time
	ReturnedAt *time.Time
	ID         int64
	BicycleID  int64
	MemberID   int64
}

// Open reports whether the bicycle is still out.
func (r *Rental) Open() bool {
	return r.ReturnedAt == nil
}

// Member is a registered customer of the shop.
type Member struct {
	MembershipEnd time.Time
	Name          string
	Email         string
	Phone         string
	ID            int64
	RentalLimit   int
}

// Validate ensures the member record is usable for rental checks.
func (m *Member) Validate() error {
	if m.ID <= 0 {
		return fmt.Errorf("member ID must be positive, got %d", m.ID)
	}
	if m.Name == "" {
		return fmt.Errorf("member %d: name is required", m.ID)
	}
	if m.RentalLimit < 0 {
		return fmt.Errorf("member %d: rental limit must be non-negative, got %d", m.ID, m.RentalLimit)
	}
	return nil
}

// MembershipActive reports whether the membership is valid at the given time.
func (m *Member) MembershipActive(at time.Time) bool {
	return m.MembershipEnd.After(at)
}
