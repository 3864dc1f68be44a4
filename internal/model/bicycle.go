// Package model defines the core domain types shared across the application.
package model

import (
	"fmt"
	"strings"
	"time"
)

// BicycleType identifies the style of a bicycle.
type BicycleType string

// Known bicycle types.
const (
	TypeRoad       BicycleType = "road"
	TypeMountain   BicycleType = "mountain"
	TypeHybrid     BicycleType = "hybrid"
	TypeElectric   BicycleType = "electric"
	TypeCity       BicycleType = "city"
	TypeSingleGear BicycleType = "single_gear"
)

// FrameSize is the labelled frame size of a bicycle.
type FrameSize string

// Known frame sizes.
const (
	FrameSmall  FrameSize = "S"
	FrameMedium FrameSize = "M"
	FrameLarge  FrameSize = "L"
	FrameXLarge FrameSize = "XL"
)

// Status describes whether a bicycle can currently be rented or planned for.
type Status string

// Bicycle statuses.
const (
	StatusAvailable    Status = "available"
	StatusRented       Status = "rented"
	StatusOutOfService Status = "out_of_service"
)

// ParseStatus maps the free-form status labels found in shop records onto the
// three statuses the application recognises.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "available", "":
		return StatusAvailable, nil
	case "rented":
		return StatusRented, nil
	case "out_of_service", "under maintenance", "unavailable", "damaged":
		return StatusOutOfService, nil
	default:
		return "", fmt.Errorf("unknown bicycle status %q", s)
	}
}

// Bicycle represents a single catalog entry. Planning always operates on a
// snapshot copy; nothing in the planner mutates catalog state.
type Bicycle struct {
	PurchaseDate   time.Time
	Brand          string
	ConditionLabel string
	FrameSize      FrameSize
	Type           BicycleType
	Status         Status
	ID             int64
	Price          float64
	RentalRate     float64
	Condition      float64
	Popularity     float64
}

// Validate ensures the bicycle satisfies the catalog invariants.
func (b *Bicycle) Validate() error {
	if b.ID <= 0 {
		return fmt.Errorf("bicycle ID must be positive, got %d", b.ID)
	}
	if b.Price < 0 {
		return fmt.Errorf("bicycle %d: price must be non-negative, got %.2f", b.ID, b.Price)
	}
	if b.Condition < 0 || b.Condition > 1 {
		return fmt.Errorf("bicycle %d: condition score must be between 0.0 and 1.0, got %.2f", b.ID, b.Condition)
	}
	if b.Popularity < 0 || b.Popularity > 1 {
		return fmt.Errorf("bicycle %d: popularity score must be between 0.0 and 1.0, got %.2f", b.ID, b.Popularity)
	}
	switch b.Status {
	case StatusAvailable, StatusRented, StatusOutOfService:
	default:
		return fmt.Errorf("bicycle %d: invalid status %q", b.ID, b.Status)
	}
	return nil
}

// Available reports whether the bicycle is eligible for rental or purchase
// planning.
func (b *Bicycle) Available() bool {
	return b.Status == StatusAvailable
}
