package rental

import (
	"math"
	"time"
)

// LateSurchargePerDay is the flat surcharge added for every overdue day, on
// top of the daily rental rate.
const LateSurchargePerDay = 5.0

// Charges itemizes the money owed on a return.
type Charges struct {
	LateDays     int
	LateFee      float64
	Surcharge    float64
	DamageCharge float64
}

// Total is the full amount due.
func (c Charges) Total() float64 {
	return c.LateFee + c.DamageCharge
}

// CalculateCharges computes the fees for a return. Overdue days are charged
// the daily rate plus the flat surcharge; on-time returns owe only the damage
// charge, if any.
func CalculateCharges(dueDate, returnedAt time.Time, dailyRate, damageCharge float64) Charges {
	lateDays := 0
	if !dueDate.IsZero() && returnedAt.After(dueDate) {
		lateDays = int(math.Ceil(returnedAt.Sub(dueDate).Hours() / 24))
	}

	charges := Charges{
		LateDays:     lateDays,
		DamageCharge: damageCharge,
	}
	if lateDays > 0 {
		charges.Surcharge = float64(lateDays) * LateSurchargePerDay
		charges.LateFee = float64(lateDays)*dailyRate + charges.Surcharge
	}
	return charges
}
