package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/wheelhouse-cycles/wheelhouse/internal/common"
	"github.com/wheelhouse-cycles/wheelhouse/internal/model"
)

// SaveRentals bulk-inserts historical rental records, as produced by the
// rental-history import. Records with a returned_at are closed rentals.
func (s *SQLiteStorage) SaveRentals(ctx context.Context, rentals []model.Rental) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if rentals == nil {
		return fmt.Errorf("%w: rentals", ErrNilParameter)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO rentals (bicycle_id, member_id, rental_date, due_date, returned_at)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i := range rentals {
		r := &rentals[i]
		if err := validateRental(r); err != nil {
			return err
		}
		var returnedAt any
		if r.ReturnedAt != nil {
			returnedAt = *r.ReturnedAt
		}
		var dueDate any
		if !r.DueDate.IsZero() {
			dueDate = r.DueDate
		}
		if _, err := stmt.ExecContext(ctx,
			r.BicycleID, r.MemberID, r.RentalDate, dueDate, returnedAt); err != nil {
			return fmt.Errorf("failed to save rental for bicycle %d: %w", r.BicycleID, err)
		}
	}

	return tx.Commit()
}

// OpenRental records a new rental and fills in its generated ID.
func (s *SQLiteStorage) OpenRental(ctx context.Context, rental *model.Rental) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateRental(rental); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO rentals (bicycle_id, member_id, rental_date, due_date)
		VALUES (?, ?, ?, ?)
	`, rental.BicycleID, rental.MemberID, rental.RentalDate, rental.DueDate)
	if err != nil {
		return fmt.Errorf("failed to open rental: %w", err)
	}

	rental.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get rental ID: %w", err)
	}
	return nil
}

// CloseRental stamps the rental's return time.
func (s *SQLiteStorage) CloseRental(ctx context.Context, rentalID int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateID(rentalID, "rentalID"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE rentals SET returned_at = ? WHERE id = ? AND returned_at IS NULL
	`, time.Now(), rentalID)
	if err != nil {
		return fmt.Errorf("failed to close rental: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("rental %d: %w", rentalID, common.ErrNotFound)
	}
	return nil
}

// GetOpenRental returns the open rental for a bicycle, or ErrNotFound when
// the bicycle is not out.
func (s *SQLiteStorage) GetOpenRental(ctx context.Context, bicycleID int64) (*model.Rental, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateID(bicycleID, "bicycleID"); err != nil {
		return nil, err
	}

	var r model.Rental
	var dueDate sql.NullTime
	err := s.db.QueryRowContext(ctx, `
		SELECT id, bicycle_id, member_id, rental_date, due_date
		FROM rentals
		WHERE bicycle_id = ? AND returned_at IS NULL
		ORDER BY rental_date DESC
		LIMIT 1
	`, bicycleID).Scan(&r.ID, &r.BicycleID, &r.MemberID, &r.RentalDate, &dueDate)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("open rental for bicycle %d: %w", bicycleID, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get open rental: %w", err)
	}
	if dueDate.Valid {
		r.DueDate = dueDate.Time
	}
	return &r, nil
}

// CountOpenRentalsByMember counts the bicycles a member currently has out,
// for rental-limit enforcement.
func (s *SQLiteStorage) CountOpenRentalsByMember(ctx context.Context, memberID int64) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateID(memberID, "memberID"); err != nil {
		return 0, err
	}

	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM rentals WHERE member_id = ? AND returned_at IS NULL
	`, memberID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count open rentals: %w", err)
	}
	return count, nil
}

// RentalCounts returns the total rental count per bicycle, the popularity
// input for catalog snapshots.
func (s *SQLiteStorage) RentalCounts(ctx context.Context) (map[int64]int, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT bicycle_id, COUNT(*) FROM rentals GROUP BY bicycle_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to count rentals: %w", err)
	}
	defer func() { _ = rows.Close() }()

	counts := make(map[int64]int)
	for rows.Next() {
		var bicycleID int64
		var count int
		if scanErr := rows.Scan(&bicycleID, &count); scanErr != nil {
			return nil, fmt.Errorf("failed to scan rental count: %w", scanErr)
		}
		counts[bicycleID] = count
	}
	return counts, rows.Err()
}
