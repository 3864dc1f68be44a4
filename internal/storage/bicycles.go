package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/wheelhouse-cycles/wheelhouse/internal/common"
	"github.com/wheelhouse-cycles/wheelhouse/internal/model"
	"github.com/wheelhouse-cycles/wheelhouse/internal/service"
)

// SaveBicycles upserts catalog entries in a single transaction.
func (s *SQLiteStorage) SaveBicycles(ctx context.Context, bikes []model.Bicycle) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateBicycles(bikes); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO bicycles (
			id, brand, type, frame_size, rental_rate, price,
			purchase_date, condition_label, status
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, b := range bikes {
		var purchaseDate any
		if !b.PurchaseDate.IsZero() {
			purchaseDate = b.PurchaseDate
		}
		if _, err := stmt.ExecContext(ctx,
			b.ID,
			b.Brand,
			string(b.Type),
			string(b.FrameSize),
			b.RentalRate,
			b.Price,
			purchaseDate,
			b.ConditionLabel,
			string(b.Status),
		); err != nil {
			return fmt.Errorf("failed to save bicycle %d: %w", b.ID, err)
		}
	}

	return tx.Commit()
}

// GetBicycle retrieves a single catalog entry by ID.
func (s *SQLiteStorage) GetBicycle(ctx context.Context, id int64) (*model.Bicycle, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateID(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, brand, type, frame_size, rental_rate, price,
		       purchase_date, condition_label, status
		FROM bicycles WHERE id = ?
	`, id)

	b, err := scanBicycle(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("bicycle %d: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bicycle: %w", err)
	}
	return b, nil
}

// SearchBicycles returns catalog entries matching the filter. Criteria are
// combined with AND and matched case-insensitively, so an empty filter lists
// the whole catalog.
func (s *SQLiteStorage) SearchBicycles(ctx context.Context, filter service.BicycleFilter) ([]model.Bicycle, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, brand, type, frame_size, rental_rate, price,
		       purchase_date, condition_label, status
		FROM bicycles`

	var conditions []string
	var values []any
	for column, value := range map[string]string{
		"brand":      filter.Brand,
		"type":       filter.Type,
		"frame_size": filter.FrameSize,
		"status":     filter.Status,
	} {
		if strings.TrimSpace(value) == "" {
			continue
		}
		conditions = append(conditions, fmt.Sprintf("LOWER(%s) = LOWER(?)", column))
		values = append(values, strings.TrimSpace(value))
	}
	if len(conditions) > 0 {
		// Sort for a deterministic query shape regardless of map order.
		sortStrings(conditions, values)
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY id"

	rows, err := s.db.QueryContext(ctx, query, values...)
	if err != nil {
		return nil, fmt.Errorf("failed to search bicycles: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var bikes []model.Bicycle
	for rows.Next() {
		b, scanErr := scanBicycle(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan bicycle: %w", scanErr)
		}
		bikes = append(bikes, *b)
	}
	return bikes, rows.Err()
}

// UpdateBicycleStatus transitions a bicycle to a new status.
func (s *SQLiteStorage) UpdateBicycleStatus(ctx context.Context, id int64, status model.Status) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateID(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE bicycles SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return fmt.Errorf("failed to update bicycle status: %w", err)
	}
	return requireRowAffected(result, id)
}

// UpdateBicycleCondition replaces a bicycle's condition label.
func (s *SQLiteStorage) UpdateBicycleCondition(ctx context.Context, id int64, label string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateID(id, "id"); err != nil {
		return err
	}
	if err := validateString(label, "label"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE bicycles SET condition_label = ? WHERE id = ?`, label, id)
	if err != nil {
		return fmt.Errorf("failed to update bicycle condition: %w", err)
	}
	return requireRowAffected(result, id)
}

// CountByStatus tallies the catalog per status for the status overview.
func (s *SQLiteStorage) CountByStatus(ctx context.Context) (map[model.Status]int, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT status, COUNT(*) FROM bicycles GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("failed to count bicycles by status: %w", err)
	}
	defer func() { _ = rows.Close() }()

	counts := make(map[model.Status]int)
	for rows.Next() {
		var status string
		var count int
		if scanErr := rows.Scan(&status, &count); scanErr != nil {
			return nil, fmt.Errorf("failed to scan status count: %w", scanErr)
		}
		counts[model.Status(status)] = count
	}
	return counts, rows.Err()
}

// scanner abstracts sql.Row and sql.Rows for shared scanning.
type scanner interface {
	Scan(dest ...any) error
}

func scanBicycle(row scanner) (*model.Bicycle, error) {
	var b model.Bicycle
	var frameSize, conditionLabel sql.NullString
	var purchaseDate sql.NullTime
	var bicycleType, status string

	if err := row.Scan(
		&b.ID,
		&b.Brand,
		&bicycleType,
		&frameSize,
		&b.RentalRate,
		&b.Price,
		&purchaseDate,
		&conditionLabel,
		&status,
	); err != nil {
		return nil, err
	}

	b.Type = model.BicycleType(bicycleType)
	b.FrameSize = model.FrameSize(frameSize.String)
	b.ConditionLabel = conditionLabel.String
	b.Status = model.Status(status)
	if purchaseDate.Valid {
		b.PurchaseDate = purchaseDate.Time
	}
	return &b, nil
}

func requireRowAffected(result sql.Result, id int64) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("bicycle %d: %w", id, common.ErrNotFound)
	}
	return nil
}

// sortStrings orders the condition list and its bound values together.
func sortStrings(conditions []string, values []any) {
	for i := 1; i < len(conditions); i++ {
		for j := i; j > 0 && conditions[j] < conditions[j-1]; j-- {
			conditions[j], conditions[j-1] = conditions[j-1], conditions[j]
			values[j], values[j-1] = values[j-1], values[j]
		}
	}
}
