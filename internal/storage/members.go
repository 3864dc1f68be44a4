package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/wheelhouse-cycles/wheelhouse/internal/common"
	"github.com/wheelhouse-cycles/wheelhouse/internal/model"
)

// SaveMember upserts a member record.
func (s *SQLiteStorage) SaveMember(ctx context.Context, member *model.Member) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if member == nil {
		return fmt.Errorf("%w: member", ErrNilParameter)
	}
	if err := member.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidMember, err)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO members (id, name, email, phone, membership_end, rental_limit)
		VALUES (?, ?, ?, ?, ?, ?)
	`, member.ID, member.Name, member.Email, member.Phone, member.MembershipEnd, member.RentalLimit)
	if err != nil {
		return fmt.Errorf("failed to save member: %w", err)
	}
	return nil
}

// GetMember retrieves a member by ID.
func (s *SQLiteStorage) GetMember(ctx context.Context, id int64) (*model.Member, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateID(id, "id"); err != nil {
		return nil, err
	}

	var m model.Member
	var email, phone sql.NullString
	var membershipEnd sql.NullTime
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, email, phone, membership_end, rental_limit
		FROM members WHERE id = ?
	`, id).Scan(&m.ID, &m.Name, &email, &phone, &membershipEnd, &m.RentalLimit)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("member %d: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}

	m.Email = email.String
	m.Phone = phone.String
	if membershipEnd.Valid {
		m.MembershipEnd = membershipEnd.Time
	}
	return &m, nil
}

// GetAllMembers lists every member, ordered by ID.
func (s *SQLiteStorage) GetAllMembers(ctx context.Context) ([]model.Member, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, email, phone, membership_end, rental_limit
		FROM members ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var members []model.Member
	for rows.Next() {
		var m model.Member
		var email, phone sql.NullString
		var membershipEnd sql.NullTime
		if scanErr := rows.Scan(&m.ID, &m.Name, &email, &phone, &membershipEnd, &m.RentalLimit); scanErr != nil {
			return nil, fmt.Errorf("failed to scan member: %w", scanErr)
		}
		m.Email = email.String
		m.Phone = phone.String
		if membershipEnd.Valid {
			m.MembershipEnd = membershipEnd.Time
		}
		members = append(members, m)
	}
	return members, rows.Err()
}
