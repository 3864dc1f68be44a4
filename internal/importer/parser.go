// Package importer parses the shop's delimited catalog and rental-history
// files into domain records, cleaning the quirks the raw files carry.
package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/wheelhouse-cycles/wheelhouse/internal/model"
)

const (
	bicycleColumns = 8
	rentalColumns  = 4
)

// typeLabels maps the labels used in the shop's files to bicycle types.
var typeLabels = map[string]model.BicycleType{
	"road bike":        model.TypeRoad,
	"mountain bike":    model.TypeMountain,
	"hybrid bike":      model.TypeHybrid,
	"electric bike":    model.TypeElectric,
	"city bike":        model.TypeCity,
	"single gear bike": model.TypeSingleGear,
}

// Parser reads the shop's record files.
type Parser struct{}

// NewParser creates a new record file parser.
func NewParser() *Parser {
	return &Parser{}
}

// BicycleResult summarizes one catalog file parse.
type BicycleResult struct {
	Bicycles []model.Bicycle
	Skipped  int
}

// ParseBicycles reads a catalog file: a header row followed by rows of
// ID, Brand, Type, Frame_Size, Rental_Rate, Purchase_Date, Condition, Status.
// Malformed rows are skipped and counted rather than failing the import.
func (p *Parser) ParseBicycles(ctx context.Context, r io.Reader) (*BicycleResult, error) {
	records, err := readRows(r)
	if err != nil {
		return nil, err
	}

	result := &BicycleResult{}
	for i, row := range records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		bike, rowErr := parseBicycleRow(row)
		if rowErr != nil {
			slog.Warn("Skipping malformed catalog row", "row", i+2, "error", rowErr)
			result.Skipped++
			continue
		}
		result.Bicycles = append(result.Bicycles, *bike)
	}
	return result, nil
}

// RentalResult summarizes one rental-history file parse.
type RentalResult struct {
	Rentals []model.Rental
	Skipped int
}

// ParseRentals reads a rental-history file: a header row followed by rows of
// Bicycle_ID, Rental_Date, Return_Date, Member_ID. An empty return date means
// the rental is still open.
func (p *Parser) ParseRentals(ctx context.Context, r io.Reader) (*RentalResult, error) {
	records, err := readRows(r)
	if err != nil {
		return nil, err
	}

	result := &RentalResult{}
	for i, row := range records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rental, rowErr := parseRentalRow(row)
		if rowErr != nil {
			slog.Warn("Skipping malformed rental row", "row", i+2, "error", rowErr)
			result.Skipped++
			continue
		}
		result.Rentals = append(result.Rentals, *rental)
	}
	return result, nil
}

func readRows(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read records: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("file is empty")
	}
	// First row is the header.
	return records[1:], nil
}

func parseBicycleRow(row []string) (*model.Bicycle, error) {
	if len(row) != bicycleColumns {
		return nil, fmt.Errorf("expected %d columns, got %d", bicycleColumns, len(row))
	}

	id, err := strconv.ParseInt(strings.TrimSpace(row[0]), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid bicycle ID %q", row[0])
	}

	rate, err := ParseRentalRate(row[4])
	if err != nil {
		return nil, err
	}

	status, err := model.ParseStatus(row[7])
	if err != nil {
		return nil, err
	}

	bike := &model.Bicycle{
		ID:             id,
		Brand:          strings.TrimSpace(row[1]),
		Type:           parseType(row[2]),
		FrameSize:      model.FrameSize(strings.ToUpper(strings.TrimSpace(row[3]))),
		RentalRate:     rate,
		PurchaseDate:   parseDate(row[5]),
		ConditionLabel: strings.TrimSpace(row[6]),
		Status:         status,
	}
	if err := bike.Validate(); err != nil {
		return nil, err
	}
	return bike, nil
}

func parseRentalRow(row []string) (*model.Rental, error) {
	if len(row) != rentalColumns {
		return nil, fmt.Errorf("expected %d columns, got %d", rentalColumns, len(row))
	}

	bicycleID, err := strconv.ParseInt(strings.TrimSpace(row[0]), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid bicycle ID %q", row[0])
	}
	memberID, err := strconv.ParseInt(strings.TrimSpace(row[3]), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid member ID %q", row[3])
	}

	rentalDate := parseDate(row[1])
	if rentalDate.IsZero() {
		return nil, fmt.Errorf("invalid rental date %q", row[1])
	}

	rental := &model.Rental{
		BicycleID:  bicycleID,
		MemberID:   memberID,
		RentalDate: rentalDate,
	}
	if returned := parseDate(row[2]); !returned.IsZero() {
		rental.DueDate = returned
		rental.ReturnedAt = &returned
	}
	return rental, nil
}

// ParseRentalRate extracts the numeric daily rate from labels like
// "£15/day"; a bare number is accepted too.
func ParseRentalRate(s string) (float64, error) {
	cleaned := strings.TrimSpace(s)
	cleaned = strings.TrimPrefix(cleaned, "£")
	cleaned = strings.TrimSuffix(cleaned, "/day")
	cleaned = strings.TrimSpace(cleaned)

	rate, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid rental rate %q", s)
	}
	if rate < 0 {
		return 0, fmt.Errorf("rental rate %q is negative", s)
	}
	return rate, nil
}

// parseDate accepts the two date formats found in shop records, DD/MM/YYYY
// and YYYY-MM-DD. Anything else yields the zero time; the caller decides
// whether that is fatal for the row.
func parseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{"02/01/2006", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// parseType maps a file label onto a bicycle type, defaulting to hybrid for
// labels the shop has not used before.
func parseType(s string) model.BicycleType {
	if t, ok := typeLabels[strings.ToLower(strings.TrimSpace(s))]; ok {
		return t
	}
	return model.TypeHybrid
}
