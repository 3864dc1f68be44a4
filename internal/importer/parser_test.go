package importer

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wheelhouse-cycles/wheelhouse/internal/model"
)

const bicycleHeader = "ID,Brand,Type,Frame_Size,Rental_Rate,Purchase_Date,Condition,Status\n"

const rentalHeader = "Bicycle_ID,Rental_Date,Return_Date,Member_ID\n"

func TestParseBicycles(t *testing.T) {
	data := bicycleHeader +
		"1,Trek,Road Bike,M,£15/day,12/03/2021,Excellent,Available\n" +
		"2,Giant,Mountain Bike,L,12,2022-06-01,Good,Rented\n" +
		"3,Cube,Hybrid Bike,s,£9/day,01/01/2020,Fair,Under Maintenance\n"

	result, err := NewParser().ParseBicycles(context.Background(), strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, result.Bicycles, 3)
	assert.Zero(t, result.Skipped)

	first := result.Bicycles[0]
	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, "Trek", first.Brand)
	assert.Equal(t, model.TypeRoad, first.Type)
	assert.Equal(t, model.FrameMedium, first.FrameSize)
	assert.InDelta(t, 15, first.RentalRate, 1e-9, "currency symbol and /day suffix stripped")
	assert.Equal(t, time.Date(2021, 3, 12, 0, 0, 0, 0, time.UTC), first.PurchaseDate)
	assert.Equal(t, "Excellent", first.ConditionLabel)
	assert.Equal(t, model.StatusAvailable, first.Status)

	second := result.Bicycles[1]
	assert.InDelta(t, 12, second.RentalRate, 1e-9, "bare numeric rate accepted")
	assert.Equal(t, time.Date(2022, 6, 1, 0, 0, 0, 0, time.UTC), second.PurchaseDate)
	assert.Equal(t, model.StatusRented, second.Status)

	third := result.Bicycles[2]
	assert.Equal(t, model.FrameSmall, third.FrameSize, "frame size normalized to upper case")
	assert.Equal(t, model.StatusOutOfService, third.Status, "legacy maintenance label folded in")
}

func TestParseBicycles_SkipsMalformedRows(t *testing.T) {
	data := bicycleHeader +
		"1,Trek,Road Bike,M,£15/day,12/03/2021,Excellent,Available\n" +
		"oops,Trek,Road Bike,M,£15/day,12/03/2021,Excellent,Available\n" +
		"2,Giant,Road Bike,M,free,12/03/2021,Excellent,Available\n" +
		"3,Giant,Road Bike,M\n" +
		"4,Cube,City Bike,L,£11/day,05/05/2023,Good,Available\n"

	result, err := NewParser().ParseBicycles(context.Background(), strings.NewReader(data))
	require.NoError(t, err)
	assert.Len(t, result.Bicycles, 2, "good rows survive their bad neighbours")
	assert.Equal(t, 3, result.Skipped)
}

func TestParseBicycles_UnknownTypeDefaultsToHybrid(t *testing.T) {
	data := bicycleHeader +
		"1,Trek,Penny Farthing,M,£15/day,12/03/2021,Excellent,Available\n"

	result, err := NewParser().ParseBicycles(context.Background(), strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, result.Bicycles, 1)
	assert.Equal(t, model.TypeHybrid, result.Bicycles[0].Type)
}

func TestParseBicycles_EmptyFile(t *testing.T) {
	_, err := NewParser().ParseBicycles(context.Background(), strings.NewReader(""))
	assert.Error(t, err)
}

func TestParseBicycles_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	data := bicycleHeader + "1,Trek,Road Bike,M,£15/day,12/03/2021,Excellent,Available\n"
	_, err := NewParser().ParseBicycles(ctx, strings.NewReader(data))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseRentals(t *testing.T) {
	data := rentalHeader +
		"1,01/02/2024,08/02/2024,101\n" +
		"2,15/02/2024,,102\n"

	result, err := NewParser().ParseRentals(context.Background(), strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, result.Rentals, 2)

	closed := result.Rentals[0]
	assert.Equal(t, int64(1), closed.BicycleID)
	assert.Equal(t, int64(101), closed.MemberID)
	require.NotNil(t, closed.ReturnedAt)
	assert.Equal(t, time.Date(2024, 2, 8, 0, 0, 0, 0, time.UTC), *closed.ReturnedAt)
	assert.False(t, closed.Open())

	open := result.Rentals[1]
	assert.Nil(t, open.ReturnedAt, "empty return date means the rental is still out")
	assert.True(t, open.Open())
}

func TestParseRentals_SkipsMalformedRows(t *testing.T) {
	data := rentalHeader +
		"1,01/02/2024,08/02/2024,101\n" +
		"x,01/02/2024,08/02/2024,101\n" +
		"2,not-a-date,,102\n" +
		"3,01/02/2024,08/02/2024,member\n"

	result, err := NewParser().ParseRentals(context.Background(), strings.NewReader(data))
	require.NoError(t, err)
	assert.Len(t, result.Rentals, 1)
	assert.Equal(t, 3, result.Skipped)
}

func TestParseRentalRate(t *testing.T) {
	tests := []struct {
		input   string
		want    float64
		wantErr bool
	}{
		{input: "£15/day", want: 15},
		{input: "£9.50/day", want: 9.5},
		{input: "12", want: 12},
		{input: " £20/day ", want: 20},
		{input: "free", wantErr: true},
		{input: "-3", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseRentalRate(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}
