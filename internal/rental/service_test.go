package rental

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wheelhouse-cycles/wheelhouse/internal/common"
	"github.com/wheelhouse-cycles/wheelhouse/internal/model"
	"github.com/wheelhouse-cycles/wheelhouse/internal/storage"
)

var testClock = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func setupService(t *testing.T) (*Service, *storage.SQLiteStorage) {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	ctx := context.Background()
	require.NoError(t, store.Migrate(ctx))

	require.NoError(t, store.SaveBicycles(ctx, []model.Bicycle{
		{ID: 1, Brand: "Trek", Type: model.TypeRoad, FrameSize: model.FrameMedium, RentalRate: 15, ConditionLabel: "Good", Status: model.StatusAvailable},
		{ID: 2, Brand: "Giant", Type: model.TypeHybrid, FrameSize: model.FrameSmall, RentalRate: 12, ConditionLabel: "Excellent", Status: model.StatusOutOfService},
	}))
	require.NoError(t, store.SaveMember(ctx, &model.Member{
		ID:            101,
		Name:          "Alex Reid",
		MembershipEnd: testClock.AddDate(1, 0, 0),
		RentalLimit:   2,
	}))

	svc := NewService(store)
	svc.now = func() time.Time { return testClock }
	return svc, store
}

func TestService_Rent(t *testing.T) {
	svc, store := setupService(t)
	ctx := context.Background()

	conf, err := svc.Rent(ctx, 101, 1, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(1), conf.BicycleID)
	assert.Equal(t, "Trek", conf.Brand)
	assert.InDelta(t, 15, conf.DailyRate, 1e-9)
	assert.Equal(t, testClock.AddDate(0, 0, 7), conf.DueDate)

	bike, err := store.GetBicycle(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, model.StatusRented, bike.Status)

	rental, err := store.GetOpenRental(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(101), rental.MemberID)
	assert.True(t, rental.Open())
}

func TestService_Rent_Failures(t *testing.T) {
	tests := []struct {
		name      string
		prepare   func(t *testing.T, svc *Service, store *storage.SQLiteStorage)
		memberID  int64
		bicycleID int64
		days      int
		wantIs    error
	}{
		{
			name:      "zero duration",
			memberID:  101,
			bicycleID: 1,
			days:      0,
		},
		{
			name:      "unknown member",
			memberID:  999,
			bicycleID: 1,
			days:      1,
			wantIs:    common.ErrNotFound,
		},
		{
			name: "expired membership",
			prepare: func(t *testing.T, svc *Service, store *storage.SQLiteStorage) {
				require.NoError(t, store.SaveMember(context.Background(), &model.Member{
					ID:            102,
					Name:          "Sam Lee",
					MembershipEnd: testClock.AddDate(0, 0, -1),
					RentalLimit:   2,
				}))
			},
			memberID:  102,
			bicycleID: 1,
			days:      1,
			wantIs:    common.ErrMembershipExpired,
		},
		{
			name:      "unknown bicycle",
			memberID:  101,
			bicycleID: 999,
			days:      1,
			wantIs:    common.ErrNotFound,
		},
		{
			name:      "bicycle out of service",
			memberID:  101,
			bicycleID: 2,
			days:      1,
			wantIs:    common.ErrNotAvailable,
		},
		{
			name: "bicycle already rented",
			prepare: func(t *testing.T, svc *Service, store *storage.SQLiteStorage) {
				_, err := svc.Rent(context.Background(), 101, 1, 3)
				require.NoError(t, err)
				require.NoError(t, store.SaveMember(context.Background(), &model.Member{
					ID:            103,
					Name:          "Pat Quinn",
					MembershipEnd: testClock.AddDate(1, 0, 0),
					RentalLimit:   2,
				}))
			},
			memberID:  103,
			bicycleID: 1,
			days:      1,
			wantIs:    common.ErrNotAvailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store := setupService(t)
			if tt.prepare != nil {
				tt.prepare(t, svc, store)
			}

			_, err := svc.Rent(context.Background(), tt.memberID, tt.bicycleID, tt.days)
			require.Error(t, err)
			if tt.wantIs != nil {
				assert.ErrorIs(t, err, tt.wantIs)
			}

			var userErr *common.UserError
			assert.ErrorAs(t, err, &userErr, "rental failures must carry a user-facing message")
		})
	}
}

func TestService_Rent_EnforcesRentalLimit(t *testing.T) {
	svc, store := setupService(t)
	ctx := context.Background()

	require.NoError(t, store.SaveBicycles(ctx, []model.Bicycle{
		{ID: 3, Brand: "Cube", Type: model.TypeCity, RentalRate: 10, ConditionLabel: "Good", Status: model.StatusAvailable},
		{ID: 4, Brand: "Canyon", Type: model.TypeRoad, RentalRate: 20, ConditionLabel: "New", Status: model.StatusAvailable},
	}))

	_, err := svc.Rent(ctx, 101, 1, 1)
	require.NoError(t, err)
	_, err = svc.Rent(ctx, 101, 3, 1)
	require.NoError(t, err)

	_, err = svc.Rent(ctx, 101, 4, 1)
	assert.ErrorIs(t, err, common.ErrRentalLimit, "limit of 2 open rentals")
}

func TestService_Return_OnTime(t *testing.T) {
	svc, store := setupService(t)
	ctx := context.Background()

	_, err := svc.Rent(ctx, 101, 1, 7)
	require.NoError(t, err)

	receipt, err := svc.Return(ctx, 1, 0)
	require.NoError(t, err)
	assert.Zero(t, receipt.Charges.LateDays)
	assert.Zero(t, receipt.Charges.Total())
	assert.False(t, receipt.Damaged)

	bike, err := store.GetBicycle(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, model.StatusAvailable, bike.Status)

	_, err = store.GetOpenRental(ctx, 1)
	assert.ErrorIs(t, err, common.ErrNotFound, "rental must be closed")
}

func TestService_Return_Late(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	_, err := svc.Rent(ctx, 101, 1, 2)
	require.NoError(t, err)

	// Move the clock five days past the due date.
	svc.now = func() time.Time { return testClock.AddDate(0, 0, 7) }

	receipt, err := svc.Return(ctx, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, 5, receipt.Charges.LateDays)
	assert.InDelta(t, 5*15+5*LateSurchargePerDay, receipt.Charges.LateFee, 1e-9)
	assert.InDelta(t, receipt.Charges.LateFee, receipt.Charges.Total(), 1e-9)
}

func TestService_Return_Damaged(t *testing.T) {
	svc, store := setupService(t)
	ctx := context.Background()

	_, err := svc.Rent(ctx, 101, 1, 7)
	require.NoError(t, err)

	receipt, err := svc.Return(ctx, 1, 35)
	require.NoError(t, err)
	assert.True(t, receipt.Damaged)
	assert.InDelta(t, 35, receipt.Charges.Total(), 1e-9)

	bike, err := store.GetBicycle(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, model.StatusOutOfService, bike.Status)
	assert.Equal(t, "Damaged", bike.ConditionLabel)
}

func TestService_Return_NotRented(t *testing.T) {
	svc, _ := setupService(t)

	_, err := svc.Return(context.Background(), 1, 0)
	assert.ErrorIs(t, err, common.ErrNotRented)
}

func TestService_Return_NegativeDamageCharge(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	_, err := svc.Rent(ctx, 101, 1, 1)
	require.NoError(t, err)

	_, err = svc.Return(ctx, 1, -10)
	require.Error(t, err)

	var userErr *common.UserError
	assert.ErrorAs(t, err, &userErr)
}
