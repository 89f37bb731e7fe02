package availability_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	apartmentRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/apartment"
	"github.com/m04kA/SMC-RentalService/internal/service/availability"
	"github.com/m04kA/SMC-RentalService/pkg/logger"
	"github.com/m04kA/SMC-RentalService/pkg/ptr"
	"github.com/m04kA/SMC-RentalService/pkg/types"
)

// ---- helpers ----

func day(s string) time.Time {
	t, err := time.Parse(domain.DateFormat, s)
	if err != nil {
		panic(err)
	}
	return t
}

func stay(from, to string) domain.StayInterval {
	return domain.StayInterval{CheckIn: day(from), CheckOut: day(to)}
}

func booking(id int64, from, to string, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:          id,
		ApartmentID: 1,
		GuestName:   "guest",
		Stay:        stay(from, to),
		Status:      status,
	}
}

type mockBookingRepo struct {
	listActiveFn func(ctx context.Context, apartmentID int64) ([]*domain.Booking, error)
}

var _ availability.BookingRepository = (*mockBookingRepo)(nil)

func (m *mockBookingRepo) ListActiveByApartment(ctx context.Context, apartmentID int64) ([]*domain.Booking, error) {
	return m.listActiveFn(ctx, apartmentID)
}

type mockApartmentRepo struct {
	getByIDFn func(ctx context.Context, id int64) (*domain.Apartment, error)
}

var _ availability.ApartmentRepository = (*mockApartmentRepo)(nil)

func (m *mockApartmentRepo) GetByID(ctx context.Context, id int64) (*domain.Apartment, error) {
	return m.getByIDFn(ctx, id)
}

type countingConflicts struct {
	ops []string
}

func (c *countingConflicts) IncBookingConflict(op string) {
	c.ops = append(c.ops, op)
}

func newEngine(bookings []*domain.Booking, conflicts *countingConflicts) *availability.Engine {
	var counter availability.ConflictCounter
	if conflicts != nil {
		counter = conflicts
	}
	return availability.NewEngine(
		&mockBookingRepo{listActiveFn: func(ctx context.Context, apartmentID int64) ([]*domain.Booking, error) {
			return bookings, nil
		}},
		&mockApartmentRepo{getByIDFn: func(ctx context.Context, id int64) (*domain.Apartment, error) {
			return &domain.Apartment{ID: id}, nil
		}},
		counter,
		logger.Nop{},
	)
}

// ---- FirstConflict ----

func TestFirstConflict_ScenarioApartmentA(t *testing.T) {
	existing := []*domain.Booking{booking(1, "2024-03-01", "2024-03-05", domain.BookingStatusConfirmed)}

	cases := []struct {
		name      string
		candidate domain.StayInterval
		conflict  bool
	}{
		{"starts on checkout day", stay("2024-03-05", "2024-03-08"), false},
		{"overlaps last nights", stay("2024-03-04", "2024-03-06"), true},
		{"ends on check-in day", stay("2024-02-25", "2024-03-01"), false},
		{"identical stay", stay("2024-03-01", "2024-03-05"), true},
		{"inside existing", stay("2024-03-02", "2024-03-03"), true},
		{"covers existing", stay("2024-02-20", "2024-03-20"), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := availability.FirstConflict(existing, tc.candidate, nil)
			if tc.conflict {
				require.NotNil(t, got)
				assert.Equal(t, int64(1), got.ID)
			} else {
				assert.Nil(t, got)
			}
		})
	}
}

func TestFirstConflict_ExcludedBookingNeverReported(t *testing.T) {
	existing := []*domain.Booking{booking(7, "2024-03-01", "2024-03-05", domain.BookingStatusConfirmed)}

	got := availability.FirstConflict(existing, stay("2024-03-02", "2024-03-06"), ptr.Ptr(int64(7)))

	assert.Nil(t, got)
}

func TestFirstConflict_ExclusionKeepsOtherBookings(t *testing.T) {
	existing := []*domain.Booking{
		booking(7, "2024-03-01", "2024-03-05", domain.BookingStatusConfirmed),
		booking(8, "2024-03-05", "2024-03-07", domain.BookingStatusCheckedIn),
	}

	got := availability.FirstConflict(existing, stay("2024-03-02", "2024-03-06"), ptr.Ptr(int64(7)))

	require.NotNil(t, got)
	assert.Equal(t, int64(8), got.ID)
}

func TestFirstConflict_InactiveStatusesNeverBlock(t *testing.T) {
	for _, status := range []domain.BookingStatus{
		domain.BookingStatusCancelled,
		domain.BookingStatusNoShow,
		domain.BookingStatusCheckedOut,
	} {
		t.Run(string(status), func(t *testing.T) {
			existing := []*domain.Booking{booking(1, "2024-03-01", "2024-03-05", status)}

			for _, candidate := range []domain.StayInterval{
				stay("2024-03-01", "2024-03-05"),
				stay("2024-02-01", "2024-04-01"),
				stay("2024-03-03", "2024-03-04"),
			} {
				assert.Nil(t, availability.FirstConflict(existing, candidate, nil), candidate.String())
			}
		})
	}
}

// ---- BuildUnavailableDates ----

func TestBuildUnavailableDates_ScenarioApartmentA(t *testing.T) {
	existing := []*domain.Booking{booking(1, "2024-03-01", "2024-03-05", domain.BookingStatusConfirmed)}

	got := availability.BuildUnavailableDates(existing, nil)

	assert.Equal(t, []types.DateString{"2024-03-01", "2024-03-02", "2024-03-03", "2024-03-04"}, got.Dates)
	assert.Equal(t, []availability.DateRange{{Start: "2024-03-01", End: "2024-03-05"}}, got.Ranges)
}

func TestBuildUnavailableDates_SortsAndSkipsInactiveAndExcluded(t *testing.T) {
	existing := []*domain.Booking{
		booking(3, "2024-03-10", "2024-03-12", domain.BookingStatusCheckedIn),
		booking(1, "2024-03-01", "2024-03-03", domain.BookingStatusConfirmed),
		booking(2, "2024-03-05", "2024-03-06", domain.BookingStatusCancelled),
		booking(4, "2024-03-20", "2024-03-21", domain.BookingStatusConfirmed),
	}

	got := availability.BuildUnavailableDates(existing, ptr.Ptr(int64(4)))

	assert.Equal(t, []availability.DateRange{
		{Start: "2024-03-01", End: "2024-03-03"},
		{Start: "2024-03-10", End: "2024-03-12"},
	}, got.Ranges)
	assert.Equal(t, []types.DateString{"2024-03-01", "2024-03-02", "2024-03-10", "2024-03-11"}, got.Dates)
}

func TestBuildUnavailableDates_Empty(t *testing.T) {
	got := availability.BuildUnavailableDates(nil, nil)

	assert.NotNil(t, got.Dates)
	assert.NotNil(t, got.Ranges)
	assert.Empty(t, got.Dates)
}

// ---- Engine ----

func TestCheck_ReturnsConflictErrorAndCounts(t *testing.T) {
	conflicts := &countingConflicts{}
	existing := booking(1, "2024-03-01", "2024-03-05", domain.BookingStatusConfirmed)
	existing.GuestName = "Alice"
	engine := newEngine([]*domain.Booking{existing}, conflicts)

	err := engine.Check(context.Background(), availability.OperationCreate, 1, stay("2024-03-04", "2024-03-06"), nil)

	require.ErrorIs(t, err, domain.ErrBookingConflict)
	var conflict *domain.ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, "Alice", conflict.GuestName)
	assert.Equal(t, existing.Stay, conflict.Stay)
	assert.Equal(t, []string{availability.OperationCreate}, conflicts.ops)
}

func TestCheck_ShiftOwnBookingSucceeds(t *testing.T) {
	engine := newEngine([]*domain.Booking{
		booking(1, "2024-03-01", "2024-03-05", domain.BookingStatusConfirmed),
	}, nil)

	err := engine.Check(context.Background(), availability.OperationUpdate, 1, stay("2024-03-02", "2024-03-06"), ptr.Ptr(int64(1)))

	assert.NoError(t, err)
}

func TestFindConflict_RepositoryError(t *testing.T) {
	engine := availability.NewEngine(
		&mockBookingRepo{listActiveFn: func(ctx context.Context, apartmentID int64) ([]*domain.Booking, error) {
			return nil, errors.New("db down")
		}},
		&mockApartmentRepo{},
		nil,
		logger.Nop{},
	)

	_, err := engine.FindConflict(context.Background(), 1, stay("2024-03-01", "2024-03-02"), nil)

	assert.ErrorIs(t, err, availability.ErrInternal)
}

func TestCheckAvailability_ValidatesInput(t *testing.T) {
	engine := newEngine(nil, nil)

	err := engine.CheckAvailability(context.Background(), 1, stay("2024-03-05", "2024-03-05"), nil)
	assert.ErrorIs(t, err, availability.ErrInvalidInput)

	err = engine.CheckAvailability(context.Background(), 0, stay("2024-03-01", "2024-03-05"), nil)
	assert.ErrorIs(t, err, availability.ErrInvalidInput)
}

func TestCheckAvailability_UnknownApartment(t *testing.T) {
	engine := availability.NewEngine(
		&mockBookingRepo{},
		&mockApartmentRepo{getByIDFn: func(ctx context.Context, id int64) (*domain.Apartment, error) {
			return nil, apartmentRepo.ErrApartmentNotFound
		}},
		nil,
		logger.Nop{},
	)

	err := engine.CheckAvailability(context.Background(), 5, stay("2024-03-01", "2024-03-05"), nil)

	assert.ErrorIs(t, err, availability.ErrApartmentNotFound)
}

func TestUnavailableDates_UsesEngineRules(t *testing.T) {
	engine := newEngine([]*domain.Booking{
		booking(1, "2024-03-01", "2024-03-05", domain.BookingStatusConfirmed),
	}, nil)

	got, err := engine.UnavailableDates(context.Background(), 1, nil)

	require.NoError(t, err)
	assert.Len(t, got.Dates, 4)
	require.Len(t, got.Ranges, 1)
	assert.Equal(t, types.DateString("2024-03-05"), got.Ranges[0].End)
}
