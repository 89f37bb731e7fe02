package update_booking_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	apartmentRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/apartment"
	bookingRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-RentalService/internal/service/availability"
	updateBooking "github.com/m04kA/SMC-RentalService/internal/usecase/update_booking"
	"github.com/m04kA/SMC-RentalService/pkg/logger"
	"github.com/m04kA/SMC-RentalService/pkg/ptr"
)

// ---- fakes ----

type memStore struct {
	mu       sync.Mutex
	bookings map[int64]*domain.Booking
	updateFn func(b *domain.Booking) error
}

func (s *memStore) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	cp := *b
	return &cp, nil
}

func (s *memStore) ListActiveByApartment(ctx context.Context, apartmentID int64) ([]*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.Booking
	for _, b := range s.bookings {
		if b.ApartmentID == apartmentID && b.IsActive() {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *memStore) Update(ctx context.Context, b *domain.Booking) error {
	if s.updateFn != nil {
		if err := s.updateFn(b); err != nil {
			return err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *b
	s.bookings[b.ID] = &cp
	return nil
}

type mockApartmentRepo struct{}

func (mockApartmentRepo) GetByID(ctx context.Context, id int64) (*domain.Apartment, error) {
	switch id {
	case 1:
		return &domain.Apartment{ID: 1, Name: "Sea View", MaxGuests: 4, PricePerNight: 100}, nil
	case 2:
		return &domain.Apartment{ID: 2, Name: "Loft", MaxGuests: 2, PricePerNight: 150}, nil
	}
	return nil, apartmentRepo.ErrApartmentNotFound
}

type directTx struct{}

func (directTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type errTx struct{ err error }

func (tx errTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return tx.err
}

var (
	_ updateBooking.BookingRepository   = (*memStore)(nil)
	_ updateBooking.ApartmentRepository = mockApartmentRepo{}
	_ updateBooking.TransactionManager  = directTx{}
	_ updateBooking.AvailabilityChecker = (*availability.Engine)(nil)
)

func day(s string) time.Time {
	t, err := time.Parse(domain.DateFormat, s)
	if err != nil {
		panic(err)
	}
	return t
}

func booking(id, apartmentID int64, checkIn, checkOut string, status domain.BookingStatus) *domain.Booking {
	b := &domain.Booking{
		ID:             id,
		ApartmentID:    apartmentID,
		GuestName:      "guest",
		Stay:           domain.StayInterval{CheckIn: day(checkIn), CheckOut: day(checkOut)},
		NumberOfGuests: 2,
		PricePerNight:  100,
		Status:         status,
	}
	b.RecalculateNights()
	b.RecalculateTotal()
	return b
}

func newUseCase(store *memStore) *updateBooking.UseCase {
	engine := availability.NewEngine(store, mockApartmentRepo{}, nil, logger.Nop{})
	return updateBooking.NewUseCase(store, mockApartmentRepo{}, engine, directTx{}, logger.Nop{})
}

func newStore(bookings ...*domain.Booking) *memStore {
	s := &memStore{bookings: make(map[int64]*domain.Booking)}
	for _, b := range bookings {
		s.bookings[b.ID] = b
	}
	return s
}

// ---- tests ----

func TestExecute_ShiftOwnBookingByOneDay(t *testing.T) {
	store := newStore(booking(1, 1, "2024-03-01", "2024-03-05", domain.BookingStatusConfirmed))
	uc := newUseCase(store)

	resp, err := uc.Execute(context.Background(), &updateBooking.Request{
		BookingID: 1,
		CheckIn:   ptr.Ptr(day("2024-03-02")),
		CheckOut:  ptr.Ptr(day("2024-03-06")),
	})

	require.NoError(t, err)
	assert.Equal(t, "2024-03-02", resp.CheckIn)
	assert.Equal(t, "2024-03-06", resp.CheckOut)
	assert.Equal(t, 4, resp.NumberOfNights)
	assert.Equal(t, 400.0, resp.TotalAmount)
}

func TestExecute_ExtendIntoNeighbourConflicts(t *testing.T) {
	store := newStore(
		booking(1, 1, "2024-03-01", "2024-03-05", domain.BookingStatusConfirmed),
		booking(2, 1, "2024-03-05", "2024-03-08", domain.BookingStatusConfirmed),
	)
	uc := newUseCase(store)

	_, err := uc.Execute(context.Background(), &updateBooking.Request{
		BookingID: 1,
		CheckOut:  ptr.Ptr(day("2024-03-06")),
	})

	require.ErrorIs(t, err, domain.ErrBookingConflict)
	var conflict *domain.ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, int64(2), conflict.BookingID)

	// Бронь не изменилась
	assert.Equal(t, day("2024-03-05"), store.bookings[1].Stay.CheckOut)
}

func TestExecute_MoveToOtherApartmentChecksTarget(t *testing.T) {
	store := newStore(
		booking(1, 1, "2024-03-01", "2024-03-05", domain.BookingStatusConfirmed),
		booking(2, 2, "2024-03-03", "2024-03-04", domain.BookingStatusCheckedIn),
	)
	uc := newUseCase(store)

	_, err := uc.Execute(context.Background(), &updateBooking.Request{
		BookingID:   1,
		ApartmentID: ptr.Ptr(int64(2)),
	})

	assert.ErrorIs(t, err, domain.ErrBookingConflict)
	assert.Equal(t, int64(1), store.bookings[1].ApartmentID)
}

func TestExecute_ManualTotalIsKept(t *testing.T) {
	b := booking(1, 1, "2024-03-01", "2024-03-05", domain.BookingStatusConfirmed)
	b.TotalAmount = 350
	store := newStore(b)
	uc := newUseCase(store)

	resp, err := uc.Execute(context.Background(), &updateBooking.Request{
		BookingID: 1,
		CheckOut:  ptr.Ptr(day("2024-03-06")),
	})

	require.NoError(t, err)
	assert.Equal(t, 5, resp.NumberOfNights)
	assert.Equal(t, 350.0, resp.TotalAmount)
}

func TestExecute_ExplicitTotalWins(t *testing.T) {
	store := newStore(booking(1, 1, "2024-03-01", "2024-03-05", domain.BookingStatusConfirmed))
	uc := newUseCase(store)

	resp, err := uc.Execute(context.Background(), &updateBooking.Request{
		BookingID:     1,
		PricePerNight: ptr.Ptr(120.0),
		TotalAmount:   ptr.Ptr(300.0),
	})

	require.NoError(t, err)
	assert.Equal(t, 120.0, resp.PricePerNight)
	assert.Equal(t, 300.0, resp.TotalAmount)
}

func TestExecute_InvalidResultingInterval(t *testing.T) {
	store := newStore(booking(1, 1, "2024-03-01", "2024-03-05", domain.BookingStatusConfirmed))
	uc := newUseCase(store)

	_, err := uc.Execute(context.Background(), &updateBooking.Request{
		BookingID: 1,
		CheckIn:   ptr.Ptr(day("2024-03-05")),
	})

	assert.ErrorIs(t, err, updateBooking.ErrInvalidInput)
}

func TestExecute_TerminalBookingCannotBeRescheduled(t *testing.T) {
	store := newStore(booking(1, 1, "2024-03-01", "2024-03-05", domain.BookingStatusCancelled))
	uc := newUseCase(store)

	_, err := uc.Execute(context.Background(), &updateBooking.Request{
		BookingID: 1,
		CheckOut:  ptr.Ptr(day("2024-03-06")),
	})
	assert.ErrorIs(t, err, updateBooking.ErrInvalidInput)

	// Заметки менять можно
	resp, err := uc.Execute(context.Background(), &updateBooking.Request{
		BookingID: 1,
		Notes:     ptr.Ptr("refund issued"),
	})
	require.NoError(t, err)
	assert.Equal(t, "refund issued", *resp.Notes)
}

func TestExecute_CheckedInCannotChangeApartment(t *testing.T) {
	store := newStore(booking(1, 1, "2024-03-01", "2024-03-05", domain.BookingStatusCheckedIn))
	uc := newUseCase(store)

	_, err := uc.Execute(context.Background(), &updateBooking.Request{
		BookingID:   1,
		ApartmentID: ptr.Ptr(int64(2)),
	})

	assert.ErrorIs(t, err, updateBooking.ErrInvalidInput)
}

func TestExecute_Errors(t *testing.T) {
	store := newStore(booking(1, 1, "2024-03-01", "2024-03-05", domain.BookingStatusConfirmed))
	uc := newUseCase(store)
	ctx := context.Background()

	_, err := uc.Execute(ctx, &updateBooking.Request{BookingID: 42})
	assert.ErrorIs(t, err, updateBooking.ErrBookingNotFound)

	_, err = uc.Execute(ctx, &updateBooking.Request{BookingID: 1, ApartmentID: ptr.Ptr(int64(9))})
	assert.ErrorIs(t, err, updateBooking.ErrApartmentNotFound)

	_, err = uc.Execute(ctx, &updateBooking.Request{BookingID: 1, NumberOfGuests: ptr.Ptr(5)})
	assert.ErrorIs(t, err, updateBooking.ErrTooManyGuests)

	_, err = uc.Execute(ctx, &updateBooking.Request{BookingID: 1, GuestName: ptr.Ptr(" ")})
	assert.ErrorIs(t, err, updateBooking.ErrInvalidInput)
}

func TestExecute_StorageOverlapIsConflict(t *testing.T) {
	store := newStore(booking(1, 1, "2024-03-01", "2024-03-05", domain.BookingStatusConfirmed))
	store.updateFn = func(b *domain.Booking) error { return bookingRepo.ErrOverlap }
	uc := newUseCase(store)

	_, err := uc.Execute(context.Background(), &updateBooking.Request{
		BookingID: 1,
		CheckOut:  ptr.Ptr(day("2024-03-06")),
	})

	assert.ErrorIs(t, err, domain.ErrBookingConflict)
	assert.False(t, errors.As(err, new(*domain.ConflictError)))
}

func TestExecute_StorageOverlapReportsCommittedBooking(t *testing.T) {
	store := newStore(booking(1, 1, "2024-03-01", "2024-03-05", domain.BookingStatusConfirmed))
	// Конкурент занял 5-е число между проверкой и записью
	store.updateFn = func(b *domain.Booking) error {
		store.mu.Lock()
		store.bookings[2] = booking(2, 1, "2024-03-05", "2024-03-08", domain.BookingStatusConfirmed)
		store.mu.Unlock()
		return bookingRepo.ErrOverlap
	}
	uc := newUseCase(store)

	_, err := uc.Execute(context.Background(), &updateBooking.Request{
		BookingID: 1,
		CheckOut:  ptr.Ptr(day("2024-03-06")),
	})

	require.ErrorIs(t, err, domain.ErrBookingConflict)
	var conflict *domain.ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, int64(2), conflict.BookingID)
	assert.Equal(t, day("2024-03-05"), conflict.Stay.CheckIn)
}

func TestExecute_SerializationFailureReportsCommittedBooking(t *testing.T) {
	store := newStore(
		booking(1, 1, "2024-03-01", "2024-03-05", domain.BookingStatusConfirmed),
		booking(2, 1, "2024-03-05", "2024-03-08", domain.BookingStatusConfirmed),
	)
	engine := availability.NewEngine(store, mockApartmentRepo{}, nil, logger.Nop{})
	uc := updateBooking.NewUseCase(store, mockApartmentRepo{}, engine, errTx{err: &pq.Error{Code: "40001"}}, logger.Nop{})

	_, err := uc.Execute(context.Background(), &updateBooking.Request{
		BookingID: 1,
		CheckOut:  ptr.Ptr(day("2024-03-06")),
	})

	require.ErrorIs(t, err, domain.ErrBookingConflict)
	var conflict *domain.ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, int64(2), conflict.BookingID)
}
