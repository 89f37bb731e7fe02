package bookings_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	apartmentRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/apartment"
	bookingRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-RentalService/internal/service/bookings"
	"github.com/m04kA/SMC-RentalService/internal/service/bookings/models"
	"github.com/m04kA/SMC-RentalService/pkg/logger"
	"github.com/m04kA/SMC-RentalService/pkg/ptr"
)

// ---- mocks ----

type mockBookingRepo struct {
	bookings map[int64]*domain.Booking
	payments []domain.Payment
}

func (m *mockBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	b, ok := m.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	cp := *b
	return &cp, nil
}

func (m *mockBookingRepo) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range m.bookings {
		if filter.ApartmentID != nil && b.ApartmentID != *filter.ApartmentID {
			continue
		}
		cp := *b
		out = append(out, &cp)
	}
	return out, nil
}

func (m *mockBookingRepo) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus, changedAt time.Time) error {
	b, ok := m.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.Status = status
	return nil
}

func (m *mockBookingRepo) Cancel(ctx context.Context, id int64, status domain.BookingStatus, reason string) error {
	b, ok := m.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.Status = status
	if reason != "" {
		b.CancellationReason = &reason
	}
	return nil
}

func (m *mockBookingRepo) UpdatePayment(ctx context.Context, id int64, payment domain.Payment) error {
	b, ok := m.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.Payment = payment
	m.payments = append(m.payments, payment)
	return nil
}

func (m *mockBookingRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := m.bookings[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	delete(m.bookings, id)
	return nil
}

type mockApartmentRepo struct {
	apartments map[int64]*domain.Apartment
}

func (m *mockApartmentRepo) GetByID(ctx context.Context, id int64) (*domain.Apartment, error) {
	a, ok := m.apartments[id]
	if !ok {
		return nil, apartmentRepo.ErrApartmentNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *mockApartmentRepo) GetByIDs(ctx context.Context, ids []int64) ([]*domain.Apartment, error) {
	var out []*domain.Apartment
	for _, id := range ids {
		if a, ok := m.apartments[id]; ok {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockApartmentRepo) UpdateOccupancy(ctx context.Context, id int64, status domain.ApartmentStatus, currentTenantID *int64) error {
	a := m.apartments[id]
	a.Status = status
	a.CurrentTenantID = currentTenantID
	return nil
}

type recordingNotifier struct {
	checkedIn, checkedOut int
}

func (n *recordingNotifier) CheckedIn(ctx context.Context, b *domain.Booking)  { n.checkedIn++ }
func (n *recordingNotifier) CheckedOut(ctx context.Context, b *domain.Booking) { n.checkedOut++ }

type directTx struct{}

func (directTx) Do(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

var (
	_ bookings.BookingRepository   = (*mockBookingRepo)(nil)
	_ bookings.ApartmentRepository = (*mockApartmentRepo)(nil)
	_ bookings.Notifier            = (*recordingNotifier)(nil)
	_ bookings.TransactionManager  = directTx{}
	_ bookings.TimeProvider        = fixedTime{}
)

func day(s string) time.Time {
	t, err := time.Parse(domain.DateFormat, s)
	if err != nil {
		panic(err)
	}
	return t
}

type fixture struct {
	bookings   *mockBookingRepo
	apartments *mockApartmentRepo
	notifier   *recordingNotifier
	svc        *bookings.Service
}

func newFixture(now time.Time, status domain.BookingStatus, apartmentStatus domain.ApartmentStatus) *fixture {
	f := &fixture{
		bookings: &mockBookingRepo{bookings: map[int64]*domain.Booking{
			1: {
				ID:          1,
				ApartmentID: 1,
				GuestName:   "Alice",
				Stay:        domain.StayInterval{CheckIn: day("2024-03-01"), CheckOut: day("2024-03-05")},
				Status:      status,
			},
		}},
		apartments: &mockApartmentRepo{apartments: map[int64]*domain.Apartment{
			1: {ID: 1, Name: "Sea View", Status: apartmentStatus},
		}},
		notifier: &recordingNotifier{},
	}
	f.svc = bookings.NewService(f.bookings, f.apartments, f.notifier, directTx{}, logger.Nop{}).
		WithTimeProvider(fixedTime{t: now})
	return f
}

// ---- tests ----

func TestCheckIn_OnCheckInDay(t *testing.T) {
	f := newFixture(time.Date(2024, 3, 1, 14, 0, 0, 0, time.UTC), domain.BookingStatusConfirmed, domain.ApartmentStatusAvailable)

	resp, err := f.svc.CheckIn(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, "checked_in", resp.Status)
	require.NotNil(t, resp.CheckedInAt)
	assert.Equal(t, domain.ApartmentStatusOccupied, f.apartments.apartments[1].Status)
	assert.Equal(t, int64(1), *f.apartments.apartments[1].CurrentTenantID)
	assert.Equal(t, 1, f.notifier.checkedIn)
}

func TestCheckIn_BeforeCheckInDayIsInvalidTransition(t *testing.T) {
	f := newFixture(time.Date(2024, 2, 29, 23, 0, 0, 0, time.UTC), domain.BookingStatusConfirmed, domain.ApartmentStatusAvailable)

	_, err := f.svc.CheckIn(context.Background(), 1)

	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, domain.BookingStatusConfirmed, f.bookings.bookings[1].Status)
	assert.Zero(t, f.notifier.checkedIn)
}

func TestCheckIn_CancelledIsInvalidTransition(t *testing.T) {
	f := newFixture(day("2024-03-02"), domain.BookingStatusCancelled, domain.ApartmentStatusAvailable)

	_, err := f.svc.CheckIn(context.Background(), 1)

	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestCheckOut_ReleasesApartment(t *testing.T) {
	f := newFixture(day("2024-03-05"), domain.BookingStatusCheckedIn, domain.ApartmentStatusOccupied)
	f.apartments.apartments[1].CurrentTenantID = ptr.Ptr(int64(1))

	resp, err := f.svc.CheckOut(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, "checked_out", resp.Status)
	assert.Equal(t, domain.ApartmentStatusAvailable, f.apartments.apartments[1].Status)
	assert.Nil(t, f.apartments.apartments[1].CurrentTenantID)
	assert.Equal(t, 1, f.notifier.checkedOut)
}

func TestCheckOut_MaintenanceIsKept(t *testing.T) {
	f := newFixture(day("2024-03-05"), domain.BookingStatusCheckedIn, domain.ApartmentStatusMaintenance)
	f.apartments.apartments[1].CurrentTenantID = ptr.Ptr(int64(1))

	_, err := f.svc.CheckOut(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, domain.ApartmentStatusMaintenance, f.apartments.apartments[1].Status)
	assert.Nil(t, f.apartments.apartments[1].CurrentTenantID)
}

func TestCheckOut_OtherTenantIsKept(t *testing.T) {
	f := newFixture(day("2024-03-05"), domain.BookingStatusCheckedIn, domain.ApartmentStatusOccupied)
	f.apartments.apartments[1].CurrentTenantID = ptr.Ptr(int64(2))

	_, err := f.svc.CheckOut(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, int64(2), *f.apartments.apartments[1].CurrentTenantID)
	assert.Equal(t, domain.ApartmentStatusOccupied, f.apartments.apartments[1].Status)
}

func TestCheckOut_ConfirmedIsInvalidTransition(t *testing.T) {
	f := newFixture(day("2024-03-05"), domain.BookingStatusConfirmed, domain.ApartmentStatusAvailable)

	_, err := f.svc.CheckOut(context.Background(), 1)

	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestCancelAndNoShow(t *testing.T) {
	f := newFixture(day("2024-03-01"), domain.BookingStatusConfirmed, domain.ApartmentStatusAvailable)
	ctx := context.Background()

	resp, err := f.svc.Cancel(ctx, 1, &models.CancelBookingRequest{Reason: "plans changed"})
	require.NoError(t, err)
	assert.Equal(t, "cancelled", resp.Status)
	assert.Equal(t, "plans changed", *resp.CancellationReason)

	// Из терминального статуса выхода нет
	_, err = f.svc.MarkNoShow(ctx, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = f.svc.Cancel(ctx, 42, &models.CancelBookingRequest{})
	assert.ErrorIs(t, err, bookings.ErrBookingNotFound)
}

func TestUpdatePayment(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	f := newFixture(now, domain.BookingStatusConfirmed, domain.ApartmentStatusAvailable)

	resp, err := f.svc.UpdatePayment(context.Background(), 1, &models.UpdatePaymentRequest{
		Method:     "card",
		Status:     "paid",
		AmountPaid: 400,
	})

	require.NoError(t, err)
	assert.Equal(t, "paid", resp.Payment.Status)
	require.NotNil(t, resp.Payment.PaidAt)
	assert.Equal(t, now, *resp.Payment.PaidAt)
	require.NotNil(t, resp.Payment.Reference)
	require.NotNil(t, resp.Apartment)

	_, err = f.svc.UpdatePayment(context.Background(), 1, &models.UpdatePaymentRequest{Method: "gold", Status: "paid"})
	assert.ErrorIs(t, err, bookings.ErrInvalidInput)
}

func TestListAttachesApartments(t *testing.T) {
	f := newFixture(day("2024-03-01"), domain.BookingStatusConfirmed, domain.ApartmentStatusAvailable)

	resp, err := f.svc.List(context.Background(), &models.ListBookingsRequest{})

	require.NoError(t, err)
	require.Equal(t, 1, resp.Total)
	require.NotNil(t, resp.Bookings[0].Apartment)
	assert.Equal(t, "Sea View", resp.Bookings[0].Apartment.Name)

	_, err = f.svc.List(context.Background(), &models.ListBookingsRequest{Status: ptr.Ptr("lost")})
	assert.ErrorIs(t, err, bookings.ErrInvalidInput)
}

func TestDelete_CheckedInReleasesApartment(t *testing.T) {
	f := newFixture(day("2024-03-02"), domain.BookingStatusCheckedIn, domain.ApartmentStatusOccupied)
	f.apartments.apartments[1].CurrentTenantID = ptr.Ptr(int64(1))

	require.NoError(t, f.svc.Delete(context.Background(), 1))

	assert.Empty(t, f.bookings.bookings)
	assert.Nil(t, f.apartments.apartments[1].CurrentTenantID)
	assert.ErrorIs(t, f.svc.Delete(context.Background(), 1), bookings.ErrBookingNotFound)
}
