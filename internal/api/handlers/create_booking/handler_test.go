package create_booking_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/api/handlers/create_booking"
	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/service/bookings/models"
	createBooking "github.com/m04kA/SMC-RentalService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-RentalService/pkg/logger"
)

type mockUseCase struct {
	got *createBooking.Request
	err error
}

func (m *mockUseCase) Execute(ctx context.Context, req *createBooking.Request) (*models.BookingResponse, error) {
	m.got = req
	if m.err != nil {
		return nil, m.err
	}
	return &models.BookingResponse{ID: 10, ApartmentID: req.ApartmentID, Status: "confirmed"}, nil
}

var _ create_booking.CreateBookingUseCase = (*createBooking.UseCase)(nil)

const body = `{
	"apartmentId": 1,
	"guestName": "Alice",
	"checkIn": "2024-03-01",
	"checkOut": "2024-03-05",
	"numberOfGuests": 2,
	"payment": {"method": "card", "amountPaid": 50}
}`

func post(uc *mockUseCase, payload string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(payload))
	create_booking.NewHandler(uc, logger.Nop{}).Handle(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	uc := &mockUseCase{}

	rec := post(uc, body)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":10`)
	require.NotNil(t, uc.got)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), uc.got.CheckIn)
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), uc.got.CheckOut)
	require.NotNil(t, uc.got.PaymentMethod)
	assert.Equal(t, domain.PaymentMethodCard, *uc.got.PaymentMethod)
	assert.Nil(t, uc.got.PaymentStatus)
	assert.Equal(t, 50.0, uc.got.AmountPaid)
}

func TestHandle_Conflict(t *testing.T) {
	uc := &mockUseCase{err: domain.NewConflictError(&domain.Booking{
		ID:        1,
		GuestName: "Bob",
		Stay: domain.StayInterval{
			CheckIn:  time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			CheckOut: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		},
	})}

	rec := post(uc, body)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp handlers.ConflictResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "Bob", resp.Conflict.GuestName)
}

func TestHandle_Errors(t *testing.T) {
	cases := []struct {
		name    string
		payload string
		err     error
		status  int
	}{
		{"broken json", `{`, nil, http.StatusBadRequest},
		{"bad date", strings.Replace(body, "2024-03-01", "03/01/2024", 1), nil, http.StatusBadRequest},
		{"apartment not found", body, createBooking.ErrApartmentNotFound, http.StatusNotFound},
		{"too many guests", body, createBooking.ErrTooManyGuests, http.StatusBadRequest},
		{"invalid input", body, createBooking.ErrInvalidInput, http.StatusBadRequest},
		{"internal", body, errors.New("db"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := post(&mockUseCase{err: tc.err}, tc.payload)
			assert.Equal(t, tc.status, rec.Code)
		})
	}
}
