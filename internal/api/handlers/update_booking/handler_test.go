package update_booking_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers/update_booking"
	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/service/bookings/models"
	updateBooking "github.com/m04kA/SMC-RentalService/internal/usecase/update_booking"
	"github.com/m04kA/SMC-RentalService/pkg/logger"
)

type mockUseCase struct {
	got *updateBooking.Request
	err error
}

func (m *mockUseCase) Execute(ctx context.Context, req *updateBooking.Request) (*models.BookingResponse, error) {
	m.got = req
	if m.err != nil {
		return nil, m.err
	}
	return &models.BookingResponse{ID: req.BookingID}, nil
}

var _ update_booking.UpdateBookingUseCase = (*updateBooking.UseCase)(nil)

func put(uc *mockUseCase, id, payload string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/bookings/{bookingId}", update_booking.NewHandler(uc, logger.Nop{}).Handle).Methods(http.MethodPut)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/bookings/"+id, strings.NewReader(payload)))
	return rec
}

func TestHandle_PartialUpdate(t *testing.T) {
	uc := &mockUseCase{}

	rec := put(uc, "4", `{"checkOut":"2024-03-07","notes":"late arrival"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(4), uc.got.BookingID)
	assert.Nil(t, uc.got.CheckIn)
	require.NotNil(t, uc.got.CheckOut)
	assert.Equal(t, time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC), *uc.got.CheckOut)
	assert.Nil(t, uc.got.ApartmentID)
	assert.Equal(t, "late arrival", *uc.got.Notes)
}

func TestHandle_Errors(t *testing.T) {
	cases := []struct {
		name    string
		id      string
		payload string
		err     error
		status  int
	}{
		{"bad id", "x", `{}`, nil, http.StatusBadRequest},
		{"bad body", "1", `[`, nil, http.StatusBadRequest},
		{"bad date", "1", `{"checkIn":"tomorrow"}`, nil, http.StatusBadRequest},
		{"conflict", "1", `{}`, domain.ErrBookingConflict, http.StatusBadRequest},
		{"not found", "1", `{}`, updateBooking.ErrBookingNotFound, http.StatusNotFound},
		{"apartment not found", "1", `{}`, updateBooking.ErrApartmentNotFound, http.StatusNotFound},
		{"too many guests", "1", `{}`, updateBooking.ErrTooManyGuests, http.StatusBadRequest},
		{"invalid input", "1", `{}`, updateBooking.ErrInvalidInput, http.StatusBadRequest},
		{"internal", "1", `{}`, errors.New("db"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.status, put(&mockUseCase{err: tc.err}, tc.id, tc.payload).Code)
		})
	}
}
