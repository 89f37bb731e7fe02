package delete_booking_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers/delete_booking"
	"github.com/m04kA/SMC-RentalService/internal/api/middleware"
	"github.com/m04kA/SMC-RentalService/internal/service/bookings"
	"github.com/m04kA/SMC-RentalService/pkg/logger"
)

type mockService struct {
	deleted []int64
	err     error
}

func (m *mockService) Delete(ctx context.Context, id int64) error {
	if m.err != nil {
		return m.err
	}
	m.deleted = append(m.deleted, id)
	return nil
}

var _ delete_booking.BookingService = (*bookings.Service)(nil)

func del(svc *mockService, id string, withUser bool) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	protected := r.PathPrefix("/").Subrouter()
	if withUser {
		protected.Use(middleware.Auth)
	}
	protected.HandleFunc("/bookings/{bookingId}", delete_booking.NewHandler(svc, logger.Nop{}).Handle)

	req := httptest.NewRequest(http.MethodDelete, "/bookings/"+id, nil)
	req.Header.Set(middleware.UserIDHeader, "1")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle(t *testing.T) {
	svc := &mockService{}

	rec := del(svc, "8", true)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []int64{8}, svc.deleted)
}

func TestHandle_Errors(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, del(&mockService{}, "x", true).Code)
	assert.Equal(t, http.StatusUnauthorized, del(&mockService{}, "8", false).Code)
	assert.Equal(t, http.StatusNotFound, del(&mockService{err: bookings.ErrBookingNotFound}, "8", true).Code)
	assert.Equal(t, http.StatusInternalServerError, del(&mockService{err: errors.New("db")}, "8", true).Code)
}
