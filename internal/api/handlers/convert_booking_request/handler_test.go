package convert_booking_request_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers/convert_booking_request"
	"github.com/m04kA/SMC-RentalService/internal/domain"
	requestModels "github.com/m04kA/SMC-RentalService/internal/service/booking_requests/models"
	bookingModels "github.com/m04kA/SMC-RentalService/internal/service/bookings/models"
	convertRequest "github.com/m04kA/SMC-RentalService/internal/usecase/convert_booking_request"
	"github.com/m04kA/SMC-RentalService/pkg/logger"
)

type mockUseCase struct {
	got *convertRequest.Request
	err error
}

func (m *mockUseCase) Execute(ctx context.Context, req *convertRequest.Request) (*convertRequest.Response, error) {
	m.got = req
	if m.err != nil {
		return nil, m.err
	}
	return &convertRequest.Response{
		Booking: &bookingModels.BookingResponse{ID: 11, Status: "confirmed"},
		Request: &requestModels.BookingRequestResponse{ID: req.RequestID, Status: "converted"},
	}, nil
}

var _ convert_booking_request.ConvertUseCase = (*convertRequest.UseCase)(nil)

func post(uc *mockUseCase, id, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/booking-requests/{requestId}/convert", convert_booking_request.NewHandler(uc, logger.Nop{}).Handle)

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(http.MethodPost, "/booking-requests/"+id+"/convert", nil)
	} else {
		req = httptest.NewRequest(http.MethodPost, "/booking-requests/"+id+"/convert", strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_ReturnsBookingAndRequest(t *testing.T) {
	uc := &mockUseCase{}

	rec := post(uc, "5", `{"paymentMethod":"bank_transfer","amountPaid":100}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"booking":{"id":11`)
	assert.Contains(t, rec.Body.String(), `"status":"converted"`)
	assert.Equal(t, int64(5), uc.got.RequestID)
	require.NotNil(t, uc.got.PaymentMethod)
	assert.Equal(t, domain.PaymentMethodBankTransfer, *uc.got.PaymentMethod)
}

func TestHandle_EmptyBody(t *testing.T) {
	uc := &mockUseCase{}

	rec := post(uc, "5", "")

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Nil(t, uc.got.PaymentMethod)
}

func TestHandle_Errors(t *testing.T) {
	transition := domain.TransitionError("booking request", domain.RequestStatusPending, domain.RequestStatusConverted)

	cases := []struct {
		name   string
		id     string
		body   string
		err    error
		status int
	}{
		{"bad id", "x", "", nil, http.StatusBadRequest},
		{"bad body", "5", "{", nil, http.StatusBadRequest},
		{"conflict", "5", "", domain.ErrBookingConflict, http.StatusBadRequest},
		{"not approved", "5", "", transition, http.StatusBadRequest},
		{"not found", "5", "", convertRequest.ErrRequestNotFound, http.StatusNotFound},
		{"apartment gone", "5", "", convertRequest.ErrApartmentNotFound, http.StatusNotFound},
		{"invalid", "5", "", convertRequest.ErrInvalidInput, http.StatusBadRequest},
		{"internal", "5", "", errors.New("db"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.status, post(&mockUseCase{err: tc.err}, tc.id, tc.body).Code)
		})
	}
}
