package change_booking_status

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/service/bookings"
	"github.com/m04kA/SMC-RentalService/internal/service/bookings/models"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "бронирование не найдено"
	msgInvalidTransition  = "недопустимая смена статуса бронирования"
	msgInvalidInput       = "некорректные данные запроса"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// CheckIn PATCH /api/v1/bookings/{bookingId}/check-in
func (h *Handler) CheckIn(w http.ResponseWriter, r *http.Request) {
	const route = "PATCH /bookings/{id}/check-in"

	bookingID, ok := h.bookingID(w, r, route)
	if !ok {
		return
	}

	result, err := h.service.CheckIn(r.Context(), bookingID)
	h.respond(w, route, bookingID, result, err)
}

// CheckOut PATCH /api/v1/bookings/{bookingId}/check-out
func (h *Handler) CheckOut(w http.ResponseWriter, r *http.Request) {
	const route = "PATCH /bookings/{id}/check-out"

	bookingID, ok := h.bookingID(w, r, route)
	if !ok {
		return
	}

	result, err := h.service.CheckOut(r.Context(), bookingID)
	h.respond(w, route, bookingID, result, err)
}

// Cancel PATCH /api/v1/bookings/{bookingId}/cancel
// Тело {"reason": "..."} необязательно
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	const route = "PATCH /bookings/{id}/cancel"

	bookingID, ok := h.bookingID(w, r, route)
	if !ok {
		return
	}

	var req CancelBookingRequest
	if r.ContentLength != 0 {
		if err := handlers.DecodeJSON(r, &req); err != nil {
			h.logger.Warn("%s - Invalid request body: %v", route, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}
	}

	result, err := h.service.Cancel(r.Context(), bookingID, req.ToServiceRequest())
	h.respond(w, route, bookingID, result, err)
}

// NoShow PATCH /api/v1/bookings/{bookingId}/no-show
func (h *Handler) NoShow(w http.ResponseWriter, r *http.Request) {
	const route = "PATCH /bookings/{id}/no-show"

	bookingID, ok := h.bookingID(w, r, route)
	if !ok {
		return
	}

	result, err := h.service.MarkNoShow(r.Context(), bookingID)
	h.respond(w, route, bookingID, result, err)
}

func (h *Handler) bookingID(w http.ResponseWriter, r *http.Request, route string) (int64, bool) {
	bookingID, err := handlers.PathID(r, "bookingId")
	if err != nil {
		h.logger.Warn("%s - Invalid booking ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return 0, false
	}
	return bookingID, true
}

func (h *Handler) respond(w http.ResponseWriter, route string, bookingID int64, result *models.BookingResponse, err error) {
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("%s - Booking not found: booking_id=%d", route, bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, domain.ErrInvalidTransition):
			h.logger.Warn("%s - Invalid transition: booking_id=%d, error=%v", route, bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidTransition)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("%s - Invalid input: booking_id=%d, error=%v", route, bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("%s - Failed to change status: booking_id=%d, error=%v", route, bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("%s - Status changed successfully: booking_id=%d, status=%s", route, bookingID, result.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}
