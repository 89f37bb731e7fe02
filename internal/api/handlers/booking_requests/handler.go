package booking_requests

import (
	"context"
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/domain"
	requestsService "github.com/m04kA/SMC-RentalService/internal/service/booking_requests"
	"github.com/m04kA/SMC-RentalService/internal/service/booking_requests/models"
)

const (
	msgInvalidRequestID   = "некорректный ID заявки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidParams      = "некорректные параметры запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgNotFound           = "заявка на бронирование не найдена"
	msgApartmentNotFound  = "квартира не найдена"
	msgTooManyGuests      = "количество гостей превышает вместимость квартиры"
	msgConflict           = "квартира уже забронирована на выбранные даты"
	msgInvalidTransition  = "недопустимая смена статуса заявки"
	msgInvalidInput       = "некорректные данные заявки"
)

type Handler struct {
	service BookingRequestService
	logger  Logger
}

func NewHandler(service BookingRequestService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Create POST /api/v1/booking-requests (публичный маршрут)
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	const route = "POST /booking-requests"

	var req CreateBookingRequestRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest()
	if err != nil {
		h.logger.Warn("%s - Failed to parse dates: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.Create(r.Context(), serviceReq)
	if err != nil {
		h.respondError(w, route, req.ApartmentID, err)
		return
	}

	h.logger.Info("%s - Booking request created: request_id=%d, apartment_id=%d", route, result.ID, result.ApartmentID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// List GET /api/v1/booking-requests
// Query params: apartmentId, status (опционально)
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	const route = "GET /booking-requests"

	serviceReq, err := ToListRequest(r.URL.Query())
	if err != nil {
		h.logger.Warn("%s - Invalid parameters: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.List(r.Context(), serviceReq)
	if err != nil {
		h.respondError(w, route, 0, err)
		return
	}

	h.logger.Info("%s - Booking requests retrieved: count=%d", route, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Get GET /api/v1/booking-requests/{requestId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	const route = "GET /booking-requests/{id}"

	requestID, ok := h.requestID(w, r, route)
	if !ok {
		return
	}

	result, err := h.service.GetByID(r.Context(), requestID)
	h.respond(w, route, requestID, result, err)
}

// Approve PATCH /api/v1/booking-requests/{requestId}/approve
func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, "PATCH /booking-requests/{id}/approve", h.service.Approve)
}

// Reject PATCH /api/v1/booking-requests/{requestId}/reject
func (h *Handler) Reject(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, "PATCH /booking-requests/{id}/reject", h.service.Reject)
}

// Cancel PATCH /api/v1/booking-requests/{requestId}/cancel
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, "PATCH /booking-requests/{id}/cancel", h.service.Cancel)
}

// AddCommunication POST /api/v1/booking-requests/{requestId}/communications
func (h *Handler) AddCommunication(w http.ResponseWriter, r *http.Request) {
	const route = "POST /booking-requests/{id}/communications"

	requestID, ok := h.requestID(w, r, route)
	if !ok {
		return
	}

	var req models.AddCommunicationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.AddCommunication(r.Context(), requestID, &req)
	if err != nil {
		h.respondError(w, route, requestID, err)
		return
	}

	h.logger.Info("%s - Communication added: request_id=%d, channel=%s", route, requestID, req.Channel)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// Delete DELETE /api/v1/booking-requests/{requestId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	const route = "DELETE /booking-requests/{id}"

	requestID, ok := h.requestID(w, r, route)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), requestID); err != nil {
		h.respondError(w, route, requestID, err)
		return
	}

	h.logger.Info("%s - Booking request deleted: request_id=%d", route, requestID)
	handlers.RespondNoContent(w)
}

type reviewFunc func(ctx context.Context, id int64, req *models.ReviewRequest) (*models.BookingRequestResponse, error)

// review общий обработчик решений администратора, тело {"adminNotes": "..."} необязательно
func (h *Handler) review(w http.ResponseWriter, r *http.Request, route string, fn reviewFunc) {
	requestID, ok := h.requestID(w, r, route)
	if !ok {
		return
	}

	var req models.ReviewRequest
	if r.ContentLength != 0 {
		if err := handlers.DecodeJSON(r, &req); err != nil {
			h.logger.Warn("%s - Invalid request body: %v", route, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}
	}

	result, err := fn(r.Context(), requestID, &req)
	h.respond(w, route, requestID, result, err)
}

func (h *Handler) requestID(w http.ResponseWriter, r *http.Request, route string) (int64, bool) {
	requestID, err := handlers.PathID(r, "requestId")
	if err != nil {
		h.logger.Warn("%s - Invalid request ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestID)
		return 0, false
	}
	return requestID, true
}

func (h *Handler) respond(w http.ResponseWriter, route string, id int64, result *models.BookingRequestResponse, err error) {
	if err != nil {
		h.respondError(w, route, id, err)
		return
	}

	h.logger.Info("%s - Success: request_id=%d, status=%s", route, id, result.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, id int64, err error) {
	switch {
	case errors.Is(err, domain.ErrBookingConflict):
		h.logger.Warn("%s - Dates taken: id=%d, error=%v", route, id, err)
		handlers.RespondConflict(w, msgConflict, err)

	case errors.Is(err, requestsService.ErrRequestNotFound):
		h.logger.Warn("%s - Booking request not found: request_id=%d", route, id)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, requestsService.ErrApartmentNotFound):
		h.logger.Warn("%s - Apartment not found: apartment_id=%d", route, id)
		handlers.RespondNotFound(w, msgApartmentNotFound)

	case errors.Is(err, requestsService.ErrTooManyGuests):
		h.logger.Warn("%s - Too many guests: %v", route, err)
		handlers.RespondBadRequest(w, msgTooManyGuests)

	case errors.Is(err, domain.ErrInvalidTransition):
		h.logger.Warn("%s - Invalid transition: request_id=%d, error=%v", route, id, err)
		handlers.RespondBadRequest(w, msgInvalidTransition)

	case errors.Is(err, requestsService.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	default:
		h.logger.Error("%s - Internal error: id=%d, error=%v", route, id, err)
		handlers.RespondInternalError(w)
	}
}
