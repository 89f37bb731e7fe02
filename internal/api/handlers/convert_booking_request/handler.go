package convert_booking_request

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/domain"
	convertRequest "github.com/m04kA/SMC-RentalService/internal/usecase/convert_booking_request"
)

const (
	msgInvalidRequestID   = "некорректный ID заявки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "заявка на бронирование не найдена"
	msgApartmentNotFound  = "квартира не найдена"
	msgConflict           = "даты заявки уже заняты другим бронированием"
	msgNotApproved        = "конвертировать можно только одобренную заявку"
	msgInvalidInput       = "некорректные данные бронирования"
)

type Handler struct {
	useCase ConvertUseCase
	logger  Logger
}

func NewHandler(useCase ConvertUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/booking-requests/{requestId}/convert
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	requestID, err := handlers.PathID(r, "requestId")
	if err != nil {
		h.logger.Warn("POST /booking-requests/{id}/convert - Invalid request ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestID)
		return
	}

	var req ConvertRequest
	if r.ContentLength != 0 {
		if err := handlers.DecodeJSON(r, &req); err != nil {
			h.logger.Warn("POST /booking-requests/{id}/convert - Invalid request body: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(requestID))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrBookingConflict):
			h.logger.Warn("POST /booking-requests/{id}/convert - Dates taken: request_id=%d, error=%v", requestID, err)
			handlers.RespondConflict(w, msgConflict, err)

		case errors.Is(err, convertRequest.ErrRequestNotFound):
			h.logger.Warn("POST /booking-requests/{id}/convert - Request not found: request_id=%d", requestID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, convertRequest.ErrApartmentNotFound):
			h.logger.Warn("POST /booking-requests/{id}/convert - Apartment not found: request_id=%d", requestID)
			handlers.RespondNotFound(w, msgApartmentNotFound)

		case errors.Is(err, domain.ErrInvalidTransition):
			h.logger.Warn("POST /booking-requests/{id}/convert - Request not approved: request_id=%d, error=%v", requestID, err)
			handlers.RespondBadRequest(w, msgNotApproved)

		case errors.Is(err, convertRequest.ErrInvalidInput):
			h.logger.Warn("POST /booking-requests/{id}/convert - Invalid input: request_id=%d, error=%v", requestID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /booking-requests/{id}/convert - Failed to convert: request_id=%d, error=%v", requestID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /booking-requests/{id}/convert - Converted: request_id=%d, booking_id=%d",
		requestID, result.Booking.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
