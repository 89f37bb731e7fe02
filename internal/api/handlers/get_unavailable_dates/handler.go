package get_unavailable_dates

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/service/availability"
)

const (
	msgInvalidApartmentID = "некорректный ID квартиры"
	msgInvalidBookingID   = "некорректный ID исключаемого бронирования"
	msgApartmentNotFound  = "квартира не найдена"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/apartments/{apartmentId}/unavailable-dates
// Query params: excludeBookingId (опционально, при редактировании брони)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	apartmentID, err := handlers.PathID(r, "apartmentId")
	if err != nil {
		h.logger.Warn("GET /apartments/{id}/unavailable-dates - Invalid apartment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidApartmentID)
		return
	}

	excludeID, err := handlers.QueryID(r, "excludeBookingId")
	if err != nil {
		h.logger.Warn("GET /apartments/{id}/unavailable-dates - Invalid excludeBookingId: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	result, err := h.service.UnavailableDates(r.Context(), apartmentID, excludeID)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrApartmentNotFound):
			h.logger.Warn("GET /apartments/{id}/unavailable-dates - Apartment not found: apartment_id=%d", apartmentID)
			handlers.RespondNotFound(w, msgApartmentNotFound)

		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("GET /apartments/{id}/unavailable-dates - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidApartmentID)

		default:
			h.logger.Error("GET /apartments/{id}/unavailable-dates - Failed to get dates: apartment_id=%d, error=%v", apartmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /apartments/{id}/unavailable-dates - Dates retrieved: apartment_id=%d, ranges=%d",
		apartmentID, len(result.Ranges))
	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(result))
}
