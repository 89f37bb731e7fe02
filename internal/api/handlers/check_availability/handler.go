package check_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/service/availability"
)

const (
	msgInvalidApartmentID = "некорректный ID квартиры"
	msgInvalidBookingID   = "некорректный ID исключаемого бронирования"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidInterval    = "дата выезда должна быть позже даты заезда"
	msgApartmentNotFound  = "квартира не найдена"
	msgConflict           = "квартира уже забронирована на выбранные даты"
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

// Handle GET /api/v1/apartments/{apartmentId}/availability
// Query params: checkIn, checkOut (обязательные), excludeBookingId (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	apartmentID, err := handlers.PathID(r, "apartmentId")
	if err != nil {
		h.logger.Warn("GET /apartments/{id}/availability - Invalid apartment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidApartmentID)
		return
	}

	excludeID, err := handlers.QueryID(r, "excludeBookingId")
	if err != nil {
		h.logger.Warn("GET /apartments/{id}/availability - Invalid excludeBookingId: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	checkIn, errIn := handlers.ParseDate(r.URL.Query().Get("checkIn"))
	checkOut, errOut := handlers.ParseDate(r.URL.Query().Get("checkOut"))
	if errIn != nil || errOut != nil {
		h.logger.Warn("GET /apartments/{id}/availability - Invalid dates: checkIn=%q, checkOut=%q",
			r.URL.Query().Get("checkIn"), r.URL.Query().Get("checkOut"))
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	stay := domain.StayInterval{CheckIn: checkIn, CheckOut: checkOut}

	err = h.service.CheckAvailability(r.Context(), apartmentID, stay, excludeID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrBookingConflict):
			h.logger.Info("GET /apartments/{id}/availability - Dates taken: apartment_id=%d, stay=%s", apartmentID, stay)
			handlers.RespondConflict(w, msgConflict, err)

		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("GET /apartments/{id}/availability - Invalid interval: apartment_id=%d, error=%v", apartmentID, err)
			handlers.RespondBadRequest(w, msgInvalidInterval)

		case errors.Is(err, availability.ErrApartmentNotFound):
			h.logger.Warn("GET /apartments/{id}/availability - Apartment not found: apartment_id=%d", apartmentID)
			handlers.RespondNotFound(w, msgApartmentNotFound)

		default:
			h.logger.Error("GET /apartments/{id}/availability - Failed to check: apartment_id=%d, error=%v", apartmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /apartments/{id}/availability - Available: apartment_id=%d, stay=%s", apartmentID, stay)
	handlers.RespondJSON(w, http.StatusOK, AvailabilityResponse{Available: true})
}
