package apartments

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	apartmentsService "github.com/m04kA/SMC-RentalService/internal/service/apartments"
	"github.com/m04kA/SMC-RentalService/internal/service/apartments/models"
)

const (
	msgInvalidApartmentID = "некорректный ID квартиры"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "квартира не найдена"
	msgInUse              = "у квартиры есть бронирования, удаление невозможно"
	msgInvalidInput       = "некорректные данные квартиры"
)

type Handler struct {
	service ApartmentService
	logger  Logger
}

func NewHandler(service ApartmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Create POST /api/v1/apartments
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	const route = "POST /apartments"

	var req models.CreateApartmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.respondError(w, route, 0, err)
		return
	}

	h.logger.Info("%s - Apartment created: apartment_id=%d", route, result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// List GET /api/v1/apartments
// Query params: status (опционально: available, occupied, maintenance)
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	const route = "GET /apartments"

	result, err := h.service.List(r.Context(), handlers.QueryString(r, "status"))
	if err != nil {
		h.respondError(w, route, 0, err)
		return
	}

	h.logger.Info("%s - Apartments retrieved: count=%d", route, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Get GET /api/v1/apartments/{apartmentId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	const route = "GET /apartments/{id}"

	apartmentID, ok := h.apartmentID(w, r, route)
	if !ok {
		return
	}

	result, err := h.service.GetByID(r.Context(), apartmentID)
	if err != nil {
		h.respondError(w, route, apartmentID, err)
		return
	}

	h.logger.Info("%s - Apartment retrieved: apartment_id=%d", route, apartmentID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Update PUT /api/v1/apartments/{apartmentId}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	const route = "PUT /apartments/{id}"

	apartmentID, ok := h.apartmentID(w, r, route)
	if !ok {
		return
	}

	var req models.UpdateApartmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), apartmentID, &req)
	if err != nil {
		h.respondError(w, route, apartmentID, err)
		return
	}

	h.logger.Info("%s - Apartment updated: apartment_id=%d", route, apartmentID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Delete DELETE /api/v1/apartments/{apartmentId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	const route = "DELETE /apartments/{id}"

	apartmentID, ok := h.apartmentID(w, r, route)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), apartmentID); err != nil {
		h.respondError(w, route, apartmentID, err)
		return
	}

	h.logger.Info("%s - Apartment deleted: apartment_id=%d", route, apartmentID)
	handlers.RespondNoContent(w)
}

func (h *Handler) apartmentID(w http.ResponseWriter, r *http.Request, route string) (int64, bool) {
	apartmentID, err := handlers.PathID(r, "apartmentId")
	if err != nil {
		h.logger.Warn("%s - Invalid apartment ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidApartmentID)
		return 0, false
	}
	return apartmentID, true
}

func (h *Handler) respondError(w http.ResponseWriter, route string, apartmentID int64, err error) {
	switch {
	case errors.Is(err, apartmentsService.ErrApartmentNotFound):
		h.logger.Warn("%s - Apartment not found: apartment_id=%d", route, apartmentID)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, apartmentsService.ErrApartmentInUse):
		h.logger.Warn("%s - Apartment in use: apartment_id=%d", route, apartmentID)
		handlers.RespondError(w, http.StatusConflict, msgInUse)

	case errors.Is(err, apartmentsService.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	default:
		h.logger.Error("%s - Internal error: apartment_id=%d, error=%v", route, apartmentID, err)
		handlers.RespondInternalError(w)
	}
}
