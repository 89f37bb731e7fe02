package maintenance

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/domain"
	maintenanceService "github.com/m04kA/SMC-RentalService/internal/service/maintenance"
	"github.com/m04kA/SMC-RentalService/internal/service/maintenance/models"
)

const (
	msgInvalidRequestID   = "некорректный ID заявки на обслуживание"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidParams      = "некорректные параметры запроса"
	msgNotFound           = "заявка на обслуживание не найдена"
	msgApartmentNotFound  = "квартира не найдена"
	msgInvalidTransition  = "недопустимая смена статуса заявки на обслуживание"
	msgInvalidInput       = "некорректные данные заявки на обслуживание"
)

type Handler struct {
	service MaintenanceService
	logger  Logger
}

func NewHandler(service MaintenanceService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Create POST /api/v1/maintenance-requests
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	const route = "POST /maintenance-requests"

	var req models.CreateMaintenanceRequest
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

	h.logger.Info("%s - Maintenance request created: id=%d, apartment_id=%d", route, result.ID, result.ApartmentID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// List GET /api/v1/maintenance-requests
// Query params: apartmentId, status (опционально)
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	const route = "GET /maintenance-requests"

	apartmentID, err := handlers.QueryID(r, "apartmentId")
	if err != nil {
		h.logger.Warn("%s - Invalid parameters: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	req := &models.ListMaintenanceRequest{
		ApartmentID: apartmentID,
		Status:      handlers.QueryString(r, "status"),
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		h.respondError(w, route, 0, err)
		return
	}

	h.logger.Info("%s - Maintenance requests retrieved: count=%d", route, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Get GET /api/v1/maintenance-requests/{requestId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	const route = "GET /maintenance-requests/{id}"

	id, ok := h.requestID(w, r, route)
	if !ok {
		return
	}

	result, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.respondError(w, route, id, err)
		return
	}

	h.logger.Info("%s - Maintenance request retrieved: id=%d", route, id)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// ChangeStatus PATCH /api/v1/maintenance-requests/{requestId}/status
func (h *Handler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	const route = "PATCH /maintenance-requests/{id}/status"

	id, ok := h.requestID(w, r, route)
	if !ok {
		return
	}

	var req models.ChangeStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.ChangeStatus(r.Context(), id, &req)
	if err != nil {
		h.respondError(w, route, id, err)
		return
	}

	h.logger.Info("%s - Status changed: id=%d, status=%s", route, id, result.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Delete DELETE /api/v1/maintenance-requests/{requestId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	const route = "DELETE /maintenance-requests/{id}"

	id, ok := h.requestID(w, r, route)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.respondError(w, route, id, err)
		return
	}

	h.logger.Info("%s - Maintenance request deleted: id=%d", route, id)
	handlers.RespondNoContent(w)
}

func (h *Handler) requestID(w http.ResponseWriter, r *http.Request, route string) (int64, bool) {
	id, err := handlers.PathID(r, "requestId")
	if err != nil {
		h.logger.Warn("%s - Invalid request ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestID)
		return 0, false
	}
	return id, true
}

func (h *Handler) respondError(w http.ResponseWriter, route string, id int64, err error) {
	switch {
	case errors.Is(err, maintenanceService.ErrMaintenanceNotFound):
		h.logger.Warn("%s - Maintenance request not found: id=%d", route, id)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, maintenanceService.ErrApartmentNotFound):
		h.logger.Warn("%s - Apartment not found: %v", route, err)
		handlers.RespondNotFound(w, msgApartmentNotFound)

	case errors.Is(err, domain.ErrInvalidTransition):
		h.logger.Warn("%s - Invalid transition: id=%d, error=%v", route, id, err)
		handlers.RespondBadRequest(w, msgInvalidTransition)

	case errors.Is(err, maintenanceService.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	default:
		h.logger.Error("%s - Internal error: id=%d, error=%v", route, id, err)
		handlers.RespondInternalError(w)
	}
}
