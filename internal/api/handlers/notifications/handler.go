package notifications

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	notificationsService "github.com/m04kA/SMC-RentalService/internal/service/notifications"
)

const (
	msgInvalidNotificationID = "некорректный ID уведомления"
	msgInvalidParams         = "некорректные параметры запроса"
	msgNotFound              = "уведомление не найдено"
)

type Handler struct {
	service NotificationService
	logger  Logger
}

func NewHandler(service NotificationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/v1/notifications
// Query params: unread (опционально, true - только непрочитанные)
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	unreadOnly := false
	if raw := r.URL.Query().Get("unread"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			h.logger.Warn("GET /notifications - Invalid unread flag: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
		unreadOnly = parsed
	}

	result, err := h.service.List(r.Context(), unreadOnly)
	if err != nil {
		h.logger.Error("GET /notifications - Failed to list notifications: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /notifications - Notifications retrieved: count=%d, unread_only=%t", result.Total, unreadOnly)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// MarkRead PATCH /api/v1/notifications/{notificationId}/read
func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "notificationId")
	if err != nil {
		h.logger.Warn("PATCH /notifications/{id}/read - Invalid notification ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidNotificationID)
		return
	}

	if err := h.service.MarkRead(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, notificationsService.ErrNotificationNotFound):
			h.logger.Warn("PATCH /notifications/{id}/read - Notification not found: id=%d", id)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("PATCH /notifications/{id}/read - Failed to mark read: id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /notifications/{id}/read - Marked read: id=%d", id)
	handlers.RespondNoContent(w)
}

// MarkAllRead PATCH /api/v1/notifications/read-all
func (h *Handler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.MarkAllRead(r.Context())
	if err != nil {
		h.logger.Error("PATCH /notifications/read-all - Failed to mark all read: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PATCH /notifications/read-all - Marked read: updated=%d", result.Updated)
	handlers.RespondJSON(w, http.StatusOK, result)
}
