package models

import (
	"time"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// NotificationResponse уведомление для панели администратора
type NotificationResponse struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	RelatedID *int64    `json:"relatedId,omitempty"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

// NotificationListResponse ответ со списком уведомлений
type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	Total         int                    `json:"total"`
}

// MarkAllReadResponse количество отмеченных уведомлений
type MarkAllReadResponse struct {
	Updated int64 `json:"updated"`
}

// FromDomainNotificationList конвертирует список уведомлений
func FromDomainNotificationList(list []*domain.AdminNotification) *NotificationListResponse {
	result := &NotificationListResponse{
		Notifications: make([]NotificationResponse, 0, len(list)),
		Total:         len(list),
	}
	for _, n := range list {
		result.Notifications = append(result.Notifications, NotificationResponse{
			ID:        n.ID,
			Type:      string(n.Type),
			Title:     n.Title,
			Message:   n.Message,
			RelatedID: n.RelatedID,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt,
		})
	}
	return result
}
