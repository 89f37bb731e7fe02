package notifications

import (
	"context"

	"github.com/m04kA/SMC-RentalService/internal/service/notifications/models"
)

type NotificationService interface {
	List(ctx context.Context, unreadOnly bool) (*models.NotificationListResponse, error)
	MarkRead(ctx context.Context, id int64) error
	MarkAllRead(ctx context.Context) (*models.MarkAllReadResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
