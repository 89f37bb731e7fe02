package notifier

import (
	"context"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/integrations/mailqueue"
)

// NotificationRepository хранилище уведомлений администратора
type NotificationRepository interface {
	Create(ctx context.Context, n *domain.AdminNotification) (*domain.AdminNotification, error)
}

// MailPublisher очередь писем для гостей
type MailPublisher interface {
	Publish(ctx context.Context, msg mailqueue.EmailMessage) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
