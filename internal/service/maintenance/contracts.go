package maintenance

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// MaintenanceRepository интерфейс репозитория заявок на обслуживание
type MaintenanceRepository interface {
	Create(ctx context.Context, m *domain.MaintenanceRequest) (*domain.MaintenanceRequest, error)
	GetByID(ctx context.Context, id int64) (*domain.MaintenanceRequest, error)
	List(ctx context.Context, filter domain.MaintenanceFilter) ([]*domain.MaintenanceRequest, error)
	UpdateStatus(ctx context.Context, id int64, status domain.MaintenanceStatus, assignedTo *string, changedAt time.Time) error
	Delete(ctx context.Context, id int64) error
}

// Notifier уведомление администратора о новой заявке
type Notifier interface {
	MaintenanceCreated(ctx context.Context, m *domain.MaintenanceRequest)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
