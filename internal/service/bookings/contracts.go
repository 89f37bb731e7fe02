package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus, changedAt time.Time) error
	Cancel(ctx context.Context, id int64, status domain.BookingStatus, reason string) error
	UpdatePayment(ctx context.Context, id int64, payment domain.Payment) error
	Delete(ctx context.Context, id int64) error
}

// ApartmentRepository интерфейс репозитория квартир
type ApartmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Apartment, error)
	GetByIDs(ctx context.Context, ids []int64) ([]*domain.Apartment, error)
	UpdateOccupancy(ctx context.Context, id int64, status domain.ApartmentStatus, currentTenantID *int64) error
}

// Notifier уведомления администратора о заезде/выезде
type Notifier interface {
	CheckedIn(ctx context.Context, b *domain.Booking)
	CheckedOut(ctx context.Context, b *domain.Booking)
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
