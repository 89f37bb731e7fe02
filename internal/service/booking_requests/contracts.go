package booking_requests

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// RequestRepository интерфейс репозитория заявок
type RequestRepository interface {
	Create(ctx context.Context, req *domain.BookingRequest) (*domain.BookingRequest, error)
	GetByID(ctx context.Context, id int64) (*domain.BookingRequest, error)
	List(ctx context.Context, filter domain.BookingRequestsFilter) ([]*domain.BookingRequest, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingRequestStatus, adminNotes *string) error
	AppendCommunication(ctx context.Context, id int64, entry domain.Communication) error
	Delete(ctx context.Context, id int64) error
}

// ApartmentRepository интерфейс репозитория квартир
type ApartmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Apartment, error)
}

// AvailabilityChecker проверка пересечений с активными бронями
type AvailabilityChecker interface {
	Check(ctx context.Context, operation string, apartmentID int64, candidate domain.StayInterval, excludeBookingID *int64) error
}

// Notifier уведомления по заявкам
type Notifier interface {
	BookingRequestReceived(ctx context.Context, req *domain.BookingRequest)
	BookingRequestApproved(req *domain.BookingRequest)
	BookingRequestRejected(req *domain.BookingRequest)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider источник текущего времени
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
