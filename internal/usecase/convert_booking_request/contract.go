package convert_booking_request

import (
	"context"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// RequestRepository интерфейс репозитория заявок на бронирование
type RequestRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.BookingRequest, error)
	MarkConverted(ctx context.Context, id int64, bookingID int64) error
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// ApartmentRepository интерфейс репозитория квартир
type ApartmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Apartment, error)
	UpdateOccupancy(ctx context.Context, id int64, status domain.ApartmentStatus, currentTenantID *int64) error
}

// AvailabilityChecker проверка пересечений с активными бронями
type AvailabilityChecker interface {
	FindConflict(ctx context.Context, apartmentID int64, candidate domain.StayInterval, excludeBookingID *int64) (*domain.Booking, error)
	Check(ctx context.Context, operation string, apartmentID int64, candidate domain.StayInterval, excludeBookingID *int64) error
}

// Notifier уведомления о конвертации
type Notifier interface {
	BookingConverted(ctx context.Context, b *domain.Booking, req *domain.BookingRequest)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
