package availability

import (
	"context"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// BookingRepository источник активных броней квартиры
type BookingRepository interface {
	ListActiveByApartment(ctx context.Context, apartmentID int64) ([]*domain.Booking, error)
}

// ApartmentRepository интерфейс репозитория квартир
type ApartmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Apartment, error)
}

// ConflictCounter счетчик отклоненных по пересечению операций
type ConflictCounter interface {
	IncBookingConflict(operation string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
