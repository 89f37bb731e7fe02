package apartments

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// ApartmentRepository интерфейс репозитория квартир
type ApartmentRepository interface {
	Create(ctx context.Context, a *domain.Apartment) (*domain.Apartment, error)
	GetByID(ctx context.Context, id int64) (*domain.Apartment, error)
	List(ctx context.Context, status *domain.ApartmentStatus) ([]*domain.Apartment, error)
	Update(ctx context.Context, a *domain.Apartment) error
	Delete(ctx context.Context, id int64) error
}

// OccupancyReader квартиры, в которых сейчас живут по активной брони
type OccupancyReader interface {
	ListOccupiedApartmentIDs(ctx context.Context, at time.Time) ([]int64, error)
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
