package check_availability

import (
	"context"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

type AvailabilityService interface {
	CheckAvailability(ctx context.Context, apartmentID int64, candidate domain.StayInterval, excludeBookingID *int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
