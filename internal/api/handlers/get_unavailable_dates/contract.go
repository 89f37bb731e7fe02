package get_unavailable_dates

import (
	"context"

	"github.com/m04kA/SMC-RentalService/internal/service/availability"
)

type AvailabilityService interface {
	UnavailableDates(ctx context.Context, apartmentID int64, excludeBookingID *int64) (*availability.UnavailableDates, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
