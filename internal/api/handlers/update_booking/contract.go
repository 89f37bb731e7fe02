package update_booking

import (
	"context"

	"github.com/m04kA/SMC-RentalService/internal/service/bookings/models"
	updateBooking "github.com/m04kA/SMC-RentalService/internal/usecase/update_booking"
)

type UpdateBookingUseCase interface {
	Execute(ctx context.Context, req *updateBooking.Request) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
