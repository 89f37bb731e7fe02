package booking_requests

import (
	"context"

	"github.com/m04kA/SMC-RentalService/internal/service/booking_requests/models"
)

type BookingRequestService interface {
	Create(ctx context.Context, req *models.CreateBookingRequestRequest) (*models.BookingRequestResponse, error)
	GetByID(ctx context.Context, id int64) (*models.BookingRequestResponse, error)
	List(ctx context.Context, req *models.ListBookingRequestsRequest) (*models.BookingRequestListResponse, error)
	Approve(ctx context.Context, id int64, req *models.ReviewRequest) (*models.BookingRequestResponse, error)
	Reject(ctx context.Context, id int64, req *models.ReviewRequest) (*models.BookingRequestResponse, error)
	Cancel(ctx context.Context, id int64, req *models.ReviewRequest) (*models.BookingRequestResponse, error)
	AddCommunication(ctx context.Context, id int64, req *models.AddCommunicationRequest) (*models.BookingRequestResponse, error)
	Delete(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
