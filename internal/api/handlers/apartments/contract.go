package apartments

import (
	"context"

	"github.com/m04kA/SMC-RentalService/internal/service/apartments/models"
)

type ApartmentService interface {
	Create(ctx context.Context, req *models.CreateApartmentRequest) (*models.ApartmentResponse, error)
	GetByID(ctx context.Context, id int64) (*models.ApartmentResponse, error)
	List(ctx context.Context, status *string) (*models.ApartmentListResponse, error)
	Update(ctx context.Context, id int64, req *models.UpdateApartmentRequest) (*models.ApartmentResponse, error)
	Delete(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
