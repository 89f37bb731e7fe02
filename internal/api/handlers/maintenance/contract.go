package maintenance

import (
	"context"

	"github.com/m04kA/SMC-RentalService/internal/service/maintenance/models"
)

type MaintenanceService interface {
	Create(ctx context.Context, req *models.CreateMaintenanceRequest) (*models.MaintenanceResponse, error)
	GetByID(ctx context.Context, id int64) (*models.MaintenanceResponse, error)
	List(ctx context.Context, req *models.ListMaintenanceRequest) (*models.MaintenanceListResponse, error)
	ChangeStatus(ctx context.Context, id int64, req *models.ChangeStatusRequest) (*models.MaintenanceResponse, error)
	Delete(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
