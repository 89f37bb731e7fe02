package change_booking_status

import "github.com/m04kA/SMC-RentalService/internal/service/bookings/models"

// CancelBookingRequest HTTP request model, тело необязательно
type CancelBookingRequest struct {
	Reason string `json:"reason"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CancelBookingRequest) ToServiceRequest() *models.CancelBookingRequest {
	return &models.CancelBookingRequest{Reason: r.Reason}
}
