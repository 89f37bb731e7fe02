package convert_booking_request

import (
	"github.com/m04kA/SMC-RentalService/internal/domain"
	bookingModels "github.com/m04kA/SMC-RentalService/internal/service/bookings/models"
	requestModels "github.com/m04kA/SMC-RentalService/internal/service/booking_requests/models"
)

// Request данные, которые администратор добавляет к заявке при конвертации
type Request struct {
	RequestID        int64
	IDNumber         *string
	EmergencyContact domain.EmergencyContact
	PaymentMethod    *domain.PaymentMethod
	PaymentStatus    *domain.PaymentStatus
	AmountPaid       float64
	PaymentReference *string
	Notes            *string
}

// Response созданная бронь и заявка в статусе converted
type Response struct {
	Booking *bookingModels.BookingResponse        `json:"booking"`
	Request *requestModels.BookingRequestResponse `json:"request"`
}
