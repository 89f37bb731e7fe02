package create_booking

import (
	"time"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	ApartmentID      int64
	GuestName        string
	GuestEmail       string
	GuestPhone       string
	IDNumber         *string
	EmergencyContact domain.EmergencyContact
	CheckIn          time.Time // полночь UTC
	CheckOut         time.Time // полночь UTC, день выезда не занят
	NumberOfGuests   int
	PricePerNight    *float64 // по умолчанию цена квартиры
	TotalAmount      *float64 // по умолчанию ночи * цена
	PaymentMethod    *domain.PaymentMethod
	PaymentStatus    *domain.PaymentStatus
	AmountPaid       float64
	PaymentReference *string
	Notes            *string
}
