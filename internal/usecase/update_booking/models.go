package update_booking

import (
	"time"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// Request частичное обновление бронирования: nil означает "не менять"
type Request struct {
	BookingID        int64
	ApartmentID      *int64
	CheckIn          *time.Time
	CheckOut         *time.Time
	GuestName        *string
	GuestEmail       *string
	GuestPhone       *string
	IDNumber         *string
	EmergencyContact *domain.EmergencyContact
	NumberOfGuests   *int
	PricePerNight    *float64
	TotalAmount      *float64
	Notes            *string
}

// changesSchedule true, если запрос трогает квартиру или даты
func (r *Request) changesSchedule() bool {
	return r.ApartmentID != nil || r.CheckIn != nil || r.CheckOut != nil
}
