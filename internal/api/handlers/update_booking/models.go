package update_booking

import (
	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/domain"
	updateBooking "github.com/m04kA/SMC-RentalService/internal/usecase/update_booking"
)

// EmergencyContact контакт на экстренный случай
type EmergencyContact struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Relationship string `json:"relationship"`
}

// UpdateBookingRequest HTTP request model, отсутствующие поля не меняются
type UpdateBookingRequest struct {
	ApartmentID      *int64            `json:"apartmentId,omitempty"`
	CheckIn          *string           `json:"checkIn,omitempty"`
	CheckOut         *string           `json:"checkOut,omitempty"`
	GuestName        *string           `json:"guestName,omitempty"`
	GuestEmail       *string           `json:"guestEmail,omitempty"`
	GuestPhone       *string           `json:"guestPhone,omitempty"`
	IDNumber         *string           `json:"idNumber,omitempty"`
	EmergencyContact *EmergencyContact `json:"emergencyContact,omitempty"`
	NumberOfGuests   *int              `json:"numberOfGuests,omitempty"`
	PricePerNight    *float64          `json:"pricePerNight,omitempty"`
	TotalAmount      *float64          `json:"totalAmount,omitempty"`
	Notes            *string           `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateBookingRequest) ToUseCaseRequest(bookingID int64) (*updateBooking.Request, error) {
	checkIn, err := handlers.ParseOptionalDate(r.CheckIn)
	if err != nil {
		return nil, err
	}

	checkOut, err := handlers.ParseOptionalDate(r.CheckOut)
	if err != nil {
		return nil, err
	}

	req := &updateBooking.Request{
		BookingID:      bookingID,
		ApartmentID:    r.ApartmentID,
		CheckIn:        checkIn,
		CheckOut:       checkOut,
		GuestName:      r.GuestName,
		GuestEmail:     r.GuestEmail,
		GuestPhone:     r.GuestPhone,
		IDNumber:       r.IDNumber,
		NumberOfGuests: r.NumberOfGuests,
		PricePerNight:  r.PricePerNight,
		TotalAmount:    r.TotalAmount,
		Notes:          r.Notes,
	}

	if r.EmergencyContact != nil {
		req.EmergencyContact = &domain.EmergencyContact{
			Name:         r.EmergencyContact.Name,
			Phone:        r.EmergencyContact.Phone,
			Relationship: r.EmergencyContact.Relationship,
		}
	}

	return req, nil
}
