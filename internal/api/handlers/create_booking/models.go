package create_booking

import (
	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/domain"
	createBooking "github.com/m04kA/SMC-RentalService/internal/usecase/create_booking"
)

// EmergencyContact контакт на экстренный случай
type EmergencyContact struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Relationship string `json:"relationship"`
}

// PaymentRequest начальные данные оплаты
type PaymentRequest struct {
	Method     *string `json:"method,omitempty"`
	Status     *string `json:"status,omitempty"`
	AmountPaid float64 `json:"amountPaid"`
	Reference  *string `json:"reference,omitempty"`
}

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ApartmentID      int64            `json:"apartmentId"`
	GuestName        string           `json:"guestName"`
	GuestEmail       string           `json:"guestEmail"`
	GuestPhone       string           `json:"guestPhone"`
	IDNumber         *string          `json:"idNumber,omitempty"`
	EmergencyContact EmergencyContact `json:"emergencyContact"`
	CheckIn          string           `json:"checkIn"`  // "2024-03-01"
	CheckOut         string           `json:"checkOut"` // "2024-03-05"
	NumberOfGuests   int              `json:"numberOfGuests"`
	PricePerNight    *float64         `json:"pricePerNight,omitempty"`
	TotalAmount      *float64         `json:"totalAmount,omitempty"`
	Payment          *PaymentRequest  `json:"payment,omitempty"`
	Notes            *string          `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	checkIn, err := handlers.ParseDate(r.CheckIn)
	if err != nil {
		return nil, err
	}

	checkOut, err := handlers.ParseDate(r.CheckOut)
	if err != nil {
		return nil, err
	}

	req := &createBooking.Request{
		ApartmentID: r.ApartmentID,
		GuestName:   r.GuestName,
		GuestEmail:  r.GuestEmail,
		GuestPhone:  r.GuestPhone,
		IDNumber:    r.IDNumber,
		EmergencyContact: domain.EmergencyContact{
			Name:         r.EmergencyContact.Name,
			Phone:        r.EmergencyContact.Phone,
			Relationship: r.EmergencyContact.Relationship,
		},
		CheckIn:        checkIn,
		CheckOut:       checkOut,
		NumberOfGuests: r.NumberOfGuests,
		PricePerNight:  r.PricePerNight,
		TotalAmount:    r.TotalAmount,
		Notes:          r.Notes,
	}

	if r.Payment != nil {
		req.AmountPaid = r.Payment.AmountPaid
		req.PaymentReference = r.Payment.Reference
		if r.Payment.Method != nil {
			method := domain.PaymentMethod(*r.Payment.Method)
			req.PaymentMethod = &method
		}
		if r.Payment.Status != nil {
			status := domain.PaymentStatus(*r.Payment.Status)
			req.PaymentStatus = &status
		}
	}

	return req, nil
}
