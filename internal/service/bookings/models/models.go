package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// ListBookingsRequest фильтр списка бронирований
type ListBookingsRequest struct {
	ApartmentID *int64     `json:"apartmentId,omitempty"`
	Status      *string    `json:"status,omitempty"`
	ActiveOnly  bool       `json:"activeOnly,omitempty"`
	From        *time.Time `json:"from,omitempty"` // брони, выезжающие после From
	To          *time.Time `json:"to,omitempty"`   // брони, заезжающие до To
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		ApartmentID: r.ApartmentID,
		ActiveOnly:  r.ActiveOnly,
		From:        r.From,
		To:          r.To,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	Reason string `json:"reason"`
}

// UpdatePaymentRequest запрос на обновление оплаты
type UpdatePaymentRequest struct {
	Method     string     `json:"method"`
	Status     string     `json:"status"`
	AmountPaid float64    `json:"amountPaid"`
	Reference  *string    `json:"reference,omitempty"`
	PaidAt     *time.Time `json:"paidAt,omitempty"`
}

// Response модели

// EmergencyContact контакт на экстренный случай
type EmergencyContact struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Relationship string `json:"relationship"`
}

// Payment платежная информация
type Payment struct {
	Method     string     `json:"method"`
	Status     string     `json:"status"`
	AmountPaid float64    `json:"amountPaid"`
	Reference  *string    `json:"reference,omitempty"`
	PaidAt     *time.Time `json:"paidAt,omitempty"`
}

// ApartmentSummary краткие данные квартиры для отображения рядом с бронью
type ApartmentSummary struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Status  string `json:"status"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID                 int64             `json:"id"`
	ApartmentID        int64             `json:"apartmentId"`
	GuestName          string            `json:"guestName"`
	GuestEmail         string            `json:"guestEmail"`
	GuestPhone         string            `json:"guestPhone"`
	IDNumber           *string           `json:"idNumber,omitempty"`
	EmergencyContact   EmergencyContact  `json:"emergencyContact"`
	CheckIn            string            `json:"checkIn"`  // YYYY-MM-DD
	CheckOut           string            `json:"checkOut"` // YYYY-MM-DD, день выезда свободен
	NumberOfGuests     int               `json:"numberOfGuests"`
	NumberOfNights     int               `json:"numberOfNights"`
	PricePerNight      float64           `json:"pricePerNight"`
	TotalAmount        float64           `json:"totalAmount"`
	Payment            Payment           `json:"payment"`
	Status             string            `json:"status"`
	Notes              *string           `json:"notes,omitempty"`
	BookingRequestID   *int64            `json:"bookingRequestId,omitempty"`
	CancellationReason *string           `json:"cancellationReason,omitempty"`
	CheckedInAt        *time.Time        `json:"checkedInAt,omitempty"`
	CheckedOutAt       *time.Time        `json:"checkedOutAt,omitempty"`
	CreatedAt          time.Time         `json:"createdAt"`
	UpdatedAt          time.Time         `json:"updatedAt"`
	Apartment          *ApartmentSummary `json:"apartment,omitempty"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
}

// Конвертеры

// FromDomainBooking конвертирует domain.Booking в BookingResponse
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	resp := &BookingResponse{
		ID:          b.ID,
		ApartmentID: b.ApartmentID,
		GuestName:   b.GuestName,
		GuestEmail:  b.GuestEmail,
		GuestPhone:  b.GuestPhone,
		IDNumber:    b.IDNumber,
		EmergencyContact: EmergencyContact{
			Name:         b.EmergencyContact.Name,
			Phone:        b.EmergencyContact.Phone,
			Relationship: b.EmergencyContact.Relationship,
		},
		CheckIn:        string(b.Stay.CheckInDate()),
		CheckOut:       string(b.Stay.CheckOutDate()),
		NumberOfGuests: b.NumberOfGuests,
		NumberOfNights: b.NumberOfNights,
		PricePerNight:  b.PricePerNight,
		TotalAmount:    b.TotalAmount,
		Payment: Payment{
			Method:     string(b.Payment.Method),
			Status:     string(b.Payment.Status),
			AmountPaid: b.Payment.AmountPaid,
			Reference:  b.Payment.Reference,
			PaidAt:     b.Payment.PaidAt,
		},
		Status:             string(b.Status),
		Notes:              b.Notes,
		BookingRequestID:   b.BookingRequestID,
		CancellationReason: b.CancellationReason,
		CheckedInAt:        b.CheckedInAt,
		CheckedOutAt:       b.CheckedOutAt,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	if b.Apartment != nil {
		resp.Apartment = &ApartmentSummary{
			ID:      b.Apartment.ID,
			Name:    b.Apartment.Name,
			Address: b.Apartment.Address,
			Status:  string(b.Apartment.Status),
		}
	}

	return resp
}

// FromDomainBookingList конвертирует список бронирований
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	result := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
		Total:    len(bookings),
	}

	for _, b := range bookings {
		result.Bookings = append(result.Bookings, *FromDomainBooking(b))
	}

	return result
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

// ToDomainPayment конвертирует запрос оплаты в domain.Payment
func (r *UpdatePaymentRequest) ToDomainPayment() domain.Payment {
	return domain.Payment{
		Method:     domain.PaymentMethod(r.Method),
		Status:     domain.PaymentStatus(r.Status),
		AmountPaid: r.AmountPaid,
		Reference:  r.Reference,
		PaidAt:     r.PaidAt,
	}
}
