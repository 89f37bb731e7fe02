package convert_booking_request

import (
	"fmt"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.RequestID <= 0 {
		return fmt.Errorf("%w: requestId must be positive", ErrInvalidInput)
	}

	if req.AmountPaid < 0 {
		return fmt.Errorf("%w: amountPaid must not be negative", ErrInvalidInput)
	}

	if req.PaymentMethod != nil && !domain.ValidPaymentMethod(*req.PaymentMethod) {
		return fmt.Errorf("%w: unknown payment method %q", ErrInvalidInput, *req.PaymentMethod)
	}

	if req.PaymentStatus != nil && !domain.ValidPaymentStatus(*req.PaymentStatus) {
		return fmt.Errorf("%w: unknown payment status %q", ErrInvalidInput, *req.PaymentStatus)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// buildBooking собирает подтвержденную бронь из снимка заявки
func buildBooking(r *domain.BookingRequest, req *Request) *domain.Booking {
	payment := domain.Payment{
		Method:     domain.PaymentMethodCash,
		Status:     domain.PaymentStatusPending,
		AmountPaid: req.AmountPaid,
		Reference:  req.PaymentReference,
	}
	if req.PaymentMethod != nil {
		payment.Method = *req.PaymentMethod
	}
	if req.PaymentStatus != nil {
		payment.Status = *req.PaymentStatus
	}
	if payment.Reference == nil && payment.AmountPaid > 0 {
		ref := domain.NewPaymentReference()
		payment.Reference = &ref
	}

	notes := req.Notes
	if notes == nil {
		notes = r.Message
	}

	requestID := r.ID
	b := &domain.Booking{
		ApartmentID:      r.ApartmentID,
		GuestName:        r.GuestName,
		GuestEmail:       r.GuestEmail,
		GuestPhone:       r.GuestPhone,
		IDNumber:         req.IDNumber,
		EmergencyContact: req.EmergencyContact,
		Stay:             r.Stay,
		NumberOfGuests:   r.NumberOfGuests,
		PricePerNight:    r.PricePerNight,
		TotalAmount:      r.TotalAmount,
		Payment:          payment,
		Status:           domain.BookingStatusConfirmed,
		Notes:            notes,
		BookingRequestID: &requestID,
	}
	b.RecalculateNights()
	// Старые заявки могли прийти без снимка суммы
	if b.TotalAmount == 0 {
		b.RecalculateTotal()
	}

	return b
}
