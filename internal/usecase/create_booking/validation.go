package create_booking

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ApartmentID <= 0 {
		return fmt.Errorf("%w: apartmentId must be positive", ErrInvalidInput)
	}

	name := strings.TrimSpace(req.GuestName)
	if name == "" {
		return fmt.Errorf("%w: guestName is required", ErrInvalidInput)
	}
	if len(name) > domain.MaxGuestNameLength {
		return fmt.Errorf("%w: guestName exceeds %d characters", ErrInvalidInput, domain.MaxGuestNameLength)
	}

	if req.NumberOfGuests < domain.MinNumberOfGuests {
		return fmt.Errorf("%w: numberOfGuests must be at least %d", ErrInvalidInput, domain.MinNumberOfGuests)
	}

	// Полуоткрытый интервал: выезд строго после заезда
	if err := (domain.StayInterval{CheckIn: req.CheckIn, CheckOut: req.CheckOut}).Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if req.PricePerNight != nil && *req.PricePerNight < 0 {
		return fmt.Errorf("%w: pricePerNight must not be negative", ErrInvalidInput)
	}

	if req.TotalAmount != nil && *req.TotalAmount < 0 {
		return fmt.Errorf("%w: totalAmount must not be negative", ErrInvalidInput)
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

// buildPayment заполняет платеж значениями по умолчанию
func buildPayment(req *Request) domain.Payment {
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

	return payment
}
