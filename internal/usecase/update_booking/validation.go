package update_booking

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingId must be positive", ErrInvalidInput)
	}

	if req.ApartmentID != nil && *req.ApartmentID <= 0 {
		return fmt.Errorf("%w: apartmentId must be positive", ErrInvalidInput)
	}

	if req.GuestName != nil {
		name := strings.TrimSpace(*req.GuestName)
		if name == "" {
			return fmt.Errorf("%w: guestName must not be empty", ErrInvalidInput)
		}
		if len(name) > domain.MaxGuestNameLength {
			return fmt.Errorf("%w: guestName exceeds %d characters", ErrInvalidInput, domain.MaxGuestNameLength)
		}
	}

	if req.NumberOfGuests != nil && *req.NumberOfGuests < domain.MinNumberOfGuests {
		return fmt.Errorf("%w: numberOfGuests must be at least %d", ErrInvalidInput, domain.MinNumberOfGuests)
	}

	if req.PricePerNight != nil && *req.PricePerNight < 0 {
		return fmt.Errorf("%w: pricePerNight must not be negative", ErrInvalidInput)
	}

	if req.TotalAmount != nil && *req.TotalAmount < 0 {
		return fmt.Errorf("%w: totalAmount must not be negative", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateSchedule правила переноса для текущего статуса брони
func validateSchedule(booking *domain.Booking, req *Request) error {
	if !req.changesSchedule() {
		return nil
	}

	if !booking.IsActive() {
		return fmt.Errorf("%w: %s booking cannot be rescheduled", ErrInvalidInput, booking.Status)
	}

	// Жилец уже в квартире, переселение оформляется выездом и новой бронью
	if booking.Status == domain.BookingStatusCheckedIn &&
		req.ApartmentID != nil && *req.ApartmentID != booking.ApartmentID {
		return fmt.Errorf("%w: checked-in booking cannot move to another apartment", ErrInvalidInput)
	}

	return nil
}

// totalIsDerived true, если сумма совпадает с ночи * цена (не задана вручную)
func totalIsDerived(b *domain.Booking) bool {
	return b.TotalAmount == float64(b.NumberOfNights)*b.PricePerNight
}
