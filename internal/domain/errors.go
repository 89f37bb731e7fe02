package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInterval stay dates are missing or check-out is not after check-in
	ErrInvalidInterval = errors.New("domain: invalid stay interval")

	// ErrInvalidTransition a status machine precondition failed
	ErrInvalidTransition = errors.New("domain: invalid status transition")

	// ErrBookingConflict the stay overlaps an active booking of the same apartment
	ErrBookingConflict = errors.New("domain: booking conflict")
)

// ConflictError describes the active booking that blocks a candidate stay.
// errors.Is(err, ErrBookingConflict) is true for it.
type ConflictError struct {
	BookingID int64
	GuestName string
	Stay      StayInterval
}

// NewConflictError builds a conflict from the blocking booking
func NewConflictError(b *Booking) *ConflictError {
	return &ConflictError{
		BookingID: b.ID,
		GuestName: b.GuestName,
		Stay:      b.Stay,
	}
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: apartment is booked by %s from %s to %s",
		ErrBookingConflict.Error(), e.GuestName,
		e.Stay.CheckInDate(), e.Stay.CheckOutDate())
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrBookingConflict
}

// TransitionError wraps ErrInvalidTransition with the attempted states
func TransitionError(entity string, from, to fmt.Stringer) error {
	return fmt.Errorf("%w: %s cannot move from %s to %s", ErrInvalidTransition, entity, from, to)
}
