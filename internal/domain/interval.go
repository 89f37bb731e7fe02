package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-RentalService/pkg/types"
)

const hoursPerDay = 24

// StayInterval is a half-open stay [CheckIn, CheckOut).
// The guest occupies the nights CheckIn .. CheckOut-1; the checkout date itself is free
// for the next guest.
type StayInterval struct {
	CheckIn  time.Time
	CheckOut time.Time
}

// NewStayInterval builds and validates an interval
func NewStayInterval(checkIn, checkOut time.Time) (StayInterval, error) {
	s := StayInterval{CheckIn: checkIn, CheckOut: checkOut}
	if err := s.Validate(); err != nil {
		return StayInterval{}, err
	}
	return s, nil
}

// Validate checks that both dates are set and CheckOut is strictly after CheckIn
func (s StayInterval) Validate() error {
	if s.CheckIn.IsZero() || s.CheckOut.IsZero() {
		return fmt.Errorf("%w: check-in and check-out dates are required", ErrInvalidInterval)
	}
	if !s.CheckOut.After(s.CheckIn) {
		return fmt.Errorf("%w: check-out %s must be after check-in %s",
			ErrInvalidInterval, s.CheckOutDate(), s.CheckInDate())
	}
	return nil
}

// Overlaps reports whether two stays share at least one night.
// Strict inequalities: back-to-back stays (checkout day == next check-in day) do not overlap.
func (s StayInterval) Overlaps(other StayInterval) bool {
	return s.CheckIn.Before(other.CheckOut) && s.CheckOut.After(other.CheckIn)
}

// Contains reports whether moment t falls inside [CheckIn, CheckOut)
func (s StayInterval) Contains(t time.Time) bool {
	return !t.Before(s.CheckIn) && t.Before(s.CheckOut)
}

// Nights returns the number of calendar nights of the stay
func (s StayInterval) Nights() int {
	from := types.TruncateToDay(s.CheckIn)
	to := types.TruncateToDay(s.CheckOut)
	if !to.After(from) {
		return 0
	}
	return int(to.Sub(from).Hours() / hoursPerDay)
}

// OccupiedDates lists every calendar date from CheckIn up to, but excluding, CheckOut
func (s StayInterval) OccupiedDates() []types.DateString {
	from := types.TruncateToDay(s.CheckIn)
	to := types.TruncateToDay(s.CheckOut)

	dates := make([]types.DateString, 0, s.Nights())
	for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
		dates = append(dates, types.NewDateString(d))
	}
	return dates
}

// WithOverrides returns a copy with non-nil fields replaced
func (s StayInterval) WithOverrides(checkIn, checkOut *time.Time) StayInterval {
	if checkIn != nil {
		s.CheckIn = *checkIn
	}
	if checkOut != nil {
		s.CheckOut = *checkOut
	}
	return s
}

// UTC returns the interval with both bounds converted to UTC.
// Stored dates are UTC midnights; the driver may hand them back in the session zone.
func (s StayInterval) UTC() StayInterval {
	return StayInterval{CheckIn: s.CheckIn.UTC(), CheckOut: s.CheckOut.UTC()}
}

// CheckInDate calendar day of check-in (UTC)
func (s StayInterval) CheckInDate() types.DateString {
	return types.NewDateString(s.CheckIn)
}

// CheckOutDate calendar day of check-out (UTC)
func (s StayInterval) CheckOutDate() types.DateString {
	return types.NewDateString(s.CheckOut)
}

func (s StayInterval) String() string {
	return fmt.Sprintf("[%s, %s)", s.CheckInDate(), s.CheckOutDate())
}
