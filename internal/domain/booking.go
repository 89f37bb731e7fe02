package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// BookingStatus represents the lifecycle status of a booking (tenant)
type BookingStatus string

const (
	BookingStatusConfirmed  BookingStatus = "confirmed"
	BookingStatusCheckedIn  BookingStatus = "checked_in"
	BookingStatusCheckedOut BookingStatus = "checked_out"
	BookingStatusCancelled  BookingStatus = "cancelled"
	BookingStatusNoShow     BookingStatus = "no_show"
)

// ActiveBookingStatuses statuses that block the calendar.
// Checked-out, cancelled and no-show bookings free the dates.
var ActiveBookingStatuses = []BookingStatus{
	BookingStatusConfirmed,
	BookingStatusCheckedIn,
}

// PaymentMethod how the guest pays
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodCard         PaymentMethod = "card"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodOnline       PaymentMethod = "online"
)

// PaymentStatus state of the booking payment
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPartial  PaymentStatus = "partial"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// EmergencyContact guest's emergency contact
type EmergencyContact struct {
	Name         string
	Phone        string
	Relationship string
}

// Payment payment sub-record of a booking. Settled elsewhere, stored as a fact.
type Payment struct {
	Method     PaymentMethod
	Status     PaymentStatus
	AmountPaid float64
	Reference  *string
	PaidAt     *time.Time
}

// Booking is a guest stay in an apartment (the "tenant")
type Booking struct {
	ID          int64
	ApartmentID int64

	GuestName        string
	GuestEmail       string
	GuestPhone       string
	IDNumber         *string
	EmergencyContact EmergencyContact

	Stay           StayInterval
	NumberOfGuests int
	NumberOfNights int // всегда пересчитывается из Stay перед сохранением
	PricePerNight  float64
	TotalAmount    float64
	Payment        Payment

	Status             BookingStatus
	Notes              *string
	BookingRequestID   *int64
	CancellationReason *string
	CheckedInAt        *time.Time
	CheckedOutAt       *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	// Apartment is joined for display only, may be nil
	Apartment *Apartment
}

// IsActive returns true if the booking blocks other stays
func (b *Booking) IsActive() bool {
	return b.Status.IsActive()
}

// RecalculateNights derives NumberOfNights from the stay
func (b *Booking) RecalculateNights() {
	b.NumberOfNights = b.Stay.Nights()
}

// RecalculateTotal derives TotalAmount from nights and nightly price
func (b *Booking) RecalculateTotal() {
	b.TotalAmount = float64(b.NumberOfNights) * b.PricePerNight
}

// BookingsFilter filter for listing bookings
type BookingsFilter struct {
	ApartmentID *int64
	Status      *BookingStatus
	ActiveOnly  bool
	From        *time.Time // bookings checking out after From
	To          *time.Time // bookings checking in before To
}

// ValidPaymentMethod reports whether m is a known method
func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodBankTransfer, PaymentMethodOnline:
		return true
	}
	return false
}

// ValidPaymentStatus reports whether s is a known payment status
func ValidPaymentStatus(s PaymentStatus) bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPartial, PaymentStatusPaid, PaymentStatusRefunded:
		return true
	}
	return false
}

// NewPaymentReference generates a short human-readable payment reference
func NewPaymentReference() string {
	return "PAY-" + strings.ToUpper(uuid.NewString()[:8])
}
