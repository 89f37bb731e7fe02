package domain

import "time"

// BookingRequestStatus status of a guest's booking request
type BookingRequestStatus string

const (
	RequestStatusPending   BookingRequestStatus = "pending"
	RequestStatusApproved  BookingRequestStatus = "approved"
	RequestStatusRejected  BookingRequestStatus = "rejected"
	RequestStatusCancelled BookingRequestStatus = "cancelled"
	RequestStatusConverted BookingRequestStatus = "converted"
)

// CommunicationChannel channel used to talk to the guest
type CommunicationChannel string

const (
	ChannelEmail    CommunicationChannel = "email"
	ChannelPhone    CommunicationChannel = "phone"
	ChannelSMS      CommunicationChannel = "sms"
	ChannelWhatsApp CommunicationChannel = "whatsapp"
	ChannelInPerson CommunicationChannel = "in_person"
	ChannelNote     CommunicationChannel = "note"
)

// Communication entry of the append-only communications log (stored as JSONB)
type Communication struct {
	Date    time.Time            `json:"date"`
	Channel CommunicationChannel `json:"channel"`
	Message string               `json:"message"`
	Sender  string               `json:"sender"`
}

// BookingRequest is a prospective guest's request awaiting admin review
type BookingRequest struct {
	ID          int64
	ApartmentID int64

	GuestName  string
	GuestEmail string
	GuestPhone string
	IDImageURL *string

	Stay           StayInterval
	NumberOfGuests int
	// Pricing snapshot taken when the request was made
	PricePerNight float64
	TotalAmount   float64
	Message       *string

	Status             BookingRequestStatus
	ConvertedBookingID *int64
	AdminNotes         *string
	Communications     []Communication

	CreatedAt time.Time
	UpdatedAt time.Time
}

// BookingRequestsFilter filter for listing requests
type BookingRequestsFilter struct {
	ApartmentID *int64
	Status      *BookingRequestStatus
}

// ValidChannel reports whether c is a known channel
func ValidChannel(c CommunicationChannel) bool {
	switch c {
	case ChannelEmail, ChannelPhone, ChannelSMS, ChannelWhatsApp, ChannelInPerson, ChannelNote:
		return true
	}
	return false
}
