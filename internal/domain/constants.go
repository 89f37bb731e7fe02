package domain

// Business validation constants
const (
	MaxNotesLength        = 1000
	MaxMessageLength      = 2000
	MaxGuestNameLength    = 200
	MinNumberOfGuests     = 1
	MaxCancellationReason = 500
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
