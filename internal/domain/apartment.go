package domain

import "time"

// ApartmentStatus displayed status of an apartment
type ApartmentStatus string

const (
	ApartmentStatusAvailable   ApartmentStatus = "available"
	ApartmentStatusOccupied    ApartmentStatus = "occupied"
	ApartmentStatusMaintenance ApartmentStatus = "maintenance"
)

// Apartment is a rentable unit.
// Status reflects today only; scheduling decisions always go through the availability engine.
type Apartment struct {
	ID            int64
	Name          string
	Address       string
	Description   *string
	Bedrooms      int
	Bathrooms     int
	MaxGuests     int
	PricePerNight float64
	Amenities     []string
	Status        ApartmentStatus
	// CurrentTenantID display back-reference to the checked-in booking, not used for conflicts
	CurrentTenantID *int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ApplyOccupancy recomputes the derived status.
// Maintenance is set by an administrator and wins over occupancy.
func (a *Apartment) ApplyOccupancy(occupied bool) {
	if a.Status == ApartmentStatusMaintenance {
		return
	}
	if occupied {
		a.Status = ApartmentStatusOccupied
		return
	}
	a.Status = ApartmentStatusAvailable
}

// IsUnderMaintenance returns true if the apartment was taken out of service
func (a *Apartment) IsUnderMaintenance() bool {
	return a.Status == ApartmentStatusMaintenance
}

// ValidApartmentStatus reports whether s is a known status
func ValidApartmentStatus(s ApartmentStatus) bool {
	switch s {
	case ApartmentStatusAvailable, ApartmentStatusOccupied, ApartmentStatusMaintenance:
		return true
	}
	return false
}
