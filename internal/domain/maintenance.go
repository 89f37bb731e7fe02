package domain

import "time"

// MaintenanceStatus status of a maintenance ticket
type MaintenanceStatus string

const (
	MaintenanceStatusPending    MaintenanceStatus = "pending"
	MaintenanceStatusAssigned   MaintenanceStatus = "assigned"
	MaintenanceStatusInProgress MaintenanceStatus = "in_progress"
	MaintenanceStatusCompleted  MaintenanceStatus = "completed"
	MaintenanceStatusCancelled  MaintenanceStatus = "cancelled"
	MaintenanceStatusOnHold     MaintenanceStatus = "on_hold"
)

// MaintenancePriority urgency of a ticket
type MaintenancePriority string

const (
	PriorityLow    MaintenancePriority = "low"
	PriorityMedium MaintenancePriority = "medium"
	PriorityHigh   MaintenancePriority = "high"
	PriorityUrgent MaintenancePriority = "urgent"
)

// MaintenanceRequest is a repair/service ticket for an apartment
type MaintenanceRequest struct {
	ID          int64
	ApartmentID int64
	Title       string
	Description *string
	Priority    MaintenancePriority
	Status      MaintenanceStatus
	AssignedTo  *string
	CompletedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// MaintenanceFilter filter for listing tickets
type MaintenanceFilter struct {
	ApartmentID *int64
	Status      *MaintenanceStatus
}

// ValidPriority reports whether p is a known priority
func ValidPriority(p MaintenancePriority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}
