package domain

// Переходы статусов собраны здесь, чтобы сервисы не сравнивали строки вручную

var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusConfirmed: {BookingStatusCheckedIn, BookingStatusCancelled, BookingStatusNoShow},
	BookingStatusCheckedIn: {BookingStatusCheckedOut},
}

var requestTransitions = map[BookingRequestStatus][]BookingRequestStatus{
	RequestStatusPending:  {RequestStatusApproved, RequestStatusRejected, RequestStatusCancelled},
	RequestStatusApproved: {RequestStatusConverted, RequestStatusCancelled},
}

var maintenanceTransitions = map[MaintenanceStatus][]MaintenanceStatus{
	MaintenanceStatusPending: {
		MaintenanceStatusAssigned, MaintenanceStatusCancelled, MaintenanceStatusOnHold,
	},
	MaintenanceStatusAssigned: {
		MaintenanceStatusInProgress, MaintenanceStatusCancelled, MaintenanceStatusOnHold,
	},
	MaintenanceStatusInProgress: {
		MaintenanceStatusCompleted, MaintenanceStatusCancelled, MaintenanceStatusOnHold,
	},
	MaintenanceStatusOnHold: {
		MaintenanceStatusAssigned, MaintenanceStatusInProgress, MaintenanceStatusCancelled,
	},
}

func canTransition[S comparable](table map[S][]S, from, to S) bool {
	for _, next := range table[from] {
		if next == to {
			return true
		}
	}
	return false
}

// --- Booking ---

func (s BookingStatus) String() string { return string(s) }

// IsValid returns true for a known status
func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingStatusConfirmed, BookingStatusCheckedIn, BookingStatusCheckedOut,
		BookingStatusCancelled, BookingStatusNoShow:
		return true
	}
	return false
}

// IsActive returns true for statuses that block the calendar
func (s BookingStatus) IsActive() bool {
	return s == BookingStatusConfirmed || s == BookingStatusCheckedIn
}

// CanTransitionTo checks the booking status machine
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	return canTransition(bookingTransitions, s, next)
}

// IsTerminal returns true if no transition leaves s
func (s BookingStatus) IsTerminal() bool {
	return len(bookingTransitions[s]) == 0
}

// --- BookingRequest ---

func (s BookingRequestStatus) String() string { return string(s) }

func (s BookingRequestStatus) IsValid() bool {
	switch s {
	case RequestStatusPending, RequestStatusApproved, RequestStatusRejected,
		RequestStatusCancelled, RequestStatusConverted:
		return true
	}
	return false
}

func (s BookingRequestStatus) CanTransitionTo(next BookingRequestStatus) bool {
	return canTransition(requestTransitions, s, next)
}

func (s BookingRequestStatus) IsTerminal() bool {
	return len(requestTransitions[s]) == 0
}

// --- Maintenance ---

func (s MaintenanceStatus) String() string { return string(s) }

func (s MaintenanceStatus) IsValid() bool {
	switch s {
	case MaintenanceStatusPending, MaintenanceStatusAssigned, MaintenanceStatusInProgress,
		MaintenanceStatusCompleted, MaintenanceStatusCancelled, MaintenanceStatusOnHold:
		return true
	}
	return false
}

func (s MaintenanceStatus) CanTransitionTo(next MaintenanceStatus) bool {
	return canTransition(maintenanceTransitions, s, next)
}

func (s MaintenanceStatus) IsTerminal() bool {
	return len(maintenanceTransitions[s]) == 0
}
