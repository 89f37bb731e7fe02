package domain

import "time"

// NotificationType kind of admin notification
type NotificationType string

const (
	NotificationBookingRequest   NotificationType = "booking_request"
	NotificationBookingCreated   NotificationType = "booking_created"
	NotificationBookingConverted NotificationType = "booking_converted"
	NotificationCheckIn          NotificationType = "check_in"
	NotificationCheckOut         NotificationType = "check_out"
	NotificationMaintenance      NotificationType = "maintenance"
)

// AdminNotification dashboard notification for administrators
type AdminNotification struct {
	ID        int64
	Type      NotificationType
	Title     string
	Message   string
	RelatedID *int64
	IsRead    bool
	CreatedAt time.Time
}
