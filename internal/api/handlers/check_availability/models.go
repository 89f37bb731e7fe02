package check_availability

// AvailabilityResponse ответ, когда даты свободны
type AvailabilityResponse struct {
	Available bool `json:"available"`
}
