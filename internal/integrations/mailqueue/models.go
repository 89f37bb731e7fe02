package mailqueue

import "time"

// Template шаблон письма, который рендерит почтовый сервис
type Template string

const (
	TemplateRequestReceived Template = "booking_request_received"
	TemplateRequestApproved Template = "booking_request_approved"
	TemplateRequestRejected Template = "booking_request_rejected"
	TemplateBookingCreated  Template = "booking_confirmed"
)

// EmailMessage событие "отправить письмо гостю", уходит в обменник как JSON
type EmailMessage struct {
	Template  Template          `json:"template"`
	To        string            `json:"to"`
	Subject   string            `json:"subject"`
	Data      map[string]string `json:"data,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
}

// Config параметры подключения к RabbitMQ
type Config struct {
	URL        string
	Exchange   string
	RoutingKey string
	Timeout    time.Duration
}
