package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе заявки
	ErrInvalidStatus = errors.New("invalid booking request status")
)

// Request модели

// CreateBookingRequestRequest заявка гостя с публичной формы
type CreateBookingRequestRequest struct {
	ApartmentID    int64     `json:"apartmentId"`
	GuestName      string    `json:"guestName"`
	GuestEmail     string    `json:"guestEmail"`
	GuestPhone     string    `json:"guestPhone"`
	IDImageURL     *string   `json:"idImageUrl,omitempty"`
	CheckIn        time.Time `json:"-"`
	CheckOut       time.Time `json:"-"`
	NumberOfGuests int       `json:"numberOfGuests"`
	Message        *string   `json:"message,omitempty"`
}

// ListBookingRequestsRequest фильтр списка заявок
type ListBookingRequestsRequest struct {
	ApartmentID *int64
	Status      *string
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingRequestsRequest) ToDomainFilter() (domain.BookingRequestsFilter, error) {
	filter := domain.BookingRequestsFilter{ApartmentID: r.ApartmentID}

	if r.Status != nil {
		status := domain.BookingRequestStatus(*r.Status)
		if !status.IsValid() {
			return filter, ErrInvalidStatus
		}
		filter.Status = &status
	}

	return filter, nil
}

// ReviewRequest решение администратора по заявке
type ReviewRequest struct {
	AdminNotes *string `json:"adminNotes,omitempty"`
}

// AddCommunicationRequest новая запись журнала общения с гостем
type AddCommunicationRequest struct {
	Channel string `json:"channel"`
	Message string `json:"message"`
	Sender  string `json:"sender"`
}

// Response модели

// CommunicationResponse запись журнала общения
type CommunicationResponse struct {
	Date    time.Time `json:"date"`
	Channel string    `json:"channel"`
	Message string    `json:"message"`
	Sender  string    `json:"sender"`
}

// BookingRequestResponse ответ с данными заявки
type BookingRequestResponse struct {
	ID                 int64                   `json:"id"`
	ApartmentID        int64                   `json:"apartmentId"`
	GuestName          string                  `json:"guestName"`
	GuestEmail         string                  `json:"guestEmail"`
	GuestPhone         string                  `json:"guestPhone"`
	IDImageURL         *string                 `json:"idImageUrl,omitempty"`
	CheckIn            string                  `json:"checkIn"`
	CheckOut           string                  `json:"checkOut"`
	NumberOfGuests     int                     `json:"numberOfGuests"`
	NumberOfNights     int                     `json:"numberOfNights"`
	PricePerNight      float64                 `json:"pricePerNight"`
	TotalAmount        float64                 `json:"totalAmount"`
	Message            *string                 `json:"message,omitempty"`
	Status             string                  `json:"status"`
	ConvertedBookingID *int64                  `json:"convertedBookingId,omitempty"`
	AdminNotes         *string                 `json:"adminNotes,omitempty"`
	Communications     []CommunicationResponse `json:"communications"`
	CreatedAt          time.Time               `json:"createdAt"`
	UpdatedAt          time.Time               `json:"updatedAt"`
}

// BookingRequestListResponse ответ со списком заявок
type BookingRequestListResponse struct {
	Requests []BookingRequestResponse `json:"requests"`
	Total    int                      `json:"total"`
}

// Конвертеры

// FromDomainRequest конвертирует domain.BookingRequest в ответ
func FromDomainRequest(r *domain.BookingRequest) *BookingRequestResponse {
	resp := &BookingRequestResponse{
		ID:                 r.ID,
		ApartmentID:        r.ApartmentID,
		GuestName:          r.GuestName,
		GuestEmail:         r.GuestEmail,
		GuestPhone:         r.GuestPhone,
		IDImageURL:         r.IDImageURL,
		CheckIn:            string(r.Stay.CheckInDate()),
		CheckOut:           string(r.Stay.CheckOutDate()),
		NumberOfGuests:     r.NumberOfGuests,
		NumberOfNights:     r.Stay.Nights(),
		PricePerNight:      r.PricePerNight,
		TotalAmount:        r.TotalAmount,
		Message:            r.Message,
		Status:             string(r.Status),
		ConvertedBookingID: r.ConvertedBookingID,
		AdminNotes:         r.AdminNotes,
		Communications:     make([]CommunicationResponse, 0, len(r.Communications)),
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}

	for _, c := range r.Communications {
		resp.Communications = append(resp.Communications, CommunicationResponse{
			Date:    c.Date,
			Channel: string(c.Channel),
			Message: c.Message,
			Sender:  c.Sender,
		})
	}

	return resp
}

// FromDomainRequestList конвертирует список заявок
func FromDomainRequestList(requests []*domain.BookingRequest) *BookingRequestListResponse {
	result := &BookingRequestListResponse{
		Requests: make([]BookingRequestResponse, 0, len(requests)),
		Total:    len(requests),
	}

	for _, r := range requests {
		result.Requests = append(result.Requests, *FromDomainRequest(r))
	}

	return result
}
