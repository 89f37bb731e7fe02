package booking_requests

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/service/booking_requests/models"
)

// CreateBookingRequestRequest HTTP request model публичной формы
type CreateBookingRequestRequest struct {
	ApartmentID    int64   `json:"apartmentId"`
	GuestName      string  `json:"guestName"`
	GuestEmail     string  `json:"guestEmail"`
	GuestPhone     string  `json:"guestPhone"`
	IDImageURL     *string `json:"idImageUrl,omitempty"`
	CheckIn        string  `json:"checkIn"`
	CheckOut       string  `json:"checkOut"`
	NumberOfGuests int     `json:"numberOfGuests"`
	Message        *string `json:"message,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateBookingRequestRequest) ToServiceRequest() (*models.CreateBookingRequestRequest, error) {
	checkIn, err := handlers.ParseDate(r.CheckIn)
	if err != nil {
		return nil, err
	}

	checkOut, err := handlers.ParseDate(r.CheckOut)
	if err != nil {
		return nil, err
	}

	return &models.CreateBookingRequestRequest{
		ApartmentID:    r.ApartmentID,
		GuestName:      r.GuestName,
		GuestEmail:     r.GuestEmail,
		GuestPhone:     r.GuestPhone,
		IDImageURL:     r.IDImageURL,
		CheckIn:        checkIn,
		CheckOut:       checkOut,
		NumberOfGuests: r.NumberOfGuests,
		Message:        r.Message,
	}, nil
}

// ToListRequest собирает фильтр из query параметров apartmentId, status
func ToListRequest(query url.Values) (*models.ListBookingRequestsRequest, error) {
	req := &models.ListBookingRequestsRequest{}

	if raw := query.Get("apartmentId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid apartmentId %q", raw)
		}
		req.ApartmentID = &id
	}

	if raw := query.Get("status"); raw != "" {
		req.Status = &raw
	}

	return req, nil
}
