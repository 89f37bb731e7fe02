package models

import (
	"time"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// CreateApartmentRequest запрос на создание квартиры
type CreateApartmentRequest struct {
	Name          string   `json:"name"`
	Address       string   `json:"address"`
	Description   *string  `json:"description,omitempty"`
	Bedrooms      int      `json:"bedrooms"`
	Bathrooms     int      `json:"bathrooms"`
	MaxGuests     int      `json:"maxGuests"`
	PricePerNight float64  `json:"pricePerNight"`
	Amenities     []string `json:"amenities"`
}

// UpdateApartmentRequest частичное обновление квартиры, nil означает "не менять".
// Status принимает только available и maintenance: занятость вычисляется по броням
type UpdateApartmentRequest struct {
	Name          *string   `json:"name,omitempty"`
	Address       *string   `json:"address,omitempty"`
	Description   *string   `json:"description,omitempty"`
	Bedrooms      *int      `json:"bedrooms,omitempty"`
	Bathrooms     *int      `json:"bathrooms,omitempty"`
	MaxGuests     *int      `json:"maxGuests,omitempty"`
	PricePerNight *float64  `json:"pricePerNight,omitempty"`
	Amenities     *[]string `json:"amenities,omitempty"`
	Status        *string   `json:"status,omitempty"`
}

// ApartmentResponse ответ с данными квартиры
type ApartmentResponse struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Address         string    `json:"address"`
	Description     *string   `json:"description,omitempty"`
	Bedrooms        int       `json:"bedrooms"`
	Bathrooms       int       `json:"bathrooms"`
	MaxGuests       int       `json:"maxGuests"`
	PricePerNight   float64   `json:"pricePerNight"`
	Amenities       []string  `json:"amenities"`
	Status          string    `json:"status"`
	CurrentTenantID *int64    `json:"currentTenantId,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// ApartmentListResponse ответ со списком квартир
type ApartmentListResponse struct {
	Apartments []ApartmentResponse `json:"apartments"`
	Total      int                 `json:"total"`
}

// FromDomainApartment конвертирует domain.Apartment в ответ
func FromDomainApartment(a *domain.Apartment) *ApartmentResponse {
	amenities := a.Amenities
	if amenities == nil {
		amenities = []string{}
	}

	return &ApartmentResponse{
		ID:              a.ID,
		Name:            a.Name,
		Address:         a.Address,
		Description:     a.Description,
		Bedrooms:        a.Bedrooms,
		Bathrooms:       a.Bathrooms,
		MaxGuests:       a.MaxGuests,
		PricePerNight:   a.PricePerNight,
		Amenities:       amenities,
		Status:          string(a.Status),
		CurrentTenantID: a.CurrentTenantID,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

// FromDomainApartmentList конвертирует список квартир
func FromDomainApartmentList(apartments []*domain.Apartment) *ApartmentListResponse {
	result := &ApartmentListResponse{
		Apartments: make([]ApartmentResponse, 0, len(apartments)),
		Total:      len(apartments),
	}

	for _, a := range apartments {
		result.Apartments = append(result.Apartments, *FromDomainApartment(a))
	}

	return result
}
