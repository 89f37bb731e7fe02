package models

import (
	"time"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// CreateMaintenanceRequest запрос на создание заявки на обслуживание
type CreateMaintenanceRequest struct {
	ApartmentID int64   `json:"apartmentId"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Priority    string  `json:"priority"`
}

// ChangeStatusRequest смена статуса, опционально с исполнителем
type ChangeStatusRequest struct {
	Status     string  `json:"status"`
	AssignedTo *string `json:"assignedTo,omitempty"`
}

// ListMaintenanceRequest фильтр списка
type ListMaintenanceRequest struct {
	ApartmentID *int64
	Status      *string
}

// MaintenanceResponse ответ с данными заявки
type MaintenanceResponse struct {
	ID          int64      `json:"id"`
	ApartmentID int64      `json:"apartmentId"`
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	Priority    string     `json:"priority"`
	Status      string     `json:"status"`
	AssignedTo  *string    `json:"assignedTo,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// MaintenanceListResponse ответ со списком заявок
type MaintenanceListResponse struct {
	Requests []MaintenanceResponse `json:"requests"`
	Total    int                   `json:"total"`
}

// FromDomainMaintenance конвертирует domain.MaintenanceRequest в ответ
func FromDomainMaintenance(m *domain.MaintenanceRequest) *MaintenanceResponse {
	return &MaintenanceResponse{
		ID:          m.ID,
		ApartmentID: m.ApartmentID,
		Title:       m.Title,
		Description: m.Description,
		Priority:    string(m.Priority),
		Status:      string(m.Status),
		AssignedTo:  m.AssignedTo,
		CompletedAt: m.CompletedAt,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// FromDomainMaintenanceList конвертирует список заявок
func FromDomainMaintenanceList(list []*domain.MaintenanceRequest) *MaintenanceListResponse {
	result := &MaintenanceListResponse{
		Requests: make([]MaintenanceResponse, 0, len(list)),
		Total:    len(list),
	}
	for _, m := range list {
		result.Requests = append(result.Requests, *FromDomainMaintenance(m))
	}
	return result
}
