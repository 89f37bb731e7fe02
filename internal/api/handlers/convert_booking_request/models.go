package convert_booking_request

import (
	"github.com/m04kA/SMC-RentalService/internal/domain"
	convertRequest "github.com/m04kA/SMC-RentalService/internal/usecase/convert_booking_request"
)

// EmergencyContact контакт на экстренный случай
type EmergencyContact struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Relationship string `json:"relationship"`
}

// ConvertRequest данные, которых нет в заявке. Тело необязательно
type ConvertRequest struct {
	IDNumber         *string          `json:"idNumber,omitempty"`
	EmergencyContact EmergencyContact `json:"emergencyContact"`
	PaymentMethod    *string          `json:"paymentMethod,omitempty"`
	PaymentStatus    *string          `json:"paymentStatus,omitempty"`
	AmountPaid       float64          `json:"amountPaid"`
	PaymentReference *string          `json:"paymentReference,omitempty"`
	Notes            *string          `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ConvertRequest) ToUseCaseRequest(requestID int64) *convertRequest.Request {
	req := &convertRequest.Request{
		RequestID: requestID,
		IDNumber:  r.IDNumber,
		EmergencyContact: domain.EmergencyContact{
			Name:         r.EmergencyContact.Name,
			Phone:        r.EmergencyContact.Phone,
			Relationship: r.EmergencyContact.Relationship,
		},
		AmountPaid:       r.AmountPaid,
		PaymentReference: r.PaymentReference,
		Notes:            r.Notes,
	}

	if r.PaymentMethod != nil {
		method := domain.PaymentMethod(*r.PaymentMethod)
		req.PaymentMethod = &method
	}
	if r.PaymentStatus != nil {
		status := domain.PaymentStatus(*r.PaymentStatus)
		req.PaymentStatus = &status
	}

	return req
}
