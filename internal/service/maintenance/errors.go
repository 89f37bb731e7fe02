package maintenance

import "errors"

var (
	// ErrMaintenanceNotFound возвращается, когда заявка не найдена
	ErrMaintenanceNotFound = errors.New("maintenance: maintenance request not found")

	// ErrApartmentNotFound возвращается, когда квартира не найдена
	ErrApartmentNotFound = errors.New("maintenance: apartment not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("maintenance: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("maintenance: internal error")
)
