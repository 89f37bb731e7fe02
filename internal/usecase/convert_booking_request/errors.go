package convert_booking_request

import "errors"

var (
	// ErrRequestNotFound возвращается, когда заявка не найдена
	ErrRequestNotFound = errors.New("convert_booking_request: booking request not found")

	// ErrApartmentNotFound возвращается, когда квартира заявки удалена
	ErrApartmentNotFound = errors.New("convert_booking_request: apartment not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("convert_booking_request: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("convert_booking_request: internal error")
)
