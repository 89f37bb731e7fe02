package booking_requests

import "errors"

var (
	// ErrRequestNotFound возвращается, когда заявка не найдена
	ErrRequestNotFound = errors.New("booking_requests: booking request not found")

	// ErrApartmentNotFound возвращается, когда квартира не найдена
	ErrApartmentNotFound = errors.New("booking_requests: apartment not found")

	// ErrTooManyGuests возвращается, когда гостей больше, чем вмещает квартира
	ErrTooManyGuests = errors.New("booking_requests: number of guests exceeds apartment capacity")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("booking_requests: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("booking_requests: internal error")
)
