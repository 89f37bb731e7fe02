package create_booking

import "errors"

var (
	// ErrApartmentNotFound возвращается, когда квартира не найдена
	ErrApartmentNotFound = errors.New("create_booking: apartment not found")

	// ErrTooManyGuests возвращается, когда гостей больше, чем вмещает квартира
	ErrTooManyGuests = errors.New("create_booking: number of guests exceeds apartment capacity")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
