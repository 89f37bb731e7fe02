package apartments

import "errors"

var (
	// ErrApartmentNotFound возвращается, когда квартира не найдена
	ErrApartmentNotFound = errors.New("apartments: apartment not found")

	// ErrApartmentInUse возвращается при удалении квартиры, на которую ссылаются брони
	ErrApartmentInUse = errors.New("apartments: apartment has bookings")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("apartments: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("apartments: internal error")
)
