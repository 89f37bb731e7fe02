package booking_request

import "errors"

var (
	// ErrRequestNotFound возвращается, когда заявка не найдена
	ErrRequestNotFound = errors.New("booking_request.repository: booking request not found")

	// ErrApartmentNotFound возвращается при нарушении внешнего ключа на квартиру
	ErrApartmentNotFound = errors.New("booking_request.repository: apartment not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking_request.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking_request.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking_request.repository: failed to scan row")

	// ErrEncode возвращается при ошибке сериализации журнала коммуникаций
	ErrEncode = errors.New("booking_request.repository: failed to encode communications")
)
