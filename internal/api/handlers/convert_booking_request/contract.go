package convert_booking_request

import (
	"context"

	convertRequest "github.com/m04kA/SMC-RentalService/internal/usecase/convert_booking_request"
)

type ConvertUseCase interface {
	Execute(ctx context.Context, req *convertRequest.Request) (*convertRequest.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
