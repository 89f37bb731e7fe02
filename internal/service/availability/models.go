package availability

import "github.com/m04kA/SMC-RentalService/pkg/types"

// DateRange занятый период в виде сохраненных дат заезда/выезда
type DateRange struct {
	Start types.DateString
	End   types.DateString
}

// UnavailableDates занятые даты для отрисовки календаря
type UnavailableDates struct {
	Dates  []types.DateString // уникальные, по возрастанию
	Ranges []DateRange        // по дате заезда
}
