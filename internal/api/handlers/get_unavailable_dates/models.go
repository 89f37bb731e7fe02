package get_unavailable_dates

import "github.com/m04kA/SMC-RentalService/internal/service/availability"

// DateRangeResponse занятый период, end это день выезда
type DateRangeResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// UnavailableDatesResponse занятые даты для календаря
type UnavailableDatesResponse struct {
	Dates  []string            `json:"dates"`
	Ranges []DateRangeResponse `json:"ranges"`
}

// FromServiceResponse конвертирует ответ движка доступности в HTTP response
func FromServiceResponse(u *availability.UnavailableDates) *UnavailableDatesResponse {
	resp := &UnavailableDatesResponse{
		Dates:  make([]string, 0, len(u.Dates)),
		Ranges: make([]DateRangeResponse, 0, len(u.Ranges)),
	}

	for _, d := range u.Dates {
		resp.Dates = append(resp.Dates, d.String())
	}

	for _, r := range u.Ranges {
		resp.Ranges = append(resp.Ranges, DateRangeResponse{
			Start: r.Start.String(),
			End:   r.End.String(),
		})
	}

	return resp
}
