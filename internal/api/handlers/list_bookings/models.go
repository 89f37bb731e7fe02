package list_bookings

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/service/bookings/models"
)

// ToServiceRequest собирает фильтр из query параметров
// apartmentId, status, activeOnly, from, to
func ToServiceRequest(query url.Values) (*models.ListBookingsRequest, error) {
	req := &models.ListBookingsRequest{}
	var err error

	if raw := query.Get("apartmentId"); raw != "" {
		id, parseErr := strconv.ParseInt(raw, 10, 64)
		if parseErr != nil || id <= 0 {
			return nil, fmt.Errorf("invalid apartmentId %q", raw)
		}
		req.ApartmentID = &id
	}

	if raw := query.Get("status"); raw != "" {
		req.Status = &raw
	}

	if raw := query.Get("activeOnly"); raw != "" {
		if req.ActiveOnly, err = strconv.ParseBool(raw); err != nil {
			return nil, fmt.Errorf("invalid activeOnly %q", raw)
		}
	}

	from := query.Get("from")
	if req.From, err = handlers.ParseOptionalDate(&from); err != nil {
		return nil, fmt.Errorf("invalid from: %w", err)
	}

	to := query.Get("to")
	if req.To, err = handlers.ParseOptionalDate(&to); err != nil {
		return nil, fmt.Errorf("invalid to: %w", err)
	}

	return req, nil
}
