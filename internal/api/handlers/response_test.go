package handlers_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/domain"
)

func TestRespondConflict_WritesBlockingBooking(t *testing.T) {
	conflict := domain.NewConflictError(&domain.Booking{
		ID:        7,
		GuestName: "Bob",
		Stay: domain.StayInterval{
			CheckIn:  time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			CheckOut: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		},
	})
	rec := httptest.NewRecorder()

	handlers.RespondConflict(rec, "даты заняты", fmt.Errorf("wrapped: %w", conflict))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body handlers.ConflictResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, 400, body.Code)
	assert.Equal(t, "даты заняты", body.Message)
	assert.Equal(t, handlers.ConflictDetails{
		BookingID: 7,
		GuestName: "Bob",
		CheckIn:   "2024-03-01",
		CheckOut:  "2024-03-05",
	}, body.Conflict)
}

func TestRespondConflict_DatesAreCalendarDaysInUTC(t *testing.T) {
	est := time.FixedZone("EST", -5*3600)
	conflict := domain.NewConflictError(&domain.Booking{
		ID:        9,
		GuestName: "Eve",
		Stay: domain.StayInterval{
			CheckIn:  time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC).In(est),
			CheckOut: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC).In(est),
		},
	})
	rec := httptest.NewRecorder()

	handlers.RespondConflict(rec, "даты заняты", conflict)

	var body handlers.ConflictResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "2024-03-01", body.Conflict.CheckIn)
	assert.Equal(t, "2024-03-05", body.Conflict.CheckOut)
	assert.Contains(t, conflict.Error(), "from 2024-03-01 to 2024-03-05")
}

func TestRespondConflict_WithoutDetailsFallsBackToBadRequest(t *testing.T) {
	rec := httptest.NewRecorder()

	handlers.RespondConflict(rec, "даты заняты", domain.ErrBookingConflict)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NotContains(t, rec.Body.String(), "conflict\"")
	assert.Contains(t, rec.Body.String(), "даты заняты")
}

func TestRespondInternalError_HidesDetails(t *testing.T) {
	rec := httptest.NewRecorder()

	handlers.RespondInternalError(rec)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"code":500,"message":"внутренняя ошибка сервера"}`, rec.Body.String())
}

func TestDecodeJSON(t *testing.T) {
	var v struct {
		Name string `json:"name"`
	}

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x"}`))
	require.NoError(t, handlers.DecodeJSON(r, &v))
	assert.Equal(t, "x", v.Name)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x"} {"name":"y"}`))
	assert.Error(t, handlers.DecodeJSON(r, &v))

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{bad`))
	assert.Error(t, handlers.DecodeJSON(r, &v))
}

func TestPathID(t *testing.T) {
	cases := map[string]bool{
		"12":  true,
		"0":   false,
		"-3":  false,
		"abc": false,
	}

	for raw, ok := range cases {
		t.Run(raw, func(t *testing.T) {
			r := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"bookingId": raw})

			id, err := handlers.PathID(r, "bookingId")

			if ok {
				require.NoError(t, err)
				assert.Equal(t, int64(12), id)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestQueryIDAndDates(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?excludeBookingId=5&empty=", nil)

	id, err := handlers.QueryID(r, "excludeBookingId")
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, int64(5), *id)

	id, err = handlers.QueryID(r, "empty")
	require.NoError(t, err)
	assert.Nil(t, id)

	d, err := handlers.ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), d)

	_, err = handlers.ParseDate("29.02.2024")
	assert.Error(t, err)

	empty := ""
	opt, err := handlers.ParseOptionalDate(&empty)
	require.NoError(t, err)
	assert.Nil(t, opt)
	assert.False(t, errors.Is(err, domain.ErrInvalidInterval))
}
