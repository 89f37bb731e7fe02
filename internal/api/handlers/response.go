package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

const (
	msgInternalError = "внутренняя ошибка сервера"

	// maxBodyBytes ограничение размера JSON тела запроса
	maxBodyBytes = 1 << 20
)

// ErrorResponse стандартный ответ с ошибкой
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ConflictDetails бронь, из-за которой даты недоступны
type ConflictDetails struct {
	BookingID int64  `json:"bookingId"`
	GuestName string `json:"guestName"`
	CheckIn   string `json:"checkIn"`
	CheckOut  string `json:"checkOut"`
}

// ConflictResponse ответ 400 с описанием конфликтующей брони
type ConflictResponse struct {
	Code     int             `json:"code"`
	Message  string          `json:"message"`
	Conflict ConflictDetails `json:"conflict"`
}

// RespondJSON отправляет JSON ответ
func RespondJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if data == nil {
		return
	}

	_ = json.NewEncoder(w).Encode(data)
}

// RespondNoContent отправляет 204 без тела
func RespondNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// RespondError отправляет ошибку с указанным кодом
func RespondError(w http.ResponseWriter, statusCode int, message string) {
	RespondJSON(w, statusCode, ErrorResponse{
		Code:    statusCode,
		Message: message,
	})
}

// RespondBadRequest отправляет 400
func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

// RespondNotFound отправляет 404
func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

// RespondUnauthorized отправляет 401
func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, message)
}

// RespondForbidden отправляет 403
func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, message)
}

// RespondInternalError отправляет 500 с общим сообщением
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}

// RespondConflict отправляет 400 с данными конфликтующей брони.
// Если в цепочке ошибок нет *domain.ConflictError, отправляется обычный 400
func RespondConflict(w http.ResponseWriter, message string, err error) {
	var conflict *domain.ConflictError
	if !errors.As(err, &conflict) {
		RespondBadRequest(w, message)
		return
	}

	RespondJSON(w, http.StatusBadRequest, ConflictResponse{
		Code:    http.StatusBadRequest,
		Message: message,
		Conflict: ConflictDetails{
			BookingID: conflict.BookingID,
			GuestName: conflict.GuestName,
			CheckIn:   string(conflict.Stay.CheckInDate()),
			CheckOut:  string(conflict.Stay.CheckOutDate()),
		},
	})
}

// DecodeJSON декодирует тело запроса в v. Пустое тело и лишние данные считаются ошибкой
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return errors.New("empty request body")
	}

	decoder := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	if err := decoder.Decode(v); err != nil {
		return err
	}

	if decoder.More() {
		return errors.New("unexpected data after JSON body")
	}

	return nil
}

// PathID достает положительный int64 из переменной маршрута
func PathID(r *http.Request, name string) (int64, error) {
	raw := mux.Vars(r)[name]

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %d", name, id)
	}

	return id, nil
}

// QueryID необязательный положительный int64 из query string
func QueryID(r *http.Request, name string) (*int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, err
	}
	if id <= 0 {
		return nil, fmt.Errorf("%s must be positive, got %d", name, id)
	}

	return &id, nil
}

// ParseDate парсит дату YYYY-MM-DD в полночь UTC
func ParseDate(s string) (time.Time, error) {
	return time.Parse(domain.DateFormat, s)
}

// ParseOptionalDate парсит дату, nil для пустой строки
func ParseOptionalDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}

	t, err := ParseDate(*s)
	if err != nil {
		return nil, err
	}

	return &t, nil
}

// QueryString необязательный параметр query string, nil для пустого значения
func QueryString(r *http.Request, name string) *string {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	return &raw
}
