package availability

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	apartmentRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/apartment"
	"github.com/m04kA/SMC-RentalService/pkg/types"
)

// Операции, по которым считаются конфликты в метриках
const (
	OperationCheck   = "check"
	OperationCreate  = "create"
	OperationUpdate  = "update"
	OperationConvert = "convert"
	OperationRequest = "request"
)

// Engine отвечает на вопрос "свободна ли квартира на эти даты".
// Через него проходят все пути, которые пишут даты активной брони.
type Engine struct {
	bookingRepo   BookingRepository
	apartmentRepo ApartmentRepository
	conflicts     ConflictCounter
	logger        Logger
}

// NewEngine создает движок доступности. conflicts может быть nil
func NewEngine(
	bookingRepo BookingRepository,
	apartmentRepo ApartmentRepository,
	conflicts ConflictCounter,
	logger Logger,
) *Engine {
	return &Engine{
		bookingRepo:   bookingRepo,
		apartmentRepo: apartmentRepo,
		conflicts:     conflicts,
		logger:        logger,
	}
}

// FindConflict возвращает первую активную бронь квартиры, пересекающую candidate,
// или nil. Бронь с ID excludeBookingID не учитывается (редактирование самой себя).
// Внутри транзакции брони читаются с блокировкой
func (e *Engine) FindConflict(
	ctx context.Context,
	apartmentID int64,
	candidate domain.StayInterval,
	excludeBookingID *int64,
) (*domain.Booking, error) {
	bookings, err := e.bookingRepo.ListActiveByApartment(ctx, apartmentID)
	if err != nil {
		e.logger.Error("FindConflict: failed to load bookings for apartment=%d: %v", apartmentID, err)
		return nil, fmt.Errorf("%w: FindConflict - load bookings: %v", ErrInternal, err)
	}

	return FirstConflict(bookings, candidate, excludeBookingID), nil
}

// Check как FindConflict, но конфликт возвращается ошибкой *domain.ConflictError
func (e *Engine) Check(
	ctx context.Context,
	operation string,
	apartmentID int64,
	candidate domain.StayInterval,
	excludeBookingID *int64,
) error {
	conflict, err := e.FindConflict(ctx, apartmentID, candidate, excludeBookingID)
	if err != nil {
		return err
	}

	if conflict == nil {
		return nil
	}

	e.logger.Warn("Check(%s): apartment=%d stay %s overlaps booking id=%d %s",
		operation, apartmentID, candidate, conflict.ID, conflict.Stay)
	e.countConflict(operation)

	return domain.NewConflictError(conflict)
}

// CheckAvailability проверка для эндпоинта: квартира существует, даты корректны, пересечений нет
func (e *Engine) CheckAvailability(
	ctx context.Context,
	apartmentID int64,
	candidate domain.StayInterval,
	excludeBookingID *int64,
) error {
	if apartmentID <= 0 {
		return fmt.Errorf("%w: apartmentId must be positive", ErrInvalidInput)
	}

	if err := candidate.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := e.ensureApartment(ctx, apartmentID); err != nil {
		return err
	}

	return e.Check(ctx, OperationCheck, apartmentID, candidate, excludeBookingID)
}

// UnavailableDates занятые даты и периоды квартиры для календаря
func (e *Engine) UnavailableDates(
	ctx context.Context,
	apartmentID int64,
	excludeBookingID *int64,
) (*UnavailableDates, error) {
	if apartmentID <= 0 {
		return nil, fmt.Errorf("%w: apartmentId must be positive", ErrInvalidInput)
	}

	if err := e.ensureApartment(ctx, apartmentID); err != nil {
		return nil, err
	}

	bookings, err := e.bookingRepo.ListActiveByApartment(ctx, apartmentID)
	if err != nil {
		e.logger.Error("UnavailableDates: failed to load bookings for apartment=%d: %v", apartmentID, err)
		return nil, fmt.Errorf("%w: UnavailableDates - load bookings: %v", ErrInternal, err)
	}

	result := BuildUnavailableDates(bookings, excludeBookingID)
	e.logger.Info("UnavailableDates: apartment=%d, %d ranges, %d dates",
		apartmentID, len(result.Ranges), len(result.Dates))

	return result, nil
}

func (e *Engine) ensureApartment(ctx context.Context, apartmentID int64) error {
	_, err := e.apartmentRepo.GetByID(ctx, apartmentID)
	if err == nil {
		return nil
	}

	if errors.Is(err, apartmentRepo.ErrApartmentNotFound) {
		e.logger.Warn("availability: apartment id=%d not found", apartmentID)
		return ErrApartmentNotFound
	}

	e.logger.Error("availability: failed to get apartment id=%d: %v", apartmentID, err)
	return fmt.Errorf("%w: get apartment: %v", ErrInternal, err)
}

func (e *Engine) countConflict(operation string) {
	if e.conflicts != nil {
		e.conflicts.IncBookingConflict(operation)
	}
}

// FirstConflict линейный поиск первой активной брони, пересекающей candidate
func FirstConflict(bookings []*domain.Booking, candidate domain.StayInterval, excludeBookingID *int64) *domain.Booking {
	for _, b := range bookings {
		if excluded(b, excludeBookingID) || !b.IsActive() {
			continue
		}
		if b.Stay.Overlaps(candidate) {
			return b
		}
	}
	return nil
}

// BuildUnavailableDates собирает периоды (по дате заезда) и множество занятых дат
func BuildUnavailableDates(bookings []*domain.Booking, excludeBookingID *int64) *UnavailableDates {
	active := make([]*domain.Booking, 0, len(bookings))
	for _, b := range bookings {
		if excluded(b, excludeBookingID) || !b.IsActive() {
			continue
		}
		active = append(active, b)
	}

	sort.SliceStable(active, func(i, j int) bool {
		return active[i].Stay.CheckIn.Before(active[j].Stay.CheckIn)
	})

	result := &UnavailableDates{
		Dates:  make([]types.DateString, 0),
		Ranges: make([]DateRange, 0, len(active)),
	}

	seen := make(map[types.DateString]struct{})
	for _, b := range active {
		result.Ranges = append(result.Ranges, DateRange{
			Start: types.NewDateString(b.Stay.CheckIn),
			End:   types.NewDateString(b.Stay.CheckOut),
		})

		for _, d := range b.Stay.OccupiedDates() {
			if _, ok := seen[d]; ok {
				continue
			}
			seen[d] = struct{}{}
			result.Dates = append(result.Dates, d)
		}
	}

	// Формат YYYY-MM-DD сортируется лексикографически
	sort.Slice(result.Dates, func(i, j int) bool {
		return result.Dates[i].IsBefore(result.Dates[j])
	})

	return result
}

func excluded(b *domain.Booking, excludeBookingID *int64) bool {
	return excludeBookingID != nil && b.ID == *excludeBookingID
}
