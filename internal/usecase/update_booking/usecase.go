package update_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	apartmentRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/apartment"
	bookingRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-RentalService/internal/service/availability"
	"github.com/m04kA/SMC-RentalService/internal/service/bookings/models"
	"github.com/m04kA/SMC-RentalService/pkg/txmanager"
)

// UseCase use case для частичного обновления бронирования
type UseCase struct {
	bookingRepo   BookingRepository
	apartmentRepo ApartmentRepository
	availability  AvailabilityChecker
	txManager     TransactionManager
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	apartmentRepo ApartmentRepository,
	availability AvailabilityChecker,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		apartmentRepo: apartmentRepo,
		availability:  availability,
		txManager:     txManager,
		logger:        logger,
	}
}

// Execute применяет изменения к бронированию
// Для активной брони итоговый интервал всегда проверяется на пересечения,
// сама бронь из проверки исключается
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*models.BookingResponse, error) {
	uc.logger.Info("UpdateBooking: id=%d, schedule change=%t", req.BookingID, req.changesSchedule())

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateBooking: validation failed: %v", err)
		return nil, err
	}

	var (
		result *domain.Booking
		target *domain.Booking
	)

	// 2. Чтение, проверка и запись в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Текущее состояние брони
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("UpdateBooking: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("UpdateBooking: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		if err := validateSchedule(booking, req); err != nil {
			uc.logger.Warn("UpdateBooking: %v", err)
			return err
		}

		derivedTotal := totalIsDerived(booking)

		// 2.2. Итоговая квартира блокируется до конца транзакции
		apartmentID := booking.ApartmentID
		if req.ApartmentID != nil {
			apartmentID = *req.ApartmentID
		}
		apartment, err := uc.apartmentRepo.GetByID(txCtx, apartmentID)
		if err != nil {
			if errors.Is(err, apartmentRepo.ErrApartmentNotFound) {
				uc.logger.Warn("UpdateBooking: apartment id=%d not found", apartmentID)
				return ErrApartmentNotFound
			}
			uc.logger.Error("UpdateBooking: failed to get apartment id=%d: %v", apartmentID, err)
			return fmt.Errorf("%w: failed to get apartment: %v", ErrInternal, err)
		}

		// 2.3. Применяем изменения
		applyChanges(booking, req)
		booking.ApartmentID = apartment.ID
		target = booking

		if err := booking.Stay.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		if booking.NumberOfGuests > apartment.MaxGuests {
			uc.logger.Warn("UpdateBooking: %d guests exceed capacity %d of apartment id=%d",
				booking.NumberOfGuests, apartment.MaxGuests, apartment.ID)
			return fmt.Errorf("%w: apartment accommodates at most %d guests", ErrTooManyGuests, apartment.MaxGuests)
		}

		// 2.4. Пересечения с другими активными бронями
		if booking.IsActive() {
			if err := uc.availability.Check(txCtx, availability.OperationUpdate, apartment.ID, booking.Stay, &booking.ID); err != nil {
				return err
			}
		}

		// 2.5. Производные поля: сумма, заданная вручную, сохраняется
		booking.RecalculateNights()
		switch {
		case req.TotalAmount != nil:
			booking.TotalAmount = *req.TotalAmount
		case derivedTotal:
			booking.RecalculateTotal()
		}

		// 2.6. Сохраняем
		if err := uc.bookingRepo.Update(txCtx, booking); err != nil {
			if errors.Is(err, bookingRepo.ErrOverlap) {
				uc.logger.Warn("UpdateBooking: storage rejected overlapping stay %s: %v", booking.Stay, err)
				return fmt.Errorf("%w: %v", domain.ErrBookingConflict, err)
			}
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			uc.logger.Error("UpdateBooking: failed to update booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
		}

		booking.Apartment = apartment
		result = booking
		return nil
	})

	if err != nil {
		if txmanager.IsSerializationFailure(err) {
			uc.logger.Warn("UpdateBooking: serialization failure for booking id=%d: %v", req.BookingID, err)
			return nil, uc.describeConflict(ctx, req, target,
				fmt.Errorf("%w: concurrent booking for the same apartment", domain.ErrBookingConflict))
		}
		if errors.Is(err, domain.ErrBookingConflict) && !errors.As(err, new(*domain.ConflictError)) {
			return nil, uc.describeConflict(ctx, req, target, err)
		}
		return nil, err
	}

	uc.logger.Info("UpdateBooking: successfully updated booking id=%d, stay=%s", result.ID, result.Stay)

	return models.FromDomainBooking(result), nil
}

// applyChanges переносит заданные поля запроса в бронь
func applyChanges(b *domain.Booking, req *Request) {
	b.Stay = b.Stay.WithOverrides(req.CheckIn, req.CheckOut)

	if req.GuestName != nil {
		b.GuestName = strings.TrimSpace(*req.GuestName)
	}
	if req.GuestEmail != nil {
		b.GuestEmail = strings.TrimSpace(*req.GuestEmail)
	}
	if req.GuestPhone != nil {
		b.GuestPhone = strings.TrimSpace(*req.GuestPhone)
	}
	if req.IDNumber != nil {
		b.IDNumber = req.IDNumber
	}
	if req.EmergencyContact != nil {
		b.EmergencyContact = *req.EmergencyContact
	}
	if req.NumberOfGuests != nil {
		b.NumberOfGuests = *req.NumberOfGuests
	}
	if req.PricePerNight != nil {
		b.PricePerNight = *req.PricePerNight
	}
	if req.Notes != nil {
		b.Notes = req.Notes
	}
}

// describeConflict ищет уже зафиксированную бронь, с которой пересекается итоговый интервал.
// target может быть nil, если транзакция не дошла до применения изменений:
// тогда итоговое состояние собирается заново вне транзакции
func (uc *UseCase) describeConflict(ctx context.Context, req *Request, target *domain.Booking, fallback error) error {
	if target == nil {
		current, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
		if err != nil {
			uc.logger.Error("UpdateBooking: failed to reload booking id=%d: %v", req.BookingID, err)
			return fallback
		}
		applyChanges(current, req)
		if req.ApartmentID != nil {
			current.ApartmentID = *req.ApartmentID
		}
		target = current
	}

	blocking, err := uc.availability.FindConflict(ctx, target.ApartmentID, target.Stay, &target.ID)
	if err != nil {
		uc.logger.Error("UpdateBooking: failed to look up conflicting booking for id=%d: %v", target.ID, err)
		return fallback
	}
	if blocking == nil {
		return fallback
	}
	return domain.NewConflictError(blocking)
}
