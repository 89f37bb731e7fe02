package create_booking

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

// UseCase use case для создания бронирования администратором
type UseCase struct {
	bookingRepo   BookingRepository
	apartmentRepo ApartmentRepository
	availability  AvailabilityChecker
	notifier      Notifier
	txManager     TransactionManager
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	apartmentRepo ApartmentRepository,
	availability AvailabilityChecker,
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		apartmentRepo: apartmentRepo,
		availability:  availability,
		notifier:      notifier,
		txManager:     txManager,
		logger:        logger,
	}
}

// Execute выполняет use case создания бронирования
// Проверка пересечений и запись выполняются в одной сериализуемой транзакции
// под блокировкой строки квартиры
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*models.BookingResponse, error) {
	uc.logger.Info("CreateBooking: apartment=%d, guest=%q, checkIn=%s, checkOut=%s",
		req.ApartmentID, req.GuestName, req.CheckIn.Format(domain.DateFormat), req.CheckOut.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	stay := domain.StayInterval{CheckIn: req.CheckIn, CheckOut: req.CheckOut}

	var result *domain.Booking

	// 2. Проверка и запись в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Квартира блокируется до конца транзакции
		apartment, err := uc.apartmentRepo.GetByID(txCtx, req.ApartmentID)
		if err != nil {
			if errors.Is(err, apartmentRepo.ErrApartmentNotFound) {
				uc.logger.Warn("CreateBooking: apartment id=%d not found", req.ApartmentID)
				return ErrApartmentNotFound
			}
			uc.logger.Error("CreateBooking: failed to get apartment id=%d: %v", req.ApartmentID, err)
			return fmt.Errorf("%w: failed to get apartment: %v", ErrInternal, err)
		}

		if req.NumberOfGuests > apartment.MaxGuests {
			uc.logger.Warn("CreateBooking: %d guests exceed capacity %d of apartment id=%d",
				req.NumberOfGuests, apartment.MaxGuests, apartment.ID)
			return fmt.Errorf("%w: apartment accommodates at most %d guests", ErrTooManyGuests, apartment.MaxGuests)
		}

		// 2.2. Пересечения с активными бронями
		if err := uc.availability.Check(txCtx, availability.OperationCreate, apartment.ID, stay, nil); err != nil {
			return err
		}

		// 2.3. Собираем бронь, производные поля пересчитываются
		booking := &domain.Booking{
			ApartmentID:      apartment.ID,
			GuestName:        strings.TrimSpace(req.GuestName),
			GuestEmail:       strings.TrimSpace(req.GuestEmail),
			GuestPhone:       strings.TrimSpace(req.GuestPhone),
			IDNumber:         req.IDNumber,
			EmergencyContact: req.EmergencyContact,
			Stay:             stay,
			NumberOfGuests:   req.NumberOfGuests,
			PricePerNight:    apartment.PricePerNight,
			Payment:          buildPayment(req),
			Status:           domain.BookingStatusConfirmed,
			Notes:            req.Notes,
		}
		if req.PricePerNight != nil {
			booking.PricePerNight = *req.PricePerNight
		}
		booking.RecalculateNights()
		booking.RecalculateTotal()
		if req.TotalAmount != nil {
			booking.TotalAmount = *req.TotalAmount
		}

		// 2.4. Сохраняем
		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrOverlap) {
				uc.logger.Warn("CreateBooking: storage rejected overlapping stay %s: %v", stay, err)
				return fmt.Errorf("%w: %v", domain.ErrBookingConflict, err)
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		created.Apartment = apartment
		result = created
		return nil
	})

	if err != nil {
		// Повторы исчерпаны: конкурирующая транзакция заняла эти даты
		if txmanager.IsSerializationFailure(err) {
			uc.logger.Warn("CreateBooking: serialization failure for apartment id=%d: %v", req.ApartmentID, err)
			return nil, uc.describeConflict(ctx, req.ApartmentID, stay,
				fmt.Errorf("%w: concurrent booking for the same apartment", domain.ErrBookingConflict))
		}
		// Отказ хранилища без описания брони: дочитываем победившую бронь
		if errors.Is(err, domain.ErrBookingConflict) && !errors.As(err, new(*domain.ConflictError)) {
			return nil, uc.describeConflict(ctx, req.ApartmentID, stay, err)
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, nights=%d", result.ID, result.NumberOfNights)

	uc.notifier.BookingCreated(ctx, result)

	return models.FromDomainBooking(result), nil
}

// describeConflict ищет уже зафиксированную бронь, из-за которой отклонена запись.
// Чтение идет вне откатившейся транзакции; если брони не нашлось, возвращается fallback
func (uc *UseCase) describeConflict(ctx context.Context, apartmentID int64, stay domain.StayInterval, fallback error) error {
	blocking, err := uc.availability.FindConflict(ctx, apartmentID, stay, nil)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to look up conflicting booking for apartment id=%d: %v", apartmentID, err)
		return fallback
	}
	if blocking == nil {
		return fallback
	}
	return domain.NewConflictError(blocking)
}
