package convert_booking_request

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	apartmentRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/apartment"
	bookingRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/booking"
	requestRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/booking_request"
	"github.com/m04kA/SMC-RentalService/internal/service/availability"
	bookingModels "github.com/m04kA/SMC-RentalService/internal/service/bookings/models"
	requestModels "github.com/m04kA/SMC-RentalService/internal/service/booking_requests/models"
	"github.com/m04kA/SMC-RentalService/pkg/txmanager"
)

// UseCase use case для конвертации одобренной заявки в бронирование
type UseCase struct {
	requestRepo   RequestRepository
	bookingRepo   BookingRepository
	apartmentRepo ApartmentRepository
	availability  AvailabilityChecker
	notifier      Notifier
	txManager     TransactionManager
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	requestRepo RequestRepository,
	bookingRepo BookingRepository,
	apartmentRepo ApartmentRepository,
	availability AvailabilityChecker,
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		requestRepo:   requestRepo,
		bookingRepo:   bookingRepo,
		apartmentRepo: apartmentRepo,
		availability:  availability,
		notifier:      notifier,
		txManager:     txManager,
		logger:        logger,
	}
}

// Execute конвертирует заявку в подтвержденную бронь
// Даты заявки проверяются повторно: между одобрением и конвертацией
// квартиру могли занять другой бронью
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ConvertBookingRequest: request id=%d", req.RequestID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ConvertBookingRequest: validation failed: %v", err)
		return nil, err
	}

	var (
		booking *domain.Booking
		request *domain.BookingRequest
	)

	// 2. Все записи в одной сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Заявка блокируется, повторная конвертация невозможна
		r, err := uc.requestRepo.GetByID(txCtx, req.RequestID)
		if err != nil {
			if errors.Is(err, requestRepo.ErrRequestNotFound) {
				uc.logger.Warn("ConvertBookingRequest: request id=%d not found", req.RequestID)
				return ErrRequestNotFound
			}
			uc.logger.Error("ConvertBookingRequest: failed to get request id=%d: %v", req.RequestID, err)
			return fmt.Errorf("%w: failed to get request: %v", ErrInternal, err)
		}

		if r.Status != domain.RequestStatusApproved || !r.Status.CanTransitionTo(domain.RequestStatusConverted) {
			uc.logger.Warn("ConvertBookingRequest: request id=%d has status %s", r.ID, r.Status)
			return domain.TransitionError("booking request", r.Status, domain.RequestStatusConverted)
		}

		// 2.2. Квартира блокируется до конца транзакции
		apartment, err := uc.apartmentRepo.GetByID(txCtx, r.ApartmentID)
		if err != nil {
			if errors.Is(err, apartmentRepo.ErrApartmentNotFound) {
				uc.logger.Warn("ConvertBookingRequest: apartment id=%d not found", r.ApartmentID)
				return ErrApartmentNotFound
			}
			uc.logger.Error("ConvertBookingRequest: failed to get apartment id=%d: %v", r.ApartmentID, err)
			return fmt.Errorf("%w: failed to get apartment: %v", ErrInternal, err)
		}

		// 2.3. Повторная проверка пересечений
		if err := uc.availability.Check(txCtx, availability.OperationConvert, apartment.ID, r.Stay, nil); err != nil {
			return err
		}

		// 2.4. Бронь из снимка заявки
		created, err := uc.bookingRepo.Create(txCtx, buildBooking(r, req))
		if err != nil {
			if errors.Is(err, bookingRepo.ErrOverlap) {
				uc.logger.Warn("ConvertBookingRequest: storage rejected overlapping stay %s: %v", r.Stay, err)
				return fmt.Errorf("%w: %v", domain.ErrBookingConflict, err)
			}
			uc.logger.Error("ConvertBookingRequest: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		// 2.5. Заявка закрывается ссылкой на бронь
		if err := uc.requestRepo.MarkConverted(txCtx, r.ID, created.ID); err != nil {
			uc.logger.Error("ConvertBookingRequest: failed to mark request id=%d converted: %v", r.ID, err)
			return fmt.Errorf("%w: failed to mark request converted: %v", ErrInternal, err)
		}
		r.Status = domain.RequestStatusConverted
		r.ConvertedBookingID = &created.ID

		// 2.6. Квартира получает текущего жильца
		apartment.ApplyOccupancy(true)
		apartment.CurrentTenantID = &created.ID
		if err := uc.apartmentRepo.UpdateOccupancy(txCtx, apartment.ID, apartment.Status, apartment.CurrentTenantID); err != nil {
			uc.logger.Error("ConvertBookingRequest: failed to update apartment id=%d: %v", apartment.ID, err)
			return fmt.Errorf("%w: failed to update apartment: %v", ErrInternal, err)
		}

		created.Apartment = apartment
		booking = created
		request = r
		return nil
	})

	if err != nil {
		if txmanager.IsSerializationFailure(err) {
			uc.logger.Warn("ConvertBookingRequest: serialization failure for request id=%d: %v", req.RequestID, err)
			return nil, uc.describeConflict(ctx, req.RequestID,
				fmt.Errorf("%w: concurrent booking for the same apartment", domain.ErrBookingConflict))
		}
		if errors.Is(err, domain.ErrBookingConflict) && !errors.As(err, new(*domain.ConflictError)) {
			return nil, uc.describeConflict(ctx, req.RequestID, err)
		}
		return nil, err
	}

	uc.logger.Info("ConvertBookingRequest: request id=%d converted into booking id=%d", request.ID, booking.ID)

	uc.notifier.BookingConverted(ctx, booking, request)

	return &Response{
		Booking: bookingModels.FromDomainBooking(booking),
		Request: requestModels.FromDomainRequest(request),
	}, nil
}

// describeConflict перечитывает заявку вне откатившейся транзакции и ищет
// зафиксированную бронь на ее даты; если брони не нашлось, возвращается fallback
func (uc *UseCase) describeConflict(ctx context.Context, requestID int64, fallback error) error {
	r, err := uc.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		uc.logger.Error("ConvertBookingRequest: failed to reload request id=%d: %v", requestID, err)
		return fallback
	}

	blocking, err := uc.availability.FindConflict(ctx, r.ApartmentID, r.Stay, nil)
	if err != nil {
		uc.logger.Error("ConvertBookingRequest: failed to look up conflicting booking for request id=%d: %v", requestID, err)
		return fallback
	}
	if blocking == nil {
		return fallback
	}
	return domain.NewConflictError(blocking)
}
