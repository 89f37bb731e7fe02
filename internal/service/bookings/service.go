package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	apartmentRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/apartment"
	bookingRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-RentalService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями после их создания:
// чтение, заезд/выезд, отмена, оплата
type Service struct {
	bookingRepo   BookingRepository
	apartmentRepo ApartmentRepository
	notifier      Notifier
	txManager     TransactionManager
	timeProvider  TimeProvider
	logger        Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	apartmentRepo ApartmentRepository,
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:   bookingRepo,
		apartmentRepo: apartmentRepo,
		notifier:      notifier,
		txManager:     txManager,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// WithTimeProvider подменяет источник времени
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// GetByID получает бронирование по ID вместе с квартирой
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	apartment, err := s.apartmentRepo.GetByID(ctx, booking.ApartmentID)
	switch {
	case err == nil:
		booking.Apartment = apartment
	case errors.Is(err, apartmentRepo.ErrApartmentNotFound):
		s.logger.Warn("GetByID: apartment id=%d of booking id=%d not found", booking.ApartmentID, id)
	default:
		s.logger.Error("GetByID: failed to get apartment id=%d: %v", booking.ApartmentID, err)
		return nil, fmt.Errorf("%w: GetByID - get apartment: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// List получает бронирования по фильтру, свежие заезды первыми
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("List: apartment=%v, status=%v, activeOnly=%t", req.ApartmentID, req.Status, req.ActiveOnly)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	if err := s.attachApartments(ctx, bookings); err != nil {
		return nil, err
	}

	s.logger.Info("List: found %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// CheckIn заселяет гостя: только подтвержденная бронь и не раньше дня заезда
func (s *Service) CheckIn(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("CheckIn: booking id=%d", id)

	now := s.timeProvider.Now().UTC()
	var result *domain.Booking

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.getBooking(txCtx, "CheckIn", id)
		if err != nil {
			return err
		}

		if !booking.Status.CanTransitionTo(domain.BookingStatusCheckedIn) {
			s.logger.Warn("CheckIn: booking id=%d has status %s", id, booking.Status)
			return domain.TransitionError("booking", booking.Status, domain.BookingStatusCheckedIn)
		}

		if startOfDay(now).Before(startOfDay(booking.Stay.CheckIn)) {
			s.logger.Warn("CheckIn: booking id=%d starts on %s", id, booking.Stay.CheckInDate())
			return fmt.Errorf("%w: check-in is not possible before %s",
				domain.ErrInvalidTransition, booking.Stay.CheckInDate())
		}

		if err := s.bookingRepo.UpdateStatus(txCtx, id, domain.BookingStatusCheckedIn, now); err != nil {
			return s.mapRepoError("CheckIn", id, err)
		}
		booking.Status = domain.BookingStatusCheckedIn
		booking.CheckedInAt = &now

		// Квартира показывает текущего жильца
		apartment, err := s.apartmentRepo.GetByID(txCtx, booking.ApartmentID)
		if err != nil {
			s.logger.Error("CheckIn: failed to get apartment id=%d: %v", booking.ApartmentID, err)
			return fmt.Errorf("%w: CheckIn - get apartment: %v", ErrInternal, err)
		}
		apartment.ApplyOccupancy(true)
		apartment.CurrentTenantID = &booking.ID
		if err := s.apartmentRepo.UpdateOccupancy(txCtx, apartment.ID, apartment.Status, apartment.CurrentTenantID); err != nil {
			s.logger.Error("CheckIn: failed to update apartment id=%d: %v", apartment.ID, err)
			return fmt.Errorf("%w: CheckIn - update apartment: %v", ErrInternal, err)
		}

		booking.Apartment = apartment
		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("CheckIn: booking id=%d checked in", id)
	s.notifier.CheckedIn(ctx, result)

	return models.FromDomainBooking(result), nil
}

// CheckOut выселяет гостя и освобождает квартиру
func (s *Service) CheckOut(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("CheckOut: booking id=%d", id)

	now := s.timeProvider.Now().UTC()
	var result *domain.Booking

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.getBooking(txCtx, "CheckOut", id)
		if err != nil {
			return err
		}

		if !booking.Status.CanTransitionTo(domain.BookingStatusCheckedOut) {
			s.logger.Warn("CheckOut: booking id=%d has status %s", id, booking.Status)
			return domain.TransitionError("booking", booking.Status, domain.BookingStatusCheckedOut)
		}

		if err := s.bookingRepo.UpdateStatus(txCtx, id, domain.BookingStatusCheckedOut, now); err != nil {
			return s.mapRepoError("CheckOut", id, err)
		}
		booking.Status = domain.BookingStatusCheckedOut
		booking.CheckedOutAt = &now

		apartment, err := s.releaseApartment(txCtx, booking)
		if err != nil {
			return err
		}

		booking.Apartment = apartment
		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("CheckOut: booking id=%d checked out", id)
	s.notifier.CheckedOut(ctx, result)

	return models.FromDomainBooking(result), nil
}

// Cancel отменяет подтвержденную бронь, даты освобождаются сразу
func (s *Service) Cancel(ctx context.Context, id int64, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: booking id=%d", id)

	reason := strings.TrimSpace(req.Reason)
	if len(reason) > domain.MaxCancellationReason {
		return nil, fmt.Errorf("%w: reason exceeds %d characters", ErrInvalidInput, domain.MaxCancellationReason)
	}

	return s.closeBooking(ctx, "Cancel", id, domain.BookingStatusCancelled, reason)
}

// MarkNoShow отмечает неявку гостя
func (s *Service) MarkNoShow(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("MarkNoShow: booking id=%d", id)
	return s.closeBooking(ctx, "MarkNoShow", id, domain.BookingStatusNoShow, "")
}

// UpdatePayment обновляет платежные данные, даты не меняются
func (s *Service) UpdatePayment(ctx context.Context, id int64, req *models.UpdatePaymentRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdatePayment: booking id=%d, status=%s", id, req.Status)

	payment := req.ToDomainPayment()
	if err := validatePayment(&payment); err != nil {
		s.logger.Warn("UpdatePayment: validation failed: %v", err)
		return nil, err
	}

	if payment.Status == domain.PaymentStatusPaid && payment.PaidAt == nil {
		paidAt := s.timeProvider.Now().UTC()
		payment.PaidAt = &paidAt
	}
	if payment.Reference == nil && payment.AmountPaid > 0 {
		ref := domain.NewPaymentReference()
		payment.Reference = &ref
	}

	if err := s.bookingRepo.UpdatePayment(ctx, id, payment); err != nil {
		return nil, s.mapRepoError("UpdatePayment", id, err)
	}

	s.logger.Info("UpdatePayment: booking id=%d payment updated", id)
	return s.GetByID(ctx, id)
}

// Delete административно удаляет бронь
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: booking id=%d", id)

	return s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.getBooking(txCtx, "Delete", id)
		if err != nil {
			return err
		}

		if booking.Status == domain.BookingStatusCheckedIn {
			if _, err := s.releaseApartment(txCtx, booking); err != nil {
				return err
			}
		}

		if err := s.bookingRepo.Delete(txCtx, id); err != nil {
			return s.mapRepoError("Delete", id, err)
		}

		s.logger.Info("Delete: booking id=%d deleted", id)
		return nil
	})
}

// Вспомогательные методы

// closeBooking переводит подтвержденную бронь в терминальный статус
func (s *Service) closeBooking(
	ctx context.Context,
	method string,
	id int64,
	next domain.BookingStatus,
	reason string,
) (*models.BookingResponse, error) {
	var result *domain.Booking

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.getBooking(txCtx, method, id)
		if err != nil {
			return err
		}

		if !booking.Status.CanTransitionTo(next) {
			s.logger.Warn("%s: booking id=%d has status %s", method, id, booking.Status)
			return domain.TransitionError("booking", booking.Status, next)
		}

		if err := s.bookingRepo.Cancel(txCtx, id, next, reason); err != nil {
			return s.mapRepoError(method, id, err)
		}

		booking.Status = next
		if reason != "" {
			booking.CancellationReason = &reason
		}
		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("%s: booking id=%d is now %s", method, id, next)
	return models.FromDomainBooking(result), nil
}

// releaseApartment снимает жильца с квартиры, если он указывает на эту бронь
func (s *Service) releaseApartment(ctx context.Context, booking *domain.Booking) (*domain.Apartment, error) {
	apartment, err := s.apartmentRepo.GetByID(ctx, booking.ApartmentID)
	if err != nil {
		if errors.Is(err, apartmentRepo.ErrApartmentNotFound) {
			s.logger.Warn("releaseApartment: apartment id=%d not found", booking.ApartmentID)
			return nil, nil
		}
		s.logger.Error("releaseApartment: failed to get apartment id=%d: %v", booking.ApartmentID, err)
		return nil, fmt.Errorf("%w: releaseApartment - get apartment: %v", ErrInternal, err)
	}

	if apartment.CurrentTenantID != nil && *apartment.CurrentTenantID != booking.ID {
		// Квартиру уже занял другой гость
		return apartment, nil
	}

	apartment.CurrentTenantID = nil
	apartment.ApplyOccupancy(false)
	if err := s.apartmentRepo.UpdateOccupancy(ctx, apartment.ID, apartment.Status, nil); err != nil {
		s.logger.Error("releaseApartment: failed to update apartment id=%d: %v", apartment.ID, err)
		return nil, fmt.Errorf("%w: releaseApartment - update apartment: %v", ErrInternal, err)
	}

	return apartment, nil
}

// attachApartments подгружает квартиры для списка одним запросом
func (s *Service) attachApartments(ctx context.Context, bookings []*domain.Booking) error {
	if len(bookings) == 0 {
		return nil
	}

	seen := make(map[int64]struct{}, len(bookings))
	ids := make([]int64, 0, len(bookings))
	for _, b := range bookings {
		if _, ok := seen[b.ApartmentID]; ok {
			continue
		}
		seen[b.ApartmentID] = struct{}{}
		ids = append(ids, b.ApartmentID)
	}

	apartments, err := s.apartmentRepo.GetByIDs(ctx, ids)
	if err != nil {
		s.logger.Error("attachApartments: failed to load apartments: %v", err)
		return fmt.Errorf("%w: attachApartments - repository error: %v", ErrInternal, err)
	}

	byID := make(map[int64]*domain.Apartment, len(apartments))
	for _, a := range apartments {
		byID[a.ID] = a
	}
	for _, b := range bookings {
		b.Apartment = byID[b.ApartmentID]
	}

	return nil
}

func (s *Service) getBooking(ctx context.Context, method string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", method, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", method, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
	}
	return booking, nil
}

func (s *Service) mapRepoError(method string, id int64, err error) error {
	if errors.Is(err, bookingRepo.ErrBookingNotFound) {
		s.logger.Warn("%s: booking id=%d not found", method, id)
		return ErrBookingNotFound
	}
	s.logger.Error("%s: repository error for booking id=%d: %v", method, id, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
}

func validatePayment(p *domain.Payment) error {
	if !domain.ValidPaymentMethod(p.Method) {
		return fmt.Errorf("%w: unknown payment method %q", ErrInvalidInput, p.Method)
	}
	if !domain.ValidPaymentStatus(p.Status) {
		return fmt.Errorf("%w: unknown payment status %q", ErrInvalidInput, p.Status)
	}
	if p.AmountPaid < 0 {
		return fmt.Errorf("%w: amountPaid must not be negative", ErrInvalidInput)
	}
	return nil
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
