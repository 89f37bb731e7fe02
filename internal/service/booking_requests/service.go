package booking_requests

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	apartmentRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/apartment"
	requestRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/booking_request"
	"github.com/m04kA/SMC-RentalService/internal/service/availability"
	"github.com/m04kA/SMC-RentalService/internal/service/booking_requests/models"
)

// Service сервис для работы с заявками на бронирование
type Service struct {
	requestRepo   RequestRepository
	apartmentRepo ApartmentRepository
	availability  AvailabilityChecker
	notifier      Notifier
	txManager     TransactionManager
	timeProvider  TimeProvider
	logger        Logger
}

// NewService создает новый экземпляр сервиса заявок
func NewService(
	requestRepo RequestRepository,
	apartmentRepo ApartmentRepository,
	availability AvailabilityChecker,
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		requestRepo:   requestRepo,
		apartmentRepo: apartmentRepo,
		availability:  availability,
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

// Create принимает заявку с публичной формы.
// Пересечения проверяются без блокировки: заявка ничего не занимает,
// окончательная проверка повторяется при конвертации
func (s *Service) Create(ctx context.Context, req *models.CreateBookingRequestRequest) (*models.BookingRequestResponse, error) {
	s.logger.Info("Create: apartment=%d, guest=%q, checkIn=%s, checkOut=%s",
		req.ApartmentID, req.GuestName, req.CheckIn.Format(domain.DateFormat), req.CheckOut.Format(domain.DateFormat))

	if err := validateCreate(req); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	apartment, err := s.apartmentRepo.GetByID(ctx, req.ApartmentID)
	if err != nil {
		if errors.Is(err, apartmentRepo.ErrApartmentNotFound) {
			s.logger.Warn("Create: apartment id=%d not found", req.ApartmentID)
			return nil, ErrApartmentNotFound
		}
		s.logger.Error("Create: failed to get apartment id=%d: %v", req.ApartmentID, err)
		return nil, fmt.Errorf("%w: Create - get apartment: %v", ErrInternal, err)
	}

	if req.NumberOfGuests > apartment.MaxGuests {
		s.logger.Warn("Create: %d guests exceed capacity %d", req.NumberOfGuests, apartment.MaxGuests)
		return nil, fmt.Errorf("%w: apartment accommodates at most %d guests", ErrTooManyGuests, apartment.MaxGuests)
	}

	stay := domain.StayInterval{CheckIn: req.CheckIn, CheckOut: req.CheckOut}
	if err := s.availability.Check(ctx, availability.OperationRequest, apartment.ID, stay, nil); err != nil {
		return nil, err
	}

	// Снимок цены на момент заявки
	request := &domain.BookingRequest{
		ApartmentID:    apartment.ID,
		GuestName:      strings.TrimSpace(req.GuestName),
		GuestEmail:     strings.TrimSpace(req.GuestEmail),
		GuestPhone:     strings.TrimSpace(req.GuestPhone),
		IDImageURL:     req.IDImageURL,
		Stay:           stay,
		NumberOfGuests: req.NumberOfGuests,
		PricePerNight:  apartment.PricePerNight,
		TotalAmount:    float64(stay.Nights()) * apartment.PricePerNight,
		Message:        req.Message,
		Status:         domain.RequestStatusPending,
		Communications: []domain.Communication{},
	}

	created, err := s.requestRepo.Create(ctx, request)
	if err != nil {
		if errors.Is(err, requestRepo.ErrApartmentNotFound) {
			return nil, ErrApartmentNotFound
		}
		s.logger.Error("Create: failed to create request: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created request id=%d", created.ID)

	s.notifier.BookingRequestReceived(ctx, created)

	return models.FromDomainRequest(created), nil
}

// GetByID получает заявку по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingRequestResponse, error) {
	request, err := s.getRequest(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainRequest(request), nil
}

// List получает заявки по фильтру, новые первыми
func (s *Service) List(ctx context.Context, req *models.ListBookingRequestsRequest) (*models.BookingRequestListResponse, error) {
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	requests, err := s.requestRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: found %d requests", len(requests))
	return models.FromDomainRequestList(requests), nil
}

// Approve одобряет заявку и отправляет гостю письмо
func (s *Service) Approve(ctx context.Context, id int64, req *models.ReviewRequest) (*models.BookingRequestResponse, error) {
	updated, err := s.transition(ctx, "Approve", id, domain.RequestStatusApproved, req.AdminNotes)
	if err != nil {
		return nil, err
	}

	s.notifier.BookingRequestApproved(updated)

	return models.FromDomainRequest(updated), nil
}

// Reject отклоняет заявку и отправляет гостю письмо
func (s *Service) Reject(ctx context.Context, id int64, req *models.ReviewRequest) (*models.BookingRequestResponse, error) {
	updated, err := s.transition(ctx, "Reject", id, domain.RequestStatusRejected, req.AdminNotes)
	if err != nil {
		return nil, err
	}

	s.notifier.BookingRequestRejected(updated)

	return models.FromDomainRequest(updated), nil
}

// Cancel отменяет заявку (гость передумал)
func (s *Service) Cancel(ctx context.Context, id int64, req *models.ReviewRequest) (*models.BookingRequestResponse, error) {
	updated, err := s.transition(ctx, "Cancel", id, domain.RequestStatusCancelled, req.AdminNotes)
	if err != nil {
		return nil, err
	}
	return models.FromDomainRequest(updated), nil
}

// AddCommunication дописывает запись в журнал общения с гостем
func (s *Service) AddCommunication(ctx context.Context, id int64, req *models.AddCommunicationRequest) (*models.BookingRequestResponse, error) {
	s.logger.Info("AddCommunication: request id=%d, channel=%s", id, req.Channel)

	entry := domain.Communication{
		Date:    s.timeProvider.Now().UTC(),
		Channel: domain.CommunicationChannel(req.Channel),
		Message: strings.TrimSpace(req.Message),
		Sender:  strings.TrimSpace(req.Sender),
	}

	if !domain.ValidChannel(entry.Channel) {
		return nil, fmt.Errorf("%w: unknown channel %q", ErrInvalidInput, req.Channel)
	}
	if entry.Message == "" {
		return nil, fmt.Errorf("%w: message is required", ErrInvalidInput)
	}
	if len(entry.Message) > domain.MaxMessageLength {
		return nil, fmt.Errorf("%w: message exceeds %d characters", ErrInvalidInput, domain.MaxMessageLength)
	}
	if entry.Sender == "" {
		entry.Sender = "admin"
	}

	if err := s.requestRepo.AppendCommunication(ctx, id, entry); err != nil {
		if errors.Is(err, requestRepo.ErrRequestNotFound) {
			s.logger.Warn("AddCommunication: request id=%d not found", id)
			return nil, ErrRequestNotFound
		}
		s.logger.Error("AddCommunication: repository error: %v", err)
		return nil, fmt.Errorf("%w: AddCommunication - repository error: %v", ErrInternal, err)
	}

	return s.GetByID(ctx, id)
}

// Delete удаляет заявку
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: request id=%d", id)

	if err := s.requestRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, requestRepo.ErrRequestNotFound) {
			s.logger.Warn("Delete: request id=%d not found", id)
			return ErrRequestNotFound
		}
		s.logger.Error("Delete: repository error: %v", err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	return nil
}

// transition переводит заявку в новый статус по машине состояний
func (s *Service) transition(
	ctx context.Context,
	method string,
	id int64,
	next domain.BookingRequestStatus,
	adminNotes *string,
) (*domain.BookingRequest, error) {
	s.logger.Info("%s: request id=%d -> %s", method, id, next)

	if adminNotes != nil && len(*adminNotes) > domain.MaxNotesLength {
		return nil, fmt.Errorf("%w: adminNotes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	var result *domain.BookingRequest

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		request, err := s.getRequest(txCtx, method, id)
		if err != nil {
			return err
		}

		if !request.Status.CanTransitionTo(next) {
			s.logger.Warn("%s: request id=%d cannot move from %s to %s", method, id, request.Status, next)
			return domain.TransitionError("booking request", request.Status, next)
		}

		if err := s.requestRepo.UpdateStatus(txCtx, id, next, adminNotes); err != nil {
			if errors.Is(err, requestRepo.ErrRequestNotFound) {
				return ErrRequestNotFound
			}
			s.logger.Error("%s: failed to update request id=%d: %v", method, id, err)
			return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
		}

		request.Status = next
		if adminNotes != nil {
			request.AdminNotes = adminNotes
		}
		result = request
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("%s: request id=%d is now %s", method, id, next)
	return result, nil
}

func (s *Service) getRequest(ctx context.Context, method string, id int64) (*domain.BookingRequest, error) {
	request, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, requestRepo.ErrRequestNotFound) {
			s.logger.Warn("%s: request id=%d not found", method, id)
			return nil, ErrRequestNotFound
		}
		s.logger.Error("%s: repository error for request id=%d: %v", method, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
	}
	return request, nil
}

// validateCreate валидирует заявку с публичной формы
func validateCreate(req *models.CreateBookingRequestRequest) error {
	if req.ApartmentID <= 0 {
		return fmt.Errorf("%w: apartmentId must be positive", ErrInvalidInput)
	}

	name := strings.TrimSpace(req.GuestName)
	if name == "" {
		return fmt.Errorf("%w: guestName is required", ErrInvalidInput)
	}
	if len(name) > domain.MaxGuestNameLength {
		return fmt.Errorf("%w: guestName exceeds %d characters", ErrInvalidInput, domain.MaxGuestNameLength)
	}

	if _, err := mail.ParseAddress(strings.TrimSpace(req.GuestEmail)); err != nil {
		return fmt.Errorf("%w: guestEmail is invalid", ErrInvalidInput)
	}

	if strings.TrimSpace(req.GuestPhone) == "" {
		return fmt.Errorf("%w: guestPhone is required", ErrInvalidInput)
	}

	if req.NumberOfGuests < domain.MinNumberOfGuests {
		return fmt.Errorf("%w: numberOfGuests must be at least %d", ErrInvalidInput, domain.MinNumberOfGuests)
	}

	if err := (domain.StayInterval{CheckIn: req.CheckIn, CheckOut: req.CheckOut}).Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if req.Message != nil && len(*req.Message) > domain.MaxMessageLength {
		return fmt.Errorf("%w: message exceeds %d characters", ErrInvalidInput, domain.MaxMessageLength)
	}

	return nil
}
