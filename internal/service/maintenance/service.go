package maintenance

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	maintenanceRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/maintenance"
	"github.com/m04kA/SMC-RentalService/internal/service/maintenance/models"
)

const maxTitleLength = 200

// Service сервис заявок на обслуживание
type Service struct {
	repo         MaintenanceRepository
	notifier     Notifier
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса обслуживания
func NewService(repo MaintenanceRepository, notifier Notifier, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		repo:         repo,
		notifier:     notifier,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// Create создает заявку в статусе pending
func (s *Service) Create(ctx context.Context, req *models.CreateMaintenanceRequest) (*models.MaintenanceResponse, error) {
	s.logger.Info("Create: apartment=%d, title=%q, priority=%s", req.ApartmentID, req.Title, req.Priority)

	m := &domain.MaintenanceRequest{
		ApartmentID: req.ApartmentID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Priority:    domain.MaintenancePriority(req.Priority),
		Status:      domain.MaintenanceStatusPending,
	}
	if m.Priority == "" {
		m.Priority = domain.PriorityMedium
	}

	switch {
	case m.ApartmentID <= 0:
		return nil, fmt.Errorf("%w: apartmentId must be positive", ErrInvalidInput)
	case m.Title == "":
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	case len(m.Title) > maxTitleLength:
		return nil, fmt.Errorf("%w: title exceeds %d characters", ErrInvalidInput, maxTitleLength)
	case !domain.ValidPriority(m.Priority):
		return nil, fmt.Errorf("%w: unknown priority %q", ErrInvalidInput, req.Priority)
	}

	created, err := s.repo.Create(ctx, m)
	if err != nil {
		if errors.Is(err, maintenanceRepo.ErrApartmentNotFound) {
			s.logger.Warn("Create: apartment id=%d not found", req.ApartmentID)
			return nil, ErrApartmentNotFound
		}
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created maintenance request id=%d", created.ID)
	s.notifier.MaintenanceCreated(ctx, created)

	return models.FromDomainMaintenance(created), nil
}

// GetByID получает заявку по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.MaintenanceResponse, error) {
	m, err := s.get(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainMaintenance(m), nil
}

// List получает заявки по фильтру
func (s *Service) List(ctx context.Context, req *models.ListMaintenanceRequest) (*models.MaintenanceListResponse, error) {
	filter := domain.MaintenanceFilter{ApartmentID: req.ApartmentID}
	if req.Status != nil {
		status := domain.MaintenanceStatus(*req.Status)
		if !status.IsValid() {
			return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *req.Status)
		}
		filter.Status = &status
	}

	list, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: found %d maintenance requests", len(list))
	return models.FromDomainMaintenanceList(list), nil
}

// ChangeStatus переводит заявку по машине состояний.
// Для статуса assigned нужен исполнитель: новый или уже назначенный
func (s *Service) ChangeStatus(ctx context.Context, id int64, req *models.ChangeStatusRequest) (*models.MaintenanceResponse, error) {
	s.logger.Info("ChangeStatus: maintenance id=%d -> %s", id, req.Status)

	next := domain.MaintenanceStatus(req.Status)
	if !next.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, req.Status)
	}

	var assignedTo *string
	if req.AssignedTo != nil {
		name := strings.TrimSpace(*req.AssignedTo)
		if name == "" {
			return nil, fmt.Errorf("%w: assignedTo must not be empty", ErrInvalidInput)
		}
		assignedTo = &name
	}

	now := s.timeProvider.Now().UTC()
	var result *domain.MaintenanceRequest

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		m, err := s.get(txCtx, "ChangeStatus", id)
		if err != nil {
			return err
		}

		if !m.Status.CanTransitionTo(next) {
			s.logger.Warn("ChangeStatus: maintenance id=%d cannot move from %s to %s", id, m.Status, next)
			return domain.TransitionError("maintenance request", m.Status, next)
		}

		if assignedTo != nil {
			m.AssignedTo = assignedTo
		}
		if next == domain.MaintenanceStatusAssigned && m.AssignedTo == nil {
			return fmt.Errorf("%w: assignedTo is required for status %s", ErrInvalidInput, next)
		}

		if err := s.repo.UpdateStatus(txCtx, id, next, m.AssignedTo, now); err != nil {
			if errors.Is(err, maintenanceRepo.ErrMaintenanceNotFound) {
				return ErrMaintenanceNotFound
			}
			s.logger.Error("ChangeStatus: repository error for id=%d: %v", id, err)
			return fmt.Errorf("%w: ChangeStatus - repository error: %v", ErrInternal, err)
		}

		m.Status = next
		if next == domain.MaintenanceStatusCompleted {
			m.CompletedAt = &now
		}
		result = m
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("ChangeStatus: maintenance id=%d is now %s", id, next)
	return models.FromDomainMaintenance(result), nil
}

// Delete удаляет заявку
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: maintenance id=%d", id)

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, maintenanceRepo.ErrMaintenanceNotFound) {
			return ErrMaintenanceNotFound
		}
		s.logger.Error("Delete: repository error for id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}
	return nil
}

func (s *Service) get(ctx context.Context, method string, id int64) (*domain.MaintenanceRequest, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, maintenanceRepo.ErrMaintenanceNotFound) {
			s.logger.Warn("%s: maintenance id=%d not found", method, id)
			return nil, ErrMaintenanceNotFound
		}
		s.logger.Error("%s: repository error for id=%d: %v", method, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
	}
	return m, nil
}
