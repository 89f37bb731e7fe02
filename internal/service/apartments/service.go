package apartments

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	apartmentRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/apartment"
	"github.com/m04kA/SMC-RentalService/internal/service/apartments/models"
)

// Service сервис квартир. Статус в ответах всегда пересчитывается
// по активным броням на текущий момент
type Service struct {
	apartmentRepo ApartmentRepository
	occupancy     OccupancyReader
	timeProvider  TimeProvider
	logger        Logger
}

// NewService создает новый экземпляр сервиса квартир
func NewService(apartmentRepo ApartmentRepository, occupancy OccupancyReader, logger Logger) *Service {
	return &Service{
		apartmentRepo: apartmentRepo,
		occupancy:     occupancy,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// WithTimeProvider подменяет источник времени
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// Create создает квартиру
func (s *Service) Create(ctx context.Context, req *models.CreateApartmentRequest) (*models.ApartmentResponse, error) {
	s.logger.Info("Create: apartment %q", req.Name)

	apartment := &domain.Apartment{
		Name:          strings.TrimSpace(req.Name),
		Address:       strings.TrimSpace(req.Address),
		Description:   req.Description,
		Bedrooms:      req.Bedrooms,
		Bathrooms:     req.Bathrooms,
		MaxGuests:     req.MaxGuests,
		PricePerNight: req.PricePerNight,
		Amenities:     req.Amenities,
		Status:        domain.ApartmentStatusAvailable,
	}

	if err := validateApartment(apartment); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	created, err := s.apartmentRepo.Create(ctx, apartment)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created apartment id=%d", created.ID)
	return models.FromDomainApartment(created), nil
}

// GetByID получает квартиру с вычисленным статусом
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ApartmentResponse, error) {
	apartment, err := s.getApartment(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if err := s.deriveStatus(ctx, []*domain.Apartment{apartment}); err != nil {
		return nil, err
	}

	return models.FromDomainApartment(apartment), nil
}

// List получает квартиры, опционально только с указанным (вычисленным) статусом
func (s *Service) List(ctx context.Context, status *string) (*models.ApartmentListResponse, error) {
	var wanted *domain.ApartmentStatus
	if status != nil {
		st := domain.ApartmentStatus(*status)
		if !domain.ValidApartmentStatus(st) {
			return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *status)
		}
		wanted = &st
	}

	// Обслуживание хранится как есть, остальное считается по броням
	var stored *domain.ApartmentStatus
	if wanted != nil && *wanted == domain.ApartmentStatusMaintenance {
		stored = wanted
	}

	apartments, err := s.apartmentRepo.List(ctx, stored)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	if err := s.deriveStatus(ctx, apartments); err != nil {
		return nil, err
	}

	if wanted != nil {
		filtered := apartments[:0]
		for _, a := range apartments {
			if a.Status == *wanted {
				filtered = append(filtered, a)
			}
		}
		apartments = filtered
	}

	s.logger.Info("List: found %d apartments", len(apartments))
	return models.FromDomainApartmentList(apartments), nil
}

// Update применяет изменения к квартире
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateApartmentRequest) (*models.ApartmentResponse, error) {
	s.logger.Info("Update: apartment id=%d", id)

	apartment, err := s.getApartment(ctx, "Update", id)
	if err != nil {
		return nil, err
	}

	if err := applyChanges(apartment, req); err != nil {
		s.logger.Warn("Update: %v", err)
		return nil, err
	}

	if err := validateApartment(apartment); err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, err
	}

	if err := s.apartmentRepo.Update(ctx, apartment); err != nil {
		if errors.Is(err, apartmentRepo.ErrApartmentNotFound) {
			return nil, ErrApartmentNotFound
		}
		s.logger.Error("Update: repository error for apartment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated apartment id=%d", id)
	return s.GetByID(ctx, id)
}

// Delete удаляет квартиру без броней
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: apartment id=%d", id)

	if err := s.apartmentRepo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, apartmentRepo.ErrApartmentNotFound):
			s.logger.Warn("Delete: apartment id=%d not found", id)
			return ErrApartmentNotFound
		case errors.Is(err, apartmentRepo.ErrApartmentInUse):
			s.logger.Warn("Delete: apartment id=%d is referenced by bookings", id)
			return ErrApartmentInUse
		}
		s.logger.Error("Delete: repository error for apartment id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	return nil
}

// deriveStatus пересчитывает статус: occupied, если активная бронь покрывает "сейчас"
func (s *Service) deriveStatus(ctx context.Context, apartments []*domain.Apartment) error {
	if len(apartments) == 0 {
		return nil
	}

	ids, err := s.occupancy.ListOccupiedApartmentIDs(ctx, s.timeProvider.Now().UTC())
	if err != nil {
		s.logger.Error("deriveStatus: failed to load occupancy: %v", err)
		return fmt.Errorf("%w: deriveStatus - occupancy: %v", ErrInternal, err)
	}

	occupied := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		occupied[id] = struct{}{}
	}

	for _, a := range apartments {
		_, ok := occupied[a.ID]
		a.ApplyOccupancy(ok)
	}

	return nil
}

func (s *Service) getApartment(ctx context.Context, method string, id int64) (*domain.Apartment, error) {
	apartment, err := s.apartmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apartmentRepo.ErrApartmentNotFound) {
			s.logger.Warn("%s: apartment id=%d not found", method, id)
			return nil, ErrApartmentNotFound
		}
		s.logger.Error("%s: repository error for apartment id=%d: %v", method, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
	}
	return apartment, nil
}

func applyChanges(a *domain.Apartment, req *models.UpdateApartmentRequest) error {
	if req.Name != nil {
		a.Name = strings.TrimSpace(*req.Name)
	}
	if req.Address != nil {
		a.Address = strings.TrimSpace(*req.Address)
	}
	if req.Description != nil {
		a.Description = req.Description
	}
	if req.Bedrooms != nil {
		a.Bedrooms = *req.Bedrooms
	}
	if req.Bathrooms != nil {
		a.Bathrooms = *req.Bathrooms
	}
	if req.MaxGuests != nil {
		a.MaxGuests = *req.MaxGuests
	}
	if req.PricePerNight != nil {
		a.PricePerNight = *req.PricePerNight
	}
	if req.Amenities != nil {
		a.Amenities = *req.Amenities
	}

	if req.Status != nil {
		switch st := domain.ApartmentStatus(*req.Status); st {
		case domain.ApartmentStatusMaintenance, domain.ApartmentStatusAvailable:
			a.Status = st
		default:
			return fmt.Errorf("%w: status %q cannot be set manually", ErrInvalidInput, *req.Status)
		}
	}

	return nil
}

func validateApartment(a *domain.Apartment) error {
	if a.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if a.Address == "" {
		return fmt.Errorf("%w: address is required", ErrInvalidInput)
	}
	if a.Bedrooms < 0 || a.Bathrooms < 0 {
		return fmt.Errorf("%w: bedrooms and bathrooms must not be negative", ErrInvalidInput)
	}
	if a.MaxGuests < domain.MinNumberOfGuests {
		return fmt.Errorf("%w: maxGuests must be at least %d", ErrInvalidInput, domain.MinNumberOfGuests)
	}
	if a.PricePerNight < 0 {
		return fmt.Errorf("%w: pricePerNight must not be negative", ErrInvalidInput)
	}
	return nil
}
