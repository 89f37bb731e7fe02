package apartments_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	apartmentRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/apartment"
	"github.com/m04kA/SMC-RentalService/internal/service/apartments"
	"github.com/m04kA/SMC-RentalService/internal/service/apartments/models"
	"github.com/m04kA/SMC-RentalService/pkg/logger"
	"github.com/m04kA/SMC-RentalService/pkg/ptr"
)

// ---- mocks ----

type mockApartmentRepo struct {
	createFn  func(ctx context.Context, a *domain.Apartment) (*domain.Apartment, error)
	getByIDFn func(ctx context.Context, id int64) (*domain.Apartment, error)
	listFn    func(ctx context.Context, status *domain.ApartmentStatus) ([]*domain.Apartment, error)
	updateFn  func(ctx context.Context, a *domain.Apartment) error
	deleteFn  func(ctx context.Context, id int64) error
}

var _ apartments.ApartmentRepository = (*mockApartmentRepo)(nil)

func (m *mockApartmentRepo) Create(ctx context.Context, a *domain.Apartment) (*domain.Apartment, error) {
	return m.createFn(ctx, a)
}

func (m *mockApartmentRepo) GetByID(ctx context.Context, id int64) (*domain.Apartment, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockApartmentRepo) List(ctx context.Context, status *domain.ApartmentStatus) ([]*domain.Apartment, error) {
	return m.listFn(ctx, status)
}

func (m *mockApartmentRepo) Update(ctx context.Context, a *domain.Apartment) error {
	return m.updateFn(ctx, a)
}

func (m *mockApartmentRepo) Delete(ctx context.Context, id int64) error {
	return m.deleteFn(ctx, id)
}

type mockOccupancy struct {
	ids []int64
	at  time.Time
	err error
}

var _ apartments.OccupancyReader = (*mockOccupancy)(nil)

func (m *mockOccupancy) ListOccupiedApartmentIDs(ctx context.Context, at time.Time) ([]int64, error) {
	m.at = at
	return m.ids, m.err
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

func stored() []*domain.Apartment {
	return []*domain.Apartment{
		{ID: 1, Name: "A", Status: domain.ApartmentStatusAvailable},
		{ID: 2, Name: "B", Status: domain.ApartmentStatusOccupied},
		{ID: 3, Name: "C", Status: domain.ApartmentStatusMaintenance},
	}
}

// ---- tests ----

func TestList_DerivesStatusFromActiveBookings(t *testing.T) {
	now := time.Date(2024, 3, 3, 10, 0, 0, 0, time.UTC)
	occ := &mockOccupancy{ids: []int64{1, 3}}
	repo := &mockApartmentRepo{listFn: func(ctx context.Context, status *domain.ApartmentStatus) ([]*domain.Apartment, error) {
		assert.Nil(t, status)
		return stored(), nil
	}}
	svc := apartments.NewService(repo, occ, logger.Nop{}).WithTimeProvider(fixedTime{t: now})

	resp, err := svc.List(context.Background(), nil)

	require.NoError(t, err)
	require.Equal(t, 3, resp.Total)
	assert.Equal(t, "occupied", resp.Apartments[0].Status)
	// Выезд уже был, в базе устаревший occupied
	assert.Equal(t, "available", resp.Apartments[1].Status)
	// Обслуживание важнее занятости
	assert.Equal(t, "maintenance", resp.Apartments[2].Status)
	assert.Equal(t, now, occ.at)
}

func TestList_FilterByDerivedStatus(t *testing.T) {
	repo := &mockApartmentRepo{listFn: func(ctx context.Context, status *domain.ApartmentStatus) ([]*domain.Apartment, error) {
		return stored(), nil
	}}
	svc := apartments.NewService(repo, &mockOccupancy{ids: []int64{1}}, logger.Nop{})

	resp, err := svc.List(context.Background(), ptr.Ptr("available"))

	require.NoError(t, err)
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, int64(2), resp.Apartments[0].ID)

	_, err = svc.List(context.Background(), ptr.Ptr("demolished"))
	assert.ErrorIs(t, err, apartments.ErrInvalidInput)
}

func TestCreate(t *testing.T) {
	repo := &mockApartmentRepo{createFn: func(ctx context.Context, a *domain.Apartment) (*domain.Apartment, error) {
		a.ID = 10
		return a, nil
	}}
	svc := apartments.NewService(repo, &mockOccupancy{}, logger.Nop{})

	resp, err := svc.Create(context.Background(), &models.CreateApartmentRequest{
		Name: "Loft", Address: "Main st 1", MaxGuests: 2, PricePerNight: 120,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(10), resp.ID)
	assert.Equal(t, "available", resp.Status)
	assert.NotNil(t, resp.Amenities)

	_, err = svc.Create(context.Background(), &models.CreateApartmentRequest{Name: "Loft", Address: "x"})
	assert.ErrorIs(t, err, apartments.ErrInvalidInput)
}

func TestUpdate_MaintenanceCanBeSetButOccupiedCannot(t *testing.T) {
	var saved *domain.Apartment
	repo := &mockApartmentRepo{
		getByIDFn: func(ctx context.Context, id int64) (*domain.Apartment, error) {
			if saved != nil {
				cp := *saved
				return &cp, nil
			}
			return &domain.Apartment{ID: id, Name: "A", Address: "x", MaxGuests: 2, Status: domain.ApartmentStatusAvailable}, nil
		},
		updateFn: func(ctx context.Context, a *domain.Apartment) error {
			cp := *a
			saved = &cp
			return nil
		},
	}
	svc := apartments.NewService(repo, &mockOccupancy{ids: []int64{1}}, logger.Nop{})

	resp, err := svc.Update(context.Background(), 1, &models.UpdateApartmentRequest{Status: ptr.Ptr("maintenance")})
	require.NoError(t, err)
	assert.Equal(t, "maintenance", resp.Status)

	_, err = svc.Update(context.Background(), 1, &models.UpdateApartmentRequest{Status: ptr.Ptr("occupied")})
	assert.ErrorIs(t, err, apartments.ErrInvalidInput)
}

func TestGetAndDelete_Errors(t *testing.T) {
	repo := &mockApartmentRepo{
		getByIDFn: func(ctx context.Context, id int64) (*domain.Apartment, error) {
			return nil, apartmentRepo.ErrApartmentNotFound
		},
		deleteFn: func(ctx context.Context, id int64) error {
			if id == 1 {
				return apartmentRepo.ErrApartmentInUse
			}
			return errors.New("boom")
		},
	}
	svc := apartments.NewService(repo, &mockOccupancy{}, logger.Nop{})

	_, err := svc.GetByID(context.Background(), 5)
	assert.ErrorIs(t, err, apartments.ErrApartmentNotFound)

	assert.ErrorIs(t, svc.Delete(context.Background(), 1), apartments.ErrApartmentInUse)
	assert.ErrorIs(t, svc.Delete(context.Background(), 2), apartments.ErrInternal)
}

func TestGetByID_OccupancyFailure(t *testing.T) {
	repo := &mockApartmentRepo{getByIDFn: func(ctx context.Context, id int64) (*domain.Apartment, error) {
		return &domain.Apartment{ID: id}, nil
	}}
	svc := apartments.NewService(repo, &mockOccupancy{err: errors.New("db down")}, logger.Nop{})

	_, err := svc.GetByID(context.Background(), 1)

	assert.ErrorIs(t, err, apartments.ErrInternal)
}
