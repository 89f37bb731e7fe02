package apartment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/infra/storage/pgerr"
	"github.com/m04kA/SMC-RentalService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RentalService/pkg/psqlbuilder"
)

const tableApartments = "apartments"

var apartmentColumns = []string{
	"id",
	"name",
	"address",
	"description",
	"bedrooms",
	"bathrooms",
	"max_guests",
	"price_per_night",
	"amenities",
	"status",
	"current_tenant_id",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с квартирами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория квартир
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую квартиру
// Если в контексте передана активная транзакция, использует её
func (r *Repository) Create(ctx context.Context, a *domain.Apartment) (*domain.Apartment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableApartments).
		Columns(
			"name",
			"address",
			"description",
			"bedrooms",
			"bathrooms",
			"max_guests",
			"price_per_night",
			"amenities",
			"status",
		).
		Values(
			a.Name,
			a.Address,
			a.Description,
			a.Bedrooms,
			a.Bathrooms,
			a.MaxGuests,
			a.PricePerNight,
			pq.Array(nonNilAmenities(a.Amenities)),
			a.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&a.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time

	return a, nil
}

// GetByID получает квартиру по ID
// Внутри транзакции строка блокируется (FOR UPDATE): все операции, меняющие
// даты броней квартиры, сериализуются на этой блокировке
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Apartment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(apartmentColumns...).
		From(tableApartments).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	apartment, err := scanApartment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrApartmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan apartment: %v", ErrScanRow, err)
	}

	return apartment, nil
}

// GetByIDs получает квартиры по списку ID (для подстановки в списки броней)
func (r *Repository) GetByIDs(ctx context.Context, ids []int64) ([]*domain.Apartment, error) {
	if len(ids) == 0 {
		return []*domain.Apartment{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(apartmentColumns...).
		From(tableApartments).
		Where(squirrel.Eq{"id": ids}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanApartments(rows)
}

// List получает все квартиры, опционально только с указанным статусом
func (r *Repository) List(ctx context.Context, status *domain.ApartmentStatus) ([]*domain.Apartment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(apartmentColumns...).
		From(tableApartments)

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": string(*status)})
	}

	query, args, err := selectBuilder.OrderBy("name ASC", "id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanApartments(rows)
}

// Update обновляет описание квартиры (без current_tenant_id, он меняется через UpdateOccupancy)
func (r *Repository) Update(ctx context.Context, a *domain.Apartment) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableApartments).
		Set("name", a.Name).
		Set("address", a.Address).
		Set("description", a.Description).
		Set("bedrooms", a.Bedrooms).
		Set("bathrooms", a.Bathrooms).
		Set("max_guests", a.MaxGuests).
		Set("price_per_night", a.PricePerNight).
		Set("amenities", pq.Array(nonNilAmenities(a.Amenities))).
		Set("status", a.Status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": a.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	return checkAffected("Update", result)
}

// UpdateOccupancy выставляет статус и текущего жильца (nil очищает ссылку)
func (r *Repository) UpdateOccupancy(ctx context.Context, id int64, status domain.ApartmentStatus, currentTenantID *int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableApartments).
		Set("status", status).
		Set("current_tenant_id", currentTenantID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateOccupancy - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateOccupancy - execute update: %v", ErrExecQuery, err)
	}

	return checkAffected("UpdateOccupancy", result)
}

// Delete удаляет квартиру
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableApartments).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if pgerr.IsForeignKeyViolation(err) {
			return fmt.Errorf("%w: Delete - %v", ErrApartmentInUse, err)
		}
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	return checkAffected("Delete", result)
}

func scanApartments(rows *sql.Rows) ([]*domain.Apartment, error) {
	apartments := make([]*domain.Apartment, 0)

	for rows.Next() {
		apartment, err := scanApartment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanApartments - scan row: %v", ErrScanRow, err)
		}
		apartments = append(apartments, apartment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanApartments - rows error: %v", ErrScanRow, err)
	}

	return apartments, nil
}

func scanApartment(row rowScanner) (*domain.Apartment, error) {
	var (
		a                    domain.Apartment
		amenities            pq.StringArray
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&a.ID,
		&a.Name,
		&a.Address,
		&a.Description,
		&a.Bedrooms,
		&a.Bathrooms,
		&a.MaxGuests,
		&a.PricePerNight,
		&amenities,
		&a.Status,
		&a.CurrentTenantID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	a.Amenities = nonNilAmenities(amenities)
	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time

	return &a, nil
}

func nonNilAmenities(amenities []string) []string {
	if amenities == nil {
		return []string{}
	}
	return amenities
}

func checkAffected(method string, result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, method, err)
	}

	if rowsAffected == 0 {
		return ErrApartmentNotFound
	}

	return nil
}
