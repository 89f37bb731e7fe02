package booking_request

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/infra/storage/pgerr"
	"github.com/m04kA/SMC-RentalService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RentalService/pkg/psqlbuilder"
)

const tableBookingRequests = "booking_requests"

var requestColumns = []string{
	"id",
	"apartment_id",
	"guest_name",
	"guest_email",
	"guest_phone",
	"id_image_url",
	"check_in",
	"check_out",
	"number_of_guests",
	"price_per_night",
	"total_amount",
	"message",
	"status",
	"converted_booking_id",
	"admin_notes",
	"communications",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с заявками на бронирование
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория заявок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую заявку со статусом из модели (обычно pending)
func (r *Repository) Create(ctx context.Context, req *domain.BookingRequest) (*domain.BookingRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	communications, err := encodeCommunications(req.Communications)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - %v", ErrEncode, err)
	}

	query, args, err := psqlbuilder.Insert(tableBookingRequests).
		Columns(
			"apartment_id",
			"guest_name",
			"guest_email",
			"guest_phone",
			"id_image_url",
			"check_in",
			"check_out",
			"number_of_guests",
			"price_per_night",
			"total_amount",
			"message",
			"status",
			"admin_notes",
			"communications",
		).
		Values(
			req.ApartmentID,
			req.GuestName,
			req.GuestEmail,
			req.GuestPhone,
			req.IDImageURL,
			req.Stay.CheckIn,
			req.Stay.CheckOut,
			req.NumberOfGuests,
			req.PricePerNight,
			req.TotalAmount,
			req.Message,
			req.Status,
			req.AdminNotes,
			communications,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&req.ID, &createdAt, &updatedAt)
	if err != nil {
		if pgerr.IsForeignKeyViolation(err) {
			return nil, fmt.Errorf("%w: Create - %v", ErrApartmentNotFound, err)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	req.CreatedAt = createdAt.Time
	req.UpdatedAt = updatedAt.Time

	return req, nil
}

// GetByID получает заявку по ID
// Внутри транзакции строка блокируется (FOR UPDATE), чтобы заявку нельзя было
// конвертировать дважды
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.BookingRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(requestColumns...).
		From(tableBookingRequests).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	req, err := scanRequest(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan request: %v", ErrScanRow, err)
	}

	return req, nil
}

// List получает заявки с фильтрацией, новые сверху
func (r *Repository) List(ctx context.Context, filter domain.BookingRequestsFilter) ([]*domain.BookingRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(requestColumns...).
		From(tableBookingRequests)

	if filter.ApartmentID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"apartment_id": *filter.ApartmentID})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": string(*filter.Status)})
	}

	query, args, err := selectBuilder.OrderBy("created_at DESC", "id DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	requests := make([]*domain.BookingRequest, 0)
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		requests = append(requests, req)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return requests, nil
}

// UpdateStatus меняет статус заявки. adminNotes перезаписываются только если переданы
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingRequestStatus, adminNotes *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update(tableBookingRequests).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if adminNotes != nil {
		updateBuilder = updateBuilder.Set("admin_notes", *adminNotes)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	return checkAffected("UpdateStatus", result)
}

// MarkConverted переводит заявку в converted и связывает с созданной бронью
func (r *Repository) MarkConverted(ctx context.Context, id int64, bookingID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableBookingRequests).
		Set("status", domain.RequestStatusConverted).
		Set("converted_booking_id", bookingID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkConverted - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkConverted - execute update: %v", ErrExecQuery, err)
	}

	return checkAffected("MarkConverted", result)
}

// AppendCommunication дописывает запись в журнал коммуникаций (только добавление)
func (r *Repository) AppendCommunication(ctx context.Context, id int64, entry domain.Communication) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	encoded, err := encodeCommunications([]domain.Communication{entry})
	if err != nil {
		return fmt.Errorf("%w: AppendCommunication - %v", ErrEncode, err)
	}

	query, args, err := psqlbuilder.Update(tableBookingRequests).
		Set("communications", squirrel.Expr("communications || ?::jsonb", encoded)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: AppendCommunication - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: AppendCommunication - execute update: %v", ErrExecQuery, err)
	}

	return checkAffected("AppendCommunication", result)
}

// Delete удаляет заявку
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableBookingRequests).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	return checkAffected("Delete", result)
}

func scanRequest(row rowScanner) (*domain.BookingRequest, error) {
	var (
		req                  domain.BookingRequest
		communications       []byte
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&req.ID,
		&req.ApartmentID,
		&req.GuestName,
		&req.GuestEmail,
		&req.GuestPhone,
		&req.IDImageURL,
		&req.Stay.CheckIn,
		&req.Stay.CheckOut,
		&req.NumberOfGuests,
		&req.PricePerNight,
		&req.TotalAmount,
		&req.Message,
		&req.Status,
		&req.ConvertedBookingID,
		&req.AdminNotes,
		&communications,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	req.Communications = make([]domain.Communication, 0)
	if len(communications) > 0 {
		if err := json.Unmarshal(communications, &req.Communications); err != nil {
			return nil, fmt.Errorf("decode communications: %w", err)
		}
	}

	req.Stay = req.Stay.UTC()
	req.CreatedAt = createdAt.Time
	req.UpdatedAt = updatedAt.Time

	return &req, nil
}

func encodeCommunications(entries []domain.Communication) (string, error) {
	if entries == nil {
		entries = []domain.Communication{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func checkAffected(method string, result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, method, err)
	}

	if rowsAffected == 0 {
		return ErrRequestNotFound
	}

	return nil
}
