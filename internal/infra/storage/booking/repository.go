package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/infra/storage/pgerr"
	"github.com/m04kA/SMC-RentalService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RentalService/pkg/psqlbuilder"
)

const tableBookings = "bookings"

// bookingColumns порядок колонок должен совпадать с scanBooking
var bookingColumns = []string{
	"id",
	"apartment_id",
	"guest_name",
	"guest_email",
	"guest_phone",
	"id_number",
	"emergency_name",
	"emergency_phone",
	"emergency_relationship",
	"check_in",
	"check_out",
	"number_of_guests",
	"number_of_nights",
	"price_per_night",
	"total_amount",
	"payment_method",
	"payment_status",
	"amount_paid",
	"payment_reference",
	"paid_at",
	"status",
	"notes",
	"booking_request_id",
	"cancellation_reason",
	"checked_in_at",
	"checked_out_at",
	"created_at",
	"updated_at",
}

// activeStatuses статусы активных броней в виде строк для squirrel.Eq
func activeStatuses() []string {
	statuses := make([]string, len(domain.ActiveBookingStatuses))
	for i, s := range domain.ActiveBookingStatuses {
		statuses[i] = string(s)
	}
	return statuses
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция (через context.Value), использует её.
// Пересечение с другой активной бронью отклоняется EXCLUDE-ограничением таблицы (ErrOverlap)
func (r *Repository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableBookings).
		Columns(
			"apartment_id",
			"guest_name",
			"guest_email",
			"guest_phone",
			"id_number",
			"emergency_name",
			"emergency_phone",
			"emergency_relationship",
			"check_in",
			"check_out",
			"number_of_guests",
			"number_of_nights",
			"price_per_night",
			"total_amount",
			"payment_method",
			"payment_status",
			"amount_paid",
			"payment_reference",
			"paid_at",
			"status",
			"notes",
			"booking_request_id",
		).
		Values(
			b.ApartmentID,
			b.GuestName,
			b.GuestEmail,
			b.GuestPhone,
			b.IDNumber,
			b.EmergencyContact.Name,
			b.EmergencyContact.Phone,
			b.EmergencyContact.Relationship,
			b.Stay.CheckIn,
			b.Stay.CheckOut,
			b.NumberOfGuests,
			b.NumberOfNights,
			b.PricePerNight,
			b.TotalAmount,
			b.Payment.Method,
			b.Payment.Status,
			b.Payment.AmountPaid,
			b.Payment.Reference,
			b.Payment.PaidAt,
			b.Status,
			b.Notes,
			b.BookingRequestID,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&b.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, mapWriteError("Create", err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return b, nil
}

// GetByID получает бронирование по ID
// Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// ListActiveByApartment возвращает активные брони квартиры (confirmed, checked_in),
// отсортированные по дате заезда.
// Внутри транзакции строки блокируются (FOR UPDATE), чтобы проверка пересечений
// и последующая запись не разъехались
func (r *Repository) ListActiveByApartment(ctx context.Context, apartmentID int64) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.Eq{"apartment_id": apartmentID}).
		Where(squirrel.Eq{"status": activeStatuses()}).
		OrderBy("check_in ASC", "id ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByApartment - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByApartment - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// List получает бронирования с фильтрацией
//
// Примеры:
//   - все брони квартиры: domain.BookingsFilter{ApartmentID: &id}
//   - только активные: domain.BookingsFilter{ActiveOnly: true}
//   - пересекающие период: domain.BookingsFilter{From: &from, To: &to}
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From(tableBookings)

	if filter.ApartmentID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"apartment_id": *filter.ApartmentID})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": string(*filter.Status)})
	} else if filter.ActiveOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": activeStatuses()})
	}

	// Период задается полуоткрытым интервалом, как и сами брони
	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.Gt{"check_out": *filter.From})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"check_in": *filter.To})
	}

	query, args, err := selectBuilder.OrderBy("check_in DESC", "id DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// ListOccupiedApartmentIDs возвращает квартиры, в которых на момент at есть активная бронь
// Используется для вычисления отображаемого статуса квартиры
func (r *Repository) ListOccupiedApartmentIDs(ctx context.Context, at time.Time) ([]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("DISTINCT apartment_id").
		From(tableBookings).
		Where(squirrel.Eq{"status": activeStatuses()}).
		Where(squirrel.LtOrEq{"check_in": at}).
		Where(squirrel.Gt{"check_out": at}).
		OrderBy("apartment_id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListOccupiedApartmentIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListOccupiedApartmentIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: ListOccupiedApartmentIDs - scan apartment_id: %v", ErrScanRow, err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListOccupiedApartmentIDs - rows error: %v", ErrScanRow, err)
	}

	return ids, nil
}

// Update сохраняет изменяемые поля бронирования (квартира, гость, даты, суммы)
// Статус и оплата меняются отдельными методами
func (r *Repository) Update(ctx context.Context, b *domain.Booking) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableBookings).
		Set("apartment_id", b.ApartmentID).
		Set("guest_name", b.GuestName).
		Set("guest_email", b.GuestEmail).
		Set("guest_phone", b.GuestPhone).
		Set("id_number", b.IDNumber).
		Set("emergency_name", b.EmergencyContact.Name).
		Set("emergency_phone", b.EmergencyContact.Phone).
		Set("emergency_relationship", b.EmergencyContact.Relationship).
		Set("check_in", b.Stay.CheckIn).
		Set("check_out", b.Stay.CheckOut).
		Set("number_of_guests", b.NumberOfGuests).
		Set("number_of_nights", b.NumberOfNights).
		Set("price_per_night", b.PricePerNight).
		Set("total_amount", b.TotalAmount).
		Set("notes", b.Notes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": b.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return mapWriteError("Update", err)
	}

	return checkAffected("Update", result)
}

// UpdateStatus меняет статус и проставляет время заезда/выезда для checked_in/checked_out
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus, changedAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update(tableBookings).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	switch status {
	case domain.BookingStatusCheckedIn:
		updateBuilder = updateBuilder.Set("checked_in_at", changedAt)
	case domain.BookingStatusCheckedOut:
		updateBuilder = updateBuilder.Set("checked_out_at", changedAt)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return mapWriteError("UpdateStatus", err)
	}

	return checkAffected("UpdateStatus", result)
}

// Cancel переводит бронирование в cancelled/no_show с указанием причины
func (r *Repository) Cancel(ctx context.Context, id int64, status domain.BookingStatus, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableBookings).
		Set("status", status).
		Set("cancellation_reason", reason).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	return checkAffected("Cancel", result)
}

// UpdatePayment обновляет платежную информацию бронирования
func (r *Repository) UpdatePayment(ctx context.Context, id int64, payment domain.Payment) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableBookings).
		Set("payment_method", payment.Method).
		Set("payment_status", payment.Status).
		Set("amount_paid", payment.AmountPaid).
		Set("payment_reference", payment.Reference).
		Set("paid_at", payment.PaidAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdatePayment - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdatePayment - execute update: %v", ErrExecQuery, err)
	}

	return checkAffected("UpdatePayment", result)
}

// Delete удаляет бронирование (физическое удаление, использовать осторожно)
// В обычном потоке бронь завершается через статус
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableBookings).
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

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		b                    domain.Booking
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&b.ID,
		&b.ApartmentID,
		&b.GuestName,
		&b.GuestEmail,
		&b.GuestPhone,
		&b.IDNumber,
		&b.EmergencyContact.Name,
		&b.EmergencyContact.Phone,
		&b.EmergencyContact.Relationship,
		&b.Stay.CheckIn,
		&b.Stay.CheckOut,
		&b.NumberOfGuests,
		&b.NumberOfNights,
		&b.PricePerNight,
		&b.TotalAmount,
		&b.Payment.Method,
		&b.Payment.Status,
		&b.Payment.AmountPaid,
		&b.Payment.Reference,
		&b.Payment.PaidAt,
		&b.Status,
		&b.Notes,
		&b.BookingRequestID,
		&b.CancellationReason,
		&b.CheckedInAt,
		&b.CheckedOutAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.Stay = b.Stay.UTC()
	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return &b, nil
}

// mapWriteError переводит ошибки ограничений PostgreSQL в ошибки репозитория
func mapWriteError(method string, err error) error {
	switch {
	case pgerr.IsExclusionViolation(err):
		return fmt.Errorf("%w: %s - %v", ErrOverlap, method, err)
	case pgerr.IsDeadlockDetected(err):
		// Параллельные вставки пересекающихся броней ждут друг друга на EXCLUDE-ограничении
		return fmt.Errorf("%w: %s - %v", ErrOverlap, method, err)
	case pgerr.IsForeignKeyViolation(err):
		return fmt.Errorf("%w: %s - %v", ErrApartmentNotFound, method, err)
	case pgerr.IsSerializationFailure(err):
		// Пробрасываем как есть: txmanager повторит транзакцию
		return err
	default:
		return fmt.Errorf("%w: %s - execute: %v", ErrExecQuery, method, err)
	}
}

func checkAffected(method string, result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, method, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}
