package booking_request

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

func newMock(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewRepository(db), mock
}

func TestGetByID_DecodesCommunications(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM booking_requests WHERE id = $1")).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows(requestColumns).AddRow(
			int64(2), int64(1), "Dave", "dave@example.com", "", nil,
			now, now.AddDate(0, 0, 2), 2, 100.0, 200.0, nil,
			"approved", nil, nil,
			[]byte(`[{"date":"2024-03-01T10:00:00Z","channel":"email","message":"hi","sender":"admin"}]`),
			now, now,
		))

	req, err := repo.GetByID(context.Background(), 2)

	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusApproved, req.Status)
	require.Len(t, req.Communications, 1)
	assert.Equal(t, domain.ChannelEmail, req.Communications[0].Channel)
	assert.Equal(t, "hi", req.Communications[0].Message)
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM booking_requests WHERE id = $1")).
		WillReturnRows(sqlmock.NewRows(requestColumns))

	_, err := repo.GetByID(context.Background(), 1)

	assert.ErrorIs(t, err, ErrRequestNotFound)
}

func TestCreate_UnknownApartment(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO booking_requests")).
		WillReturnError(&pq.Error{Code: "23503"})

	_, err := repo.Create(context.Background(), &domain.BookingRequest{ApartmentID: 77})

	assert.ErrorIs(t, err, ErrApartmentNotFound)
}

func TestAppendCommunication_UsesJSONBConcat(t *testing.T) {
	repo, mock := newMock(t)
	entry := domain.Communication{
		Date:    time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		Channel: domain.ChannelPhone,
		Message: "called guest",
		Sender:  "admin",
	}

	mock.ExpectExec(regexp.QuoteMeta("SET communications = communications || $1::jsonb, updated_at = NOW() WHERE id = $2")).
		WithArgs(`[{"date":"2024-03-01T10:00:00Z","channel":"phone","message":"called guest","sender":"admin"}]`, int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.AppendCommunication(context.Background(), 4, entry)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkConverted(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE booking_requests SET status = $1, converted_booking_id = $2")).
		WithArgs("converted", int64(10), int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.MarkConverted(context.Background(), 3, 10)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatus_NotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE booking_requests SET status = $1")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), 3, domain.RequestStatusRejected, nil)

	assert.ErrorIs(t, err, ErrRequestNotFound)
}
