package notifications_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers/notifications"
	notificationsService "github.com/m04kA/SMC-RentalService/internal/service/notifications"
	"github.com/m04kA/SMC-RentalService/internal/service/notifications/models"
	"github.com/m04kA/SMC-RentalService/pkg/logger"
)

type mockService struct {
	err        error
	unreadOnly bool
	read       []int64
}

var _ notifications.NotificationService = (*notificationsService.Service)(nil)

func (m *mockService) List(ctx context.Context, unreadOnly bool) (*models.NotificationListResponse, error) {
	m.unreadOnly = unreadOnly
	if m.err != nil {
		return nil, m.err
	}
	return &models.NotificationListResponse{Notifications: []models.NotificationResponse{{ID: 1, Title: "New request"}}, Total: 1}, nil
}

func (m *mockService) MarkRead(ctx context.Context, id int64) error {
	if m.err != nil {
		return m.err
	}
	m.read = append(m.read, id)
	return nil
}

func (m *mockService) MarkAllRead(ctx context.Context) (*models.MarkAllReadResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &models.MarkAllReadResponse{Updated: 3}, nil
}

func do(svc *mockService, method, url string) *httptest.ResponseRecorder {
	h := notifications.NewHandler(svc, logger.Nop{})
	r := mux.NewRouter()
	r.HandleFunc("/notifications", h.List).Methods(http.MethodGet)
	r.HandleFunc("/notifications/read-all", h.MarkAllRead).Methods(http.MethodPatch)
	r.HandleFunc("/notifications/{notificationId}/read", h.MarkRead).Methods(http.MethodPatch)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(method, url, nil))
	return rec
}

func TestList(t *testing.T) {
	svc := &mockService{}

	rec := do(svc, http.MethodGet, "/notifications?unread=true")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, svc.unreadOnly)
	assert.Contains(t, rec.Body.String(), `"title":"New request"`)

	do(svc, http.MethodGet, "/notifications")
	assert.False(t, svc.unreadOnly)

	assert.Equal(t, http.StatusBadRequest, do(svc, http.MethodGet, "/notifications?unread=perhaps").Code)
}

func TestMarkRead(t *testing.T) {
	svc := &mockService{}

	assert.Equal(t, http.StatusNoContent, do(svc, http.MethodPatch, "/notifications/5/read").Code)
	assert.Equal(t, []int64{5}, svc.read)

	rec := do(svc, http.MethodPatch, "/notifications/read-all")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"updated":3}`, rec.Body.String())
}

func TestErrors(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, do(&mockService{}, http.MethodPatch, "/notifications/x/read").Code)
	assert.Equal(t, http.StatusNotFound, do(&mockService{err: notificationsService.ErrNotificationNotFound}, http.MethodPatch, "/notifications/5/read").Code)
	assert.Equal(t, http.StatusInternalServerError, do(&mockService{err: errors.New("db")}, http.MethodGet, "/notifications").Code)
	assert.Equal(t, http.StatusInternalServerError, do(&mockService{err: errors.New("db")}, http.MethodPatch, "/notifications/read-all").Code)
}
