package notifier_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/integrations/mailqueue"
	"github.com/m04kA/SMC-RentalService/internal/service/notifier"
	"github.com/m04kA/SMC-RentalService/pkg/logger"
)

type mockNotificationRepo struct {
	mu      sync.Mutex
	created []*domain.AdminNotification
	err     error
}

var _ notifier.NotificationRepository = (*mockNotificationRepo)(nil)

func (m *mockNotificationRepo) Create(ctx context.Context, n *domain.AdminNotification) (*domain.AdminNotification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	m.created = append(m.created, n)
	return n, nil
}

type mockMail struct {
	mu   sync.Mutex
	sent []mailqueue.EmailMessage
	err  error
}

var _ notifier.MailPublisher = (*mockMail)(nil)

func (m *mockMail) Publish(ctx context.Context, msg mailqueue.EmailMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func request() *domain.BookingRequest {
	return &domain.BookingRequest{
		ID:          3,
		ApartmentID: 1,
		GuestName:   "Eve",
		GuestEmail:  "eve@example.com",
		Stay: domain.StayInterval{
			CheckIn:  time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			CheckOut: time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		},
	}
}

func TestBookingRequestReceived_NotifiesAdminAndGuest(t *testing.T) {
	repo := &mockNotificationRepo{}
	mail := &mockMail{}
	n := notifier.New(repo, mail, time.Second, logger.Nop{})

	n.BookingRequestReceived(context.Background(), request())
	n.Wait()

	require.Len(t, repo.created, 1)
	assert.Equal(t, domain.NotificationBookingRequest, repo.created[0].Type)
	assert.Equal(t, int64(3), *repo.created[0].RelatedID)

	require.Len(t, mail.sent, 1)
	assert.Equal(t, mailqueue.TemplateRequestReceived, mail.sent[0].Template)
	assert.Equal(t, "2024-03-01", mail.sent[0].Data["checkIn"])
}

func TestFailuresAreSwallowed(t *testing.T) {
	repo := &mockNotificationRepo{err: errors.New("db down")}
	mail := &mockMail{err: errors.New("broker down")}
	n := notifier.New(repo, mail, time.Second, logger.Nop{})

	assert.NotPanics(t, func() {
		n.BookingRequestReceived(context.Background(), request())
		n.BookingRequestApproved(request())
		n.Wait()
	})
	assert.Empty(t, mail.sent)
}

func TestNilMailPublisherSkipsEmail(t *testing.T) {
	repo := &mockNotificationRepo{}
	n := notifier.New(repo, nil, 0, logger.Nop{})

	n.BookingRequestRejected(request())
	n.Wait()

	assert.Empty(t, repo.created)
}

func TestGuestWithoutEmailIsSkipped(t *testing.T) {
	mail := &mockMail{}
	n := notifier.New(&mockNotificationRepo{}, mail, time.Second, logger.Nop{})

	req := request()
	req.GuestEmail = ""
	n.BookingRequestApproved(req)
	n.Wait()

	assert.Empty(t, mail.sent)
}
