package notifier

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/integrations/mailqueue"
)

// DefaultMailTimeout сколько ждать брокер при отправке одного письма
const DefaultMailTimeout = 10 * time.Second

// Notifier побочные эффекты операций: уведомление в панели администратора
// и письмо гостю. Оба best-effort: ошибки логируются и не возвращаются
type Notifier struct {
	repo        NotificationRepository
	mail        MailPublisher
	mailTimeout time.Duration
	logger      Logger
	wg          sync.WaitGroup
}

// New создает Notifier. mail может быть nil, тогда письма не отправляются
func New(repo NotificationRepository, mail MailPublisher, mailTimeout time.Duration, logger Logger) *Notifier {
	if mailTimeout <= 0 {
		mailTimeout = DefaultMailTimeout
	}
	return &Notifier{
		repo:        repo,
		mail:        mail,
		mailTimeout: mailTimeout,
		logger:      logger,
	}
}

// Wait дожидается отправки запущенных писем (graceful shutdown, тесты)
func (n *Notifier) Wait() {
	n.wg.Wait()
}

// BookingRequestReceived новая заявка с сайта
func (n *Notifier) BookingRequestReceived(ctx context.Context, req *domain.BookingRequest) {
	n.notifyAdmin(ctx, domain.NotificationBookingRequest,
		"Новая заявка на бронирование",
		fmt.Sprintf("%s: %s", req.GuestName, req.Stay),
		req.ID)

	n.sendEmail(mailqueue.EmailMessage{
		Template: mailqueue.TemplateRequestReceived,
		To:       req.GuestEmail,
		Subject:  "We received your booking request",
		Data:     requestData(req),
	})
}

// BookingRequestApproved заявка одобрена
func (n *Notifier) BookingRequestApproved(req *domain.BookingRequest) {
	n.sendEmail(mailqueue.EmailMessage{
		Template: mailqueue.TemplateRequestApproved,
		To:       req.GuestEmail,
		Subject:  "Your booking request was approved",
		Data:     requestData(req),
	})
}

// BookingRequestRejected заявка отклонена
func (n *Notifier) BookingRequestRejected(req *domain.BookingRequest) {
	n.sendEmail(mailqueue.EmailMessage{
		Template: mailqueue.TemplateRequestRejected,
		To:       req.GuestEmail,
		Subject:  "Your booking request was declined",
		Data:     requestData(req),
	})
}

// BookingCreated бронь создана администратором
func (n *Notifier) BookingCreated(ctx context.Context, b *domain.Booking) {
	n.notifyAdmin(ctx, domain.NotificationBookingCreated,
		"Создано бронирование",
		fmt.Sprintf("%s: %s", b.GuestName, b.Stay),
		b.ID)

	n.sendEmail(bookingEmail(b))
}

// BookingConverted заявка превращена в бронь
func (n *Notifier) BookingConverted(ctx context.Context, b *domain.Booking, req *domain.BookingRequest) {
	n.notifyAdmin(ctx, domain.NotificationBookingConverted,
		"Заявка конвертирована в бронирование",
		fmt.Sprintf("Заявка #%d -> бронь #%d (%s, %s)", req.ID, b.ID, b.GuestName, b.Stay),
		b.ID)

	n.sendEmail(bookingEmail(b))
}

// CheckedIn гость заехал
func (n *Notifier) CheckedIn(ctx context.Context, b *domain.Booking) {
	n.notifyAdmin(ctx, domain.NotificationCheckIn,
		"Заезд гостя",
		fmt.Sprintf("%s заехал в квартиру #%d", b.GuestName, b.ApartmentID),
		b.ID)
}

// CheckedOut гость выехал
func (n *Notifier) CheckedOut(ctx context.Context, b *domain.Booking) {
	n.notifyAdmin(ctx, domain.NotificationCheckOut,
		"Выезд гостя",
		fmt.Sprintf("%s выехал из квартиры #%d", b.GuestName, b.ApartmentID),
		b.ID)
}

// MaintenanceCreated новая заявка на обслуживание
func (n *Notifier) MaintenanceCreated(ctx context.Context, m *domain.MaintenanceRequest) {
	n.notifyAdmin(ctx, domain.NotificationMaintenance,
		"Заявка на обслуживание",
		fmt.Sprintf("[%s] %s (квартира #%d)", m.Priority, m.Title, m.ApartmentID),
		m.ID)
}

func (n *Notifier) notifyAdmin(ctx context.Context, kind domain.NotificationType, title, message string, relatedID int64) {
	notification := &domain.AdminNotification{
		Type:      kind,
		Title:     title,
		Message:   message,
		RelatedID: &relatedID,
	}

	if _, err := n.repo.Create(ctx, notification); err != nil {
		n.logger.Error("notifier: %v: admin notification %s for id=%d: %v", ErrDelivery, kind, relatedID, err)
	}
}

// sendEmail отправляет письмо в отдельной горутине со своим таймаутом,
// чтобы медленный брокер не задерживал ответ API
func (n *Notifier) sendEmail(msg mailqueue.EmailMessage) {
	if n.mail == nil {
		return
	}
	if msg.To == "" {
		n.logger.Warn("notifier: skip %s email, guest has no address", msg.Template)
		return
	}

	n.wg.Add(1)
	go func() {
		defer n.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), n.mailTimeout)
		defer cancel()

		if err := n.mail.Publish(ctx, msg); err != nil {
			n.logger.Error("notifier: %v: %s email to %s: %v", ErrDelivery, msg.Template, msg.To, err)
		}
	}()
}

func requestData(req *domain.BookingRequest) map[string]string {
	return map[string]string{
		"requestId":   strconv.FormatInt(req.ID, 10),
		"guestName":   req.GuestName,
		"apartmentId": strconv.FormatInt(req.ApartmentID, 10),
		"checkIn":     string(req.Stay.CheckInDate()),
		"checkOut":    string(req.Stay.CheckOutDate()),
	}
}

func bookingEmail(b *domain.Booking) mailqueue.EmailMessage {
	return mailqueue.EmailMessage{
		Template: mailqueue.TemplateBookingCreated,
		To:       b.GuestEmail,
		Subject:  "Your booking is confirmed",
		Data: map[string]string{
			"bookingId":   strconv.FormatInt(b.ID, 10),
			"guestName":   b.GuestName,
			"apartmentId": strconv.FormatInt(b.ApartmentID, 10),
			"checkIn":     string(b.Stay.CheckInDate()),
			"checkOut":    string(b.Stay.CheckOutDate()),
			"nights":      strconv.Itoa(b.NumberOfNights),
			"total":       strconv.FormatFloat(b.TotalAmount, 'f', 2, 64),
		},
	}
}
