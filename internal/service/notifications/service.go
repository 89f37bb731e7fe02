package notifications

import (
	"context"
	"errors"
	"fmt"

	notificationRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/notification"
	"github.com/m04kA/SMC-RentalService/internal/service/notifications/models"
)

// DefaultLimit сколько последних уведомлений отдается в панель
const DefaultLimit = 100

// Service сервис уведомлений администратора
type Service struct {
	repo   NotificationRepository
	logger Logger
}

// NewService создает новый экземпляр сервиса уведомлений
func NewService(repo NotificationRepository, logger Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// List последние уведомления, новые первыми
func (s *Service) List(ctx context.Context, unreadOnly bool) (*models.NotificationListResponse, error) {
	list, err := s.repo.List(ctx, unreadOnly, DefaultLimit)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainNotificationList(list), nil
}

// MarkRead отмечает уведомление прочитанным
func (s *Service) MarkRead(ctx context.Context, id int64) error {
	if err := s.repo.MarkRead(ctx, id); err != nil {
		if errors.Is(err, notificationRepo.ErrNotificationNotFound) {
			s.logger.Warn("MarkRead: notification id=%d not found", id)
			return ErrNotificationNotFound
		}
		s.logger.Error("MarkRead: repository error for id=%d: %v", id, err)
		return fmt.Errorf("%w: MarkRead - repository error: %v", ErrInternal, err)
	}
	return nil
}

// MarkAllRead отмечает все уведомления прочитанными
func (s *Service) MarkAllRead(ctx context.Context) (*models.MarkAllReadResponse, error) {
	updated, err := s.repo.MarkAllRead(ctx)
	if err != nil {
		s.logger.Error("MarkAllRead: repository error: %v", err)
		return nil, fmt.Errorf("%w: MarkAllRead - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("MarkAllRead: %d notifications marked as read", updated)
	return &models.MarkAllReadResponse{Updated: updated}, nil
}
