package service

import (
	"context"
	"fmt"

	"github.com/farmace/beneficios/internal/application/port"
	"github.com/farmace/beneficios/internal/domain/entity"
	"go.uber.org/zap"
)

// NotificationService exposes the HR request notification feed
type NotificationService struct {
	notifications port.NotificationRepository
	logger        *zap.Logger
}

// NewNotificationService creates a new notification service
func NewNotificationService(notifications port.NotificationRepository, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		notifications: notifications,
		logger:        logger,
	}
}

// List returns the full feed in insertion order
func (s *NotificationService) List(ctx context.Context) ([]*entity.NotificacaoSolicitacao, error) {
	return s.notifications.ListAll(ctx)
}

// UnreadCount returns how many notifications are unread
func (s *NotificationService) UnreadCount(ctx context.Context) (int, error) {
	return s.notifications.CountUnread(ctx)
}

// MarkRead flags one notification as read
func (s *NotificationService) MarkRead(ctx context.Context, id string) error {
	if err := s.notifications.MarkRead(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Notification marked read", zap.String("id", id))
	return nil
}

// MarkAllRead flags every notification as read
func (s *NotificationService) MarkAllRead(ctx context.Context) error {
	if err := s.notifications.MarkAllRead(ctx); err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}
	s.logger.Info("All notifications marked read")
	return nil
}

// Record stores a new HR request notification
func (s *NotificationService) Record(ctx context.Context, n *entity.NotificacaoSolicitacao) error {
	if err := s.notifications.Save(ctx, n); err != nil {
		return fmt.Errorf("failed to save notification: %w", err)
	}
	s.logger.Info("Notification recorded",
		zap.String("id", n.ID),
		zap.String("solicitacao", string(n.Solicitacao)))
	return nil
}
