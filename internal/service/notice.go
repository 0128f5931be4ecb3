package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"jazzypay/internal/redis"
)

// Notice levels rendered by the storefront.
const (
	NoticeLevelError  = "error"
	NoticeLevelNotice = "notice"
)

// NoticeService records buyer-visible messages against an order's checkout
// session. Delivery is best effort: a failed notice write never fails the
// payment flow it decorates.
type NoticeService struct {
	store  redis.NoticeStoreInterface
	logger *zap.SugaredLogger
}

// NewNoticeService creates a new NoticeService.
func NewNoticeService(store redis.NoticeStoreInterface, logger *zap.SugaredLogger) *NoticeService {
	return &NoticeService{store: store, logger: logger}
}

// Error records an error-level notice for the order.
func (s *NoticeService) Error(ctx context.Context, orderID, message string) {
	s.push(ctx, orderID, NoticeLevelError, message)
}

// Notify records an informational notice for the order.
func (s *NoticeService) Notify(ctx context.Context, orderID, message string) {
	s.push(ctx, orderID, NoticeLevelNotice, message)
}

// Pending drains and returns the order's unread notices.
func (s *NoticeService) Pending(ctx context.Context, orderID string) ([]redis.Notice, error) {
	return s.store.PopAll(ctx, orderID)
}

func (s *NoticeService) push(ctx context.Context, orderID, level, message string) {
	notice := redis.Notice{
		ID:        uuid.New().String(),
		Level:     level,
		Message:   message,
		CreatedAt: time.Now(),
	}

	if err := s.store.Push(ctx, orderID, notice); err != nil {
		s.logger.Warnw("failed to record buyer notice",
			"order_id", orderID,
			"level", level,
			"error", err,
		)
	}
}
