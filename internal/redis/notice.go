package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// NoticeTTL bounds how long an unread buyer notice survives. Notices are
// checkout-session ephemera, not order history.
const NoticeTTL = 24 * time.Hour

const noticePrefix = "notices:order:"

// Notice is a buyer-visible message attached to an order's checkout
// session, rendered by the storefront on the next page load.
type Notice struct {
	ID        string    `json:"id"`
	Level     string    `json:"level"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// NoticeStore keeps per-order buyer notices in Redis.
type NoticeStore struct {
	client *redis.Client
}

// NewNoticeStore creates a new NoticeStore.
func NewNoticeStore(client *redis.Client) *NoticeStore {
	return &NoticeStore{client: client}
}

// Push appends a notice to the order's notice list.
func (s *NoticeStore) Push(ctx context.Context, orderID string, notice Notice) error {
	key := noticePrefix + orderID

	data, err := json.Marshal(notice)
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.RPush(ctx, key, data)
	pipe.Expire(ctx, key, NoticeTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to push notice for order %s: %w", orderID, err)
	}

	return nil
}

// PopAll drains and returns the order's pending notices.
func (s *NoticeStore) PopAll(ctx context.Context, orderID string) ([]Notice, error) {
	key := noticePrefix + orderID

	pipe := s.client.TxPipeline()
	items := pipe.LRange(ctx, key, 0, -1)
	pipe.Del(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}

	raw, err := items.Result()
	if err != nil {
		return nil, err
	}

	notices := make([]Notice, 0, len(raw))
	for _, item := range raw {
		var n Notice
		if err := json.Unmarshal([]byte(item), &n); err != nil {
			return nil, err
		}
		notices = append(notices, n)
	}

	return notices, nil
}
