package redis

import (
	"context"
	"time"
)

// LockStoreInterface defines the interface for per-order locking.
type LockStoreInterface interface {
	AcquireOrderLock(ctx context.Context, orderID string, ttl time.Duration) (bool, error)
	ReleaseOrderLock(ctx context.Context, orderID string) error
}

// NoticeStoreInterface defines the interface for buyer notices.
type NoticeStoreInterface interface {
	Push(ctx context.Context, orderID string, notice Notice) error
	PopAll(ctx context.Context, orderID string) ([]Notice, error)
}

// Ensure concrete types implement interfaces.
var (
	_ LockStoreInterface   = (*LockStore)(nil)
	_ NoticeStoreInterface = (*NoticeStore)(nil)
)
