package tests

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"jazzypay/internal/domain"
	"jazzypay/internal/gateway"
	"jazzypay/internal/redis"
	"jazzypay/internal/repository"
)

// ──────────────────────────────────────────────
// MOCK ORDER REPOSITORY
// ──────────────────────────────────────────────

// MockOrderRepository is a mock implementation of OrderRepository with
// compare-and-set semantics matching the Postgres implementation.
type MockOrderRepository struct {
	mu     sync.RWMutex
	orders map[string]*domain.Order
	notes  map[string][]string
	stock  map[string]int // times stock was reduced per order

	// Counters for verification
	GetByIDCallCount     int32
	SetStatusCallCount   int32
	AddNoteCallCount     int32
	ReduceStockCallCount int32

	// Error injection
	SetStatusError   error
	AddNoteError     error
	ReduceStockError error
}

// NewMockOrderRepository creates a new mock order repository.
func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{
		orders: make(map[string]*domain.Order),
		notes:  make(map[string][]string),
		stock:  make(map[string]int),
	}
}

// AddOrder adds an order to the mock repository.
func (m *MockOrderRepository) AddOrder(order *domain.Order) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders[order.ID] = order
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	atomic.AddInt32(&m.GetByIDCallCount, 1)
	m.mu.RLock()
	defer m.mu.RUnlock()
	order, ok := m.orders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	// Return a copy to avoid mutation issues.
	copy := *order
	return &copy, nil
}

func (m *MockOrderRepository) SetStatus(ctx context.Context, id string, from, to domain.OrderStatus, note string) error {
	atomic.AddInt32(&m.SetStatusCallCount, 1)
	if m.SetStatusError != nil {
		return m.SetStatusError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	order, ok := m.orders[id]
	if !ok {
		return repository.ErrNotFound
	}
	if order.Status != from {
		return repository.ErrStaleStatus
	}
	order.Status = to
	if note != "" {
		m.notes[id] = append(m.notes[id], note)
	}
	return nil
}

func (m *MockOrderRepository) AddNote(ctx context.Context, id string, note string) error {
	atomic.AddInt32(&m.AddNoteCallCount, 1)
	if m.AddNoteError != nil {
		return m.AddNoteError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.orders[id]; !ok {
		return repository.ErrNotFound
	}
	m.notes[id] = append(m.notes[id], note)
	return nil
}

func (m *MockOrderRepository) ReduceStock(ctx context.Context, id string) error {
	atomic.AddInt32(&m.ReduceStockCallCount, 1)
	if m.ReduceStockError != nil {
		return m.ReduceStockError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stock[id]++
	return nil
}

// GetOrder returns the stored order for test assertions.
func (m *MockOrderRepository) GetOrder(id string) *domain.Order {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.orders[id]
}

// Notes returns the notes recorded for an order.
func (m *MockOrderRepository) Notes(id string) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.notes[id]...)
}

// StockReductions returns how many times stock was reduced for an order.
func (m *MockOrderRepository) StockReductions(id string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stock[id]
}

// ──────────────────────────────────────────────
// MOCK GATEWAY
// ──────────────────────────────────────────────

// MockGateway is a mock implementation of the processor client.
type MockGateway struct {
	mu          sync.Mutex
	lastRequest gateway.InitiationRequest

	Response *gateway.InitiationResponse
	Err      error

	InitiateCallCount int32
}

// NewMockGateway creates a mock gateway answering Success with the given
// redirect URL.
func NewMockGateway(redirectURL string) *MockGateway {
	return &MockGateway{
		Response: &gateway.InitiationResponse{
			Status:      gateway.StatusSuccess,
			RedirectURL: redirectURL,
		},
	}
}

func (m *MockGateway) Initiate(ctx context.Context, req gateway.InitiationRequest) (*gateway.InitiationResponse, error) {
	atomic.AddInt32(&m.InitiateCallCount, 1)
	m.mu.Lock()
	m.lastRequest = req
	m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Response, nil
}

// LastRequest returns the most recent initiation request sent.
func (m *MockGateway) LastRequest() gateway.InitiationRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastRequest
}

// ──────────────────────────────────────────────
// MOCK LOCK STORE
// ──────────────────────────────────────────────

// MockLockStore is an in-memory implementation of the per-order lock store.
type MockLockStore struct {
	mu    sync.Mutex
	locks map[string]bool

	AcquireCallCount int32
	AcquireError     error
}

// NewMockLockStore creates a new mock lock store.
func NewMockLockStore() *MockLockStore {
	return &MockLockStore{locks: make(map[string]bool)}
}

func (m *MockLockStore) AcquireOrderLock(ctx context.Context, orderID string, ttl time.Duration) (bool, error) {
	atomic.AddInt32(&m.AcquireCallCount, 1)
	if m.AcquireError != nil {
		return false, m.AcquireError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.locks[orderID] {
		return false, nil
	}
	m.locks[orderID] = true
	return true, nil
}

func (m *MockLockStore) ReleaseOrderLock(ctx context.Context, orderID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.locks, orderID)
	return nil
}

// ──────────────────────────────────────────────
// MOCK NOTICE STORE
// ──────────────────────────────────────────────

// MockNoticeStore records buyer notices in memory.
type MockNoticeStore struct {
	mu      sync.Mutex
	notices map[string][]redis.Notice

	PushError error
}

// NewMockNoticeStore creates a new mock notice store.
func NewMockNoticeStore() *MockNoticeStore {
	return &MockNoticeStore{notices: make(map[string][]redis.Notice)}
}

func (m *MockNoticeStore) Push(ctx context.Context, orderID string, notice redis.Notice) error {
	if m.PushError != nil {
		return m.PushError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notices[orderID] = append(m.notices[orderID], notice)
	return nil
}

func (m *MockNoticeStore) PopAll(ctx context.Context, orderID string) ([]redis.Notice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := m.notices[orderID]
	delete(m.notices, orderID)
	return out, nil
}

// Messages returns the recorded notice messages for an order.
func (m *MockNoticeStore) Messages(orderID string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	msgs := make([]string, 0, len(m.notices[orderID]))
	for _, n := range m.notices[orderID] {
		msgs = append(msgs, n.Message)
	}
	return msgs
}

// ──────────────────────────────────────────────
// MOCK STOREFRONT SESSION
// ──────────────────────────────────────────────

// MockSession is a storefront session with fixed URLs.
type MockSession struct{}

func (MockSession) CancelURL(order *domain.Order) string {
	return "https://store.test/cart?cancel_order=" + order.ID
}

func (MockSession) CartURL() string {
	return "https://store.test/cart"
}

func (MockSession) ReturnURL(order *domain.Order) string {
	return "https://store.test/thanks/" + order.ID
}

func (MockSession) CallbackURL(orderID string) string {
	return "https://store.test/callback?gateway=jazzypay&order_id=" + orderID
}
