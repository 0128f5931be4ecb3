package tests

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"jazzypay/internal/domain"
	"jazzypay/internal/gateway"
	"jazzypay/internal/repository"
	"jazzypay/internal/service"
)

func newOrder(id string) *domain.Order {
	return &domain.Order{
		ID:       id,
		Currency: "PHP",
		Total:    1250.50,
		Billing: domain.BillingContact{
			FirstName: "Juan",
			LastName:  "Dela Cruz",
			Email:     "juan@example.com",
			Phone:     "0917-123-4567",
		},
		Status: domain.OrderStatusNew,
	}
}

type checkoutFixture struct {
	repo    *MockOrderRepository
	gw      *MockGateway
	locks   *MockLockStore
	notices *MockNoticeStore
	svc     *service.CheckoutService
}

func newCheckoutFixture() *checkoutFixture {
	repo := NewMockOrderRepository()
	gw := NewMockGateway("https://pay.jazzypay.test/session/1")
	locks := NewMockLockStore()
	notices := NewMockNoticeStore()
	logger := zap.NewNop().Sugar()

	noticeService := service.NewNoticeService(notices, logger)
	svc := service.NewCheckoutService(repo, gw, MockSession{}, locks, noticeService, logger)

	return &checkoutFixture{repo: repo, gw: gw, locks: locks, notices: notices, svc: svc}
}

func TestInitiate_ValidatesOrderID(t *testing.T) {
	f := newCheckoutFixture()

	_, err := f.svc.Initiate(context.Background(), "")

	if err != service.ErrInvalidOrderID {
		t.Errorf("expected ErrInvalidOrderID, got %v", err)
	}
	if f.gw.InitiateCallCount != 0 {
		t.Errorf("expected no processor call, got %d", f.gw.InitiateCallCount)
	}
}

func TestInitiate_UnknownOrder(t *testing.T) {
	f := newCheckoutFixture()

	_, err := f.svc.Initiate(context.Background(), "missing")

	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if f.gw.InitiateCallCount != 0 {
		t.Errorf("expected no processor call, got %d", f.gw.InitiateCallCount)
	}
}

func TestInitiate_UnsupportedCurrencySkipsNetworkCall(t *testing.T) {
	f := newCheckoutFixture()
	order := newOrder("42")
	order.Currency = "USD"
	f.repo.AddOrder(order)

	_, err := f.svc.Initiate(context.Background(), "42")

	if err != service.ErrUnsupportedCurrency {
		t.Errorf("expected ErrUnsupportedCurrency, got %v", err)
	}
	if f.gw.InitiateCallCount != 0 {
		t.Errorf("expected no processor call for unsupported currency, got %d", f.gw.InitiateCallCount)
	}
	if got := f.repo.GetOrder("42").Status; got != domain.OrderStatusNew {
		t.Errorf("expected order untouched, got status %s", got)
	}
	if msgs := f.notices.Messages("42"); len(msgs) != 1 {
		t.Errorf("expected one buyer notice, got %v", msgs)
	}
}

func TestInitiate_Success(t *testing.T) {
	f := newCheckoutFixture()
	f.repo.AddOrder(newOrder("42"))

	redirectURL, err := f.svc.Initiate(context.Background(), "42")

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if redirectURL != "https://pay.jazzypay.test/session/1" {
		t.Errorf("unexpected redirect url: %s", redirectURL)
	}
	if got := f.repo.GetOrder("42").Status; got != domain.OrderStatusPending {
		t.Errorf("expected PENDING after confirmed initiation, got %s", got)
	}

	notes := f.repo.Notes("42")
	if len(notes) != 1 || notes[0] != "Awaiting payment via JazzyPay" {
		t.Errorf("expected awaiting-payment note, got %v", notes)
	}
}

func TestInitiate_BuildsProcessorRequest(t *testing.T) {
	f := newCheckoutFixture()
	f.repo.AddOrder(newOrder("42"))

	if _, err := f.svc.Initiate(context.Background(), "42"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := f.gw.LastRequest()
	if req.TraceNo != "42" {
		t.Errorf("expected traceNo to carry the order id, got %q", req.TraceNo)
	}
	if req.Origin != "woocommerce" {
		t.Errorf("unexpected origin: %q", req.Origin)
	}
	if req.PhoneCode != "63" || req.PhoneNumber != "9171234567" {
		t.Errorf("expected normalized phone, got (%q, %q)", req.PhoneCode, req.PhoneNumber)
	}
	if req.Amount != 1250.50 {
		t.Errorf("unexpected amount: %v", req.Amount)
	}
	if req.SuccessURL != "https://store.test/callback?gateway=jazzypay&order_id=42" {
		t.Errorf("unexpected success url: %s", req.SuccessURL)
	}
	if req.CancelURL != "https://store.test/cart?cancel_order=42" {
		t.Errorf("unexpected cancel url: %s", req.CancelURL)
	}
	if req.FirstName != "Juan" || req.LastName != "Dela Cruz" || req.Email != "juan@example.com" {
		t.Errorf("unexpected buyer fields: %+v", req)
	}
}

func TestInitiate_ConnectionErrorLeavesOrderUntouched(t *testing.T) {
	f := newCheckoutFixture()
	f.repo.AddOrder(newOrder("42"))
	f.gw.Err = errors.New("dial tcp: connection refused")

	_, err := f.svc.Initiate(context.Background(), "42")

	if err != service.ErrConnectionFailed {
		t.Errorf("expected ErrConnectionFailed, got %v", err)
	}
	if got := f.repo.GetOrder("42").Status; got != domain.OrderStatusNew {
		t.Errorf("expected order untouched on transport failure, got %s", got)
	}
	if f.repo.SetStatusCallCount != 0 {
		t.Errorf("expected no status transition, got %d", f.repo.SetStatusCallCount)
	}
	if msgs := f.notices.Messages("42"); len(msgs) != 1 || msgs[0] != "Connection error." {
		t.Errorf("expected connection-error notice, got %v", msgs)
	}
}

func TestInitiate_ProcessorRejection(t *testing.T) {
	f := newCheckoutFixture()
	f.repo.AddOrder(newOrder("42"))

	tests := []struct {
		name   string
		status string
	}{
		{"declined", "Declined"},
		{"empty status", ""},
		{"unexpected tag", "Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f.gw.Response = &gateway.InitiationResponse{Status: tt.status}

			_, err := f.svc.Initiate(context.Background(), "42")

			if err != service.ErrProcessorRejected {
				t.Errorf("expected ErrProcessorRejected for status %q, got %v", tt.status, err)
			}
			if got := f.repo.GetOrder("42").Status; got != domain.OrderStatusNew {
				t.Errorf("expected order untouched on rejection, got %s", got)
			}
		})
	}
}

func TestInitiate_LostRaceStillRedirects(t *testing.T) {
	// A callback can move the order between the service's read and its
	// pending transition; the buyer must still be redirected to the page
	// the processor just confirmed.
	f := newCheckoutFixture()
	f.repo.AddOrder(newOrder("42"))
	f.repo.SetStatusError = repository.ErrStaleStatus

	redirectURL, err := f.svc.Initiate(context.Background(), "42")

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if redirectURL != "https://pay.jazzypay.test/session/1" {
		t.Errorf("unexpected redirect url: %s", redirectURL)
	}
}

func TestInitiate_NeverRevertsPaidOrderToPending(t *testing.T) {
	f := newCheckoutFixture()
	order := newOrder("42")
	order.Status = domain.OrderStatusPaid
	f.repo.AddOrder(order)

	_, err := f.svc.Initiate(context.Background(), "42")

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := f.repo.GetOrder("42").Status; got != domain.OrderStatusPaid {
		t.Errorf("paid order must stay paid, got %s", got)
	}
	if f.repo.SetStatusCallCount != 0 {
		t.Errorf("expected no transition attempt for terminal order, got %d", f.repo.SetStatusCallCount)
	}
}
