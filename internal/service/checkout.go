package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"jazzypay/internal/domain"
	"jazzypay/internal/gateway"
	redisstore "jazzypay/internal/redis"
	"jazzypay/internal/repository"
)

const (
	// supportedCurrency is the only currency JazzyPay settles in.
	supportedCurrency = "PHP"

	// origin tags every initiation with the storefront integration that
	// produced it; the processor keys reporting off this value.
	origin = "woocommerce"

	awaitingPaymentNote = "Awaiting payment via JazzyPay"
	paymentReceivedNote = "Payment received via JazzyPay."
	paymentFailedNote   = "Payment failed."

	noticeUnsupportedCurrency = "This transaction cannot be processed due to an unsupported currency."
	noticeConnectionError     = "Connection error."
	noticeProcessorRejected   = "Please try again."
	noticePaymentFailed       = "Payment failed. Please try again or select a different payment method."

	// orderLockTTL bounds how long a callback or initiation may hold an
	// order's lock; it only expires if the holder crashed mid-request.
	orderLockTTL = 10 * time.Second
)

// Gateway is the interface for the payment processor client.
type Gateway interface {
	Initiate(ctx context.Context, req gateway.InitiationRequest) (*gateway.InitiationResponse, error)
}

// StorefrontSession exposes the storefront URLs the checkout flow needs.
type StorefrontSession interface {
	CancelURL(order *domain.Order) string
	CartURL() string
	ReturnURL(order *domain.Order) string
	CallbackURL(orderID string) string
}

// Callback is the outcome the processor reports by redirecting the buyer's
// browser to the callback endpoint. All fields are untrusted external
// input.
type Callback struct {
	Gateway string
	OrderID string
	Status  string
}

// CheckoutService hands checkout off to JazzyPay and reconciles the
// processor-reported outcome with the Order Store.
type CheckoutService struct {
	orders  repository.OrderRepository
	gateway Gateway
	session StorefrontSession
	locks   redisstore.LockStoreInterface
	notices *NoticeService
	logger  *zap.SugaredLogger
}

// NewCheckoutService creates a new CheckoutService.
func NewCheckoutService(
	orders repository.OrderRepository,
	gw Gateway,
	session StorefrontSession,
	locks redisstore.LockStoreInterface,
	notices *NoticeService,
	logger *zap.SugaredLogger,
) *CheckoutService {
	return &CheckoutService{
		orders:  orders,
		gateway: gw,
		session: session,
		locks:   locks,
		notices: notices,
		logger:  logger,
	}
}

// Initiate starts payment collection for an order. On success it returns
// the processor URL to redirect the buyer to; the order is moved to
// pending only after the processor confirms the initiation. Exactly one
// attempt is made, and the order is never left half-transitioned: every
// failure path exits before the status change.
func (s *CheckoutService) Initiate(ctx context.Context, orderID string) (string, error) {
	if orderID == "" {
		return "", ErrInvalidOrderID
	}

	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return "", err
	}

	if order.Currency != supportedCurrency {
		s.notices.Error(ctx, orderID, noticeUnsupportedCurrency)
		return "", ErrUnsupportedCurrency
	}

	phoneCode, phoneNumber := domain.NormalizePhone(order.Billing.Phone)

	req := gateway.InitiationRequest{
		FirstName:   order.Billing.FirstName,
		LastName:    order.Billing.LastName,
		Email:       order.Billing.Email,
		PhoneCode:   phoneCode,
		PhoneNumber: phoneNumber,
		Amount:      order.Total,
		Description: "",
		TraceNo:     order.ID,
		Origin:      origin,
		SuccessURL:  s.session.CallbackURL(order.ID),
		CancelURL:   s.session.CancelURL(order),
	}

	resp, err := s.gateway.Initiate(ctx, req)
	if err != nil {
		s.logger.Errorw("payment initiation failed",
			"order_id", orderID,
			"error", err,
		)
		s.notices.Error(ctx, orderID, noticeConnectionError)
		return "", ErrConnectionFailed
	}

	if !resp.Succeeded() {
		s.logger.Warnw("payment initiation rejected by processor",
			"order_id", orderID,
			"status", resp.Status,
		)
		s.notices.Error(ctx, orderID, noticeProcessorRejected)
		return "", ErrProcessorRejected
	}

	// Guard against a callback that already moved the order while the
	// initiation response was in flight. Losing the race is fine: the
	// processor accepted, so the buyer still gets redirected. A terminal
	// status is never reverted to pending.
	if !order.Status.Terminal() {
		err = s.orders.SetStatus(ctx, order.ID, order.Status, domain.OrderStatusPending, awaitingPaymentNote)
		if err != nil && !errors.Is(err, repository.ErrStaleStatus) {
			return "", err
		}
		if errors.Is(err, repository.ErrStaleStatus) {
			s.logger.Warnw("order moved during initiation, skipping pending transition",
				"order_id", orderID,
			)
		}
	}

	return resp.RedirectURL, nil
}

// HandleCallback reconciles a processor-reported outcome with the Order
// Store. It returns the URL to redirect the buyer's browser to, or an
// empty string when the callback warrants no redirect (malformed input
// and unrecognized status values are logged, not surfaced to the buyer).
func (s *CheckoutService) HandleCallback(ctx context.Context, cb Callback) (string, error) {
	orderID := sanitizeText(cb.OrderID)
	status := sanitizeText(cb.Status)

	if orderID == "" || status == "" || (cb.Gateway != "" && sanitizeText(cb.Gateway) != "jazzypay") {
		return "", ErrMalformedCallback
	}

	// Serialize callbacks for one order against each other and against a
	// late initiation response. The status compare-and-set below is the
	// correctness guarantee; the lock just avoids doing wasted work.
	acquired, err := s.locks.AcquireOrderLock(ctx, orderID, orderLockTTL)
	if err != nil {
		s.logger.Warnw("order lock unavailable, relying on status guard",
			"order_id", orderID,
			"error", err,
		)
	}
	if acquired {
		defer func() {
			if err := s.locks.ReleaseOrderLock(ctx, orderID); err != nil {
				s.logger.Warnw("failed to release order lock", "order_id", orderID, "error", err)
			}
		}()
	}

	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return "", err
	}

	switch status {
	case gateway.StatusSuccess:
		return s.completePayment(ctx, order)

	case gateway.StatusFailed:
		s.notices.Notify(ctx, order.ID, noticePaymentFailed)
		if err := s.orders.AddNote(ctx, order.ID, paymentFailedNote); err != nil {
			return "", err
		}
		return s.session.CartURL(), nil

	default:
		// The original integration silently ignored unknown statuses; keep
		// the no-redirect behavior but leave a trace.
		s.logger.Warnw("unrecognized callback status",
			"order_id", order.ID,
			"status", status,
		)
		return "", nil
	}
}

// completePayment marks the order paid and reduces stock exactly once.
// The expected-prior-status guard makes concurrent Success callbacks
// linearizable: only the transition winner touches inventory.
func (s *CheckoutService) completePayment(ctx context.Context, order *domain.Order) (string, error) {
	if order.Status == domain.OrderStatusPaid {
		// Duplicate callback for an already-paid order: redirect the buyer
		// to the thank-you page, touch nothing.
		return s.session.ReturnURL(order), nil
	}

	err := s.orders.SetStatus(ctx, order.ID, order.Status, domain.OrderStatusPaid, paymentReceivedNote)
	if errors.Is(err, repository.ErrStaleStatus) {
		s.logger.Warnw("order moved during callback, skipping stock reduction",
			"order_id", order.ID,
		)
		return s.session.ReturnURL(order), nil
	}
	if err != nil {
		return "", err
	}

	if err := s.orders.ReduceStock(ctx, order.ID); err != nil {
		// The payment is confirmed either way; inventory drift is an
		// operator problem, not a buyer problem.
		s.logger.Errorw("failed to reduce stock for paid order",
			"order_id", order.ID,
			"error", err,
		)
	}

	return s.session.ReturnURL(order), nil
}

// sanitizeText reduces untrusted callback input to plain printable text:
// control characters are dropped and surrounding whitespace trimmed.
func sanitizeText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= 0x20 && r != 0x7f {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
