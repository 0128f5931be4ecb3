package session

import (
	"fmt"
	"net/url"
	"strings"

	"jazzypay/internal/domain"
)

// Session builds the storefront URLs the checkout flow hands to the buyer
// and to the processor. All URLs are rooted at the store's public site URL.
type Session struct {
	siteURL string
}

// New creates a Session for the given site URL. A trailing slash is
// stripped so path concatenation stays predictable.
func New(siteURL string) *Session {
	return &Session{siteURL: strings.TrimRight(siteURL, "/")}
}

// CancelURL is where the processor sends the buyer who abandons payment.
func (s *Session) CancelURL(order *domain.Order) string {
	return fmt.Sprintf("%s/cart?cancel_order=%s", s.siteURL, url.QueryEscape(order.ID))
}

// CartURL is the buyer's shopping cart page.
func (s *Session) CartURL() string {
	return s.siteURL + "/cart"
}

// ReturnURL is the order's thank-you page, shown after a confirmed payment.
func (s *Session) ReturnURL(order *domain.Order) string {
	return fmt.Sprintf("%s/checkout/order-received/%s", s.siteURL, url.PathEscape(order.ID))
}

// CallbackURL is this service's own callback endpoint, parameterized with
// the order identifier. The processor redirects the buyer's browser here
// once payment completes or fails.
func (s *Session) CallbackURL(orderID string) string {
	return fmt.Sprintf("%s/callback?gateway=jazzypay&order_id=%s", s.siteURL, url.QueryEscape(orderID))
}
