package session

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"jazzypay/internal/domain"
)

func TestSessionURLs(t *testing.T) {
	s := New("https://store.example/")
	order := &domain.Order{ID: "42"}

	assert.Equal(t, "https://store.example/cart", s.CartURL())
	assert.Equal(t, "https://store.example/cart?cancel_order=42", s.CancelURL(order))
	assert.Equal(t, "https://store.example/checkout/order-received/42", s.ReturnURL(order))
	assert.Equal(t, "https://store.example/callback?gateway=jazzypay&order_id=42", s.CallbackURL("42"))
}

func TestSessionURLs_EscapesOrderID(t *testing.T) {
	s := New("https://store.example")

	assert.Equal(t,
		"https://store.example/callback?gateway=jazzypay&order_id=a%26b",
		s.CallbackURL("a&b"))
}
