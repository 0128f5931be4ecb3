package repository

import (
	"context"

	"jazzypay/internal/domain"
)

// OrderRepository defines the Order Store operations the checkout flow
// consumes. The store owns order records; this interface only reads them
// and requests status transitions.
type OrderRepository interface {
	// GetByID retrieves an order by its store-assigned identifier.
	GetByID(ctx context.Context, id string) (*domain.Order, error)

	// SetStatus transitions an order from an expected prior status to a
	// new one and records a note, as a single compare-and-set. Returns
	// ErrStaleStatus if the order is no longer in the prior status.
	SetStatus(ctx context.Context, id string, from, to domain.OrderStatus, note string) error

	// AddNote appends an order note without changing status.
	AddNote(ctx context.Context, id string, note string) error

	// ReduceStock decrements reserved inventory for the order's line items.
	ReduceStock(ctx context.Context, id string) error
}
