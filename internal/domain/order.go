package domain

// OrderStatus represents the current status of a store order.
type OrderStatus string

const (
	OrderStatusNew       OrderStatus = "NEW"
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusPaid      OrderStatus = "PAID"
	OrderStatusFailed    OrderStatus = "FAILED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// Terminal reports whether the status is one this flow never moves an
// order out of.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusPaid || s == OrderStatusCancelled
}

// BillingContact holds the buyer details sent to the processor.
type BillingContact struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string // raw, as entered at checkout
}

// Order is a store order as seen by the gateway. The Order Store owns the
// record; this flow only reads fields and requests status transitions.
type Order struct {
	ID       string
	Currency string
	Total    float64
	Billing  BillingContact
	Status   OrderStatus
}
