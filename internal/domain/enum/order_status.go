package enum

// OrderStatus is the lifecycle state of an order. Orders move forward through
// PLACED → PAID → (ACCEPTED → IN_PROGRESS → READY) → COMPLETED, or terminate
// in CANCELED or REFUNDED.
type OrderStatus string

const (
	OrderStatusPlaced     OrderStatus = "PLACED"
	OrderStatusPaid       OrderStatus = "PAID"
	OrderStatusAccepted   OrderStatus = "ACCEPTED"
	OrderStatusInProgress OrderStatus = "IN_PROGRESS"
	OrderStatusReady      OrderStatus = "READY"
	OrderStatusCompleted  OrderStatus = "COMPLETED"
	OrderStatusCanceled   OrderStatus = "CANCELED"
	OrderStatusRefunded   OrderStatus = "REFUNDED"
)

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPlaced, OrderStatusPaid, OrderStatusAccepted, OrderStatusInProgress,
		OrderStatusReady, OrderStatusCompleted, OrderStatusCanceled, OrderStatusRefunded:
		return true
	}
	return false
}

// Terminal reports whether an order in this status accepts no further
// transitions.
func (s OrderStatus) Terminal() bool {
	switch s {
	case OrderStatusCompleted, OrderStatusCanceled, OrderStatusRefunded:
		return true
	}
	return false
}

// CanPay reports whether pay is allowed from this status.
func (s OrderStatus) CanPay() bool {
	return s == OrderStatusPlaced
}

// CanComplete reports whether complete is allowed from this status.
func (s OrderStatus) CanComplete() bool {
	return s == OrderStatusPaid || s == OrderStatusReady
}

// CanRefund reports whether refund is allowed from this status.
func (s OrderStatus) CanRefund() bool {
	return s == OrderStatusPaid || s == OrderStatusCompleted
}
