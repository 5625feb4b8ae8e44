package event

import "github.com/google/uuid"

// Event names published by the order lifecycle controller. One is emitted
// after each committed transition.
const (
	OrderCreated       = "order.created"
	OrderPaid          = "order.paid"
	OrderStatusChanged = "order.status_changed"
	OrderCompleted     = "order.completed"
	OrderCanceled      = "order.canceled"
	OrderRefunded      = "order.refunded"
)

// Notifier pushes branch-scoped events to live subscribers (kitchen boards,
// displays). Delivery is at-most-once and fire-and-forget: nothing in the
// core depends on it, and consumers reconcile through the pull API.
type Notifier interface {
	Publish(branchID uuid.UUID, name string, payload any)
}

// Pending is an event recorded during a transaction and published only after
// the transaction commits.
type Pending struct {
	BranchID uuid.UUID
	Name     string
	Payload  any
}

// NoopNotifier drops every event. Useful when no broker is configured.
type NoopNotifier struct{}

// Publish implements Notifier.
func (NoopNotifier) Publish(uuid.UUID, string, any) {}
