package notifier

import (
	"sync"

	"github.com/google/uuid"

	"github.com/kapehan/pos-api/internal/domain/event"
)

// MemoryNotifier records published events in memory. Used in tests to assert
// which events a flow emitted.
type MemoryNotifier struct {
	mu     sync.Mutex
	events []event.Pending
}

// NewMemoryNotifier creates an empty in-memory notifier.
func NewMemoryNotifier() *MemoryNotifier {
	return &MemoryNotifier{}
}

// Publish implements event.Notifier.
func (n *MemoryNotifier) Publish(branchID uuid.UUID, name string, payload any) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event.Pending{BranchID: branchID, Name: name, Payload: payload})
}

// Events returns a copy of everything published so far.
func (n *MemoryNotifier) Events() []event.Pending {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]event.Pending, len(n.events))
	copy(out, n.events)
	return out
}

// Names returns the event names in publish order.
func (n *MemoryNotifier) Names() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	names := make([]string, len(n.events))
	for i, e := range n.events {
		names[i] = e.Name
	}
	return names
}

var _ event.Notifier = (*MemoryNotifier)(nil)
