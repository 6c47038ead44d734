package notify

import (
	"context"
	"sync"
)

// Registration describes one calendar-triggered notification. Weekday is
// nil for daily triggers; 0..6 (Sunday=0) pins a weekly trigger.
type Registration struct {
	ID      string
	UserID  string
	Title   string
	Body    string
	Hour    int
	Minute  int
	Weekday *int
}

// Notifier is the platform notification API, treated as an external
// collaborator. Implementations register calendar triggers by string id.
type Notifier interface {
	PermissionGranted(ctx context.Context) bool
	Register(ctx context.Context, reg Registration) error
	Cancel(ctx context.Context, ids ...string) error
	CancelAllForUser(ctx context.Context, userID string) error
	PendingForUser(ctx context.Context, userID string) ([]Registration, error)
}

// MemoryNotifier records registrations in memory. It backs tests and
// local-only runs where no platform notification API exists.
type MemoryNotifier struct {
	mu         sync.RWMutex
	registered map[string]Registration
	permitted  bool
}

func NewMemoryNotifier() *MemoryNotifier {
	return &MemoryNotifier{
		registered: make(map[string]Registration),
		permitted:  true,
	}
}

// SetPermission flips the simulated authorization state.
func (n *MemoryNotifier) SetPermission(granted bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.permitted = granted
}

func (n *MemoryNotifier) PermissionGranted(ctx context.Context) bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.permitted
}

func (n *MemoryNotifier) Register(ctx context.Context, reg Registration) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.registered[reg.ID] = reg
	return nil
}

func (n *MemoryNotifier) Cancel(ctx context.Context, ids ...string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, id := range ids {
		delete(n.registered, id)
	}
	return nil
}

func (n *MemoryNotifier) CancelAllForUser(ctx context.Context, userID string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	for id, reg := range n.registered {
		if reg.UserID == userID {
			delete(n.registered, id)
		}
	}
	return nil
}

func (n *MemoryNotifier) PendingForUser(ctx context.Context, userID string) ([]Registration, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := []Registration{}
	for _, reg := range n.registered {
		if reg.UserID == userID {
			out = append(out, reg)
		}
	}
	return out, nil
}

var _ Notifier = (*MemoryNotifier)(nil)
