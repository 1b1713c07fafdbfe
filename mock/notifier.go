package mock

import (
	"sync"

	"github.com/fwojciec/pricex"
)

var _ pricex.Notifier = (*Notifier)(nil)

// Notifier is a mock implementation of pricex.Notifier that records every
// notification it receives.
type Notifier struct {
	mu            sync.Mutex
	Notifications []pricex.Notification
}

func (n *Notifier) Notify(notification pricex.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Notifications = append(n.Notifications, notification)
}

// All returns a copy of the recorded notifications.
func (n *Notifier) All() []pricex.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]pricex.Notification(nil), n.Notifications...)
}

// BySeverity returns the recorded notifications of one severity.
func (n *Notifier) BySeverity(s pricex.Severity) []pricex.Notification {
	var out []pricex.Notification
	for _, notification := range n.All() {
		if notification.Severity == s {
			out = append(out, notification)
		}
	}
	return out
}
