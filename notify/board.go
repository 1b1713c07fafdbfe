// Package notify shows transient notifications on a terminal.
package notify

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/fwojciec/pricex"
)

// Display lifetimes used by the two backend protocols.
const (
	SyncTTL = 4 * time.Second
	PollTTL = 3 * time.Second
)

var _ pricex.Notifier = (*Board)(nil)

// Board prints each notification as it arrives and keeps it active until
// its TTL expires. Notifications are neither deduplicated nor queued.
type Board struct {
	w   io.Writer
	ttl time.Duration

	mu     sync.Mutex
	nextID int
	active map[int]pricex.Notification
	timers map[int]*time.Timer
}

// NewBoard creates a Board writing to w. A ttl of zero or less keeps
// notifications active until Close.
func NewBoard(w io.Writer, ttl time.Duration) *Board {
	return &Board{
		w:      w,
		ttl:    ttl,
		active: make(map[int]pricex.Notification),
		timers: make(map[int]*time.Timer),
	}
}

// Notify prints n and schedules its removal.
func (b *Board) Notify(n pricex.Notification) {
	if n.Severity == "" {
		n.Severity = pricex.SeverityInfo
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.w != nil {
		fmt.Fprintf(b.w, "%s %s\n", Symbol(n.Severity), n.Message)
	}

	id := b.nextID
	b.nextID++
	b.active[id] = n
	if b.ttl > 0 {
		b.timers[id] = time.AfterFunc(b.ttl, func() { b.remove(id) })
	}
}

func (b *Board) remove(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.active, id)
	delete(b.timers, id)
}

// Active returns the notifications that have not yet expired, oldest
// first.
func (b *Board) Active() []pricex.Notification {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]pricex.Notification, 0, len(b.active))
	for id := 0; id < b.nextID; id++ {
		if n, ok := b.active[id]; ok {
			out = append(out, n)
		}
	}
	return out
}

// Close stops pending removals and drops all active notifications.
func (b *Board) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for id, t := range b.timers {
		t.Stop()
		delete(b.timers, id)
	}
	clear(b.active)
	return nil
}

// Symbol returns the terminal marker for a severity.
func Symbol(s pricex.Severity) string {
	switch s {
	case pricex.SeveritySuccess:
		return "[ok]"
	case pricex.SeverityError:
		return "[error]"
	case pricex.SeverityWarning:
		return "[warn]"
	default:
		return "[info]"
	}
}

// TTLFor returns the notification lifetime for a strategy name.
func TTLFor(mode string) time.Duration {
	if mode == "poll" {
		return PollTTL
	}
	return SyncTTL
}
