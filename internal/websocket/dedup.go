package websocket

import (
	"sync"
	"time"
)

const (
	dedupTTL     = 5 * time.Minute
	dedupMaxSize = 10000
)

// deduplicator remembers recently seen message IDs per client so that a
// resent request is applied once. IDs of different clients never collide.
type deduplicator struct {
	mu   sync.Mutex
	seen map[string]time.Time
	now  func() time.Time
}

func newDeduplicator() *deduplicator {
	return &deduplicator{seen: make(map[string]time.Time), now: time.Now}
}

// isDuplicate records msgID for clientID and reports whether that client
// already sent it within the TTL. Empty IDs are never duplicates.
func (d *deduplicator) isDuplicate(clientID, msgID string) bool {
	if msgID == "" {
		return false
	}
	key := clientID + "/" + msgID
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.now()
	if ts, ok := d.seen[key]; ok && now.Sub(ts) < dedupTTL {
		return true
	}
	d.seen[key] = now

	if len(d.seen) > dedupMaxSize {
		for k, ts := range d.seen {
			if now.Sub(ts) > 2*dedupTTL {
				delete(d.seen, k)
			}
		}
	}
	return false
}
