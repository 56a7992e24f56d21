// Package dedupe tracks reminder keys so the pipeline nags each
// member at most once per track per day.
//
// Keys are opaque strings; the reminder workers build them as
// member/track/date triples. The cache is bounded with FIFO eviction,
// which is safe here: evicting an old key can at worst repeat a
// reminder, never lose one.
package dedupe

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Default bound on remembered keys.
const defaultMaxSize = 50_000

// Deduper records seen reminder keys.
type Deduper interface {
	// SeenAndRecord atomically checks whether key was seen and records
	// it if not. Returns true when key was already present.
	SeenAndRecord(ctx context.Context, key string) bool

	// Unrecord forgets a key so it may fire again, used when a
	// reminder was recorded but failed to dispatch.
	Unrecord(ctx context.Context, key string)

	// Size returns the number of remembered keys.
	Size() int64
}

// ReminderKey builds the canonical dedupe key for one member, track
// and calendar day.
func ReminderKey(memberID, track string, day time.Time) string {
	return fmt.Sprintf("%s/%s/%s", memberID, track, day.Format("2006-01-02"))
}

// inMemoryDeduper is a bounded set with FIFO eviction.
type inMemoryDeduper struct {
	mu      sync.Mutex
	seen    map[string]struct{}
	order   []string // insertion order; head is evicted first
	head    int      // index of the oldest live entry in order
	maxSize int
}

// NewInMemoryDeduper creates a bounded in-memory deduper.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &inMemoryDeduper{
		maxSize: defaultMaxSize,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.seen = make(map[string]struct{}, d.maxSize)
	return d
}

func (d *inMemoryDeduper) SeenAndRecord(_ context.Context, key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[key]; ok {
		return true
	}
	if d.maxSize > 0 && len(d.seen) >= d.maxSize {
		d.evictOldest()
	}
	d.seen[key] = struct{}{}
	d.order = append(d.order, key)
	return false
}

func (d *inMemoryDeduper) Unrecord(_ context.Context, key string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	// The order slice keeps a stale entry; evictOldest skips keys no
	// longer in the map, so lazy removal is enough.
	delete(d.seen, key)
}

func (d *inMemoryDeduper) Size() int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return int64(len(d.seen))
}

// evictOldest drops the oldest live key. Must be called with d.mu held.
func (d *inMemoryDeduper) evictOldest() {
	for d.head < len(d.order) {
		key := d.order[d.head]
		d.head++
		if _, ok := d.seen[key]; ok {
			delete(d.seen, key)
			break
		}
	}
	// Compact once the dead prefix dominates the slice.
	if d.head > len(d.order)/2 {
		d.order = append([]string(nil), d.order[d.head:]...)
		d.head = 0
	}
}
