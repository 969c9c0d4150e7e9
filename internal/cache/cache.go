// Package cache provides a single-slot, time-bounded cache around one
// producer function. One Slot covers exactly one logical resource.
package cache

import (
	"context"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"
)

// snapshot pairs a value with its fetch time. The pair is swapped
// atomically as a unit so readers never see a value without its timestamp.
type snapshot[T any] struct {
	value     T
	fetchedAt time.Time
}

// Slot caches the last successful result of fetch for up to ttl. Producer
// failures never reach the caller: a stale snapshot is served if one
// exists, otherwise the zero value. Safe for concurrent use; concurrent
// refreshes of a stale slot are collapsed into one upstream call.
type Slot[T any] struct {
	fetch func(context.Context) (T, error)
	ttl   time.Duration
	now   func() time.Time

	cur   atomic.Pointer[snapshot[T]]
	group singleflight.Group
}

func NewSlot[T any](ttl time.Duration, fetch func(context.Context) (T, error)) *Slot[T] {
	return &Slot[T]{fetch: fetch, ttl: ttl, now: time.Now}
}

// GetOrFetch returns the cached value if it is fresher than the TTL,
// otherwise invokes the producer. On producer failure the previous value
// is returned unchanged if one exists, else the zero value of T.
func (s *Slot[T]) GetOrFetch(ctx context.Context) T {
	if snap := s.cur.Load(); snap != nil && s.now().Sub(snap.fetchedAt) < s.ttl {
		return snap.value
	}

	v, err, _ := s.group.Do("fetch", func() (any, error) {
		value, err := s.fetch(ctx)
		if err != nil {
			return nil, err
		}
		snap := &snapshot[T]{value: value, fetchedAt: s.now()}
		s.cur.Store(snap)
		return value, nil
	})
	if err != nil {
		if snap := s.cur.Load(); snap != nil {
			return snap.value
		}
		var zero T
		return zero
	}
	return v.(T)
}

// FetchedAt reports when the slot was last populated. ok is false when no
// fetch has ever succeeded.
func (s *Slot[T]) FetchedAt() (t time.Time, ok bool) {
	if snap := s.cur.Load(); snap != nil {
		return snap.fetchedAt, true
	}
	return time.Time{}, false
}

// Primed reports whether the slot holds any value, fresh or stale.
func (s *Slot[T]) Primed() bool {
	return s.cur.Load() != nil
}
