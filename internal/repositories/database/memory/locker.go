package memory

import (
	"context"
	"sync"
)

// keyedLocker hands out one exclusive lock per key.
// Waiting for a lock honours context cancellation.
type keyedLocker struct {
	mu    sync.Mutex
	slots map[string]*lockSlot
}

type lockSlot struct {
	ch   chan struct{}
	refs int
}

func newKeyedLocker() *keyedLocker {
	return &keyedLocker{slots: make(map[string]*lockSlot)}
}

// Lock blocks until the key is free or ctx is done.
func (l *keyedLocker) Lock(ctx context.Context, key string) error {
	l.mu.Lock()
	slot, ok := l.slots[key]
	if !ok {
		slot = &lockSlot{ch: make(chan struct{}, 1)}
		l.slots[key] = slot
	}
	slot.refs++
	l.mu.Unlock()

	select {
	case slot.ch <- struct{}{}:
		return nil
	case <-ctx.Done():
		l.release(key, slot)
		return ctx.Err()
	}
}

// Unlock frees a key taken with Lock.
func (l *keyedLocker) Unlock(key string) {
	l.mu.Lock()
	slot, ok := l.slots[key]
	l.mu.Unlock()
	if !ok {
		return
	}
	<-slot.ch
	l.release(key, slot)
}

func (l *keyedLocker) release(key string, slot *lockSlot) {
	l.mu.Lock()
	defer l.mu.Unlock()
	slot.refs--
	if slot.refs == 0 {
		delete(l.slots, key)
	}
}
