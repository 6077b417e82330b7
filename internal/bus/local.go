package bus

import (
	"context"
	"sync"

	"volunteer-match/internal/domain"
)

type subscriber struct {
	id      uint64
	handler Handler
}

// Local delivers payloads in-process. Handlers run synchronously on the
// publisher's goroutine, in subscription order.
type Local struct {
	mu     sync.RWMutex
	subs   map[string][]subscriber
	nextID uint64
	closed bool
}

func NewLocal() *Local {
	return &Local{subs: make(map[string][]subscriber)}
}

func (b *Local) Publish(_ context.Context, channel string, payload domain.NoticePayload) (int, error) {
	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return 0, ErrClosed
	}
	subs := make([]subscriber, len(b.subs[channel]))
	copy(subs, b.subs[channel])
	b.mu.RUnlock()

	for _, s := range subs {
		s.handler(payload)
	}
	return len(subs), nil
}

func (b *Local) Subscribe(_ context.Context, channel string, handler Handler) (func(), error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil, ErrClosed
	}

	b.nextID++
	id := b.nextID
	b.subs[channel] = append(b.subs[channel], subscriber{id: id, handler: handler})

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(channel, id) })
	}, nil
}

func (b *Local) remove(channel string, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.subs[channel]
	for i, s := range subs {
		if s.id == id {
			b.subs[channel] = append(subs[:i:i], subs[i+1:]...)
			break
		}
	}
	if len(b.subs[channel]) == 0 {
		delete(b.subs, channel)
	}
}

func (b *Local) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	b.subs = make(map[string][]subscriber)
	return nil
}
