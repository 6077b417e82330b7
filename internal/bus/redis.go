package bus

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"volunteer-match/internal/domain"
)

// Redis carries payloads over Redis pub/sub so every API instance sees them.
// The delivered count is the number of Redis subscribers, not handlers.
type Redis struct {
	client *redis.Client
	log    *zap.Logger

	mu     sync.Mutex
	active map[*redis.PubSub]struct{}
	closed bool
	wg     sync.WaitGroup
}

func NewRedis(client *redis.Client, log *zap.Logger) *Redis {
	if log == nil {
		log = zap.NewNop()
	}
	return &Redis{
		client: client,
		log:    log,
		active: make(map[*redis.PubSub]struct{}),
	}
}

func (b *Redis) Publish(ctx context.Context, channel string, payload domain.NoticePayload) (int, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return 0, fmt.Errorf("encode payload: %w", err)
	}

	n, err := b.client.Publish(ctx, channel, data).Result()
	if err != nil {
		return 0, fmt.Errorf("publish %s: %w", channel, err)
	}
	return int(n), nil
}

func (b *Redis) Subscribe(ctx context.Context, channel string, handler Handler) (func(), error) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil, ErrClosed
	}
	b.mu.Unlock()

	ps := b.client.Subscribe(ctx, channel)
	// Wait for the subscription confirmation so a publish issued right after
	// Subscribe returns is not lost.
	if _, err := ps.Receive(ctx); err != nil {
		ps.Close()
		return nil, fmt.Errorf("subscribe %s: %w", channel, err)
	}

	// Close may have run during the round trip above.
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		ps.Close()
		return nil, ErrClosed
	}
	b.active[ps] = struct{}{}
	b.wg.Add(1)
	b.mu.Unlock()

	go func() {
		defer b.wg.Done()
		for msg := range ps.Channel() {
			var payload domain.NoticePayload
			if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
				b.log.Warn("dropping malformed notice", zap.String("channel", msg.Channel), zap.Error(err))
				continue
			}
			handler(payload)
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.active, ps)
			b.mu.Unlock()
			ps.Close()
		})
	}, nil
}

// Close stops every live subscription and waits for their loops to exit. The
// Redis client itself is owned by the caller.
func (b *Redis) Close() error {
	b.mu.Lock()
	b.closed = true
	subs := make([]*redis.PubSub, 0, len(b.active))
	for ps := range b.active {
		subs = append(subs, ps)
	}
	b.active = make(map[*redis.PubSub]struct{})
	b.mu.Unlock()

	for _, ps := range subs {
		ps.Close()
	}
	b.wg.Wait()
	return nil
}
