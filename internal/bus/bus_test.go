package bus_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"volunteer-match/internal/bus"
	"volunteer-match/internal/domain"
)

func payload(title string) domain.NoticePayload {
	return domain.NoticePayload{ID: "n-1", VolunteerID: "v-1", Title: title, Body: "b", Type: domain.NoticeSuccess, CreatedAtMs: 1700000000000}
}

func TestVolunteerChannel(t *testing.T) {
	assert.Equal(t, "volunteer:abc", bus.VolunteerChannel("abc"))
}

func TestLocal_PublishWithoutSubscribers(t *testing.T) {
	b := bus.NewLocal()
	n, err := b.Publish(context.Background(), "volunteer:1", payload("x"))
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestLocal_DeliversInSubscriptionOrder(t *testing.T) {
	b := bus.NewLocal()
	ctx := context.Background()

	var got []string
	_, err := b.Subscribe(ctx, "volunteer:1", func(p domain.NoticePayload) { got = append(got, "first:"+p.Title) })
	require.NoError(t, err)
	_, err = b.Subscribe(ctx, "volunteer:1", func(p domain.NoticePayload) { got = append(got, "second:"+p.Title) })
	require.NoError(t, err)
	_, err = b.Subscribe(ctx, "volunteer:2", func(p domain.NoticePayload) { got = append(got, "other:"+p.Title) })
	require.NoError(t, err)

	n, err := b.Publish(ctx, "volunteer:1", payload("hello"))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"first:hello", "second:hello"}, got)
}

func TestLocal_Unsubscribe(t *testing.T) {
	b := bus.NewLocal()
	ctx := context.Background()

	calls := 0
	unsub, err := b.Subscribe(ctx, "volunteer:1", func(domain.NoticePayload) { calls++ })
	require.NoError(t, err)

	unsub()
	unsub()

	n, err := b.Publish(ctx, "volunteer:1", payload("x"))
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, 0, calls)
}

func TestLocal_Closed(t *testing.T) {
	b := bus.NewLocal()
	require.NoError(t, b.Close())

	_, err := b.Publish(context.Background(), "volunteer:1", payload("x"))
	assert.ErrorIs(t, err, bus.ErrClosed)
	_, err = b.Subscribe(context.Background(), "volunteer:1", func(domain.NoticePayload) {})
	assert.ErrorIs(t, err, bus.ErrClosed)
}

func newRedisBus(t *testing.T) *bus.Redis {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	b := bus.NewRedis(client, zaptest.NewLogger(t))
	t.Cleanup(func() { b.Close() })
	return b
}

func TestRedis_PublishSubscribe(t *testing.T) {
	b := newRedisBus(t)
	ctx := context.Background()

	received := make(chan domain.NoticePayload, 1)
	unsub, err := b.Subscribe(ctx, "volunteer:1", func(p domain.NoticePayload) { received <- p })
	require.NoError(t, err)
	defer unsub()

	n, err := b.Publish(ctx, "volunteer:1", payload("Assignment confirmed"))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	select {
	case p := <-received:
		assert.Equal(t, payload("Assignment confirmed"), p)
	case <-time.After(2 * time.Second):
		t.Fatal("notice not delivered")
	}
}

func TestRedis_NoSubscribers(t *testing.T) {
	b := newRedisBus(t)

	n, err := b.Publish(context.Background(), "volunteer:nobody", payload("x"))
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestRedis_CloseStopsSubscriptions(t *testing.T) {
	b := newRedisBus(t)

	_, err := b.Subscribe(context.Background(), "volunteer:1", func(domain.NoticePayload) {})
	require.NoError(t, err)
	require.NoError(t, b.Close())

	_, err = b.Subscribe(context.Background(), "volunteer:1", func(domain.NoticePayload) {})
	assert.ErrorIs(t, err, bus.ErrClosed)
}

func TestRedis_SubscribeRacingCloseLeavesNoListener(t *testing.T) {
	for i := 0; i < 20; i++ {
		b := newRedisBus(t)
		ctx := context.Background()

		var wg sync.WaitGroup
		var subErr error
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, subErr = b.Subscribe(ctx, "volunteer:1", func(domain.NoticePayload) {})
		}()
		go func() {
			defer wg.Done()
			_ = b.Close()
		}()
		wg.Wait()

		if subErr != nil {
			require.ErrorIs(t, subErr, bus.ErrClosed)
		}
		// Whichever side won, no subscription may outlive Close.
		require.Eventually(t, func() bool {
			n, err := b.Publish(ctx, "volunteer:1", payload("late"))
			return err == nil && n == 0
		}, 2*time.Second, 10*time.Millisecond, "iteration %d", i)
	}
}
