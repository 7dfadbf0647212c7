package eventbus

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

type testEvent struct {
	N int
}

type otherEvent struct {
	S string
}

func TestPublishReachesSubscribers(t *testing.T) {
	Use(New())
	defer Use(nil)

	var got []int
	unsub := Subscribe(func(ctx context.Context, e testEvent) {
		got = append(got, e.N)
	})
	defer unsub()

	Publish(context.Background(), testEvent{N: 1})
	Publish(context.Background(), testEvent{N: 2})
	require.Equal(t, []int{1, 2}, got)
}

func TestDispatchIsTypeKeyed(t *testing.T) {
	Use(New())
	defer Use(nil)

	var ints, strs int
	defer Subscribe(func(ctx context.Context, e testEvent) { ints++ })()
	defer Subscribe(func(ctx context.Context, e otherEvent) { strs++ })()

	Publish(context.Background(), testEvent{N: 1})
	Publish(context.Background(), otherEvent{S: "x"})
	Publish(context.Background(), otherEvent{S: "y"})

	require.Equal(t, 1, ints)
	require.Equal(t, 2, strs)
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	Use(New())
	defer Use(nil)

	var calls int
	unsub := Subscribe(func(ctx context.Context, e testEvent) { calls++ })

	Publish(context.Background(), testEvent{N: 1})
	unsub()
	unsub() // second call is a no-op
	Publish(context.Background(), testEvent{N: 2})

	require.Equal(t, 1, calls)
}

func TestNilBusIsSafe(t *testing.T) {
	Use(nil)
	require.NotPanics(t, func() {
		Publish(context.Background(), testEvent{N: 1})
		unsub := Subscribe(func(ctx context.Context, e testEvent) {})
		unsub()
	})
}
