package throttle

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestThrottler_RunsInOrder(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	th := New(time.Millisecond, 8)
	th.Run(ctx)

	done := make(chan int, 3)
	for i := 0; i < 3; i++ {
		i := i
		require.True(t, th.Do(func() { done <- i }))
	}

	for want := 0; want < 3; want++ {
		select {
		case got := <-done:
			require.Equal(t, want, got)
		case <-time.After(time.Second):
			t.Fatalf("action %d was not run", want)
		}
	}
}

func TestThrottler_FullQueue(t *testing.T) {
	th := New(time.Hour, 1)

	require.True(t, th.Do(func() {}))
	require.False(t, th.Do(func() {}))
}
