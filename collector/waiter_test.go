package collector

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robzale/sentcollect/collector/definitions"
)

func TestWaitForLoginTimesOutAfterBoundedPolls(t *testing.T) {
	calls := 0
	w := &Waiter{
		Classify: func(ctx context.Context) definitions.ScreenState {
			calls++
			return definitions.StateCredentials
		},
		MaxWait:      60 * time.Millisecond,
		PollInterval: 30 * time.Millisecond,
	}

	err := w.WaitForLogin(context.Background())
	require.ErrorIs(t, err, definitions.ErrManualLoginTimeout)
	require.Equal(t, 2, calls, "max_wait=60 poll=30 allows at most 2 classifications")
}

func TestWaitForLoginReturnsOnFirstLoggedIn(t *testing.T) {
	calls := 0
	w := &Waiter{
		Classify: func(ctx context.Context) definitions.ScreenState {
			calls++
			return definitions.StateLoggedIn
		},
		MaxWait:      time.Minute,
		PollInterval: 10 * time.Millisecond,
	}

	start := time.Now()
	err := w.WaitForLogin(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, calls)
	require.Less(t, time.Since(start), time.Second, "should return well before the ceiling")
}

func TestWaitForLoginHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	w := &Waiter{
		Classify: func(ctx context.Context) definitions.ScreenState {
			return definitions.StateCredentials
		},
		MaxWait:      time.Minute,
		PollInterval: 10 * time.Millisecond,
	}

	err := w.WaitForLogin(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
