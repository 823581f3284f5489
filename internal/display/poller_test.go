package display

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type scriptedKeys struct {
	keys chan Key
	err  error
}

func newScriptedKeys(keys ...Key) *scriptedKeys {
	s := &scriptedKeys{keys: make(chan Key, len(keys))}
	for _, k := range keys {
		s.keys <- k
	}
	return s
}

func (s *scriptedKeys) ReadKey(ctx context.Context, timeout time.Duration) (Key, bool, error) {
	if s.err != nil {
		return "", false, s.err
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case k := <-s.keys:
		return k, true, nil
	case <-timer.C:
		return "", false, nil
	case <-ctx.Done():
		return "", false, ctx.Err()
	}
}

func TestPollerForwardsKeysThenTicks(t *testing.T) {
	defer goleak.VerifyNone(t)

	ch := NewChannel()
	poller := NewPoller(newScriptedKeys("a", KeyQuit), ch, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- poller.Run(ctx) }()

	var inputs []Key
	ticks := 0
	for ticks < 3 {
		ev, err := ch.Receive(ctx)
		require.NoError(t, err)
		switch e := ev.(type) {
		case Input:
			inputs = append(inputs, e.Key)
		case Tick:
			ticks++
		default:
			t.Fatalf("unexpected event %T", ev)
		}
	}
	cancel()
	require.NoError(t, <-done)
	require.Equal(t, []Key{"a", KeyQuit}, inputs)
}

func TestPollerTickCadence(t *testing.T) {
	defer goleak.VerifyNone(t)

	ch := NewChannel()
	poller := NewPoller(newScriptedKeys(), ch, 20*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	start := time.Now()
	go func() { done <- poller.Run(ctx) }()

	for i := 0; i < 3; i++ {
		ev, err := ch.Receive(ctx)
		require.NoError(t, err)
		require.Equal(t, Tick{}, ev)
	}
	elapsed := time.Since(start)
	cancel()
	require.NoError(t, <-done)

	require.GreaterOrEqual(t, elapsed, 60*time.Millisecond)
}

func TestPollerStopsWhenChannelClosed(t *testing.T) {
	defer goleak.VerifyNone(t)

	ch := NewChannel()
	ch.Close()

	err := NewPoller(newScriptedKeys(), ch, 5*time.Millisecond).Run(context.Background())
	require.NoError(t, err)
}

func TestPollerReturnsKeySourceError(t *testing.T) {
	keys := newScriptedKeys()
	keys.err = errors.New("tty gone")

	err := NewPoller(keys, NewChannel(), 5*time.Millisecond).Run(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "tty gone")
}

func TestPollerDefaultsTick(t *testing.T) {
	p := NewPoller(newScriptedKeys(), Discard, 0)
	require.Equal(t, DefaultTickInterval, p.tick)
}
