package display

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestDecodeKeys(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Key
	}{
		{name: "quit", input: "q", want: []Key{KeyQuit}},
		{name: "several runes", input: "ab", want: []Key{"a", "b"}},
		{name: "ctrl+c", input: "\x03", want: []Key{KeyCtrlC}},
		{name: "enter", input: "\r", want: []Key{KeyEnter}},
		{name: "bare escape", input: "\x1b", want: []Key{KeyEsc}},
		{name: "arrows", input: "\x1b[A\x1b[B\x1bOC\x1b[D", want: []Key{KeyUp, KeyDown, KeyRight, KeyLeft}},
		{name: "unknown csi dropped", input: "\x1b[1;5Hq", want: []Key{KeyQuit}},
		{name: "other control bytes dropped", input: "\x01\x7fx", want: []Key{"x"}},
		{name: "utf8", input: "é", want: []Key{"é"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, DecodeKeys([]byte(tt.input)))
		})
	}
}

func TestStdinKeysReadsAndTimesOut(t *testing.T) {
	defer goleak.VerifyNone(t)

	r, w := io.Pipe()
	keys, err := NewStdinKeys(r)
	require.NoError(t, err)

	ctx := context.Background()
	_, ok, err := keys.ReadKey(ctx, 10*time.Millisecond)
	require.NoError(t, err)
	require.False(t, ok)

	_, err = w.Write([]byte("xq"))
	require.NoError(t, err)

	key, ok, err := keys.ReadKey(ctx, time.Second)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, Key("x"), key)

	key, ok, err = keys.ReadKey(ctx, time.Second)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, KeyQuit, key)

	require.NoError(t, w.Close())
	require.NoError(t, keys.Close())
	require.NoError(t, keys.Close())
}

func TestStdinKeysHonoursContext(t *testing.T) {
	defer goleak.VerifyNone(t)

	r, w := io.Pipe()
	keys, err := NewStdinKeys(r)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, ok, err := keys.ReadKey(ctx, time.Hour)
	require.ErrorIs(t, err, context.Canceled)
	require.False(t, ok)

	require.NoError(t, w.Close())
	require.NoError(t, keys.Close())
}
