package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"off", zerolog.Disabled},
		{"bogus", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			require.Equal(t, tt.want, parseLevel(tt.input))
		})
	}
}

func TestComponentAndRunFields(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "debug", Format: "json", Output: &buf})
	t.Cleanup(func() { Init(DefaultConfig()) })

	logger := Component("render-loop")
	logger.Info().Msg("hello")

	run := WithRun("run-1", 14)
	run.Debug().Msg("step")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)

	var first map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &first))
	require.Equal(t, "render-loop", first["component"])
	require.Equal(t, "hello", first["message"])

	var second map[string]any
	require.NoError(t, json.Unmarshal(lines[1], &second))
	require.Equal(t, "run-1", second["run_id"])
	require.EqualValues(t, 14, second["day"])
}

func TestFromContextFallsBackToGlobal(t *testing.T) {
	var buf bytes.Buffer
	custom := zerolog.New(&buf).With().Str("scope", "test").Logger()

	ctx := WithContext(context.Background(), custom)
	scoped := FromContext(ctx)
	scoped.Info().Msg("scoped")
	require.Contains(t, buf.String(), `"scope":"test"`)

	require.Equal(t, Logger, FromContext(context.Background()))
}

func TestRedirectRestores(t *testing.T) {
	var before, during bytes.Buffer
	Init(Config{Level: "info", Format: "json", Output: &before})
	t.Cleanup(func() { Init(DefaultConfig()) })

	restore := Redirect(&during)
	Info().Msg("muted")
	restore()
	Info().Msg("back")

	require.Contains(t, during.String(), "muted")
	require.NotContains(t, before.String(), "muted")
	require.Contains(t, before.String(), "back")
}
