package display

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tOgg1/aoc2024/internal/logging"
)

// DefaultRowThrottle is the pause after each NewRow event.
const DefaultRowThrottle = 2 * time.Millisecond

// Receiver is the consuming end of an event channel.
type Receiver interface {
	Receive(ctx context.Context) (Event, error)
}

// Renderer draws one frame of the display state.
type Renderer interface {
	Draw(State) error
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(State) error

// Draw calls f(s).
func (f RendererFunc) Draw(s State) error {
	return f(s)
}

// LoopConfig controls render loop behaviour.
type LoopConfig struct {
	// QuitKeys end the loop. Defaults to "q".
	QuitKeys []Key

	// RowThrottle is slept after every NewRow event.
	RowThrottle time.Duration

	// MaxRows bounds the row list.
	MaxRows int
}

// Loop is the single consumer of the event channel and the only mutator of
// the display state.
type Loop struct {
	events   Receiver
	renderer Renderer
	quit     map[Key]struct{}
	throttle time.Duration
	maxRows  int
	sleep    func(context.Context, time.Duration)
	logger   zerolog.Logger
}

// NewLoop creates a render loop reading from events and drawing to renderer.
func NewLoop(events Receiver, renderer Renderer, cfg LoopConfig) *Loop {
	keys := cfg.QuitKeys
	if len(keys) == 0 {
		keys = []Key{KeyQuit}
	}
	quit := make(map[Key]struct{}, len(keys))
	for _, k := range keys {
		quit[k] = struct{}{}
	}
	if cfg.RowThrottle < 0 {
		cfg.RowThrottle = 0
	}
	if cfg.MaxRows <= 0 {
		cfg.MaxRows = DefaultMaxRows
	}

	return &Loop{
		events:   events,
		renderer: renderer,
		quit:     quit,
		throttle: cfg.RowThrottle,
		maxRows:  cfg.MaxRows,
		sleep:    sleepContext,
		logger:   logging.Component("render-loop"),
	}
}

// Run draws, then blocks for the next event and applies it, until a quit key
// arrives. It returns the final state. Draw and receive failures end the loop.
func (l *Loop) Run(ctx context.Context) (State, error) {
	var state State
	redraw := true
	events := 0

	for {
		if redraw {
			if err := l.renderer.Draw(state); err != nil {
				return state, fmt.Errorf("draw frame: %w", err)
			}
		}
		// Every event, including a no-op tick, triggers a redraw.
		redraw = true

		ev, err := l.events.Receive(ctx)
		if err != nil {
			return state, fmt.Errorf("receive event: %w", err)
		}
		events++

		switch e := ev.(type) {
		case Tick:
		case Input:
			if _, ok := l.quit[e.Key]; ok {
				l.logger.Debug().Str("key", string(e.Key)).Int("events", events).Msg("quit requested")
				return state, nil
			}
		case StateUpdate:
			state.Merge(e)
		case NewRow:
			state.PushRow(e.Row, l.maxRows)
			if l.throttle > 0 {
				l.sleep(ctx, l.throttle)
			}
		default:
			l.logger.Warn().Str("type", fmt.Sprintf("%T", ev)).Msg("ignoring unknown event")
		}
	}
}

func sleepContext(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
