package display

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tOgg1/aoc2024/internal/logging"
)

// DefaultTickInterval is the cadence of Tick events.
const DefaultTickInterval = 200 * time.Millisecond

// Poller turns key presses and a wall-clock tick into events.
type Poller struct {
	keys   KeySource
	events Sender
	tick   time.Duration
	now    func() time.Time
	logger zerolog.Logger
}

// NewPoller creates a poller reading keys and sending events. A non-positive
// tick uses DefaultTickInterval.
func NewPoller(keys KeySource, events Sender, tick time.Duration) *Poller {
	if tick <= 0 {
		tick = DefaultTickInterval
	}
	return &Poller{
		keys:   keys,
		events: events,
		tick:   tick,
		now:    time.Now,
		logger: logging.Component("input-poller"),
	}
}

// Run polls until ctx is cancelled or the event channel is closed, both of
// which return nil. Key source failures are returned.
func (p *Poller) Run(ctx context.Context) error {
	p.logger.Debug().Dur("tick", p.tick).Msg("input poller starting")
	defer p.logger.Debug().Msg("input poller stopped")

	lastTick := p.now()
	for {
		if ctx.Err() != nil {
			return nil
		}

		timeout := p.tick - p.now().Sub(lastTick)
		if timeout < 0 {
			timeout = 0
		}

		key, ok, err := p.keys.ReadKey(ctx, timeout)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("poll input: %w", err)
		}
		if ok {
			if err := p.events.Send(Input{Key: key}); err != nil {
				return p.sendErr(err)
			}
		}

		if p.now().Sub(lastTick) >= p.tick {
			if err := p.events.Send(Tick{}); err != nil {
				return p.sendErr(err)
			}
			lastTick = p.now()
		}
	}
}

func (p *Poller) sendErr(err error) error {
	if errors.Is(err, ErrChannelClosed) {
		return nil
	}
	return fmt.Errorf("send event: %w", err)
}
