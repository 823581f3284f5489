package display

import (
	"context"
	"errors"
	"sync"
)

// ErrChannelClosed is returned by Send after the consumer closed the channel,
// and by Receive once a closed channel has been drained.
var ErrChannelClosed = errors.New("event channel closed")

// Channel is an unbounded multi-producer, single-consumer event queue.
// Send never blocks.
type Channel struct {
	mu     sync.Mutex
	queue  []Event
	closed bool
	ready  chan struct{}
}

// NewChannel creates an empty channel.
func NewChannel() *Channel {
	return &Channel{ready: make(chan struct{}, 1)}
}

// Send enqueues ev.
func (c *Channel) Send(ev Event) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrChannelClosed
	}
	c.queue = append(c.queue, ev)
	c.mu.Unlock()

	c.notify()
	return nil
}

// Receive blocks until an event is available and returns the oldest one.
func (c *Channel) Receive(ctx context.Context) (Event, error) {
	for {
		c.mu.Lock()
		if len(c.queue) > 0 {
			ev := c.queue[0]
			c.queue[0] = nil
			c.queue = c.queue[1:]
			c.mu.Unlock()
			return ev, nil
		}
		closed := c.closed
		c.mu.Unlock()

		if closed {
			return nil, ErrChannelClosed
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-c.ready:
		}
	}
}

// Len returns the number of queued events.
func (c *Channel) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.queue)
}

// Close stops accepting events. Queued events can still be received.
func (c *Channel) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.mu.Unlock()

	c.notify()
}

func (c *Channel) notify() {
	select {
	case c.ready <- struct{}{}:
	default:
	}
}
