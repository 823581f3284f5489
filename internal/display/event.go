// Package display implements the live progress view: a typed event channel
// fed by solvers and an input poller, and a single render loop that owns the
// display state and redraws an inline terminal viewport after every event.
package display

import (
	"strings"

	"github.com/tOgg1/aoc2024/internal/grid"
)

// Event is a message delivered to the render loop. The set of variants is
// closed: Tick, Input, StateUpdate and NewRow.
type Event interface {
	isEvent()
}

// Tick is the periodic wake-up emitted by the poller.
type Tick struct{}

// Input carries one key press.
type Input struct {
	Key Key
}

// StateUpdate carries a partial snapshot of the display state. Nil fields
// leave the resident value untouched.
type StateUpdate struct {
	Part1 *uint64
	Part2 *uint64
	Grid  *grid.Grid[rune]
}

// NewRow prepends one line to the row list.
type NewRow struct {
	Row Row
}

func (Tick) isEvent()        {}
func (Input) isEvent()       {}
func (StateUpdate) isEvent() {}
func (NewRow) isEvent()      {}

// Part1Only returns an update that sets only the part 1 result.
func Part1Only(v uint64) StateUpdate {
	return StateUpdate{Part1: &v}
}

// Part2Only returns an update that sets only the part 2 result.
func Part2Only(v uint64) StateUpdate {
	return StateUpdate{Part2: &v}
}

// Results returns an update that sets both results.
func Results(part1, part2 uint64) StateUpdate {
	return StateUpdate{Part1: &part1, Part2: &part2}
}

// GridOnly returns an update that replaces only the grid snapshot.
func GridOnly(g *grid.Grid[rune]) StateUpdate {
	return StateUpdate{Grid: g}
}

// GridSnapshot converts any grid into a rune grid suitable for display.
func GridSnapshot[T any](g *grid.Grid[T], glyph func(T) rune) *grid.Grid[rune] {
	return grid.Map(g, glyph)
}

// Tone selects how a span is styled.
type Tone int

const (
	TonePlain Tone = iota
	ToneGood
	ToneBad
	ToneMuted
)

// Span is a run of text with a single tone.
type Span struct {
	Text string
	Tone Tone
}

// Row is one pre-rendered display line.
type Row []Span

// PlainRow returns a single-span row without styling.
func PlainRow(text string) Row {
	return Row{{Text: text}}
}

// ToneRow returns a single-span row with tone.
func ToneRow(tone Tone, text string) Row {
	return Row{{Text: text, Tone: tone}}
}

// String returns the row text without styling.
func (r Row) String() string {
	var b strings.Builder
	for _, span := range r {
		b.WriteString(span.Text)
	}
	return b.String()
}

// Sender is the capability handed to event producers.
type Sender interface {
	Send(Event) error
}

// SenderFunc adapts a function to Sender.
type SenderFunc func(Event) error

// Send calls f(ev).
func (f SenderFunc) Send(ev Event) error {
	return f(ev)
}

// Discard accepts and drops every event.
var Discard Sender = SenderFunc(func(Event) error { return nil })
