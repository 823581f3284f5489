package display

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"golang.org/x/term"
)

// DefaultViewportHeight is the inline viewport height in lines.
const DefaultViewportHeight = 8

// ErrNotTerminal is returned when the display is opened on a non-terminal.
var ErrNotTerminal = errors.New("not a terminal")

// TerminalConfig controls the inline viewport.
type TerminalConfig struct {
	Height int
	Theme  Theme
}

// Terminal renders frames into a fixed-height region below the cursor. The
// input file is switched to raw mode until Close.
type Terminal struct {
	in     *os.File
	out    *os.File
	height int
	theme  Theme
	prev   *term.State
	drawn  bool
	closed bool
}

// OpenTerminal puts in into raw mode and prepares out for inline drawing.
// Callers must Close the terminal on every exit path.
func OpenTerminal(in, out *os.File, cfg TerminalConfig) (*Terminal, error) {
	fd := int(in.Fd())
	if !term.IsTerminal(fd) || !term.IsTerminal(int(out.Fd())) {
		return nil, ErrNotTerminal
	}
	if cfg.Height < FooterHeight+1 {
		cfg.Height = DefaultViewportHeight
	}
	if cfg.Theme.Name == "" {
		cfg.Theme = DefaultTheme
	}

	prev, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("enable raw mode: %w", err)
	}

	t := &Terminal{
		in:     in,
		out:    out,
		height: cfg.Height,
		theme:  cfg.Theme,
		prev:   prev,
	}
	if _, err := out.WriteString(ansi.HideCursor); err != nil {
		_ = term.Restore(fd, prev)
		return nil, fmt.Errorf("hide cursor: %w", err)
	}
	return t, nil
}

// Draw implements Renderer.
func (t *Terminal) Draw(s State) error {
	if t.closed {
		return errors.New("draw on closed terminal")
	}

	lines := Frame(s, t.width(), t.height, t.theme)

	var b strings.Builder
	if t.drawn {
		b.WriteString("\r")
		if t.height > 1 {
			b.WriteString(ansi.CursorUp(t.height - 1))
		}
	}
	for i, line := range lines {
		if i > 0 {
			b.WriteString("\r\n")
		}
		b.WriteString(ansi.EraseEntireLine)
		b.WriteString(line)
	}

	if _, err := t.out.WriteString(b.String()); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	t.drawn = true
	return nil
}

func (t *Terminal) width() int {
	w, _, err := term.GetSize(int(t.out.Fd()))
	if err != nil || w <= 0 {
		return 0
	}
	return w
}

// Close moves the cursor below the viewport and restores the terminal mode.
// It is safe to call more than once.
func (t *Terminal) Close() error {
	if t.closed {
		return nil
	}
	t.closed = true

	var tail strings.Builder
	if t.drawn {
		tail.WriteString("\r\n")
	}
	tail.WriteString(ansi.ShowCursor)
	_, writeErr := t.out.WriteString(tail.String())

	restoreErr := term.Restore(int(t.in.Fd()), t.prev)
	if restoreErr != nil {
		restoreErr = fmt.Errorf("restore terminal: %w", restoreErr)
	}
	return errors.Join(writeErr, restoreErr)
}
