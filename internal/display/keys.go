package display

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/muesli/cancelreader"
)

// Key names a key press, using the same spelling as bubbletea key strings.
type Key string

const (
	KeyQuit  Key = "q"
	KeyCtrlC Key = "ctrl+c"
	KeyEsc   Key = "esc"
	KeyEnter Key = "enter"
	KeyUp    Key = "up"
	KeyDown  Key = "down"
	KeyRight Key = "right"
	KeyLeft  Key = "left"
)

// KeySource yields key presses with a bounded wait.
type KeySource interface {
	// ReadKey waits at most timeout for a key. It reports false when the
	// timeout elapsed without input.
	ReadKey(ctx context.Context, timeout time.Duration) (Key, bool, error)
}

// StdinKeys reads key presses from a terminal in raw mode. A background
// goroutine performs the blocking reads; Close cancels it.
type StdinKeys struct {
	reader cancelreader.CancelReader
	keys   chan Key
	done   chan struct{}

	errMu sync.Mutex
	err   error

	closeOnce sync.Once
	closeErr  error
}

// NewStdinKeys starts reading keys from r.
func NewStdinKeys(r io.Reader) (*StdinKeys, error) {
	reader, err := cancelreader.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("open key reader: %w", err)
	}

	k := &StdinKeys{
		reader: reader,
		keys:   make(chan Key, 64),
		done:   make(chan struct{}),
	}
	go k.readLoop()
	return k, nil
}

func (k *StdinKeys) readLoop() {
	defer close(k.done)

	buf := make([]byte, 256)
	for {
		n, err := k.reader.Read(buf)
		if n > 0 {
			for _, key := range DecodeKeys(buf[:n]) {
				k.keys <- key
			}
		}
		if err != nil {
			if !errors.Is(err, cancelreader.ErrCanceled) && !errors.Is(err, io.EOF) {
				k.errMu.Lock()
				k.err = err
				k.errMu.Unlock()
			}
			return
		}
	}
}

// ReadKey implements KeySource.
func (k *StdinKeys) ReadKey(ctx context.Context, timeout time.Duration) (Key, bool, error) {
	if timeout <= 0 {
		select {
		case key := <-k.keys:
			return key, true, nil
		default:
			return "", false, k.readErr()
		}
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case key := <-k.keys:
		return key, true, nil
	case <-k.done:
		// Keys decoded before the reader stopped are still delivered.
		select {
		case key := <-k.keys:
			return key, true, nil
		default:
		}
		if err := k.readErr(); err != nil {
			return "", false, err
		}
		select {
		case <-timer.C:
			return "", false, nil
		case <-ctx.Done():
			return "", false, ctx.Err()
		}
	case <-timer.C:
		return "", false, nil
	case <-ctx.Done():
		return "", false, ctx.Err()
	}
}

func (k *StdinKeys) readErr() error {
	k.errMu.Lock()
	defer k.errMu.Unlock()
	if k.err != nil {
		return fmt.Errorf("read key: %w", k.err)
	}
	return nil
}

// Close cancels the pending read and waits for the reader goroutine.
func (k *StdinKeys) Close() error {
	k.closeOnce.Do(func() {
		k.reader.Cancel()
		// Unblock a reader stuck handing off keys nobody will read.
		go func() {
			for range k.keys {
			}
		}()
		<-k.done
		close(k.keys)
		k.closeErr = k.reader.Close()
	})
	return k.closeErr
}

// DecodeKeys converts raw terminal input into key presses. Unrecognised
// escape sequences are dropped.
func DecodeKeys(b []byte) []Key {
	var keys []Key
	for len(b) > 0 {
		switch c := b[0]; {
		case c == 0x03:
			keys = append(keys, KeyCtrlC)
			b = b[1:]
		case c == '\r' || c == '\n':
			keys = append(keys, KeyEnter)
			b = b[1:]
		case c == 0x1b:
			key, n := decodeEscape(b)
			if key != "" {
				keys = append(keys, key)
			}
			b = b[n:]
		case c < 0x20 || c == 0x7f:
			b = b[1:]
		default:
			r, size := utf8.DecodeRune(b)
			if r != utf8.RuneError {
				keys = append(keys, Key(string(r)))
			}
			b = b[size:]
		}
	}
	return keys
}

func decodeEscape(b []byte) (Key, int) {
	if len(b) == 1 {
		return KeyEsc, 1
	}
	if b[1] != '[' && b[1] != 'O' {
		return KeyEsc, 1
	}
	if len(b) < 3 {
		return "", len(b)
	}
	switch b[2] {
	case 'A':
		return KeyUp, 3
	case 'B':
		return KeyDown, 3
	case 'C':
		return KeyRight, 3
	case 'D':
		return KeyLeft, 3
	}
	// Skip parameter bytes up to the final byte of a CSI sequence.
	n := 2
	for n < len(b) && (b[n] < 0x40 || b[n] > 0x7e) {
		n++
	}
	if n < len(b) {
		n++
	}
	return "", n
}
