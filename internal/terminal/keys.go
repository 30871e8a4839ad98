package terminal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/dshills/lgtm/internal/review"
)

// ErrInterrupted is returned when the user presses Ctrl-C while a
// navigation key is awaited.
var ErrInterrupted = errors.New("interrupted")

const (
	keyInterrupt = 0x03
	keyEOF       = 0x04
)

// KeyNavigator reads navigation decisions as single keypresses.
type KeyNavigator struct {
	in    io.Reader
	con   *Console
	lines *LineReader
}

// NewKeyNavigator returns a KeyNavigator reading keys from in. When in is
// not a terminal, decisions are read as whole lines from lines, which must
// wrap the same input.
func NewKeyNavigator(in io.Reader, lines *LineReader, con *Console) *KeyNavigator {
	return &KeyNavigator{in: in, con: con, lines: lines}
}

// Navigate prints the menu for nav and blocks for one decision.
func (k *KeyNavigator) Navigate(ctx context.Context, nav review.Navigation) (review.Action, error) {
	k.menu(nav)
	if f, ok := k.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return k.readKey(f, nav.CanSkip)
	}
	return k.readLine(ctx, nav.CanSkip)
}

func (k *KeyNavigator) menu(nav review.Navigation) {
	c := k.con
	c.println("")
	c.Rule()
	c.println(c.style(keyStyle, " Navigation"))
	c.Rule()
	if nav.Next != "" {
		c.println(c.Key("↵", "Continue to "+nav.Next))
	} else {
		c.println(c.Key("↵", "Finish review"))
	}
	c.println(c.Key("a", "Ask a follow-up question"))
	if nav.CanSkip {
		c.println(c.Key("s", "Skip "+nav.Next))
	}
	c.println(c.Key("q", "Quit review"))
	c.Rule()
}

// readKey holds raw mode for exactly one decision and restores the previous
// mode before returning.
func (k *KeyNavigator) readKey(f *os.File, canSkip bool) (action review.Action, err error) {
	fd := int(f.Fd())
	prev, err := term.MakeRaw(fd)
	if err != nil {
		return 0, fmt.Errorf("enabling raw mode: %w", err)
	}
	defer func() {
		if rerr := term.Restore(fd, prev); rerr != nil && err == nil {
			err = fmt.Errorf("restoring terminal: %w", rerr)
		}
	}()

	buf := make([]byte, 1)
	for {
		n, err := f.Read(buf)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return review.ActionQuit, nil
			}
			return 0, err
		}
		if n == 0 {
			continue
		}
		if a, ok, err := decodeKey(buf[0], canSkip); err != nil || ok {
			return a, err
		}
	}
}

// decodeKey maps one keypress to an action. Unrecognized keys report
// ok == false and are ignored.
func decodeKey(b byte, canSkip bool) (action review.Action, ok bool, err error) {
	switch b {
	case '\r', '\n':
		return review.ActionContinue, true, nil
	case 'a', 'A':
		return review.ActionAsk, true, nil
	case 's', 'S':
		if canSkip {
			return review.ActionSkip, true, nil
		}
	case 'q', 'Q', keyEOF:
		return review.ActionQuit, true, nil
	case keyInterrupt:
		return 0, false, ErrInterrupted
	}
	return 0, false, nil
}

func (k *KeyNavigator) readLine(ctx context.Context, canSkip bool) (review.Action, error) {
	for {
		line, err := k.lines.ReadLine(ctx, "> ")
		if errors.Is(err, io.EOF) {
			return review.ActionQuit, nil
		}
		if err != nil {
			return 0, err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			return review.ActionContinue, nil
		}
		if a, ok, err := decodeKey(line[0], canSkip); err != nil || ok {
			return a, err
		}
	}
}
