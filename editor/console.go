package editor

import (
	"io"
	"os"

	"github.com/napalu/noshell/errs"
	"golang.org/x/term"
)

const (
	enableBracketedPaste  = "\033[?2004h"
	disableBracketedPaste = "\033[?2004l"
)

// TerminalController switches a terminal file descriptor in and out of raw mode
type TerminalController interface {
	IsTerminal(fd int) bool
	MakeRaw(fd int) (*term.State, error)
	Restore(fd int, state *term.State) error
	GetSize(fd int) (width, height int, err error)
}

// DefaultController implements TerminalController with golang.org/x/term
type DefaultController struct{}

func (DefaultController) IsTerminal(fd int) bool {
	return term.IsTerminal(fd)
}

func (DefaultController) MakeRaw(fd int) (*term.State, error) {
	return term.MakeRaw(fd)
}

func (DefaultController) Restore(fd int, state *term.State) error {
	return term.Restore(fd, state)
}

func (DefaultController) GetSize(fd int) (int, int, error) {
	return term.GetSize(fd)
}

// Console is a Terminal over a real TTY. The input is in raw mode, with bracketed
// paste enabled, only while a read is in progress, so output written between reads
// behaves normally.
type Console struct {
	in     *os.File
	out    *os.File
	ctl    TerminalController
	stream *StreamTerminal
	saved  *term.State
	raw    bool
}

// NewConsole creates a Console. A nil ctl selects DefaultController. It fails with
// errs.ErrNotATerminal when in is not attached to a terminal.
func NewConsole(in, out *os.File, ctl TerminalController) (*Console, error) {
	if ctl == nil {
		ctl = DefaultController{}
	}
	if !ctl.IsTerminal(int(in.Fd())) {
		return nil, errs.ErrNotATerminal.WithArgs(in.Name())
	}

	return &Console{
		in:     in,
		out:    out,
		ctl:    ctl,
		stream: NewStreamTerminal(in, out),
	}, nil
}

func (c *Console) ReadEvent() (Event, error) {
	if !c.raw {
		if err := c.enterRaw(); err != nil {
			return Event{}, err
		}
	}

	return c.stream.ReadEvent()
}

func (c *Console) Redraw(f Frame) error {
	if !c.raw && !f.State.Done() {
		if err := c.enterRaw(); err != nil {
			return err
		}
	}
	if err := c.stream.Redraw(f); err != nil {
		return err
	}
	if f.State.Done() && c.raw {
		return c.leaveRaw()
	}

	return nil
}

// Width returns the column count of the output, 80 when unknown.
func (c *Console) Width() int {
	w, _, err := c.ctl.GetSize(int(c.out.Fd()))
	if err != nil || w <= 0 {
		return 80
	}

	return w
}

// Close restores the terminal state if a read left it in raw mode
func (c *Console) Close() error {
	if !c.raw {
		return nil
	}

	return c.leaveRaw()
}

func (c *Console) enterRaw() error {
	state, err := c.ctl.MakeRaw(int(c.in.Fd()))
	if err != nil {
		return err
	}
	c.saved, c.raw = state, true
	_, err = io.WriteString(c.out, enableBracketedPaste)

	return err
}

func (c *Console) leaveRaw() error {
	_, werr := io.WriteString(c.out, disableBracketedPaste)
	c.raw = false
	if err := c.ctl.Restore(int(c.in.Fd()), c.saved); err != nil {
		return err
	}

	return werr
}
