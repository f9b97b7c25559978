package editor

import (
	"io"

	"github.com/napalu/noshell/errs"
)

// Terminal is the capability the editor needs from its host: a blocking source of
// events and a sink for redraws. ReadEvent returns io.EOF once no more input exists.
type Terminal interface {
	ReadEvent() (Event, error)
	Redraw(f Frame) error
}

// Frame is what a Terminal renders: the buffer content and cursor offset in runes,
// the read state and, after a completion request, the candidates on offer.
type Frame struct {
	Prompt     string
	Text       string
	Cursor     int
	State      State
	Candidates []string
}

// IOError reports a failure of the underlying Terminal. It ends the session.
type IOError struct {
	Err error
}

func (e *IOError) Error() string {
	return e.Unwrap().Error()
}

// Unwrap returns errs.ErrIOFailure wrapping the cause
func (e *IOError) Unwrap() error {
	return errs.ErrIOFailure.Wrap(e.Err)
}

// Cause returns the error reported by the Terminal
func (e *IOError) Cause() error {
	return e.Err
}

// ScriptedTerminal replays a fixed sequence of events and records every frame it is
// asked to draw. Once the events are exhausted ReadEvent returns Err, or io.EOF when
// Err is nil.
type ScriptedTerminal struct {
	Events []Event
	Frames []Frame
	Err    error
	// RedrawErr, when set, is returned by every Redraw
	RedrawErr error
}

// NewScriptedTerminal creates a ScriptedTerminal replaying the given event groups in order
func NewScriptedTerminal(groups ...[]Event) *ScriptedTerminal {
	t := &ScriptedTerminal{}
	for _, g := range groups {
		t.Events = append(t.Events, g...)
	}

	return t
}

func (t *ScriptedTerminal) ReadEvent() (Event, error) {
	if len(t.Events) == 0 {
		if t.Err != nil {
			return Event{}, t.Err
		}
		return Event{}, io.EOF
	}

	ev := t.Events[0]
	t.Events = t.Events[1:]

	return ev, nil
}

func (t *ScriptedTerminal) Redraw(f Frame) error {
	if t.RedrawErr != nil {
		return t.RedrawErr
	}
	f.Candidates = append([]string(nil), f.Candidates...)
	t.Frames = append(t.Frames, f)

	return nil
}

// LastFrame returns the most recent frame
func (t *ScriptedTerminal) LastFrame() (Frame, bool) {
	if len(t.Frames) == 0 {
		return Frame{}, false
	}

	return t.Frames[len(t.Frames)-1], true
}
