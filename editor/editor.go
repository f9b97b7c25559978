// Package editor implements an interactive line editor as a pure state machine driven
// by Events. The terminal is an injected capability, so a read can be exercised by
// feeding synthetic events; Console and StreamTerminal adapt a real terminal.
package editor

import (
	"errors"
	"io"
)

// Result is the outcome of one read. Line is set only when State is StateSubmitted.
type Result struct {
	State State
	// Line is the submitted line. On StateEndOfInput it holds the text that was never
	// submitted and is not added to the history.
	Line string
	// HistoryErr reports a failure to persist Line; the line itself is still valid
	HistoryErr error
}

// Editor reads lines from a Terminal, one read at a time, sharing one History.
type Editor struct {
	term         Terminal
	history      *History
	continuation bool
	completer    Completer
}

// ConfigureFunc configures an Editor
type ConfigureFunc func(e *Editor)

// WithContinuation controls whether submitting a line that ends in an unescaped
// backslash inserts a newline instead. Enabled by default.
func WithContinuation(enabled bool) ConfigureFunc {
	return func(e *Editor) {
		e.continuation = enabled
	}
}

// WithCompleter sets the completer consulted on Complete events
func WithCompleter(c Completer) ConfigureFunc {
	return func(e *Editor) {
		e.completer = c
	}
}

// New creates an Editor. A nil history selects an in-memory History with the default capacity.
func New(term Terminal, history *History, configs ...ConfigureFunc) *Editor {
	if history == nil {
		history = NewHistory(DefaultHistoryCapacity)
	}

	e := &Editor{
		term:         term,
		history:      history,
		continuation: true,
	}
	for _, config := range configs {
		config(e)
	}

	return e
}

// History returns the History shared by every read
func (e *Editor) History() *History {
	return e.history
}

// ReadLine blocks until the read reaches a terminal state. io.EOF from the Terminal
// ends the read with StateEndOfInput; any other Terminal failure is returned as *IOError.
func (e *Editor) ReadLine(prompt string) (Result, error) {
	s := NewSession(e.history, SessionOptions{
		Prompt:       prompt,
		Continuation: e.continuation,
		Completer:    e.completer,
	})

	if err := e.redraw(s); err != nil {
		return Result{}, err
	}

	for {
		ev, err := e.term.ReadEvent()
		if errors.Is(err, io.EOF) {
			ev, err = Key(EndOfInput), nil
		}
		if err != nil {
			return Result{}, &IOError{Err: err}
		}

		changed := s.Handle(ev)
		if s.State().Done() {
			if err := e.redraw(s); err != nil {
				return Result{}, err
			}
			return Result{State: s.State(), Line: s.Line(), HistoryErr: s.HistoryErr()}, nil
		}
		if changed {
			if err := e.redraw(s); err != nil {
				return Result{}, err
			}
		}
	}
}

func (e *Editor) redraw(s *Session) error {
	if err := e.term.Redraw(s.Frame()); err != nil {
		return &IOError{Err: err}
	}

	return nil
}
