package editor

import "strings"

// State is the phase of one read
type State int

const (
	StateIdle State = iota
	StateEditing
	StateSubmitted
	StateInterrupted
	StateEndOfInput
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateEditing:
		return "editing"
	case StateSubmitted:
		return "submitted"
	case StateInterrupted:
		return "interrupted"
	case StateEndOfInput:
		return "end-of-input"
	default:
		return "unknown"
	}
}

// Done reports whether s ends a read
func (s State) Done() bool {
	return s == StateSubmitted || s == StateInterrupted || s == StateEndOfInput
}

// Completion is the answer of a Completer: the candidates that may replace the runes
// in [Start, End) of the line.
type Completion struct {
	Start      int
	End        int
	Candidates []string
}

// Completer proposes candidates for the word under the cursor. line is the full
// buffer content and cursor a rune offset into it.
type Completer interface {
	Complete(line string, cursor int) Completion
}

// CompleterFunc adapts a function to Completer
type CompleterFunc func(line string, cursor int) Completion

func (f CompleterFunc) Complete(line string, cursor int) Completion {
	return f(line, cursor)
}

// SessionOptions tune a Session
type SessionOptions struct {
	Prompt string
	// Continuation turns a submit on a line ending in an unescaped backslash into a newline
	Continuation bool
	Completer    Completer
}

// Session is the state machine of a single read. It starts in StateEditing with an
// empty buffer; once a terminal state is reached further events are ignored.
type Session struct {
	buf        Buffer
	state      State
	history    *History
	snapshot   []string
	histPos    int
	draft      string
	opts       SessionOptions
	candidates []string
	line       string
	addErr     error
}

// NewSession starts a read. history may be nil. Navigation uses a snapshot of
// history taken now, so entries added during the read are not visible to it.
func NewSession(history *History, opts SessionOptions) *Session {
	s := &Session{
		state:   StateEditing,
		history: history,
		opts:    opts,
	}
	if history != nil {
		s.snapshot = history.Entries()
	}
	s.histPos = len(s.snapshot)

	return s
}

// State returns the current state
func (s *Session) State() State {
	return s.state
}

// Line returns the submitted line, or the unsubmitted text once input has ended. It is
// empty in every other state.
func (s *Session) Line() string {
	return s.line
}

// HistoryErr returns the error from persisting the submitted line, if any.
func (s *Session) HistoryErr() error {
	return s.addErr
}

// Frame returns what should currently be displayed
func (s *Session) Frame() Frame {
	return Frame{
		Prompt:     s.opts.Prompt,
		Text:       s.buf.String(),
		Cursor:     s.buf.Cursor(),
		State:      s.state,
		Candidates: s.candidates,
	}
}

// Handle applies ev and reports whether the frame changed.
func (s *Session) Handle(ev Event) bool {
	if s.state != StateEditing {
		return false
	}

	hadCandidates := len(s.candidates) > 0
	if ev.Action != Complete {
		s.candidates = nil
	}

	var changed bool
	switch ev.Action {
	case Insert:
		changed = s.buf.Insert(ev.Rune)
	case Left:
		changed = s.buf.Left()
	case Right:
		changed = s.buf.Right()
	case Home:
		changed = s.buf.Home()
	case End:
		changed = s.buf.End()
	case Backspace:
		changed = s.buf.Backspace()
	case Delete:
		changed = s.buf.Delete()
	case KillLine:
		changed = s.buf.Clear()
	case KillToEnd:
		changed = s.buf.KillToEnd()
	case DeleteWord:
		changed = s.buf.DeleteWord()
	case HistoryPrev:
		changed = s.historyPrev()
	case HistoryNext:
		changed = s.historyNext()
	case Complete:
		changed = s.complete()
	case Refresh:
		changed = true
	case Submit:
		changed = s.submit()
	case Interrupt:
		s.buf.Clear()
		s.state = StateInterrupted
		changed = true
	case EndOfInput:
		s.line = s.buf.String()
		s.state = StateEndOfInput
		changed = true
	}

	return changed || hadCandidates && len(s.candidates) == 0
}

func (s *Session) historyPrev() bool {
	if s.histPos == 0 {
		return false
	}
	if s.histPos == len(s.snapshot) {
		s.draft = s.buf.String()
	}
	s.histPos--
	s.buf.Set(s.snapshot[s.histPos])

	return true
}

func (s *Session) historyNext() bool {
	if s.histPos >= len(s.snapshot) {
		return false
	}
	s.histPos++
	if s.histPos == len(s.snapshot) {
		s.buf.Set(s.draft)
	} else {
		s.buf.Set(s.snapshot[s.histPos])
	}

	return true
}

func (s *Session) submit() bool {
	text := s.buf.String()
	if s.opts.Continuation && endsWithEscape(text) {
		s.buf.End()
		return s.buf.Insert('\n')
	}

	s.line = text
	s.state = StateSubmitted
	if s.history != nil {
		_, s.addErr = s.history.Add(text)
	}

	return true
}

// endsWithEscape reports whether s ends in an odd run of backslashes.
func endsWithEscape(s string) bool {
	n := len(s) - len(strings.TrimRight(s, `\`))
	return n%2 == 1
}

func (s *Session) complete() bool {
	if s.opts.Completer == nil {
		return false
	}

	c := s.opts.Completer.Complete(s.buf.String(), s.buf.Cursor())
	switch len(c.Candidates) {
	case 0:
		return false
	case 1:
		s.candidates = nil
		replacement := c.Candidates[0]
		if !strings.HasSuffix(replacement, "=") {
			replacement += " "
		}
		return s.buf.Replace(c.Start, c.End, replacement)
	}

	if prefix := commonPrefix(c.Candidates); len([]rune(prefix)) > c.End-c.Start {
		s.buf.Replace(c.Start, c.End, prefix)
	}
	s.candidates = c.Candidates

	return true
}

func commonPrefix(words []string) string {
	if len(words) == 0 {
		return ""
	}

	prefix := []rune(words[0])
	for _, w := range words[1:] {
		r := []rune(w)
		n := 0
		for n < len(prefix) && n < len(r) && prefix[n] == r[n] {
			n++
		}
		prefix = prefix[:n]
	}

	return string(prefix)
}
