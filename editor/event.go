package editor

import "fmt"

// Action names what a terminal input event asks the editor to do
type Action int

const (
	// Insert puts Event.Rune at the cursor
	Insert Action = iota
	Left
	Right
	Home
	End
	Backspace
	Delete
	HistoryPrev
	HistoryNext
	Submit
	Interrupt
	EndOfInput
	// Complete asks the completer for candidates at the cursor
	Complete
	// KillLine clears the whole buffer
	KillLine
	// KillToEnd removes everything from the cursor to the end
	KillToEnd
	// DeleteWord removes the word before the cursor
	DeleteWord
	// Refresh forces a redraw without changing the buffer
	Refresh
)

var actionNames = map[Action]string{
	Insert:      "insert",
	Left:        "left",
	Right:       "right",
	Home:        "home",
	End:         "end",
	Backspace:   "backspace",
	Delete:      "delete",
	HistoryPrev: "history-prev",
	HistoryNext: "history-next",
	Submit:      "submit",
	Interrupt:   "interrupt",
	EndOfInput:  "end-of-input",
	Complete:    "complete",
	KillLine:    "kill-line",
	KillToEnd:   "kill-to-end",
	DeleteWord:  "delete-word",
	Refresh:     "refresh",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}

	return fmt.Sprintf("action(%d)", int(a))
}

// Event is one discrete unit of terminal input. Rune is only meaningful for Insert.
type Event struct {
	Action Action
	Rune   rune
}

// Key creates an event for a named action
func Key(a Action) Event {
	return Event{Action: a}
}

// Char creates an Insert event
func Char(r rune) Event {
	return Event{Action: Insert, Rune: r}
}

// Text creates one Insert event per rune of s.
func Text(s string) []Event {
	events := make([]Event, 0, len(s))
	for _, r := range s {
		events = append(events, Char(r))
	}

	return events
}

// Line creates the events typing s followed by Submit.
func Line(s string) []Event {
	return append(Text(s), Key(Submit))
}

func (e Event) String() string {
	if e.Action == Insert {
		return fmt.Sprintf("insert(%q)", e.Rune)
	}

	return e.Action.String()
}
