package editor

import (
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(d *Decoder) []Event {
	events := []Event{}
	for d.Pending() > 0 {
		ev, err := d.ReadEvent()
		if err != nil {
			break
		}
		events = append(events, ev)
	}

	return events
}

func TestDecoder_Feed(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Event
	}{
		{"printable and enter", "ab\r", []Event{Char('a'), Char('b'), Key(Submit)}},
		{"crlf is one submit", "a\r\n", []Event{Char('a'), Key(Submit)}},
		{"bare newline", "\n", []Event{Key(Submit)}},
		{"two lines", "a\rb\r", []Event{Char('a'), Key(Submit), Char('b'), Key(Submit)}},
		{"csi arrows", "\x1b[A\x1b[B\x1b[C\x1b[D", []Event{Key(HistoryPrev), Key(HistoryNext), Key(Right), Key(Left)}},
		{"ss3 keys", "\x1bOA\x1bOH\x1bOF", []Event{Key(HistoryPrev), Key(Home), Key(End)}},
		{"csi home end", "\x1b[H\x1b[F", []Event{Key(Home), Key(End)}},
		{"tilde keys", "\x1b[1~\x1b[3~\x1b[4~\x1b[7~\x1b[8~", []Event{Key(Home), Key(Delete), Key(End), Key(Home), Key(End)}},
		{"modifier parameters", "\x1b[1;5C", []Event{Key(Right)}},
		{"unknown sequences dropped", "\x1b[5~\x1b[Zx", []Event{Char('x')}},
		{"control keys", "\x01\x02\x03\x04\x05\x06", []Event{Key(Home), Key(Left), Key(Interrupt), Key(EndOfInput), Key(End), Key(Right)}},
		{"editing keys", "\x7f\x08\t\x0b\x0c\x15\x17", []Event{Key(Backspace), Key(Backspace), Key(Complete), Key(KillToEnd), Key(Refresh), Key(KillLine), Key(DeleteWord)}},
		{"history keys", "\x10\x0e", []Event{Key(HistoryPrev), Key(HistoryNext)}},
		{"other controls ignored", "\x00\x1fa", []Event{Char('a')}},
		{"utf8", "é日🙂", []Event{Char('é'), Char('日'), Char('🙂')}},
		{"invalid utf8 skipped", "\xffa", []Event{Char('a')}},
		{"truncated utf8 resyncs", "\xe2a", []Event{Char('a')}},
		{"alt key", "\x1bb", []Event{Char('b')}},
		{"alt backspace", "\x1b\x7f", []Event{Key(DeleteWord)}},
		{"bracketed paste", "\x1b[200~a\r\nb\tc\x1b[A\x1b[201~\r", []Event{Char('a'), Char('\n'), Char('b'), Char('\t'), Char('c'), Key(Submit)}},
		{"paste ignores controls", "\x1b[200~\x03x\x1b[201~", []Event{Char('x')}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDecoder(strings.NewReader(""))
			d.Feed([]byte(tt.input))
			assert.Equal(t, tt.want, drain(d))
		})
	}
}

func TestDecoder_SequencesSpanFeeds(t *testing.T) {
	d := NewDecoder(strings.NewReader(""))

	d.Feed([]byte("\x1b"))
	d.Feed([]byte("["))
	assert.Equal(t, 0, d.Pending())
	d.Feed([]byte("A\xe6"))
	d.Feed([]byte("\x97\xa5"))

	assert.Equal(t, []Event{Key(HistoryPrev), Char('日')}, drain(d))
}

func TestDecoder_ReadEvent(t *testing.T) {
	d := NewDecoder(iotest.OneByteReader(strings.NewReader("hé\x1b[D\r")))

	var got []Event
	for {
		ev, err := d.ReadEvent()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		got = append(got, ev)
	}

	assert.Equal(t, []Event{Char('h'), Char('é'), Key(Left), Key(Submit)}, got)
}

func TestDecoder_ReadError(t *testing.T) {
	d := NewDecoder(iotest.ErrReader(io.ErrClosedPipe))
	_, err := d.ReadEvent()
	assert.ErrorIs(t, err, io.ErrClosedPipe)
}

func TestStreamTerminal_DrivesEditor(t *testing.T) {
	var out strings.Builder
	term := NewStreamTerminal(strings.NewReader("lx\x7fs -l\r"), &out)

	res, err := New(term, nil).ReadLine("$ ")
	require.NoError(t, err)
	assert.Equal(t, "ls -l", res.Line)
	assert.True(t, strings.HasSuffix(out.String(), "\r\033[K$ ls -l\r\n"))
}
