package editor

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

const (
	eraseLine      = "\033[2K"
	eraseLineRight = "\033[K"
	cursorUp       = "\033[1A"
)

// DefaultContinuationPrompt is drawn in front of every line after the first
const DefaultContinuationPrompt = "> "

// Renderer draws frames with ANSI sequences. Only the last line of the buffer is
// redrawn; earlier lines of a continued entry stay on screen as they were.
type Renderer struct {
	w                  io.Writer
	ContinuationPrompt string
	rows               int
}

// NewRenderer creates a Renderer writing to w
func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{w: w, ContinuationPrompt: DefaultContinuationPrompt}
}

func (r *Renderer) Redraw(f Frame) error {
	var b strings.Builder

	lines := strings.Split(f.Text, "\n")
	for r.rows < len(lines)-1 {
		b.WriteString("\r\n")
		r.rows++
	}
	for r.rows > len(lines)-1 {
		b.WriteString("\r" + eraseLine + cursorUp)
		r.rows--
	}

	if len(f.Candidates) > 0 {
		b.WriteString("\r" + eraseLineRight + strings.Join(f.Candidates, "  ") + "\r\n")
	}

	prompt := f.Prompt
	if len(lines) > 1 {
		prompt = r.ContinuationPrompt
	}
	last := []rune(lines[len(lines)-1])
	col := f.Cursor - (len([]rune(f.Text)) - len(last))
	col = max(0, min(col, len(last)))

	b.WriteString("\r" + eraseLineRight + prompt + string(last))
	if back := runewidth.StringWidth(string(last[col:])); back > 0 && !f.State.Done() {
		fmt.Fprintf(&b, "\033[%dD", back)
	}

	if f.State.Done() {
		if f.State == StateInterrupted {
			b.WriteString("^C")
		}
		b.WriteString("\r\n")
		r.rows = 0
	}

	_, err := io.WriteString(r.w, b.String())
	return err
}

// StreamTerminal is a Terminal over a byte stream: a Decoder for input and a Renderer
// for output. The caller is responsible for any terminal mode changes.
type StreamTerminal struct {
	*Decoder
	*Renderer
}

// NewStreamTerminal creates a StreamTerminal reading r and drawing to w
func NewStreamTerminal(r io.Reader, w io.Writer) *StreamTerminal {
	return &StreamTerminal{
		Decoder:  NewDecoder(r),
		Renderer: NewRenderer(w),
	}
}
