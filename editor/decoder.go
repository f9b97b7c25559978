package editor

import (
	"io"
	"strconv"
	"unicode/utf8"

	"github.com/ef-ds/deque"
)

type decodeState int

const (
	stateGround decodeState = iota
	stateEscape
	stateCSI
	stateSS3
)

const (
	pasteStart = 200
	pasteEnd   = 201
)

// Decoder turns the raw byte stream of a terminal in raw mode into Events. It
// understands printable UTF-8, the usual control keys, CSI and SS3 cursor keys and
// bracketed paste, during which every character, newlines included, is inserted.
// Unrecognised sequences are dropped.
type Decoder struct {
	r       io.Reader
	buf     []byte
	pending *deque.Deque

	state  decodeState
	params []byte
	utf8   []byte
	paste  bool
	lastCR bool
}

// NewDecoder creates a Decoder reading from r
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{
		r:       r,
		buf:     make([]byte, 256),
		pending: deque.New(),
	}
}

// ReadEvent returns the next event, reading from the underlying reader as needed.
// It returns the reader's error, io.EOF included, once no decoded event is pending.
func (d *Decoder) ReadEvent() (Event, error) {
	for d.pending.Len() == 0 {
		n, err := d.r.Read(d.buf)
		d.Feed(d.buf[:n])
		if d.pending.Len() > 0 {
			break
		}
		if err != nil {
			return Event{}, err
		}
	}

	v, _ := d.pending.PopFront()
	return v.(Event), nil
}

// Feed decodes data, queueing the resulting events. Sequences may span calls.
func (d *Decoder) Feed(data []byte) {
	for _, b := range data {
		d.feedByte(b)
	}
}

// Pending returns the number of decoded events not yet read
func (d *Decoder) Pending() int {
	return d.pending.Len()
}

func (d *Decoder) emit(ev Event) {
	d.pending.PushBack(ev)
}

func (d *Decoder) feedByte(b byte) {
	switch d.state {
	case stateGround:
		d.ground(b)
	case stateEscape:
		d.escape(b)
	case stateCSI:
		d.csi(b)
	case stateSS3:
		d.ss3(b)
	}
}

func (d *Decoder) ground(b byte) {
	if len(d.utf8) > 0 || b >= utf8.RuneSelf {
		d.collectUTF8(b)
		return
	}

	cr := d.lastCR
	d.lastCR = b == '\r'

	if b == 0x1b {
		d.state = stateEscape
		return
	}

	if d.paste {
		switch {
		case b == '\r':
			d.emit(Char('\n'))
		case b == '\n' && cr:
		case b == '\t', b == '\n', b >= 0x20 && b != 0x7f:
			d.emit(Char(rune(b)))
		}
		return
	}

	switch b {
	case 0x01:
		d.emit(Key(Home))
	case 0x02:
		d.emit(Key(Left))
	case 0x03:
		d.emit(Key(Interrupt))
	case 0x04:
		d.emit(Key(EndOfInput))
	case 0x05:
		d.emit(Key(End))
	case 0x06:
		d.emit(Key(Right))
	case 0x08, 0x7f:
		d.emit(Key(Backspace))
	case '\t':
		d.emit(Key(Complete))
	case 0x0b:
		d.emit(Key(KillToEnd))
	case 0x0c:
		d.emit(Key(Refresh))
	case '\r':
		d.emit(Key(Submit))
	case '\n':
		if !cr {
			d.emit(Key(Submit))
		}
	case 0x0e:
		d.emit(Key(HistoryNext))
	case 0x10:
		d.emit(Key(HistoryPrev))
	case 0x15:
		d.emit(Key(KillLine))
	case 0x17:
		d.emit(Key(DeleteWord))
	default:
		if b >= 0x20 {
			d.emit(Char(rune(b)))
		}
	}
}

func (d *Decoder) collectUTF8(b byte) {
	d.utf8 = append(d.utf8, b)
	if !utf8.FullRune(d.utf8) {
		return
	}

	r, size := utf8.DecodeRune(d.utf8)
	rest := d.utf8[size:]
	d.utf8 = nil
	if r != utf8.RuneError || size > 1 {
		d.lastCR = false
		d.emit(Char(r))
	}
	// an invalid lead byte swallows only itself
	for _, c := range rest {
		d.feedByte(c)
	}
}

func (d *Decoder) escape(b byte) {
	switch b {
	case '[':
		d.state = stateCSI
		d.params = d.params[:0]
	case 'O':
		d.state = stateSS3
	case 0x7f, 0x08:
		d.state = stateGround
		if !d.paste {
			d.emit(Key(DeleteWord))
		}
	case 0x1b:
		// a lone escape followed by the start of a sequence
	default:
		// alt+key is delivered as the key itself
		d.state = stateGround
		d.ground(b)
	}
}

func (d *Decoder) csi(b byte) {
	switch {
	case b >= '0' && b <= '9', b == ';':
		d.params = append(d.params, b)
		return
	case b < 0x40 || b > 0x7e:
		// intermediate bytes are not used by any sequence handled here
		return
	}

	d.state = stateGround
	if b == '~' {
		d.tilde(d.firstParam())
		return
	}
	if d.paste {
		return
	}
	d.cursorKey(b)
}

func (d *Decoder) ss3(b byte) {
	d.state = stateGround
	if !d.paste {
		d.cursorKey(b)
	}
}

func (d *Decoder) cursorKey(final byte) {
	switch final {
	case 'A':
		d.emit(Key(HistoryPrev))
	case 'B':
		d.emit(Key(HistoryNext))
	case 'C':
		d.emit(Key(Right))
	case 'D':
		d.emit(Key(Left))
	case 'H':
		d.emit(Key(Home))
	case 'F':
		d.emit(Key(End))
	}
}

func (d *Decoder) tilde(param int) {
	switch param {
	case pasteStart:
		d.paste = true
		return
	case pasteEnd:
		d.paste = false
		return
	}
	if d.paste {
		return
	}

	switch param {
	case 1, 7:
		d.emit(Key(Home))
	case 3:
		d.emit(Key(Delete))
	case 4, 8:
		d.emit(Key(End))
	}
}

func (d *Decoder) firstParam() int {
	p := d.params
	for i, c := range p {
		if c == ';' {
			p = p[:i]
			break
		}
	}

	n, err := strconv.Atoi(string(p))
	if err != nil {
		return 0
	}

	return n
}
