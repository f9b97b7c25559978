// Package lexer splits an input line into word tokens following a configurable quoting
// and escaping dialect. Offsets are counted in runes.
package lexer

import (
	"io"
	"strings"
)

// Tokenizer is a restartable pull cursor over the tokens of one line. It fails fast:
// once an error is returned every later call returns the same error until Reset.
type Tokenizer struct {
	line    []rune
	dialect Dialect
	pos     int
	err     error

	peeked  bool
	peekTok Token
	peekErr error
}

// New creates a Tokenizer over line
func New(line string, d Dialect) *Tokenizer {
	return &Tokenizer{
		line:    []rune(line),
		dialect: d,
	}
}

// Next returns the next token, or io.EOF once the line is exhausted.
func (t *Tokenizer) Next() (Token, error) {
	if t.peeked {
		t.peeked = false
		return t.peekTok, t.peekErr
	}

	return t.scan()
}

// Peek returns the token Next would return without consuming it.
func (t *Tokenizer) Peek() (Token, error) {
	if !t.peeked {
		t.peekTok, t.peekErr = t.scan()
		t.peeked = true
	}

	return t.peekTok, t.peekErr
}

// Reset rewinds the cursor to the start of the line and clears any failure.
func (t *Tokenizer) Reset() {
	t.pos = 0
	t.err = nil
	t.peeked = false
	t.peekTok, t.peekErr = Token{}, nil
}

// Len returns the line length in runes
func (t *Tokenizer) Len() int {
	return len(t.line)
}

// Split tokenizes the whole line. On failure it returns the tokens read so far
// together with the *Error.
func Split(line string, d Dialect) ([]Token, error) {
	t := New(line, d)

	var tokens []Token
	for {
		tok, err := t.Next()
		if err == io.EOF {
			return tokens, nil
		}
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
	}
}

func (t *Tokenizer) scan() (Token, error) {
	if t.err != nil {
		return Token{}, t.err
	}

	if tok, ok := t.skipSeparators(); ok {
		return tok, nil
	}

	if t.pos >= len(t.line) {
		t.err = io.EOF
		return Token{}, t.err
	}

	start := t.pos
	if r := t.line[t.pos]; t.dialect.isOperator(r) {
		t.pos++
		return Token{Kind: Operator, Text: string(r), Span: Span{Start: start, End: t.pos}}, nil
	}

	return t.word()
}

// skipSeparators consumes separators and line continuations. It returns a Separator
// token when the dialect keeps them and at least one separator was consumed.
func (t *Tokenizer) skipSeparators() (Token, bool) {
	start := t.pos
	seen := false
	for t.pos < len(t.line) {
		r := t.line[t.pos]
		switch {
		case t.dialect.isSeparator(r):
			seen = true
			t.pos++
		case t.isContinuation(t.pos):
			t.pos += 2
		default:
			return t.separator(start, seen)
		}
	}

	return t.separator(start, seen)
}

func (t *Tokenizer) separator(start int, seen bool) (Token, bool) {
	if !seen || !t.dialect.KeepSeparators {
		return Token{}, false
	}

	return Token{Kind: Separator, Text: string(t.line[start:t.pos]), Span: Span{Start: start, End: t.pos}}, true
}

func (t *Tokenizer) isContinuation(pos int) bool {
	return t.dialect.isEscape(t.line[pos]) && pos+1 < len(t.line) && t.line[pos+1] == '\n'
}

func (t *Tokenizer) word() (Token, error) {
	var b strings.Builder
	start := t.pos
	kind := Word

scan:
	for t.pos < len(t.line) {
		r := t.line[t.pos]
		switch {
		case t.dialect.isSeparator(r), t.dialect.isOperator(r):
			break scan
		case t.dialect.isEscape(r):
			if t.pos+1 >= len(t.line) {
				t.err = &Error{Code: DanglingEscape, Pos: t.pos}
				return Token{}, t.err
			}
			if next := t.line[t.pos+1]; next != '\n' {
				b.WriteRune(next)
			}
			t.pos += 2
		case t.dialect.isQuote(r):
			kind = Quoted
			if err := t.quoted(&b); err != nil {
				return Token{}, err
			}
		default:
			b.WriteRune(r)
			t.pos++
		}
	}

	return Token{Kind: kind, Text: b.String(), Span: Span{Start: start, End: t.pos}}, nil
}

// quoted consumes a quoted span starting at the opening quote.
func (t *Tokenizer) quoted(b *strings.Builder) error {
	open := t.pos
	quote := t.line[open]
	raw := t.dialect.isRaw(quote)
	t.pos++

	for t.pos < len(t.line) {
		r := t.line[t.pos]
		switch {
		case r == quote:
			t.pos++
			return nil
		case !raw && t.dialect.isEscape(r) && t.pos+1 < len(t.line):
			next := t.line[t.pos+1]
			if next != quote && !t.dialect.isEscape(next) {
				b.WriteRune(r)
			}
			b.WriteRune(next)
			t.pos += 2
		default:
			b.WriteRune(r)
			t.pos++
		}
	}

	t.err = &Error{Code: UnterminatedQuote, Pos: open, Quote: quote}
	return t.err
}
