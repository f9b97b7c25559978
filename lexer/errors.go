package lexer

import (
	"github.com/napalu/noshell/errs"
	"github.com/napalu/noshell/i18n"
)

// ErrorCode identifies the kind of tokenizer failure
type ErrorCode int

const (
	UnterminatedQuote ErrorCode = iota + 1
	DanglingEscape
)

func (c ErrorCode) String() string {
	switch c {
	case UnterminatedQuote:
		return "unterminated quote"
	case DanglingEscape:
		return "dangling escape"
	default:
		return "unknown"
	}
}

// Error reports where tokenizing failed. Pos is the rune offset of the opening quote
// or of the trailing escape character.
type Error struct {
	Code  ErrorCode
	Pos   int
	Quote rune
}

func (e *Error) Error() string {
	return e.Unwrap().Error()
}

// Unwrap returns the translatable sentinel matching Code.
func (e *Error) Unwrap() error {
	return e.translatable()
}

// Span returns the offending range: from the opening quote to the end of the line for
// an unterminated quote, the escape character otherwise.
func (e *Error) Span(lineLen int) Span {
	if e.Code == UnterminatedQuote {
		return Span{Start: e.Pos, End: lineLen}
	}

	return Span{Start: e.Pos, End: e.Pos + 1}
}

func (e *Error) translatable() i18n.TranslatableError {
	if e.Code == UnterminatedQuote {
		return errs.ErrUnterminatedQuote.WithArgs(e.Quote, e.Pos)
	}

	return errs.ErrDanglingEscape.WithArgs(e.Pos)
}
