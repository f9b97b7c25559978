package argparse

import (
	"errors"

	"github.com/napalu/noshell/errs"
	"github.com/napalu/noshell/i18n"
	"github.com/napalu/noshell/lexer"
	"golang.org/x/text/language"
)

// ErrorCode identifies the kind of parse failure
type ErrorCode int

const (
	UnknownFlag ErrorCode = iota + 1
	MissingValue
	MissingRequired
	UnexpectedArgument
	InvalidValue
)

func (c ErrorCode) String() string {
	switch c {
	case UnknownFlag:
		return "unknown flag"
	case MissingValue:
		return "missing value"
	case MissingRequired:
		return "missing required"
	case UnexpectedArgument:
		return "unexpected argument"
	case InvalidValue:
		return "invalid value"
	default:
		return "unknown"
	}
}

// Error describes why a token sequence does not match a command definition.
//
// ID is the identifier of the flag or positional involved, empty for UnknownFlag and
// UnexpectedArgument. Name is the form shown to the user (--long, -s or the positional
// identifier). Raw is the offending token text and Reason the conversion failure of an
// InvalidValue. Span locates the offending token; it is empty for MissingRequired.
type Error struct {
	Code   ErrorCode
	ID     string
	Name   string
	Raw    string
	Reason error
	Span   lexer.Span
}

func (e *Error) Error() string {
	return e.Unwrap().Error()
}

// Unwrap returns the translatable sentinel matching Code.
func (e *Error) Unwrap() error {
	return e.translatable(e.Reason)
}

// Localize renders the error, including its reason, in lang.
func (e *Error) Localize(lang language.Tag) string {
	reason := e.Reason
	var te i18n.TranslatableError
	if reason != nil && errors.As(reason, &te) {
		reason = localized(te.Localize(lang))
	}

	return e.translatable(reason).Localize(lang)
}

func (e *Error) translatable(reason error) i18n.TranslatableError {
	switch e.Code {
	case UnknownFlag:
		return errs.ErrUnknownFlag.WithArgs(e.Name)
	case MissingValue:
		return errs.ErrMissingValue.WithArgs(e.Name)
	case MissingRequired:
		return errs.ErrMissingRequired.WithArgs(e.Name)
	case UnexpectedArgument:
		return errs.ErrUnexpectedArgument.WithArgs(e.Raw)
	default:
		return errs.ErrInvalidValue.WithArgs(e.Raw, e.Name, reason)
	}
}

type localized string

func (l localized) Error() string {
	return string(l)
}
