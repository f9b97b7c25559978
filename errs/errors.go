package errs

import (
	"github.com/napalu/noshell/i18n"
)

// Tokenizer errors
var (
	ErrUnterminatedQuote = i18n.NewError(ErrUnterminatedQuoteKey)
	ErrDanglingEscape    = i18n.NewError(ErrDanglingEscapeKey)
)

// Argument parser errors
var (
	ErrUnknownFlag        = i18n.NewError(ErrUnknownFlagKey)
	ErrMissingValue       = i18n.NewError(ErrMissingValueKey)
	ErrMissingRequired    = i18n.NewError(ErrMissingRequiredKey)
	ErrUnexpectedArgument = i18n.NewError(ErrUnexpectedArgumentKey)
	ErrInvalidValue       = i18n.NewError(ErrInvalidValueKey)
	ErrArgumentNotFound   = i18n.NewError(ErrArgumentNotFoundKey)
	ErrArityMismatch      = i18n.NewError(ErrArityMismatchKey)
	ErrTypeMismatch       = i18n.NewError(ErrTypeMismatchKey)
)

// Schema errors
var (
	ErrEmptyIdentifier     = i18n.NewError(ErrEmptyIdentifierKey)
	ErrDuplicateIdentifier = i18n.NewError(ErrDuplicateIdentifierKey)
	ErrDuplicateShort      = i18n.NewError(ErrDuplicateShortKey)
	ErrDuplicateLong       = i18n.NewError(ErrDuplicateLongKey)
	ErrManyNotLast         = i18n.NewError(ErrManyNotLastKey)
	ErrPositionalArityNone = i18n.NewError(ErrPositionalArityNoneKey)
	ErrDuplicateCommand    = i18n.NewError(ErrDuplicateCommandKey)
	ErrNilDefinition       = i18n.NewError(ErrNilDefinitionKey)
	ErrEmptyCommandName    = i18n.NewError(ErrEmptyCommandNameKey)
)

// Runner and editor errors
var (
	ErrCommandNotFound = i18n.NewError(ErrCommandNotFoundKey)
	ErrNoHandler       = i18n.NewError(ErrNoHandlerKey)
	ErrHandlerPanic    = i18n.NewError(ErrHandlerPanicKey)
	ErrIOFailure       = i18n.NewError(ErrIOFailureKey)
	ErrNotATerminal    = i18n.NewError(ErrNotATerminalKey)
	ErrHistoryLoad     = i18n.NewError(ErrHistoryLoadKey)
)

// Value conversion errors, used as the reason of ErrInvalidValue
var (
	ErrParseInt             = i18n.NewError(ErrParseIntKey)
	ErrParseUint            = i18n.NewError(ErrParseUintKey)
	ErrParseFloat           = i18n.NewError(ErrParseFloatKey)
	ErrParseBool            = i18n.NewError(ErrParseBoolKey)
	ErrParseDuration        = i18n.NewError(ErrParseDurationKey)
	ErrParseTime            = i18n.NewError(ErrParseTimeKey)
	ErrParseChoice          = i18n.NewError(ErrParseChoiceKey)
	ErrParseNoValueExpected = i18n.NewError(ErrParseNoValueExpectedKey)
)

// UpdateMessageProvider makes every error render its message through provider.
func UpdateMessageProvider(provider i18n.MessageProvider) {
	i18n.SetDefaultMessageProvider(provider)
}
