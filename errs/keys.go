// Package errs holds the translation keys and sentinel errors of noshell.
package errs

const (
	prefixKey = "noshell"
)

const (
	ErrorPrefixKey    = prefixKey + ".error"
	ParseErrorPathKey = ErrorPrefixKey + ".parse"
	MessagePrefixKey  = prefixKey + ".msg"
)

// Tokenizer
const (
	ErrUnterminatedQuoteKey = ErrorPrefixKey + ".unterminated_quote"
	ErrDanglingEscapeKey    = ErrorPrefixKey + ".dangling_escape"
)

// Argument parser and getters
const (
	ErrUnknownFlagKey        = ErrorPrefixKey + ".unknown_flag"
	ErrMissingValueKey       = ErrorPrefixKey + ".missing_value"
	ErrMissingRequiredKey    = ErrorPrefixKey + ".missing_required"
	ErrUnexpectedArgumentKey = ErrorPrefixKey + ".unexpected_argument"
	ErrInvalidValueKey       = ErrorPrefixKey + ".invalid_value"
	ErrArgumentNotFoundKey   = ErrorPrefixKey + ".argument_not_found"
	ErrArityMismatchKey      = ErrorPrefixKey + ".arity_mismatch"
	ErrTypeMismatchKey       = ErrorPrefixKey + ".type_mismatch"
)

// Schema validation
const (
	ErrEmptyIdentifierKey     = ErrorPrefixKey + ".empty_identifier"
	ErrDuplicateIdentifierKey = ErrorPrefixKey + ".duplicate_identifier"
	ErrDuplicateShortKey      = ErrorPrefixKey + ".duplicate_short"
	ErrDuplicateLongKey       = ErrorPrefixKey + ".duplicate_long"
	ErrManyNotLastKey         = ErrorPrefixKey + ".many_not_last"
	ErrPositionalArityNoneKey = ErrorPrefixKey + ".positional_arity_none"
	ErrDuplicateCommandKey    = ErrorPrefixKey + ".duplicate_command"
	ErrNilDefinitionKey       = ErrorPrefixKey + ".nil_definition"
	ErrEmptyCommandNameKey    = ErrorPrefixKey + ".empty_command_name"
)

// Runner and editor
const (
	ErrCommandNotFoundKey = ErrorPrefixKey + ".command_not_found"
	ErrNoHandlerKey       = ErrorPrefixKey + ".no_handler"
	ErrHandlerPanicKey    = ErrorPrefixKey + ".handler_panic"
	ErrIOFailureKey       = ErrorPrefixKey + ".io_failure"
	ErrNotATerminalKey    = ErrorPrefixKey + ".not_a_terminal"
	ErrHistoryLoadKey     = ErrorPrefixKey + ".history_load"
)

// Value conversion reasons
const (
	ErrParseIntKey             = ParseErrorPathKey + ".int"
	ErrParseUintKey            = ParseErrorPathKey + ".uint"
	ErrParseFloatKey           = ParseErrorPathKey + ".float"
	ErrParseBoolKey            = ParseErrorPathKey + ".bool"
	ErrParseDurationKey        = ParseErrorPathKey + ".duration"
	ErrParseTimeKey            = ParseErrorPathKey + ".time"
	ErrParseChoiceKey          = ParseErrorPathKey + ".choice"
	ErrParseNoValueExpectedKey = ParseErrorPathKey + ".no_value_expected"
)

// Help and report messages
const (
	MsgUsageKey     = MessagePrefixKey + ".usage"
	MsgCommandsKey  = MessagePrefixKey + ".commands"
	MsgFlagsKey     = MessagePrefixKey + ".flags"
	MsgArgumentsKey = MessagePrefixKey + ".arguments"
	MsgRequiredKey  = MessagePrefixKey + ".required"
	MsgOptionalKey  = MessagePrefixKey + ".optional"
	MsgOrKey        = MessagePrefixKey + ".or"
	MsgHelpHintKey  = MessagePrefixKey + ".help_hint"
	MsgErrorKey     = MessagePrefixKey + ".error"
)
