package i18n

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/text/language"
)

// TranslatableError represents an error that can be translated
type TranslatableError interface {
	error
	Key() string
	Args() []interface{}
	Unwrap() error
	WithArgs(args ...interface{}) TranslatableError
	Wrap(err error) TranslatableError
	Localize(lang language.Tag) string
}

// MessageProvider defines an interface for getting default messages
type MessageProvider interface {
	GetMessage(key string) string
}

// TrError is a translatable error with optional formatting arguments and a wrapped cause.
// Copies made by WithArgs and Wrap share the sentinel of the error they were derived from,
// so errors.Is matches them against the package-level value.
//
//	err := NewError("noshell.error.unknown_flag").WithArgs("--verbose")
//	errors.Is(err, errs.ErrUnknownFlag) // true
type TrError struct {
	sentinel        error
	key             string
	args            []interface{}
	wrapped         error
	messageProvider MessageProvider
}

// DefaultMessageProvider implements MessageProvider using a bundle
type DefaultMessageProvider struct {
	bundle *Bundle
}

// NewMessageProvider returns a provider resolving keys in the default language of b.
func NewMessageProvider(b *Bundle) *DefaultMessageProvider {
	return &DefaultMessageProvider{bundle: b}
}

func (p *DefaultMessageProvider) GetMessage(key string) string {
	p.bundle.mu.RLock()
	defer p.bundle.mu.RUnlock()

	if msg, ok := p.bundle.translations[p.bundle.defaultLang][key]; ok {
		return msg
	}
	if msg, ok := p.bundle.translations[language.English][key]; ok {
		return msg
	}

	return key
}

// NewError creates a new translatable error with a key
func NewError(key string) *TrError {
	e := &TrError{key: key}
	e.sentinel = e

	return e
}

// Error returns the message in the current default language, formatted with args if provided
func (e *TrError) Error() string {
	return e.render(e.provider().GetMessage(e.key))
}

// Localize returns the message in lang.
func (e *TrError) Localize(lang language.Tag) string {
	msg, ok := Default().Translation(lang, e.key)
	if !ok {
		return e.Error()
	}

	var wrapped string
	if e.wrapped != nil {
		var te TranslatableError
		if errors.As(e.wrapped, &te) {
			wrapped = te.Localize(lang)
		} else {
			wrapped = e.wrapped.Error()
		}
	}

	return join(format(msg, e.args), wrapped)
}

// WithArgs returns a copy of the error with format arguments
func (e *TrError) WithArgs(args ...interface{}) TranslatableError {
	return &TrError{
		sentinel:        e.sentinel,
		key:             e.key,
		args:            args,
		wrapped:         e.wrapped,
		messageProvider: e.messageProvider,
	}
}

// Wrap returns a new error that wraps another error
func (e *TrError) Wrap(err error) TranslatableError {
	return &TrError{
		sentinel:        e.sentinel,
		key:             e.key,
		args:            e.args,
		wrapped:         err,
		messageProvider: e.messageProvider,
	}
}

// Is implements errors.Is for comparison with the sentinel error
func (e *TrError) Is(target error) bool {
	if t, ok := target.(*TrError); ok {
		return e.sentinel == t.sentinel
	}

	return target == e.sentinel
}

// Key returns the translation key
func (e *TrError) Key() string {
	return e.key
}

// Args returns the format arguments
func (e *TrError) Args() []interface{} {
	return e.args
}

// Unwrap returns the wrapped error
func (e *TrError) Unwrap() error {
	return e.wrapped
}

func (e *TrError) provider() MessageProvider {
	if e.messageProvider != nil {
		return e.messageProvider
	}

	return getDefaultProvider()
}

func (e *TrError) render(msg string) string {
	var wrapped string
	if e.wrapped != nil {
		wrapped = e.wrapped.Error()
	}

	return join(format(msg, e.args), wrapped)
}

func format(msg string, args []interface{}) string {
	if len(args) == 0 {
		return msg
	}

	return fmt.Sprintf(msg, args...)
}

func join(msg, wrapped string) string {
	if wrapped == "" {
		return msg
	}

	return msg + ": " + wrapped
}

var (
	defaultProvider    MessageProvider
	defaultProviderMux sync.RWMutex
)

// SetDefaultMessageProvider allows users to set their own provider. A nil provider
// restores the embedded bundle.
func SetDefaultMessageProvider(p MessageProvider) {
	defaultProviderMux.Lock()
	defer defaultProviderMux.Unlock()
	defaultProvider = p
}

func getDefaultProvider() MessageProvider {
	defaultProviderMux.RLock()
	p := defaultProvider
	defaultProviderMux.RUnlock()

	if p != nil {
		return p
	}

	return NewMessageProvider(Default())
}
