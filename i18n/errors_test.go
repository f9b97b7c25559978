package i18n

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

type mockProvider struct {
	messages map[string]string
}

func (m *mockProvider) GetMessage(key string) string {
	if msg, ok := m.messages[key]; ok {
		return msg
	}
	return key
}

func TestTrError_Is(t *testing.T) {
	base := NewError("noshell.error.unknown_flag")
	other := NewError("noshell.error.unknown_flag")

	derived := base.WithArgs("--x")
	assert.True(t, errors.Is(derived, base))
	assert.False(t, errors.Is(derived, other))

	wrapped := NewError("noshell.error.io_failure").Wrap(derived)
	assert.True(t, errors.Is(wrapped, base))
}

func TestTrError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"plain", NewError("noshell.error.nil_definition"), "nil command definition"},
		{"args", NewError("noshell.error.unknown_flag").WithArgs("-q"), "unknown flag '-q'"},
		{"wrapped", NewError("noshell.error.io_failure").Wrap(errors.New("broken pipe")), "terminal input/output failed: broken pipe"},
		{"unknown key", NewError("no.such.key"), "no.such.key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestTrError_Localize(t *testing.T) {
	err := NewError("noshell.error.history_load").WithArgs("/tmp/h").Wrap(NewError("noshell.error.io_failure"))
	assert.Equal(t, "Verlauf aus '/tmp/h' kann nicht geladen werden: Ein-/Ausgabe des Terminals fehlgeschlagen",
		err.Localize(language.German))
	assert.Equal(t, "Verlauf aus '/tmp/h' kann nicht geladen werden: Ein-/Ausgabe des Terminals fehlgeschlagen",
		err.Localize(language.MustParse("de-CH")))
}

func TestSetDefaultMessageProvider(t *testing.T) {
	SetDefaultMessageProvider(&mockProvider{messages: map[string]string{"k": "custom %d"}})
	defer SetDefaultMessageProvider(nil)

	assert.Equal(t, "custom 7", NewError("k").WithArgs(7).Error())
}

func TestTrError_KeyAndArgs(t *testing.T) {
	err := NewError("noshell.error.unknown_flag").WithArgs("-q")
	assert.Equal(t, "noshell.error.unknown_flag", err.Key())
	assert.Equal(t, []interface{}{"-q"}, err.Args())
	assert.Nil(t, err.Unwrap())
}
