package noshell

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/napalu/noshell/argparse"
	"github.com/napalu/noshell/editor"
	"github.com/napalu/noshell/lexer"
	"golang.org/x/text/language"
)

// ConfigureShellFunc is used when calling New to configure the Shell
type ConfigureShellFunc func(s *Shell)

// WithPrompt sets the prompt shown in front of every line
func WithPrompt(prompt string) ConfigureShellFunc {
	return func(s *Shell) {
		s.prompt = prompt
	}
}

// WithTerminal sets the terminal the editor reads from and draws to
func WithTerminal(t editor.Terminal) ConfigureShellFunc {
	return func(s *Shell) {
		s.term = t
	}
}

// WithHistory uses h as session history. It takes precedence over WithHistoryFile and
// the history policies, which are then those of h.
func WithHistory(h *editor.History) ConfigureShellFunc {
	return func(s *Shell) {
		s.history = h
	}
}

// WithHistoryFile persists the history to path
func WithHistoryFile(path string) ConfigureShellFunc {
	return func(s *Shell) {
		s.historyFile = path
	}
}

// WithHistoryCapacity bounds the number of history entries. Values below 1 select
// editor.DefaultHistoryCapacity.
func WithHistoryCapacity(capacity int) ConfigureShellFunc {
	return func(s *Shell) {
		s.historyCapacity = capacity
	}
}

// WithIgnoreEmpty controls whether empty lines are kept out of the history
func WithIgnoreEmpty(ignore bool) ConfigureShellFunc {
	return func(s *Shell) {
		s.ignoreEmpty = ignore
	}
}

// WithIgnoreDuplicates controls whether a line equal to the previous entry is kept out of the history
func WithIgnoreDuplicates(ignore bool) ConfigureShellFunc {
	return func(s *Shell) {
		s.ignoreDuplicates = ignore
	}
}

// WithContinuation controls whether a line ending in an unescaped backslash continues on the next line
func WithContinuation(enabled bool) ConfigureShellFunc {
	return func(s *Shell) {
		s.continuation = enabled
	}
}

// WithOutput sets the writer handed to handlers and used for help
func WithOutput(w io.Writer) ConfigureShellFunc {
	return func(s *Shell) {
		s.out = w
	}
}

// WithErrorOutput sets the writer errors are reported to
func WithErrorOutput(w io.Writer) ConfigureShellFunc {
	return func(s *Shell) {
		s.errOut = w
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *log.Logger) ConfigureShellFunc {
	return func(s *Shell) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithAutoHelp controls the built-in help command. It is enabled by default and never
// shadows a schema command of the same name.
func WithAutoHelp(enabled bool) ConfigureShellFunc {
	return func(s *Shell) {
		s.autoHelp = enabled
	}
}

// WithHelpCommand renames the built-in help command
func WithHelpCommand(name string) ConfigureShellFunc {
	return func(s *Shell) {
		s.helpName = name
	}
}

// WithLexerDialect sets the quoting and escaping rules used to split lines
func WithLexerDialect(d lexer.Dialect) ConfigureShellFunc {
	return func(s *Shell) {
		s.dialect = d
	}
}

// WithParserOptions configures the argument parser
func WithParserOptions(configs ...argparse.ConfigureFunc) ConfigureShellFunc {
	return func(s *Shell) {
		s.parserOpts = append(s.parserOpts, configs...)
	}
}

// WithLanguage sets the language of help and error messages
func WithLanguage(lang language.Tag) ConfigureShellFunc {
	return func(s *Shell) {
		s.lang = lang
	}
}

// WithRenderer replaces the help and error renderer
func WithRenderer(r Renderer) ConfigureShellFunc {
	return func(s *Shell) {
		s.renderer = r
	}
}
