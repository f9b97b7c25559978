// Copyright 2021-2024, Florent Heyworth. All rights reserved.
// Use of this source code is governed by the MIT licensee
// which can be found in the LICENSE file.

// Package noshell runs an interactive command loop over a statically declared set of
// commands. Each iteration reads one line with the line editor, splits it into tokens,
// resolves the command by its first word, parses the remaining tokens against the
// command definition and dispatches the typed result to the handler registered for it.
//
// Lexical and parse errors are reported with a caret under the offending part of the
// line and never end the session. The session ends on end-of-input, when a handler
// returns an error wrapping ErrExit, when the terminal fails or when the context passed
// to Run is cancelled.
package noshell

import (
	"context"
	"errors"
	"io"
	"os"
	"runtime/debug"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/napalu/noshell/argparse"
	"github.com/napalu/noshell/completion"
	"github.com/napalu/noshell/editor"
	"github.com/napalu/noshell/errs"
	"github.com/napalu/noshell/lexer"
	"github.com/napalu/noshell/schema"
	"golang.org/x/text/language"
)

// ErrExit, returned by a handler (possibly wrapped), ends the session cleanly.
var ErrExit = errors.New("exit session")

// DefaultPrompt is shown when no prompt is configured
const DefaultPrompt = "> "

// HandlerFunc executes one parsed command invocation
type HandlerFunc func(c *Context) error

// Context is handed to a HandlerFunc. It carries the context of the running session.
type Context struct {
	context.Context
	Command *schema.CommandDefinition
	Args    *argparse.ParsedArgs
	Line    string
	Out     io.Writer
	ErrOut  io.Writer
	Logger  *log.Logger
}

// Shell is the command loop. Apart from Interrupt it is not safe for concurrent use.
type Shell struct {
	schema   *schema.Schema
	handlers map[string]HandlerFunc

	prompt           string
	term             editor.Terminal
	editor           *editor.Editor
	history          *editor.History
	historyFile      string
	historyCapacity  int
	ignoreEmpty      bool
	ignoreDuplicates bool
	continuation     bool

	out      io.Writer
	errOut   io.Writer
	logger   *log.Logger
	lang     language.Tag
	renderer Renderer

	autoHelp   bool
	helpName   string
	dialect    lexer.Dialect
	parserOpts []argparse.ConfigureFunc
	parser     *argparse.Parser

	mu        sync.Mutex
	interrupt context.CancelFunc
}

// New creates a Shell over s. Without WithTerminal the shell reads stdin and draws to
// stdout without changing the terminal mode. A history file that cannot be loaded is
// logged and replaced by an empty history.
func New(s *schema.Schema, configs ...ConfigureShellFunc) (*Shell, error) {
	if s == nil {
		return nil, errs.ErrNilDefinition
	}

	sh := &Shell{
		schema:           s,
		handlers:         make(map[string]HandlerFunc),
		prompt:           DefaultPrompt,
		historyCapacity:  editor.DefaultHistoryCapacity,
		ignoreEmpty:      true,
		ignoreDuplicates: true,
		continuation:     true,
		out:              os.Stdout,
		errOut:           os.Stderr,
		logger:           log.New(io.Discard),
		lang:             language.English,
		autoHelp:         true,
		helpName:         "help",
		dialect:          lexer.DefaultDialect(),
	}

	for _, config := range configs {
		config(sh)
	}

	sh.parser = argparse.New(sh.parserOpts...)
	if sh.renderer == nil {
		sh.renderer = NewRenderer(sh.lang)
	}
	if sh.term == nil {
		sh.term = editor.NewStreamTerminal(os.Stdin, os.Stdout)
	}

	if sh.history == nil {
		sh.history = sh.loadHistory()
	}

	var completerOpts []completion.ConfigureFunc
	completerOpts = append(completerOpts, completion.WithDialect(sh.dialect))
	if sh.helpEnabled() {
		completerOpts = append(completerOpts, completion.WithHelpCommand(sh.helpName))
	}
	sh.editor = editor.New(sh.term, sh.history,
		editor.WithContinuation(sh.continuation),
		editor.WithCompleter(completion.New(s, completerOpts...)))

	return sh, nil
}

func (s *Shell) loadHistory() *editor.History {
	opts := []editor.ConfigureHistoryFunc{
		editor.WithIgnoreEmpty(s.ignoreEmpty),
		editor.WithIgnoreDuplicates(s.ignoreDuplicates),
	}

	if s.historyFile == "" {
		return editor.NewHistory(s.historyCapacity, opts...)
	}

	h, err := editor.LoadHistory(s.historyFile, s.historyCapacity, opts...)
	if err != nil {
		s.logger.Warn("history not loaded", "path", s.historyFile, "err", err)
	}

	return h
}

// Handle registers the handler of the command with identifier id, replacing any
// earlier registration.
func (s *Shell) Handle(id string, h HandlerFunc) *Shell {
	s.handlers[id] = h
	return s
}

// History returns the session history
func (s *Shell) History() *editor.History {
	return s.history
}

// Schema returns the command schema
func (s *Shell) Schema() *schema.Schema {
	return s.schema
}

// Close releases the history file, if any
func (s *Shell) Close() error {
	return s.history.Close()
}

// Run reads and executes lines until the session ends. It returns nil on end-of-input
// or ErrExit, the *editor.IOError of a failing terminal and ctx.Err() once ctx is
// done. Cancellation is checked between lines.
func (s *Shell) Run(ctx context.Context) error {
	logger := s.logger.With("session", uuid.NewString())
	logger.Debug("session started")

	for {
		if err := ctx.Err(); err != nil {
			logger.Info("session cancelled", "err", err)
			return err
		}

		res, err := s.editor.ReadLine(s.prompt)
		if err != nil {
			logger.Error("terminal failed", "err", err)
			return err
		}
		if res.HistoryErr != nil {
			logger.Warn("history entry not saved", "err", res.HistoryErr)
		}

		switch res.State {
		case editor.StateEndOfInput:
			logger.Info("session ended", "reason", "end of input")
			return nil
		case editor.StateInterrupted:
			continue
		}

		if err := s.execute(ctx, logger, res.Line); errors.Is(err, ErrExit) {
			logger.Info("session ended", "reason", "exit")
			return nil
		}
	}
}

// Execute runs one line without the editor. Errors are reported to the error output
// and returned; an empty line is a no-op.
func (s *Shell) Execute(ctx context.Context, line string) error {
	return s.execute(ctx, s.logger, line)
}

func (s *Shell) execute(ctx context.Context, logger *log.Logger, line string) error {
	tokens, err := lexer.Split(line, s.dialect)
	if err != nil {
		s.report(line, err)
		return err
	}

	tokens = withoutSeparators(tokens)
	if len(tokens) == 0 {
		return nil
	}

	head, rest := tokens[0], tokens[1:]
	def, ok := s.schema.Lookup(head.Text)
	if !ok {
		if s.helpEnabled() && head.Text == s.helpName {
			return s.help(line, rest)
		}
		err := errs.ErrCommandNotFound.WithArgs(head.Text)
		s.reportAt(line, head.Span, err)
		if s.helpEnabled() {
			s.writeLine(s.errOut, s.renderer.HelpHint(s.helpName))
		}
		return err
	}

	args, err := s.parser.Parse(rest, def)
	if err != nil {
		s.report(line, err)
		return err
	}

	h, ok := s.handlers[def.ID]
	if !ok {
		err := errs.ErrNoHandler.WithArgs(def.Name)
		s.reportAt(line, head.Span, err)
		return err
	}

	cmdCtx, cancel := context.WithCancel(ctx)
	s.setInterrupt(cancel)
	defer func() {
		s.setInterrupt(nil)
		cancel()
	}()

	start := time.Now()
	err = s.dispatch(h, &Context{
		Context: cmdCtx,
		Command: def,
		Args:    args,
		Line:    line,
		Out:     s.out,
		ErrOut:  s.errOut,
		Logger:  logger,
	})
	logger.Debug("command dispatched", "command", def.ID, "duration", time.Since(start))

	if err != nil && cmdCtx.Err() != nil && ctx.Err() == nil && errors.Is(err, context.Canceled) {
		logger.Info("command interrupted", "command", def.ID)
		return err
	}
	if err != nil && !errors.Is(err, ErrExit) {
		logger.Error("command failed", "command", def.ID, "err", err)
		s.writeLine(s.errOut, s.errorMessage(err))
	}

	return err
}

// dispatch runs h, turning a panic into errs.ErrHandlerPanic.
func (s *Shell) dispatch(h HandlerFunc, c *Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			c.Logger.Debug("handler panicked", "command", c.Command.ID, "stack", string(debug.Stack()))
			err = errs.ErrHandlerPanic.WithArgs(c.Command.Name, r)
		}
	}()

	return h(c)
}

// Interrupt cancels the context of the running handler. It reports whether a handler
// was running and may be called from any goroutine, e.g. a signal handler.
func (s *Shell) Interrupt() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.interrupt == nil {
		return false
	}
	s.interrupt()

	return true
}

func (s *Shell) setInterrupt(cancel context.CancelFunc) {
	s.mu.Lock()
	s.interrupt = cancel
	s.mu.Unlock()
}

func (s *Shell) helpEnabled() bool {
	if !s.autoHelp || s.helpName == "" {
		return false
	}
	_, shadowed := s.schema.Lookup(s.helpName)

	return !shadowed
}

func withoutSeparators(tokens []lexer.Token) []lexer.Token {
	out := tokens[:0:0]
	for _, tok := range tokens {
		if tok.Kind != lexer.Separator {
			out = append(out, tok)
		}
	}

	return out
}
