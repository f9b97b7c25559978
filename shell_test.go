package noshell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/napalu/noshell/argparse"
	"github.com/napalu/noshell/editor"
	"github.com/napalu/noshell/errs"
	"github.com/napalu/noshell/lexer"
	"github.com/napalu/noshell/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func testSchema(t *testing.T, extra ...*schema.CommandDefinition) *schema.Schema {
	t.Helper()

	defs := []*schema.CommandDefinition{
		schema.NewCommand("deploy",
			schema.WithAliases("d"),
			schema.WithCommandDescription("Deploy a target"),
			schema.WithFlags(
				schema.NewFlag("verbose", schema.WithShort('v'), schema.WithLong("verbose"), schema.WithDescription("be loud")),
				schema.NewFlag("env", schema.WithChoices("dev", "prod"), schema.WithDescription("target environment")),
				schema.NewFlag("output", schema.WithShort('o'), schema.WithLong("output"), schema.WithArity(schema.One)),
			),
			schema.WithPositionals(
				schema.NewPositional("target", schema.WithPositionalDescription("where to deploy")),
				schema.NewPositional("rest", schema.WithPositionalArity(schema.Many), schema.WithOptional()),
			),
		),
		schema.NewCommand("status"),
		schema.NewCommand("quit"),
		schema.NewCommand("fail"),
	}

	s, err := schema.New(append(defs, extra...)...)
	require.NoError(t, err)

	return s
}

type fixture struct {
	shell    *Shell
	term     *editor.ScriptedTerminal
	out      *bytes.Buffer
	errOut   *bytes.Buffer
	deployed []*argparse.ParsedArgs
}

func newFixture(t *testing.T, s *schema.Schema, lines []string, configs ...ConfigureShellFunc) *fixture {
	t.Helper()

	f := &fixture{
		term:   editor.NewScriptedTerminal(),
		out:    &bytes.Buffer{},
		errOut: &bytes.Buffer{},
	}
	for _, l := range lines {
		f.term.Events = append(f.term.Events, editor.Line(l)...)
	}

	base := []ConfigureShellFunc{WithTerminal(f.term), WithOutput(f.out), WithErrorOutput(f.errOut)}
	sh, err := New(s, append(base, configs...)...)
	require.NoError(t, err)

	sh.Handle("deploy", func(c *Context) error {
		f.deployed = append(f.deployed, c.Args)
		target, _ := c.Args.String("target")
		_, err := fmt.Fprintf(c.Out, "deploying %s\n", target)
		return err
	})
	sh.Handle("quit", func(*Context) error {
		return fmt.Errorf("user asked: %w", ErrExit)
	})
	sh.Handle("fail", func(*Context) error {
		return errors.New("boom")
	})
	f.shell = sh

	return f
}

func TestNew_NilSchema(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, errs.ErrNilDefinition)
}

func TestShell_ExecuteDispatches(t *testing.T) {
	f := newFixture(t, testSchema(t), nil)

	require.NoError(t, f.shell.Execute(context.Background(), `deploy -v "eu west" --env=dev extra`))
	require.Len(t, f.deployed, 1)

	args := f.deployed[0]
	assert.True(t, args.Has("verbose"))
	env, err := args.String("env")
	require.NoError(t, err)
	assert.Equal(t, "dev", env)
	rest, err := args.Strings("rest")
	require.NoError(t, err)
	assert.Equal(t, []string{"extra"}, rest)

	assert.Equal(t, "deploying eu west\n", f.out.String())
	assert.Empty(t, f.errOut.String())
}

func TestShell_HandlerPanicIsReported(t *testing.T) {
	f := newFixture(t, testSchema(t), []string{"status", "deploy a"})
	f.shell.Handle("status", func(*Context) error {
		panic("kaput")
	})

	err := f.shell.Execute(context.Background(), "status")
	assert.ErrorIs(t, err, errs.ErrHandlerPanic)
	assert.Equal(t, "error: command 'status' panicked: kaput\n", f.errOut.String())

	f.errOut.Reset()
	require.NoError(t, f.shell.Run(context.Background()))
	assert.Equal(t, "deploying a\n", f.out.String())
	assert.Equal(t, "error: command 'status' panicked: kaput\n", f.errOut.String())
}

func TestShell_InterruptCancelsRunningCommand(t *testing.T) {
	f := newFixture(t, testSchema(t), nil)
	assert.False(t, f.shell.Interrupt())

	started := make(chan struct{})
	f.shell.Handle("status", func(c *Context) error {
		close(started)
		<-c.Done()
		return c.Err()
	})

	go func() {
		<-started
		f.shell.Interrupt()
	}()

	ctx := context.Background()
	err := f.shell.Execute(ctx, "status")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, f.errOut.String())
	assert.False(t, f.shell.Interrupt())

	require.NoError(t, f.shell.Execute(ctx, "deploy a"))
	assert.Equal(t, "deploying a\n", f.out.String())
}

func TestShell_ExecuteAlias(t *testing.T) {
	f := newFixture(t, testSchema(t), nil)
	require.NoError(t, f.shell.Execute(context.Background(), "d somewhere"))
	assert.Equal(t, "deploying somewhere\n", f.out.String())
}

func TestShell_ExecuteEmptyLine(t *testing.T) {
	f := newFixture(t, testSchema(t), nil)
	assert.NoError(t, f.shell.Execute(context.Background(), "   "))
	assert.Empty(t, f.errOut.String())
}

func TestShell_ErrorReports(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		sentinel error
		want     string
	}{
		{
			name:     "unknown flag",
			line:     "deploy --bogus x",
			sentinel: errs.ErrUnknownFlag,
			want:     "deploy --bogus x\n       ^^^^^^^\nerror: unknown flag '--bogus'\n",
		},
		{
			name:     "unknown command",
			line:     "frobnicate now",
			sentinel: errs.ErrCommandNotFound,
			want:     "frobnicate now\n^^^^^^^^^^\nerror: frobnicate: command not found\ntype 'help' to list the available commands\n",
		},
		{
			name:     "unterminated quote",
			line:     `deploy "abc`,
			sentinel: errs.ErrUnterminatedQuote,
			want:     "deploy \"abc\n       ^^^^\nerror: unterminated \" quote starting at offset 7\n",
		},
		{
			name:     "missing required",
			line:     "deploy -v",
			sentinel: errs.ErrMissingRequired,
			want:     "deploy -v\n         ^\nerror: missing required argument 'target'\n",
		},
		{
			name:     "invalid choice",
			line:     "deploy x --env qa",
			sentinel: errs.ErrInvalidValue,
			want:     "deploy x --env qa\n               ^^\nerror: invalid value 'qa' for '--env': must be one of dev, prod\n",
		},
		{
			name:     "no handler",
			line:     "status",
			sentinel: errs.ErrNoHandler,
			want:     "status\n^^^^^^\nerror: command 'status' has no handler\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, testSchema(t), nil)

			err := f.shell.Execute(context.Background(), tt.line)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.sentinel))
			assert.Equal(t, tt.want, f.errOut.String())
			assert.Empty(t, f.deployed)
		})
	}
}

func TestShell_HandlerErrorReported(t *testing.T) {
	f := newFixture(t, testSchema(t), nil)

	err := f.shell.Execute(context.Background(), "fail")
	assert.EqualError(t, err, "boom")
	assert.Equal(t, "error: boom\n", f.errOut.String())
}

func TestShell_LocalizedReports(t *testing.T) {
	for _, tag := range []string{"de", "de-DE", "de-AT"} {
		t.Run(tag, func(t *testing.T) {
			f := newFixture(t, testSchema(t), nil, WithLanguage(language.MustParse(tag)))

			_ = f.shell.Execute(context.Background(), "deploy --bogus")
			assert.Equal(t, "deploy --bogus\n       ^^^^^^^\nFehler: unbekannte Option '--bogus'\n", f.errOut.String())
		})
	}
}

func TestShell_RegionalHelpHint(t *testing.T) {
	f := newFixture(t, testSchema(t), nil, WithLanguage(language.MustParse("de-DE")))

	_ = f.shell.Execute(context.Background(), "nope")
	assert.Contains(t, f.errOut.String(), "Fehler: ")
	assert.Contains(t, f.errOut.String(), "'help' zeigt die verfügbaren Befehle an\n")
}

func TestShell_CaretOnContinuedLine(t *testing.T) {
	f := newFixture(t, testSchema(t), nil)

	_ = f.shell.Execute(context.Background(), "deploy \\\n  --bogus")
	assert.Equal(t, "  --bogus\n  ^^^^^^^\nerror: unknown flag '--bogus'\n", f.errOut.String())
}

func TestShell_RunLoop(t *testing.T) {
	f := newFixture(t, testSchema(t), []string{"deploy a", "", "nope", "deploy -x", "deploy b"})
	f.term.Events = append(f.term.Events, editor.Char('z'), editor.Key(editor.Interrupt))
	f.term.Events = append(f.term.Events, editor.Line("deploy c")...)

	require.NoError(t, f.shell.Run(context.Background()))

	assert.Len(t, f.deployed, 3)
	assert.Equal(t, "deploying a\ndeploying b\ndeploying c\n", f.out.String())
	assert.Contains(t, f.errOut.String(), "error: nope: command not found")
	assert.Contains(t, f.errOut.String(), "error: unknown flag '-x'")
	assert.Equal(t, []string{"deploy a", "nope", "deploy -x", "deploy b", "deploy c"}, f.shell.History().Entries())
}

func TestShell_RunExit(t *testing.T) {
	f := newFixture(t, testSchema(t), []string{"fail", "quit", "deploy never"})

	require.NoError(t, f.shell.Run(context.Background()))
	assert.Empty(t, f.deployed)
	assert.Equal(t, "error: boom\n", f.errOut.String())
	assert.NotEmpty(t, f.term.Events)
}

func TestShell_RunIOFailure(t *testing.T) {
	f := newFixture(t, testSchema(t), []string{"deploy a"})
	cause := errors.New("tty gone")
	f.term.Err = cause

	err := f.shell.Run(context.Background())
	var ioErr *editor.IOError
	require.True(t, errors.As(err, &ioErr))
	assert.True(t, errors.Is(err, errs.ErrIOFailure))
	assert.Len(t, f.deployed, 1)
}

func TestShell_RunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	f := newFixture(t, testSchema(t), []string{"deploy a", "deploy b"})
	f.shell.Handle("deploy", func(c *Context) error {
		f.deployed = append(f.deployed, c.Args)
		cancel()
		return nil
	})

	err := f.shell.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, f.deployed, 1)
}

func TestShell_Help(t *testing.T) {
	f := newFixture(t, testSchema(t), nil)
	ctx := context.Background()

	require.NoError(t, f.shell.Execute(ctx, "help"))
	assert.Equal(t, "commands:\n  deploy (d) \"Deploy a target\"\n  status\n  quit\n  fail\n", f.out.String())

	f.out.Reset()
	require.NoError(t, f.shell.Execute(ctx, "help d"))
	want := strings.Join([]string{
		"usage: deploy [flags] <target> [<rest>...]",
		"  Deploy a target",
		"flags:",
		"  --verbose or -v \"be loud\" (optional)",
		"  --env <dev|prod> \"target environment\" (optional)",
		"  --output or -o <string> (optional)",
		"arguments:",
		"  target <string> \"where to deploy\" (required)",
		"  rest <string>... (optional)",
	}, "\n") + "\n"
	assert.Equal(t, want, f.out.String())

	err := f.shell.Execute(ctx, "help nope")
	assert.ErrorIs(t, err, errs.ErrCommandNotFound)
	assert.Equal(t, "help nope\n     ^^^^\nerror: nope: command not found\n", f.errOut.String())

	err = f.shell.Execute(ctx, "help deploy status")
	assert.ErrorIs(t, err, errs.ErrUnexpectedArgument)
}

func TestShell_HelpShadowedOrDisabled(t *testing.T) {
	t.Run("shadowed by schema", func(t *testing.T) {
		f := newFixture(t, testSchema(t, schema.NewCommand("help")), nil)
		called := false
		f.shell.Handle("help", func(*Context) error {
			called = true
			return nil
		})

		require.NoError(t, f.shell.Execute(context.Background(), "help"))
		assert.True(t, called)
		assert.Empty(t, f.out.String())
	})

	t.Run("disabled", func(t *testing.T) {
		f := newFixture(t, testSchema(t), nil, WithAutoHelp(false))

		err := f.shell.Execute(context.Background(), "help")
		assert.ErrorIs(t, err, errs.ErrCommandNotFound)
		assert.Equal(t, "help\n^^^^\nerror: help: command not found\n", f.errOut.String())
	})
}

func TestShell_HistoryFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history")
	require.NoError(t, os.WriteFile(path, []byte("broken\\q\n"), 0o600))

	var logs bytes.Buffer
	logger := log.NewWithOptions(&logs, log.Options{Level: log.DebugLevel})

	f := newFixture(t, testSchema(t), []string{"deploy a", "deploy a", "status"},
		WithHistoryFile(path), WithIgnoreDuplicates(false), WithLogger(logger))
	require.NoError(t, f.shell.Run(context.Background()))
	require.NoError(t, f.shell.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "deploy a\ndeploy a\nstatus\n", string(data))

	out := logs.String()
	assert.Contains(t, out, "history not loaded")
	assert.Contains(t, out, "command dispatched")
	assert.Contains(t, out, "session=")
	assert.Contains(t, out, "session ended")
}

func TestShell_Options(t *testing.T) {
	h := editor.NewHistory(3)
	d := lexer.PosixDialect()

	f := newFixture(t, testSchema(t), []string{`deploy 'a\b'`},
		WithPrompt("$ "), WithHistory(h), WithLexerDialect(d),
		WithParserOptions(argparse.WithAggregation(false)), WithContinuation(false))

	require.NoError(t, f.shell.Run(context.Background()))
	assert.Same(t, h, f.shell.History())
	assert.Equal(t, "deploying a\\b\n", f.out.String())

	first := f.term.Frames[0]
	assert.Equal(t, "$ ", first.Prompt)
}

func TestShell_CompletionWired(t *testing.T) {
	f := newFixture(t, testSchema(t), nil)
	f.term.Events = append(editor.Text("dep"), editor.Key(editor.Complete))
	f.term.Events = append(f.term.Events, editor.Line("x")...)

	require.NoError(t, f.shell.Run(context.Background()))
	assert.Equal(t, "deploying x\n", f.out.String())
}
