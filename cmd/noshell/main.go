// Command noshell is a small interactive shell built on the noshell engine. It reads its
// settings from a TOML file, overridden by command line flags, and either runs the
// interactive loop or executes the line given as arguments.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/napalu/noshell"
	"github.com/napalu/noshell/argparse"
	"github.com/napalu/noshell/editor"
	"github.com/napalu/noshell/i18n"
	"github.com/napalu/noshell/lexer"
	"github.com/spf13/cobra"
)

// errReported is returned once the shell has already written the failure of a line.
var errReported = errors.New("line failed")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, "noshell:", err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "noshell [line...]",
		Short: "An interactive shell with typed commands",
		Long: `noshell runs an interactive read-eval loop over a fixed set of commands.
When arguments are given they are joined into one line which is executed once.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, required := configPath, cmd.Flags().Changed("config")
			if path == "" && !required {
				path = defaultConfigPath()
			}

			cfg, err := LoadConfig(path, required)
			if err != nil {
				return err
			}
			if err := applyFlags(&cfg, cmd.Flags()); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM)
			defer stop()

			return run(ctx, cfg, args, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.CompletionOptions.HiddenDefaultCmd = true

	f := cmd.Flags()
	f.StringVarP(&configPath, "config", "c", "", "config file (default is $XDG_CONFIG_HOME/noshell/config.toml)")
	f.StringP("prompt", "p", "", "prompt shown before each line")
	f.String("history-file", "", "file the history is loaded from and appended to")
	f.Int("history-capacity", 0, "number of history entries kept")
	f.Bool("ignore-empty", true, "do not record blank lines in the history")
	f.Bool("ignore-duplicates", true, "do not record a line equal to the previous one")
	f.Bool("continuation", true, "continue a line ending in a backslash")
	f.StringP("language", "l", "", "language of messages and help")
	f.String("log-level", "", "log level (debug, info, warn, error)")
	f.String("log-file", "", "write logs to this file instead of stderr")
	f.Bool("posix-quotes", false, "treat backslashes inside single quotes literally")
	f.Bool("aggregation", true, "allow short flags to be combined as in -xyz")

	return cmd
}

// run builds the shell from cfg. With args it executes them as one line, otherwise it
// drives the interactive loop until end of input, exit or cancellation.
func run(ctx context.Context, cfg Config, args []string, out, errOut io.Writer) error {
	logger, closeLog, err := newLogger(cfg, errOut)
	if err != nil {
		return err
	}
	defer closeLog()

	s, err := demoSchema()
	if err != nil {
		return err
	}

	configs := shellOptions(cfg, logger)
	configs = append(configs, noshell.WithOutput(out), noshell.WithErrorOutput(errOut))

	if len(args) == 0 {
		term, closeTerm := newTerminal(out, logger)
		defer closeTerm()
		configs = append(configs, noshell.WithTerminal(term))
	}

	sh, err := noshell.New(s, configs...)
	if err != nil {
		return err
	}
	defer sh.Close()

	newDemo().register(sh)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer forwardInterrupts(sh, cancel)()

	if len(args) > 0 {
		err := sh.Execute(ctx, strings.Join(args, " "))
		switch {
		case err == nil, errors.Is(err, noshell.ErrExit):
			return nil
		default:
			return fmt.Errorf("%w: %w", errReported, err)
		}
	}

	return sh.Run(ctx)
}

// forwardInterrupts aborts the running command on SIGINT, or ends the session when no
// command is running. The returned func stops forwarding.
func forwardInterrupts(sh *noshell.Shell, cancel context.CancelFunc) func() {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-sigs:
				if !sh.Interrupt() {
					cancel()
				}
			case <-done:
				return
			}
		}
	}()

	return func() {
		signal.Stop(sigs)
		close(done)
	}
}

func shellOptions(cfg Config, logger *log.Logger) []noshell.ConfigureShellFunc {
	configs := []noshell.ConfigureShellFunc{
		noshell.WithPrompt(cfg.Prompt),
		noshell.WithLogger(logger),
		noshell.WithLanguage(i18n.Default().SetDefaultLanguage(cfg.lang())),
		noshell.WithHistoryFile(cfg.HistoryFile),
		noshell.WithHistoryCapacity(cfg.HistoryCapacity),
	}

	if cfg.IgnoreEmpty != nil {
		configs = append(configs, noshell.WithIgnoreEmpty(*cfg.IgnoreEmpty))
	}
	if cfg.IgnoreDuplicates != nil {
		configs = append(configs, noshell.WithIgnoreDuplicates(*cfg.IgnoreDuplicates))
	}
	if cfg.Continuation != nil {
		configs = append(configs, noshell.WithContinuation(*cfg.Continuation))
	}
	if cfg.Aggregation != nil {
		configs = append(configs, noshell.WithParserOptions(argparse.WithAggregation(*cfg.Aggregation)))
	}
	if cfg.PosixQuotes {
		configs = append(configs, noshell.WithLexerDialect(lexer.PosixDialect()))
	}

	return configs
}

func newLogger(cfg Config, errOut io.Writer) (*log.Logger, func(), error) {
	w, closeFn := errOut, func() {}
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("unable to open log file %s: %w", cfg.LogFile, err)
		}
		w, closeFn = f, func() { _ = f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		Level:           cfg.level(),
		ReportTimestamp: true,
		Prefix:          "noshell",
	})

	return logger, closeFn, nil
}

// newTerminal prefers the raw-mode console and falls back to plain streams when stdin is
// not a terminal, e.g. when lines are piped in.
func newTerminal(out io.Writer, logger *log.Logger) (editor.Terminal, func()) {
	if f, ok := out.(*os.File); ok {
		console, err := editor.NewConsole(os.Stdin, f, nil)
		if err == nil {
			return console, func() { _ = console.Close() }
		}
		logger.Debug("using plain streams", "reason", err)
	}

	return editor.NewStreamTerminal(os.Stdin, out), func() {}
}
