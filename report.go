package noshell

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/napalu/noshell/argparse"
	"github.com/napalu/noshell/errs"
	"github.com/napalu/noshell/lexer"
)

func (s *Shell) report(line string, err error) {
	n := len([]rune(line))

	var lexErr *lexer.Error
	var parseErr *argparse.Error
	switch {
	case errors.As(err, &lexErr):
		s.reportAt(line, lexErr.Span(n), err)
	case errors.As(err, &parseErr) && parseErr.Code == argparse.MissingRequired:
		s.reportAt(line, lexer.Span{Start: n, End: n}, err)
	case errors.As(err, &parseErr):
		s.reportAt(line, parseErr.Span, err)
	default:
		s.writeLine(s.errOut, s.errorMessage(err))
	}
}

func (s *Shell) reportAt(line string, span lexer.Span, err error) {
	s.writeLine(s.errOut, caret(line, span)+s.errorMessage(err))
}

func (s *Shell) errorMessage(err error) string {
	return s.renderer.Error(err)
}

func (s *Shell) writeLine(w io.Writer, text string) {
	_, _ = fmt.Fprintln(w, text)
}

// caret renders the physical line holding span.Start with a marker under the span.
func caret(line string, span lexer.Span) string {
	runes := []rune(line)
	start := max(0, min(span.Start, len(runes)))
	end := max(start, min(span.End, len(runes)))

	lineStart, lineEnd := start, start
	for lineStart > 0 && runes[lineStart-1] != '\n' {
		lineStart--
	}
	for lineEnd < len(runes) && runes[lineEnd] != '\n' {
		lineEnd++
	}
	end = min(end, lineEnd)

	pad := runewidth.StringWidth(string(runes[lineStart:start]))
	width := max(1, runewidth.StringWidth(string(runes[start:end])))

	return string(runes[lineStart:lineEnd]) + "\n" + strings.Repeat(" ", pad) + strings.Repeat("^", width) + "\n"
}

func (s *Shell) help(line string, args []lexer.Token) error {
	if len(args) == 0 {
		s.writeLine(s.out, s.renderer.CommandList(s.schema.Commands()))
		return nil
	}

	if len(args) > 1 {
		err := &argparse.Error{Code: argparse.UnexpectedArgument, Raw: args[1].Text, Span: args[1].Span}
		s.report(line, err)
		return err
	}

	def, ok := s.schema.Lookup(args[0].Text)
	if !ok {
		err := errs.ErrCommandNotFound.WithArgs(args[0].Text)
		s.reportAt(line, args[0].Span, err)
		return err
	}
	s.writeLine(s.out, s.renderer.CommandHelp(def))

	return nil
}
