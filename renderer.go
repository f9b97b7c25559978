package noshell

import (
	"errors"
	"strings"

	"github.com/napalu/noshell/errs"
	"github.com/napalu/noshell/i18n"
	"github.com/napalu/noshell/schema"
	"golang.org/x/text/language"
)

// Renderer produces the text of the built-in help and of error reports
type Renderer interface {
	CommandList(commands []*schema.CommandDefinition) string
	CommandHelp(c *schema.CommandDefinition) string
	Error(err error) string
	HelpHint(helpCommand string) string
}

// DefaultRenderer renders help and errors in one language using the default i18n bundle.
type DefaultRenderer struct {
	lang   language.Tag
	bundle *i18n.Bundle
}

// NewRenderer creates a DefaultRenderer for lang
func NewRenderer(lang language.Tag) *DefaultRenderer {
	b := i18n.Default()
	return &DefaultRenderer{lang: b.Match(lang), bundle: b}
}

func (r *DefaultRenderer) tr(key string) string {
	return r.bundle.TL(r.lang, key)
}

// FlagUsage renders one flag, e.g. `--output or -o <string> "write here" (optional)`.
func (r *DefaultRenderer) FlagUsage(f *schema.FlagDefinition) string {
	var usage string

	switch {
	case f.Long != "" && f.Short != 0:
		usage = "--" + f.Long + " " + r.tr(errs.MsgOrKey) + " -" + string(f.Short)
	default:
		usage = f.Name()
	}

	switch f.Arity {
	case schema.One:
		usage += " <" + valueHint(f.Kind, f.Choices) + ">"
	case schema.Many:
		usage += " <" + valueHint(f.Kind, f.Choices) + ">..."
	}

	if f.Description != "" {
		usage += " \"" + f.Description + "\""
	}

	return usage + " (" + r.requiredOrOptional(f.Required) + ")"
}

// PositionalUsage renders one positional slot, e.g. `target <string> (required)`.
func (r *DefaultRenderer) PositionalUsage(p *schema.PositionalDefinition) string {
	usage := p.ID + " <" + valueHint(p.Kind, p.Choices) + ">"
	if p.Arity == schema.Many {
		usage += "..."
	}

	if p.Description != "" {
		usage += " \"" + p.Description + "\""
	}

	return usage + " (" + r.requiredOrOptional(p.Required) + ")"
}

// CommandUsage renders the name, aliases and description of a command
func (r *DefaultRenderer) CommandUsage(c *schema.CommandDefinition) string {
	usage := c.Name
	if len(c.Aliases) > 0 {
		usage += " (" + strings.Join(c.Aliases, ", ") + ")"
	}
	if c.Description != "" {
		usage += " \"" + c.Description + "\""
	}

	return usage
}

// Synopsis renders the invocation form of a command, e.g. `deploy [flags] <target> [<rest>...]`.
func (r *DefaultRenderer) Synopsis(c *schema.CommandDefinition) string {
	parts := []string{c.Name}
	if len(c.Flags) > 0 {
		parts = append(parts, "["+r.tr(errs.MsgFlagsKey)+"]")
	}

	for _, p := range c.Positionals {
		slot := "<" + p.ID + ">"
		if p.Arity == schema.Many {
			slot += "..."
		}
		if !p.Required {
			slot = "[" + slot + "]"
		}
		parts = append(parts, slot)
	}

	return strings.Join(parts, " ")
}

func (r *DefaultRenderer) CommandList(commands []*schema.CommandDefinition) string {
	var b strings.Builder
	b.WriteString(r.tr(errs.MsgCommandsKey) + ":")
	for _, c := range commands {
		b.WriteString("\n  " + r.CommandUsage(c))
	}

	return b.String()
}

func (r *DefaultRenderer) CommandHelp(c *schema.CommandDefinition) string {
	var b strings.Builder
	b.WriteString(r.tr(errs.MsgUsageKey) + ": " + r.Synopsis(c))
	if c.Description != "" {
		b.WriteString("\n  " + c.Description)
	}

	if len(c.Flags) > 0 {
		b.WriteString("\n" + r.tr(errs.MsgFlagsKey) + ":")
		for _, f := range c.Flags {
			b.WriteString("\n  " + r.FlagUsage(f))
		}
	}

	if len(c.Positionals) > 0 {
		b.WriteString("\n" + r.tr(errs.MsgArgumentsKey) + ":")
		for _, p := range c.Positionals {
			b.WriteString("\n  " + r.PositionalUsage(p))
		}
	}

	return b.String()
}

// Error renders err prefixed with the translated word for error. Errors that can
// localize themselves are rendered in the renderer's language.
func (r *DefaultRenderer) Error(err error) string {
	msg := err.Error()

	var l interface{ Localize(language.Tag) string }
	if errors.As(err, &l) {
		msg = l.Localize(r.lang)
	}

	return r.tr(errs.MsgErrorKey) + ": " + msg
}

func (r *DefaultRenderer) HelpHint(helpCommand string) string {
	return r.bundle.TL(r.lang, errs.MsgHelpHintKey, helpCommand)
}

func (r *DefaultRenderer) requiredOrOptional(required bool) string {
	if required {
		return r.tr(errs.MsgRequiredKey)
	}

	return r.tr(errs.MsgOptionalKey)
}

func valueHint(kind schema.ValueKind, choices []string) string {
	if len(choices) > 0 {
		return strings.Join(choices, "|")
	}

	return kind.String()
}
