// Package completion computes tab-completion candidates for an input line from a
// schema.Schema: command names, flag forms and the choices a flag or positional accepts.
package completion

import (
	"strings"

	"github.com/napalu/noshell/editor"
	"github.com/napalu/noshell/internal/util"
	"github.com/napalu/noshell/lexer"
	"github.com/napalu/noshell/schema"
)

// Completer implements editor.Completer over a schema
type Completer struct {
	schema   *schema.Schema
	dialect  lexer.Dialect
	help     string
	commands []string
	data     Data
}

// ConfigureFunc configures a Completer
type ConfigureFunc func(c *Completer)

// WithDialect sets the dialect used to split the line. It should match the shell's.
func WithDialect(d lexer.Dialect) ConfigureFunc {
	return func(c *Completer) {
		c.dialect = d
	}
}

// WithHelpCommand declares a built-in command whose only argument is a command name.
func WithHelpCommand(name string) ConfigureFunc {
	return func(c *Completer) {
		c.help = name
	}
}

// New creates a Completer for s
func New(s *schema.Schema, configs ...ConfigureFunc) *Completer {
	c := &Completer{
		schema:  s,
		dialect: lexer.DefaultDialect(),
	}
	for _, config := range configs {
		config(c)
	}

	var builtins []string
	if c.help != "" {
		builtins = append(builtins, c.help)
	}
	c.data = NewData(s, builtins...)
	for _, name := range c.data.Commands {
		if _, ok := c.data.CommandIDs[name]; ok {
			c.commands = append(c.commands, name)
		}
	}

	return c
}

// Data returns the collected completion data
func (c *Completer) Data() Data {
	return c.data
}

// Complete returns the candidates for the word ending at cursor. Only the text before
// the cursor is considered; a line that does not tokenize yields no candidates.
func (c *Completer) Complete(line string, cursor int) editor.Completion {
	runes := []rune(line)
	cursor = max(0, min(cursor, len(runes)))

	tokens, err := lexer.Split(string(runes[:cursor]), c.dialect)
	if err != nil {
		return editor.Completion{Start: cursor, End: cursor}
	}

	words := make([]lexer.Token, 0, len(tokens))
	for _, tok := range tokens {
		if tok.Kind == lexer.Word || tok.Kind == lexer.Quoted {
			words = append(words, tok)
		}
	}

	start, prefix := cursor, ""
	if n := len(words); n > 0 && words[n-1].Span.End == cursor {
		start, prefix = words[n-1].Span.Start, words[n-1].Text
		words = words[:n-1]
	}

	return editor.Completion{Start: start, End: cursor, Candidates: c.candidates(words, prefix)}
}

func (c *Completer) candidates(words []lexer.Token, prefix string) []string {
	if len(words) == 0 {
		return filter(c.data.Commands, prefix)
	}

	name := words[0].Text
	id, ok := c.data.CommandIDs[name]
	if !ok {
		if c.help != "" && name == c.help && len(words) == 1 {
			return filter(c.commands, prefix)
		}
		return nil
	}
	def, ok := c.schema.Lookup(id)
	if !ok {
		return nil
	}

	args := words[1:]
	terminated := false
	for _, a := range args {
		if a.Kind == lexer.Word && a.Text == "--" {
			terminated = true
		}
	}

	if n := len(args); n > 0 && !terminated {
		if f, ok := valueFlag(def, args[n-1]); ok {
			return filter(c.data.FlagValues[flagKey(def.ID, flagForms(f)[0])], prefix)
		}
	}

	if !terminated && strings.HasPrefix(prefix, "-") {
		if i := strings.IndexByte(prefix, '='); i > 2 && strings.HasPrefix(prefix, "--") {
			return c.attachedChoices(def.ID, prefix[:i+1], prefix[i+1:])
		}
		if !util.IsNegativeNumber(prefix) {
			return filter(c.unusedFlagForms(def, args), prefix)
		}
	}

	if i, ok := positionalSlot(def, args); ok {
		return filter(c.data.PositionalValues[def.ID][i], prefix)
	}

	return nil
}

func (c *Completer) unusedFlagForms(def *schema.CommandDefinition, args []lexer.Token) []string {
	exhausted := make(map[string]bool)
	for _, f := range usedFlags(def, args) {
		if f.Arity == schema.Many {
			continue
		}
		for _, form := range flagForms(f) {
			exhausted[form] = true
		}
	}

	var forms []string
	for _, form := range c.data.CommandFlags[def.ID] {
		if !exhausted[form] {
			forms = append(forms, form)
		}
	}

	return forms
}

// attachedChoices completes the value of head, a long form ending in '='.
func (c *Completer) attachedChoices(commandID, head, value string) []string {
	var out []string
	for _, choice := range filter(c.data.FlagValues[flagKey(commandID, head[:len(head)-1])], value) {
		out = append(out, head+choice)
	}

	return out
}

// flagsOf returns the flags a token names, nil when it is not a flag token.
func flagsOf(def *schema.CommandDefinition, tok lexer.Token) []*schema.FlagDefinition {
	text := tok.Text
	if tok.Kind != lexer.Word || len(text) < 2 || text[0] != '-' || text == "--" {
		return nil
	}

	if strings.HasPrefix(text, "--") {
		name, _, _ := strings.Cut(text[2:], "=")
		if f, ok := def.LookupLong(name); ok {
			return []*schema.FlagDefinition{f}
		}
		return nil
	}

	if util.IsNegativeNumber(text) {
		return nil
	}

	var flags []*schema.FlagDefinition
	for _, r := range text[1:] {
		f, ok := def.LookupShort(r)
		if !ok {
			return nil
		}
		flags = append(flags, f)
	}

	return flags
}

// valueFlag reports the flag expecting a separate value right after tok.
func valueFlag(def *schema.CommandDefinition, tok lexer.Token) (*schema.FlagDefinition, bool) {
	if strings.Contains(tok.Text, "=") {
		return nil, false
	}

	flags := flagsOf(def, tok)
	if len(flags) == 0 {
		return nil, false
	}
	last := flags[len(flags)-1]

	return last, last.Arity != schema.None
}

func usedFlags(def *schema.CommandDefinition, args []lexer.Token) []*schema.FlagDefinition {
	var used []*schema.FlagDefinition
	for _, a := range args {
		used = append(used, flagsOf(def, a)...)
	}

	return used
}

// positionalSlot finds the index of the positional slot the next value would fill.
func positionalSlot(def *schema.CommandDefinition, args []lexer.Token) (int, bool) {
	if len(def.Positionals) == 0 {
		return 0, false
	}

	n := 0
	terminated := false
	for i := 0; i < len(args); i++ {
		a := args[i]
		if !terminated && a.Kind == lexer.Word && a.Text == "--" {
			terminated = true
			continue
		}
		if !terminated && len(flagsOf(def, a)) > 0 {
			if f, ok := valueFlag(def, a); ok && f.Arity == schema.One {
				i++
			}
			continue
		}
		n++
	}

	last := len(def.Positionals) - 1
	if n <= last {
		return n, true
	}
	if def.Positionals[last].Arity == schema.Many {
		return last, true
	}

	return 0, false
}

func filter(words []string, prefix string) []string {
	var out []string
	seen := make(map[string]struct{}, len(words))
	for _, w := range words {
		if _, dup := seen[w]; dup || !strings.HasPrefix(w, prefix) {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}

	return out
}
