// Package argparse matches the tokens of one command invocation against a
// schema.CommandDefinition and produces typed ParsedArgs.
//
// Flags may be interleaved with positionals in any order:
//
//	-x          short flag
//	-xyz        aggregate of short flags, only when x, y and z are all known
//	--name      long flag
//	--name=v    long flag with attached value
//	--          terminator, every later token is positional
//
// Quoted tokens, a bare - and negative numbers are always values. Parsing is a single
// pass with one token of lookahead and never invokes handlers.
package argparse

import (
	"strings"

	"github.com/napalu/noshell/errs"
	"github.com/napalu/noshell/internal/util"
	"github.com/napalu/noshell/lexer"
	"github.com/napalu/noshell/schema"
)

// Parser holds the flag dialect. It is stateless between calls and may be reused.
type Parser struct {
	aggregation    bool
	attachedValues bool
	terminator     bool
}

// New creates a Parser with aggregation, attached values and the terminator enabled.
func New(configs ...ConfigureFunc) *Parser {
	p := &Parser{
		aggregation:    true,
		attachedValues: true,
		terminator:     true,
	}

	for _, config := range configs {
		config(p)
	}

	return p
}

// Parse is a convenience for New(configs...).Parse(tokens, def).
func Parse(tokens []lexer.Token, def *schema.CommandDefinition, configs ...ConfigureFunc) (*ParsedArgs, error) {
	return New(configs...).Parse(tokens, def)
}

type tokenClass int

const (
	classValue tokenClass = iota
	classTerminator
	classFlag
	classAggregate
	classUnknown
)

type classified struct {
	class       tokenClass
	name        string
	flags       []*schema.FlagDefinition
	attached    string
	hasAttached bool
}

type match struct {
	count int
	raw   []string
	spans []lexer.Span
}

// run is the bookkeeping of one Parse call.
type run struct {
	p       *Parser
	def     *schema.CommandDefinition
	st      *state
	values  []lexer.Token
	matched map[string]*match
}

// Parse matches tokens, which must not include the command name, against def. def is
// expected to satisfy schema.CommandDefinition.Validate.
//
// Errors are reported as *Error in this order: unknown flags and missing flag values
// while consuming, then unexpected positionals, then missing required arguments (flags
// first, each group in declaration order), then value conversion failures.
func (p *Parser) Parse(tokens []lexer.Token, def *schema.CommandDefinition) (*ParsedArgs, error) {
	r := &run{
		p:       p,
		def:     def,
		st:      newState(tokens),
		matched: make(map[string]*match),
	}

	if err := r.consume(); err != nil {
		return nil, err
	}
	if err := r.assignPositionals(); err != nil {
		return nil, err
	}
	if err := r.checkRequired(); err != nil {
		return nil, err
	}

	return r.convert()
}

func (r *run) consume() error {
	terminated := false
	for r.st.Advance() {
		tok := r.st.Current()
		if terminated {
			r.values = append(r.values, tok)
			continue
		}

		c := r.p.classify(tok, r.def)
		switch c.class {
		case classTerminator:
			terminated = true
		case classValue:
			r.values = append(r.values, tok)
		case classUnknown:
			return &Error{Code: UnknownFlag, Name: c.name, Raw: tok.Text, Span: tok.Span}
		case classFlag:
			if err := r.consumeFlag(c.flags[0], tok, c); err != nil {
				return err
			}
		case classAggregate:
			last := len(c.flags) - 1
			for _, f := range c.flags[:last] {
				if f.Arity != schema.None {
					return &Error{Code: MissingValue, ID: f.ID, Name: f.Name(), Raw: tok.Text, Span: tok.Span}
				}
				r.record(f.ID, tok.Span)
			}
			if err := r.consumeFlag(c.flags[last], tok, c); err != nil {
				return err
			}
		}
	}

	return nil
}

func (r *run) consumeFlag(f *schema.FlagDefinition, tok lexer.Token, c classified) error {
	switch f.Arity {
	case schema.None:
		if c.hasAttached {
			return &Error{Code: InvalidValue, ID: f.ID, Name: f.Name(), Raw: c.attached,
				Reason: errs.ErrParseNoValueExpected, Span: tok.Span}
		}
		r.record(f.ID, tok.Span)

	case schema.One:
		raw, span := c.attached, tok.Span
		if !c.hasAttached {
			next, ok := r.nextValue()
			if !ok {
				return &Error{Code: MissingValue, ID: f.ID, Name: f.Name(), Raw: tok.Text, Span: tok.Span}
			}
			raw, span = next.Text, next.Span
		}
		m := r.entry(f.ID)
		m.count++
		m.raw = []string{raw}
		m.spans = []lexer.Span{span}

	case schema.Many:
		var raw []string
		var spans []lexer.Span
		if c.hasAttached {
			raw, spans = append(raw, c.attached), append(spans, tok.Span)
		}

		start := r.st.Pos()
		for {
			next, ok := r.nextValue()
			if !ok {
				break
			}
			raw, spans = append(raw, next.Text), append(spans, next.Span)
		}
		if len(raw) == 0 {
			return &Error{Code: MissingValue, ID: f.ID, Name: f.Name(), Raw: tok.Text, Span: tok.Span}
		}

		// Leave a trailing run to the positional slots it would otherwise starve.
		if r.st.AtEnd() {
			taken := r.st.Pos() - start
			reserve := min(r.unfilledRequired(), taken, len(raw)-1)
			if reserve > 0 {
				r.st.SetPos(r.st.Pos() - reserve)
				raw, spans = raw[:len(raw)-reserve], spans[:len(spans)-reserve]
			}
		}

		m := r.entry(f.ID)
		m.count++
		m.raw = append(m.raw, raw...)
		m.spans = append(m.spans, spans...)
	}

	return nil
}

// nextValue consumes the next token when it classifies as a value.
func (r *run) nextValue() (lexer.Token, bool) {
	next, ok := r.st.Peek()
	if !ok || r.p.classify(next, r.def).class != classValue {
		return lexer.Token{}, false
	}
	r.st.Advance()

	return next, true
}

// unfilledRequired counts the required positional slots not reached by the values
// collected so far.
func (r *run) unfilledRequired() int {
	n := 0
	for i, p := range r.def.Positionals {
		if i >= len(r.values) && p.Required {
			n++
		}
	}

	return n
}

func (r *run) entry(id string) *match {
	m, ok := r.matched[id]
	if !ok {
		m = &match{}
		r.matched[id] = m
	}

	return m
}

func (r *run) record(id string, span lexer.Span) {
	m := r.entry(id)
	m.count++
	m.spans = append(m.spans, span)
}

func (r *run) assignPositionals() error {
	i := 0
	for _, p := range r.def.Positionals {
		if i >= len(r.values) {
			break
		}

		take := 1
		if p.Arity == schema.Many {
			take = len(r.values) - i
		}

		m := r.entry(p.ID)
		for _, tok := range r.values[i : i+take] {
			m.count++
			m.raw = append(m.raw, tok.Text)
			m.spans = append(m.spans, tok.Span)
		}
		i += take
	}

	if i < len(r.values) {
		extra := r.values[i]
		return &Error{Code: UnexpectedArgument, Raw: extra.Text, Span: extra.Span}
	}

	return nil
}

func (r *run) checkRequired() error {
	for _, f := range r.def.Flags {
		if _, ok := r.matched[f.ID]; f.Required && !ok {
			return &Error{Code: MissingRequired, ID: f.ID, Name: f.Name()}
		}
	}
	for _, p := range r.def.Positionals {
		if _, ok := r.matched[p.ID]; p.Required && !ok {
			return &Error{Code: MissingRequired, ID: p.ID, Name: p.ID}
		}
	}

	return nil
}

func (r *run) convert() (*ParsedArgs, error) {
	out := newParsedArgs()

	for _, f := range r.def.Flags {
		m, ok := r.matched[f.ID]
		if !ok {
			continue
		}
		v, err := buildValue(f.ID, f.Name(), f.Arity, f.Kind, f.Choices, m)
		if err != nil {
			return nil, err
		}
		out.values.Set(f.ID, v)
	}

	for _, p := range r.def.Positionals {
		m, ok := r.matched[p.ID]
		if !ok {
			continue
		}
		v, err := buildValue(p.ID, p.ID, p.Arity, p.Kind, p.Choices, m)
		if err != nil {
			return nil, err
		}
		out.values.Set(p.ID, v)
	}

	return out, nil
}

func buildValue(id, name string, arity schema.Arity, kind schema.ValueKind, choices []string, m *match) (*Value, error) {
	v := &Value{
		ID:    id,
		Arity: arity,
		Kind:  kind,
		Count: m.count,
		Raw:   m.raw,
		Spans: m.spans,
	}

	if arity == schema.None {
		return v, nil
	}

	v.Values = make([]any, len(m.raw))
	for i, raw := range m.raw {
		converted, err := convertValue(raw, kind, choices)
		if err != nil {
			return nil, &Error{Code: InvalidValue, ID: id, Name: name, Raw: raw, Reason: err, Span: m.spans[i]}
		}
		v.Values[i] = converted
	}

	return v, nil
}

func convertValue(raw string, kind schema.ValueKind, choices []string) (any, error) {
	switch kind {
	case schema.Int:
		return util.ParseInt(raw)
	case schema.Uint:
		return util.ParseUint(raw)
	case schema.Float:
		return util.ParseFloat(raw)
	case schema.Bool:
		return util.ParseBool(raw)
	case schema.Duration:
		return util.ParseDuration(raw)
	case schema.Time:
		return util.ParseTime(raw)
	case schema.Choice:
		return util.ParseChoice(raw, choices)
	default:
		return raw, nil
	}
}

func (p *Parser) classify(tok lexer.Token, def *schema.CommandDefinition) classified {
	text := tok.Text
	if tok.Kind != lexer.Word || len(text) < 2 || text[0] != '-' {
		return classified{class: classValue}
	}

	if text == "--" {
		if p.terminator {
			return classified{class: classTerminator}
		}
		return classified{class: classValue}
	}

	if strings.HasPrefix(text, "--") {
		return p.classifyLong(text, def)
	}

	return p.classifyShort(text, def)
}

func (p *Parser) classifyLong(text string, def *schema.CommandDefinition) classified {
	name, attached, hasAttached := text[2:], "", false
	if p.attachedValues {
		if i := strings.IndexByte(name, '='); i >= 0 {
			name, attached, hasAttached = name[:i], name[i+1:], true
		}
	}

	f, ok := def.LookupLong(name)
	if !ok {
		return classified{class: classUnknown, name: "--" + name}
	}

	return classified{class: classFlag, name: text, flags: []*schema.FlagDefinition{f}, attached: attached, hasAttached: hasAttached}
}

func (p *Parser) classifyShort(text string, def *schema.CommandDefinition) classified {
	runes := []rune(text[1:])

	flags := make([]*schema.FlagDefinition, 0, len(runes))
	for _, r := range runes {
		f, ok := def.LookupShort(r)
		if !ok {
			break
		}
		flags = append(flags, f)
	}

	switch {
	case len(flags) == len(runes) && len(runes) == 1:
		return classified{class: classFlag, name: text, flags: flags}
	case len(flags) == len(runes) && p.aggregation:
		return classified{class: classAggregate, name: text, flags: flags}
	case util.IsNegativeNumber(text):
		return classified{class: classValue}
	case len(runes) == 1:
		return classified{class: classUnknown, name: text}
	default:
		return classified{class: classValue}
	}
}
