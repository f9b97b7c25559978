package argparse

import (
	"fmt"
	"time"

	"github.com/napalu/noshell/errs"
	"github.com/napalu/noshell/lexer"
	"github.com/napalu/noshell/schema"
	"github.com/napalu/noshell/types/orderedmap"
)

// Value holds everything matched for one identifier. Raw and Values have one entry per
// consumed value; Spans has one entry per value, or per occurrence for arity None.
type Value struct {
	ID     string
	Arity  schema.Arity
	Kind   schema.ValueKind
	Count  int
	Raw    []string
	Values []any
	Spans  []lexer.Span
}

// ParsedArgs maps matched identifiers to their values, flags first then positionals,
// each in declaration order. Identifiers that were not matched are absent.
type ParsedArgs struct {
	values *orderedmap.OrderedMap[string, *Value]
}

func newParsedArgs() *ParsedArgs {
	return &ParsedArgs{values: orderedmap.New[string, *Value]()}
}

// Has reports whether id was matched. It is the only accessor for arity None flags.
func (p *ParsedArgs) Has(id string) bool {
	return p.values.Has(id)
}

// Get returns the matched Value for id
func (p *ParsedArgs) Get(id string) (*Value, bool) {
	return p.values.Get(id)
}

// Count returns how many times id occurred, 0 when absent.
func (p *ParsedArgs) Count(id string) int {
	if v, ok := p.values.Get(id); ok {
		return v.Count
	}

	return 0
}

// IDs returns the matched identifiers in order
func (p *ParsedArgs) IDs() []string {
	return p.values.Keys()
}

// Len returns the number of matched identifiers
func (p *ParsedArgs) Len() int {
	return p.values.Len()
}

// GetOne returns the converted value of an arity One identifier.
func (p *ParsedArgs) GetOne(id string) (any, error) {
	v, ok := p.values.Get(id)
	if !ok {
		return nil, errs.ErrArgumentNotFound.WithArgs(id)
	}
	if v.Arity != schema.One {
		return nil, errs.ErrArityMismatch.WithArgs(id, v.Arity, schema.One)
	}

	return v.Values[0], nil
}

// GetMany returns the converted values of an arity Many identifier.
func (p *ParsedArgs) GetMany(id string) ([]any, error) {
	v, ok := p.values.Get(id)
	if !ok {
		return nil, errs.ErrArgumentNotFound.WithArgs(id)
	}
	if v.Arity != schema.Many {
		return nil, errs.ErrArityMismatch.WithArgs(id, v.Arity, schema.Many)
	}

	return v.Values, nil
}

// One returns the value of an arity One identifier as T.
func One[T any](p *ParsedArgs, id string) (T, error) {
	var zero T
	raw, err := p.GetOne(id)
	if err != nil {
		return zero, err
	}

	t, ok := raw.(T)
	if !ok {
		return zero, errs.ErrTypeMismatch.WithArgs(id, typeName(raw), fmt.Sprintf("%T", zero))
	}

	return t, nil
}

// OneOr returns the value of id as T, or fallback when id is absent.
func OneOr[T any](p *ParsedArgs, id string, fallback T) (T, error) {
	if !p.Has(id) {
		return fallback, nil
	}

	return One[T](p, id)
}

// Many returns the values of an arity Many identifier as []T.
func Many[T any](p *ParsedArgs, id string) ([]T, error) {
	raw, err := p.GetMany(id)
	if err != nil {
		return nil, err
	}

	out := make([]T, len(raw))
	for i, r := range raw {
		t, ok := r.(T)
		if !ok {
			var zero T
			return nil, errs.ErrTypeMismatch.WithArgs(id, typeName(r), fmt.Sprintf("%T", zero))
		}
		out[i] = t
	}

	return out, nil
}

func typeName(v any) string {
	return fmt.Sprintf("%T", v)
}

// String returns an arity One string or choice value
func (p *ParsedArgs) String(id string) (string, error) {
	return One[string](p, id)
}

// Int returns an arity One Int value
func (p *ParsedArgs) Int(id string) (int64, error) {
	return One[int64](p, id)
}

// Uint returns an arity One Uint value
func (p *ParsedArgs) Uint(id string) (uint64, error) {
	return One[uint64](p, id)
}

// Float returns an arity One Float value
func (p *ParsedArgs) Float(id string) (float64, error) {
	return One[float64](p, id)
}

// Bool returns an arity One Bool value
func (p *ParsedArgs) Bool(id string) (bool, error) {
	return One[bool](p, id)
}

// Duration returns an arity One Duration value
func (p *ParsedArgs) Duration(id string) (time.Duration, error) {
	return One[time.Duration](p, id)
}

// Time returns an arity One Time value
func (p *ParsedArgs) Time(id string) (time.Time, error) {
	return One[time.Time](p, id)
}

// Strings returns arity Many string or choice values
func (p *ParsedArgs) Strings(id string) ([]string, error) {
	return Many[string](p, id)
}

// Ints returns arity Many Int values
func (p *ParsedArgs) Ints(id string) ([]int64, error) {
	return Many[int64](p, id)
}

// Floats returns arity Many Float values
func (p *ParsedArgs) Floats(id string) ([]float64, error) {
	return Many[float64](p, id)
}
