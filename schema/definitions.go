package schema

import (
	"fmt"
	"strings"
)

// Arity is the number of values an argument accepts
type Arity int

const (
	// None takes no value, only presence is recorded
	None Arity = iota
	// One takes exactly one value
	One
	// Many takes one or more values
	Many
)

func (a Arity) String() string {
	switch a {
	case None:
		return "none"
	case One:
		return "one"
	case Many:
		return "many"
	default:
		return fmt.Sprintf("arity(%d)", int(a))
	}
}

// ValueKind is the type a raw value is converted to
type ValueKind int

const (
	String ValueKind = iota
	Int
	Uint
	Float
	Bool
	Duration
	Time
	Choice
)

func (k ValueKind) String() string {
	switch k {
	case String:
		return "string"
	case Int:
		return "int"
	case Uint:
		return "uint"
	case Float:
		return "float"
	case Bool:
		return "bool"
	case Duration:
		return "duration"
	case Time:
		return "time"
	case Choice:
		return "choice"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// FlagDefinition describes a flag. Short is 0 when the flag has no short form and
// Long is empty when it has no long form.
type FlagDefinition struct {
	ID          string
	Short       rune
	Long        string
	Arity       Arity
	Kind        ValueKind
	Choices     []string
	Required    bool
	Description string
}

// Forms renders the flag as it is typed, e.g. "-v, --verbose".
func (f *FlagDefinition) Forms() string {
	var forms []string
	if f.Short != 0 {
		forms = append(forms, "-"+string(f.Short))
	}
	if f.Long != "" {
		forms = append(forms, "--"+f.Long)
	}

	return strings.Join(forms, ", ")
}

// Name returns the most descriptive typed form: the long form if any, else the short form.
func (f *FlagDefinition) Name() string {
	if f.Long != "" {
		return "--" + f.Long
	}
	if f.Short != 0 {
		return "-" + string(f.Short)
	}

	return f.ID
}

// PositionalDefinition describes a positional slot
type PositionalDefinition struct {
	ID          string
	Arity       Arity
	Kind        ValueKind
	Choices     []string
	Required    bool
	Description string
}

// CommandDefinition describes one command. It is treated as immutable once part of a Schema.
type CommandDefinition struct {
	ID          string
	Name        string
	Aliases     []string
	Description string
	Flags       []*FlagDefinition
	Positionals []*PositionalDefinition
}

// LookupShort finds the flag with short form r
func (c *CommandDefinition) LookupShort(r rune) (*FlagDefinition, bool) {
	if r == 0 {
		return nil, false
	}
	for _, f := range c.Flags {
		if f.Short == r {
			return f, true
		}
	}

	return nil, false
}

// LookupLong finds the flag with long form name
func (c *CommandDefinition) LookupLong(name string) (*FlagDefinition, bool) {
	if name == "" {
		return nil, false
	}
	for _, f := range c.Flags {
		if f.Long == name {
			return f, true
		}
	}

	return nil, false
}

// Flag finds a flag by identifier
func (c *CommandDefinition) Flag(id string) (*FlagDefinition, bool) {
	for _, f := range c.Flags {
		if f.ID == id {
			return f, true
		}
	}

	return nil, false
}

// Positional finds a positional slot by identifier
func (c *CommandDefinition) Positional(id string) (*PositionalDefinition, bool) {
	for _, p := range c.Positionals {
		if p.ID == id {
			return p, true
		}
	}

	return nil, false
}

// Names returns the name followed by the aliases
func (c *CommandDefinition) Names() []string {
	return append([]string{c.Name}, c.Aliases...)
}
