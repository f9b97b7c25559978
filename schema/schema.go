// Package schema describes the commands a shell accepts: their flags, positional slots,
// arities and value kinds. Definitions are validated once when a Schema is built and are
// read-only afterwards.
package schema

import (
	"github.com/napalu/noshell/errs"
	"github.com/napalu/noshell/types/orderedmap"
)

// Schema is an immutable, ordered set of command definitions
type Schema struct {
	commands *orderedmap.OrderedMap[string, *CommandDefinition]
	names    map[string]string
}

// New validates defs and builds a Schema. Identifiers, names and aliases must be unique
// across all commands.
func New(defs ...*CommandDefinition) (*Schema, error) {
	s := &Schema{
		commands: orderedmap.New[string, *CommandDefinition](),
		names:    make(map[string]string),
	}

	for _, def := range defs {
		if err := def.Validate(); err != nil {
			return nil, err
		}
		if err := s.add(def); err != nil {
			return nil, err
		}
	}

	return s, nil
}

func (s *Schema) add(def *CommandDefinition) error {
	if s.taken(def.ID) {
		return errs.ErrDuplicateCommand.WithArgs(def.ID)
	}
	for _, name := range def.Names() {
		if s.taken(name) && name != def.ID {
			return errs.ErrDuplicateCommand.WithArgs(name)
		}
	}

	s.commands.Set(def.ID, def)
	for _, name := range def.Names() {
		s.names[name] = def.ID
	}

	return nil
}

func (s *Schema) taken(name string) bool {
	if s.commands.Has(name) {
		return true
	}
	_, ok := s.names[name]

	return ok
}

// Lookup resolves a command by identifier, name or alias.
func (s *Schema) Lookup(idOrName string) (*CommandDefinition, bool) {
	if s == nil {
		return nil, false
	}
	if def, ok := s.commands.Get(idOrName); ok {
		return def, true
	}
	if id, ok := s.names[idOrName]; ok {
		return s.commands.Get(id)
	}

	return nil, false
}

// Commands returns the definitions in registration order
func (s *Schema) Commands() []*CommandDefinition {
	if s == nil {
		return nil
	}

	return s.commands.Values()
}

// Len returns the number of commands
func (s *Schema) Len() int {
	if s == nil {
		return 0
	}

	return s.commands.Len()
}

// Validate checks the structural invariants of c: unique identifiers and flag forms,
// no positional with arity None, and at most one Many positional which must be last.
func (c *CommandDefinition) Validate() error {
	if c == nil {
		return errs.ErrNilDefinition
	}
	if c.Name == "" || c.ID == "" {
		return errs.ErrEmptyCommandName.WithArgs(c.ID)
	}

	ids := make(map[string]struct{}, len(c.Flags)+len(c.Positionals))
	checkID := func(id string) error {
		if id == "" {
			return errs.ErrEmptyIdentifier.WithArgs(c.Name)
		}
		if _, seen := ids[id]; seen {
			return errs.ErrDuplicateIdentifier.WithArgs(id, c.Name)
		}
		ids[id] = struct{}{}

		return nil
	}

	shorts := make(map[rune]struct{})
	longs := make(map[string]struct{})
	for _, f := range c.Flags {
		if f == nil {
			return errs.ErrNilDefinition
		}
		if err := checkID(f.ID); err != nil {
			return err
		}
		if f.Short != 0 {
			if _, seen := shorts[f.Short]; seen {
				return errs.ErrDuplicateShort.WithArgs(f.Short, c.Name)
			}
			shorts[f.Short] = struct{}{}
		}
		if f.Long != "" {
			if _, seen := longs[f.Long]; seen {
				return errs.ErrDuplicateLong.WithArgs(f.Long, c.Name)
			}
			longs[f.Long] = struct{}{}
		}
	}

	for i, p := range c.Positionals {
		if p == nil {
			return errs.ErrNilDefinition
		}
		if err := checkID(p.ID); err != nil {
			return err
		}
		if p.Arity == None {
			return errs.ErrPositionalArityNone.WithArgs(p.ID, c.Name)
		}
		if p.Arity == Many && i != len(c.Positionals)-1 {
			return errs.ErrManyNotLast.WithArgs(p.ID, c.Name)
		}
	}

	return nil
}
