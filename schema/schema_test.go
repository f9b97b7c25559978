package schema

import (
	"errors"
	"testing"

	"github.com/napalu/noshell/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFlag_Defaults(t *testing.T) {
	tests := []struct {
		name    string
		flag    *FlagDefinition
		long    string
		short   rune
		arity   Arity
		kind    ValueKind
		forms   string
		display string
	}{
		{"kebab long from id", NewFlag("dryRun"), "dry-run", 0, None, String, "--dry-run", "--dry-run"},
		{"short only keeps no long", NewFlag("v", WithShort('v')), "", 'v', None, String, "-v", "-v"},
		{"both forms", NewFlag("out", WithShort('o'), WithLong("output"), WithArity(One)), "output", 'o', One, String, "-o, --output", "--output"},
		{"kind promotes arity", NewFlag("count", WithShort('n'), WithKind(Int)), "", 'n', One, Int, "-n", "-n"},
		{"kind keeps many", NewFlag("ids", WithArity(Many), WithKind(Uint)), "ids", 0, Many, Uint, "--ids", "--ids"},
		{"choices", NewFlag("format", WithChoices("text", "json")), "format", 0, One, Choice, "--format", "--format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.long, tt.flag.Long)
			assert.Equal(t, tt.short, tt.flag.Short)
			assert.Equal(t, tt.arity, tt.flag.Arity)
			assert.Equal(t, tt.kind, tt.flag.Kind)
			assert.Equal(t, tt.forms, tt.flag.Forms())
			assert.Equal(t, tt.display, tt.flag.Name())
		})
	}
}

func TestNewPositional_Defaults(t *testing.T) {
	p := NewPositional("file")
	assert.Equal(t, One, p.Arity)
	assert.True(t, p.Required)

	p = NewPositional("files", WithPositionalArity(Many), WithOptional(), WithPositionalKind(Int), WithPositionalDescription("input files"))
	assert.Equal(t, Many, p.Arity)
	assert.False(t, p.Required)
	assert.Equal(t, Int, p.Kind)
	assert.Equal(t, "input files", p.Description)

	p = NewPositional("mode", WithPositionalChoices("a", "b"))
	assert.Equal(t, Choice, p.Kind)
	assert.Equal(t, []string{"a", "b"}, p.Choices)
}

func TestCommandDefinition_Validate(t *testing.T) {
	tests := []struct {
		name string
		def  *CommandDefinition
		want error
	}{
		{"nil", nil, errs.ErrNilDefinition},
		{"empty name", NewCommand(""), errs.ErrEmptyCommandName},
		{"empty flag id", NewCommand("c", WithFlags(&FlagDefinition{Short: 'x'})), errs.ErrEmptyIdentifier},
		{
			"duplicate identifier across flag and positional",
			NewCommand("c", WithFlags(NewFlag("x")), WithPositionals(NewPositional("x"))),
			errs.ErrDuplicateIdentifier,
		},
		{
			"duplicate short",
			NewCommand("c", WithFlags(NewFlag("a", WithShort('v')), NewFlag("b", WithShort('v')))),
			errs.ErrDuplicateShort,
		},
		{
			"duplicate long",
			NewCommand("c", WithFlags(NewFlag("a", WithLong("same")), NewFlag("b", WithLong("same")))),
			errs.ErrDuplicateLong,
		},
		{
			"positional with arity none",
			NewCommand("c", WithPositionals(NewPositional("p", WithPositionalArity(None)))),
			errs.ErrPositionalArityNone,
		},
		{
			"many positional not last",
			NewCommand("c", WithPositionals(NewPositional("a", WithPositionalArity(Many)), NewPositional("b"))),
			errs.ErrManyNotLast,
		},
		{
			"valid",
			NewCommand("c",
				WithFlags(NewFlag("verbose", WithShort('v')), NewFlag("items", WithArity(Many))),
				WithPositionals(NewPositional("first"), NewPositional("rest", WithPositionalArity(Many)))),
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.def.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestValidate_ErrorMessages(t *testing.T) {
	def := NewCommand("copy", WithFlags(NewFlag("a", WithShort('f')), NewFlag("b", WithShort('f'))))
	assert.Equal(t, "duplicate short form '-f' in command 'copy'", def.Validate().Error())
}

func TestSchema_Lookup(t *testing.T) {
	list := NewCommand("list", WithAliases("ls"), WithCommandDescription("list things"))
	remove := NewCommand("remove", WithCommandID("rm-cmd"), WithAliases("rm", "del"))

	s, err := New(list, remove)
	require.NoError(t, err)

	for _, name := range []string{"list", "ls"} {
		def, ok := s.Lookup(name)
		require.True(t, ok, name)
		assert.Same(t, list, def)
	}
	for _, name := range []string{"rm-cmd", "remove", "rm", "del"} {
		def, ok := s.Lookup(name)
		require.True(t, ok, name)
		assert.Same(t, remove, def)
	}

	_, ok := s.Lookup("nope")
	assert.False(t, ok)

	assert.Equal(t, []*CommandDefinition{list, remove}, s.Commands())
	assert.Equal(t, 2, s.Len())
}

func TestSchema_Duplicates(t *testing.T) {
	tests := []struct {
		name string
		defs []*CommandDefinition
	}{
		{"same name", []*CommandDefinition{NewCommand("a"), NewCommand("a")}},
		{"alias clashes with name", []*CommandDefinition{NewCommand("a"), NewCommand("b", WithAliases("a"))}},
		{"name clashes with alias", []*CommandDefinition{NewCommand("a", WithAliases("b")), NewCommand("b")}},
		{"id clashes with name", []*CommandDefinition{NewCommand("a"), NewCommand("b", WithCommandID("a"))}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.defs...)
			assert.True(t, errors.Is(err, errs.ErrDuplicateCommand), "got %v", err)
		})
	}
}

func TestSchema_RejectsInvalidDefinition(t *testing.T) {
	_, err := New(NewCommand("ok"), nil)
	assert.True(t, errors.Is(err, errs.ErrNilDefinition))
}

func TestCommandDefinition_Lookups(t *testing.T) {
	def := NewCommand("c",
		WithFlags(NewFlag("verbose", WithShort('v'), WithLong("verbose")), NewFlag("dryRun")),
		WithPositionals(NewPositional("path")))

	f, ok := def.LookupShort('v')
	require.True(t, ok)
	assert.Equal(t, "verbose", f.ID)

	f, ok = def.LookupLong("dry-run")
	require.True(t, ok)
	assert.Equal(t, "dryRun", f.ID)

	_, ok = def.LookupShort(0)
	assert.False(t, ok)
	_, ok = def.LookupLong("")
	assert.False(t, ok)

	_, ok = def.Flag("dryRun")
	assert.True(t, ok)
	_, ok = def.Positional("path")
	assert.True(t, ok)
	_, ok = def.Positional("verbose")
	assert.False(t, ok)

	assert.Equal(t, []string{"c"}, def.Names())
}

func TestStringers(t *testing.T) {
	assert.Equal(t, "many", Many.String())
	assert.Equal(t, "arity(7)", Arity(7).String())
	assert.Equal(t, "duration", Duration.String())
	assert.Equal(t, "kind(42)", ValueKind(42).String())
}
