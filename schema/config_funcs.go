package schema

import "github.com/iancoleman/strcase"

// ConfigureCommandFunc configures a CommandDefinition
type ConfigureCommandFunc func(*CommandDefinition)

// ConfigureFlagFunc configures a FlagDefinition
type ConfigureFlagFunc func(*FlagDefinition)

// ConfigurePositionalFunc configures a PositionalDefinition
type ConfigurePositionalFunc func(*PositionalDefinition)

// NewCommand creates a command named name. The identifier defaults to the name.
func NewCommand(name string, configs ...ConfigureCommandFunc) *CommandDefinition {
	cmd := &CommandDefinition{
		ID:   name,
		Name: name,
	}

	for _, config := range configs {
		config(cmd)
	}

	return cmd
}

// WithCommandID overrides the command identifier
func WithCommandID(id string) ConfigureCommandFunc {
	return func(cmd *CommandDefinition) {
		cmd.ID = id
	}
}

// WithAliases adds alternative names the command resolves by
func WithAliases(aliases ...string) ConfigureCommandFunc {
	return func(cmd *CommandDefinition) {
		cmd.Aliases = append(cmd.Aliases, aliases...)
	}
}

// WithCommandDescription sets the description shown by help
func WithCommandDescription(description string) ConfigureCommandFunc {
	return func(cmd *CommandDefinition) {
		cmd.Description = description
	}
}

// WithFlags appends flags in declaration order
func WithFlags(flags ...*FlagDefinition) ConfigureCommandFunc {
	return func(cmd *CommandDefinition) {
		cmd.Flags = append(cmd.Flags, flags...)
	}
}

// WithPositionals appends positional slots in declaration order
func WithPositionals(positionals ...*PositionalDefinition) ConfigureCommandFunc {
	return func(cmd *CommandDefinition) {
		cmd.Positionals = append(cmd.Positionals, positionals...)
	}
}

// NewFlag creates a flag with arity None. A flag configured with neither a short nor a
// long form gets the kebab-case of id as long form: "dryRun" becomes --dry-run.
func NewFlag(id string, configs ...ConfigureFlagFunc) *FlagDefinition {
	flag := &FlagDefinition{
		ID:    id,
		Arity: None,
		Kind:  String,
	}

	for _, config := range configs {
		config(flag)
	}

	if flag.Short == 0 && flag.Long == "" {
		flag.Long = strcase.ToKebab(id)
	}

	return flag
}

// WithShort sets the short form, typed as -r
func WithShort(r rune) ConfigureFlagFunc {
	return func(flag *FlagDefinition) {
		flag.Short = r
	}
}

// WithLong sets the long form, typed as --name
func WithLong(name string) ConfigureFlagFunc {
	return func(flag *FlagDefinition) {
		flag.Long = name
	}
}

// WithArity sets how many values the flag takes
func WithArity(arity Arity) ConfigureFlagFunc {
	return func(flag *FlagDefinition) {
		flag.Arity = arity
	}
}

// WithKind sets the value kind. A flag with arity None and any kind other than String
// is promoted to arity One.
func WithKind(kind ValueKind) ConfigureFlagFunc {
	return func(flag *FlagDefinition) {
		flag.Kind = kind
		if flag.Arity == None && kind != String {
			flag.Arity = One
		}
	}
}

// WithChoices restricts values to choices and sets the kind to Choice
func WithChoices(choices ...string) ConfigureFlagFunc {
	return func(flag *FlagDefinition) {
		flag.Choices = choices
		WithKind(Choice)(flag)
	}
}

// WithRequired marks the flag as required
func WithRequired(required bool) ConfigureFlagFunc {
	return func(flag *FlagDefinition) {
		flag.Required = required
	}
}

// WithDescription sets the flag description shown by help
func WithDescription(description string) ConfigureFlagFunc {
	return func(flag *FlagDefinition) {
		flag.Description = description
	}
}

// NewPositional creates a required positional slot with arity One.
func NewPositional(id string, configs ...ConfigurePositionalFunc) *PositionalDefinition {
	pos := &PositionalDefinition{
		ID:       id,
		Arity:    One,
		Kind:     String,
		Required: true,
	}

	for _, config := range configs {
		config(pos)
	}

	return pos
}

// WithPositionalArity sets the slot arity. Only the last slot may be Many.
func WithPositionalArity(arity Arity) ConfigurePositionalFunc {
	return func(pos *PositionalDefinition) {
		pos.Arity = arity
	}
}

// WithPositionalKind sets the slot value kind
func WithPositionalKind(kind ValueKind) ConfigurePositionalFunc {
	return func(pos *PositionalDefinition) {
		pos.Kind = kind
	}
}

// WithPositionalChoices restricts the slot to choices
func WithPositionalChoices(choices ...string) ConfigurePositionalFunc {
	return func(pos *PositionalDefinition) {
		pos.Choices = choices
		pos.Kind = Choice
	}
}

// WithOptional makes the slot optional
func WithOptional() ConfigurePositionalFunc {
	return func(pos *PositionalDefinition) {
		pos.Required = false
	}
}

// WithPositionalDescription sets the slot description shown by help
func WithPositionalDescription(description string) ConfigurePositionalFunc {
	return func(pos *PositionalDefinition) {
		pos.Description = description
	}
}
