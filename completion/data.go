package completion

import (
	"github.com/napalu/noshell/schema"
)

// Data is the completion view of a schema: every name a command can be invoked by
// and, per command identifier, the flag forms and the values they accept.
type Data struct {
	Commands     []string
	CommandIDs   map[string]string
	CommandFlags map[string][]string
	// FlagValues is keyed by command identifier and flag form, e.g. "deploy --env"
	FlagValues map[string][]string
	// PositionalValues holds the choices of each positional slot, nil for free-form slots
	PositionalValues map[string][][]string
}

// NewData collects the completion data of s. Builtins are extra command names without
// flags, listed after the schema's commands unless the schema already uses the name.
func NewData(s *schema.Schema, builtins ...string) Data {
	d := Data{
		CommandIDs:       make(map[string]string),
		CommandFlags:     make(map[string][]string),
		FlagValues:       make(map[string][]string),
		PositionalValues: make(map[string][][]string),
	}

	for _, def := range s.Commands() {
		for _, name := range def.Names() {
			d.Commands = append(d.Commands, name)
			d.CommandIDs[name] = def.ID
		}

		var forms []string
		for _, f := range def.Flags {
			for _, form := range flagForms(f) {
				forms = append(forms, form)
				if len(f.Choices) > 0 {
					d.FlagValues[flagKey(def.ID, form)] = f.Choices
				}
			}
		}
		d.CommandFlags[def.ID] = forms

		values := make([][]string, len(def.Positionals))
		for i, p := range def.Positionals {
			values[i] = p.Choices
		}
		d.PositionalValues[def.ID] = values
	}

	for _, name := range builtins {
		if _, taken := d.CommandIDs[name]; !taken {
			d.Commands = append(d.Commands, name)
		}
	}

	return d
}

func flagForms(f *schema.FlagDefinition) []string {
	var forms []string
	if f.Long != "" {
		forms = append(forms, "--"+f.Long)
	}
	if f.Short != 0 {
		forms = append(forms, "-"+string(f.Short))
	}

	return forms
}

func flagKey(commandID, form string) string {
	return commandID + " " + form
}
