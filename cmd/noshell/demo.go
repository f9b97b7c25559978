package main

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/napalu/noshell"
	"github.com/napalu/noshell/argparse"
	"github.com/napalu/noshell/schema"
	"github.com/napalu/noshell/types/orderedmap"
)

func demoSchema() (*schema.Schema, error) {
	return schema.New(
		schema.NewCommand("echo",
			schema.WithCommandDescription("print the arguments"),
			schema.WithFlags(
				schema.NewFlag("noNewline", schema.WithShort('n'), schema.WithDescription("do not print the trailing newline")),
				schema.NewFlag("upper", schema.WithShort('u'), schema.WithLong("upper"), schema.WithDescription("print in upper case")),
			),
			schema.WithPositionals(
				schema.NewPositional("words", schema.WithPositionalArity(schema.Many), schema.WithOptional()),
			),
		),
		schema.NewCommand("set",
			schema.WithCommandDescription("store a value"),
			schema.WithPositionals(
				schema.NewPositional("key"),
				schema.NewPositional("value"),
			),
		),
		schema.NewCommand("get",
			schema.WithCommandDescription("print a stored value"),
			schema.WithPositionals(schema.NewPositional("key")),
		),
		schema.NewCommand("vars",
			schema.WithCommandDescription("list stored values"),
			schema.WithFlags(
				schema.NewFlag("sort", schema.WithShort('s'), schema.WithLong("sort"), schema.WithDescription("sort by key")),
			),
		),
		schema.NewCommand("sum",
			schema.WithCommandDescription("add numbers"),
			schema.WithPositionals(
				schema.NewPositional("numbers", schema.WithPositionalArity(schema.Many), schema.WithPositionalKind(schema.Float)),
			),
		),
		schema.NewCommand("sleep",
			schema.WithCommandDescription("wait for a duration"),
			schema.WithPositionals(schema.NewPositional("duration", schema.WithPositionalKind(schema.Duration))),
		),
		schema.NewCommand("until",
			schema.WithCommandDescription("show the time left until a date"),
			schema.WithPositionals(schema.NewPositional("date", schema.WithPositionalKind(schema.Time))),
		),
		schema.NewCommand("history",
			schema.WithCommandDescription("list previous lines"),
			schema.WithFlags(
				schema.NewFlag("limit", schema.WithShort('l'), schema.WithLong("limit"), schema.WithKind(schema.Uint),
					schema.WithDescription("show only the newest entries")),
			),
		),
		schema.NewCommand("exit",
			schema.WithAliases("quit"),
			schema.WithCommandDescription("leave the shell"),
		),
	)
}

// demo holds the state the demo commands share
type demo struct {
	vars *orderedmap.OrderedMap[string, string]
	now  func() time.Time
}

func newDemo() *demo {
	return &demo{
		vars: orderedmap.New[string, string](),
		now:  time.Now,
	}
}

func (d *demo) register(sh *noshell.Shell) {
	sh.Handle("echo", d.echo).
		Handle("set", d.set).
		Handle("get", d.get).
		Handle("vars", d.list).
		Handle("sum", d.sum).
		Handle("sleep", d.sleep).
		Handle("until", d.until).
		Handle("history", func(c *noshell.Context) error { return d.history(c, sh) }).
		Handle("exit", func(*noshell.Context) error { return noshell.ErrExit })
}

func (d *demo) echo(c *noshell.Context) error {
	var words []string
	if c.Args.Has("words") {
		var err error
		if words, err = c.Args.Strings("words"); err != nil {
			return err
		}
	}

	text := strings.Join(words, " ")
	if c.Args.Has("upper") {
		text = strings.ToUpper(text)
	}
	if !c.Args.Has("noNewline") {
		text += "\n"
	}

	_, err := fmt.Fprint(c.Out, text)
	return err
}

func (d *demo) set(c *noshell.Context) error {
	key, err := c.Args.String("key")
	if err != nil {
		return err
	}
	value, err := c.Args.String("value")
	if err != nil {
		return err
	}
	d.vars.Set(key, value)

	return nil
}

func (d *demo) get(c *noshell.Context) error {
	key, err := c.Args.String("key")
	if err != nil {
		return err
	}

	value, ok := d.vars.Get(key)
	if !ok {
		return fmt.Errorf("%s is not set", key)
	}
	_, err = fmt.Fprintln(c.Out, value)

	return err
}

func (d *demo) list(c *noshell.Context) error {
	keys := d.vars.Keys()
	if c.Args.Has("sort") {
		slices.Sort(keys)
	}

	for _, k := range keys {
		v, _ := d.vars.Get(k)
		if _, err := fmt.Fprintf(c.Out, "%s=%s\n", k, v); err != nil {
			return err
		}
	}

	return nil
}

func (d *demo) sum(c *noshell.Context) error {
	numbers, err := c.Args.Floats("numbers")
	if err != nil {
		return err
	}

	var total float64
	for _, n := range numbers {
		total += n
	}
	_, err = fmt.Fprintf(c.Out, "%g\n", total)

	return err
}

func (d *demo) sleep(c *noshell.Context) error {
	duration, err := c.Args.Duration("duration")
	if err != nil {
		return err
	}

	timer := time.NewTimer(duration)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-c.Done():
		return c.Err()
	}
}

func (d *demo) until(c *noshell.Context) error {
	date, err := c.Args.Time("date")
	if err != nil {
		return err
	}

	left := date.Sub(d.now()).Round(time.Second)
	_, err = fmt.Fprintln(c.Out, left)

	return err
}

func (d *demo) history(c *noshell.Context, sh *noshell.Shell) error {
	entries := sh.History().Entries()

	limit, err := argparse.OneOr(c.Args, "limit", uint64(len(entries)))
	if err != nil {
		return err
	}
	start := len(entries) - int(min(limit, uint64(len(entries))))

	for i, e := range entries[start:] {
		if _, err := fmt.Fprintf(c.Out, "%4d  %s\n", start+i+1, e); err != nil {
			return err
		}
	}

	return nil
}
