// Package commands is the console command registry: each subcommand owns a
// flag set and a run function. Every line typed into the terminal is a
// command; there is no chat fallback.
package commands

import (
	"flag"
	"fmt"
	"sort"
	"strings"
)

// Command is one console subcommand. Flags are defined on FlagSet; Run is
// called after Parse and can read flag state and FlagSet.Args() for
// positional arguments.
type Command struct {
	Name    string
	Usage   string
	FlagSet *flag.FlagSet
	Run     func() error
}

// Registry holds subcommands by name.
type Registry struct {
	cmds map[string]*Command
}

// NewRegistry returns an empty command registry.
func NewRegistry() *Registry {
	return &Registry{cmds: make(map[string]*Command)}
}

// Register adds a subcommand. usage is the one-line help text shown by
// Usage; fs may be nil for commands without flags.
func (r *Registry) Register(name, usage string, fs *flag.FlagSet, run func() error) {
	if fs == nil {
		fs = flag.NewFlagSet(name, flag.ContinueOnError)
	}
	r.cmds[name] = &Command{Name: name, Usage: usage, FlagSet: fs, Run: run}
}

// Split tokenizes a console line into command arguments.
func Split(line string) []string {
	return strings.Fields(line)
}

// Execute runs the subcommand in args[0] with args[1:] as flag/positional
// arguments. Returns an error for unknown command, parse error, or from
// Run().
func (r *Registry) Execute(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("empty command")
	}
	cmd, ok := r.cmds[args[0]]
	if !ok {
		return fmt.Errorf("unknown command %q (try \"help\")", args[0])
	}
	if err := cmd.FlagSet.Parse(args[1:]); err != nil {
		return err
	}
	return cmd.Run()
}

// Usage returns one help line per registered command, sorted by name.
func (r *Registry) Usage() []string {
	names := make([]string, 0, len(r.cmds))
	for name := range r.cmds {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]string, 0, len(names))
	for _, name := range names {
		out = append(out, fmt.Sprintf("%-8s %s", name, r.cmds[name].Usage))
	}
	return out
}
