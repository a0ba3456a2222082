package commands

import (
	"fmt"
	"strings"

	"github.com/samber/mo"

	"cmdbot/core/log"
)

// Registry maps command names to commands. It is read-only once built.
type Registry struct {
	commands map[string]Command
	names    []string
}

// Builder collects commands for a Registry
type Builder struct {
	commands []Command
}

func NewBuilder() *Builder {
	return &Builder{}
}

// Add queues commands for registration
func (b *Builder) Add(commands ...Command) *Builder {
	b.commands = append(b.commands, commands...)
	return b
}

// Build validates the queued commands and returns the registry.
// Empty names, names with whitespace and duplicate names are rejected.
func (b *Builder) Build() (*Registry, error) {
	registry := &Registry{
		commands: make(map[string]Command, len(b.commands)),
		names:    make([]string, 0, len(b.commands)),
	}

	for _, cmd := range b.commands {
		if cmd == nil {
			return nil, fmt.Errorf("command cannot be nil")
		}

		name := cmd.Name()
		if name == "" || strings.ContainsAny(name, " \t\n") {
			return nil, fmt.Errorf("invalid command name %q", name)
		}
		if _, exists := registry.commands[name]; exists {
			return nil, fmt.Errorf("command %q is registered twice", name)
		}

		registry.commands[name] = cmd
		registry.names = append(registry.names, name)
	}

	log.Info("✅ Command registry built", "commands", strings.Join(registry.names, ","))
	return registry, nil
}

// Select returns the command registered under name. Matching is exact and case-sensitive.
func (r *Registry) Select(name string) mo.Option[Command] {
	cmd, ok := r.commands[name]
	if !ok {
		return mo.None[Command]()
	}
	return mo.Some(cmd)
}

// Names returns the registered command names in declared order
func (r *Registry) Names() []string {
	names := make([]string, len(r.names))
	copy(names, r.names)
	return names
}
