package commands

import (
	"fmt"
	"slices"
)

// AliasCommandName is handled by the Dispatcher itself and can never be registered
// or used as an alias name.
const AliasCommandName = "alias"

// Registry es el mapa inmutable nombre -> comando, construido una vez al arrancar.
type Registry struct {
	cmdIndex map[string]Command
	names    []string
}

func NewRegistry(cmds ...Command) (*Registry, error) {
	r := &Registry{
		cmdIndex: make(map[string]Command, len(cmds)),
	}
	for _, cmd := range cmds {
		if cmd == nil {
			continue
		}
		name := cmd.Name()
		if name == "" || name == AliasCommandName {
			return nil, fmt.Errorf("commands: invalid command name %q", name)
		}
		if _, exists := r.cmdIndex[name]; exists {
			return nil, fmt.Errorf("commands: duplicate command %q", name)
		}
		if b := cmd.Bucket(); b != nil && (b.Count <= 0 || b.Interval <= 0) {
			return nil, fmt.Errorf("commands: invalid bucket for %q", name)
		}
		r.cmdIndex[name] = cmd
		r.names = append(r.names, name)
	}
	slices.Sort(r.names)
	return r, nil
}

// Lookup is exact and case-sensitive. A miss is not an error: the name may be an alias.
func (r *Registry) Lookup(name string) (Command, bool) {
	if r == nil {
		return nil, false
	}
	cmd, ok := r.cmdIndex[name]
	return cmd, ok
}

// IsReserved reports whether name can not be used for an alias.
func (r *Registry) IsReserved(name string) bool {
	if name == AliasCommandName {
		return true
	}
	_, ok := r.Lookup(name)
	return ok
}

func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	return slices.Clone(r.names)
}
