package repl

import (
	"sort"
	"strings"
)

// builtins are handled by the REPL itself.
var builtins = []string{"exit", "quit", "history", "help"}

// Completer suggests command paths for a typed prefix.
type Completer struct {
	commands []string
}

// NewCompleter creates a completer over the given command paths plus the
// REPL built-ins.
func NewCompleter(commands []string) *Completer {
	seen := make(map[string]bool)
	var all []string
	for _, c := range append(append([]string{}, commands...), builtins...) {
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		all = append(all, c)
	}
	sort.Strings(all)
	return &Completer{commands: all}
}

// Complete returns the command paths starting with prefix. Runs of spaces
// in the prefix are collapsed; a trailing space is kept so "list " only
// matches subcommands of list.
func (c *Completer) Complete(prefix string) []string {
	norm := strings.Join(strings.Fields(prefix), " ")
	if strings.HasSuffix(prefix, " ") && norm != "" {
		norm += " "
	}

	var suggestions []string
	for _, cmd := range c.commands {
		if strings.HasPrefix(cmd, norm) {
			suggestions = append(suggestions, cmd)
		}
	}
	return suggestions
}
