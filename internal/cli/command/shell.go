package command

import (
	"context"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/ultron-cli/internal/cli/prompt"
	"github.com/yndnr/ultron-cli/internal/cli/repl"
	"github.com/yndnr/ultron-cli/internal/core/domain"
)

// ShellCommand returns the interactive shell command.
func ShellCommand() *cli.Command {
	return &cli.Command{
		Name:   "shell",
		Usage:  "Start an interactive shell",
		Action: shellAction,
	}
}

func shellAction(c *cli.Context) error {
	rt, err := GetRuntime(c)
	if err != nil {
		return err
	}

	historyFile := rt.Prefs.HistoryFile
	if historyFile == "" {
		historyFile = repl.DefaultHistoryFile()
	}
	inherited := inheritedFlags(c)
	// Prompts of the commands run by the shell read from the same buffer.
	in := prompt.NewInput(c.App.Reader)

	r := repl.New(repl.Options{
		In:          in.Reader,
		Out:         c.App.Writer,
		Err:         c.App.ErrWriter,
		HistoryFile: historyFile,
		Commands:    CommandPaths(Commands()),
		Exec: func(ctx context.Context, args []string) error {
			if args[0] == "shell" {
				return domain.ErrValidation.WithMessage("already in the shell")
			}
			// Each line runs on a fresh app so the session and preferences
			// are reloaded from disk.
			app := App()
			app.Reader = in
			app.Writer = c.App.Writer
			app.ErrWriter = c.App.ErrWriter
			argv := append([]string{c.App.Name}, inherited...)
			return app.RunContext(ctx, append(argv, args...))
		},
	})

	rt.Printer.Infof("Ultron shell %s. Type \"help\" for commands, \"exit\" to quit.", c.App.Version)
	return r.Run(c.Context)
}

// inheritedFlags returns the global flags of the outer invocation so they
// apply to every shell line.
func inheritedFlags(c *cli.Context) []string {
	var args []string
	for _, name := range []string{"output", "session-file", "config"} {
		if c.IsSet(name) {
			args = append(args, "--"+name, c.String(name))
		}
	}
	for _, name := range []string{"verbose", "no-color"} {
		if c.Bool(name) {
			args = append(args, "--"+name)
		}
	}
	return args
}

// CommandPaths lists every command path of the tree, e.g. "list admins"
// and "append clients to group".
func CommandPaths(cmds []*cli.Command) []string {
	var paths []string
	var walk func(prefix []string, cmds []*cli.Command)
	walk = func(prefix []string, cmds []*cli.Command) {
		for _, cmd := range cmds {
			path := append(append([]string(nil), prefix...), cmd.Name)
			paths = append(paths, strings.Join(path, " "))
			walk(path, cmd.Subcommands)
		}
	}
	walk(nil, cmds)
	return paths
}
