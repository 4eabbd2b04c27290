package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/ultron-cli/internal/cli/config"
	"github.com/yndnr/ultron-cli/internal/cli/connection"
	"github.com/yndnr/ultron-cli/internal/cli/output"
	"github.com/yndnr/ultron-cli/internal/cli/prompt"
	"github.com/yndnr/ultron-cli/internal/cli/session"
	"github.com/yndnr/ultron-cli/internal/core/domain"
	"github.com/yndnr/ultron-cli/internal/core/service"
	"github.com/yndnr/ultron-cli/internal/infra/buildinfo"
	"github.com/yndnr/ultron-cli/internal/telemetry/logger"
)

// runtimeKey is the App.Metadata key holding the per-invocation state.
const runtimeKey = "runtime"

// Runtime is the state prepared by the root Before hook and shared with
// every command handler.
type Runtime struct {
	Prefs   *config.CLIConfig
	Store   *session.Store
	Manager *connection.Manager
	Format  output.Format
	Printer *output.Printer
	Prompt  *prompt.Prompter
	Log     logger.Logger

	session    *domain.Session
	sessionErr error
}

// Session returns the session loaded at startup, or the load error.
func (rt *Runtime) Session() (*domain.Session, error) {
	return rt.session, rt.sessionErr
}

// App creates the CLI application. Errors are returned from Run and never
// exit the process, so the caller decides how to report them.
func App() *cli.App {
	return &cli.App{
		Name:                      "ultron",
		Usage:                     "Command-line interface to the Ultron API",
		Version:                   buildinfo.String(),
		Flags:                     globalFlags(),
		Commands:                  Commands(),
		Before:                    before,
		Metadata:                  map[string]any{},
		DisableSliceFlagSeparator: true,
		ExitErrHandler:            func(*cli.Context, error) {},
	}
}

// Commands returns the top-level command set.
func Commands() []*cli.Command {
	return []*cli.Command{
		ConnectCommand(),
		DisconnectCommand(),
		InventoryCommand(),
		NewCommand(),
		ListCommand(),
		ShowCommand(),
		UpdateCommand(),
		DeleteCommand(),
		AppendCommand(),
		RemoveCommand(),
		PerformCommand(),
		SubmitCommand(),
		StatCommand(),
		FilterCommand(),
		ShellCommand(),
	}
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: table, json, yaml",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"V"},
			Usage:   "Enable debug logging",
		},
		&cli.StringFlag{
			Name:    "session-file",
			Usage:   "Session file path",
			EnvVars: []string{"ULTRON_SESSION_FILE"},
			Value:   session.DefaultPath(),
		},
		&cli.StringFlag{
			Name:    "config",
			Usage:   "CLI preferences file",
			EnvVars: []string{"ULTRON_CONFIG"},
			Value:   config.DefaultConfigPath(),
		},
		&cli.BoolFlag{
			Name:  "no-color",
			Usage: "Disable coloured output",
		},
	}
}

// flagOverrides maps the global flags the user set onto preference keys.
func flagOverrides(c *cli.Context) map[string]any {
	overrides := make(map[string]any)
	if c.IsSet("output") {
		overrides["output"] = c.String("output")
	}
	if c.Bool("verbose") {
		overrides["log_level"] = "debug"
	}
	if c.Bool("no-color") {
		overrides["color"] = false
	}
	return overrides
}

func before(c *cli.Context) error {
	prefs, err := config.Load(c.String("config"), flagOverrides(c))
	if err != nil {
		return fmt.Errorf("load preferences: %w", err)
	}

	log, err := logger.New(logger.Config{Level: prefs.LogLevel, Format: prefs.LogFormat, Output: c.App.ErrWriter})
	if err != nil {
		return err
	}
	logger.SetDefault(log)

	f, err := output.ParseFormat(prefs.Output)
	if err != nil {
		return err
	}

	store := session.NewStore(c.String("session-file"))
	if wrote, err := store.Bootstrap(); err != nil {
		log.Warn("session bootstrap failed", "path", store.Path(), "error", err)
	} else if wrote {
		log.Debug("placeholder session written", "path", store.Path())
	}

	rt := &Runtime{
		Prefs:   prefs,
		Store:   store,
		Manager: connection.NewManager(store, connection.WithTimeout(prefs.Timeout)),
		Format:  f,
		Printer: output.NewPrinter(c.App.Writer, c.App.ErrWriter, !prefs.Color),
		Prompt:  prompt.New(c.App.Reader, c.App.ErrWriter),
		Log:     log,
	}
	rt.session, rt.sessionErr = store.Load()

	c.Context = logger.WithLogger(c.Context, log)
	c.App.Metadata[runtimeKey] = rt
	return nil
}

// GetRuntime retrieves the runtime prepared by the Before hook.
func GetRuntime(c *cli.Context) (*Runtime, error) {
	if rt, ok := c.App.Metadata[runtimeKey].(*Runtime); ok {
		return rt, nil
	}
	return nil, fmt.Errorf("runtime not initialized")
}

// scopeFlags are the -A/-I flags of commands working on clients and groups.
func scopeFlags() []cli.Flag {
	return []cli.Flag{
		adminFlag(),
		&cli.StringFlag{
			Name:    "inventory",
			Aliases: []string{"I"},
			Usage:   "Inventory (default: the session inventory)",
		},
	}
}

func adminFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "admin",
		Aliases: []string{"A"},
		Usage:   "Admin owning the inventory (default: the session user)",
	}
}

func propsFlag() cli.Flag {
	return &cli.StringSliceFlag{
		Name:    "props",
		Aliases: []string{"P"},
		Usage:   "Property as key=value, repeat -P per pair: -P a=1 -P b=2",
	}
}

// connected returns the runtime, the loaded session and an API client.
func connected(c *cli.Context) (*Runtime, *domain.Session, service.API, error) {
	rt, err := GetRuntime(c)
	if err != nil {
		return nil, nil, nil, err
	}
	sess, err := rt.Session()
	if err != nil {
		return nil, nil, nil, err
	}
	api, err := rt.Manager.Client(sess)
	if err != nil {
		return nil, nil, nil, err
	}
	return rt, sess, api, nil
}

func scopeOf(c *cli.Context, sess *domain.Session) domain.Scope {
	return sess.ScopeFor(c.String("admin"), c.String("inventory"))
}

// render writes data in the selected output format.
func render(c *cli.Context, rt *Runtime, data any) error {
	return output.NewFormatter(rt.Format).Format(c.App.Writer, data)
}

// renderTable writes table in table format and data otherwise.
func renderTable(c *cli.Context, rt *Runtime, table *output.Table, data any) error {
	if rt.Format == output.FormatTable {
		return render(c, rt, table)
	}
	return render(c, rt, data)
}
