package command

import (
	"github.com/urfave/cli/v2"

	"github.com/yndnr/ultron-cli/internal/cli/output"
	"github.com/yndnr/ultron-cli/internal/core/domain"
)

// ConnectCommand returns the connect command.
func ConnectCommand() *cli.Command {
	return &cli.Command{
		Name:      "connect",
		Usage:     "Connect to the Ultron API and save the session",
		ArgsUsage: "[ENDPOINT]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "username",
				Aliases: []string{"u"},
				Usage:   "Admin username",
			},
			&cli.StringFlag{
				Name:    "password",
				Aliases: []string{"p"},
				Usage:   "Admin password",
			},
			&cli.StringFlag{
				Name:    "inventory",
				Aliases: []string{"i"},
				Usage:   "Default inventory",
			},
			&cli.StringFlag{
				Name:    "certfile",
				Aliases: []string{"c"},
				Usage:   "CA bundle used to verify the server (default: no verification)",
			},
		},
		Action: connectAction,
	}
}

func connectAction(c *cli.Context) error {
	rt, err := GetRuntime(c)
	if err != nil {
		return err
	}

	// Prompts default to the current session; a broken session file only
	// loses the defaults.
	current, _ := rt.Session()
	if current == nil {
		current = &domain.Session{}
	}

	candidate := &domain.Session{CertFile: c.String("certfile")}
	if candidate.Endpoint = c.Args().First(); candidate.Endpoint == "" {
		if candidate.Endpoint, err = rt.Prompt.Line("API endpoint", current.Endpoint); err != nil {
			return err
		}
	}
	if candidate.Username = c.String("username"); candidate.Username == "" {
		if candidate.Username, err = rt.Prompt.Line("Username", current.Username); err != nil {
			return err
		}
	}
	if candidate.Password = c.String("password"); candidate.Password == "" {
		if candidate.Password, err = rt.Prompt.Password("Password", current.Password); err != nil {
			return err
		}
	}
	if c.IsSet("inventory") {
		candidate.Inventory = c.String("inventory")
	} else if candidate.Inventory, err = rt.Prompt.Line("Default inventory", current.Inventory); err != nil {
		return err
	}

	rt.Log.Info("connecting", "endpoint", candidate.BaseURL(), "username", candidate.Username)
	spinner := output.NewSpinner(c.App.ErrWriter, "Connecting to "+candidate.BaseURL()+"...")
	spinner.Start()
	err = rt.Manager.Connect(c.Context, candidate)
	spinner.Stop()
	if err != nil {
		return err
	}

	rt.Printer.Successf("Connected to %s as %s", candidate.BaseURL(), candidate.Username)
	return nil
}

// DisconnectCommand returns the disconnect command.
func DisconnectCommand() *cli.Command {
	return &cli.Command{
		Name:   "disconnect",
		Usage:  "Disconnect and remove the saved session",
		Action: disconnectAction,
	}
}

func disconnectAction(c *cli.Context) error {
	rt, err := GetRuntime(c)
	if err != nil {
		return err
	}

	if err := rt.Manager.Disconnect(); err != nil {
		return err
	}
	rt.Printer.Successf("Disconnected from Ultron API")
	return nil
}

// InventoryCommand returns the command setting the default inventory.
func InventoryCommand() *cli.Command {
	return &cli.Command{
		Name:      "inventory",
		Usage:     "Set the default inventory",
		ArgsUsage: "NAME",
		Action: func(c *cli.Context) error {
			rt, err := GetRuntime(c)
			if err != nil {
				return err
			}

			sess, err := rt.Manager.SetInventory(c.Args().First())
			if err != nil {
				return err
			}
			rt.Printer.Successf("Default inventory is set to %s", sess.Inventory)
			return nil
		},
	}
}
