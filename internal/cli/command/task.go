package command

import (
	"github.com/urfave/cli/v2"

	"github.com/yndnr/ultron-cli/internal/cli/output"
	"github.com/yndnr/ultron-cli/internal/core/domain"
	"github.com/yndnr/ultron-cli/internal/core/service"
)

func dispatchFlags() []cli.Flag {
	return append(scopeFlags(),
		&cli.BoolFlag{
			Name:    "synchronous",
			Aliases: []string{"S"},
			Usage:   "Wait for the task to finish on the server",
		},
		&cli.StringSliceFlag{
			Name:    "kwargs",
			Aliases: []string{"K"},
			Usage:   `Task arguments: one flat JSON object, e.g. -K '{"count": 3}', or key=value with -K repeated per pair`,
		},
	)
}

// SubmitCommand returns the "submit task" command.
func SubmitCommand() *cli.Command {
	return &cli.Command{
		Name:  "submit",
		Usage: "Submit tasks",
		Subcommands: []*cli.Command{
			{
				Name:      "task",
				Usage:     "Submit a task to clients, groups or the whole inventory",
				ArgsUsage: "TASK",
				Flags: append(dispatchFlags(),
					&cli.StringSliceFlag{
						Name:    "clients",
						Aliases: []string{"C"},
						Usage:   "Target client, repeat -C per client or comma-separate: -C a,b",
					},
					&cli.StringSliceFlag{
						Name:    "groups",
						Aliases: []string{"G"},
						Usage:   "Target group, repeat -G per group or comma-separate: -G a,b",
					},
				),
				Action: func(c *cli.Context) error {
					return dispatch(c, service.SplitNames(c.StringSlice("clients")), service.SplitNames(c.StringSlice("groups")))
				},
			},
		},
	}
}

// PerformCommand returns the "perform on clients|group" commands.
func PerformCommand() *cli.Command {
	return &cli.Command{
		Name:  "perform",
		Usage: "Perform a task",
		Subcommands: []*cli.Command{
			{
				Name:  "on",
				Usage: "Perform a task on clients or a group",
				Subcommands: []*cli.Command{
					{
						Name:      "clients",
						Usage:     "Perform a task on clients, all of the inventory when none are given",
						ArgsUsage: "TASK [CLIENT...]",
						Flags:     dispatchFlags(),
						Action: func(c *cli.Context) error {
							return dispatch(c, service.SplitNames(c.Args().Tail()), nil)
						},
					},
					{
						Name:      "group",
						Usage:     "Perform a task on the clients of a group",
						ArgsUsage: "TASK GROUP",
						Flags:     dispatchFlags(),
						Action: func(c *cli.Context) error {
							group := c.Args().Get(1)
							if group == "" {
								return domain.ErrValidation.WithMessage("group name is required")
							}
							return dispatch(c, nil, []string{group})
						},
					},
				},
			},
		},
	}
}

// dispatch submits the task named by the first argument.
func dispatch(c *cli.Context, clients, groups []string) error {
	rt, sess, api, err := connected(c)
	if err != nil {
		return err
	}

	kwargs, err := service.ParseKwargs(c.StringSlice("kwargs"))
	if err != nil {
		return err
	}

	sub := service.Submission{
		Task:    c.Args().First(),
		Scope:   scopeOf(c, sess),
		Clients: clients,
		Groups:  groups,
		Sync:    c.Bool("synchronous"),
		Kwargs:  kwargs,
	}
	if err := sub.Validate(); err != nil {
		return err
	}

	var spinner *output.Spinner
	if sub.Sync {
		spinner = output.NewSpinner(c.App.ErrWriter, "Running "+sub.Task+"...")
		spinner.Start()
	}
	result, err := service.NewDispatcher(api).Submit(c.Context, sub)
	if spinner != nil {
		if err != nil {
			spinner.Fail(sub.Task + " failed")
		} else {
			spinner.Success(sub.Task + " finished")
		}
	}
	if err != nil {
		return err
	}

	rt.Log.Debug("task submitted", "task", sub.Task, "sync", sub.Sync, "admin", sub.Scope.Admin, "inventory", sub.Scope.Inventory)
	rt.Printer.Successf("Submitted task %s", sub.Task)
	if sub.Sync && !result.IsNull() {
		return render(c, rt, result)
	}
	return nil
}
