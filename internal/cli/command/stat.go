package command

import (
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/ultron-cli/internal/cli/output"
	"github.com/yndnr/ultron-cli/internal/core/domain"
	"github.com/yndnr/ultron-cli/internal/core/service"
)

// StatCommand returns the stat command group.
func StatCommand() *cli.Command {
	return &cli.Command{
		Name:  "stat",
		Usage: "Aggregate task results, states and props across clients",
		Subcommands: []*cli.Command{
			{
				Name:      "tasks",
				Usage:     "Count task results per status",
				ArgsUsage: "[TASK...]",
				Flags:     scopeFlags(),
				Action:    statTasksAction,
			},
			{
				Name:      "states",
				Usage:     "Count client state values",
				ArgsUsage: "[STATE...]",
				Flags:     scopeFlags(),
				Action:    histogramAction(service.FieldState),
			},
			{
				Name:      "props",
				Usage:     "Count client prop values",
				ArgsUsage: "[PROP...]",
				Flags:     scopeFlags(),
				Action:    histogramAction(service.FieldProps),
			},
		},
	}
}

// FilterCommand returns the filter command group.
func FilterCommand() *cli.Command {
	return &cli.Command{
		Name:  "filter",
		Usage: "Find clients by task result, state or prop",
		Subcommands: []*cli.Command{
			{
				Name:      "task",
				Usage:     `Find clients whose task status is VALUE ("performed on" matches any)`,
				ArgsUsage: "TASK VALUE",
				Flags:     scopeFlags(),
				Action: filterAction(func(clients *domain.Entities, key, value string) *domain.Entities {
					return service.FilterByTask(clients, key, value)
				}),
			},
			{
				Name:      "state",
				Usage:     "Find clients whose state STATE is VALUE",
				ArgsUsage: "STATE VALUE",
				Flags:     scopeFlags(),
				Action: filterAction(func(clients *domain.Entities, key, value string) *domain.Entities {
					return service.FilterByField(clients, service.FieldState, key, value)
				}),
			},
			{
				Name:      "prop",
				Usage:     "Find clients whose prop PROP is VALUE",
				ArgsUsage: "PROP VALUE",
				Flags:     scopeFlags(),
				Action: filterAction(func(clients *domain.Entities, key, value string) *domain.Entities {
					return service.FilterByField(clients, service.FieldProps, key, value)
				}),
			},
		},
	}
}

// fetchClients loads every client of the scope for aggregation.
func fetchClients(c *cli.Context) (*Runtime, *domain.Entities, error) {
	rt, sess, api, err := connected(c)
	if err != nil {
		return nil, nil, err
	}
	clients, err := service.NewStats(api).Fetch(c.Context, scopeOf(c, sess))
	if err != nil {
		return nil, nil, err
	}
	return rt, clients, nil
}

func statTasksAction(c *cli.Context) error {
	rt, clients, err := fetchClients(c)
	if err != nil {
		return err
	}

	stats := service.TaskStats(clients, service.SplitNames(c.Args().Slice()))
	table := &output.Table{Headers: []string{"TASK", "PERFORMED_ON", "SUCCESS", "FAILED", "PENDING"}}
	for _, s := range stats {
		table.AddRow(s.Task,
			strconv.Itoa(s.Counts.PerformedOn),
			strconv.Itoa(s.Counts.Success),
			strconv.Itoa(s.Counts.Failed),
			strconv.Itoa(s.Counts.Pending))
	}
	return renderTable(c, rt, table, stats)
}

func histogramAction(field string) cli.ActionFunc {
	return func(c *cli.Context) error {
		rt, clients, err := fetchClients(c)
		if err != nil {
			return err
		}

		hists := service.Histograms(clients, field, service.SplitNames(c.Args().Slice()))
		table := &output.Table{Headers: []string{"KEY", "VALUE", "COUNT"}}
		for _, h := range hists {
			for _, v := range h.Values {
				table.AddRow(h.Key, v.Value, strconv.Itoa(v.Count))
			}
		}
		return renderTable(c, rt, table, hists)
	}
}

type filterFunc func(clients *domain.Entities, key, value string) *domain.Entities

func filterAction(match filterFunc) cli.ActionFunc {
	return func(c *cli.Context) error {
		if c.NArg() != 2 {
			return domain.ErrValidation.WithMessage("expected exactly two arguments: KEY VALUE")
		}

		rt, clients, err := fetchClients(c)
		if err != nil {
			return err
		}

		found := match(clients, c.Args().Get(0), c.Args().Get(1))
		names := found.Names()
		if names == nil {
			names = []string{}
		}
		return renderTable(c, rt, output.ListTable("NAME", names), names)
	}
}
