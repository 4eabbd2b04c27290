package command

import (
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/ultron-cli/internal/core/domain"
	"github.com/yndnr/ultron-cli/internal/core/service"
)

func groupFlags(update bool) []cli.Flag {
	flags := append(scopeFlags(),
		&cli.StringSliceFlag{
			Name:    "clients",
			Aliases: []string{"C"},
			Usage:   "Member client, repeat -C per client or comma-separate: -C a,b",
		},
		&cli.StringFlag{
			Name:    "description",
			Aliases: []string{"D"},
			Usage:   "Group description",
		},
		propsFlag(),
	)
	if update {
		flags = append(flags, &cli.BoolFlag{
			Name:    "remove",
			Aliases: []string{"R"},
			Usage:   "Remove the given clients instead of adding them",
		})
	}
	return flags
}

func groupAttrs(c *cli.Context) (service.Attrs, error) {
	a, err := propsAttrs(c)
	if err != nil {
		return a, err
	}
	a.Clients = service.SplitNames(c.StringSlice("clients"))
	if c.IsSet("description") {
		desc := c.String("description")
		a.Description = &desc
	}
	if c.Bool("remove") {
		if len(a.Clients) == 0 {
			return a, domain.ErrValidation.WithMessage("--remove needs clients, pass -C")
		}
		a.Remove = true
	}
	return a, nil
}

func newGroupsCommand() *cli.Command {
	return &cli.Command{
		Name:      "groups",
		Usage:     "Add new groups to an inventory",
		ArgsUsage: "[NAME...]",
		Flags:     groupFlags(false),
		Action:    createAction(service.GroupKind, groupAttrs),
	}
}

func listGroupsCommand() *cli.Command {
	return &cli.Command{
		Name:   "groups",
		Usage:  "List all groups in an inventory",
		Flags:  scopeFlags(),
		Action: listAction(service.GroupKind, service.Query{Fields: []string{"name"}}),
	}
}

func showGroupCommand() *cli.Command {
	return &cli.Command{
		Name:      "group",
		Usage:     "Show details of a group",
		ArgsUsage: "NAME",
		Flags:     showFlags(true),
		Action:    showAction(service.GroupKind),
	}
}

func updateGroupsCommand() *cli.Command {
	return &cli.Command{
		Name:      "groups",
		Usage:     "Update details of existing groups",
		ArgsUsage: "[NAME...]",
		Flags:     groupFlags(true),
		Action:    updateAction(service.GroupKind, groupAttrs),
	}
}

func deleteGroupsCommand() *cli.Command {
	return &cli.Command{
		Name:      "groups",
		Usage:     "Delete groups from an inventory",
		ArgsUsage: "NAME...",
		Flags:     scopeFlags(),
		Action:    deleteAction(service.GroupKind),
	}
}

// AppendCommand returns the "append clients to group" command.
func AppendCommand() *cli.Command {
	return membershipCommand("append", "to", "Add clients to a group", false)
}

// RemoveCommand returns the "remove clients from group" command.
func RemoveCommand() *cli.Command {
	return membershipCommand("remove", "from", "Remove clients from a group", true)
}

func membershipCommand(verb, preposition, usage string, remove bool) *cli.Command {
	group := &cli.Command{
		Name:      "group",
		Usage:     usage,
		ArgsUsage: "GROUP CLIENT...",
		Flags:     scopeFlags(),
		Action: func(c *cli.Context) error {
			args := c.Args().Slice()
			if len(args) < 2 {
				return domain.ErrValidation.WithMessage("usage: " + verb + " clients " + preposition + " group GROUP CLIENT...")
			}

			rt, sess, api, err := connected(c)
			if err != nil {
				return err
			}

			groups := service.NewGroups(api)
			clients := service.SplitNames(args[1:])
			scope := scopeOf(c, sess)
			if remove {
				err = groups.RemoveClients(c.Context, scope, args[:1], clients)
			} else {
				err = groups.AppendClients(c.Context, scope, args[:1], clients)
			}
			if err != nil {
				return err
			}
			rt.Printer.Successf("Updated group %s: %s", args[0], strings.Join(clients, ", "))
			return nil
		},
	}

	return &cli.Command{
		Name:  verb,
		Usage: usage,
		Subcommands: []*cli.Command{{
			Name:        "clients",
			Usage:       usage,
			Subcommands: []*cli.Command{{Name: preposition, Usage: usage, Subcommands: []*cli.Command{group}}},
		}},
	}
}
