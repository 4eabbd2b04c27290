package command

import (
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/ultron-cli/internal/core/domain"
	"github.com/yndnr/ultron-cli/internal/core/service"
)

// attrsFunc reads the optional create/update fields of a command.
type attrsFunc func(c *cli.Context) (service.Attrs, error)

// NewCommand returns the new command group.
func NewCommand() *cli.Command {
	return &cli.Command{
		Name:        "new",
		Usage:       "Create admins, clients or groups",
		Subcommands: []*cli.Command{newAdminsCommand(), newClientsCommand(), newGroupsCommand()},
	}
}

// ListCommand returns the list command group.
func ListCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List admins, clients, groups, allowed tasks or inventories",
		Subcommands: []*cli.Command{
			listAdminsCommand(),
			listClientsCommand(),
			listGroupsCommand(),
			listTasksCommand(),
			listInventoriesCommand(),
		},
	}
}

// ShowCommand returns the show command group.
func ShowCommand() *cli.Command {
	return &cli.Command{
		Name:        "show",
		Usage:       "Show details of an admin, client or group",
		Subcommands: []*cli.Command{showAdminCommand(), showClientCommand(), showGroupCommand()},
	}
}

// UpdateCommand returns the update command group.
func UpdateCommand() *cli.Command {
	return &cli.Command{
		Name:        "update",
		Usage:       "Update existing admins, clients or groups",
		Subcommands: []*cli.Command{updateAdminsCommand(), updateClientsCommand(), updateGroupsCommand()},
	}
}

// DeleteCommand returns the delete command group.
func DeleteCommand() *cli.Command {
	return &cli.Command{
		Name:        "delete",
		Usage:       "Delete admins, clients or groups",
		Subcommands: []*cli.Command{deleteAdminsCommand(), deleteClientsCommand(), deleteGroupsCommand()},
	}
}

func showFlags(scoped bool) []cli.Flag {
	flags := []cli.Flag{
		&cli.StringSliceFlag{
			Name:    "fields",
			Aliases: []string{"F"},
			Usage:   "Fields to show, repeatable",
		},
		&cli.StringSliceFlag{
			Name:    "dynfields",
			Aliases: []string{"D"},
			Usage:   "Dynamic fields to compute, repeatable",
		},
	}
	if scoped {
		flags = append(flags, scopeFlags()...)
	}
	return flags
}

// resourceScope returns the scope of kind: none for admins, the -A/-I
// flags with session defaults otherwise.
func resourceScope(c *cli.Context, kind service.Kind, sess *domain.Session) domain.Scope {
	if !kind.Scoped {
		return domain.Scope{}
	}
	return scopeOf(c, sess)
}

func listAction(kind service.Kind, q service.Query) cli.ActionFunc {
	return func(c *cli.Context) error {
		rt, sess, api, err := connected(c)
		if err != nil {
			return err
		}

		found, err := service.NewResources(api, kind).List(c.Context, resourceScope(c, kind, sess), q)
		if err != nil {
			return err
		}
		return render(c, rt, found)
	}
}

func showAction(kind service.Kind) cli.ActionFunc {
	return func(c *cli.Context) error {
		name := c.Args().First()
		if name == "" {
			return domain.ErrValidation.WithMessage(kind.Singular + " name is required")
		}

		rt, sess, api, err := connected(c)
		if err != nil {
			return err
		}

		rec, err := service.NewResources(api, kind).Show(c.Context, resourceScope(c, kind, sess), name,
			service.SplitNames(c.StringSlice("fields")), service.SplitNames(c.StringSlice("dynfields")))
		if err != nil {
			return err
		}
		return render(c, rt, rec)
	}
}

func createAction(kind service.Kind, attrs attrsFunc) cli.ActionFunc {
	return func(c *cli.Context) error {
		rt, sess, api, err := connected(c)
		if err != nil {
			return err
		}

		a, err := attrs(c)
		if err != nil {
			return err
		}
		names, err := service.ResolveNames(c.Args().Slice(), rt.Prompt.NameSource(kind.Name))
		if err != nil {
			return err
		}

		created, err := service.NewResources(api, kind).Create(c.Context, resourceScope(c, kind, sess), names, a)
		if err != nil {
			return err
		}
		rt.Printer.Successf("Created %s: %s", kind.Name, strings.Join(created, ", "))
		return nil
	}
}

func updateAction(kind service.Kind, attrs attrsFunc) cli.ActionFunc {
	return func(c *cli.Context) error {
		rt, sess, api, err := connected(c)
		if err != nil {
			return err
		}

		a, err := attrs(c)
		if err != nil {
			return err
		}
		names, err := service.ResolveNames(c.Args().Slice(), rt.Prompt.NameSource(kind.Name))
		if err != nil {
			return err
		}

		if err := service.NewResources(api, kind).Update(c.Context, resourceScope(c, kind, sess), names, a); err != nil {
			return err
		}
		rt.Printer.Successf("Updated %s: %s", kind.Name, strings.Join(names, ", "))
		return nil
	}
}

func deleteAction(kind service.Kind) cli.ActionFunc {
	return func(c *cli.Context) error {
		rt, sess, api, err := connected(c)
		if err != nil {
			return err
		}

		names := service.SplitNames(c.Args().Slice())
		if err := service.NewResources(api, kind).Delete(c.Context, resourceScope(c, kind, sess), names); err != nil {
			return err
		}
		rt.Printer.Successf("Deleted %s: %s", kind.Name, strings.Join(names, ", "))
		return nil
	}
}

// propsAttrs parses the -P flags.
func propsAttrs(c *cli.Context) (service.Attrs, error) {
	var a service.Attrs
	if tokens := c.StringSlice("props"); len(tokens) > 0 {
		props, err := service.ParseProps(tokens)
		if err != nil {
			return a, err
		}
		a.Props = props
	}
	return a, nil
}
