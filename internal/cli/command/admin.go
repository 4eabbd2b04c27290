package command

import (
	"context"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/ultron-cli/internal/cli/output"
	"github.com/yndnr/ultron-cli/internal/core/service"
)

func adminFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "password",
			Aliases: []string{"p"},
			Usage:   "Admin password",
		},
		propsFlag(),
	}
}

func adminAttrs(c *cli.Context) (service.Attrs, error) {
	a, err := propsAttrs(c)
	if err != nil {
		return a, err
	}
	a.Password = c.String("password")
	return a, nil
}

func newAdminsCommand() *cli.Command {
	return &cli.Command{
		Name:      "admins",
		Usage:     "Add new admins",
		ArgsUsage: "[NAME...]",
		Flags:     adminFlags(),
		Action:    createAction(service.AdminKind, adminAttrs),
	}
}

func listAdminsCommand() *cli.Command {
	return &cli.Command{
		Name:   "admins",
		Usage:  "List all admins",
		Action: listAction(service.AdminKind, service.Query{Fields: []string{"name"}}),
	}
}

func showAdminCommand() *cli.Command {
	return &cli.Command{
		Name:      "admin",
		Usage:     "Show details of an admin",
		ArgsUsage: "NAME",
		Flags:     showFlags(false),
		Action:    showAction(service.AdminKind),
	}
}

func updateAdminsCommand() *cli.Command {
	return &cli.Command{
		Name:      "admins",
		Usage:     "Update details of existing admins",
		ArgsUsage: "[NAME...]",
		Flags:     adminFlags(),
		Action:    updateAction(service.AdminKind, adminAttrs),
	}
}

func deleteAdminsCommand() *cli.Command {
	return &cli.Command{
		Name:      "admins",
		Usage:     "Delete admins",
		ArgsUsage: "NAME...",
		Action:    deleteAction(service.AdminKind),
	}
}

func listTasksCommand() *cli.Command {
	return &cli.Command{
		Name:   "tasks",
		Usage:  "List the tasks an admin may submit",
		Flags:  []cli.Flag{adminFlag()},
		Action: adminDynAction("ALLOWED_TASKS", (*service.Admins).AllowedTasks),
	}
}

func listInventoriesCommand() *cli.Command {
	return &cli.Command{
		Name:   "inventories",
		Usage:  "List the inventories of an admin",
		Flags:  []cli.Flag{adminFlag()},
		Action: adminDynAction("INVENTORIES", (*service.Admins).Inventories),
	}
}

type adminDynFunc func(a *service.Admins, ctx context.Context, admin string) ([]string, error)

func adminDynAction(header string, fetch adminDynFunc) cli.ActionFunc {
	return func(c *cli.Context) error {
		rt, sess, api, err := connected(c)
		if err != nil {
			return err
		}

		admin := c.String("admin")
		if admin == "" {
			admin = sess.Username
		}
		items, err := fetch(service.NewAdmins(api), c.Context, admin)
		if err != nil {
			return err
		}
		return renderTable(c, rt, output.ListTable(header, items), items)
	}
}
