package command

import (
	"github.com/urfave/cli/v2"

	"github.com/yndnr/ultron-cli/internal/core/service"
)

func clientFlags() []cli.Flag {
	return append(scopeFlags(), propsFlag())
}

func newClientsCommand() *cli.Command {
	return &cli.Command{
		Name:      "clients",
		Usage:     "Add new clients to an inventory",
		ArgsUsage: "[NAME...]",
		Flags:     clientFlags(),
		Action:    createAction(service.ClientKind, propsAttrs),
	}
}

func listClientsCommand() *cli.Command {
	return &cli.Command{
		Name:  "clients",
		Usage: "List all clients in an inventory",
		Flags: scopeFlags(),
		Action: listAction(service.ClientKind, service.Query{
			Fields:    []string{"name"},
			Dynfields: []string{service.DynGroups},
		}),
	}
}

func showClientCommand() *cli.Command {
	return &cli.Command{
		Name:      "client",
		Usage:     "Show details of a client",
		ArgsUsage: "NAME",
		Flags:     showFlags(true),
		Action:    showAction(service.ClientKind),
	}
}

func updateClientsCommand() *cli.Command {
	return &cli.Command{
		Name:      "clients",
		Usage:     "Update details of existing clients",
		ArgsUsage: "[NAME...]",
		Flags:     clientFlags(),
		Action:    updateAction(service.ClientKind, propsAttrs),
	}
}

func deleteClientsCommand() *cli.Command {
	return &cli.Command{
		Name:      "clients",
		Usage:     "Delete clients from an inventory",
		ArgsUsage: "NAME...",
		Flags:     scopeFlags(),
		Action:    deleteAction(service.ClientKind),
	}
}
