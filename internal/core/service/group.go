package service

import (
	"context"

	"github.com/yndnr/ultron-cli/internal/core/domain"
)

// Groups wraps the group collection with membership shortcuts.
type Groups struct {
	*Resources
}

// NewGroups creates the group resource client.
func NewGroups(api API) *Groups {
	return &Groups{Resources: NewResources(api, GroupKind)}
}

// AppendClients adds clients to every named group.
func (g *Groups) AppendClients(ctx context.Context, scope domain.Scope, groups, clients []string) error {
	return g.members(ctx, scope, groups, clients, false)
}

// RemoveClients removes clients from every named group.
func (g *Groups) RemoveClients(ctx context.Context, scope domain.Scope, groups, clients []string) error {
	return g.members(ctx, scope, groups, clients, true)
}

func (g *Groups) members(ctx context.Context, scope domain.Scope, groups, clients []string, remove bool) error {
	clients = Dedup(clients)
	if len(clients) == 0 {
		return domain.ErrValidation.WithMessage("no clients given")
	}
	return g.Update(ctx, scope, groups, Attrs{Clients: clients, Remove: remove})
}
