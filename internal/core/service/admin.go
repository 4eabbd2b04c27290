package service

import (
	"context"
	"net/url"

	"github.com/yndnr/ultron-cli/internal/core/domain"
)

// Admin dynfields.
const (
	DynAllowedTasks = "allowed_tasks"
	DynInventories  = "inventories"
	DynGroups       = "groups"
)

// Admins wraps the admin collection with the admin-only queries.
type Admins struct {
	*Resources
}

// NewAdmins creates the admin resource client.
func NewAdmins(api API) *Admins {
	return &Admins{Resources: NewResources(api, AdminKind)}
}

// AllowedTasks returns the tasks admin may submit.
func (a *Admins) AllowedTasks(ctx context.Context, admin string) ([]string, error) {
	return a.dynList(ctx, admin, DynAllowedTasks)
}

// Inventories returns the inventories owned by admin.
func (a *Admins) Inventories(ctx context.Context, admin string) ([]string, error) {
	return a.dynList(ctx, admin, DynInventories)
}

func (a *Admins) dynList(ctx context.Context, admin, field string) ([]string, error) {
	if admin == "" {
		return nil, domain.ErrValidation.WithMessage("admin is required")
	}
	rec, err := a.Show(ctx, domain.Scope{}, admin, []string{"name"}, []string{field})
	if err != nil {
		return nil, err
	}
	v, ok := rec.Get(field)
	if !ok || v.IsNull() {
		return nil, domain.ErrNotFound.WithMessage(field + " not found").WithNames([]string{admin})
	}
	return v.Strings(), nil
}

// Probe reads the admin's own record. The connection manager uses it to
// validate credentials before a session is saved.
func Probe(ctx context.Context, api API, admin string) error {
	_, err := api.Get(ctx, AdminKind.EntityPath(domain.Scope{}, admin), url.Values{})
	return err
}
