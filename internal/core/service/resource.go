package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/yndnr/ultron-cli/internal/core/domain"
)

// API is the remote Ultron API as seen by the services. Each call returns
// the raw JSON of the response's "result" member. Non-2xx responses are
// reported as domain remote errors.
type API interface {
	Get(ctx context.Context, path string, query url.Values) ([]byte, error)
	Post(ctx context.Context, path string, form url.Values) ([]byte, error)
	Delete(ctx context.Context, path string, form url.Values) ([]byte, error)
}

// Kind describes one remote resource collection.
type Kind struct {
	// Name is the collection path segment and plural noun, e.g. "clients".
	Name string
	// Singular is used in messages about a single entity.
	Singular string
	// NamesParam is the query/form field carrying a comma-joined name list.
	NamesParam string
	// Scoped collections live under /<name>/<admin>/<inventory>.
	Scoped bool
}

var (
	AdminKind  = Kind{Name: "admins", Singular: "admin", NamesParam: "adminnames"}
	ClientKind = Kind{Name: "clients", Singular: "client", NamesParam: "clientnames", Scoped: true}
	GroupKind  = Kind{Name: "groups", Singular: "group", NamesParam: "groupnames", Scoped: true}
)

// Path returns the collection path for the scope.
func (k Kind) Path(scope domain.Scope) string {
	if !k.Scoped {
		return "/" + k.Name
	}
	return "/" + k.Name + "/" + url.PathEscape(scope.Admin) + "/" + url.PathEscape(scope.Inventory)
}

// EntityPath returns the path of a single entity.
func (k Kind) EntityPath(scope domain.Scope, name string) string {
	return k.Path(scope) + "/" + url.PathEscape(name)
}

func (k Kind) validate(scope domain.Scope) error {
	if !k.Scoped {
		return nil
	}
	return scope.Validate()
}

// Query selects and projects entities of a collection.
type Query struct {
	Names     []string
	Fields    []string
	Dynfields []string
}

func (q Query) values(k Kind) url.Values {
	v := url.Values{}
	if names := Dedup(q.Names); len(names) > 0 {
		v.Set(k.NamesParam, joinNames(names))
	}
	if len(q.Fields) > 0 {
		v.Set("fields", strings.Join(q.Fields, ","))
	}
	if len(q.Dynfields) > 0 {
		v.Set("dynfields", strings.Join(q.Dynfields, ","))
	}
	return v
}

// Attrs are the optional fields of a create or update request. Zero
// fields are omitted, so an update only touches what is set.
type Attrs struct {
	// Password is the initial or new admin password.
	Password string
	// Props are free-form key/value properties.
	Props map[string]string
	// Description is the group description. Nil leaves it unchanged.
	Description *string
	// Clients are group members to add, or to remove when Remove is set.
	Clients []string
	// Remove turns a group member update into a removal.
	Remove bool
}

func (a Attrs) encode(form url.Values) error {
	if a.Password != "" {
		form.Set("password", a.Password)
	}
	if len(a.Props) > 0 {
		props, err := EncodeProps(a.Props)
		if err != nil {
			return fmt.Errorf("encode props: %w", err)
		}
		form.Set("props", props)
	}
	if a.Description != nil {
		form.Set("description", *a.Description)
	}
	if clients := Dedup(a.Clients); len(clients) > 0 {
		form.Set(ClientKind.NamesParam, joinNames(clients))
	}
	if a.Remove {
		form.Set("action", "remove")
	}
	return nil
}

// Resources implements list/show/new/update/delete for one collection.
type Resources struct {
	api  API
	kind Kind
}

// NewResources creates a resource client for the given collection.
func NewResources(api API, kind Kind) *Resources {
	return &Resources{api: api, kind: kind}
}

// Kind returns the collection handled by r.
func (r *Resources) Kind() Kind {
	return r.kind
}

// List fetches the collection, optionally filtered and projected.
// An empty result set is a not-found error.
func (r *Resources) List(ctx context.Context, scope domain.Scope, q Query) (*domain.Entities, error) {
	found, err := r.fetch(ctx, scope, q)
	if err != nil {
		return nil, err
	}
	if found.Len() == 0 {
		return nil, domain.ErrNotFound.WithMessage(r.kind.Name + " not found")
	}
	return found, nil
}

// Lookup returns which of names exist. It never fails on an empty result.
func (r *Resources) Lookup(ctx context.Context, scope domain.Scope, names []string) (*domain.Entities, error) {
	return r.fetch(ctx, scope, Query{Names: names, Fields: []string{"name"}})
}

func (r *Resources) fetch(ctx context.Context, scope domain.Scope, q Query) (*domain.Entities, error) {
	if err := r.kind.validate(scope); err != nil {
		return nil, err
	}
	raw, err := r.api.Get(ctx, r.kind.Path(scope), q.values(r.kind))
	if err != nil {
		return nil, err
	}
	return domain.DecodeEntities(raw)
}

// Show fetches a single entity with optional projections.
func (r *Resources) Show(ctx context.Context, scope domain.Scope, name string, fields, dynfields []string) (*domain.Record, error) {
	if err := r.kind.validate(scope); err != nil {
		return nil, err
	}
	raw, err := r.api.Get(ctx, r.kind.EntityPath(scope, name), Query{Fields: fields, Dynfields: dynfields}.values(r.kind))
	if err != nil {
		return nil, err
	}
	found, err := domain.DecodeEntities(raw)
	if err != nil {
		return nil, err
	}
	rec, ok := found.Get(name)
	if !ok {
		return nil, domain.ErrNotFound.WithMessage(r.kind.Singular + " not found").WithNames([]string{name})
	}
	return rec, nil
}

// Create creates the named entities. Any name that already exists fails
// the whole request with a duplicate error before anything is written.
// It returns the deduplicated names that were submitted.
func (r *Resources) Create(ctx context.Context, scope domain.Scope, names []string, attrs Attrs) ([]string, error) {
	names = Dedup(names)
	if len(names) == 0 {
		return nil, domain.ErrValidation.WithMessage("no " + r.kind.Name + " given")
	}
	form := url.Values{}
	if err := attrs.encode(form); err != nil {
		return nil, err
	}

	found, err := r.Lookup(ctx, scope, names)
	if err != nil {
		return nil, err
	}
	if found.Len() > 0 {
		dups := Intersect(names, found)
		if len(dups) == 0 {
			dups = found.Names()
		}
		return nil, domain.ErrDuplicate.WithMessage("duplicate " + r.kind.Name).WithNames(dups)
	}

	form.Set(r.kind.NamesParam, joinNames(names))
	if _, err := r.api.Post(ctx, r.kind.Path(scope), form); err != nil {
		return nil, err
	}
	return names, nil
}

// Update applies attrs to the named entities, which must all exist.
func (r *Resources) Update(ctx context.Context, scope domain.Scope, names []string, attrs Attrs) error {
	names = Dedup(names)
	if len(names) == 0 {
		return domain.ErrValidation.WithMessage("no " + r.kind.Name + " given")
	}
	form := url.Values{}
	if err := attrs.encode(form); err != nil {
		return err
	}
	if err := r.CheckExist(ctx, scope, names); err != nil {
		return err
	}

	form.Set(r.kind.NamesParam, joinNames(names))
	_, err := r.api.Post(ctx, r.kind.Path(scope), form)
	return err
}

// Delete removes the named entities, which must all exist.
func (r *Resources) Delete(ctx context.Context, scope domain.Scope, names []string) error {
	names = Dedup(names)
	if len(names) == 0 {
		return domain.ErrValidation.WithMessage("no " + r.kind.Name + " given")
	}
	if err := r.CheckExist(ctx, scope, names); err != nil {
		return err
	}

	form := url.Values{}
	form.Set(r.kind.NamesParam, joinNames(names))
	_, err := r.api.Delete(ctx, r.kind.Path(scope), form)
	return err
}

// CheckExist fails with a not-found error listing every requested name
// the server did not report.
func (r *Resources) CheckExist(ctx context.Context, scope domain.Scope, names []string) error {
	found, err := r.Lookup(ctx, scope, names)
	if err != nil {
		return err
	}
	if missing := Difference(names, found); len(missing) > 0 {
		return domain.ErrNotFound.WithMessage(r.kind.Name + " not found").WithNames(missing)
	}
	return nil
}
