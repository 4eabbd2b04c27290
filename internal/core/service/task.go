package service

import (
	"context"
	"net/url"
	"strings"

	"github.com/yndnr/ultron-cli/internal/core/domain"
)

// Submission describes one task dispatch.
type Submission struct {
	Task  string
	Scope domain.Scope
	// Clients and Groups are mutually exclusive. With neither set the task
	// targets every client of the inventory.
	Clients []string
	Groups  []string
	// Sync makes the server block until the task has run.
	Sync bool
	// Kwargs is the JSON object text produced by ParseKwargs.
	Kwargs string
}

// Target returns the collection the submission resolves against and the
// names it was given.
func (s Submission) Target() (Kind, []string) {
	if len(s.Groups) > 0 {
		return GroupKind, Dedup(s.Groups)
	}
	return ClientKind, Dedup(s.Clients)
}

// Validate checks the submission before any request is made.
func (s Submission) Validate() error {
	if strings.TrimSpace(s.Task) == "" {
		return domain.ErrValidation.WithMessage("task name is required")
	}
	if len(s.Clients) > 0 && len(s.Groups) > 0 {
		return domain.ErrValidation.WithMessage("clients and groups are mutually exclusive")
	}
	return s.Scope.Validate()
}

// Dispatcher resolves task targets and submits tasks.
type Dispatcher struct {
	api API
}

// NewDispatcher creates a task dispatcher.
func NewDispatcher(api API) *Dispatcher {
	return &Dispatcher{api: api}
}

// Resolve returns the targets the server knows for s. An empty result, or
// any explicitly named target the server did not report, is a
// target-not-found error listing the unresolved names.
func (d *Dispatcher) Resolve(ctx context.Context, s Submission) (*domain.Entities, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	kind, names := s.Target()

	found, err := NewResources(d.api, kind).fetch(ctx, s.Scope, Query{Names: names, Fields: []string{"name"}})
	if err != nil {
		return nil, err
	}
	if found.Len() == 0 {
		return nil, domain.ErrTargetNotFound.
			WithMessage(kind.Name + " not found").
			WithNames(names)
	}
	if missing := Difference(names, found); len(missing) > 0 {
		return nil, domain.ErrTargetNotFound.
			WithMessage(kind.Name + " not found").
			WithNames(missing)
	}
	return found, nil
}

// Submit resolves the targets and posts the task. It returns the raw
// result the server sent back, which for synchronous submissions carries
// the task outcome.
func (d *Dispatcher) Submit(ctx context.Context, s Submission) (domain.Value, error) {
	if _, err := d.Resolve(ctx, s); err != nil {
		return domain.Value{}, err
	}
	kind, _ := s.Target()

	raw, err := d.api.Post(ctx, kind.Path(s.Scope), s.form())
	if err != nil {
		return domain.Value{}, err
	}
	return domain.DecodeValue(raw)
}

func (s Submission) form() url.Values {
	form := url.Values{}
	if s.Sync {
		form.Set("async", "0")
	} else {
		form.Set("async", "1")
	}
	form.Set("task", s.Task)
	if s.Kwargs != "" {
		form.Set("kwargs", s.Kwargs)
	}
	if kind, names := s.Target(); len(names) > 0 {
		form.Set(kind.NamesParam, joinNames(names))
	}
	return form
}
