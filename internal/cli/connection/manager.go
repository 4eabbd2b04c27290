package connection

import (
	"context"
	"errors"

	"github.com/yndnr/ultron-cli/internal/cli/session"
	"github.com/yndnr/ultron-cli/internal/core/domain"
	"github.com/yndnr/ultron-cli/internal/core/service"
	"github.com/yndnr/ultron-cli/internal/telemetry/logger"
)

// Manager runs the connect/disconnect lifecycle on top of the session
// store.
type Manager struct {
	store *session.Store
	opts  []ClientOption
}

// NewManager creates a manager for store. opts apply to every client it
// builds.
func NewManager(store *session.Store, opts ...ClientOption) *Manager {
	return &Manager{store: store, opts: opts}
}

// Client builds an API client for sess.
func (m *Manager) Client(sess *domain.Session) (*HTTPClient, error) {
	return NewHTTPClient(sess, m.opts...)
}

// Connect probes the server with the candidate session's credentials and
// saves the session on success. A rejected probe is an auth error and
// leaves the stored session untouched.
func (m *Manager) Connect(ctx context.Context, candidate *domain.Session) error {
	client, err := m.Client(candidate)
	if err != nil {
		return err
	}

	if err := service.Probe(ctx, client, candidate.Username); err != nil {
		var de *domain.Error
		if errors.As(err, &de) && de.Kind == domain.KindRemote {
			return domain.ErrAuth.
				WithDetails(de.Message).
				WithStatus(de.Status).
				WithCause(err)
		}
		return err
	}

	if err := m.store.Save(candidate); err != nil {
		return err
	}
	logger.L(ctx).Debug("session saved", "path", m.store.Path(), "endpoint", candidate.BaseURL())
	return nil
}

// Disconnect removes the stored session.
func (m *Manager) Disconnect() error {
	return m.store.Clear()
}

// SetInventory changes the default inventory of the stored session.
func (m *Manager) SetInventory(name string) (*domain.Session, error) {
	if name == "" {
		return nil, domain.ErrValidation.WithMessage("inventory name is required")
	}
	return m.store.SetInventory(name)
}
