package domain

import "strings"

// Placeholder values written by the first-run bootstrap. They cannot
// authenticate; they only keep commands from failing on missing state.
const (
	PlaceholderEndpoint = "https://localhost:5050/api/v1.0"
	PlaceholderPassword = "fakepass"
)

// Session is the locally persisted connection state.
type Session struct {
	Endpoint string
	Username string
	Password string
	// CertFile is the CA bundle used to verify the server. Empty disables
	// verification.
	CertFile  string
	Inventory string
}

// PlaceholderSession returns the bootstrap session for the given OS user.
func PlaceholderSession(username string) *Session {
	return &Session{
		Endpoint: PlaceholderEndpoint,
		Username: username,
		Password: PlaceholderPassword,
	}
}

// VerifyTLS reports whether server certificates are verified.
func (s *Session) VerifyTLS() bool {
	return s.CertFile != ""
}

// BaseURL returns the endpoint without a trailing slash.
func (s *Session) BaseURL() string {
	return strings.TrimRight(s.Endpoint, "/")
}

// Validate checks the fields required to talk to the server.
func (s *Session) Validate() error {
	switch {
	case strings.TrimSpace(s.Endpoint) == "":
		return ErrValidation.WithMessage("endpoint is required")
	case !strings.HasPrefix(s.Endpoint, "http://") && !strings.HasPrefix(s.Endpoint, "https://"):
		return ErrValidation.WithMessage("endpoint must start with http:// or https://").WithDetails(s.Endpoint)
	case strings.TrimSpace(s.Username) == "":
		return ErrValidation.WithMessage("username is required")
	}
	return nil
}

// Scope identifies the admin/inventory pair that owns clients and groups.
type Scope struct {
	Admin     string
	Inventory string
}

// ScopeFor fills empty scope fields from the session defaults.
func (s *Session) ScopeFor(admin, inventory string) Scope {
	if admin == "" {
		admin = s.Username
	}
	if inventory == "" {
		inventory = s.Inventory
	}
	return Scope{Admin: admin, Inventory: inventory}
}

// Validate checks that both parts of the scope are set.
func (sc Scope) Validate() error {
	if sc.Admin == "" {
		return ErrValidation.WithMessage("admin is required")
	}
	if sc.Inventory == "" {
		return ErrValidation.WithMessage("inventory is required, pass -I or run `ultron inventory NAME`")
	}
	return nil
}
