// Package domain defines the core domain models for ultron-cli.
package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a failure so callers can branch without matching messages.
type Kind int

const (
	KindUnknown Kind = iota
	// KindConfig means the local session is missing or unreadable.
	KindConfig
	// KindAuth means the server rejected the credentials during connect.
	KindAuth
	// KindDuplicate means a create request named entities that already exist.
	KindDuplicate
	// KindNotFound means an expected entity or result set is missing.
	KindNotFound
	// KindTargetNotFound means task target resolution was incomplete.
	KindTargetNotFound
	// KindValidation means a local argument (props, kwargs, names) is malformed.
	KindValidation
	// KindRemote means the server answered with a non-2xx status.
	KindRemote
)

var kindNames = map[Kind]string{
	KindUnknown:        "unknown",
	KindConfig:         "config",
	KindAuth:           "auth",
	KindDuplicate:      "duplicate",
	KindNotFound:       "not_found",
	KindTargetNotFound: "target_not_found",
	KindValidation:     "validation",
	KindRemote:         "remote",
}

// String returns the snake_case name of the kind.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error is a typed client error with a structured code.
//
// Code follows UL-<AREA>-<NNNN>. Names carries the offending entity names
// for duplicate/not-found style failures, Status the HTTP status for remote
// failures.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Details string
	Names   []string
	Status  int
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("[")
	b.WriteString(e.Code)
	b.WriteString("] ")
	b.WriteString(e.Message)
	if len(e.Names) > 0 {
		b.WriteString(": ")
		b.WriteString(strings.Join(e.Names, ", "))
	}
	if e.Details != "" {
		b.WriteString(": ")
		b.WriteString(e.Details)
	}
	return b.String()
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// NewError creates a new Error.
func NewError(kind Kind, code, message string) *Error {
	return &Error{
		Kind:    kind,
		Code:    code,
		Message: message,
	}
}

func (e *Error) clone() *Error {
	c := *e
	if e.Names != nil {
		c.Names = append([]string(nil), e.Names...)
	}
	return &c
}

// WithMessage returns a copy of the error with a different message.
func (e *Error) WithMessage(message string) *Error {
	c := e.clone()
	c.Message = message
	return c
}

// WithDetails returns a copy of the error with additional details.
func (e *Error) WithDetails(details string) *Error {
	c := e.clone()
	c.Details = details
	return c
}

// WithNames returns a copy of the error listing the given names.
func (e *Error) WithNames(names []string) *Error {
	c := e.clone()
	c.Names = append([]string(nil), names...)
	return c
}

// WithStatus returns a copy of the error with an HTTP status.
func (e *Error) WithStatus(status int) *Error {
	c := e.clone()
	c.Status = status
	return c
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *Error) WithCause(cause error) *Error {
	c := e.clone()
	c.Cause = cause
	return c
}

// KindOf returns the kind of err, or KindUnknown if err is not an *Error.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindUnknown
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// NamesOf returns the names attached to err, if any.
func NamesOf(err error) []string {
	var de *Error
	if errors.As(err, &de) {
		return de.Names
	}
	return nil
}

var (
	// ErrConfig indicates the session file is missing or malformed.
	ErrConfig = NewError(KindConfig, "UL-CONF-1001", "session not found, run `ultron connect` first")

	// ErrAuth indicates the probe request was rejected during connect.
	ErrAuth = NewError(KindAuth, "UL-AUTH-4010", "authentication failed")

	// ErrDuplicate indicates a create-time name collision.
	ErrDuplicate = NewError(KindDuplicate, "UL-RES-4090", "duplicate entities")

	// ErrNotFound indicates an expected entity or result set is missing.
	ErrNotFound = NewError(KindNotFound, "UL-RES-4040", "not found")

	// ErrTargetNotFound indicates task targets could not be resolved.
	ErrTargetNotFound = NewError(KindTargetNotFound, "UL-TASK-4041", "targets not found")

	// ErrValidation indicates a malformed local argument.
	ErrValidation = NewError(KindValidation, "UL-ARG-1001", "invalid argument")

	// ErrRemote indicates a non-2xx response from the server.
	ErrRemote = NewError(KindRemote, "UL-API-5000", "request failed")
)

// RemoteError builds a remote error that carries the server's message verbatim.
func RemoteError(status int, message string) *Error {
	if message == "" {
		message = fmt.Sprintf("status %d", status)
	}
	return ErrRemote.WithMessage(fmt.Sprintf("%d: %s", status, message)).WithStatus(status)
}

// Status returns the HTTP status carried by err, or 0.
func Status(err error) int {
	var de *Error
	if errors.As(err, &de) {
		return de.Status
	}
	return 0
}
