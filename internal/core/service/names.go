package service

import (
	"strings"

	"github.com/yndnr/ultron-cli/internal/core/domain"
)

// NameSource produces entity names when none were given on the command
// line. The CLI backs it with an interactive terminal prompt.
type NameSource func() ([]string, error)

// ResolveNames returns the deduplicated given names, or asks src when
// given is empty. An empty final set is a validation error.
func ResolveNames(given []string, src NameSource) ([]string, error) {
	names := SplitNames(given)
	if len(names) == 0 && src != nil {
		prompted, err := src()
		if err != nil {
			return nil, err
		}
		names = SplitNames(prompted)
	}
	if len(names) == 0 {
		return nil, domain.ErrValidation.WithMessage("no names given")
	}
	return names, nil
}

// SplitNames splits comma- and whitespace-separated name tokens and
// removes duplicates, keeping first-seen order.
func SplitNames(tokens []string) []string {
	var out []string
	for _, tok := range tokens {
		out = append(out, strings.FieldsFunc(tok, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
		})...)
	}
	return Dedup(out)
}

// Dedup removes duplicate names, keeping first-seen order.
func Dedup(names []string) []string {
	if len(names) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

// Difference returns the requested names absent from found, in request order.
func Difference(requested []string, found *domain.Entities) []string {
	var out []string
	for _, n := range Dedup(requested) {
		if !found.Has(n) {
			out = append(out, n)
		}
	}
	return out
}

// Intersect returns the requested names present in found, in request order.
func Intersect(requested []string, found *domain.Entities) []string {
	var out []string
	for _, n := range Dedup(requested) {
		if found.Has(n) {
			out = append(out, n)
		}
	}
	return out
}

func joinNames(names []string) string {
	return strings.Join(names, ",")
}
