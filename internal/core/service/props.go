package service

import (
	"encoding/json"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/yndnr/ultron-cli/internal/core/domain"
)

// propsExample is shown when a props or kwargs token is malformed.
const propsExample = "example format: a=123 b=abc c=xyz"

// ParseProps parses key=value tokens. The key is the text before the first
// '=', the value is everything after it, so values may contain '='.
// A token without '=' rejects the whole batch. Later duplicates win.
func ParseProps(tokens []string) (map[string]string, error) {
	out := make(map[string]string, len(tokens))
	for _, tok := range tokens {
		key, value, ok := strings.Cut(tok, "=")
		if !ok {
			return nil, domain.ErrValidation.
				WithMessage("invalid props format, " + propsExample).
				WithDetails(tok)
		}
		out[key] = value
	}
	return out, nil
}

// EncodeProps serializes parsed props the way the server expects them in
// the props form field.
func EncodeProps(props map[string]string) (string, error) {
	data, err := json.Marshal(props)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ParseKwargs parses task keyword arguments. A single token starting with
// '{' is read as a JSON object, which must be flat (no nested objects or
// arrays). Anything else is parsed as key=value tokens with ParseProps.
// The result is the JSON text sent in the kwargs form field; it is empty
// when no kwargs were given.
func ParseKwargs(tokens []string) (string, error) {
	if len(tokens) == 0 {
		return "", nil
	}
	if len(tokens) == 1 && strings.HasPrefix(strings.TrimSpace(tokens[0]), "{") {
		return parseKwargsJSON(strings.TrimSpace(tokens[0]))
	}
	props, err := ParseProps(tokens)
	if err != nil {
		return "", domain.ErrValidation.
			WithMessage("invalid kwargs, pass a flat JSON object or key=value pairs").
			WithDetails(tokens[0]).
			WithCause(err)
	}
	return EncodeProps(props)
}

func parseKwargsJSON(s string) (string, error) {
	if !gjson.Valid(s) {
		return "", domain.ErrValidation.WithMessage("kwargs: invalid JSON").WithDetails(s)
	}
	obj := gjson.Parse(s)
	if !obj.IsObject() {
		return "", domain.ErrValidation.WithMessage("kwargs: must be a JSON object of key-value pairs")
	}
	var nested string
	obj.ForEach(func(key, value gjson.Result) bool {
		if value.IsObject() || value.IsArray() {
			nested = key.String()
			return false
		}
		return true
	})
	if nested != "" {
		return "", domain.ErrValidation.WithMessage("kwargs: values must be scalars").WithDetails(nested)
	}
	compact := obj.Get("@ugly").Raw
	if compact == "{}" {
		return "", nil
	}
	return compact, nil
}
