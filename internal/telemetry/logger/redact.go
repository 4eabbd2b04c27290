package logger

import (
	"log/slog"
	"net/url"
	"strings"
)

// Authorization schemes whose credentials are masked wherever they appear
// as a log value.
var sensitiveValuePrefixes = []string{
	"Basic ",
	"Bearer ",
}

// Key fragments that mark an attribute as secret.
var sensitiveKeyPatterns = []string{
	"password",
	"passwd",
	"secret",
	"token",
	"credential",
	"authorization",
}

// redactedValue is the placeholder for redacted sensitive data.
const redactedValue = "***REDACTED***"

// redactSensitive masks string attributes that carry credentials.
func redactSensitive(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindString {
		strVal := a.Value.String()
		if masked := RedactString(strVal); masked != strVal {
			return slog.String(a.Key, masked)
		}
		if strVal != "" && IsSensitiveKey(a.Key) {
			return slog.String(a.Key, redactedValue)
		}
	}

	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		newAttrs := make([]slog.Attr, len(attrs))
		for i, attr := range attrs {
			newAttrs[i] = redactSensitive(attr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(newAttrs...)}
	}

	return a
}

// RedactString masks the credential part of an Authorization value and
// the password of a URL with user info. Other strings are returned as is.
func RedactString(value string) string {
	for _, prefix := range sensitiveValuePrefixes {
		if strings.HasPrefix(value, prefix) {
			return prefix + "***"
		}
	}
	if strings.Contains(value, "://") && strings.Contains(value, "@") {
		if u, err := url.Parse(value); err == nil && u.User != nil {
			if _, ok := u.User.Password(); ok {
				return u.Redacted()
			}
		}
	}
	return value
}

// RedactForm returns a copy of form with secret fields masked, for logging
// request bodies.
func RedactForm(form url.Values) url.Values {
	out := make(url.Values, len(form))
	for k, vs := range form {
		if IsSensitiveKey(k) {
			out[k] = []string{redactedValue}
			continue
		}
		out[k] = append([]string(nil), vs...)
	}
	return out
}

// IsSensitiveKey checks if a key name suggests sensitive content.
func IsSensitiveKey(key string) bool {
	keyLower := strings.ToLower(key)
	for _, pattern := range sensitiveKeyPatterns {
		if strings.Contains(keyLower, pattern) {
			return true
		}
	}
	return false
}
