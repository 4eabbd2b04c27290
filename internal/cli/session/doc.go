// Package session stores the ultron connection state in
// ~/.ultron_session.json.
//
// The file holds the endpoint, the credentials, the CA bundle path (or
// false when verification is disabled) and the default inventory. It is
// written with mode 0600 through a temp file and rename. A placeholder
// session is bootstrapped on first run so every command finds a file.
package session
