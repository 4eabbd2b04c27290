// Package tlsroots loads the CA certificates used to verify the Ultron
// API server.
//
// The session's certfile may name a PEM bundle or a directory of PEM
// files. When it is unset, verification is disabled.
package tlsroots
