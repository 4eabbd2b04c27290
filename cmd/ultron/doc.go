// Package main provides the entry point for ultron.
//
// ultron is the command-line client for the Ultron fleet API. It manages
// admins, clients and groups, dispatches tasks and aggregates task
// results across an inventory.
//
// Usage:
//
//	ultron connect -u alice -i prod https://ultron.example.com
//	ultron list clients -F name -D groups
//	ultron submit task -G web -K '{"count": 3}' ping
//	ultron stat tasks
//	ultron shell
//
// Every command runs against the session saved by connect, which lives
// in ~/.ultron_session.json.
package main
