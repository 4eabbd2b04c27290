// Package repl implements `ultron shell`, an interactive loop that runs
// ultron commands line by line.
//
// Lines are split with shell quoting rules and handed to an Executor.
// Built-ins: exit, quit, history, and a trailing "?" that lists the
// commands matching what was typed. History is kept in ~/.ultron/history.
package repl
