package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/shlex"
)

// Prompt is printed before every line.
const Prompt = "ultron> "

// Executor runs one command line, already split into arguments.
type Executor func(ctx context.Context, args []string) error

// Options configures a REPL.
type Options struct {
	// In is read line by line. A *bufio.Reader is used as is, so commands
	// can keep reading from it.
	In  io.Reader
	Out io.Writer
	Err io.Writer
	// HistoryFile is where history is loaded from and saved to. Empty keeps
	// history in memory only.
	HistoryFile string
	// Commands are the command paths offered for completion.
	Commands []string
	Exec     Executor
}

// REPL represents the Read-Eval-Print Loop.
type REPL struct {
	input     io.Reader
	output    io.Writer
	errOut    io.Writer
	completer *Completer
	history   *History
	exec      Executor
}

// New creates a new REPL instance.
func New(opts Options) *REPL {
	r := &REPL{
		input:     opts.In,
		output:    opts.Out,
		errOut:    opts.Err,
		completer: NewCompleter(opts.Commands),
		history:   NewHistory(opts.HistoryFile),
		exec:      opts.Exec,
	}
	if r.input == nil {
		r.input = os.Stdin
	}
	if r.output == nil {
		r.output = os.Stdout
	}
	if r.errOut == nil {
		r.errOut = r.output
	}
	return r
}

// Run reads and executes lines until exit, EOF or ctx is cancelled.
// Command errors are printed and do not stop the loop.
func (r *REPL) Run(ctx context.Context) error {
	if err := r.history.Load(); err != nil {
		fmt.Fprintf(r.errOut, "warning: load history: %v\n", err)
	}
	defer func() {
		if err := r.history.Save(); err != nil {
			fmt.Fprintf(r.errOut, "warning: save history: %v\n", err)
		}
	}()

	reader, ok := r.input.(*bufio.Reader)
	if !ok {
		reader = bufio.NewReader(r.input)
	}
	for {
		if ctx.Err() != nil {
			return nil
		}

		fmt.Fprint(r.output, Prompt)

		line, err := reader.ReadString('\n')
		if errors.Is(err, io.EOF) && line == "" {
			fmt.Fprintln(r.output)
			return nil
		}
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		r.history.Add(line)

		if quit := r.handle(ctx, line); quit {
			return nil
		}
	}
}

func (r *REPL) handle(ctx context.Context, line string) bool {
	switch {
	case line == "exit" || line == "quit":
		return true
	case line == "history":
		for i, entry := range r.history.Entries() {
			fmt.Fprintf(r.output, "%4d  %s\n", i+1, entry)
		}
		return false
	case strings.HasSuffix(line, "?"):
		for _, s := range r.completer.Complete(strings.TrimSuffix(line, "?")) {
			fmt.Fprintln(r.output, s)
		}
		return false
	}

	if err := r.execute(ctx, line); err != nil {
		fmt.Fprintf(r.errOut, "error: %v\n", err)
	}
	return false
}

func (r *REPL) execute(ctx context.Context, line string) error {
	args, err := shlex.Split(line)
	if err != nil {
		return fmt.Errorf("parse line: %w", err)
	}
	if len(args) == 0 || r.exec == nil {
		return nil
	}
	return r.exec(ctx, args)
}
