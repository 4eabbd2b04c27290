package repl

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type recorder struct {
	calls [][]string
	err   error
}

func (r *recorder) exec(_ context.Context, args []string) error {
	r.calls = append(r.calls, args)
	return r.err
}

func newTestREPL(input string, rec *recorder) (*REPL, *bytes.Buffer) {
	out := &bytes.Buffer{}
	r := New(Options{
		In:       strings.NewReader(input),
		Out:      out,
		Commands: []string{"list admins", "list clients", "new admins"},
		Exec:     rec.exec,
	})
	return r, out
}

func TestREPL_Run_Exit(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"exit command", "exit\n"},
		{"quit command", "quit\n"},
		{"EOF", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			r, _ := newTestREPL(tt.input, rec)
			if err := r.Run(context.Background()); err != nil {
				t.Errorf("Run() returned error: %v", err)
			}
			if len(rec.calls) != 0 {
				t.Errorf("no command should run, got %v", rec.calls)
			}
		})
	}
}

func TestREPL_Run_EmptyLines(t *testing.T) {
	r, out := newTestREPL("\n\n\nexit\n", &recorder{})

	if err := r.Run(context.Background()); err != nil {
		t.Errorf("Run() returned error: %v", err)
	}
	if prompts := strings.Count(out.String(), Prompt); prompts != 4 {
		t.Errorf("expected 4 prompts, got %d", prompts)
	}
}

func TestREPL_Run_SplitsWithQuotes(t *testing.T) {
	rec := &recorder{}
	r, _ := newTestREPL(`submit task ping -K '{"count": 3}' -C web-1 web-2`+"\n", rec)

	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}
	if len(rec.calls) != 1 {
		t.Fatalf("calls = %v", rec.calls)
	}
	want := []string{"submit", "task", "ping", "-K", `{"count": 3}`, "-C", "web-1", "web-2"}
	if strings.Join(rec.calls[0], "|") != strings.Join(want, "|") {
		t.Errorf("args = %q, want %q", rec.calls[0], want)
	}
}

func TestREPL_Run_ErrorsDoNotStop(t *testing.T) {
	rec := &recorder{err: errors.New("admins not found")}
	r, out := newTestREPL("list admins\nlist clients\n", rec)

	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}
	if len(rec.calls) != 2 {
		t.Errorf("calls = %v, both lines should run", rec.calls)
	}
	if !strings.Contains(out.String(), "error: admins not found") {
		t.Errorf("output = %q", out.String())
	}
}

func TestREPL_Run_UnbalancedQuote(t *testing.T) {
	rec := &recorder{}
	r, out := newTestREPL("new admins 'bob\n", rec)

	if err := r.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(rec.calls) != 0 || !strings.Contains(out.String(), "parse line") {
		t.Errorf("calls = %v, output = %q", rec.calls, out.String())
	}
}

func TestREPL_Run_Completion(t *testing.T) {
	r, out := newTestREPL("list ?\n", &recorder{})

	if err := r.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "list admins\nlist clients\n") {
		t.Errorf("output = %q", out.String())
	}
	if strings.Contains(out.String(), "new admins") {
		t.Error("completion should only list matching commands")
	}
}

func TestREPL_Run_HistoryBuiltin(t *testing.T) {
	r, out := newTestREPL("list admins\nhistory\n", &recorder{})

	if err := r.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "   1  list admins\n   2  history\n") {
		t.Errorf("output = %q", out.String())
	}
}

func TestREPL_Run_CancelledContext(t *testing.T) {
	rec := &recorder{}
	r, _ := newTestREPL("list admins\n", rec)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := r.Run(ctx); err != nil {
		t.Fatal(err)
	}
	if len(rec.calls) != 0 {
		t.Error("cancelled context should stop before reading")
	}
}

func TestREPL_Run_PersistsHistory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "history")
	r := New(Options{
		In:          strings.NewReader("list admins\nexit\n"),
		Out:         &bytes.Buffer{},
		HistoryFile: file,
		Exec:        (&recorder{}).exec,
	})

	if err := r.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("history not saved: %v", err)
	}
	if string(data) != "list admins\nexit\n" {
		t.Errorf("history = %q", data)
	}
}

func TestREPL_Run_ExecutorReadsSharedInput(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("new admins\nbob\nlist admins\nexit\n"))
	var calls []string
	var answer string
	r := New(Options{
		In:  in,
		Out: &bytes.Buffer{},
		Exec: func(_ context.Context, args []string) error {
			calls = append(calls, strings.Join(args, " "))
			if args[0] == "new" {
				line, err := in.ReadString('\n')
				answer = strings.TrimSpace(line)
				return err
			}
			return nil
		},
	})

	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if answer != "bob" {
		t.Errorf("executor read %q, want bob", answer)
	}
	if strings.Join(calls, ";") != "new admins;list admins" {
		t.Errorf("calls = %v, the answered line must not run as a command", calls)
	}
}
