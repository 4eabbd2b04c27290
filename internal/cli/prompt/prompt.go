package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// EndOfNames terminates interactive name entry.
const EndOfNames = "."

// Prompter asks the user for values on a terminal.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
	fd  int
	tty bool
}

// Input is a buffered reader shared by a shell loop and the prompters of
// the commands it runs, so lines buffered by one are seen by the others.
type Input struct {
	*bufio.Reader
	src io.Reader
}

// NewInput wraps in for sharing. An Input is returned unchanged.
func NewInput(in io.Reader) *Input {
	if shared, ok := in.(*Input); ok {
		return shared
	}
	return &Input{Reader: bufio.NewReader(in), src: in}
}

// New creates a prompter reading from in and writing prompts to out.
// An *Input or *bufio.Reader is read through, not wrapped again.
// Passwords are read without echo when the underlying input is a terminal.
func New(in io.Reader, out io.Writer) *Prompter {
	src := in
	var buf *bufio.Reader
	switch r := in.(type) {
	case *Input:
		buf, src = r.Reader, r.src
	case *bufio.Reader:
		buf = r
	default:
		buf = bufio.NewReader(in)
	}

	p := &Prompter{in: buf, out: out, fd: -1}
	if f, ok := src.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		p.fd = int(f.Fd())
		p.tty = true
	}
	return p
}

// Line asks for a single value. An empty answer returns def.
func (p *Prompter) Line(label, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(p.out, "%s [%s]: ", label, def)
	} else {
		fmt.Fprintf(p.out, "%s: ", label)
	}

	line, err := p.readLine()
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	if line = strings.TrimSpace(line); line == "" {
		return def, nil
	}
	return line, nil
}

// Password asks for a secret. An empty answer returns def.
func (p *Prompter) Password(label, def string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", label)

	var line string
	if p.tty {
		data, err := term.ReadPassword(p.fd)
		fmt.Fprintln(p.out)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		line = string(data)
	} else {
		var err error
		line, err = p.readLine()
		if err != nil && !errors.Is(err, io.EOF) {
			return "", err
		}
	}

	if line = strings.TrimRight(line, "\r\n"); line == "" {
		return def, nil
	}
	return line, nil
}

// Names reads whitespace-separated names until a line holding only "."
// or end of input.
func (p *Prompter) Names(label string) ([]string, error) {
	fmt.Fprintf(p.out, "Enter %s separated by whitespace or newlines, %q on its own line to finish:\n", label, EndOfNames)

	var names []string
	for {
		line, err := p.readLine()
		if strings.TrimSpace(line) == EndOfNames {
			return names, nil
		}
		names = append(names, strings.Fields(line)...)
		if errors.Is(err, io.EOF) {
			return names, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

// NameSource adapts Names to a label-bound callback.
func (p *Prompter) NameSource(label string) func() ([]string, error) {
	return func() ([]string, error) {
		return p.Names(label)
	}
}

func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	return strings.TrimRight(line, "\r\n"), err
}
