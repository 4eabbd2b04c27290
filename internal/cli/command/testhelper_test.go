package command

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/yndnr/ultron-cli/internal/cli/session"
	"github.com/yndnr/ultron-cli/internal/core/domain"
)

// recordedRequest is a request seen by the mock server.
type recordedRequest struct {
	Method string
	Path   string
	Query  url.Values
	Form   url.Values
}

// mockServer is a fake Ultron API keyed by "METHOD path".
type mockServer struct {
	*httptest.Server
	mu       sync.Mutex
	handlers map[string]http.HandlerFunc
	requests []recordedRequest
}

// newMockServer creates a new mock server.
func newMockServer(t *testing.T) *mockServer {
	t.Helper()
	m := &mockServer{
		handlers: make(map[string]http.HandlerFunc),
	}
	m.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// ParseForm skips DELETE bodies, so decode the body directly.
		form := url.Values{}
		if r.Method != http.MethodGet {
			body, _ := io.ReadAll(r.Body)
			parsed, err := url.ParseQuery(string(body))
			if err != nil {
				errorResponse(w, http.StatusBadRequest, err.Error())
				return
			}
			form = parsed
		}

		m.mu.Lock()
		m.requests = append(m.requests, recordedRequest{Method: r.Method, Path: r.URL.Path, Query: r.URL.Query(), Form: form})
		handler, ok := m.handlers[r.Method+" "+r.URL.Path]
		m.mu.Unlock()

		if !ok {
			errorResponse(w, http.StatusNotFound, "no handler for "+r.Method+" "+r.URL.Path)
			return
		}
		handler(w, r)
	}))
	t.Cleanup(m.Close)
	return m
}

// handle registers a handler for a method and exact path.
func (m *mockServer) handle(method, path string, handler http.HandlerFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[method+" "+path] = handler
}

// result registers a handler answering with {"result": result}.
func (m *mockServer) result(method, path string, result any) {
	m.handle(method, path, func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, http.StatusOK, map[string]any{"result": result, "message": ""})
	})
}

// writes returns the recorded non-GET requests.
func (m *mockServer) writes() []recordedRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []recordedRequest
	for _, r := range m.requests {
		if r.Method != http.MethodGet {
			out = append(out, r)
		}
	}
	return out
}

// requestCount returns how many requests the server received.
func (m *mockServer) requestCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

// lastGet returns the most recent GET request to path.
func (m *mockServer) lastGet(path string) (recordedRequest, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.requests) - 1; i >= 0; i-- {
		if r := m.requests[i]; r.Method == http.MethodGet && r.Path == path {
			return r, true
		}
	}
	return recordedRequest{}, false
}

// jsonResponse writes a JSON response.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// errorResponse writes an Ultron error envelope.
func errorResponse(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]any{"result": nil, "message": message})
}

// testEnv is an isolated session file and preferences file.
type testEnv struct {
	dir         string
	sessionFile string
	configFile  string
}

// newTestEnv writes a session for alice/prod pointing at server. A nil
// server leaves the session file absent.
func newTestEnv(t *testing.T, server *mockServer) *testEnv {
	t.Helper()
	dir := t.TempDir()
	env := &testEnv{
		dir:         dir,
		sessionFile: filepath.Join(dir, session.FileName),
		configFile:  filepath.Join(dir, "cli.yaml"),
	}
	if server != nil {
		sess := &domain.Session{Endpoint: server.URL, Username: "alice", Password: "s3cret", Inventory: "prod"}
		if err := session.NewStore(env.sessionFile).Save(sess); err != nil {
			t.Fatal(err)
		}
	}
	return env
}

// writeConfig writes the preferences file.
func (e *testEnv) writeConfig(t *testing.T, content string) {
	t.Helper()
	if err := os.WriteFile(e.configFile, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
}

// runResult captures one CLI invocation.
type runResult struct {
	stdout string
	stderr string
	err    error
}

// run executes the CLI with args and stdin.
func (e *testEnv) run(t *testing.T, stdin string, args ...string) runResult {
	t.Helper()
	return e.runInput(t, strings.NewReader(stdin), args...)
}

// runInput executes the CLI with args, reading stdin from in.
func (e *testEnv) runInput(t *testing.T, in io.Reader, args ...string) runResult {
	t.Helper()
	var stdout, stderr bytes.Buffer

	app := App()
	app.Reader = in
	app.Writer = &stdout
	app.ErrWriter = &stderr

	argv := append([]string{"ultron", "--session-file", e.sessionFile, "--config", e.configFile, "--no-color"}, args...)
	err := app.RunContext(context.Background(), argv)
	return runResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

// loadSession reads the session file back.
func (e *testEnv) loadSession(t *testing.T) *domain.Session {
	t.Helper()
	sess, err := session.NewStore(e.sessionFile).Load()
	if err != nil {
		t.Fatalf("load session: %v", err)
	}
	return sess
}

// saveSession overwrites the session file.
func (e *testEnv) saveSession(t *testing.T, sess *domain.Session) {
	t.Helper()
	if err := session.NewStore(e.sessionFile).Save(sess); err != nil {
		t.Fatal(err)
	}
}
