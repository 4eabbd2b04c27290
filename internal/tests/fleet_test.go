package tests

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"slices"
	"strings"
	"sync"
	"testing"
)

type fakeClient struct {
	props map[string]string
	tasks map[string]string
}

type fakeGroup struct {
	description string
	clients     []string
}

type fakeInventory struct {
	clients map[string]*fakeClient
	groups  map[string]*fakeGroup
}

// fakeFleet is a stateful in-memory fleet API for a single admin.
type fakeFleet struct {
	mu       sync.Mutex
	admin    string
	password string
	tasks    []string
	inv      map[string]*fakeInventory
	requests int
}

func newFakeFleet(t *testing.T, admin, password string, inventories ...string) (*fakeFleet, *httptest.Server) {
	t.Helper()
	f := &fakeFleet{
		admin:    admin,
		password: password,
		tasks:    []string{"ping", "uptime", "fail"},
		inv:      make(map[string]*fakeInventory),
	}
	for _, name := range inventories {
		f.inv[name] = &fakeInventory{clients: map[string]*fakeClient{}, groups: map[string]*fakeGroup{}}
	}
	server := httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(server.Close)
	return f, server
}

func (f *fakeFleet) requestCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests
}

func (f *fakeFleet) serve(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests++

	if user, pass, ok := r.BasicAuth(); !ok || user != f.admin || pass != f.password {
		reply(w, http.StatusUnauthorized, nil, "Invalid credentials")
		return
	}

	form := r.URL.Query()
	if r.Method != http.MethodGet {
		body, _ := io.ReadAll(r.Body)
		form, _ = url.ParseQuery(string(body))
	}

	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	switch {
	case parts[0] == "admins" && len(parts) == 2:
		f.serveAdmin(w, parts[1])
	case (parts[0] == "clients" || parts[0] == "groups") && (len(parts) == 3 || len(parts) == 4):
		inv, ok := f.inv[parts[2]]
		if parts[1] != f.admin || !ok {
			reply(w, http.StatusNotFound, nil, "Inventory not found")
			return
		}
		if len(parts) == 4 {
			form.Set(strings.TrimSuffix(parts[0], "s")+"names", parts[3])
		}
		if parts[0] == "clients" {
			f.serveClients(w, r.Method, inv, form)
		} else {
			f.serveGroups(w, r.Method, inv, form)
		}
	default:
		reply(w, http.StatusNotFound, nil, "Not found")
	}
}

func (f *fakeFleet) serveAdmin(w http.ResponseWriter, name string) {
	if name != f.admin {
		reply(w, http.StatusOK, map[string]any{}, "")
		return
	}
	var inventories []string
	for inv := range f.inv {
		inventories = append(inventories, inv)
	}
	slices.Sort(inventories)
	reply(w, http.StatusOK, map[string]any{
		name: map[string]any{"name": name, "allowed_tasks": f.tasks, "inventories": inventories},
	}, "")
}

func (f *fakeFleet) serveClients(w http.ResponseWriter, method string, inv *fakeInventory, form url.Values) {
	names := splitForm(form, "clientnames")
	switch method {
	case http.MethodGet:
		out := map[string]any{}
		for name, c := range inv.clients {
			if len(names) > 0 && !slices.Contains(names, name) {
				continue
			}
			tasks := map[string]any{}
			for task, status := range c.tasks {
				tasks[task] = map[string]any{"status": status}
			}
			var groups []string
			for g, grp := range inv.groups {
				if slices.Contains(grp.clients, name) {
					groups = append(groups, g)
				}
			}
			slices.Sort(groups)
			out[name] = map[string]any{
				"name":   name,
				"props":  c.props,
				"state":  map[string]any{"up": true},
				"tasks":  tasks,
				"groups": groups,
			}
		}
		reply(w, http.StatusOK, out, "")
	case http.MethodPost:
		if form.Has("task") {
			targets := names
			if len(targets) == 0 {
				for name := range inv.clients {
					targets = append(targets, name)
				}
			}
			reply(w, http.StatusOK, f.dispatch(inv, targets, form), "")
			return
		}
		props := map[string]string{}
		if raw := form.Get("props"); raw != "" {
			_ = json.Unmarshal([]byte(raw), &props)
		}
		for _, name := range names {
			c, ok := inv.clients[name]
			if !ok {
				c = &fakeClient{props: map[string]string{}, tasks: map[string]string{}}
				inv.clients[name] = c
			}
			for k, v := range props {
				c.props[k] = v
			}
		}
		reply(w, http.StatusOK, nil, "")
	case http.MethodDelete:
		for _, name := range names {
			delete(inv.clients, name)
			for _, g := range inv.groups {
				g.clients = slices.DeleteFunc(g.clients, func(c string) bool { return c == name })
			}
		}
		reply(w, http.StatusOK, nil, "")
	}
}

func (f *fakeFleet) serveGroups(w http.ResponseWriter, method string, inv *fakeInventory, form url.Values) {
	names := splitForm(form, "groupnames")
	switch method {
	case http.MethodGet:
		out := map[string]any{}
		for name, g := range inv.groups {
			if len(names) > 0 && !slices.Contains(names, name) {
				continue
			}
			out[name] = map[string]any{"name": name, "description": g.description, "clients": g.clients}
		}
		reply(w, http.StatusOK, out, "")
	case http.MethodPost:
		if form.Has("task") {
			var targets []string
			for _, name := range names {
				for _, c := range inv.groups[name].clients {
					if !slices.Contains(targets, c) {
						targets = append(targets, c)
					}
				}
			}
			reply(w, http.StatusOK, f.dispatch(inv, targets, form), "")
			return
		}
		members := splitForm(form, "clientnames")
		for _, name := range names {
			g, ok := inv.groups[name]
			if !ok {
				g = &fakeGroup{clients: []string{}}
				inv.groups[name] = g
			}
			if form.Has("description") {
				g.description = form.Get("description")
			}
			for _, c := range members {
				if form.Get("action") == "remove" {
					g.clients = slices.DeleteFunc(g.clients, func(m string) bool { return m == c })
				} else if !slices.Contains(g.clients, c) {
					g.clients = append(g.clients, c)
				}
			}
		}
		reply(w, http.StatusOK, nil, "")
	case http.MethodDelete:
		for _, name := range names {
			delete(inv.groups, name)
		}
		reply(w, http.StatusOK, nil, "")
	}
}

// dispatch records the task on every target. Asynchronous tasks stay
// pending; synchronous ones finish, and the task "fail" always fails.
func (f *fakeFleet) dispatch(inv *fakeInventory, targets []string, form url.Values) map[string]string {
	task := form.Get("task")
	status := "PENDING"
	if form.Get("async") == "0" {
		status = "SUCCESS"
		if task == "fail" {
			status = "FAILED"
		}
	}
	out := make(map[string]string, len(targets))
	for _, name := range targets {
		if c, ok := inv.clients[name]; ok {
			c.tasks[task] = status
			out[name] = status
		}
	}
	return out
}

func splitForm(form url.Values, key string) []string {
	if v := form.Get(key); v != "" {
		return strings.Split(v, ",")
	}
	return nil
}

func reply(w http.ResponseWriter, status int, result any, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"result": result, "message": message})
}
