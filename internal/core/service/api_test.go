package service

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"
)

type apiCall struct {
	method string
	path   string
	values url.Values
}

// fakeAPI serves name lookups from an in-memory set of collections.
// Requests without a name filter return raw[path] when set.
type fakeAPI struct {
	names   map[string][]string
	raw     map[string]string
	getErr  error
	postErr error
	result  string
	calls   []apiCall
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		names: make(map[string][]string),
		raw:   make(map[string]string),
	}
}

func (f *fakeAPI) Get(_ context.Context, path string, query url.Values) ([]byte, error) {
	f.calls = append(f.calls, apiCall{method: "GET", path: path, values: query})
	if f.getErr != nil {
		return nil, f.getErr
	}

	var want map[string]bool
	for key, vals := range query {
		if strings.HasSuffix(key, "names") && len(vals) > 0 {
			want = make(map[string]bool)
			for _, n := range strings.Split(vals[0], ",") {
				want[n] = true
			}
		}
	}
	if raw, ok := f.raw[path]; ok && want == nil {
		return []byte(raw), nil
	}

	var b strings.Builder
	b.WriteString("{")
	first := true
	for _, n := range f.names[path] {
		if want != nil && !want[n] {
			continue
		}
		if !first {
			b.WriteString(",")
		}
		first = false
		key, _ := json.Marshal(n)
		b.Write(key)
		b.WriteString(`:{"name":`)
		b.Write(key)
		b.WriteString("}")
	}
	b.WriteString("}")
	return []byte(b.String()), nil
}

func (f *fakeAPI) Post(_ context.Context, path string, form url.Values) ([]byte, error) {
	return f.write("POST", path, form)
}

func (f *fakeAPI) Delete(_ context.Context, path string, form url.Values) ([]byte, error) {
	return f.write("DELETE", path, form)
}

func (f *fakeAPI) write(method, path string, form url.Values) ([]byte, error) {
	f.calls = append(f.calls, apiCall{method: method, path: path, values: form})
	if f.postErr != nil {
		return nil, f.postErr
	}
	if f.result == "" {
		return []byte("null"), nil
	}
	return []byte(f.result), nil
}

func (f *fakeAPI) writes() []apiCall {
	var out []apiCall
	for _, c := range f.calls {
		if c.method != "GET" {
			out = append(out, c)
		}
	}
	return out
}
