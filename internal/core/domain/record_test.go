package domain

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

func TestDecodeValue_PreservesOrder(t *testing.T) {
	v, err := DecodeValue([]byte(`{"zeta":1,"alpha":"a","mid":true}`))
	if err != nil {
		t.Fatalf("DecodeValue() error = %v", err)
	}
	rec := v.Record()
	if rec == nil {
		t.Fatal("expected a map value")
	}
	got := strings.Join(rec.Keys(), ",")
	if got != "zeta,alpha,mid" {
		t.Errorf("Keys() = %q, want %q", got, "zeta,alpha,mid")
	}
}

func TestDecodeValue_Kinds(t *testing.T) {
	v, err := DecodeValue([]byte(`{"s":"x","n":1.50,"i":4,"b":false,"l":["a",2],"m":{"k":null},"z":null}`))
	if err != nil {
		t.Fatalf("DecodeValue() error = %v", err)
	}
	rec := v.Record()

	tests := []struct {
		key    string
		kind   ValueKind
		String string
	}{
		{"s", ValueString, "x"},
		{"n", ValueNumber, "1.50"},
		{"i", ValueNumber, "4"},
		{"b", ValueBool, "false"},
		{"l", ValueList, `["a",2]`},
		{"m", ValueMap, `{"k":null}`},
		{"z", ValueNull, ""},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, ok := rec.Get(tt.key)
			if !ok {
				t.Fatalf("key %q missing", tt.key)
			}
			if got.Kind() != tt.kind {
				t.Errorf("Kind() = %v, want %v", got.Kind(), tt.kind)
			}
			if got.String() != tt.String {
				t.Errorf("String() = %q, want %q", got.String(), tt.String)
			}
		})
	}
}

func TestDecodeValue_Invalid(t *testing.T) {
	if _, err := DecodeValue([]byte(`{"a":`)); !IsKind(err, KindValidation) {
		t.Errorf("DecodeValue() error = %v, want validation error", err)
	}
	v, err := DecodeValue(nil)
	if err != nil || !v.IsNull() {
		t.Errorf("DecodeValue(nil) = %v, %v; want null, nil", v, err)
	}
}

func TestRecord_SetKeepsPosition(t *testing.T) {
	r := NewRecord()
	r.Set("a", StringValue("1"))
	r.Set("b", StringValue("2"))
	r.Set("a", StringValue("3"))

	if got := strings.Join(r.Keys(), ","); got != "a,b" {
		t.Errorf("Keys() = %q, want %q", got, "a,b")
	}
	v, _ := r.Get("a")
	if v.String() != "3" {
		t.Errorf("Get(a) = %q, want %q", v.String(), "3")
	}
}

func TestRecord_NilSafe(t *testing.T) {
	var r *Record
	if r.Len() != 0 || r.Keys() != nil || r.Has("x") {
		t.Error("nil record should behave as empty")
	}
	r.Each(func(string, Value) bool {
		t.Error("Each on nil record should not call fn")
		return true
	})
}

func TestRecord_MarshalJSON(t *testing.T) {
	r := NewRecord()
	r.Set("name", StringValue("web-1"))
	r.Set("cpu", NumberValue(4))
	r.Set("up", BoolValue(true))
	r.Set("groups", ListValue(StringValue("db"), StringValue("web")))

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	want := `{"name":"web-1","cpu":4,"up":true,"groups":["db","web"]}`
	if string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}
}

func TestRecord_MarshalYAML(t *testing.T) {
	v, err := DecodeValue([]byte(`{"z":"1","a":{"n":2,"f":1.5},"l":[true]}`))
	if err != nil {
		t.Fatal(err)
	}

	data, err := yaml.Marshal(v.Record())
	if err != nil {
		t.Fatalf("yaml.Marshal() error = %v", err)
	}
	want := "z: \"1\"\na:\n    n: 2\n    f: 1.5\nl:\n    - true\n"
	if string(data) != want {
		t.Errorf("yaml.Marshal() =\n%s\nwant\n%s", data, want)
	}
}

func TestValue_Strings(t *testing.T) {
	v, _ := DecodeValue([]byte(`["db","web"]`))
	if got := strings.Join(v.Strings(), ","); got != "db,web" {
		t.Errorf("Strings() = %q", got)
	}
	if got := StringValue("x").Strings(); len(got) != 1 || got[0] != "x" {
		t.Errorf("Strings() = %v", got)
	}
	if (Value{}).Strings() != nil {
		t.Error("Strings() of null should be nil")
	}
}

func TestDecodeEntities(t *testing.T) {
	e, err := DecodeEntities([]byte(`{"web-2":{"name":"web-2"},"web-1":{"name":"web-1","props":{"os":"linux"}},"odd":null}`))
	if err != nil {
		t.Fatalf("DecodeEntities() error = %v", err)
	}
	if got := strings.Join(e.Names(), ","); got != "web-2,web-1,odd" {
		t.Errorf("Names() = %q", got)
	}
	rec, ok := e.Get("odd")
	if !ok || rec == nil || rec.Len() != 0 {
		t.Error("non-object entry should be kept with an empty record")
	}

	data, err := json.Marshal(e)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), `{"web-2":`) {
		t.Errorf("Marshal() = %s, want entity order kept", data)
	}
}

func TestDecodeEntities_Empty(t *testing.T) {
	for _, in := range []string{``, `null`, `{}`, `[]`} {
		e, err := DecodeEntities([]byte(in))
		if err != nil {
			t.Errorf("DecodeEntities(%q) error = %v", in, err)
			continue
		}
		if e.Len() != 0 {
			t.Errorf("DecodeEntities(%q).Len() = %d, want 0", in, e.Len())
		}
	}
}

func TestDecodeEntities_Unexpected(t *testing.T) {
	if _, err := DecodeEntities([]byte(`"text"`)); !IsKind(err, KindValidation) {
		t.Errorf("DecodeEntities() error = %v, want validation error", err)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		n    int
		want string
	}{
		{"short", "abc", 10, "abc"},
		{"ascii", "abcdefghij", 8, "abcde..."},
		{"keeps whole rune", "abcdé-fgh", 8, "abcd..."},
		{"multibyte only", "ééééé", 6, "é..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.in, tt.n)
			if got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
			}
			if !utf8.ValidString(got) {
				t.Errorf("truncate(%q, %d) = %q is not valid UTF-8", tt.in, tt.n, got)
			}
		})
	}
}

func TestDecodeEntities_UnexpectedDetailsValidUTF8(t *testing.T) {
	payload := `"x` + strings.Repeat("é", 60) + `"`
	_, err := DecodeEntities([]byte(payload))
	var derr *Error
	if !errors.As(err, &derr) {
		t.Fatalf("DecodeEntities() error = %v, want *Error", err)
	}
	if !utf8.ValidString(derr.Details) {
		t.Errorf("Details = %q is not valid UTF-8", derr.Details)
	}
}
