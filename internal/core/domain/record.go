package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// ValueKind tags the dynamic type held by a Value.
type ValueKind int

const (
	ValueNull ValueKind = iota
	ValueString
	ValueNumber
	ValueBool
	ValueList
	ValueMap
)

// Value is a server-provided field value. Field sets are server driven and
// depend on the requested projection, so values are kept as tagged unions
// instead of fixed structs.
type Value struct {
	kind ValueKind
	str  string // string content, or the raw JSON text of a number
	num  float64
	b    bool
	list []Value
	rec  *Record
}

// StringValue returns a string value.
func StringValue(s string) Value { return Value{kind: ValueString, str: s} }

// NumberValue returns a numeric value.
func NumberValue(n float64) Value {
	return Value{kind: ValueNumber, num: n, str: strconv.FormatFloat(n, 'f', -1, 64)}
}

// BoolValue returns a boolean value.
func BoolValue(b bool) Value { return Value{kind: ValueBool, b: b} }

// ListValue returns a list value.
func ListValue(items ...Value) Value { return Value{kind: ValueList, list: items} }

// MapValue returns a nested record value. A nil record yields an empty one.
func MapValue(r *Record) Value {
	if r == nil {
		r = NewRecord()
	}
	return Value{kind: ValueMap, rec: r}
}

// Kind returns the tag of the value.
func (v Value) Kind() ValueKind { return v.kind }

// IsNull reports whether the value is JSON null (or the zero Value).
func (v Value) IsNull() bool { return v.kind == ValueNull }

// Str returns the string content if the value is a string.
func (v Value) Str() (string, bool) { return v.str, v.kind == ValueString }

// Num returns the number if the value is numeric.
func (v Value) Num() (float64, bool) { return v.num, v.kind == ValueNumber }

// Bool returns the boolean if the value is a bool.
func (v Value) Bool() (bool, bool) { return v.b, v.kind == ValueBool }

// List returns the items of a list value, nil otherwise.
func (v Value) List() []Value {
	if v.kind != ValueList {
		return nil
	}
	return v.list
}

// Record returns the nested record of a map value, nil otherwise.
func (v Value) Record() *Record {
	if v.kind != ValueMap {
		return nil
	}
	return v.rec
}

// String renders the value the way it is displayed and compared:
// strings verbatim, numbers in the server's JSON notation, booleans as
// true/false, null as the empty string, lists and maps as compact JSON.
func (v Value) String() string {
	switch v.kind {
	case ValueString, ValueNumber:
		return v.str
	case ValueBool:
		return strconv.FormatBool(v.b)
	case ValueList, ValueMap:
		data, err := v.MarshalJSON()
		if err != nil {
			return ""
		}
		return string(data)
	default:
		return ""
	}
}

// Strings returns the String form of each list item. For non-list values
// it returns a single-element slice, or nil for null.
func (v Value) Strings() []string {
	switch v.kind {
	case ValueNull:
		return nil
	case ValueList:
		out := make([]string, 0, len(v.list))
		for _, item := range v.list {
			out = append(out, item.String())
		}
		return out
	default:
		return []string{v.String()}
	}
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case ValueString:
		return json.Marshal(v.str)
	case ValueNumber:
		return []byte(v.str), nil
	case ValueBool:
		return []byte(strconv.FormatBool(v.b)), nil
	case ValueList:
		var buf bytes.Buffer
		buf.WriteByte('[')
		for i, item := range v.list {
			if i > 0 {
				buf.WriteByte(',')
			}
			data, err := item.MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf.Write(data)
		}
		buf.WriteByte(']')
		return buf.Bytes(), nil
	case ValueMap:
		return v.rec.MarshalJSON()
	default:
		return []byte("null"), nil
	}
}

// MarshalYAML implements yaml.Marshaler, keeping map key order.
func (v Value) MarshalYAML() (any, error) {
	return v.yamlNode(), nil
}

func (v Value) yamlNode() *yaml.Node {
	switch v.kind {
	case ValueString:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.str}
	case ValueNumber:
		tag := "!!float"
		if !strings.ContainsAny(v.str, ".eE") {
			tag = "!!int"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: v.str}
	case ValueBool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(v.b)}
	case ValueList:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range v.list {
			n.Content = append(n.Content, item.yamlNode())
		}
		return n
	case ValueMap:
		return v.rec.yamlNode()
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
}

// Record is an ordered mapping from field name to Value.
// Iteration follows insertion order, which for decoded payloads is the
// order the server sent.
type Record struct {
	keys []string
	vals map[string]Value
}

// NewRecord creates an empty record.
func NewRecord() *Record {
	return &Record{vals: make(map[string]Value)}
}

// Set stores v under key. Existing keys keep their position.
func (r *Record) Set(key string, v Value) {
	if r.vals == nil {
		r.vals = make(map[string]Value)
	}
	if _, ok := r.vals[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.vals[key] = v
}

// Get returns the value stored under key.
func (r *Record) Get(key string) (Value, bool) {
	if r == nil {
		return Value{}, false
	}
	v, ok := r.vals[key]
	return v, ok
}

// Has reports whether key is present.
func (r *Record) Has(key string) bool {
	_, ok := r.Get(key)
	return ok
}

// Keys returns the keys in order.
func (r *Record) Keys() []string {
	if r == nil {
		return nil
	}
	return append([]string(nil), r.keys...)
}

// Len returns the number of fields.
func (r *Record) Len() int {
	if r == nil {
		return 0
	}
	return len(r.keys)
}

// Each calls fn for every field in order until fn returns false.
func (r *Record) Each(fn func(key string, v Value) bool) {
	if r == nil {
		return
	}
	for _, k := range r.keys {
		if !fn(k, r.vals[k]) {
			return
		}
	}
}

// MarshalJSON implements json.Marshaler, keeping key order.
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		data, err := r.vals[k].MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(data)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML implements yaml.Marshaler, keeping key order.
func (r *Record) MarshalYAML() (any, error) {
	return r.yamlNode(), nil
}

func (r *Record) yamlNode() *yaml.Node {
	n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	r.Each(func(k string, v Value) bool {
		n.Content = append(n.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
			v.yamlNode(),
		)
		return true
	})
	return n
}

// DecodeValue parses a JSON document into a Value, preserving object key order.
func DecodeValue(data []byte) (Value, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return Value{}, nil
	}
	if !gjson.ValidBytes(data) {
		return Value{}, ErrValidation.WithMessage("invalid JSON payload")
	}
	return fromResult(gjson.ParseBytes(data)), nil
}

func fromResult(r gjson.Result) Value {
	switch r.Type {
	case gjson.String:
		return StringValue(r.Str)
	case gjson.Number:
		return Value{kind: ValueNumber, num: r.Num, str: r.Raw}
	case gjson.True:
		return BoolValue(true)
	case gjson.False:
		return BoolValue(false)
	case gjson.JSON:
		if r.IsArray() {
			items := []Value{}
			r.ForEach(func(_, item gjson.Result) bool {
				items = append(items, fromResult(item))
				return true
			})
			return ListValue(items...)
		}
		rec := NewRecord()
		r.ForEach(func(key, item gjson.Result) bool {
			rec.Set(key.String(), fromResult(item))
			return true
		})
		return MapValue(rec)
	default:
		return Value{}
	}
}

// Entities maps entity names to their attribute records, in server order.
type Entities struct {
	names  []string
	byName map[string]*Record
}

// NewEntities creates an empty result set.
func NewEntities() *Entities {
	return &Entities{byName: make(map[string]*Record)}
}

// Add stores rec under name. A nil record is stored as an empty one.
func (e *Entities) Add(name string, rec *Record) {
	if rec == nil {
		rec = NewRecord()
	}
	if _, ok := e.byName[name]; !ok {
		e.names = append(e.names, name)
	}
	e.byName[name] = rec
}

// Get returns the record of the named entity.
func (e *Entities) Get(name string) (*Record, bool) {
	if e == nil {
		return nil, false
	}
	r, ok := e.byName[name]
	return r, ok
}

// Has reports whether the named entity is present.
func (e *Entities) Has(name string) bool {
	_, ok := e.Get(name)
	return ok
}

// Names returns the entity names in order.
func (e *Entities) Names() []string {
	if e == nil {
		return nil
	}
	return append([]string(nil), e.names...)
}

// Len returns the number of entities.
func (e *Entities) Len() int {
	if e == nil {
		return 0
	}
	return len(e.names)
}

// Each calls fn for every entity in order until fn returns false.
func (e *Entities) Each(fn func(name string, rec *Record) bool) {
	if e == nil {
		return
	}
	for _, n := range e.names {
		if !fn(n, e.byName[n]) {
			return
		}
	}
}

// Record returns the result set as a single record keyed by entity name.
func (e *Entities) Record() *Record {
	out := NewRecord()
	e.Each(func(name string, rec *Record) bool {
		out.Set(name, MapValue(rec))
		return true
	})
	return out
}

// MarshalJSON implements json.Marshaler, keeping entity order.
func (e *Entities) MarshalJSON() ([]byte, error) {
	return e.Record().MarshalJSON()
}

// MarshalYAML implements yaml.Marshaler, keeping entity order.
func (e *Entities) MarshalYAML() (any, error) {
	return e.Record().yamlNode(), nil
}

// DecodeEntities parses a `result` payload of the shape
// {"<name>": {<field>: <value>, ...}, ...}.
// An empty payload or JSON null yields an empty set. Entries whose value is
// not an object are kept with an empty record.
func DecodeEntities(data []byte) (*Entities, error) {
	v, err := DecodeValue(data)
	if err != nil {
		return nil, err
	}
	out := NewEntities()
	switch v.Kind() {
	case ValueNull:
		return out, nil
	case ValueMap:
		v.Record().Each(func(name string, item Value) bool {
			out.Add(name, item.Record())
			return true
		})
		return out, nil
	case ValueList:
		// Some endpoints answer an empty list instead of an empty object.
		if len(v.List()) == 0 {
			return out, nil
		}
	}
	return nil, ErrValidation.WithMessage("unexpected result payload").WithDetails(truncate(string(data), 80))
}

// truncate shortens s to at most n bytes without splitting a UTF-8
// sequence.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := n - 3
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
