package output

import (
	"encoding/json"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/yndnr/ultron-cli/internal/core/domain"
)

// empty is shown for missing or empty cells.
const empty = "-"

// TableFormatter formats data as an aligned text table.
type TableFormatter struct {
	NoHeaders bool
}

// Format renders tables, entity sets, single records, values and string
// lists. Other data falls back to indented JSON.
func (f *TableFormatter) Format(w io.Writer, data any) error {
	if data == nil {
		return nil
	}

	var table *Table
	switch v := data.(type) {
	case *Table:
		table = v
	case Table:
		table = &v
	case *domain.Entities:
		table = EntitiesTable(v)
	case *domain.Record:
		table = RecordTable(v)
	case domain.Value:
		table = valueTable(v)
	case []string:
		table = ListTable("NAME", v)
	case map[string]string:
		table = stringMapTable(v)
	default:
		return (&JSONFormatter{}).Format(w, data)
	}

	return table.RenderWithOptions(w, f.NoHeaders)
}

// EntitiesTable renders one row per entity. Columns are NAME followed by
// every other attribute in first-seen order.
func EntitiesTable(e *domain.Entities) *Table {
	var cols []string
	seen := map[string]bool{"name": true}
	e.Each(func(_ string, rec *domain.Record) bool {
		for _, k := range rec.Keys() {
			if !seen[k] {
				seen[k] = true
				cols = append(cols, k)
			}
		}
		return true
	})

	table := &Table{Headers: append([]string{"NAME"}, upper(cols)...)}
	e.Each(func(name string, rec *domain.Record) bool {
		row := []string{name}
		for _, c := range cols {
			v, ok := rec.Get(c)
			if !ok {
				row = append(row, empty)
				continue
			}
			row = append(row, Cell(v))
		}
		table.Rows = append(table.Rows, row)
		return true
	})
	return table
}

// RecordTable renders a single record as FIELD/VALUE rows.
func RecordTable(rec *domain.Record) *Table {
	table := &Table{Headers: []string{"FIELD", "VALUE"}}
	rec.Each(func(k string, v domain.Value) bool {
		table.Rows = append(table.Rows, []string{k, Cell(v)})
		return true
	})
	return table
}

// ListTable renders a single-column table.
func ListTable(header string, items []string) *Table {
	table := &Table{Headers: []string{header}}
	for _, it := range items {
		table.Rows = append(table.Rows, []string{it})
	}
	return table
}

func valueTable(v domain.Value) *Table {
	switch v.Kind() {
	case domain.ValueMap:
		return RecordTable(v.Record())
	case domain.ValueList:
		return ListTable("VALUE", v.Strings())
	default:
		return &Table{Headers: []string{"VALUE"}, Rows: [][]string{{Cell(v)}}}
	}
}

func stringMapTable(m map[string]string) *Table {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	table := &Table{Headers: []string{"KEY", "VALUE"}}
	for _, k := range keys {
		table.Rows = append(table.Rows, []string{k, m[k]})
	}
	return table
}

// Cell renders a value for a table cell. Lists of scalars are joined with
// commas, nested records are shown as compact JSON.
func Cell(v domain.Value) string {
	switch v.Kind() {
	case domain.ValueNull:
		return empty
	case domain.ValueList:
		items := v.List()
		if len(items) == 0 {
			return empty
		}
		parts := make([]string, 0, len(items))
		for _, it := range items {
			if it.Kind() == domain.ValueList || it.Kind() == domain.ValueMap {
				return compact(v)
			}
			parts = append(parts, it.String())
		}
		return strings.Join(parts, ",")
	case domain.ValueMap:
		if v.Record().Len() == 0 {
			return empty
		}
		return compact(v)
	default:
		if s := v.String(); s != "" {
			return s
		}
		return empty
	}
}

func compact(v domain.Value) string {
	data, err := json.Marshal(v)
	if err != nil {
		return v.String()
	}
	return string(data)
}

func upper(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = strings.ToUpper(s)
	}
	return out
}

// Table represents tabular data.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Render renders the table to the writer.
func (t *Table) Render(w io.Writer) error {
	return t.RenderWithOptions(w, false)
}

// RenderWithOptions renders the table with options.
func (t *Table) RenderWithOptions(w io.Writer, noHeaders bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if !noHeaders && len(t.Headers) > 0 {
		if _, err := io.WriteString(tw, strings.Join(t.Headers, "\t")+"\n"); err != nil {
			return err
		}
	}

	for _, row := range t.Rows {
		if _, err := io.WriteString(tw, strings.Join(row, "\t")+"\n"); err != nil {
			return err
		}
	}

	return tw.Flush()
}

// AddRow adds a row to the table.
func (t *Table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}
