package service

import (
	"context"
	"strings"

	"github.com/yndnr/ultron-cli/internal/core/domain"
)

// MaxDistinctValues is the largest number of distinct values a state or
// prop key may have and still be shown in a histogram.
const MaxDistinctValues = 15

// Field names read from client records.
const (
	FieldState = "state"
	FieldProps = "props"
)

// TaskCounts is the per-task status bucket.
type TaskCounts struct {
	PerformedOn int `json:"performed_on" yaml:"performed_on"`
	Success     int `json:"success" yaml:"success"`
	Failed      int `json:"failed" yaml:"failed"`
	Pending     int `json:"pending" yaml:"pending"`
}

// TaskStat is the aggregate for one task.
type TaskStat struct {
	Task   string     `json:"task" yaml:"task"`
	Counts TaskCounts `json:"counts" yaml:"counts"`
}

// ValueCount is one bar of a histogram.
type ValueCount struct {
	Value string `json:"value" yaml:"value"`
	Count int    `json:"count" yaml:"count"`
}

// Histogram counts the values observed for one state or prop key.
type Histogram struct {
	Key    string       `json:"key" yaml:"key"`
	Values []ValueCount `json:"values" yaml:"values"`
}

// Stats aggregates the clients of an inventory.
type Stats struct {
	clients *Resources
}

// NewStats creates a statistics aggregator.
func NewStats(api API) *Stats {
	return &Stats{clients: NewResources(api, ClientKind)}
}

// Fetch loads every client of the scope in a single request.
func (s *Stats) Fetch(ctx context.Context, scope domain.Scope) (*domain.Entities, error) {
	return s.clients.List(ctx, scope, Query{})
}

// TaskStats counts task statuses across clients, one entry per task in
// first-seen order. When only is non-empty just those tasks are counted.
func TaskStats(clients *domain.Entities, only []string) []TaskStat {
	keep := nameSet(only)
	var order []string
	counts := make(map[string]*TaskCounts)

	clients.Each(func(_ string, rec *domain.Record) bool {
		results := domain.TaskResults(rec)
		for _, task := range domain.TaskNames(rec) {
			res, ok := results[task]
			if !ok || (keep != nil && !keep[task]) {
				continue
			}
			c, seen := counts[task]
			if !seen {
				c = &TaskCounts{}
				counts[task] = c
				order = append(order, task)
			}
			c.PerformedOn++
			if st, known := domain.ParseTaskStatus(res.Status); known {
				switch st {
				case domain.StatusSuccess:
					c.Success++
				case domain.StatusFailed:
					c.Failed++
				case domain.StatusPending:
					c.Pending++
				}
			}
		}
		return true
	})

	out := make([]TaskStat, 0, len(order))
	for _, task := range order {
		out = append(out, TaskStat{Task: task, Counts: *counts[task]})
	}
	return out
}

// Histograms counts the values of each key under field ("state" or
// "props") across clients. Keys with more than MaxDistinctValues distinct
// values are dropped. Keys and values keep first-seen order.
func Histograms(clients *domain.Entities, field string, only []string) []Histogram {
	keep := nameSet(only)
	var keys []string
	hists := make(map[string]*histogram)

	clients.Each(func(_ string, rec *domain.Record) bool {
		v, ok := rec.Get(field)
		if !ok || v.Record() == nil {
			return true
		}
		v.Record().Each(func(key string, val domain.Value) bool {
			if keep != nil && !keep[key] {
				return true
			}
			h, seen := hists[key]
			if !seen {
				h = &histogram{counts: make(map[string]int)}
				hists[key] = h
				keys = append(keys, key)
			}
			h.add(val.String())
			return true
		})
		return true
	})

	out := make([]Histogram, 0, len(keys))
	for _, key := range keys {
		h := hists[key]
		if len(h.order) > MaxDistinctValues {
			continue
		}
		out = append(out, Histogram{Key: key, Values: h.values()})
	}
	return out
}

type histogram struct {
	order  []string
	counts map[string]int
}

func (h *histogram) add(v string) {
	if _, ok := h.counts[v]; !ok {
		h.order = append(h.order, v)
	}
	h.counts[v]++
}

func (h *histogram) values() []ValueCount {
	out := make([]ValueCount, 0, len(h.order))
	for _, v := range h.order {
		out = append(out, ValueCount{Value: v, Count: h.counts[v]})
	}
	return out
}

// FilterByTask returns the clients whose status for task equals value,
// ignoring case. The value "performed on" matches any recorded status.
func FilterByTask(clients *domain.Entities, task, value string) *domain.Entities {
	anyStatus := value == domain.PerformedOn
	return filter(clients, func(rec *domain.Record) bool {
		res, ok := domain.TaskResults(rec)[task]
		if !ok {
			return false
		}
		return anyStatus || strings.EqualFold(res.Status, value)
	})
}

// FilterByField returns the clients whose field[key] renders exactly as
// value. Numbers compare by the server's text, booleans as true/false and
// null as the empty string.
func FilterByField(clients *domain.Entities, field, key, value string) *domain.Entities {
	return filter(clients, func(rec *domain.Record) bool {
		v, ok := rec.Get(field)
		if !ok || v.Record() == nil {
			return false
		}
		got, ok := v.Record().Get(key)
		return ok && got.String() == value
	})
}

func filter(clients *domain.Entities, match func(*domain.Record) bool) *domain.Entities {
	out := domain.NewEntities()
	clients.Each(func(name string, rec *domain.Record) bool {
		if match(rec) {
			out.Add(name, rec)
		}
		return true
	})
	return out
}

func nameSet(names []string) map[string]bool {
	names = Dedup(names)
	if len(names) == 0 {
		return nil
	}
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}
