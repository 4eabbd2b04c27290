package domain

import "strings"

// TaskStatus is the status a client reports for a task.
type TaskStatus string

const (
	StatusPending TaskStatus = "PENDING"
	StatusSuccess TaskStatus = "SUCCESS"
	StatusFailed  TaskStatus = "FAILED"
)

// PerformedOn is the filter value that matches any recorded status.
const PerformedOn = "performed on"

// ParseTaskStatus normalizes s case-insensitively. ok is false for values
// outside the known statuses.
func ParseTaskStatus(s string) (TaskStatus, bool) {
	st := TaskStatus(strings.ToUpper(strings.TrimSpace(s)))
	switch st {
	case StatusPending, StatusSuccess, StatusFailed:
		return st, true
	}
	return st, false
}

// TaskResult is the per-client record of a task, read from the client's
// "tasks" field. Payload holds the remaining fields the server reported.
type TaskResult struct {
	Status  string
	Payload *Record
}

// TaskResults extracts the task map of a client record. Clients without a
// task map, or with a malformed one, yield nil.
func TaskResults(client *Record) map[string]TaskResult {
	v, ok := client.Get("tasks")
	if !ok || v.Record() == nil {
		return nil
	}
	out := make(map[string]TaskResult, v.Record().Len())
	v.Record().Each(func(task string, item Value) bool {
		rec := item.Record()
		if rec == nil {
			return true
		}
		status, _ := rec.Get("status")
		out[task] = TaskResult{Status: status.String(), Payload: rec}
		return true
	})
	return out
}

// TaskNames returns the task names of a client in server order.
func TaskNames(client *Record) []string {
	v, ok := client.Get("tasks")
	if !ok || v.Record() == nil {
		return nil
	}
	return v.Record().Keys()
}
