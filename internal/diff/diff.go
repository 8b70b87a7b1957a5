// Package diff computes the changed-field set between two task snapshots.
//
// Comparison is deliberately loose: numeric values compare equal across
// types, and a numeric string compares equal to its number ("8" == 8).
// This is a compatibility shim for fields historically stored as either
// type, not a strict deep-equality diff.
package diff

import (
	"reflect"
	"slices"
	"strconv"
	"time"

	mqcontracts "taskhub/contracts/mq"
	"taskhub/internal/model"
)

// TrackedTaskFields are the mutable task fields that participate in change
// tracking. Fields outside this list never appear in a diff.
var TrackedTaskFields = []string{
	"title",
	"description",
	"project_id",
	"assigned_to",
	"status",
	"priority",
	"due_date",
	"estimated_hours",
	"actual_hours",
	"progress",
	"tags",
	"notes",
}

// TaskFields snapshots the tracked fields of a task. Nil pointers become
// untyped nils so that absent values compare equal regardless of field type.
func TaskFields(t *model.Task) map[string]any {
	f := map[string]any{
		"title":       t.Title,
		"description": t.Description,
		"status":      t.Status,
		"priority":    t.Priority,
		"progress":    t.Progress,
		"tags":        t.Tags,
		"notes":       t.Notes,
	}

	if t.ProjectID != nil {
		f["project_id"] = *t.ProjectID
	} else {
		f["project_id"] = nil
	}
	if t.AssignedTo != nil {
		f["assigned_to"] = *t.AssignedTo
	} else {
		f["assigned_to"] = nil
	}
	if t.DueDate != nil {
		f["due_date"] = *t.DueDate
	} else {
		f["due_date"] = nil
	}
	if t.EstimatedHours != nil {
		f["estimated_hours"] = *t.EstimatedHours
	} else {
		f["estimated_hours"] = nil
	}
	if t.ActualHours != nil {
		f["actual_hours"] = *t.ActualHours
	} else {
		f["actual_hours"] = nil
	}

	return f
}

// Fields returns the tracked fields whose values differ between the two
// snapshots, keyed by field name.
func Fields(before, after map[string]any, tracked []string) map[string]mqcontracts.FieldChange {
	changes := make(map[string]mqcontracts.FieldChange)
	for _, name := range tracked {
		oldVal, newVal := before[name], after[name]
		if !looseEqual(oldVal, newVal) {
			changes[name] = mqcontracts.FieldChange{Old: oldVal, New: newVal}
		}
	}
	return changes
}

// TaskDiff diffs two tasks over the tracked field list.
func TaskDiff(before, after *model.Task) map[string]mqcontracts.FieldChange {
	return Fields(TaskFields(before), TaskFields(after), TrackedTaskFields)
}

func looseEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	// 数字宽松比较："8" == 8 == 8.0
	if fa, ok := asFloat(a); ok {
		if fb, ok := asFloat(b); ok {
			return fa == fb
		}
		return false
	}

	if ta, ok := a.(time.Time); ok {
		tb, ok := b.(time.Time)
		return ok && ta.Equal(tb)
	}

	if sa, ok := a.([]string); ok {
		sb, ok := b.([]string)
		return ok && slices.Equal(sa, sb)
	}

	return reflect.DeepEqual(a, b)
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	default:
		return 0, false
	}
}
