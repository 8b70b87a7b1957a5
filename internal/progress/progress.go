// Package progress computes the derived completion percentage of a project
// from its current task set. The rollup is a full recomputation, so it is
// idempotent for a given task set; concurrent recomputes are last-writer-wins
// at the storage layer.
package progress

import (
	"math"

	"taskhub/internal/model"
)

// Compute returns round(100 * completed / total), or 0 for an empty task set.
func Compute(tasks []model.Task) int {
	if len(tasks) == 0 {
		return 0
	}

	completed := 0
	for _, t := range tasks {
		if t.Status == model.TaskStatusCompleted {
			completed++
		}
	}

	return int(math.Round(float64(completed) * 100 / float64(len(tasks))))
}

// FromCounts is Compute over pre-aggregated counts, for callers that count in SQL.
func FromCounts(completed, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(completed) * 100 / float64(total)))
}
