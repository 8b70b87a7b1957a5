package diff

import (
	"testing"
	"time"

	"taskhub/internal/model"
)

func baseTask() *model.Task {
	assignee := 7
	hours := 8.0
	due := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	return &model.Task{
		ID:             1,
		CreatedBy:      3,
		AssignedTo:     &assignee,
		Title:          "Write migration",
		Description:    "schema v2",
		Status:         model.TaskStatusTodo,
		Priority:       model.PriorityMedium,
		DueDate:        &due,
		EstimatedHours: &hours,
		Progress:       0,
		Tags:           []string{"db", "backend"},
		Notes:          "",
	}
}

func TestTaskDiffIdenticalIsEmpty(t *testing.T) {
	a := baseTask()
	b := baseTask()

	if changes := TaskDiff(a, b); len(changes) != 0 {
		t.Fatalf("expected empty diff, got %v", changes)
	}
}

func TestTaskDiffReportsExactlyChangedFields(t *testing.T) {
	before := baseTask()
	after := baseTask()
	after.Priority = model.PriorityUrgent
	after.Progress = 50
	newAssignee := 9
	after.AssignedTo = &newAssignee

	changes := TaskDiff(before, after)
	if len(changes) != 3 {
		t.Fatalf("expected 3 changes, got %d: %v", len(changes), changes)
	}

	pr, ok := changes["priority"]
	if !ok {
		t.Fatal("expected priority change")
	}
	if pr.Old != model.PriorityMedium || pr.New != model.PriorityUrgent {
		t.Fatalf("priority change = %+v", pr)
	}

	if _, ok := changes["progress"]; !ok {
		t.Fatal("expected progress change")
	}
	as, ok := changes["assigned_to"]
	if !ok {
		t.Fatal("expected assigned_to change")
	}
	if as.Old != 7 || as.New != 9 {
		t.Fatalf("assigned_to change = %+v", as)
	}
}

func TestLooseEqualityCoercesNumericStrings(t *testing.T) {
	before := map[string]any{"progress": 25, "estimated_hours": 8.0, "title": "a"}
	after := map[string]any{"progress": "25", "estimated_hours": "8", "title": "a"}

	changes := Fields(before, after, []string{"progress", "estimated_hours", "title"})
	if len(changes) != 0 {
		t.Fatalf("numeric strings should compare equal, got %v", changes)
	}

	after["progress"] = "26"
	changes = Fields(before, after, []string{"progress", "estimated_hours", "title"})
	if len(changes) != 1 {
		t.Fatalf("expected only progress to differ, got %v", changes)
	}
}

func TestNilHandling(t *testing.T) {
	before := baseTask()
	after := baseTask()
	after.AssignedTo = nil
	after.DueDate = nil

	changes := TaskDiff(before, after)
	if len(changes) != 2 {
		t.Fatalf("expected 2 changes, got %v", changes)
	}
	if changes["assigned_to"].New != nil {
		t.Fatalf("expected nil new assignee, got %v", changes["assigned_to"].New)
	}

	// nil vs nil is equal across both snapshots
	before.AssignedTo = nil
	before.DueDate = nil
	if changes := TaskDiff(before, after); len(changes) != 0 {
		t.Fatalf("nil == nil should not diff, got %v", changes)
	}
}

func TestTagsCompareByElements(t *testing.T) {
	before := baseTask()
	after := baseTask()
	after.Tags = []string{"db", "backend"}

	if changes := TaskDiff(before, after); len(changes) != 0 {
		t.Fatalf("equal tag slices should not diff, got %v", changes)
	}

	after.Tags = []string{"db"}
	changes := TaskDiff(before, after)
	if _, ok := changes["tags"]; !ok {
		t.Fatalf("expected tags change, got %v", changes)
	}
}
