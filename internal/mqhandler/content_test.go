package mqhandler

import (
	"testing"

	mqcontracts "taskhub/contracts/mq"
)

func TestFormatChangesStableOrder(t *testing.T) {
	changes := map[string]mqcontracts.FieldChange{
		"status":   {Old: "todo", New: "in_progress"},
		"priority": {Old: "low", New: "high"},
	}

	got := formatChanges(changes)
	want := "priority: low → high; status: todo → in_progress"
	if got != want {
		t.Fatalf("formatChanges = %q, want %q", got, want)
	}
}

func TestFormatChangesNilValues(t *testing.T) {
	changes := map[string]mqcontracts.FieldChange{
		"assigned_to": {Old: nil, New: 42},
	}

	got := formatChanges(changes)
	want := "assignee: none → 42"
	if got != want {
		t.Fatalf("formatChanges = %q, want %q", got, want)
	}
}

func TestTaskUpdatedContent(t *testing.T) {
	p := &mqcontracts.TaskUpdatedPayload{
		TaskTitle: "Ship release",
		Changes: map[string]mqcontracts.FieldChange{
			"due_date": {Old: nil, New: "2025-07-01"},
		},
	}

	got := taskUpdatedContent(p)
	want := `The task "Ship release" was updated (due date: none → 2025-07-01)`
	if got != want {
		t.Fatalf("taskUpdatedContent = %q, want %q", got, want)
	}
}

func TestProjectInvitationContent(t *testing.T) {
	p := &mqcontracts.ProjectInvitationPayload{
		ProjectName: "Apollo",
		Role:        "manager",
	}

	got := projectInvitationContent(p)
	want := `You have been added to the project "Apollo" as manager`
	if got != want {
		t.Fatalf("projectInvitationContent = %q, want %q", got, want)
	}
}
