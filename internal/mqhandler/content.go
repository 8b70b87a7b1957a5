package mqhandler

import (
	"fmt"
	"sort"
	"strings"

	mqcontracts "taskhub/contracts/mq"
)

// fieldLabels maps tracked task fields onto the wording used in
// notification messages.
var fieldLabels = map[string]string{
	"title":           "title",
	"description":     "description",
	"status":          "status",
	"priority":        "priority",
	"due_date":        "due date",
	"assigned_to":     "assignee",
	"project_id":      "project",
	"estimated_hours": "estimated hours",
	"actual_hours":    "actual hours",
	"tags":            "tags",
	"progress":        "progress",
	"completed_at":    "completion time",
}

func formatValue(v any) string {
	if v == nil {
		return "none"
	}
	return fmt.Sprintf("%v", v)
}

// formatChanges renders a change set as a stable, human-readable summary,
// e.g. `status: todo → done; priority: low → high`.
func formatChanges(changes map[string]mqcontracts.FieldChange) string {
	fields := make([]string, 0, len(changes))
	for f := range changes {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		label, ok := fieldLabels[f]
		if !ok {
			label = f
		}
		ch := changes[f]
		parts = append(parts, fmt.Sprintf("%s: %s → %s", label, formatValue(ch.Old), formatValue(ch.New)))
	}
	return strings.Join(parts, "; ")
}

func taskAssignedContent(p *mqcontracts.TaskAssignedPayload) string {
	return fmt.Sprintf("You have been assigned the task %q", p.TaskTitle)
}

func taskUpdatedContent(p *mqcontracts.TaskUpdatedPayload) string {
	if len(p.Changes) == 0 {
		return fmt.Sprintf("The task %q was updated", p.TaskTitle)
	}
	return fmt.Sprintf("The task %q was updated (%s)", p.TaskTitle, formatChanges(p.Changes))
}

func projectInvitationContent(p *mqcontracts.ProjectInvitationPayload) string {
	return fmt.Sprintf("You have been added to the project %q as %s", p.ProjectName, p.Role)
}
