package notify

import (
	"testing"
	"time"

	mqcontracts "taskhub/contracts/mq"
	"taskhub/internal/diff"
	"taskhub/internal/model"
)

var now = time.Date(2026, 4, 2, 9, 0, 0, 0, time.UTC)

func kinds(events []Event) map[Kind][]int {
	out := make(map[Kind][]int)
	for _, e := range events {
		out[e.Kind] = append(out[e.Kind], e.Recipient)
	}
	return out
}

func TestAssignmentByCreatorEmitsOnlyTaskAssigned(t *testing.T) {
	// Task created unassigned by U1, then U1 assigns it to U2. U2 gets one
	// task_assigned; nobody gets task_updated (U2 already covered, creator
	// is the acting user).
	before := &model.Task{ID: 1, CreatedBy: 1, Title: "triage"}
	after := &model.Task{ID: 1, CreatedBy: 1, Title: "triage"}
	u2 := 2
	after.AssignedTo = &u2

	changes := diff.TaskDiff(before, after)
	events := PlanTaskEvents(before, after, changes, 1, now, "")

	byKind := kinds(events)
	if got := byKind[KindTaskAssigned]; len(got) != 1 || got[0] != 2 {
		t.Fatalf("expected one task_assigned to U2, got %v", got)
	}
	if got := byKind[KindTaskUpdated]; len(got) != 0 {
		t.Fatalf("expected zero task_updated events, got %v", got)
	}
}

func TestPriorityChangeByAssigneeNotifiesCreatorAndOwner(t *testing.T) {
	// Creator U1, assignee U2, project owner U3; U2 changes only priority.
	// U1 and U3 get task_updated, U2 (acting) does not.
	u2 := 2
	projectID := 10
	project := &model.Project{ID: projectID, OwnerID: 3}
	before := &model.Task{
		ID: 1, CreatedBy: 1, AssignedTo: &u2, ProjectID: &projectID,
		Priority: model.PriorityLow, Project: project,
	}
	after := &model.Task{
		ID: 1, CreatedBy: 1, AssignedTo: &u2, ProjectID: &projectID,
		Priority: model.PriorityHigh, Project: project,
	}

	changes := diff.TaskDiff(before, after)
	if len(changes) != 1 {
		t.Fatalf("expected only priority to change, got %v", changes)
	}

	events := PlanTaskEvents(before, after, changes, 2, now, "")
	byKind := kinds(events)

	if got := byKind[KindTaskAssigned]; len(got) != 0 {
		t.Fatalf("expected no task_assigned, got %v", got)
	}
	updated := byKind[KindTaskUpdated]
	if len(updated) != 2 || updated[0] != 1 || updated[1] != 3 {
		t.Fatalf("expected task_updated to U1 and U3, got %v", updated)
	}

	payload := events[0].Payload.(mqcontracts.TaskUpdatedPayload)
	change, ok := payload.Changes["priority"]
	if !ok {
		t.Fatalf("expected priority in payload changes, got %v", payload.Changes)
	}
	if change.Old != model.PriorityLow || change.New != model.PriorityHigh {
		t.Fatalf("priority change = %+v", change)
	}
}

func TestReassignmentNotifiesPreviousAssignee(t *testing.T) {
	// U1 reassigns from U2 to U3: U3 gets task_assigned and is suppressed
	// from the generic batch; U2 (previous assignee) gets task_updated.
	u2, u3 := 2, 3
	before := &model.Task{ID: 1, CreatedBy: 1, AssignedTo: &u2}
	after := &model.Task{ID: 1, CreatedBy: 1, AssignedTo: &u3}

	events := PlanTaskEvents(before, after, diff.TaskDiff(before, after), 1, now, "")

	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d: %v", len(events), events)
	}
	if events[0].Kind != KindTaskAssigned || events[0].Recipient != 3 {
		t.Fatalf("step 1 must be task_assigned to U3, got %+v", events[0])
	}
	if events[1].Kind != KindTaskUpdated || events[1].Recipient != 2 {
		t.Fatalf("expected task_updated to previous assignee U2, got %+v", events[1])
	}
}

func TestSelfAssignmentDoesNotNotifyActor(t *testing.T) {
	u2 := 2
	before := &model.Task{ID: 1, CreatedBy: 1}
	after := &model.Task{ID: 1, CreatedBy: 1, AssignedTo: &u2}

	// U2 assigns the task to themselves: no task_assigned, creator still
	// hears about the change.
	events := PlanTaskEvents(before, after, diff.TaskDiff(before, after), 2, now, "")

	byKind := kinds(events)
	if got := byKind[KindTaskAssigned]; len(got) != 0 {
		t.Fatalf("self-assignment must not emit task_assigned, got %v", got)
	}
	if got := byKind[KindTaskUpdated]; len(got) != 1 || got[0] != 1 {
		t.Fatalf("expected task_updated to creator only, got %v", got)
	}
}

func TestEmptyDiffEmitsNothing(t *testing.T) {
	u2 := 2
	task := &model.Task{ID: 1, CreatedBy: 1, AssignedTo: &u2}

	events := PlanTaskEvents(task, task, nil, 1, now, "")
	if len(events) != 0 {
		t.Fatalf("expected no events for an empty diff, got %v", events)
	}
}

func TestRecipientsAreDeduplicated(t *testing.T) {
	// Creator is also the project owner and previous assignee: one event.
	u1 := 1
	project := &model.Project{ID: 5, OwnerID: 1}
	projectID := project.ID
	before := &model.Task{ID: 1, CreatedBy: 1, AssignedTo: &u1, ProjectID: &projectID, Project: project, Notes: ""}
	after := &model.Task{ID: 1, CreatedBy: 1, AssignedTo: &u1, ProjectID: &projectID, Project: project, Notes: "updated"}

	events := PlanTaskEvents(before, after, diff.TaskDiff(before, after), 9, now, "")
	if len(events) != 1 {
		t.Fatalf("expected a single deduplicated event, got %v", events)
	}
	if events[0].Recipient != 1 || events[0].Kind != KindTaskUpdated {
		t.Fatalf("unexpected event %+v", events[0])
	}
}

func TestPlanProjectInvitation(t *testing.T) {
	p := &model.Project{ID: 5, OwnerID: 1, Name: "Launch"}

	ev := PlanProjectInvitation(p, 2, model.MemberRoleManager, 1, now, "")
	if ev == nil || ev.Recipient != 2 || ev.Kind != KindProjectInvitation {
		t.Fatalf("unexpected invitation event %+v", ev)
	}
	payload := ev.Payload.(mqcontracts.ProjectInvitationPayload)
	if payload.ProjectID != 5 || payload.Role != model.MemberRoleManager || payload.InvitedBy != 1 {
		t.Fatalf("unexpected payload %+v", payload)
	}

	if ev := PlanProjectInvitation(p, 1, model.MemberRoleMember, 1, now, ""); ev != nil {
		t.Fatalf("self-invitation must not notify, got %+v", ev)
	}
}
