// Package notify plans which users are told about a mutation and dispatches
// the resulting events. Planning is pure; delivery goes through the Sink
// interface and is fire-and-forget — a failed emission never rolls back the
// mutation that produced it.
package notify

import (
	"context"
	"time"

	mqcontracts "taskhub/contracts/mq"
	"taskhub/internal/model"
	"taskhub/pkg/trace"
)

type Kind string

const (
	KindTaskAssigned      Kind = "task_assigned"
	KindTaskUpdated       Kind = "task_updated"
	KindProjectInvitation Kind = "project_invitation"
)

// RoutingKey maps an event kind to its MQ routing key.
func (k Kind) RoutingKey() string {
	switch k {
	case KindTaskAssigned:
		return mqcontracts.RoutingKeyTaskAssigned
	case KindTaskUpdated:
		return mqcontracts.RoutingKeyTaskUpdated
	case KindProjectInvitation:
		return mqcontracts.RoutingKeyProjectInvitation
	default:
		return string(k)
	}
}

// Event is one planned notification for one recipient.
type Event struct {
	Recipient int
	Kind      Kind
	Payload   any
}

// Sink is the delivery boundary. The production implementation writes the
// event into the transactional outbox; tests capture events in memory.
type Sink interface {
	Notify(ctx context.Context, recipient int, kind Kind, payload any) error
}

// PlanTaskEvents decides who hears about a task mutation.
//
// Step 1: if the assignee changed and the new assignee is not the acting
// user, they get a task_assigned event and are excluded from step 2.
//
// Step 2: if anything changed at all, a task_updated event carrying the full
// diff goes to the previous assignee, the new assignee, the task creator and
// the project owner — deduplicated, minus the acting user and anyone already
// covered by step 1. Recipient order follows that list but carries no
// semantic guarantee.
func PlanTaskEvents(
	before, after *model.Task,
	changes map[string]mqcontracts.FieldChange,
	actingUserID int,
	now time.Time,
	traceID string,
) []Event {
	var events []Event

	assignedNotified := 0
	if _, ok := changes["assigned_to"]; ok && after.AssignedTo != nil && *after.AssignedTo != actingUserID {
		events = append(events, Event{
			Recipient: *after.AssignedTo,
			Kind:      KindTaskAssigned,
			Payload: mqcontracts.TaskAssignedPayload{
				EventID:    trace.GenerateTraceID(),
				TaskID:     after.ID,
				TaskTitle:  after.Title,
				AssignedTo: *after.AssignedTo,
				ActingUser: actingUserID,
				TraceID:    traceID,
				CreatedAt:  now,
			},
		})
		assignedNotified = *after.AssignedTo
	}

	if len(changes) == 0 {
		return events
	}

	var candidates []int
	if before.AssignedTo != nil {
		candidates = append(candidates, *before.AssignedTo)
	}
	if after.AssignedTo != nil {
		candidates = append(candidates, *after.AssignedTo)
	}
	candidates = append(candidates, after.CreatedBy)
	if after.Project != nil {
		candidates = append(candidates, after.Project.OwnerID)
	}

	seen := map[int]bool{actingUserID: true, assignedNotified: true}
	for _, uid := range candidates {
		if seen[uid] {
			continue
		}
		seen[uid] = true
		events = append(events, Event{
			Recipient: uid,
			Kind:      KindTaskUpdated,
			Payload: mqcontracts.TaskUpdatedPayload{
				EventID:    trace.GenerateTraceID(),
				TaskID:     after.ID,
				TaskTitle:  after.Title,
				Recipient:  uid,
				ActingUser: actingUserID,
				Changes:    changes,
				TraceID:    traceID,
				CreatedAt:  now,
			},
		})
	}

	return events
}

// PlanProjectInvitation builds the invitation event for a newly added member,
// or nil when the actor invited themselves (no self-notification).
func PlanProjectInvitation(p *model.Project, memberUserID int, role string, actingUserID int, now time.Time, traceID string) *Event {
	if memberUserID == actingUserID {
		return nil
	}
	return &Event{
		Recipient: memberUserID,
		Kind:      KindProjectInvitation,
		Payload: mqcontracts.ProjectInvitationPayload{
			EventID:     trace.GenerateTraceID(),
			ProjectID:   p.ID,
			ProjectName: p.Name,
			Recipient:   memberUserID,
			Role:        role,
			InvitedBy:   actingUserID,
			TraceID:     traceID,
			CreatedAt:   now,
		},
	}
}
