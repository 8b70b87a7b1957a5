package model

import (
	"testing"
	"time"
)

func TestApplyModerationRecordsDecision(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	p := &Post{Status: PostStatusDraft}
	p.ApplyModeration(PostStatusFlagged, 7, "needs review", now)

	if p.Status != PostStatusFlagged {
		t.Fatalf("status = %q, want %q", p.Status, PostStatusFlagged)
	}
	if p.ModeratedBy == nil || *p.ModeratedBy != 7 {
		t.Fatalf("moderated_by = %v, want 7", p.ModeratedBy)
	}
	if p.ModeratedAt == nil || !p.ModeratedAt.Equal(now) {
		t.Fatalf("moderated_at = %v, want %v", p.ModeratedAt, now)
	}
	if p.ModerationNotes != "needs review" {
		t.Fatalf("moderation_notes = %q, want %q", p.ModerationNotes, "needs review")
	}
}

func TestApplyModerationDraftClearsFields(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	p := &Post{Status: PostStatusDraft}
	p.ApplyModeration(PostStatusRejected, 7, "spam", now)
	p.ApplyModeration(PostStatusDraft, 0, "", now.Add(time.Hour))

	if p.Status != PostStatusDraft {
		t.Fatalf("status = %q, want %q", p.Status, PostStatusDraft)
	}
	if p.ModeratedBy != nil || p.ModeratedAt != nil || p.ModerationNotes != "" {
		t.Fatalf("moderation fields not cleared: by=%v at=%v notes=%q",
			p.ModeratedBy, p.ModeratedAt, p.ModerationNotes)
	}
}
