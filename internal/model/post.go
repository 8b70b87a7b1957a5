package model

import "time"

// Post moderation statuses.
const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"
	PostStatusFlagged   = "flagged"
	PostStatusRejected  = "rejected"
)

type Post struct {
	ID              int        `json:"id"`
	AuthorID        int        `json:"author_id"`
	Title           string     `json:"title"`
	Body            string     `json:"body"`
	Status          string     `json:"status"` // draft / published / flagged / rejected
	ModeratedBy     *int       `json:"moderated_by,omitempty"`
	ModeratedAt     *time.Time `json:"moderated_at,omitempty"`
	ModerationNotes string     `json:"moderation_notes,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// ApplyModeration records a moderation decision, or clears the moderation
// fields when the post reverts to draft.
func (p *Post) ApplyModeration(status string, moderatorID int, notes string, now time.Time) {
	p.Status = status
	if status == PostStatusDraft {
		p.ModeratedBy = nil
		p.ModeratedAt = nil
		p.ModerationNotes = ""
		return
	}
	p.ModeratedBy = &moderatorID
	p.ModeratedAt = &now
	p.ModerationNotes = notes
}
