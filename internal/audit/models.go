package audit

import "time"

// Action names a list mutation recorded in the audit trail.
type Action string

const (
	ActionListCreated    Action = "list_created"
	ActionListRenamed    Action = "list_renamed"
	ActionListArchived   Action = "list_archived"
	ActionListUnarchived Action = "list_unarchived"
	ActionListDeleted    Action = "list_deleted"
	ActionMemberAdded    Action = "member_added"
	ActionMemberRemoved  Action = "member_removed"
	ActionItemAdded      Action = "item_added"
	ActionItemUpdated    Action = "item_updated"
	ActionItemRemoved    Action = "item_removed"
)

// Event is emitted after a successful mutation. Keep it transport-agnostic so
// sinks can fan out.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Action    Action    `json:"action"`
	ActorID   string    `json:"actorId"`
	ListID    string    `json:"listId"`
	// SubjectUserID is the member added or removed, when relevant.
	SubjectUserID string `json:"subjectUserId,omitempty"`
	ItemID        string `json:"itemId,omitempty"`
	RequestID     string `json:"requestId,omitempty"`
	Client        string `json:"client,omitempty"`
}
