package events

import (
	"time"

	"github.com/spec-kit/ticket-board/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketOpened       EventType = "ticket_opened"
	EventTicketClosed       EventType = "ticket_closed"
	EventTicketCommentAdded EventType = "ticket_comment_added"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	Username string      `json:"username"`
	Role     domain.Role `json:"role,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id"`
	Owner     string      `json:"owner"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketOpenedPayload payload.
type TicketOpenedPayload struct {
	Title string `json:"title"`
}

// TicketClosedPayload payload.
type TicketClosedPayload struct {
	PreviousStatus domain.TicketStatus `json:"previous_status"`
}

// TicketCommentAddedPayload payload.
type TicketCommentAddedPayload struct {
	CommentIndex int    `json:"comment_index"`
	TextPreview  string `json:"text_preview"`
}
