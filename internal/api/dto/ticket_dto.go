package dto

// OpenTicketRequest payload.
type OpenTicketRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// OpenTicketResponse carries the id of the new ticket.
type OpenTicketResponse struct {
	TicketID string `json:"ticket_id"`
}

// CommentRequest payload.
type CommentRequest struct {
	Text string `json:"text"`
}

// CloseResponse reports whether the close was applied.
type CloseResponse struct {
	Closed bool `json:"closed"`
}

// CommentResponse reports whether the comment was appended.
type CommentResponse struct {
	Added bool `json:"added"`
}
