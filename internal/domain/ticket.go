package domain

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen   TicketStatus = "open"
	TicketStatusClosed TicketStatus = "closed"
)

// Comment is one entry of a ticket thread.
type Comment struct {
	By   string `json:"by"`
	Text string `json:"text"`
}

// Ticket is a support request. The first comment is the description given
// when the ticket was opened.
type Ticket struct {
	ID       string       `json:"ticket_id"`
	Title    string       `json:"title"`
	Status   TicketStatus `json:"status"`
	Comments []Comment    `json:"comments"`
}

// Clone returns a copy that shares no memory with t.
func (t Ticket) Clone() Ticket {
	out := t
	out.Comments = make([]Comment, len(t.Comments))
	copy(out.Comments, t.Comments)
	return out
}

// TicketBook maps an owning username to that owner's tickets in creation order.
type TicketBook map[string][]Ticket

// Clone deep-copies the book. Buckets are never nil in the copy.
func (b TicketBook) Clone() TicketBook {
	out := make(TicketBook, len(b))
	for owner, tickets := range b {
		out[owner] = CloneTickets(tickets)
	}
	return out
}

// CloneTickets deep-copies a bucket, returning an empty non-nil slice for nil input.
func CloneTickets(tickets []Ticket) []Ticket {
	out := make([]Ticket, 0, len(tickets))
	for _, t := range tickets {
		out = append(out, t.Clone())
	}
	return out
}
