package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/ticket-board/internal/domain"
	"github.com/spec-kit/ticket-board/internal/events"
	"github.com/spec-kit/ticket-board/internal/repository"
)

const (
	ticketIDLength      = 8
	maxTicketIDAttempts = 5
)

// TicketMetrics receives ticket operation outcomes.
type TicketMetrics interface {
	RecordTicketOperation(operation string, ok bool)
}

// TicketService coordinates ticket workflows.
type TicketService struct {
	tickets    repository.TicketRepository
	dispatcher events.Dispatcher
	metrics    TicketMetrics
	lockClosed bool
	newID      func() string
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	TicketRepo repository.TicketRepository
	Dispatcher events.Dispatcher
	Metrics    TicketMetrics
	// LockClosed rejects comments on closed tickets.
	LockClosed bool
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		dispatcher: deps.Dispatcher,
		metrics:    deps.Metrics,
		lockClosed: deps.LockClosed,
		newID:      generateTicketID,
	}
}

// Open files a ticket under owner's bucket with the description as its first comment.
func (s *TicketService) Open(ctx context.Context, owner, title, description string) (string, error) {
	id, err := s.uniqueID()
	if err != nil {
		return "", err
	}
	ticket := domain.Ticket{
		ID:       id,
		Title:    title,
		Status:   domain.TicketStatusOpen,
		Comments: []domain.Comment{{By: owner, Text: description}},
	}
	if err := s.tickets.Append(ctx, owner, ticket); err != nil {
		return "", err
	}
	s.record("open", true)
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketOpened,
		TicketID: id,
		Owner:    owner,
		Actor:    events.Actor{Username: owner},
		Payload:  events.TicketOpenedPayload{Title: title},
	})
	return id, nil
}

// Close marks the ticket closed when actor may act on it. Closing an already
// closed ticket succeeds again. A false result covers both an unknown id and
// a refused actor.
func (s *TicketService) Close(ctx context.Context, actor, ticketID string, role domain.Role) (bool, error) {
	var owner string
	var previous domain.TicketStatus
	ok, err := s.tickets.Update(ctx, ticketID, func(bucketOwner string, ticket *domain.Ticket) bool {
		if !canAct(role, actor, bucketOwner) {
			return false
		}
		owner = bucketOwner
		previous = ticket.Status
		ticket.Status = domain.TicketStatusClosed
		return true
	})
	if err != nil {
		return false, err
	}
	s.record("close", ok)
	if ok {
		s.publishEvent(ctx, events.Event{
			Type:     events.EventTicketClosed,
			TicketID: ticketID,
			Owner:    owner,
			Actor:    events.Actor{Username: actor, Role: role},
			Payload:  events.TicketClosedPayload{PreviousStatus: previous},
		})
	}
	return ok, nil
}

// Comment appends {by: actor, text} to the ticket thread when actor may act on it.
func (s *TicketService) Comment(ctx context.Context, actor, ticketID string, role domain.Role, text string) (bool, error) {
	var owner string
	var index int
	ok, err := s.tickets.Update(ctx, ticketID, func(bucketOwner string, ticket *domain.Ticket) bool {
		if !canAct(role, actor, bucketOwner) {
			return false
		}
		if s.lockClosed && ticket.Status == domain.TicketStatusClosed {
			return false
		}
		owner = bucketOwner
		index = len(ticket.Comments)
		ticket.Comments = append(ticket.Comments, domain.Comment{By: actor, Text: text})
		return true
	})
	if err != nil {
		return false, err
	}
	s.record("comment", ok)
	if ok {
		s.publishEvent(ctx, events.Event{
			Type:     events.EventTicketCommentAdded,
			TicketID: ticketID,
			Owner:    owner,
			Actor:    events.Actor{Username: actor, Role: role},
			Payload: events.TicketCommentAddedPayload{
				CommentIndex: index,
				TextPreview:  stringPreview(text, 120),
			},
		})
	}
	return ok, nil
}

// List returns every bucket for support and only the actor's own bucket
// otherwise. The actor's entry is present even when they have no tickets.
func (s *TicketService) List(_ context.Context, actor string, role domain.Role) domain.TicketBook {
	if role == domain.RoleSupport {
		return s.tickets.All()
	}
	return domain.TicketBook{actor: s.tickets.Bucket(actor)}
}

// canAct applies the shared close/comment rule: support may act on any
// ticket, a user only on tickets filed in their own bucket.
func canAct(role domain.Role, actor, bucketOwner string) bool {
	return role == domain.RoleSupport || (role == domain.RoleUser && actor == bucketOwner)
}

func (s *TicketService) uniqueID() (string, error) {
	for i := 0; i < maxTicketIDAttempts; i++ {
		id := s.newID()
		if !s.tickets.Contains(id) {
			return id, nil
		}
	}
	return "", errors.New("could not generate an unused ticket id")
}

func generateTicketID() string {
	return uuid.NewString()[:ticketIDLength]
}

func (s *TicketService) record(operation string, ok bool) {
	if s.metrics == nil {
		return
	}
	s.metrics.RecordTicketOperation(operation, ok)
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func stringPreview(body string, max int) string {
	body = strings.TrimSpace(body)
	if len(body) <= max {
		return body
	}
	if max <= 3 {
		return body[:max]
	}
	return body[:max-3] + "..."
}
