package events

import (
	"time"

	"github.com/nsight-itsm/assistant/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketSubmitted     EventType = "ticket_submitted"
	EventStatusUpdated       EventType = "ticket_status_updated"
	EventSuggestionGenerated EventType = "resolution_suggestion_generated"
	EventSummaryGenerated    EventType = "it_summary_generated"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID         string      `json:"id"`
	Type       EventType   `json:"type"`
	TicketID   string      `json:"ticket_id"`
	ActorEmail string      `json:"actor_email"`
	Timestamp  time.Time   `json:"timestamp"`
	Payload    interface{} `json:"payload"`
}

// TicketSubmittedPayload payload.
type TicketSubmittedPayload struct {
	Title     string `json:"title"`
	Category  string `json:"category"`
	UserEmail string `json:"user_email"`
}

// StatusUpdatedPayload payload.
type StatusUpdatedPayload struct {
	NewStatus  domain.TicketStatus `json:"new_status"`
	AdminEmail string              `json:"admin_email"`
}

// AIContentPayload describes generated suggestion/summary content.
type AIContentPayload struct {
	BulletCount int `json:"bullet_count"`
}
