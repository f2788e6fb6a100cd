package dto

import "github.com/nsight-itsm/assistant/internal/domain"

// CheckResolutionRequest carries the free-text issue description.
type CheckResolutionRequest struct {
	Issue string `json:"issue"`
}

// CheckResolutionResponse returns the predicted category, self-help
// tips for it, and the similar tickets found for the issue.
type CheckResolutionResponse struct {
	Category       string                 `json:"category"`
	Tips           []string               `json:"tips"`
	SimilarTickets []domain.SimilarTicket `json:"similar_tickets"`
}

// SubmitTicketRequest creates a ticket from the session's checked issue.
type SubmitTicketRequest struct {
	Title string `json:"title"`
}

// SubmitTicketResponse returns the created ticket id.
type SubmitTicketResponse struct {
	TicketID string `json:"ticket_id"`
}

// UpdateStatusRequest carries the target status for a transition.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// StatsResponse holds the admin dashboard KPI counters.
type StatsResponse struct {
	Total      int `json:"total"`
	Open       int `json:"open"`
	InProgress int `json:"in_progress"`
	Resolved   int `json:"resolved"`
	Closed     int `json:"closed"`
}
