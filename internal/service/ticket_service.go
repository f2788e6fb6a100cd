package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nsight-itsm/assistant/internal/aitext"
	"github.com/nsight-itsm/assistant/internal/domain"
	"github.com/nsight-itsm/assistant/internal/events"
	"github.com/nsight-itsm/assistant/internal/normalize"
	"github.com/nsight-itsm/assistant/internal/remote"
	"github.com/nsight-itsm/assistant/internal/session"
	apperrors "github.com/nsight-itsm/assistant/pkg/util"
)

// maxSearchQueryLen caps free-text search input.
const maxSearchQueryLen = 200

// Fallback texts when the AI backend returns nothing usable.
const (
	noSuggestionText = "No suggestion generated."
	noSummaryText    = "No summary available."
)

// TicketService coordinates the user and admin dashboard workflows
// against the remote ticket/AI backend.
type TicketService struct {
	client     *remote.Client
	sessions   session.Store
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// Dependencies bundles collaborators for the ticket service.
type Dependencies struct {
	Client     *remote.Client
	Sessions   session.Store
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewTicketService constructs the service.
func NewTicketService(deps Dependencies) *TicketService {
	return &TicketService{
		client:     deps.Client,
		sessions:   deps.Sessions,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// CheckResolutionResult is the outcome of the classify-and-search step.
type CheckResolutionResult struct {
	Category       string                 `json:"category"`
	Tips           []string               `json:"tips"`
	SimilarTickets []domain.SimilarTicket `json:"similar_tickets"`
}

// TicketDetail pairs a normalized ticket with its resolution view.
type TicketDetail struct {
	Ticket     domain.Ticket          `json:"ticket"`
	Resolution domain.ResolutionBlock `json:"resolution"`
}

// Stats summarizes the ticket set for the admin dashboard.
type Stats struct {
	Total      int `json:"total"`
	Open       int `json:"open"`
	InProgress int `json:"in_progress"`
	Resolved   int `json:"resolved"`
	Closed     int `json:"closed"`
}

// CheckResolution classifies an issue, runs the similarity search, and
// caches both results in the caller's session so a later SubmitTicket
// can reuse them. AI failures degrade to the general_support default and
// an empty similarity list rather than failing the request.
func (s *TicketService) CheckResolution(ctx context.Context, sessionID, issueText string) (*CheckResolutionResult, error) {
	issueText = strings.TrimSpace(issueText)
	if issueText == "" {
		return nil, apperrors.NewValidationError("issue description required", nil)
	}

	category := "general_support"
	classification, err := s.client.ClassifyTicket(ctx, issueText)
	if err != nil {
		s.logger.Warn("classification degraded to default", zap.Error(err))
	} else {
		category = classification.Category
	}

	similar, err := s.client.SearchSimilarTickets(ctx, issueText)
	if err != nil {
		s.logger.Warn("similarity search degraded to empty", zap.Error(err))
		similar = []domain.SimilarTicket{}
	}
	sortSimilar(similar)

	if err := s.sessions.Put(ctx, sessionID, session.State{
		LastCategory:    category,
		LastDescription: issueText,
		SimilarTickets:  similar,
	}); err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	return &CheckResolutionResult{
		Category:       category,
		Tips:           TipsForCategory(category),
		SimilarTickets: similar,
	}, nil
}

// SubmitTicket creates a ticket from the classification state cached by
// CheckResolution and clears that state on success.
func (s *TicketService) SubmitTicket(ctx context.Context, sessionID, userEmail, title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", apperrors.NewValidationError("ticket title required", nil)
	}

	state, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return "", apperrors.NewInternalError(err)
	}
	if state == nil || strings.TrimSpace(state.LastDescription) == "" {
		return "", apperrors.NewValidationError("no classified issue in session; run check-resolution first", nil)
	}

	category := state.LastCategory
	if category == "" {
		category = "general_support"
	}

	ticketID, err := s.client.CreateTicket(ctx, remote.CreateTicketInput{
		Title:       title,
		Description: state.LastDescription,
		Category:    category,
		UserEmail:   userEmail,
	})
	if err != nil {
		return "", apperrors.NewRemoteUnavailable("create_ticket", err)
	}

	if err := s.sessions.Clear(ctx, sessionID); err != nil {
		s.logger.Warn("failed to clear session state", zap.Error(err))
	}

	s.publishEvent(ctx, events.Event{
		Type:       events.EventTicketSubmitted,
		TicketID:   ticketID,
		ActorEmail: userEmail,
		Payload: events.TicketSubmittedPayload{
			Title:     title,
			Category:  category,
			UserEmail: userEmail,
		},
	})
	return ticketID, nil
}

// SimilarTickets returns the similarity list cached by the last
// CheckResolution, sorted by score descending.
func (s *TicketService) SimilarTickets(ctx context.Context, sessionID string) ([]domain.SimilarTicket, error) {
	state, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if state == nil {
		return []domain.SimilarTicket{}, nil
	}
	similar := append([]domain.SimilarTicket{}, state.SimilarTickets...)
	sortSimilar(similar)
	return similar, nil
}

// MyTickets lists normalized tickets for one requester.
func (s *TicketService) MyTickets(ctx context.Context, userEmail string) ([]domain.Ticket, error) {
	tickets, err := s.client.UserTickets(ctx, userEmail)
	if err != nil {
		return nil, apperrors.NewRemoteUnavailable("get_user_tickets", err)
	}
	return tickets, nil
}

// TicketDetail fetches a ticket and derives its resolution block.
func (s *TicketService) TicketDetail(ctx context.Context, ticketID string) (*TicketDetail, error) {
	if strings.TrimSpace(ticketID) == "" {
		return nil, apperrors.NewValidationError("ticket id required", nil)
	}
	ticket, err := s.client.TicketByID(ctx, ticketID)
	if err != nil {
		return nil, apperrors.NewRemoteUnavailable("get_ticket_by_id", err)
	}
	return &TicketDetail{
		Ticket:     ticket,
		Resolution: normalize.ResolutionBlock(ticket),
	}, nil
}

// Attachments lists a ticket's attachments with display timestamps.
func (s *TicketService) Attachments(ctx context.Context, ticketID string) ([]domain.Attachment, error) {
	if strings.TrimSpace(ticketID) == "" {
		return nil, apperrors.NewValidationError("ticket id required", nil)
	}
	attachments, err := s.client.TicketAttachments(ctx, ticketID)
	if err != nil {
		return nil, apperrors.NewRemoteUnavailable("get_ticket_attachments", err)
	}
	return normalize.FormatAttachments(attachments), nil
}

// LatestTicket fetches the most recent ticket matching optional filters.
func (s *TicketService) LatestTicket(ctx context.Context, filters map[string]any) (*TicketDetail, error) {
	ticket, err := s.client.LatestTicket(ctx, filters)
	if err != nil {
		return nil, apperrors.NewRemoteUnavailable("get_latest_ticket", err)
	}
	return &TicketDetail{
		Ticket:     ticket,
		Resolution: normalize.ResolutionBlock(ticket),
	}, nil
}

// AllTickets lists every ticket for the admin dashboard.
func (s *TicketService) AllTickets(ctx context.Context) ([]domain.Ticket, error) {
	tickets, err := s.client.AllTickets(ctx)
	if err != nil {
		return nil, apperrors.NewRemoteUnavailable("get_all_tickets", err)
	}
	return tickets, nil
}

// SearchTickets filters the full ticket set by a free-text query over
// id, title, description, requester email, and category.
func (s *TicketService) SearchTickets(ctx context.Context, query string) ([]domain.Ticket, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperrors.NewValidationError("search query required", nil)
	}
	if runes := []rune(query); len(runes) > maxSearchQueryLen {
		query = string(runes[:maxSearchQueryLen])
	}

	tickets, err := s.AllTickets(ctx)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(query)
	matches := make([]domain.Ticket, 0)
	for _, t := range tickets {
		if ticketMatches(t, needle) {
			matches = append(matches, t)
		}
	}
	return matches, nil
}

// UpdateStatus transitions a ticket on behalf of an admin and returns
// the refreshed ticket list. Only enumerated statuses are accepted.
func (s *TicketService) UpdateStatus(ctx context.Context, adminEmail, ticketID, status string) ([]domain.Ticket, error) {
	if strings.TrimSpace(ticketID) == "" {
		return nil, apperrors.NewValidationError("ticket id required", nil)
	}
	validated := normalize.Status(status)
	if string(validated) != status {
		return nil, apperrors.NewValidationError("invalid status", map[string]any{"status": status})
	}

	if err := s.client.UpdateTicketStatus(ctx, ticketID, validated, adminEmail); err != nil {
		return nil, apperrors.NewRemoteUnavailable("update_ticket_status", err)
	}

	s.publishEvent(ctx, events.Event{
		Type:       events.EventStatusUpdated,
		TicketID:   ticketID,
		ActorEmail: adminEmail,
		Payload: events.StatusUpdatedPayload{
			NewStatus:  validated,
			AdminEmail: adminEmail,
		},
	})

	return s.AllTickets(ctx)
}

// ResolvedBlocks returns resolution views for the resolved ticket set.
func (s *TicketService) ResolvedBlocks(ctx context.Context) ([]domain.ResolutionBlock, error) {
	tickets, err := s.client.ResolvedTickets(ctx)
	if err != nil {
		return nil, apperrors.NewRemoteUnavailable("get_resolved_tickets", err)
	}
	blocks := make([]domain.ResolutionBlock, 0, len(tickets))
	for _, t := range tickets {
		blocks = append(blocks, normalize.ResolutionBlock(t))
	}
	return blocks, nil
}

// Suggestion generates an AI resolution suggestion rendered as bullets.
// Remote failure degrades to a placeholder bullet list.
func (s *TicketService) Suggestion(ctx context.Context, adminEmail, ticketID string) ([]string, error) {
	raw, err := s.client.ResolutionSuggestion(ctx, ticketID)
	if err != nil {
		s.logger.Warn("suggestion generation degraded", zap.String("ticket_id", ticketID), zap.Error(err))
		return []string{aitext.Placeholder}, nil
	}
	if raw == nil {
		raw = noSuggestionText
	}
	bullets := aitext.Reformat(raw)

	s.publishEvent(ctx, events.Event{
		Type:       events.EventSuggestionGenerated,
		TicketID:   ticketID,
		ActorEmail: adminEmail,
		Payload:    events.AIContentPayload{BulletCount: len(bullets)},
	})
	return bullets, nil
}

// ITSummary generates the AI-written IT summary rendered as bullets.
func (s *TicketService) ITSummary(ctx context.Context, adminEmail, ticketID string) ([]string, error) {
	raw, err := s.client.ITSummary(ctx, ticketID)
	if err != nil {
		s.logger.Warn("summary generation degraded", zap.String("ticket_id", ticketID), zap.Error(err))
		return []string{aitext.Placeholder}, nil
	}
	if raw == nil {
		raw = noSummaryText
	}
	bullets := aitext.Reformat(raw)

	s.publishEvent(ctx, events.Event{
		Type:       events.EventSummaryGenerated,
		TicketID:   ticketID,
		ActorEmail: adminEmail,
		Payload:    events.AIContentPayload{BulletCount: len(bullets)},
	})
	return bullets, nil
}

// DashboardStats computes the KPI counters for the admin dashboard.
func (s *TicketService) DashboardStats(ctx context.Context) (*Stats, error) {
	tickets, err := s.AllTickets(ctx)
	if err != nil {
		return nil, err
	}
	stats := &Stats{Total: len(tickets)}
	for _, t := range tickets {
		switch t.Status {
		case domain.TicketStatusOpen:
			stats.Open++
		case domain.TicketStatusInProgress:
			stats.InProgress++
		case domain.TicketStatusResolved:
			stats.Resolved++
		case domain.TicketStatusClosed:
			stats.Closed++
		}
	}
	return stats, nil
}

func ticketMatches(t domain.Ticket, needle string) bool {
	for _, field := range []string{t.ID, t.Title, t.Description, t.UserEmail, t.Category} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

func sortSimilar(similar []domain.SimilarTicket) {
	sort.SliceStable(similar, func(i, j int) bool {
		return similar[i].SimilarityScore > similar[j].SimilarityScore
	})
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
