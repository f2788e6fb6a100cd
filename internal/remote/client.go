package remote

import (
	"context"
	"strconv"

	"github.com/nsight-itsm/assistant/internal/config"
	"github.com/nsight-itsm/assistant/internal/domain"
	"github.com/nsight-itsm/assistant/internal/normalize"
)

// Client wraps the Invoker with the typed operation surface of the
// remote ticket/AI backend. All key-fallback chains for heterogeneous
// response bodies are resolved here so callers see normalized shapes.
type Client struct {
	invoker Invoker
	cfg     config.RemoteConfig
}

// NewClient constructs a Client.
func NewClient(invoker Invoker, cfg config.RemoteConfig) *Client {
	return &Client{invoker: invoker, cfg: cfg}
}

// Classification is the result of the classify call.
type Classification struct {
	Category string
	Similar  []domain.SimilarTicket
}

// CreateTicketInput describes ticket creation payload.
type CreateTicketInput struct {
	Title       string
	Description string
	Category    string
	UserEmail   string
}

// ClassifyTicket predicts a category and returns embedding-based
// similar tickets for the issue text.
func (c *Client) ClassifyTicket(ctx context.Context, text string) (Classification, error) {
	body, err := c.call(ctx, c.cfg.ClassifyFn, map[string]any{"ticket_text": text})
	if err != nil {
		return Classification{}, err
	}
	category, _ := body["category"].(string)
	if category == "" {
		category = "general_support"
	}
	return Classification{
		Category: category,
		Similar:  similarFromBody(body),
	}, nil
}

// CreateTicket creates a ticket and returns the new id, degrading to the
// Unknown sentinel when the backend omits it.
func (c *Client) CreateTicket(ctx context.Context, in CreateTicketInput) (string, error) {
	body, err := c.call(ctx, c.cfg.CreateFn, map[string]any{
		"title":       in.Title,
		"description": in.Description,
		"category":    in.Category,
		"user_email":  in.UserEmail,
	})
	if err != nil {
		return "", err
	}
	if id := firstString(body, "ticket_id", "id"); id != "" {
		return id, nil
	}
	return normalize.DefaultTicketID, nil
}

// UserTickets lists normalized tickets for one requester.
func (c *Client) UserTickets(ctx context.Context, email string) ([]domain.Ticket, error) {
	body, err := c.call(ctx, c.cfg.UserTicketsFn, map[string]any{"user_email": email})
	if err != nil {
		return nil, err
	}
	return ticketsFromBody(body), nil
}

// TicketByID fetches one normalized ticket.
func (c *Client) TicketByID(ctx context.Context, id string) (domain.Ticket, error) {
	body, err := c.call(ctx, c.cfg.TicketByIDFn, map[string]any{"ticket_id": id})
	if err != nil {
		return domain.Ticket{}, err
	}
	raw, _ := body["ticket"].(map[string]any)
	return normalize.Ticket(raw), nil
}

// AllTickets lists every ticket for the admin dashboard.
func (c *Client) AllTickets(ctx context.Context) ([]domain.Ticket, error) {
	body, err := c.call(ctx, c.cfg.AllTicketsFn, map[string]any{})
	if err != nil {
		return nil, err
	}
	return ticketsFromBody(body), nil
}

// ResolvedTickets lists tickets in the resolved state.
func (c *Client) ResolvedTickets(ctx context.Context) ([]domain.Ticket, error) {
	body, err := c.call(ctx, c.cfg.ResolvedTicketsFn, map[string]any{})
	if err != nil {
		return nil, err
	}
	return ticketsFromBody(body), nil
}

// LatestTicket fetches the most recent ticket matching optional filters.
func (c *Client) LatestTicket(ctx context.Context, filters map[string]any) (domain.Ticket, error) {
	if filters == nil {
		filters = map[string]any{}
	}
	body, err := c.call(ctx, c.cfg.LatestTicketFn, filters)
	if err != nil {
		return domain.Ticket{}, err
	}
	raw, _ := body["ticket"].(map[string]any)
	return normalize.Ticket(raw), nil
}

// TicketAttachments lists attachments for a ticket.
func (c *Client) TicketAttachments(ctx context.Context, id string) ([]domain.Attachment, error) {
	body, err := c.call(ctx, c.cfg.AttachmentsFn, map[string]any{"ticket_id": id})
	if err != nil {
		return nil, err
	}
	items, _ := body["attachments"].([]any)
	out := make([]domain.Attachment, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, normalize.ParseAttachment(m))
	}
	return out, nil
}

// SearchSimilarTickets runs the text-based similarity search.
func (c *Client) SearchSimilarTickets(ctx context.Context, query string) ([]domain.SimilarTicket, error) {
	body, err := c.call(ctx, c.cfg.SearchSimilarFn, map[string]any{"query": query})
	if err != nil {
		return nil, err
	}
	return similarFromBody(body), nil
}

// UpdateTicketStatus transitions a ticket. The backend maintains
// last_update and stamps resolved_at when the status becomes resolved.
func (c *Client) UpdateTicketStatus(ctx context.Context, id string, status domain.TicketStatus, adminEmail string) error {
	_, err := c.call(ctx, c.cfg.UpdateStatusFn, map[string]any{
		"ticket_id":   id,
		"status":      string(status),
		"admin_email": adminEmail,
	})
	return err
}

// ResolutionSuggestion returns the raw AI suggestion value; its shape
// (string, list, stringified list) is resolved by the reformatter.
func (c *Client) ResolutionSuggestion(ctx context.Context, id string) (any, error) {
	body, err := c.call(ctx, c.cfg.SuggestionFn, map[string]any{"ticket_id": id})
	if err != nil {
		return nil, err
	}
	return firstValue(body, "suggested_resolution", "suggestion", "resolution", "ai_suggestion"), nil
}

// ITSummary returns the raw AI summary value.
func (c *Client) ITSummary(ctx context.Context, id string) (any, error) {
	body, err := c.call(ctx, c.cfg.SummaryFn, map[string]any{"ticket_id": id})
	if err != nil {
		return nil, err
	}
	return firstValue(body, "summary", "suggested_resolution", "ai_summary"), nil
}

func (c *Client) call(ctx context.Context, function string, payload any) (map[string]any, error) {
	response, err := c.invoker.Invoke(ctx, function, payload)
	if err != nil {
		return nil, err
	}
	return UnwrapBody(response), nil
}

// ticketsFromBody tolerates the key drift across backend versions.
func ticketsFromBody(body map[string]any) []domain.Ticket {
	for _, key := range []string{"tickets", "items", "data"} {
		if items, ok := body[key].([]any); ok {
			return normalize.Tickets(items)
		}
	}
	return []domain.Ticket{}
}

func similarFromBody(body map[string]any) []domain.SimilarTicket {
	items, _ := body["similar_tickets"].([]any)
	out := make([]domain.SimilarTicket, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		sim := domain.SimilarTicket{
			TicketID: firstString(m, "ticket_id", "id"),
		}
		sim.Title, _ = m["title"].(string)
		sim.Category, _ = m["category"].(string)
		sim.Description, _ = m["description"].(string)
		sim.SimilarityScore = firstFloat(m, "similarity", "similarity_score")
		out = append(out, sim)
	}
	return out
}

func firstString(body map[string]any, keys ...string) string {
	for _, key := range keys {
		if s, ok := body[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func firstValue(body map[string]any, keys ...string) any {
	for _, key := range keys {
		if v, ok := body[key]; ok && v != nil {
			return v
		}
	}
	return nil
}

func firstFloat(body map[string]any, keys ...string) float64 {
	for _, key := range keys {
		switch v := body[key].(type) {
		case float64:
			return v
		case string:
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				return f
			}
		}
	}
	return 0
}
