package normalize

import (
	"strconv"

	"github.com/nsight-itsm/assistant/internal/domain"
)

// Defaults installed for absent ticket fields.
const (
	DefaultTicketID    = "Unknown"
	DefaultTitle       = "Untitled"
	DefaultDescription = "No description provided"
	DefaultUserEmail   = "Unknown User"
	DefaultCategory    = "unknown"
	TimestampSentinel  = "N/A"
)

// Ticket turns a raw ticket-like mapping into the normalized record the
// rest of the system reads. Absent keys receive defaults; present values
// are preserved even when falsy (an intentionally empty string survives).
// The status is always re-validated and a boolean resolved_at, an
// upstream data-shape bug, is coerced to nil. Total over its input.
func Ticket(raw map[string]any) domain.Ticket {
	t := domain.Ticket{
		ID:          DefaultTicketID,
		Title:       DefaultTitle,
		Description: DefaultDescription,
		UserEmail:   DefaultUserEmail,
		Category:    DefaultCategory,
		Status:      domain.TicketStatusOpen,
		CreatedAt:   TimestampSentinel,
		UpdatedAt:   TimestampSentinel,
		LastUpdate:  TimestampSentinel,
		Attachments: []domain.Attachment{},
	}
	if raw == nil {
		return t
	}

	setString(raw, "id", &t.ID)
	setString(raw, "title", &t.Title)
	setString(raw, "description", &t.Description)
	setString(raw, "user_email", &t.UserEmail)
	setString(raw, "category", &t.Category)
	setString(raw, "created_at", &t.CreatedAt)
	setString(raw, "updated_at", &t.UpdatedAt)
	setString(raw, "last_update", &t.LastUpdate)
	setString(raw, "user_resolution_steps", &t.UserResolutionSteps)
	setString(raw, "it_resolution_steps", &t.ITResolutionSteps)

	t.Status = Status(raw["status"])

	// resolved_at sometimes arrives as a boolean "unresolved" flag; only a
	// genuine string timestamp survives.
	if v, ok := raw["resolved_at"]; ok {
		if s, isStr := v.(string); isStr {
			t.ResolvedAt = &s
		}
	}
	if v, ok := raw["resolved_by"]; ok {
		if s, isStr := v.(string); isStr {
			t.ResolvedBy = &s
		}
	}

	if v, ok := raw["similarity_score"]; ok {
		if f, isNum := floatValue(v); isNum {
			t.SimilarityScore = f
		}
	}

	if v, ok := raw["attachments"]; ok {
		if items, isList := v.([]any); isList {
			for _, item := range items {
				m, isMap := item.(map[string]any)
				if !isMap {
					continue
				}
				t.Attachments = append(t.Attachments, ParseAttachment(m))
			}
		}
	}

	return t
}

// Tickets normalizes a raw ticket list, skipping non-mapping elements.
func Tickets(raw []any) []domain.Ticket {
	out := make([]domain.Ticket, 0, len(raw))
	for _, item := range raw {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, Ticket(m))
	}
	return out
}

// ParseAttachment extracts attachment metadata from a raw mapping. The
// uploaded_at value stays raw here; display formatting happens when the
// resolution block is built.
func ParseAttachment(raw map[string]any) domain.Attachment {
	var a domain.Attachment
	setString(raw, "id", &a.ID)
	setString(raw, "file_name", &a.FileName)
	setString(raw, "s3_key", &a.S3Key)
	setString(raw, "uploaded_at", &a.UploadedAt)
	return a
}

// setString overwrites dst when the key is present and carries a usable
// value. Numbers are rendered as strings so numeric ids survive.
func setString(raw map[string]any, key string, dst *string) {
	v, ok := raw[key]
	if !ok {
		return
	}
	if s, ok := stringValue(v); ok {
		*dst = s
	}
}

func stringValue(v any) (string, bool) {
	switch val := v.(type) {
	case string:
		return val, true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case int:
		return strconv.Itoa(val), true
	case int64:
		return strconv.FormatInt(val, 10), true
	default:
		return "", false
	}
}

func floatValue(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case string:
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
