package normalize

import (
	"strings"

	"github.com/nsight-itsm/assistant/internal/domain"
)

// Fallback texts for resolution blocks missing step content.
const (
	NoUserSteps = "No user steps"
	NoITSteps   = "No IT steps"
)

// ResolutionBlock composes the display-ready resolution view for a
// ticket. The ticket is re-validated first so the builder is safe to call
// on records that bypassed Ticket; building from an already normalized
// ticket is a no-op on its fields.
func ResolutionBlock(t domain.Ticket) domain.ResolutionBlock {
	t.Status = Status(string(t.Status))

	var resolvedAt string
	if t.ResolvedAt != nil {
		resolvedAt = *t.ResolvedAt
	}

	return domain.ResolutionBlock{
		TicketID:            t.ID,
		Title:               t.Title,
		UserResolutionSteps: fallbackText(t.UserResolutionSteps, NoUserSteps),
		ITResolutionSteps:   fallbackText(t.ITResolutionSteps, NoITSteps),
		ResolvedAt:          FormatDateTime(resolvedAt),
		ResolutionTime:      ResolutionTime(t.CreatedAt, resolvedAt),
		Attachments:         FormatAttachments(t.Attachments),
	}
}

// ResolutionBlockRaw builds a block straight from a raw mapping.
func ResolutionBlockRaw(raw map[string]any) domain.ResolutionBlock {
	return ResolutionBlock(Ticket(raw))
}

// FormatAttachments rewrites each attachment's uploaded_at for display.
func FormatAttachments(attachments []domain.Attachment) []domain.Attachment {
	out := make([]domain.Attachment, 0, len(attachments))
	for _, a := range attachments {
		a.UploadedAt = FormatDateTime(a.UploadedAt)
		out = append(out, a)
	}
	return out
}

func fallbackText(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
