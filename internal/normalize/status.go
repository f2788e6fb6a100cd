package normalize

import "github.com/nsight-itsm/assistant/internal/domain"

// Status maps an arbitrary upstream status value onto the enumerated
// domain. Anything outside the set, including a missing or non-string
// value, collapses to open.
func Status(value any) domain.TicketStatus {
	s, ok := value.(string)
	if !ok {
		return domain.TicketStatusOpen
	}
	switch domain.TicketStatus(s) {
	case domain.TicketStatusOpen,
		domain.TicketStatusInProgress,
		domain.TicketStatusResolved,
		domain.TicketStatusClosed:
		return domain.TicketStatus(s)
	default:
		return domain.TicketStatusOpen
	}
}
