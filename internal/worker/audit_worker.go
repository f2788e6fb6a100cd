package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/nsight-itsm/assistant/internal/events"
)

// StartAuditWorker subscribes an audit-trail logger to every domain
// event the service emits.
func StartAuditWorker(dispatcher events.Dispatcher, logger *zap.Logger) {
	if dispatcher == nil {
		return
	}

	handler := func(_ context.Context, event events.Event) error {
		logger.Info("audit",
			zap.String("event_id", event.ID),
			zap.String("event_type", string(event.Type)),
			zap.String("ticket_id", event.TicketID),
			zap.String("actor", event.ActorEmail),
			zap.Time("at", event.Timestamp),
			zap.Any("payload", event.Payload),
		)
		return nil
	}

	for _, eventType := range []events.EventType{
		events.EventTicketSubmitted,
		events.EventStatusUpdated,
		events.EventSuggestionGenerated,
		events.EventSummaryGenerated,
	} {
		dispatcher.Subscribe(eventType, handler)
	}
}
