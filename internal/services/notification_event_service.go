package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"gorm.io/datatypes"

	"github.com/SAP-F-2025/notes-service/internal/events"
	"github.com/SAP-F-2025/notes-service/internal/models"
	"github.com/SAP-F-2025/notes-service/internal/repositories"
)

// NotificationEventService records domain events in the outbox and hands
// them to the broker. Recording happens inside the mutation's transaction
// so the event log cannot diverge from the stores; publishing happens
// after commit and is best-effort, the outbox row being the durable
// record.
type NotificationEventService struct {
	publisher events.EventPublisher
	logger    *slog.Logger
}

func NewNotificationEventService(publisher events.EventPublisher, logger *slog.Logger) *NotificationEventService {
	return &NotificationEventService{
		publisher: publisher,
		logger:    logger,
	}
}

// Record writes the outbox row for an event through the given repository.
// Callers pass the tx-scoped repository from WithTransaction, so a failed
// write rolls the whole mutation back.
func (s *NotificationEventService) Record(ctx context.Context, repo repositories.Repository, event events.Event) error {
	payload, err := json.Marshal(event.Data)
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	entry := &models.NotificationOutbox{
		EventID:   event.ID,
		EventType: event.Type,
		Payload:   datatypes.JSON(payload),
	}
	if err := repo.Outbox().Create(ctx, entry); err != nil {
		return fmt.Errorf("failed to record event in outbox: %w", err)
	}

	return nil
}

// Publish hands a recorded event to the broker. Broker failures are
// logged, never surfaced.
func (s *NotificationEventService) Publish(event events.Event) {
	if err := s.publisher.Publish(event); err != nil {
		s.logger.Error("failed to publish event",
			"error", err,
			"event_id", event.ID,
			"event_type", event.Type)
	}
}
