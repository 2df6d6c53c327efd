package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/employee-service/internal/events"
)

// AuditService records department and employee lifecycle events.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger) *AuditService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuditService{dispatcher: dispatcher, logger: logger.Named("audit")}
}

// RegisterHandlers subscribes to every lifecycle event and returns the
// subscribed types.
func (a *AuditService) RegisterHandlers() []events.EventType {
	if a.dispatcher == nil {
		return nil
	}
	for _, t := range events.AllTypes {
		a.dispatcher.Subscribe(t, a.record)
	}
	return events.AllTypes
}

func (a *AuditService) record(_ context.Context, event events.Event) error {
	a.logger.Info(string(event.Type),
		zap.String("event_id", event.ID),
		zap.Int64("entity_id", event.EntityID),
		zap.Int64("actor_id", event.ActorID),
		zap.Time("timestamp", event.Timestamp),
		zap.Any("payload", event.Payload))
	return nil
}
