package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/employee-service/internal/auth"
	"github.com/spec-kit/employee-service/internal/events"
)

// publisher emits lifecycle events after a write has been committed. Handler
// failures are logged and never undo the write.
type publisher struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

func newPublisher(dispatcher events.Dispatcher, logger *zap.Logger) publisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return publisher{dispatcher: dispatcher, logger: logger}
}

func (p publisher) publish(ctx context.Context, eventType events.EventType, entityID int64, payload interface{}) {
	if p.dispatcher == nil {
		return
	}
	event := events.New(eventType, entityID, auth.ActorID(ctx), payload)
	if err := p.dispatcher.Publish(ctx, event); err != nil {
		p.logger.Warn("event handler failed",
			zap.String("event_type", string(eventType)),
			zap.Int64("entity_id", entityID),
			zap.Error(err))
	}
}
