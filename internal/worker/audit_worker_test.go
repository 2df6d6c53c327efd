package worker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/employee-service/internal/events"
	"github.com/spec-kit/employee-service/internal/service"
)

func TestStartAuditWorker_LogsSubscriptionsAndEvents(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)
	dispatcher := events.NewInMemoryDispatcher()

	StartAuditWorker(service.NewAuditService(dispatcher, logger), logger)

	started := logs.FilterMessage("audit worker subscribed").All()
	require.Len(t, started, 1)
	subscribed, ok := started[0].ContextMap()["events"].([]interface{})
	require.True(t, ok, "%#v", started[0].ContextMap())
	assert.Len(t, subscribed, len(events.AllTypes))
	assert.Contains(t, subscribed, string(events.EventDepartmentDeleted))

	event := events.New(events.EventEmployeeCreated, 7, 1, events.EmployeePayload{Name: "Ada Lovelace"})
	require.NoError(t, dispatcher.Publish(context.Background(), event))

	recorded := logs.FilterMessage(string(events.EventEmployeeCreated)).All()
	require.Len(t, recorded, 1)
	assert.Equal(t, int64(7), recorded[0].ContextMap()["entity_id"])
	assert.Equal(t, int64(1), recorded[0].ContextMap()["actor_id"])
}

func TestStartAuditWorker_WithoutDispatcher(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

	StartAuditWorker(service.NewAuditService(nil, logger), logger)
	StartAuditWorker(nil, logger)

	assert.Equal(t, 2, logs.FilterMessageSnippet("audit worker disabled").Len())
	assert.Zero(t, logs.FilterMessage("audit worker subscribed").Len())
}
