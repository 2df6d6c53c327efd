package worker

import (
	"go.uber.org/zap"

	"github.com/spec-kit/employee-service/internal/service"
)

// StartAuditWorker subscribes the audit log to department and employee
// lifecycle events.
func StartAuditWorker(auditService *service.AuditService, logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if auditService == nil {
		logger.Warn("audit worker disabled: no audit service")
		return
	}
	subscribed := auditService.RegisterHandlers()
	if len(subscribed) == 0 {
		logger.Warn("audit worker disabled: no event dispatcher")
		return
	}
	names := make([]string, len(subscribed))
	for i, t := range subscribed {
		names[i] = string(t)
	}
	logger.Info("audit worker subscribed", zap.Strings("events", names))
}
