package audit

import (
	"log/slog"
	"time"
)

// Logger emits structured audit records for every store mutation, alongside
// the domain-level operation log. The audit stream is operational telemetry;
// the operation log is data.
type Logger struct {
	logger *slog.Logger
}

func NewLogger(logger *slog.Logger) *Logger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Logger{logger: logger}
}

func (al *Logger) LogAction(operatorID, operatorName, action, entityType, entityID, details string) {
	al.logger.Info("audit",
		slog.String("action", action),
		slog.String("entity_type", entityType),
		slog.String("entity_id", entityID),
		slog.String("operator_id", operatorID),
		slog.String("operator_name", operatorName),
		slog.String("details", details),
		slog.Time("timestamp", time.Now()),
	)
}

func (al *Logger) LogDenied(username, reason string) {
	al.logger.Info("audit",
		slog.String("action", "login_denied"),
		slog.String("username", username),
		slog.String("reason", reason),
		slog.Time("timestamp", time.Now()),
	)
}
