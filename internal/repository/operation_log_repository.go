package repository

import (
	"log/slog"

	"github.com/yourorg/orgadmin/internal/domain"
)

// OperationLogRepository implements the append-only operation log in memory.
// Entries are stored in insertion order and listed newest first. No retention
// or rotation: entries live as long as the process.
type OperationLogRepository struct {
	logger  *slog.Logger
	entries []*domain.OperationLog
}

// NewOperationLogRepository creates an empty operation log
func NewOperationLogRepository(logger *slog.Logger) *OperationLogRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &OperationLogRepository{logger: logger}
}

// Append adds one entry to the log
func (r *OperationLogRepository) Append(entry *domain.OperationLog) {
	r.entries = append(r.entries, entry)
	r.logger.Debug("operation logged",
		slog.String("type", string(entry.Type)),
		slog.String("entity_type", string(entry.EntityType)),
		slog.String("entity_id", entry.EntityID),
	)
}

// List returns all entries newest first
func (r *OperationLogRepository) List() []*domain.OperationLog {
	out := make([]*domain.OperationLog, 0, len(r.entries))
	for i := len(r.entries) - 1; i >= 0; i-- {
		out = append(out, r.entries[i])
	}
	return out
}

// Len returns the number of log entries
func (r *OperationLogRepository) Len() int {
	return len(r.entries)
}
