package domain

import "time"

// OperationType identifies the kind of mutation a log entry records
type OperationType string

const (
	OperationCreate      OperationType = "create"
	OperationUpdate      OperationType = "update"
	OperationDelete      OperationType = "delete"
	OperationBatchImport OperationType = "batch-import"
)

// EntityType identifies which collection a log entry or search result refers to
type EntityType string

const (
	EntityOrganization EntityType = "organization"
	EntityPersonnel    EntityType = "personnel"
)

// OperationLog is an immutable record of one mutation. Entries are append-only
// and never modified or removed.
type OperationLog struct {
	ID           string
	Type         OperationType
	EntityType   EntityType
	EntityID     string
	OperatorName string
	OperatorID   string
	Timestamp    time.Time
	Description  string
	BatchSize    int // set only for batch-import entries
}

// OperationLogRepository is the append-only audit trail.
// List returns entries newest first.
type OperationLogRepository interface {
	Append(entry *OperationLog)
	List() []*OperationLog
	Len() int
}
