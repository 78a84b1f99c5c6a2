package domain

import "context"

// Statistics is a full snapshot of aggregate figures over the current store
// state. It is recomputed from scratch on every read.
type Statistics struct {
	TotalOrganizations    int
	TotalPersonnel        int
	ActiveOrganizations   int
	ActivePersonnel       int
	RecentOperations      int
	OrganizationsByType   map[string]int
	PersonnelByStatus     map[string]int
	PersonnelByDepartment map[string]int
	AverageAge            float64
	GenderDistribution    map[string]int
	EducationDistribution map[string]int
	SalaryRanges          map[string]int
	MonthlyJoinTrend      map[string]int // keyed YYYY-MM from join dates
}

// SearchResult is one record matched by a live search, with the labels of the
// fields that matched. Details holds the matched *Organization or *Personnel.
type SearchResult struct {
	Type          EntityType
	ID            string
	Name          string
	Details       any
	MatchedFields []string
}

// RawRow is one loosely-typed row from an external record source. Keys are
// spreadsheet column names; values are whatever the source produced.
type RawRow map[string]any

// RecordSource yields loosely-typed rows parsed from an uploaded file.
// File format parsing lives outside the core.
type RecordSource interface {
	Rows(ctx context.Context) ([]RawRow, error)
}

// ImportKind selects which entity type a batch import targets
type ImportKind string

const (
	ImportOrganizations ImportKind = "organization"
	ImportPersonnel     ImportKind = "personnel"
)

// RowError reports one failed import row. Row is 1-based; row 0 is reserved
// for batch-level failures (file parse, timeout).
type RowError struct {
	Row     int
	Field   string
	Message string
}

// BatchImportResult summarizes a batch import. Partial success is expected;
// failed rows are reported, never rolled back.
type BatchImportResult struct {
	Success int
	Failed  int
	Errors  []RowError
}
