package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/yourorg/orgadmin/internal/domain"
	"github.com/yourorg/orgadmin/internal/observability/metrics"
	"github.com/yourorg/orgadmin/pkg/config"
)

// ImportService validates and ingests loosely-typed rows into the entity
// store. Each row is independent: validation failures and malformed data are
// recorded per row and never abort the batch, and applied rows are never
// rolled back.
type ImportService struct {
	store  *StoreService
	cfg    *config.Config
	logger *slog.Logger
}

// NewImportService creates a new batch import processor
func NewImportService(store *StoreService, cfg *config.Config, logger *slog.Logger) *ImportService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ImportService{store: store, cfg: cfg, logger: logger}
}

// ImportFromSource pulls rows from an external record source and imports
// them. A source failure becomes a single synthetic row-0 error: field "file"
// for parse failures, field "import" when the deadline expired.
func (s *ImportService) ImportFromSource(ctx context.Context, kind domain.ImportKind, source domain.RecordSource) domain.BatchImportResult {
	rows, err := source.Rows(ctx)
	if err != nil {
		field, message := "file", fmt.Sprintf("failed to parse file: %v", err)
		if errors.Is(err, context.DeadlineExceeded) {
			field, message = "import", "import timed out"
		}
		s.logger.Error("record source failed",
			slog.String("kind", string(kind)),
			slog.String("error", err.Error()),
		)
		return domain.BatchImportResult{
			Failed: 1,
			Errors: []domain.RowError{{Row: 0, Field: field, Message: message}},
		}
	}
	return s.ImportRows(ctx, kind, rows)
}

// ImportRows processes rows one by one and appends a single batch-import log
// entry with the success/failure summary. If the context deadline expires
// mid-batch, rows already applied are kept and the remaining rows are
// reported as timed out.
func (s *ImportService) ImportRows(ctx context.Context, kind domain.ImportKind, rows []domain.RawRow) domain.BatchImportResult {
	start := time.Now()
	result := domain.BatchImportResult{}

	for i, row := range rows {
		if ctx.Err() != nil {
			result.Failed++
			result.Errors = append(result.Errors, domain.RowError{
				Row: i + 1, Field: "import", Message: "import timed out",
			})
			metrics.ObserveImportRow("timeout")
			continue
		}

		rowErr := s.importRow(kind, row)
		if rowErr != nil {
			rowErr.Row = i + 1
			result.Failed++
			result.Errors = append(result.Errors, *rowErr)
			metrics.ObserveImportRow("failed")
			continue
		}
		result.Success++
		metrics.ObserveImportRow("imported")
	}

	entity := domain.EntityOrganization
	if kind == domain.ImportPersonnel {
		entity = domain.EntityPersonnel
	}
	s.store.RecordBatchImport(entity, result.Success, result.Failed, len(rows))

	outcome := "ok"
	if result.Failed > 0 {
		outcome = "partial"
	}
	if result.Success == 0 && result.Failed > 0 {
		outcome = "failed"
	}
	metrics.ObserveImportBatch(outcome, time.Since(start))
	s.logger.Info("batch import finished",
		slog.String("kind", string(kind)),
		slog.Int("success", result.Success),
		slog.Int("failed", result.Failed),
		slog.Int("rows", len(rows)),
	)
	return result
}

// importRow validates and applies one row. Any panic from malformed data is
// reported as a generic invalid-format error for that row only.
func (s *ImportService) importRow(kind domain.ImportKind, row domain.RawRow) (rowErr *domain.RowError) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Warn("import row panicked", slog.Any("cause", r))
			rowErr = &domain.RowError{Field: "general", Message: "invalid data format"}
		}
	}()

	switch kind {
	case domain.ImportPersonnel:
		return s.importPersonnelRow(row)
	default:
		return s.importOrganizationRow(row)
	}
}

func (s *ImportService) importOrganizationRow(row domain.RawRow) *domain.RowError {
	if strings.TrimSpace(stringField(row, "name")) == "" {
		return &domain.RowError{Field: "name", Message: "name is required"}
	}
	s.store.CreateOrganization(organizationDefaults(row))
	return nil
}

func (s *ImportService) importPersonnelRow(row domain.RawRow) *domain.RowError {
	if strings.TrimSpace(stringField(row, "name")) == "" {
		return &domain.RowError{Field: "name", Message: "name is required"}
	}
	if email := stringField(row, "email"); email == "" || !strings.Contains(email, "@") {
		return &domain.RowError{Field: "email", Message: "invalid email address"}
	}
	s.store.CreatePersonnel(personnelDefaults(row, s.cfg.DefaultOrganizationID))
	return nil
}

// organizationDefaults is the single defaulting policy for imported
// organization rows. The store recounts EmployeeCount on create; the parsed
// value only carries through for callers that inspect the draft.
func organizationDefaults(row domain.RawRow) domain.Organization {
	return domain.Organization{
		Name:            stringField(row, "name"),
		Type:            domain.OrgType(stringOr(row, "type", string(domain.OrgTypeDepartment))),
		ParentID:        stringField(row, "parentId"),
		Description:     stringField(row, "description"),
		Location:        stringField(row, "location"),
		Manager:         stringField(row, "manager"),
		EstablishedDate: stringOr(row, "establishedDate", time.Now().Format("2006-01-02")),
		Status:          domain.OrgStatus(stringOr(row, "status", string(domain.OrgStatusActive))),
		EmployeeCount:   intField(row, "employeeCount"),
	}
}

// personnelDefaults is the single defaulting policy for imported personnel
// rows. Rows without an organization fall back to a fixed organization id.
func personnelDefaults(row domain.RawRow, fallbackOrgID string) domain.Personnel {
	return domain.Personnel{
		Name:           stringField(row, "name"),
		Position:       stringField(row, "position"),
		OrganizationID: stringOr(row, "organizationId", fallbackOrgID),
		Email:          stringField(row, "email"),
		Phone:          stringField(row, "phone"),
		JoinDate:       stringOr(row, "joinDate", time.Now().Format("2006-01-02")),
		Status:         domain.PersonnelStatus(stringOr(row, "status", string(domain.PersonnelStatusActive))),
		Department:     stringField(row, "department"),
		Manager:        stringField(row, "manager"),
		Salary:         intField(row, "salary"),
		Age:            intField(row, "age"),
		Gender:         domain.Gender(stringOr(row, "gender", string(domain.GenderMale))),
		Education:      stringField(row, "education"),
	}
}

// stringField coerces a loosely-typed cell to a string. Spreadsheet sources
// hand numbers through as floats; everything else goes through fmt.
func stringField(row domain.RawRow, key string) string {
	v, ok := row[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}

func stringOr(row domain.RawRow, key, fallback string) string {
	if v := strings.TrimSpace(stringField(row, key)); v != "" {
		return v
	}
	return fallback
}

// intField coerces a cell to an int, 0 when absent or unparseable.
func intField(row domain.RawRow, key string) int {
	v, ok := row[key]
	if !ok || v == nil {
		return 0
	}
	switch t := v.(type) {
	case int:
		return t
	case int64:
		return int(t)
	case float64:
		return int(t)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}
