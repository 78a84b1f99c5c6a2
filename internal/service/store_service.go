package service

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/yourorg/orgadmin/internal/domain"
	"github.com/yourorg/orgadmin/internal/featureflags"
	"github.com/yourorg/orgadmin/internal/observability/metrics"
	"github.com/yourorg/orgadmin/internal/security/audit"
)

// StoreService is the entity store: it owns the organization, personnel and
// operation-log collections and is the only component that mutates them.
// A single writer lock serializes mutations so multi-record updates (cascade
// deletes, employee-count sync) are observed as one unit. Read snapshots are
// safe because records are replaced wholesale, never mutated in place.
type StoreService struct {
	mu     sync.RWMutex
	orgs   domain.OrganizationRepository
	people domain.PersonnelRepository
	log    domain.OperationLogRepository
	logger *slog.Logger
	audit  *audit.Logger

	operatorName string
	operatorID   string

	// strictNotFound upgrades unknown-id updates and deletes from silent
	// no-ops to domain.ErrNotFound.
	strictNotFound bool
}

// NewStoreService creates the entity store over the given repositories.
// operatorName/operatorID attribute every log entry; the console runs with a
// single implicit administrator actor.
func NewStoreService(
	orgs domain.OrganizationRepository,
	people domain.PersonnelRepository,
	log domain.OperationLogRepository,
	auditLogger *audit.Logger,
	logger *slog.Logger,
	operatorName, operatorID string,
) *StoreService {
	if logger == nil {
		logger = slog.Default()
	}
	if auditLogger == nil {
		auditLogger = audit.NewLogger(logger)
	}
	return &StoreService{
		orgs:           orgs,
		people:         people,
		log:            log,
		logger:         logger,
		audit:          auditLogger,
		operatorName:   operatorName,
		operatorID:     operatorID,
		strictNotFound: featureflags.Enabled(featureflags.StrictNotFound),
	}
}

// CreateOrganization assigns a fresh id and creation stamp, stores the record
// and logs the mutation. EmployeeCount is recounted from the personnel
// collection so the derived cache is correct from the first read.
func (s *StoreService) CreateOrganization(data domain.Organization) *domain.Organization {
	s.mu.Lock()
	defer s.mu.Unlock()

	org := data
	org.ID = uuid.NewString()
	org.EmployeeCount = s.people.CountByOrganization(org.ID)
	org.CreatedBy = s.operatorName
	org.CreatedAt = time.Now()
	org.UpdatedBy = ""
	org.UpdatedAt = time.Time{}

	s.orgs.Insert(&org)
	s.appendLog(domain.OperationCreate, domain.EntityOrganization, org.ID,
		fmt.Sprintf("created organization: %s", org.Name), 0)
	metrics.ObserveMutation(string(domain.EntityOrganization), string(domain.OperationCreate))
	s.updateGauges()
	return &org
}

// UpdateOrganization replaces the record matching org.ID. Unknown ids are a
// silent no-op unless strict mode is on. A parent reference that would make
// the hierarchy cyclic is rejected so tree traversal always terminates.
func (s *StoreService) UpdateOrganization(org domain.Organization) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.orgs.Get(org.ID)
	if !ok {
		return s.notFound("organization", org.ID)
	}
	if err := s.checkHierarchyCycle(org.ID, org.ParentID); err != nil {
		return err
	}

	updated := org
	updated.CreatedBy = existing.CreatedBy
	updated.CreatedAt = existing.CreatedAt
	updated.EmployeeCount = s.people.CountByOrganization(org.ID)
	updated.UpdatedBy = s.operatorName
	updated.UpdatedAt = time.Now()

	s.orgs.Replace(&updated)
	s.appendLog(domain.OperationUpdate, domain.EntityOrganization, updated.ID,
		fmt.Sprintf("updated organization: %s", updated.Name), 0)
	metrics.ObserveMutation(string(domain.EntityOrganization), string(domain.OperationUpdate))
	s.updateGauges()
	return nil
}

// CascadePreview reports how many personnel a DeleteOrganization would remove,
// so the operator confirmation can state the impact. The second return is
// false when the organization does not exist.
func (s *StoreService) CascadePreview(id string) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.orgs.Get(id); !ok {
		return 0, false
	}
	return s.people.CountByOrganization(id), true
}

// DeleteOrganization removes the organization and cascades to every personnel
// record attached to it. One delete entry is logged for the organization, not
// one per cascaded person.
func (s *StoreService) DeleteOrganization(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	org, ok := s.orgs.Get(id)
	if !ok {
		return s.notFound("organization", id)
	}

	removed := s.people.RemoveByOrganization(id)
	s.orgs.Remove(id)

	s.logger.Info("organization deleted",
		slog.String("org_id", id),
		slog.String("name", org.Name),
		slog.Int("cascaded_personnel", removed),
	)
	s.appendLog(domain.OperationDelete, domain.EntityOrganization, id,
		fmt.Sprintf("deleted organization: %s", org.Name), 0)
	metrics.ObserveMutation(string(domain.EntityOrganization), string(domain.OperationDelete))
	s.updateGauges()
	return nil
}

// CreatePersonnel assigns a fresh id and creation stamp, refreshes the
// denormalized department name, stores the record and resyncs the owning
// organization's employee count.
func (s *StoreService) CreatePersonnel(data domain.Personnel) *domain.Personnel {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := data
	p.ID = uuid.NewString()
	p.CreatedBy = s.operatorName
	p.CreatedAt = time.Now()
	p.UpdatedBy = ""
	p.UpdatedAt = time.Time{}
	s.refreshDepartment(&p)

	s.people.Insert(&p)
	s.syncEmployeeCount(p.OrganizationID)
	s.appendLog(domain.OperationCreate, domain.EntityPersonnel, p.ID,
		fmt.Sprintf("created personnel: %s", p.Name), 0)
	metrics.ObserveMutation(string(domain.EntityPersonnel), string(domain.OperationCreate))
	s.updateGauges()
	return &p
}

// UpdatePersonnel replaces the record by id. Both the former and the new
// owning organization get their employee counts recounted, since the record
// may have moved.
func (s *StoreService) UpdatePersonnel(p domain.Personnel) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.people.Get(p.ID)
	if !ok {
		return s.notFound("personnel", p.ID)
	}

	updated := p
	updated.CreatedBy = existing.CreatedBy
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedBy = s.operatorName
	updated.UpdatedAt = time.Now()
	s.refreshDepartment(&updated)

	s.people.Replace(&updated)
	s.syncEmployeeCount(existing.OrganizationID)
	if updated.OrganizationID != existing.OrganizationID {
		s.syncEmployeeCount(updated.OrganizationID)
	}
	s.appendLog(domain.OperationUpdate, domain.EntityPersonnel, updated.ID,
		fmt.Sprintf("updated personnel: %s", updated.Name), 0)
	metrics.ObserveMutation(string(domain.EntityPersonnel), string(domain.OperationUpdate))
	s.updateGauges()
	return nil
}

// DeletePersonnel removes the record and resyncs its former organization.
func (s *StoreService) DeletePersonnel(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.people.Get(id)
	if !ok {
		return s.notFound("personnel", id)
	}

	s.people.Remove(id)
	s.syncEmployeeCount(p.OrganizationID)
	s.appendLog(domain.OperationDelete, domain.EntityPersonnel, id,
		fmt.Sprintf("deleted personnel: %s", p.Name), 0)
	metrics.ObserveMutation(string(domain.EntityPersonnel), string(domain.OperationDelete))
	s.updateGauges()
	return nil
}

// RecordBatchImport appends the single batch-import log entry summarizing an
// import run.
func (s *StoreService) RecordBatchImport(entity domain.EntityType, success, failed, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.appendLog(domain.OperationBatchImport, entity, "batch_"+uuid.NewString(),
		fmt.Sprintf("batch imported %s records: %d succeeded, %d failed", entity, success, failed), total)
	s.updateGauges()
}

// Snapshot returns all three collections under one read lock. Views that
// consume more than one collection (tree, statistics, search) must read
// through here: taking the lock per collection would let a mutation land
// between the reads and its multi-record unit be observed half-applied.
func (s *StoreService) Snapshot() ([]*domain.Organization, []*domain.Personnel, []*domain.OperationLog) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.orgs.List(), s.people.List(), s.log.List()
}

// Organizations returns a snapshot of the organization collection in
// insertion order.
func (s *StoreService) Organizations() []*domain.Organization {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.orgs.List()
}

// Personnel returns a snapshot of the personnel collection in insertion order.
func (s *StoreService) Personnel() []*domain.Personnel {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.people.List()
}

// PersonnelByOrganization returns the personnel attached to one organization.
func (s *StoreService) PersonnelByOrganization(orgID string) []*domain.Personnel {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.people.ListByOrganization(orgID)
}

// GetOrganization returns one organization by id.
func (s *StoreService) GetOrganization(id string) (*domain.Organization, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.orgs.Get(id)
}

// GetPersonnel returns one personnel record by id.
func (s *StoreService) GetPersonnel(id string) (*domain.Personnel, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.people.Get(id)
}

// OperationLog returns the audit trail newest first.
func (s *StoreService) OperationLog() []*domain.OperationLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.log.List()
}

// notFound implements the unknown-id policy: nil (no-op) in the baseline,
// domain.ErrNotFound under FLAG_STRICT_NOT_FOUND.
func (s *StoreService) notFound(kind, id string) error {
	s.logger.Warn("mutation on unknown id ignored",
		slog.String("kind", kind),
		slog.String("id", id),
	)
	if s.strictNotFound {
		return fmt.Errorf("%s %s: %w", kind, id, domain.ErrNotFound)
	}
	return nil
}

// checkHierarchyCycle walks the prospective ancestor chain and rejects a
// parent reference that leads back to the organization being written. The
// existing graph is acyclic, so the walk terminates.
func (s *StoreService) checkHierarchyCycle(id, parentID string) error {
	cur := parentID
	for cur != "" {
		if cur == id {
			return fmt.Errorf("organization %s: %w", id, domain.ErrHierarchyCycle)
		}
		parent, ok := s.orgs.Get(cur)
		if !ok {
			break
		}
		cur = parent.ParentID
	}
	return nil
}

// refreshDepartment copies the owning organization's name onto the record.
// A dangling reference keeps whatever the caller supplied.
func (s *StoreService) refreshDepartment(p *domain.Personnel) {
	if org, ok := s.orgs.Get(p.OrganizationID); ok {
		p.Department = org.Name
	}
}

// syncEmployeeCount recounts one organization's personnel from scratch and
// replaces the record, so snapshots never see a half-updated count.
func (s *StoreService) syncEmployeeCount(orgID string) {
	org, ok := s.orgs.Get(orgID)
	if !ok {
		return
	}
	count := s.people.CountByOrganization(orgID)
	if org.EmployeeCount == count {
		return
	}
	updated := *org
	updated.EmployeeCount = count
	s.orgs.Replace(&updated)
}

// appendLog must be called with the writer lock held.
func (s *StoreService) appendLog(op domain.OperationType, entity domain.EntityType, entityID, description string, batchSize int) {
	entry := &domain.OperationLog{
		ID:           uuid.NewString(),
		Type:         op,
		EntityType:   entity,
		EntityID:     entityID,
		OperatorName: s.operatorName,
		OperatorID:   s.operatorID,
		Timestamp:    time.Now(),
		Description:  description,
		BatchSize:    batchSize,
	}
	s.log.Append(entry)
	s.audit.LogAction(s.operatorID, s.operatorName, string(op), string(entity), entityID, description)
}

func (s *StoreService) updateGauges() {
	metrics.SetEntityCounts(s.orgs.Len(), s.people.Len(), s.log.Len())
}
