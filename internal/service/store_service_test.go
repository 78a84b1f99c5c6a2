package service

import (
	"io"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourorg/orgadmin/internal/domain"
	"github.com/yourorg/orgadmin/internal/repository"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestStore(t *testing.T) *StoreService {
	t.Helper()
	log := testLogger()
	return NewStoreService(
		repository.NewOrganizationRepository(log),
		repository.NewPersonnelRepository(log),
		repository.NewOperationLogRepository(log),
		nil,
		log,
		"test operator",
		"op-1",
	)
}

func TestCreateOrganizationAssignsIDAndLogs(t *testing.T) {
	store := newTestStore(t)

	org := store.CreateOrganization(domain.Organization{
		Name:   "Engineering",
		Type:   domain.OrgTypeDepartment,
		Status: domain.OrgStatusActive,
	})

	require.NotEmpty(t, org.ID)
	assert.Equal(t, "test operator", org.CreatedBy)
	assert.False(t, org.CreatedAt.IsZero())
	assert.Zero(t, org.EmployeeCount)

	stored, ok := store.GetOrganization(org.ID)
	require.True(t, ok)
	assert.Equal(t, "Engineering", stored.Name)

	entries := store.OperationLog()
	require.Len(t, entries, 1)
	assert.Equal(t, domain.OperationCreate, entries[0].Type)
	assert.Equal(t, domain.EntityOrganization, entries[0].EntityType)
	assert.Equal(t, org.ID, entries[0].EntityID)
}

func TestEmployeeCountTracksPersonnelLifecycle(t *testing.T) {
	store := newTestStore(t)
	orgA := store.CreateOrganization(domain.Organization{Name: "A", Status: domain.OrgStatusActive})
	orgB := store.CreateOrganization(domain.Organization{Name: "B", Status: domain.OrgStatusActive})

	p := store.CreatePersonnel(domain.Personnel{Name: "Alice", OrganizationID: orgA.ID})
	got, _ := store.GetOrganization(orgA.ID)
	assert.Equal(t, 1, got.EmployeeCount)

	// Moving the record recounts both the former and the new organization.
	moved := *p
	moved.OrganizationID = orgB.ID
	require.NoError(t, store.UpdatePersonnel(moved))

	got, _ = store.GetOrganization(orgA.ID)
	assert.Equal(t, 0, got.EmployeeCount)
	got, _ = store.GetOrganization(orgB.ID)
	assert.Equal(t, 1, got.EmployeeCount)

	require.NoError(t, store.DeletePersonnel(p.ID))
	got, _ = store.GetOrganization(orgB.ID)
	assert.Equal(t, 0, got.EmployeeCount)
}

func TestCreatePersonnelRefreshesDepartment(t *testing.T) {
	store := newTestStore(t)
	org := store.CreateOrganization(domain.Organization{Name: "Platform", Status: domain.OrgStatusActive})

	p := store.CreatePersonnel(domain.Personnel{
		Name:           "Bob",
		OrganizationID: org.ID,
		Department:     "stale value",
	})
	assert.Equal(t, "Platform", p.Department)

	// A dangling organization reference keeps the caller's value.
	q := store.CreatePersonnel(domain.Personnel{
		Name:           "Carol",
		OrganizationID: "missing",
		Department:     "Contractors",
	})
	assert.Equal(t, "Contractors", q.Department)
}

func TestDeleteOrganizationCascades(t *testing.T) {
	store := newTestStore(t)
	victim := store.CreateOrganization(domain.Organization{Name: "Doomed", Status: domain.OrgStatusActive})
	survivor := store.CreateOrganization(domain.Organization{Name: "Kept", Status: domain.OrgStatusActive})

	store.CreatePersonnel(domain.Personnel{Name: "V1", OrganizationID: victim.ID})
	store.CreatePersonnel(domain.Personnel{Name: "V2", OrganizationID: victim.ID})
	keeper := store.CreatePersonnel(domain.Personnel{Name: "K1", OrganizationID: survivor.ID})

	count, ok := store.CascadePreview(victim.ID)
	require.True(t, ok)
	assert.Equal(t, 2, count)

	logsBefore := len(store.OperationLog())
	require.NoError(t, store.DeleteOrganization(victim.ID))

	_, ok = store.GetOrganization(victim.ID)
	assert.False(t, ok)
	assert.Empty(t, store.PersonnelByOrganization(victim.ID))

	// Personnel of other organizations are untouched.
	_, ok = store.GetPersonnel(keeper.ID)
	assert.True(t, ok)

	// One delete entry for the organization, not one per cascaded person.
	assert.Equal(t, logsBefore+1, len(store.OperationLog()))
	assert.Equal(t, domain.OperationDelete, store.OperationLog()[0].Type)
}

func TestCascadePreviewUnknownOrganization(t *testing.T) {
	store := newTestStore(t)
	count, ok := store.CascadePreview("missing")
	assert.False(t, ok)
	assert.Zero(t, count)
}

func TestUnknownIDMutationsAreNoOps(t *testing.T) {
	store := newTestStore(t)
	org := store.CreateOrganization(domain.Organization{Name: "Only", Status: domain.OrgStatusActive})
	logsBefore := len(store.OperationLog())

	assert.NoError(t, store.UpdateOrganization(domain.Organization{ID: "missing", Name: "x"}))
	assert.NoError(t, store.DeleteOrganization("missing"))
	assert.NoError(t, store.UpdatePersonnel(domain.Personnel{ID: "missing", Name: "x"}))
	assert.NoError(t, store.DeletePersonnel("missing"))

	assert.Len(t, store.Organizations(), 1)
	_, ok := store.GetOrganization(org.ID)
	assert.True(t, ok)
	assert.Equal(t, logsBefore, len(store.OperationLog()))
}

func TestStrictNotFoundFlag(t *testing.T) {
	t.Setenv("FLAG_STRICT_NOT_FOUND", "true")
	store := newTestStore(t)

	err := store.UpdateOrganization(domain.Organization{ID: "missing"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, store.DeleteOrganization("missing"), domain.ErrNotFound)
	assert.ErrorIs(t, store.UpdatePersonnel(domain.Personnel{ID: "missing"}), domain.ErrNotFound)
	assert.ErrorIs(t, store.DeletePersonnel("missing"), domain.ErrNotFound)
}

func TestUpdateOrganizationRejectsCycles(t *testing.T) {
	store := newTestStore(t)
	root := store.CreateOrganization(domain.Organization{Name: "Root", Status: domain.OrgStatusActive})
	child := store.CreateOrganization(domain.Organization{Name: "Child", ParentID: root.ID, Status: domain.OrgStatusActive})

	// Reparenting the root under its own descendant closes a loop.
	reparented := *root
	reparented.ParentID = child.ID
	assert.ErrorIs(t, store.UpdateOrganization(reparented), domain.ErrHierarchyCycle)

	// Self-reference is the degenerate loop.
	selfRef := *child
	selfRef.ParentID = child.ID
	assert.ErrorIs(t, store.UpdateOrganization(selfRef), domain.ErrHierarchyCycle)

	// The record is unchanged after a rejected write.
	got, _ := store.GetOrganization(root.ID)
	assert.Empty(t, got.ParentID)
}

func TestUpdateOrganizationPreservesCreationStamp(t *testing.T) {
	store := newTestStore(t)
	org := store.CreateOrganization(domain.Organization{Name: "Before", Status: domain.OrgStatusActive})

	updated := *org
	updated.Name = "After"
	updated.CreatedBy = "imposter"
	require.NoError(t, store.UpdateOrganization(updated))

	got, _ := store.GetOrganization(org.ID)
	assert.Equal(t, "After", got.Name)
	assert.Equal(t, org.CreatedBy, got.CreatedBy)
	assert.Equal(t, org.CreatedAt, got.CreatedAt)
	assert.Equal(t, "test operator", got.UpdatedBy)
	assert.False(t, got.UpdatedAt.IsZero())
}

func TestOperationLogNewestFirst(t *testing.T) {
	store := newTestStore(t)
	store.CreateOrganization(domain.Organization{Name: "First", Status: domain.OrgStatusActive})
	store.CreateOrganization(domain.Organization{Name: "Second", Status: domain.OrgStatusActive})
	store.CreatePersonnel(domain.Personnel{Name: "Third"})

	entries := store.OperationLog()
	require.Len(t, entries, 3)
	assert.Contains(t, entries[0].Description, "Third")
	assert.Contains(t, entries[1].Description, "Second")
	assert.Contains(t, entries[2].Description, "First")
}

func gaugeValue(t *testing.T, name string) float64 {
	t.Helper()
	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() == name {
			return mf.GetMetric()[0].GetGauge().GetValue()
		}
	}
	t.Fatalf("gauge %s not registered", name)
	return 0
}

func TestUpdatePathsRefreshLogGauge(t *testing.T) {
	store := newTestStore(t)
	org := store.CreateOrganization(domain.Organization{Name: "Gauged", Status: domain.OrgStatusActive})
	p := store.CreatePersonnel(domain.Personnel{Name: "gauged", OrganizationID: org.ID})

	renamed := *org
	renamed.Name = "Renamed"
	require.NoError(t, store.UpdateOrganization(renamed))
	assert.Equal(t, float64(3), gaugeValue(t, "orgadmin_operation_log_entries"))

	moved := *p
	moved.Name = "renamed"
	require.NoError(t, store.UpdatePersonnel(moved))
	assert.Equal(t, float64(4), gaugeValue(t, "orgadmin_operation_log_entries"))
}

func TestRecordBatchImport(t *testing.T) {
	store := newTestStore(t)
	store.RecordBatchImport(domain.EntityPersonnel, 8, 2, 10)

	entries := store.OperationLog()
	require.Len(t, entries, 1)
	assert.Equal(t, domain.OperationBatchImport, entries[0].Type)
	assert.Equal(t, domain.EntityPersonnel, entries[0].EntityType)
	assert.Equal(t, 10, entries[0].BatchSize)
	assert.Contains(t, entries[0].Description, "8 succeeded")
	assert.Contains(t, entries[0].Description, "2 failed")
}
