package repository

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourorg/orgadmin/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestPersonnelRepositoryInsertionOrder(t *testing.T) {
	r := NewPersonnelRepository(discardLogger())
	r.Insert(&domain.Personnel{ID: "a", OrganizationID: "1"})
	r.Insert(&domain.Personnel{ID: "b", OrganizationID: "2"})
	r.Insert(&domain.Personnel{ID: "c", OrganizationID: "1"})

	all := r.List()
	require.Len(t, all, 3)
	assert.Equal(t, "a", all[0].ID)
	assert.Equal(t, "c", all[2].ID)

	byOrg := r.ListByOrganization("1")
	require.Len(t, byOrg, 2)
	assert.Equal(t, "a", byOrg[0].ID)
	assert.Equal(t, "c", byOrg[1].ID)
	assert.Equal(t, 2, r.CountByOrganization("1"))
}

func TestPersonnelRepositoryReplaceKeepsPosition(t *testing.T) {
	r := NewPersonnelRepository(discardLogger())
	r.Insert(&domain.Personnel{ID: "a", Name: "old"})
	r.Insert(&domain.Personnel{ID: "b"})

	assert.True(t, r.Replace(&domain.Personnel{ID: "a", Name: "new"}))
	assert.False(t, r.Replace(&domain.Personnel{ID: "missing"}))

	all := r.List()
	assert.Equal(t, "new", all[0].Name)
	assert.Equal(t, 2, r.Len())
}

func TestPersonnelRepositoryRemoveByOrganization(t *testing.T) {
	r := NewPersonnelRepository(discardLogger())
	r.Insert(&domain.Personnel{ID: "a", OrganizationID: "1"})
	r.Insert(&domain.Personnel{ID: "b", OrganizationID: "2"})
	r.Insert(&domain.Personnel{ID: "c", OrganizationID: "1"})

	assert.Equal(t, 2, r.RemoveByOrganization("1"))
	assert.Equal(t, 0, r.RemoveByOrganization("1"))

	all := r.List()
	require.Len(t, all, 1)
	assert.Equal(t, "b", all[0].ID)
}

func TestOperationLogRepositoryNewestFirst(t *testing.T) {
	r := NewOperationLogRepository(discardLogger())
	r.Append(&domain.OperationLog{ID: "1"})
	r.Append(&domain.OperationLog{ID: "2"})
	r.Append(&domain.OperationLog{ID: "3"})

	entries := r.List()
	require.Len(t, entries, 3)
	assert.Equal(t, "3", entries[0].ID)
	assert.Equal(t, "1", entries[2].ID)
	assert.Equal(t, 3, r.Len())
}

func TestOrganizationRepositoryLifecycle(t *testing.T) {
	r := NewOrganizationRepository(discardLogger())
	r.Insert(&domain.Organization{ID: "1", Name: "HQ"})
	r.Insert(&domain.Organization{ID: "2", Name: "Eng"})

	got, ok := r.Get("1")
	require.True(t, ok)
	assert.Equal(t, "HQ", got.Name)

	assert.True(t, r.Replace(&domain.Organization{ID: "1", Name: "Renamed"}))
	got, _ = r.Get("1")
	assert.Equal(t, "Renamed", got.Name)

	assert.True(t, r.Remove("1"))
	assert.False(t, r.Remove("1"))
	_, ok = r.Get("1")
	assert.False(t, ok)

	all := r.List()
	require.Len(t, all, 1)
	assert.Equal(t, "2", all[0].ID)
}
