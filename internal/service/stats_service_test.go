package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yourorg/orgadmin/internal/domain"
)

func TestStatisticsEmptyStore(t *testing.T) {
	stats := NewStatsService(newTestStore(t), testLogger()).Statistics()

	assert.Zero(t, stats.TotalOrganizations)
	assert.Zero(t, stats.TotalPersonnel)
	assert.Zero(t, stats.AverageAge)
	assert.Empty(t, stats.SalaryRanges)
	assert.Empty(t, stats.MonthlyJoinTrend)
}

func TestStatisticsCountsAndAverages(t *testing.T) {
	store := newTestStore(t)
	statsService := NewStatsService(store, testLogger())

	store.CreateOrganization(domain.Organization{Name: "HQ", Type: domain.OrgTypeCompany, Status: domain.OrgStatusActive})
	org := store.CreateOrganization(domain.Organization{Name: "Eng", Type: domain.OrgTypeDepartment, Status: domain.OrgStatusPending})

	store.CreatePersonnel(domain.Personnel{
		Name: "A", OrganizationID: org.ID, Status: domain.PersonnelStatusActive,
		Age: 30, Salary: 9000, Gender: domain.GenderFemale, Education: "bachelor",
		JoinDate: "2024-03-15",
	})
	store.CreatePersonnel(domain.Personnel{
		Name: "B", OrganizationID: org.ID, Status: domain.PersonnelStatusOnLeave,
		Age: 40, Salary: 25000, JoinDate: "2024-03-02",
	})

	stats := statsService.Statistics()

	assert.Equal(t, 2, stats.TotalOrganizations)
	assert.Equal(t, 1, stats.ActiveOrganizations)
	assert.Equal(t, 2, stats.TotalPersonnel)
	assert.Equal(t, 1, stats.ActivePersonnel)
	assert.Equal(t, map[string]int{"company": 1, "department": 1}, stats.OrganizationsByType)
	assert.Equal(t, map[string]int{"active": 1, "on-leave": 1}, stats.PersonnelByStatus)
	assert.Equal(t, 2, stats.PersonnelByDepartment["Eng"])
	assert.InDelta(t, 35.0, stats.AverageAge, 0.001)
	assert.Equal(t, 2, stats.MonthlyJoinTrend["2024-03"])
}

func TestStatisticsSalaryRanges(t *testing.T) {
	store := newTestStore(t)
	for _, salary := range []int{5000, 9999, 10000, 19999, 20000, 29999, 30000, 50000} {
		store.CreatePersonnel(domain.Personnel{Name: "x", Salary: salary})
	}

	stats := NewStatsService(store, testLogger()).Statistics()
	assert.Equal(t, map[string]int{
		"<10k":    2,
		"10k-20k": 2,
		"20k-30k": 2,
		"30k+":    2,
	}, stats.SalaryRanges)
}

func TestStatisticsDefaultsMissingAttributes(t *testing.T) {
	store := newTestStore(t)
	store.CreatePersonnel(domain.Personnel{Name: "blank"})

	stats := NewStatsService(store, testLogger()).Statistics()
	assert.Equal(t, 1, stats.GenderDistribution["male"])
	assert.Equal(t, 1, stats.EducationDistribution["unknown"])
	// An unparseable join date stays out of the trend.
	assert.Empty(t, stats.MonthlyJoinTrend)
}

func TestStatisticsRepeatedReadsAgree(t *testing.T) {
	store := newTestStore(t)
	store.CreateOrganization(domain.Organization{Name: "X", Status: domain.OrgStatusActive})
	store.CreatePersonnel(domain.Personnel{Name: "Y", Age: 28, JoinDate: "2023-11-01"})

	statsService := NewStatsService(store, testLogger())
	first := statsService.Statistics()
	second := statsService.Statistics()
	assert.Equal(t, first, second)
}

func TestPercentZeroDenominator(t *testing.T) {
	assert.Zero(t, Percent(5, 0))
	assert.InDelta(t, 50.0, Percent(1, 2), 0.001)
}
