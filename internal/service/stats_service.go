package service

import (
	"log/slog"
	"time"

	"github.com/yourorg/orgadmin/internal/domain"
)

// Salary bucket labels, fixed four ranges.
const (
	salaryUnder10k = "<10k"
	salary10to20k  = "10k-20k"
	salary20to30k  = "20k-30k"
	salaryOver30k  = "30k+"
)

// educationUnknown buckets personnel without a recorded education level.
const educationUnknown = "unknown"

// StatsService recomputes the statistics snapshot from the current store
// state on every read. No incremental caching: the working set is small and
// a full recompute is always correct.
type StatsService struct {
	store  *StoreService
	logger *slog.Logger
}

// NewStatsService creates a new statistics service
func NewStatsService(store *StoreService, logger *slog.Logger) *StatsService {
	if logger == nil {
		logger = slog.Default()
	}
	return &StatsService{store: store, logger: logger}
}

// Statistics computes the full aggregate snapshot.
func (s *StatsService) Statistics() domain.Statistics {
	orgs, people, logs := s.store.Snapshot()

	stats := domain.Statistics{
		TotalOrganizations:    len(orgs),
		TotalPersonnel:        len(people),
		RecentOperations:      len(logs),
		OrganizationsByType:   map[string]int{},
		PersonnelByStatus:     map[string]int{},
		PersonnelByDepartment: map[string]int{},
		GenderDistribution:    map[string]int{},
		EducationDistribution: map[string]int{},
		SalaryRanges:          map[string]int{},
		MonthlyJoinTrend:      map[string]int{},
	}

	for _, org := range orgs {
		if org.Status == domain.OrgStatusActive {
			stats.ActiveOrganizations++
		}
		stats.OrganizationsByType[string(org.Type)]++
	}

	ageSum := 0
	for _, p := range people {
		if p.Status == domain.PersonnelStatusActive {
			stats.ActivePersonnel++
		}
		stats.PersonnelByStatus[string(p.Status)]++
		stats.PersonnelByDepartment[p.Department]++
		ageSum += p.Age

		gender := p.Gender
		if gender == "" {
			gender = domain.GenderMale
		}
		stats.GenderDistribution[string(gender)]++

		education := p.Education
		if education == "" {
			education = educationUnknown
		}
		stats.EducationDistribution[education]++

		stats.SalaryRanges[salaryRange(p.Salary)]++

		if month, ok := joinMonth(p.JoinDate); ok {
			stats.MonthlyJoinTrend[month]++
		}
	}

	// Guard the empty collection so the average is 0, not NaN.
	if len(people) > 0 {
		stats.AverageAge = float64(ageSum) / float64(len(people))
	}
	return stats
}

// Percent derives a percentage display value, guarding the zero-denominator
// case for empty collections.
func Percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

func salaryRange(salary int) string {
	switch {
	case salary < 10000:
		return salaryUnder10k
	case salary < 20000:
		return salary10to20k
	case salary < 30000:
		return salary20to30k
	default:
		return salaryOver30k
	}
}

// joinMonth extracts the YYYY-MM trend key from a join date. Records with an
// unparseable date are left out of the trend.
func joinMonth(joinDate string) (string, bool) {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, joinDate); err == nil {
			return t.Format("2006-01"), true
		}
	}
	return "", false
}
