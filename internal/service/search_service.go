package service

import (
	"log/slog"
	"strings"
	"time"

	"github.com/yourorg/orgadmin/internal/domain"
	"github.com/yourorg/orgadmin/internal/observability/metrics"
)

// Matched-field labels attached to search results.
const (
	fieldName        = "name"
	fieldDescription = "description"
	fieldManager     = "manager"
	fieldLocation    = "location"
	fieldPosition    = "position"
	fieldEmail       = "email"
	fieldPhone       = "phone"
	fieldDepartment  = "department"
)

// SearchService scans both collections for case-insensitive substring matches
// over a fixed field list per entity type. Results keep collection order,
// organizations before personnel; no ranking, no pagination.
type SearchService struct {
	store  *StoreService
	logger *slog.Logger
}

// NewSearchService creates a new search service
func NewSearchService(store *StoreService, logger *slog.Logger) *SearchService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SearchService{store: store, logger: logger}
}

// Search returns the matches for term plus whether the result panel is
// active. A blank term returns (nil, false), the hidden state, distinct from
// a search that ran and found nothing.
func (s *SearchService) Search(term string) ([]domain.SearchResult, bool) {
	if strings.TrimSpace(term) == "" {
		return nil, false
	}

	start := time.Now()
	lower := strings.ToLower(term)
	orgs, people, _ := s.store.Snapshot()
	var results []domain.SearchResult

	for _, org := range orgs {
		var matched []string
		if strings.Contains(strings.ToLower(org.Name), lower) {
			matched = append(matched, fieldName)
		}
		if strings.Contains(strings.ToLower(org.Description), lower) {
			matched = append(matched, fieldDescription)
		}
		if strings.Contains(strings.ToLower(org.Manager), lower) {
			matched = append(matched, fieldManager)
		}
		if strings.Contains(strings.ToLower(org.Location), lower) {
			matched = append(matched, fieldLocation)
		}
		if len(matched) > 0 {
			results = append(results, domain.SearchResult{
				Type:          domain.EntityOrganization,
				ID:            org.ID,
				Name:          org.Name,
				Details:       org,
				MatchedFields: matched,
			})
		}
	}

	for _, p := range people {
		var matched []string
		if strings.Contains(strings.ToLower(p.Name), lower) {
			matched = append(matched, fieldName)
		}
		if strings.Contains(strings.ToLower(p.Position), lower) {
			matched = append(matched, fieldPosition)
		}
		if strings.Contains(strings.ToLower(p.Email), lower) {
			matched = append(matched, fieldEmail)
		}
		// Phone numbers match the raw term; digits have no case to fold.
		if strings.Contains(p.Phone, term) {
			matched = append(matched, fieldPhone)
		}
		if strings.Contains(strings.ToLower(p.Department), lower) {
			matched = append(matched, fieldDepartment)
		}
		if len(matched) > 0 {
			results = append(results, domain.SearchResult{
				Type:          domain.EntityPersonnel,
				ID:            p.ID,
				Name:          p.Name,
				Details:       p,
				MatchedFields: matched,
			})
		}
	}

	metrics.ObserveSearch(time.Since(start))
	s.logger.Debug("search completed",
		slog.String("term", term),
		slog.Int("results", len(results)),
	)
	return results, true
}
