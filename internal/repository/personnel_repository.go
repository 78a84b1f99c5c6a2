package repository

import (
	"log/slog"

	"github.com/yourorg/orgadmin/internal/domain"
)

// PersonnelRepository implements domain.PersonnelRepository with an in-memory
// map, insertion-ordered like the organization repository. Unlocked by the
// same contract: the entity store owns the writer lock.
type PersonnelRepository struct {
	logger *slog.Logger
	byID   map[string]*domain.Personnel
	order  []string
}

// NewPersonnelRepository creates an empty personnel repository
func NewPersonnelRepository(logger *slog.Logger) *PersonnelRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &PersonnelRepository{
		logger: logger,
		byID:   map[string]*domain.Personnel{},
	}
}

// Insert stores a new personnel record at the end of the collection
func (r *PersonnelRepository) Insert(p *domain.Personnel) {
	if _, exists := r.byID[p.ID]; !exists {
		r.order = append(r.order, p.ID)
	}
	r.byID[p.ID] = p
	r.logger.Debug("personnel stored", slog.String("personnel_id", p.ID))
}

// Get returns the personnel record with the given id
func (r *PersonnelRepository) Get(id string) (*domain.Personnel, bool) {
	p, ok := r.byID[id]
	return p, ok
}

// Replace swaps the stored record matching p.ID, keeping its position.
// Returns false if the id is unknown.
func (r *PersonnelRepository) Replace(p *domain.Personnel) bool {
	if _, ok := r.byID[p.ID]; !ok {
		return false
	}
	r.byID[p.ID] = p
	return true
}

// Remove deletes the personnel record with the given id
func (r *PersonnelRepository) Remove(id string) bool {
	if _, ok := r.byID[id]; !ok {
		return false
	}
	delete(r.byID, id)
	for i, pid := range r.order {
		if pid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

// List returns all personnel in insertion order
func (r *PersonnelRepository) List() []*domain.Personnel {
	out := make([]*domain.Personnel, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}

// ListByOrganization returns the personnel directly attached to an
// organization, in insertion order
func (r *PersonnelRepository) ListByOrganization(orgID string) []*domain.Personnel {
	var out []*domain.Personnel
	for _, id := range r.order {
		if p := r.byID[id]; p.OrganizationID == orgID {
			out = append(out, p)
		}
	}
	return out
}

// CountByOrganization counts the personnel attached to an organization
func (r *PersonnelRepository) CountByOrganization(orgID string) int {
	count := 0
	for _, p := range r.byID {
		if p.OrganizationID == orgID {
			count++
		}
	}
	return count
}

// RemoveByOrganization deletes every personnel record attached to an
// organization and returns how many were removed
func (r *PersonnelRepository) RemoveByOrganization(orgID string) int {
	removed := 0
	kept := r.order[:0]
	for _, id := range r.order {
		if r.byID[id].OrganizationID == orgID {
			delete(r.byID, id)
			removed++
			continue
		}
		kept = append(kept, id)
	}
	r.order = kept
	if removed > 0 {
		r.logger.Debug("personnel removed by organization",
			slog.String("org_id", orgID),
			slog.Int("removed", removed),
		)
	}
	return removed
}

// Len returns the number of personnel records
func (r *PersonnelRepository) Len() int {
	return len(r.byID)
}
