package repository

import (
	"log/slog"

	"github.com/yourorg/orgadmin/internal/domain"
)

// OrganizationRepository implements domain.OrganizationRepository with an
// in-memory map. Insertion order is kept so list views and tree construction
// are stable. The repository itself is unlocked: the entity store serializes
// all access behind its own lock so multi-record mutations stay atomic.
type OrganizationRepository struct {
	logger *slog.Logger
	byID   map[string]*domain.Organization
	order  []string
}

// NewOrganizationRepository creates an empty organization repository
func NewOrganizationRepository(logger *slog.Logger) *OrganizationRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &OrganizationRepository{
		logger: logger,
		byID:   map[string]*domain.Organization{},
	}
}

// Insert stores a new organization at the end of the collection
func (r *OrganizationRepository) Insert(org *domain.Organization) {
	if _, exists := r.byID[org.ID]; !exists {
		r.order = append(r.order, org.ID)
	}
	r.byID[org.ID] = org
	r.logger.Debug("organization stored", slog.String("org_id", org.ID))
}

// Get returns the organization with the given id
func (r *OrganizationRepository) Get(id string) (*domain.Organization, bool) {
	org, ok := r.byID[id]
	return org, ok
}

// Replace swaps the stored record matching org.ID, keeping its position.
// Returns false if the id is unknown.
func (r *OrganizationRepository) Replace(org *domain.Organization) bool {
	if _, ok := r.byID[org.ID]; !ok {
		return false
	}
	r.byID[org.ID] = org
	return true
}

// Remove deletes the organization with the given id
func (r *OrganizationRepository) Remove(id string) bool {
	if _, ok := r.byID[id]; !ok {
		return false
	}
	delete(r.byID, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

// List returns all organizations in insertion order
func (r *OrganizationRepository) List() []*domain.Organization {
	out := make([]*domain.Organization, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}

// Len returns the number of organizations
func (r *OrganizationRepository) Len() int {
	return len(r.byID)
}
