package service

import (
	"log/slog"
	"strings"

	"github.com/yourorg/orgadmin/internal/domain"
)

// TreeService converts the flat organization collection into a rooted forest
// for tree display, with each node carrying its directly attached personnel.
// The forest is recomputed from the store on every call.
type TreeService struct {
	store  *StoreService
	logger *slog.Logger
}

// NewTreeService creates a new tree service
func NewTreeService(store *StoreService, logger *slog.Logger) *TreeService {
	if logger == nil {
		logger = slog.Default()
	}
	return &TreeService{store: store, logger: logger}
}

// BuildTree groups organizations by parent id. An organization whose parent
// is empty or unresolvable becomes a forest root. Roots and children keep the
// collection's insertion order.
func (s *TreeService) BuildTree() []*domain.OrgNode {
	orgs, people, _ := s.store.Snapshot()

	byOrg := map[string][]*domain.Personnel{}
	for _, p := range people {
		byOrg[p.OrganizationID] = append(byOrg[p.OrganizationID], p)
	}

	nodes := make(map[string]*domain.OrgNode, len(orgs))
	for _, org := range orgs {
		nodes[org.ID] = &domain.OrgNode{
			Organization: *org,
			Personnel:    byOrg[org.ID],
		}
	}

	var roots []*domain.OrgNode
	for _, org := range orgs {
		node := nodes[org.ID]
		if parent, ok := nodes[org.ParentID]; ok && org.ParentID != "" {
			parent.Children = append(parent.Children, node)
		} else {
			roots = append(roots, node)
		}
	}
	return roots
}

// FilterTree returns the forest reduced to nodes where the node itself, one
// of its attached personnel, or any descendant matches the term. A matching
// descendant pulls its ancestor chain into the result, structure preserved.
// A blank term returns the full forest.
func (s *TreeService) FilterTree(term string) []*domain.OrgNode {
	forest := s.BuildTree()
	term = strings.TrimSpace(term)
	if term == "" {
		return forest
	}
	return filterNodes(forest, strings.ToLower(term))
}

func filterNodes(nodes []*domain.OrgNode, term string) []*domain.OrgNode {
	var out []*domain.OrgNode
	for _, node := range nodes {
		children := filterNodes(node.Children, term)
		if len(children) == 0 && !nodeMatches(node, term) {
			continue
		}
		out = append(out, &domain.OrgNode{
			Organization: node.Organization,
			Personnel:    node.Personnel,
			Children:     children,
		})
	}
	return out
}

// nodeMatches checks the organization's name/description/manager and its
// attached personnel's name/position/email, case-insensitively.
func nodeMatches(node *domain.OrgNode, term string) bool {
	if strings.Contains(strings.ToLower(node.Name), term) ||
		strings.Contains(strings.ToLower(node.Description), term) ||
		strings.Contains(strings.ToLower(node.Manager), term) {
		return true
	}
	for _, p := range node.Personnel {
		if strings.Contains(strings.ToLower(p.Name), term) ||
			strings.Contains(strings.ToLower(p.Position), term) ||
			strings.Contains(strings.ToLower(p.Email), term) {
			return true
		}
	}
	return false
}
