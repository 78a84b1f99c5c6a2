package domain

import "time"

// OrgType classifies an organization node in the company hierarchy
type OrgType string

const (
	OrgTypeCompany    OrgType = "company"
	OrgTypeDepartment OrgType = "department"
	OrgTypeTeam       OrgType = "team"
	OrgTypeBranch     OrgType = "branch"
)

// OrgStatus is the lifecycle status of an organization
type OrgStatus string

const (
	OrgStatusActive   OrgStatus = "active"
	OrgStatusInactive OrgStatus = "inactive"
	OrgStatusPending  OrgStatus = "pending"
)

// Organization represents one unit of the company hierarchy
type Organization struct {
	ID              string
	Name            string
	Type            OrgType
	ParentID        string // empty for forest roots
	Description     string
	Location        string
	Manager         string
	EstablishedDate string // calendar date, YYYY-MM-DD
	Status          OrgStatus
	EmployeeCount   int // derived: personnel whose OrganizationID equals ID
	CreatedBy       string
	CreatedAt       time.Time
	UpdatedBy       string
	UpdatedAt       time.Time
}

// OrgNode is the tree view of an organization. Children and the directly
// attached personnel are computed for rendering and never persisted on the
// canonical record.
type OrgNode struct {
	Organization
	Personnel []*Personnel
	Children  []*OrgNode
}

// OrganizationRepository defines data access for organizations.
// Implementations preserve insertion order in List.
type OrganizationRepository interface {
	Insert(org *Organization)
	Get(id string) (*Organization, bool)
	Replace(org *Organization) bool
	Remove(id string) bool
	List() []*Organization
	Len() int
}
