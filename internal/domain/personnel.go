package domain

import "time"

// PersonnelStatus is the employment status of a personnel record
type PersonnelStatus string

const (
	PersonnelStatusActive   PersonnelStatus = "active"
	PersonnelStatusInactive PersonnelStatus = "inactive"
	PersonnelStatusOnLeave  PersonnelStatus = "on-leave"
)

// Gender values as recorded on personnel
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Personnel represents an employee record attached to one organization.
// OrganizationID is not enforced at write time; a dangling reference renders
// as an unknown organization in the view layer.
type Personnel struct {
	ID             string
	Name           string
	Position       string
	OrganizationID string
	Email          string
	Phone          string
	JoinDate       string // calendar date, YYYY-MM-DD
	Status         PersonnelStatus
	Department     string // denormalized owning-organization name, refreshed on save
	Manager        string
	Salary         int
	Age            int
	Gender         Gender
	Education      string
	CreatedBy      string
	CreatedAt      time.Time
	UpdatedBy      string
	UpdatedAt      time.Time
}

// PersonnelRepository defines data access for personnel records.
// Implementations preserve insertion order in List and ListByOrganization.
type PersonnelRepository interface {
	Insert(p *Personnel)
	Get(id string) (*Personnel, bool)
	Replace(p *Personnel) bool
	Remove(id string) bool
	List() []*Personnel
	ListByOrganization(orgID string) []*Personnel
	CountByOrganization(orgID string) int
	RemoveByOrganization(orgID string) int
	Len() int
}
