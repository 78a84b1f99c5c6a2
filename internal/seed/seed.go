// Package seed holds the fixed dataset the console starts from. All state is
// transient in-process memory, reconstructed from this snapshot at startup.
package seed

import (
	_ "embed"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yourorg/orgadmin/internal/domain"
)

//go:embed seed.yaml
var seedYAML []byte

type seedFile struct {
	Organizations []seedOrganization `yaml:"organizations"`
	Personnel     []seedPersonnel    `yaml:"personnel"`
	OperationLogs []seedLog          `yaml:"operationLogs"`
}

type seedOrganization struct {
	ID              string `yaml:"id"`
	Name            string `yaml:"name"`
	Type            string `yaml:"type"`
	ParentID        string `yaml:"parentId"`
	Description     string `yaml:"description"`
	Location        string `yaml:"location"`
	Manager         string `yaml:"manager"`
	EstablishedDate string `yaml:"establishedDate"`
	Status          string `yaml:"status"`
}

type seedPersonnel struct {
	ID             string `yaml:"id"`
	Name           string `yaml:"name"`
	Position       string `yaml:"position"`
	OrganizationID string `yaml:"organizationId"`
	Email          string `yaml:"email"`
	Phone          string `yaml:"phone"`
	JoinDate       string `yaml:"joinDate"`
	Status         string `yaml:"status"`
	Department     string `yaml:"department"`
	Manager        string `yaml:"manager"`
	Salary         int    `yaml:"salary"`
	Age            int    `yaml:"age"`
	Gender         string `yaml:"gender"`
	Education      string `yaml:"education"`
}

type seedLog struct {
	ID           string    `yaml:"id"`
	Type         string    `yaml:"type"`
	EntityType   string    `yaml:"entityType"`
	EntityID     string    `yaml:"entityId"`
	OperatorName string    `yaml:"operatorName"`
	OperatorID   string    `yaml:"operatorId"`
	Timestamp    time.Time `yaml:"timestamp"`
	Description  string    `yaml:"description"`
}

// Load parses the embedded snapshot. Employee counts are recomputed from the
// personnel collection so the derived-cache invariant holds from the first
// read, whatever the file says.
func Load(createdBy string) ([]*domain.Organization, []*domain.Personnel, []*domain.OperationLog, error) {
	var file seedFile
	if err := yaml.Unmarshal(seedYAML, &file); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to parse seed data: %w", err)
	}
	if err := validateParentGraph(file.Organizations); err != nil {
		return nil, nil, nil, fmt.Errorf("invalid seed data: %w", err)
	}

	counts := map[string]int{}
	people := make([]*domain.Personnel, 0, len(file.Personnel))
	for _, sp := range file.Personnel {
		counts[sp.OrganizationID]++
		people = append(people, &domain.Personnel{
			ID:             sp.ID,
			Name:           sp.Name,
			Position:       sp.Position,
			OrganizationID: sp.OrganizationID,
			Email:          sp.Email,
			Phone:          sp.Phone,
			JoinDate:       sp.JoinDate,
			Status:         domain.PersonnelStatus(sp.Status),
			Department:     sp.Department,
			Manager:        sp.Manager,
			Salary:         sp.Salary,
			Age:            sp.Age,
			Gender:         domain.Gender(sp.Gender),
			Education:      sp.Education,
			CreatedBy:      createdBy,
			CreatedAt:      time.Now(),
		})
	}

	orgs := make([]*domain.Organization, 0, len(file.Organizations))
	for _, so := range file.Organizations {
		orgs = append(orgs, &domain.Organization{
			ID:              so.ID,
			Name:            so.Name,
			Type:            domain.OrgType(so.Type),
			ParentID:        so.ParentID,
			Description:     so.Description,
			Location:        so.Location,
			Manager:         so.Manager,
			EstablishedDate: so.EstablishedDate,
			Status:          domain.OrgStatus(so.Status),
			EmployeeCount:   counts[so.ID],
			CreatedBy:       createdBy,
			CreatedAt:       time.Now(),
		})
	}

	logs := make([]*domain.OperationLog, 0, len(file.OperationLogs))
	for _, sl := range file.OperationLogs {
		logs = append(logs, &domain.OperationLog{
			ID:           sl.ID,
			Type:         domain.OperationType(sl.Type),
			EntityType:   domain.EntityType(sl.EntityType),
			EntityID:     sl.EntityID,
			OperatorName: sl.OperatorName,
			OperatorID:   sl.OperatorID,
			Timestamp:    sl.Timestamp,
			Description:  sl.Description,
		})
	}

	return orgs, people, logs, nil
}

// validateParentGraph rejects a snapshot whose parent references loop.
// Hierarchy walks over the store assume an acyclic graph to terminate, and
// the seed is the only path that inserts parent references unvalidated.
func validateParentGraph(orgs []seedOrganization) error {
	parents := make(map[string]string, len(orgs))
	for _, org := range orgs {
		parents[org.ID] = org.ParentID
	}
	for id := range parents {
		cur := parents[id]
		for steps := 0; cur != ""; steps++ {
			if steps >= len(parents) {
				return fmt.Errorf("organization %s: parent chain does not terminate", id)
			}
			cur = parents[cur]
		}
	}
	return nil
}

// Apply loads the snapshot into freshly created repositories.
func Apply(
	orgRepo domain.OrganizationRepository,
	personnelRepo domain.PersonnelRepository,
	logRepo domain.OperationLogRepository,
	createdBy string,
) error {
	orgs, people, logs, err := Load(createdBy)
	if err != nil {
		return err
	}
	for _, org := range orgs {
		orgRepo.Insert(org)
	}
	for _, p := range people {
		personnelRepo.Insert(p)
	}
	for _, entry := range logs {
		logRepo.Append(entry)
	}
	return nil
}
