package entity

import "github.com/cmcs-dev/claim-workflow/internal/domain/workflow"

// Role is the coarse permission level supplied by the identity provider
type Role string

const (
	RoleLecturer             Role = "LECTURER"
	RoleProgrammeCoordinator Role = "PROGRAMME_COORDINATOR"
	RoleAcademicManager      Role = "ACADEMIC_MANAGER"
	RoleHR                   Role = "HR"
	RoleAdmin                Role = "ADMIN"
)

// IsValid returns true if r is a declared role
func (r Role) IsValid() bool {
	switch r {
	case RoleLecturer, RoleProgrammeCoordinator, RoleAcademicManager, RoleHR, RoleAdmin:
		return true
	}
	return false
}

// Stage maps a reviewer role to its approval stage. Lecturer and admin
// roles have no stage and return false.
func (r Role) Stage() (workflow.Stage, bool) {
	switch r {
	case RoleProgrammeCoordinator:
		return workflow.StageProgrammeCoordinator, true
	case RoleAcademicManager:
		return workflow.StageAcademicManager, true
	case RoleHR:
		return workflow.StageHR, true
	}
	return "", false
}
