package scheduling

import (
	"fmt"
	"slices"

	"office-hours-server/internal/models"
)

// Principal is the verified caller of an operation.
type Principal struct {
	ID    string
	Email string
	Role  models.Role
}

// Operation names a scheduling operation for the access table.
type Operation string

const (
	OpPublishAvailability       Operation = "publishAvailability"
	OpListAvailability          Operation = "listAvailability"
	OpBookAppointment           Operation = "bookAppointment"
	OpCancelAppointment         Operation = "cancelAppointment"
	OpListMyAppointments        Operation = "listMyAppointments"
	OpListProfessorAppointments Operation = "listProfessorAppointments"
)

var requiredRoles = map[Operation][]models.Role{
	OpPublishAvailability:       {models.RoleProfessor},
	OpListAvailability:          {models.RoleStudent, models.RoleProfessor},
	OpBookAppointment:           {models.RoleStudent},
	OpCancelAppointment:         {models.RoleProfessor},
	OpListMyAppointments:        {models.RoleStudent},
	OpListProfessorAppointments: {models.RoleProfessor},
}

// RequiredRoles lists the roles allowed to run op.
func RequiredRoles(op Operation) []models.Role {
	return slices.Clone(requiredRoles[op])
}

// Authorize checks p against the access table. Unknown operations are denied.
func Authorize(p Principal, op Operation) error {
	if p.ID == "" {
		return ErrUnauthenticated
	}
	roles, ok := requiredRoles[op]
	if !ok {
		return fmt.Errorf("%w: unknown operation %q", ErrForbidden, op)
	}
	if !slices.Contains(roles, p.Role) {
		return fmt.Errorf("%w: %s is not allowed for role %q", ErrForbidden, op, p.Role)
	}
	return nil
}
