package authz

import "github.com/yukikurage/studio-pm-api/internal/models"

// Actor is the caller of an operation, resolved fresh for every request.
type Actor struct {
	UserID             uint64
	Role               models.Role
	AssignedProjectIDs []uint64
}

// IsEmployee reports whether the actor holds the employee role.
func (a Actor) IsEmployee() bool {
	return a.Role == models.RoleEmployee
}

// Assigned reports whether projectID is in the actor's assignment set.
func (a Actor) Assigned(projectID uint64) bool {
	for _, id := range a.AssignedProjectIDs {
		if id == projectID {
			return true
		}
	}
	return false
}

// Scope is the set of projects a listing may return.
type Scope struct {
	All        bool
	ProjectIDs []uint64
}

// Contains reports whether projectID falls inside the scope.
func (s Scope) Contains(projectID uint64) bool {
	if s.All {
		return true
	}
	for _, id := range s.ProjectIDs {
		if id == projectID {
			return true
		}
	}
	return false
}
