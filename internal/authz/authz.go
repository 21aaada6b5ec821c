package authz

import (
	"embed"
	"log"
	"os"
	"path/filepath"

	"github.com/casbin/casbin/v3"
	"github.com/yukikurage/studio-pm-api/internal/models"
)

//go:embed model.conf policy.csv
var embedFS embed.FS

// Kind names a resource type in the policy.
type Kind string

const (
	KindClient       Kind = "client"
	KindBuilding     Kind = "building"
	KindProject      Kind = "project"
	KindEvent        Kind = "event"
	KindUser         Kind = "user"
	KindAssignment   Kind = "assignment"
	KindNotification Kind = "notification"
	KindTimeEntry    Kind = "time_entry"
	KindDocument     Kind = "document"
)

// Action names an operation in the policy.
type Action string

const (
	ActionView      Action = "view"
	ActionCreate    Action = "create"
	ActionUpdate    Action = "update"
	ActionDelete    Action = "delete"
	ActionManage    Action = "manage"
	ActionBroadcast Action = "broadcast"
)

// Resource identifies what an actor wants to touch. ProjectID is set for
// project-scoped resources and is checked against client assignments.
type Resource struct {
	Kind      Kind
	ProjectID *uint64
}

// ProjectResource is a Resource of kind scoped to projectID.
func ProjectResource(kind Kind, projectID uint64) Resource {
	return Resource{Kind: kind, ProjectID: &projectID}
}

// Policy answers view and mutate questions for actors.
type Policy struct {
	enforcer *casbin.Enforcer
}

// NewPolicy builds the role policy from the embedded model and policy files.
func NewPolicy() (*Policy, error) {
	dir, err := os.MkdirTemp("", "studio-pm-casbin-*")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)

	for _, name := range []string{"model.conf", "policy.csv"} {
		data, err := embedFS.ReadFile(name)
		if err != nil {
			return nil, err
		}
		if err := os.WriteFile(filepath.Join(dir, name), data, 0600); err != nil {
			return nil, err
		}
	}

	enforcer, err := casbin.NewEnforcer(
		filepath.Join(dir, "model.conf"),
		filepath.Join(dir, "policy.csv"),
	)
	if err != nil {
		return nil, err
	}

	return &Policy{enforcer: enforcer}, nil
}

// Allowed reports whether role may perform action on kind, ignoring assignments.
func (p *Policy) Allowed(role models.Role, kind Kind, action Action) bool {
	if !role.Valid() {
		return false
	}
	ok, err := p.enforcer.Enforce(string(role), string(kind), string(action))
	if err != nil {
		log.Printf("[authz] enforce role=%s kind=%s action=%s: %v", role, kind, action, err)
		return false
	}
	return ok
}

// CanView reports whether actor may see res.
func (p *Policy) CanView(actor Actor, res Resource) bool {
	return p.permit(actor, res, ActionView)
}

// CanMutate reports whether actor may perform a non-read action on res.
func (p *Policy) CanMutate(actor Actor, res Resource, action Action) bool {
	if action == ActionView {
		return p.CanView(actor, res)
	}
	return p.permit(actor, res, action)
}

// ProjectScope returns the projects actor may list. Clients are limited to
// their assignments; a client without assignments gets an empty scope.
func (p *Policy) ProjectScope(actor Actor) Scope {
	if actor.IsEmployee() {
		return Scope{All: true}
	}
	if !p.Allowed(actor.Role, KindProject, ActionView) {
		return Scope{ProjectIDs: []uint64{}}
	}
	ids := make([]uint64, len(actor.AssignedProjectIDs))
	copy(ids, actor.AssignedProjectIDs)
	return Scope{ProjectIDs: ids}
}

// projectScoped kinds are visible to clients only through a project assignment.
var projectScoped = map[Kind]bool{
	KindProject:   true,
	KindEvent:     true,
	KindDocument:  true,
	KindTimeEntry: true,
}

func (p *Policy) permit(actor Actor, res Resource, action Action) bool {
	if !p.Allowed(actor.Role, res.Kind, action) {
		return false
	}
	if actor.IsEmployee() {
		return true
	}
	if res.ProjectID == nil {
		return !projectScoped[res.Kind]
	}
	return actor.Assigned(*res.ProjectID)
}
