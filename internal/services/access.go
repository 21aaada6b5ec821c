package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yukikurage/studio-pm-api/internal/authz"
	"github.com/yukikurage/studio-pm-api/internal/models"
	"github.com/yukikurage/studio-pm-api/internal/repository"
)

var (
	// ErrForbidden is returned when the caller may not see or change the target.
	// It is also returned for missing targets that a client asks about, so
	// existence is never disclosed.
	ErrForbidden = errors.New("access denied")
)

// Access resolves actors and answers policy questions for services.
type Access struct {
	policy      *authz.Policy
	assignments repository.AssignmentRepository
}

// NewAccess creates a new Access
func NewAccess(policy *authz.Policy, assignments repository.AssignmentRepository) *Access {
	return &Access{
		policy:      policy,
		assignments: assignments,
	}
}

// ActorFor builds the actor for user from the current assignment table.
func (a *Access) ActorFor(ctx context.Context, user *models.User) (authz.Actor, error) {
	actor := authz.Actor{UserID: user.ID, Role: user.Role}
	if user.IsEmployee() {
		return actor, nil
	}

	ids, err := a.assignments.ProjectIDsForUser(ctx, user.ID)
	if err != nil {
		return authz.Actor{}, fmt.Errorf("failed to load assignments: %w", err)
	}
	actor.AssignedProjectIDs = ids
	return actor, nil
}

// Scope returns the projects user may list.
func (a *Access) Scope(ctx context.Context, user *models.User) (authz.Scope, error) {
	actor, err := a.ActorFor(ctx, user)
	if err != nil {
		return authz.Scope{}, err
	}
	return a.policy.ProjectScope(actor), nil
}

// RequireView returns ErrForbidden unless actor may see res.
func (a *Access) RequireView(actor authz.Actor, res authz.Resource) error {
	if !a.policy.CanView(actor, res) {
		return ErrForbidden
	}
	return nil
}

// RequireMutate returns ErrForbidden unless actor may perform action on res.
func (a *Access) RequireMutate(actor authz.Actor, res authz.Resource, action authz.Action) error {
	if !a.policy.CanMutate(actor, res, action) {
		return ErrForbidden
	}
	return nil
}

// requireEmployee resolves user and checks a non-project action on kind.
func (a *Access) requireEmployee(ctx context.Context, user *models.User, kind authz.Kind, action authz.Action) (authz.Actor, error) {
	actor, err := a.ActorFor(ctx, user)
	if err != nil {
		return authz.Actor{}, err
	}
	if err := a.RequireMutate(actor, authz.Resource{Kind: kind}, action); err != nil {
		return authz.Actor{}, err
	}
	return actor, nil
}
