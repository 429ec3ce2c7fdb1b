// Package authz decides whether an actor may perform a mutation on a
// target entity. Decisions are pure functions of (actor, action, target):
// no store access, so the same rules run identically in handlers and tests.
//
// Callers must resolve the target before asking for a decision, so a
// missing target is reported as not-found rather than forbidden.
package authz

import (
	"fmt"

	"github.com/buglane-dev/buglane/internal/apperrors"
	"github.com/buglane-dev/buglane/internal/models"
)

type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Actor is the authenticated identity performing a request.
type Actor struct {
	ID   uint
	Role string
}

func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}

// Authorize applies the rules table. Admin always wins; otherwise access is
// ownership-based per entity. A nil error means the mutation is permitted.
func Authorize(actor Actor, action Action, target interface{}) error {
	switch t := target.(type) {
	case *models.Project:
		return authorizeProject(actor, action, t)
	case *models.Bug:
		return authorizeBug(actor, action, t)
	case *models.Comment:
		return authorizeComment(actor, action, t)
	case *models.User:
		return authorizeUser(actor, action, t)
	default:
		return apperrors.Internal(fmt.Errorf("authz: unknown target type %T", target))
	}
}

func authorizeProject(actor Actor, action Action, project *models.Project) error {
	switch action {
	case ActionCreate:
		if !actor.IsAdmin() {
			return apperrors.Forbidden("Only admins can create projects")
		}
		return nil
	case ActionUpdate, ActionDelete:
		if actor.IsAdmin() || project.OwnedBy(actor.ID) {
			return nil
		}
		return apperrors.Forbidden("Only the project creator or an admin can modify this project")
	}
	return apperrors.Internal(fmt.Errorf("authz: unknown action %q", action))
}

func authorizeBug(actor Actor, action Action, bug *models.Bug) error {
	switch action {
	case ActionCreate:
		// Any authenticated user may report a bug.
		return nil
	case ActionUpdate, ActionDelete:
		if actor.IsAdmin() || bug.ReportedOrAssignedTo(actor.ID) {
			return nil
		}
		return apperrors.Forbidden("Only the reporter, the assignee, or an admin can modify this bug")
	}
	return apperrors.Internal(fmt.Errorf("authz: unknown action %q", action))
}

func authorizeComment(actor Actor, action Action, comment *models.Comment) error {
	switch action {
	case ActionCreate:
		return nil
	case ActionUpdate, ActionDelete:
		if actor.IsAdmin() || comment.UserID == actor.ID {
			return nil
		}
		return apperrors.Forbidden("Only the comment author or an admin can modify this comment")
	}
	return apperrors.Internal(fmt.Errorf("authz: unknown action %q", action))
}

func authorizeUser(actor Actor, action Action, user *models.User) error {
	switch action {
	case ActionUpdate:
		// Profiles are personal; even admins do not edit other accounts.
		if actor.ID == user.ID {
			return nil
		}
		return apperrors.Forbidden("You can only update your own profile")
	case ActionDelete:
		if actor.IsAdmin() || actor.ID == user.ID {
			return nil
		}
		return apperrors.Forbidden("Only the account owner or an admin can delete this account")
	}
	return apperrors.Internal(fmt.Errorf("authz: unknown action %q", action))
}
