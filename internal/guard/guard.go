// Package guard implements the check-before-destroy policy: destructive
// operations never silently cascade without the caller acknowledging the
// dependent rows that will go with them.
package guard

import (
	"github.com/buglane-dev/buglane/internal/apperrors"
)

// Counter reports dependent-row counts for the entities a delete would
// take down. The store-backed implementation lives in this package; tests
// substitute fakes.
type Counter interface {
	ProjectBugCount(projectID uint) (int64, error)
	BugCommentCount(bugID uint) (int64, error)
	UserDependents(userID uint) (Dependents, error)
}

// Dependents are the rows still referencing a user.
type Dependents struct {
	Projects int64 // projects created by the user
	Bugs     int64 // bugs assigned to the user
	Comments int64 // comments authored by the user
}

func (d Dependents) Any() bool {
	return d.Projects > 0 || d.Bugs > 0 || d.Comments > 0
}

// CheckProjectDelete permits deletion of an empty project outright; a
// project with bugs requires force, because the cascade also removes the
// bugs' comments.
func CheckProjectDelete(c Counter, projectID uint, force bool) error {
	count, err := c.ProjectBugCount(projectID)
	if err != nil {
		return apperrors.Internal(err)
	}

	if count > 0 && !force {
		return apperrors.Newf(apperrors.KindConflict, apperrors.CodeHasDependents,
			"Project has %d dependent bugs; pass force=true to delete them as well", count)
	}

	return nil
}

// CheckBugDelete follows the same confirm-then-cascade pattern for a bug's
// comments.
func CheckBugDelete(c Counter, bugID uint, force bool) error {
	count, err := c.BugCommentCount(bugID)
	if err != nil {
		return apperrors.Internal(err)
	}

	if count > 0 && !force {
		return apperrors.Newf(apperrors.KindConflict, apperrors.CodeHasDependents,
			"Bug has %d dependent comments; pass force=true to delete them as well", count)
	}

	return nil
}

// CheckUserDelete refuses outright while dependents exist. User deletion
// never cascades; the caller must reassign or clean up first.
func CheckUserDelete(c Counter, userID uint) error {
	deps, err := c.UserDependents(userID)
	if err != nil {
		return apperrors.Internal(err)
	}

	if deps.Any() {
		return apperrors.Newf(apperrors.KindConflict, apperrors.CodeHasDependents,
			"User still has %d projects, %d assigned bugs and %d comments; reassign or remove them first",
			deps.Projects, deps.Bugs, deps.Comments)
	}

	return nil
}
