package authz

import (
	"testing"

	"github.com/buglane-dev/buglane/internal/models"
	"gorm.io/gorm"
)

func uintPtr(v uint) *uint { return &v }

var (
	admin    = Actor{ID: 1, Role: models.RoleAdmin}
	owner    = Actor{ID: 2, Role: models.RoleUser}
	stranger = Actor{ID: 7, Role: models.RoleUser}
)

func project(createdBy uint) *models.Project {
	return &models.Project{Name: "P1", CreatedByID: uintPtr(createdBy)}
}

func TestRulesTable(t *testing.T) {
	t.Parallel()

	bug := &models.Bug{
		Title:        "T",
		ProjectID:    1,
		ReportedByID: uintPtr(owner.ID),
		AssignedToID: uintPtr(5),
	}
	comment := &models.Comment{BugID: 1, UserID: owner.ID, Text: "hm"}
	account := &models.User{Model: gorm.Model{ID: owner.ID}, Username: "o", Role: models.RoleUser}

	cases := []struct {
		name   string
		actor  Actor
		action Action
		target interface{}
		allow  bool
	}{
		{"admin creates project", admin, ActionCreate, &models.Project{}, true},
		{"user creates project", owner, ActionCreate, &models.Project{}, false},
		{"creator updates project", owner, ActionUpdate, project(owner.ID), true},
		{"stranger updates project", stranger, ActionUpdate, project(owner.ID), false},
		{"admin deletes foreign project", admin, ActionDelete, project(owner.ID), true},
		{"stranger deletes project", stranger, ActionDelete, project(owner.ID), false},
		{"orphaned project only for admin", owner, ActionUpdate, &models.Project{}, false},

		{"anyone creates bug", stranger, ActionCreate, &models.Bug{}, true},
		{"reporter updates bug", owner, ActionUpdate, bug, true},
		{"assignee updates bug", Actor{ID: 5, Role: models.RoleUser}, ActionUpdate, bug, true},
		{"admin updates bug", admin, ActionUpdate, bug, true},
		{"stranger updates bug", stranger, ActionUpdate, bug, false},
		{"stranger deletes bug", stranger, ActionDelete, bug, false},
		{"reporter deletes bug", owner, ActionDelete, bug, true},

		{"anyone comments", stranger, ActionCreate, &models.Comment{}, true},
		{"author edits comment", owner, ActionUpdate, comment, true},
		{"admin edits comment", admin, ActionUpdate, comment, true},
		{"stranger edits comment", stranger, ActionUpdate, comment, false},
		{"stranger deletes comment", stranger, ActionDelete, comment, false},

		{"self updates profile", owner, ActionUpdate, account, true},
		{"admin updates foreign profile", admin, ActionUpdate, account, false},
		{"self deletes account", owner, ActionDelete, account, true},
		{"admin deletes account", admin, ActionDelete, account, true},
		{"stranger deletes account", stranger, ActionDelete, account, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Authorize(tc.actor, tc.action, tc.target)
			if tc.allow && err != nil {
				t.Errorf("expected allow, got %v", err)
			}
			if !tc.allow && err == nil {
				t.Error("expected deny, got allow")
			}
		})
	}
}

// Authorization is a pure function: the same inputs always produce the
// same decision.
func TestAuthorizeIdempotent(t *testing.T) {
	t.Parallel()

	target := project(owner.ID)
	first := Authorize(stranger, ActionDelete, target)
	second := Authorize(stranger, ActionDelete, target)

	if (first == nil) != (second == nil) {
		t.Error("repeated calls disagree")
	}
}

func TestAuthorizeUnknownTarget(t *testing.T) {
	t.Parallel()

	if err := Authorize(admin, ActionUpdate, "not an entity"); err == nil {
		t.Error("unknown target type should not be authorized")
	}
}
