package validate

import (
	"testing"

	"github.com/buglane-dev/buglane/internal/apperrors"
)

func TestProjectCreate(t *testing.T) {
	t.Parallel()

	project, err := ProjectCreate(ProjectCreateInput{
		Name:        " P1 ",
		Description: "first",
	})
	if err != nil {
		t.Fatalf("ProjectCreate: %v", err)
	}

	if project.Name != "P1" {
		t.Errorf("name not trimmed: %q", project.Name)
	}
	if project.Description != "first" {
		t.Errorf("got description %q", project.Description)
	}
}

func TestProjectCreateRejects(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   ProjectCreateInput
		code string
	}{
		{"missing name", ProjectCreateInput{Description: "d"}, apperrors.CodeMissingFields},
		{"blank name", ProjectCreateInput{Name: " "}, apperrors.CodeEmptyField},
		{"name not a string", ProjectCreateInput{Name: []string{"x"}}, apperrors.CodeInvalidFieldType},
		{"bad assignee", ProjectCreateInput{Name: "P", AssignedTo: "nine"}, apperrors.CodeInvalidFieldType},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ProjectCreate(tc.in)
			if err == nil {
				t.Fatal("expected an error")
			}
			wantCode(t, err, tc.code)
		})
	}
}

func TestProjectUpdatePartial(t *testing.T) {
	t.Parallel()

	updates, err := ProjectUpdate(ProjectUpdateInput{
		Description: "updated",
		AssignedTo:  float64(4),
	})
	if err != nil {
		t.Fatalf("ProjectUpdate: %v", err)
	}

	if len(updates) != 2 {
		t.Fatalf("expected two fields, got %v", updates)
	}
	if updates["description"] != "updated" {
		t.Errorf("got %v", updates["description"])
	}
	assignee, ok := updates["assigned_to_id"].(*uint)
	if !ok || assignee == nil || *assignee != 4 {
		t.Errorf("got assignee %v", updates["assigned_to_id"])
	}
}

// Empty update payloads must fail identically for every entity.
func TestUpdateNoFieldsProvided(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		call func() error
	}{
		{"project", func() error { _, err := ProjectUpdate(ProjectUpdateInput{}); return err }},
		{"bug", func() error { _, err := BugUpdate(BugUpdateInput{}); return err }},
		{"comment", func() error { _, err := CommentUpdate(CommentUpdateInput{}); return err }},
		{"user", func() error { _, err := UserUpdate(UserUpdateInput{}); return err }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.call()
			if err == nil {
				t.Fatal("expected an error")
			}
			wantCode(t, err, apperrors.CodeNoFieldsProvided)
		})
	}
}

func TestCommentCreate(t *testing.T) {
	t.Parallel()

	comment, err := CommentCreate(CommentCreateInput{Text: "  looks fixed  "})
	if err != nil {
		t.Fatalf("CommentCreate: %v", err)
	}
	if comment.Text != "looks fixed" {
		t.Errorf("text not trimmed: %q", comment.Text)
	}

	_, err = CommentCreate(CommentCreateInput{Text: "   "})
	if err == nil {
		t.Fatal("blank text should be rejected")
	}
	wantCode(t, err, apperrors.CodeEmptyField)
}

func TestUserUpdate(t *testing.T) {
	t.Parallel()

	updates, err := UserUpdate(UserUpdateInput{Email: " NEW@Example.com "})
	if err != nil {
		t.Fatalf("UserUpdate: %v", err)
	}
	if updates["email"] != "new@example.com" {
		t.Errorf("email not normalized: %v", updates["email"])
	}

	_, err = UserUpdate(UserUpdateInput{Email: "not-an-email"})
	if err == nil {
		t.Fatal("invalid email should be rejected")
	}
	wantCode(t, err, apperrors.CodeInvalidEmail)
}
