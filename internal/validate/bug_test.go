package validate

import (
	"testing"

	"github.com/buglane-dev/buglane/internal/apperrors"
)

func TestBugCreateDefaults(t *testing.T) {
	t.Parallel()

	bug, err := BugCreate(BugCreateInput{
		Title:     "  Crash on save  ",
		ProjectID: float64(3),
	})
	if err != nil {
		t.Fatalf("BugCreate: %v", err)
	}

	if bug.Title != "Crash on save" {
		t.Errorf("title not trimmed: %q", bug.Title)
	}
	if bug.Status != "Open" {
		t.Errorf("status should default to Open, got %q", bug.Status)
	}
	if bug.Priority != "Medium" {
		t.Errorf("priority should default to Medium, got %q", bug.Priority)
	}
	if bug.ProjectID != 3 {
		t.Errorf("got project ID %d, want 3", bug.ProjectID)
	}
	if bug.AssignedToID != nil {
		t.Errorf("assignee should be nil, got %d", *bug.AssignedToID)
	}
}

func TestBugCreateExplicitValues(t *testing.T) {
	t.Parallel()

	bug, err := BugCreate(BugCreateInput{
		Title:      "Leak",
		ProjectID:  float64(1),
		Status:     "In Progress",
		Priority:   "Critical",
		AssignedTo: float64(9),
	})
	if err != nil {
		t.Fatalf("BugCreate: %v", err)
	}

	if bug.Status != "In Progress" || bug.Priority != "Critical" {
		t.Errorf("got status=%q priority=%q", bug.Status, bug.Priority)
	}
	if bug.AssignedToID == nil || *bug.AssignedToID != 9 {
		t.Errorf("got assignee %v, want 9", bug.AssignedToID)
	}
}

func TestBugCreateRejects(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   BugCreateInput
		code string
	}{
		{"missing title", BugCreateInput{ProjectID: float64(1)}, apperrors.CodeMissingFields},
		{"missing project", BugCreateInput{Title: "T"}, apperrors.CodeMissingFields},
		{"blank title", BugCreateInput{Title: "   ", ProjectID: float64(1)}, apperrors.CodeEmptyField},
		{"title not a string", BugCreateInput{Title: 1, ProjectID: float64(1)}, apperrors.CodeInvalidFieldType},
		{"project id not a number", BugCreateInput{Title: "T", ProjectID: "1"}, apperrors.CodeInvalidFieldType},
		{"project id fractional", BugCreateInput{Title: "T", ProjectID: 1.5}, apperrors.CodeInvalidFieldType},
		{"bad status", BugCreateInput{Title: "T", ProjectID: float64(1), Status: "Done"}, apperrors.CodeInvalidValue},
		{"bad priority", BugCreateInput{Title: "T", ProjectID: float64(1), Priority: "Urgent"}, apperrors.CodeInvalidValue},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := BugCreate(tc.in)
			if err == nil {
				t.Fatal("expected an error")
			}
			wantCode(t, err, tc.code)
		})
	}
}

func TestBugUpdatePartial(t *testing.T) {
	t.Parallel()

	updates, err := BugUpdate(BugUpdateInput{Status: "Resolved"})
	if err != nil {
		t.Fatalf("BugUpdate: %v", err)
	}

	if len(updates) != 1 {
		t.Fatalf("expected exactly one field, got %v", updates)
	}
	if updates["status"] != "Resolved" {
		t.Errorf("got %v", updates["status"])
	}
}

func TestBugUpdateNoFields(t *testing.T) {
	t.Parallel()

	_, err := BugUpdate(BugUpdateInput{})
	if err == nil {
		t.Fatal("expected an error")
	}
	wantCode(t, err, apperrors.CodeNoFieldsProvided)
}

func TestBugUpdateRejectsBadEnum(t *testing.T) {
	t.Parallel()

	_, err := BugUpdate(BugUpdateInput{Title: "T", Priority: "Highest"})
	if err == nil {
		t.Fatal("expected an error")
	}
	wantCode(t, err, apperrors.CodeInvalidValue)
}
