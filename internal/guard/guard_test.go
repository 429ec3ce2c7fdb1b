package guard

import (
	"errors"
	"strings"
	"testing"

	"github.com/buglane-dev/buglane/internal/apperrors"
)

type fakeCounter struct {
	bugs     int64
	comments int64
	deps     Dependents
	err      error
}

func (f fakeCounter) ProjectBugCount(uint) (int64, error) { return f.bugs, f.err }

func (f fakeCounter) BugCommentCount(uint) (int64, error) { return f.comments, f.err }

func (f fakeCounter) UserDependents(uint) (Dependents, error) { return f.deps, f.err }

func wantConflict(t *testing.T, err error) *apperrors.Error {
	t.Helper()

	if err == nil {
		t.Fatal("expected a conflict error")
	}

	var appErr *apperrors.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *apperrors.Error, got %v", err)
	}
	if appErr.Kind != apperrors.KindConflict || appErr.Code != apperrors.CodeHasDependents {
		t.Fatalf("got kind=%d code=%q", appErr.Kind, appErr.Code)
	}
	return appErr
}

func TestProjectDeleteConflict(t *testing.T) {
	t.Parallel()

	err := CheckProjectDelete(fakeCounter{bugs: 3}, 1, false)
	appErr := wantConflict(t, err)

	if !strings.Contains(appErr.Message, "3") {
		t.Errorf("conflict message should carry the bug count: %q", appErr.Message)
	}
}

func TestProjectDeleteForce(t *testing.T) {
	t.Parallel()

	if err := CheckProjectDelete(fakeCounter{bugs: 3}, 1, true); err != nil {
		t.Errorf("force should allow the cascade: %v", err)
	}
}

func TestProjectDeleteEmpty(t *testing.T) {
	t.Parallel()

	if err := CheckProjectDelete(fakeCounter{}, 1, false); err != nil {
		t.Errorf("project without bugs should delete without force: %v", err)
	}
}

func TestBugDelete(t *testing.T) {
	t.Parallel()

	wantConflict(t, CheckBugDelete(fakeCounter{comments: 2}, 1, false))

	if err := CheckBugDelete(fakeCounter{comments: 2}, 1, true); err != nil {
		t.Errorf("force should allow the cascade: %v", err)
	}
	if err := CheckBugDelete(fakeCounter{}, 1, false); err != nil {
		t.Errorf("bug without comments should delete without force: %v", err)
	}
}

// User deletion has no force escape hatch: any dependent refuses the
// operation outright.
func TestUserDeleteRefused(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		deps Dependents
	}{
		{"authored comments", Dependents{Comments: 2}},
		{"created projects", Dependents{Projects: 1}},
		{"assigned bugs", Dependents{Bugs: 4}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			wantConflict(t, CheckUserDelete(fakeCounter{deps: tc.deps}, 1))
		})
	}
}

func TestUserDeleteClean(t *testing.T) {
	t.Parallel()

	if err := CheckUserDelete(fakeCounter{}, 1); err != nil {
		t.Errorf("user without dependents should be deletable: %v", err)
	}
}

func TestCounterErrorIsInternal(t *testing.T) {
	t.Parallel()

	err := CheckProjectDelete(fakeCounter{err: errors.New("connection reset")}, 1, false)

	var appErr *apperrors.Error
	if !errors.As(err, &appErr) || appErr.Kind != apperrors.KindInternal {
		t.Errorf("store failures should surface as internal errors, got %v", err)
	}
}
