package validate

import (
	"github.com/buglane-dev/buglane/internal/apperrors"
	"github.com/buglane-dev/buglane/internal/models"
)

type BugCreateInput struct {
	Title       interface{} `json:"title"`
	Description interface{} `json:"description"`
	Status      interface{} `json:"status"`
	Priority    interface{} `json:"priority"`
	ProjectID   interface{} `json:"project_id"`
	AssignedTo  interface{} `json:"assigned_to"`
}

// NewBug is a sanitized bug create payload with defaults applied.
type NewBug struct {
	Title        string
	Description  string
	Status       string
	Priority     string
	ProjectID    uint
	AssignedToID *uint
}

func BugCreate(in BugCreateInput) (NewBug, error) {
	title, err := requiredString(in.Title, "title")
	if err != nil {
		return NewBug{}, err
	}

	projectID, err := requiredID(in.ProjectID, "project_id")
	if err != nil {
		return NewBug{}, err
	}

	description, _, err := optionalString(in.Description, "description")
	if err != nil {
		return NewBug{}, err
	}

	status := models.BugStatusOpen
	if s, ok, err := optionalString(in.Status, "status"); err != nil {
		return NewBug{}, err
	} else if ok {
		if !oneOf(s, models.BugStatuses) {
			return NewBug{}, apperrors.Newf(apperrors.KindValidation, apperrors.CodeInvalidValue, "status %q is not a valid bug status", s)
		}
		status = s
	}

	priority := models.BugPriorityMedium
	if p, ok, err := optionalString(in.Priority, "priority"); err != nil {
		return NewBug{}, err
	} else if ok {
		if !oneOf(p, models.BugPriorities) {
			return NewBug{}, apperrors.Newf(apperrors.KindValidation, apperrors.CodeInvalidValue, "priority %q is not a valid bug priority", p)
		}
		priority = p
	}

	assignedTo, err := optionalID(in.AssignedTo, "assigned_to")
	if err != nil {
		return NewBug{}, err
	}

	return NewBug{
		Title:        title,
		Description:  description,
		Status:       status,
		Priority:     priority,
		ProjectID:    projectID,
		AssignedToID: assignedTo,
	}, nil
}

// BugUpdateInput deliberately has no project_id: a bug's project
// association is immutable after creation.
type BugUpdateInput struct {
	Title       interface{} `json:"title"`
	Description interface{} `json:"description"`
	Status      interface{} `json:"status"`
	Priority    interface{} `json:"priority"`
	AssignedTo  interface{} `json:"assigned_to"`
}

func BugUpdate(in BugUpdateInput) (map[string]interface{}, error) {
	updates := make(map[string]interface{})

	if in.Title != nil {
		title, err := requiredString(in.Title, "title")
		if err != nil {
			return nil, err
		}
		updates["title"] = title
	}

	if description, ok, err := optionalString(in.Description, "description"); err != nil {
		return nil, err
	} else if ok {
		updates["description"] = description
	}

	if s, ok, err := optionalString(in.Status, "status"); err != nil {
		return nil, err
	} else if ok {
		if !oneOf(s, models.BugStatuses) {
			return nil, apperrors.Newf(apperrors.KindValidation, apperrors.CodeInvalidValue, "status %q is not a valid bug status", s)
		}
		updates["status"] = s
	}

	if p, ok, err := optionalString(in.Priority, "priority"); err != nil {
		return nil, err
	} else if ok {
		if !oneOf(p, models.BugPriorities) {
			return nil, apperrors.Newf(apperrors.KindValidation, apperrors.CodeInvalidValue, "priority %q is not a valid bug priority", p)
		}
		updates["priority"] = p
	}

	if in.AssignedTo != nil {
		assignedTo, err := optionalID(in.AssignedTo, "assigned_to")
		if err != nil {
			return nil, err
		}
		updates["assigned_to_id"] = assignedTo
	}

	if len(updates) == 0 {
		return nil, errNoFields()
	}

	return updates, nil
}
