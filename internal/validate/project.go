package validate

type ProjectCreateInput struct {
	Name        interface{} `json:"name"`
	Description interface{} `json:"description"`
	AssignedTo  interface{} `json:"assigned_to"`
}

// NewProject is a sanitized project create payload. CreatedBy is supplied
// by the caller from the authenticated actor, never from the payload.
type NewProject struct {
	Name         string
	Description  string
	AssignedToID *uint
}

func ProjectCreate(in ProjectCreateInput) (NewProject, error) {
	name, err := requiredString(in.Name, "name")
	if err != nil {
		return NewProject{}, err
	}

	description, _, err := optionalString(in.Description, "description")
	if err != nil {
		return NewProject{}, err
	}

	assignedTo, err := optionalID(in.AssignedTo, "assigned_to")
	if err != nil {
		return NewProject{}, err
	}

	return NewProject{
		Name:         name,
		Description:  description,
		AssignedToID: assignedTo,
	}, nil
}

type ProjectUpdateInput struct {
	Name        interface{} `json:"name"`
	Description interface{} `json:"description"`
	AssignedTo  interface{} `json:"assigned_to"`
}

// ProjectUpdate returns a partial-update map containing only the fields
// actually provided; absent fields are never touched.
func ProjectUpdate(in ProjectUpdateInput) (map[string]interface{}, error) {
	updates := make(map[string]interface{})

	if in.Name != nil {
		name, err := requiredString(in.Name, "name")
		if err != nil {
			return nil, err
		}
		updates["name"] = name
	}

	if description, ok, err := optionalString(in.Description, "description"); err != nil {
		return nil, err
	} else if ok {
		updates["description"] = description
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
