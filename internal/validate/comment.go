package validate

type CommentCreateInput struct {
	Text interface{} `json:"text"`
}

// NewComment carries only the text; the bug and author associations come
// from the URL and the authenticated actor and are immutable afterwards.
type NewComment struct {
	Text string
}

func CommentCreate(in CommentCreateInput) (NewComment, error) {
	text, err := requiredString(in.Text, "text")
	if err != nil {
		return NewComment{}, err
	}

	return NewComment{Text: text}, nil
}

type CommentUpdateInput struct {
	Text interface{} `json:"text"`
}

func CommentUpdate(in CommentUpdateInput) (map[string]interface{}, error) {
	if in.Text == nil {
		return nil, errNoFields()
	}

	text, err := requiredString(in.Text, "text")
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{"text": text}, nil
}
