package validate

import (
	"github.com/buglane-dev/buglane/internal/apperrors"
)

type UserUpdateInput struct {
	Username interface{} `json:"username"`
	Email    interface{} `json:"email"`
}

// UserUpdate validates a profile update (username and/or email). Password
// changes go through the dedicated change-password flow instead.
func UserUpdate(in UserUpdateInput) (map[string]interface{}, error) {
	updates := make(map[string]interface{})

	if in.Username != nil {
		username, err := requiredString(in.Username, "username")
		if err != nil {
			return nil, err
		}
		updates["username"] = username
	}

	if in.Email != nil {
		email, err := requiredString(in.Email, "email")
		if err != nil {
			return nil, err
		}
		email = NormalizeEmail(email)
		if !ValidEmail(email) {
			return nil, apperrors.New(apperrors.KindValidation, apperrors.CodeInvalidEmail, "email is not a valid address")
		}
		updates["email"] = email
	}

	if len(updates) == 0 {
		return nil, errNoFields()
	}

	return updates, nil
}
