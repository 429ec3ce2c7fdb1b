package validate

import (
	"regexp"
	"strings"

	"github.com/buglane-dev/buglane/internal/apperrors"
	"github.com/buglane-dev/buglane/internal/models"
	"golang.org/x/crypto/bcrypt"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const MinPasswordLength = 8

// CredentialsInput is the raw registration payload.
type CredentialsInput struct {
	Username interface{} `json:"username"`
	Email    interface{} `json:"email"`
	Password interface{} `json:"password"`
	Role     interface{} `json:"role"`
}

// Credentials is a sanitized registration record ready for storage. Email
// is lowercased and the password already hashed.
type Credentials struct {
	Username     string
	Email        string
	PasswordHash string
	Role         string
}

// ParseCredentials validates a registration payload and computes the
// password hash. Role defaults to "User" when absent or not a string.
func ParseCredentials(in CredentialsInput) (Credentials, error) {
	username, err := requiredString(in.Username, "username")
	if err != nil {
		return Credentials{}, err
	}

	email, err := requiredString(in.Email, "email")
	if err != nil {
		return Credentials{}, err
	}

	email = strings.ToLower(email)
	if !emailPattern.MatchString(email) {
		return Credentials{}, apperrors.New(apperrors.KindValidation, apperrors.CodeInvalidEmail, "email is not a valid address")
	}

	if in.Password == nil {
		return Credentials{}, apperrors.New(apperrors.KindValidation, apperrors.CodeMissingFields, "password is required")
	}

	password, ok := in.Password.(string)
	if !ok {
		return Credentials{}, apperrors.New(apperrors.KindValidation, apperrors.CodeInvalidFieldType, "password must be a string")
	}

	if err := CheckPassword(password); err != nil {
		return Credentials{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Credentials{}, apperrors.Internal(err)
	}

	role := models.RoleUser
	if s, ok := in.Role.(string); ok {
		if trimmed := strings.TrimSpace(s); trimmed != "" {
			role = trimmed
		}
	}

	return Credentials{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}, nil
}

// CheckPassword enforces the minimum length. Exactly MinPasswordLength
// characters is accepted.
func CheckPassword(password string) error {
	if len(password) < MinPasswordLength {
		return apperrors.Newf(apperrors.KindValidation, apperrors.CodeWeakPassword,
			"password must be at least %d characters", MinPasswordLength)
	}
	return nil
}

// NormalizeEmail applies the canonical trim+lowercase form used for both
// storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidEmail reports whether the already-normalized address is acceptable.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}
