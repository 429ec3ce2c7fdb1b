// Package validate normalizes and validates raw request payloads into
// strict record types before any business logic runs. Raw fields are
// interface{} because clients send arbitrary JSON; nothing past this
// package operates on untyped values.
package validate

import (
	"strings"

	"github.com/buglane-dev/buglane/internal/apperrors"
)

// requiredString enforces presence, string type, and non-emptiness after
// trimming, in that order.
func requiredString(value interface{}, field string) (string, error) {
	if value == nil {
		return "", apperrors.New(apperrors.KindValidation, apperrors.CodeMissingFields, field+" is required")
	}

	s, ok := value.(string)
	if !ok {
		return "", apperrors.New(apperrors.KindValidation, apperrors.CodeInvalidFieldType, field+" must be a string")
	}

	s = strings.TrimSpace(s)
	if s == "" {
		return "", apperrors.New(apperrors.KindValidation, apperrors.CodeEmptyField, field+" must not be empty")
	}

	return s, nil
}

// optionalString returns (value, present, error). Absent fields are not an
// error; present fields must be strings.
func optionalString(value interface{}, field string) (string, bool, error) {
	if value == nil {
		return "", false, nil
	}

	s, ok := value.(string)
	if !ok {
		return "", false, apperrors.New(apperrors.KindValidation, apperrors.CodeInvalidFieldType, field+" must be a string")
	}

	return strings.TrimSpace(s), true, nil
}

// optionalID accepts a positive integral JSON number. encoding/json
// delivers all numbers as float64.
func optionalID(value interface{}, field string) (*uint, error) {
	if value == nil {
		return nil, nil
	}

	f, ok := value.(float64)
	if !ok || f != float64(uint(f)) || f <= 0 {
		return nil, apperrors.New(apperrors.KindValidation, apperrors.CodeInvalidFieldType, field+" must be a positive integer")
	}

	id := uint(f)
	return &id, nil
}

func requiredID(value interface{}, field string) (uint, error) {
	if value == nil {
		return 0, apperrors.New(apperrors.KindValidation, apperrors.CodeMissingFields, field+" is required")
	}

	id, err := optionalID(value, field)
	if err != nil {
		return 0, err
	}

	return *id, nil
}

func oneOf(value string, allowed []string) bool {
	for _, v := range allowed {
		if v == value {
			return true
		}
	}
	return false
}

func errNoFields() error {
	return apperrors.New(apperrors.KindValidation, apperrors.CodeNoFieldsProvided, "No valid fields to update")
}
