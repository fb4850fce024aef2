package errors

import (
	"strings"
	"unicode"
)

// ValidateWidgetType validates a widget type name.
// Type names are used in generated ids and as registry keys, so the rules
// are intentionally conservative:
//   - No empty names
//   - No control characters or whitespace
//   - Lowercase letters, digits, and hyphens only
//   - Maximum length of 64 characters
func ValidateWidgetType(typ string) error {
	if typ == "" {
		return New(ErrCodeInvalidWidget, "widget type cannot be empty")
	}

	if len(typ) > 64 {
		return New(ErrCodeInvalidWidget, "widget type too long (max 64 characters)")
	}

	for _, r := range typ {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
		case r == '-':
		default:
			return New(ErrCodeInvalidWidget, "widget type contains invalid character %q", r)
		}
	}

	return nil
}

// ValidateWidgetID validates a widget id.
// Ids are generated as "<type>-<timestamp>-<suffix>" but imported documents
// may carry arbitrary ids, so only safety rules are enforced here:
//   - No empty ids
//   - No control characters
//   - No path separators (ids appear in file names for some backends)
//   - Maximum length of 128 characters
func ValidateWidgetID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidWidget, "widget id cannot be empty")
	}

	if len(id) > 128 {
		return New(ErrCodeInvalidWidget, "widget id too long (max 128 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidWidget, "widget id contains control characters")
		}
	}

	if strings.ContainsAny(id, "/\\") {
		return New(ErrCodeInvalidWidget, "widget id cannot contain path separators")
	}

	return nil
}
