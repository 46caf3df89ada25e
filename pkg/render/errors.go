package render

import (
	"errors"
	"strings"

	"github.com/goliatone/go-numerology/pkg/numerology"
)

// ErrorMapping splits an error into field-level and form-level messages keyed
// by the form field names used by the renderers.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// MergeFormErrors concatenates and normalises multiple form-level error
// slices, trimming whitespace and removing duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

// MapValidationError turns a numerology error into user-facing messages.
// Errors that name a known field are attached to it; anything else becomes a
// form-level message so it is never lost.
func MapValidationError(err error) ErrorMapping {
	mapping := ErrorMapping{}
	if err == nil {
		return mapping
	}

	field := strings.TrimSpace(numerology.FieldOf(err))
	message := validationMessage(err, field)
	if field == "" || !isFormField(field) {
		mapping.Form = normalizeMessages([]string{message})
		return mapping
	}

	mapping.Fields = map[string][]string{
		field: normalizeMessages([]string{message}),
	}
	return mapping
}

// Options folds the mapping into a RenderOptions value.
func (m ErrorMapping) Options(base RenderOptions) RenderOptions {
	out := base
	if len(m.Fields) > 0 {
		out.Errors = make(map[string][]string, len(base.Errors)+len(m.Fields))
		for key, messages := range base.Errors {
			out.Errors[key] = append([]string(nil), messages...)
		}
		for key, messages := range m.Fields {
			out.Errors[key] = normalizeMessages(append(out.Errors[key], messages...))
		}
	}
	out.FormErrors = MergeFormErrors(base.FormErrors, m.Form...)
	return out
}

func validationMessage(err error, field string) string {
	switch {
	case errors.Is(err, numerology.ErrInvalidDate):
		return "Enter a valid birthdate in the format YYYY-MM-DD."
	case errors.Is(err, numerology.ErrInvalidGridPayload) && (field == "mahadasha" || field == "antardasha"):
		return "Mahadasha and antardasha labels must be whole numbers."
	case errors.Is(err, numerology.ErrInvalidGridPayload):
		return "The grid payload must be a 3x3 array."
	case errors.Is(err, numerology.ErrInvalidInput):
		return "The input contains an invalid value."
	default:
		return err.Error()
	}
}

func isFormField(field string) bool {
	switch field {
	case "name", "birthdate", "mahadasha", "antardasha", "base_grid":
		return true
	default:
		return false
	}
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))

	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}
