package validation

import (
	"errors"
	"sort"
	"strings"
)

// NonFieldKey collects errors that do not belong to a single request field.
const NonFieldKey = "non_field_errors"

// DetailKey carries a single human readable message alongside field errors.
const DetailKey = "detail"

const (
	MsgRequired    = "This field is required."
	MsgInvalidJSON = "Value must be valid JSON."
)

// Errors maps request fields to their validation messages. It is returned by use cases and
// rendered verbatim as the 400 response body.
type Errors map[string][]string

// Field returns Errors holding a single message for field.
func Field(field, message string) Errors {
	return Errors{field: {message}}
}

// NonField returns Errors holding a single non-field message.
func NonField(message string) Errors {
	return Errors{NonFieldKey: {message}}
}

// Add appends message to field and returns the receiver for chaining.
func (e Errors) Add(field, message string) Errors {
	e[field] = append(e[field], message)
	return e
}

// WithDetail attaches a detail message.
func (e Errors) WithDetail(message string) Errors {
	e[DetailKey] = []string{message}
	return e
}

// OrNil returns nil when no errors were collected so callers can `return errs.OrNil()`.
func (e Errors) OrNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

func (e Errors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(e[k], " "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Body shapes the errors for JSON rendering. The detail entry is flattened into a string.
func (e Errors) Body() map[string]any {
	body := make(map[string]any, len(e))
	for k, v := range e {
		if k == DetailKey && len(v) > 0 {
			body[k] = v[0]
			continue
		}
		body[k] = v
	}
	return body
}

// As extracts Errors from err.
func As(err error) (Errors, bool) {
	var verrs Errors
	if errors.As(err, &verrs) {
		return verrs, true
	}
	return nil, false
}
