package httputil

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ParseID parses a positive integer primary key from a path segment.
func ParseID(raw string) (uint, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// PrimaryKey is a request field referencing another row. It accepts a JSON number or a numeric
// string and keeps the raw text for error messages.
type PrimaryKey struct {
	Raw     string
	Present bool
	// Kind names the JSON type received: str, int, float, bool, dict or list.
	Kind string
}

func (p *PrimaryKey) UnmarshalJSON(data []byte) error {
	p.Present = true
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		p.Present = false
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		p.Raw = s
		p.Kind = "str"
		return nil
	}
	p.Raw = trimmed
	switch {
	case strings.HasPrefix(trimmed, "{"):
		p.Kind = "dict"
	case strings.HasPrefix(trimmed, "["):
		p.Kind = "list"
	case trimmed == "true" || trimmed == "false":
		p.Kind = "bool"
	case strings.ContainsAny(trimmed, ".eE"):
		p.Kind = "float"
	default:
		p.Kind = "int"
	}
	return nil
}

// Value returns the parsed id. ok is false when the raw text is not a positive integer.
func (p PrimaryKey) Value() (uint, bool) {
	return ParseID(p.Raw)
}

// InvalidPKMessage is the field error for a key that references nothing.
func InvalidPKMessage(raw string) string {
	return fmt.Sprintf("Invalid pk \"%s\" - object does not exist.", raw)
}

// IncorrectTypeMessage is the field error for a key that is not an integer.
func IncorrectTypeMessage(kind string) string {
	return fmt.Sprintf("Incorrect type. Expected pk value, received %s.", kind)
}

// Check returns the id or the field error message for the key.
func (p PrimaryKey) Check() (uint, string) {
	if !p.Present {
		return 0, "This field is required."
	}
	if id, ok := p.Value(); ok {
		return id, ""
	}
	if p.Kind == "str" || p.Kind == "int" {
		if _, err := strconv.ParseInt(strings.TrimSpace(p.Raw), 10, 64); err == nil {
			return 0, InvalidPKMessage(p.Raw)
		}
	}
	return 0, IncorrectTypeMessage(p.Kind)
}
