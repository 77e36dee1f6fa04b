package domain

import (
	"bytes"
	"encoding/json"
	"strings"

	restaurants "lunchVote/internal/modules/restaurants/domain"
	"lunchVote/internal/shared/calendar"
	"lunchVote/internal/shared/validation"
)

const (
	HeaderBuildVersion  = "X-Build-Version"
	DefaultBuildVersion = "2.0"
)

// Version selects the menu payload shape. V1 clients use "items" where newer clients use "content".
type Version int

const (
	V2Plus Version = iota
	V1
)

func (v Version) String() string {
	if v == V1 {
		return "v1"
	}
	return "v2+"
}

// ResolveVersion maps the X-Build-Version header to a Version. Only markers starting with "1."
// select V1; a bare "1" does not.
func ResolveVersion(header string) Version {
	marker := strings.TrimSpace(header)
	if marker == "" {
		marker = DefaultBuildVersion
	}
	if strings.HasPrefix(marker, "1.") {
		return V1
	}
	return V2Plus
}

// MenuPayload is a decoded create request. Content is the raw JSON value, nil when absent.
type MenuPayload struct {
	RestaurantID json.RawMessage
	Content      json.RawMessage
}

// DecodeMenuPayload reads the create body for version v. For V1, a present "items" value replaces
// "content": objects are stored as their JSON text, any other value is taken as is.
func DecodeMenuPayload(v Version, fields map[string]json.RawMessage) MenuPayload {
	payload := MenuPayload{
		RestaurantID: fields["restaurant_id"],
		Content:      fields["content"],
	}
	if v != V1 {
		return payload
	}
	items, ok := fields["items"]
	if !ok {
		return payload
	}
	if isJSONObject(items) {
		var compact bytes.Buffer
		if err := json.Compact(&compact, items); err == nil {
			if encoded, err := json.Marshal(compact.String()); err == nil {
				payload.Content = encoded
				return payload
			}
		}
	}
	payload.Content = items
	return payload
}

// NormalizeContent validates a content value and returns the compact JSON text to store.
// A JSON string must itself hold valid JSON and is unwrapped once.
func NormalizeContent(raw json.RawMessage) (string, validation.Errors) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return "", validation.Field("content", validation.MsgRequired)
	}

	document := trimmed
	if trimmed[0] == '"' {
		var inner string
		if err := json.Unmarshal(trimmed, &inner); err != nil {
			return "", validation.Field("content", validation.MsgInvalidJSON)
		}
		document = []byte(strings.TrimSpace(inner))
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, document); err != nil {
		return "", validation.Field("content", validation.MsgInvalidJSON)
	}
	return compact.String(), nil
}

type representationV2 struct {
	ID         uint                       `json:"id"`
	Restaurant restaurants.Representation `json:"restaurant"`
	Content    json.RawMessage            `json:"content"`
	Date       calendar.Day               `json:"date"`
}

type representationV1 struct {
	ID         uint                       `json:"id"`
	Restaurant restaurants.Representation `json:"restaurant"`
	Date       calendar.Day               `json:"date"`
	Items      json.RawMessage            `json:"items"`
}

// Encode renders m for version v. Content is always emitted in its structured form.
func Encode(v Version, m Menu) any {
	content := storedContent(m.Content)
	if v == V1 {
		return representationV1{ID: m.ID, Restaurant: m.Restaurant.Representation(), Date: m.Date, Items: content}
	}
	return representationV2{ID: m.ID, Restaurant: m.Restaurant.Representation(), Content: content, Date: m.Date}
}

// EncodeList renders menus for version v.
func EncodeList(v Version, menus []Menu) []any {
	out := make([]any, 0, len(menus))
	for _, m := range menus {
		out = append(out, Encode(v, m))
	}
	return out
}

// storedContent guards against rows written outside the service. Text that is not JSON is
// emitted as a JSON string.
func storedContent(text string) json.RawMessage {
	if json.Valid([]byte(text)) {
		return json.RawMessage(text)
	}
	encoded, _ := json.Marshal(text)
	return encoded
}

func isJSONObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}
