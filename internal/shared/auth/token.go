package auth

import (
	"net/http"
	"strings"
)

// ExtractBearerToken extracts the JWT from the Authorization header.
func ExtractBearerToken(r *http.Request) string {
	if r == nil {
		return ""
	}
	return ExtractBearerTokenFromHeader(r.Header.Get("Authorization"))
}

// ExtractBearerTokenFromHeader strips the "Bearer " prefix, case-insensitively.
// Any other scheme yields an empty string.
func ExtractBearerTokenFromHeader(header string) string {
	header = strings.TrimSpace(header)
	const bearerPrefix = "bearer "
	if len(header) <= len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return ""
	}
	return strings.TrimSpace(header[len(bearerPrefix):])
}

// ExtractToken tries the Authorization header first and falls back to the query parameter
// (default "token"). Browsers cannot set headers on websocket upgrades.
func ExtractToken(r *http.Request, queryParam string) string {
	if token := ExtractBearerToken(r); token != "" {
		return token
	}
	if r == nil || r.URL == nil {
		return ""
	}
	if queryParam == "" {
		queryParam = "token"
	}
	return strings.TrimSpace(r.URL.Query().Get(queryParam))
}
