package httputil

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"lunchVote/internal/shared/validation"
)

const (
	MsgServerError = "A server error occurred."
	MsgNotFound    = "Not found."
)

// HTTPErrorInfo contains the HTTP status code and JSON body for an error.
type HTTPErrorInfo struct {
	Status int
	Body   any
}

// ErrorMapping represents a single error to HTTP status/body mapping.
type ErrorMapping struct {
	Error  error
	Status int
	Body   any
}

// ErrorMapper maps domain errors to HTTP status codes and JSON bodies.
// validation.Errors are always rendered as 400 with their field map.
type ErrorMapper struct {
	mappings      []ErrorMapping
	defaultStatus int
	defaultBody   any
}

// NewErrorMapper creates a mapper whose fallback is an opaque 500.
func NewErrorMapper() *ErrorMapper {
	return &ErrorMapper{
		mappings:      make([]ErrorMapping, 0),
		defaultStatus: http.StatusInternalServerError,
		defaultBody:   Detail(MsgServerError),
	}
}

// WithMapping adds an error mapping to the mapper.
func (m *ErrorMapper) WithMapping(err error, status int, body any) *ErrorMapper {
	m.mappings = append(m.mappings, ErrorMapping{Error: err, Status: status, Body: body})
	return m
}

// WithDetail maps err to {"detail": message}.
func (m *ErrorMapper) WithDetail(err error, status int, message string) *ErrorMapper {
	return m.WithMapping(err, status, Detail(message))
}

// Map converts an error to HTTP status and body.
func (m *ErrorMapper) Map(err error) HTTPErrorInfo {
	if err == nil {
		return HTTPErrorInfo{Status: http.StatusOK}
	}

	if verrs, ok := validation.As(err); ok {
		return HTTPErrorInfo{Status: http.StatusBadRequest, Body: verrs.Body()}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return HTTPErrorInfo{Status: http.StatusGatewayTimeout, Body: Detail("request timeout")}
	}
	if errors.Is(err, context.Canceled) {
		return HTTPErrorInfo{Status: http.StatusServiceUnavailable, Body: Detail("request cancelled")}
	}

	for _, mapping := range m.mappings {
		if errors.Is(err, mapping.Error) {
			return HTTPErrorInfo{Status: mapping.Status, Body: mapping.Body}
		}
	}

	return HTTPErrorInfo{Status: m.defaultStatus, Body: m.defaultBody}
}

// Respond writes the mapped error. Server errors are logged with their cause, which never
// reaches the client.
func (m *ErrorMapper) Respond(c echo.Context, err error) error {
	info := m.Map(err)
	if info.Status >= http.StatusInternalServerError {
		slog.Error("request failed",
			slog.String("method", c.Request().Method),
			slog.String("path", c.Path()),
			slog.Any("error", err),
		)
	}
	return c.JSON(info.Status, info.Body)
}

// Detail builds the {"detail": message} body.
func Detail(message string) map[string]string {
	return map[string]string{"detail": message}
}

// Message builds the {"message": message} body used by empty day queries.
func Message(message string) map[string]string {
	return map[string]string{"message": message}
}

// HTTPErrorHandler renders errors that escape handlers (unknown routes, bad methods, panics
// recovered by middleware) in the same {"detail": ...} shape.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	body := Detail(MsgServerError)

	var he *echo.HTTPError
	if errors.As(err, &he) {
		status = he.Code
		switch {
		case status == http.StatusNotFound:
			body = Detail(MsgNotFound)
		case status == http.StatusMethodNotAllowed:
			body = Detail(fmt.Sprintf("Method \"%s\" not allowed.", c.Request().Method))
		case status < http.StatusInternalServerError:
			if msg, ok := he.Message.(string); ok {
				body = Detail(msg)
			} else {
				body = Detail(http.StatusText(status))
			}
		}
	}
	if status >= http.StatusInternalServerError {
		slog.Error("unhandled error", slog.String("path", c.Request().URL.Path), slog.Any("error", err))
	}

	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(status)
	} else {
		writeErr = c.JSON(status, body)
	}
	if writeErr != nil {
		slog.Warn("write error response", slog.Any("error", writeErr))
	}
}
