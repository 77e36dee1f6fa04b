package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"lunchVote/internal/shared/validation"
)

var errNotOwner = errors.New("not owner")

func TestErrorMapperMap(t *testing.T) {
	t.Parallel()

	mapper := NewErrorMapper().WithDetail(errNotOwner, http.StatusForbidden, "You can only add a menu to your own restaurant.")

	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"nil", nil, http.StatusOK},
		{"validation", fmt.Errorf("wrap: %w", validation.Field("content", validation.MsgRequired)), http.StatusBadRequest},
		{"mapped", fmt.Errorf("create: %w", errNotOwner), http.StatusForbidden},
		{"deadline", context.DeadlineExceeded, http.StatusGatewayTimeout},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := mapper.Map(tc.err); got.Status != tc.wantStatus {
			t.Fatalf("%s: expected %d, got %d", tc.name, tc.wantStatus, got.Status)
		}
	}
}

func TestErrorMapperRespondHidesCause(t *testing.T) {
	t.Parallel()

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/menus/", nil), rec)

	if err := NewErrorMapper().Respond(c, errors.New("pq: connection refused")); err != nil {
		t.Fatalf("respond: %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["detail"] != MsgServerError {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestHTTPErrorHandlerRendersDetail(t *testing.T) {
	t.Parallel()

	e := echo.New()
	e.HTTPErrorHandler = HTTPErrorHandler
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nowhere/", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["detail"] != MsgNotFound {
		t.Fatalf("unexpected body: %v", body)
	}
}
