package validation

import (
	"fmt"
	"testing"
)

func TestErrorsOrNil(t *testing.T) {
	if err := (Errors{}).OrNil(); err != nil {
		t.Fatalf("expected nil for empty errors, got %v", err)
	}
	errs := Errors{}
	errs.Add("name", MsgRequired).Add("name", "too short")
	if len(errs["name"]) != 2 {
		t.Fatalf("expected two messages, got %v", errs["name"])
	}
	if errs.OrNil() == nil {
		t.Fatal("expected non-nil error")
	}
}

func TestAsUnwrapsWrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("create menu: %w", Field("content", MsgInvalidJSON))
	errs, ok := As(wrapped)
	if !ok {
		t.Fatal("expected validation errors")
	}
	if errs["content"][0] != MsgInvalidJSON {
		t.Fatalf("unexpected message: %v", errs["content"])
	}
}

func TestBodyFlattensDetail(t *testing.T) {
	body := NonField("duplicate").WithDetail("You can only add one menu per day.").Body()
	if body[DetailKey] != "You can only add one menu per day." {
		t.Fatalf("expected flattened detail, got %#v", body[DetailKey])
	}
	nonField, ok := body[NonFieldKey].([]string)
	if !ok || nonField[0] != "duplicate" {
		t.Fatalf("unexpected non field errors: %#v", body[NonFieldKey])
	}
}
