package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"lunchVote/internal/modules/menus/application/port"
	"lunchVote/internal/modules/menus/domain"
	realtime "lunchVote/internal/modules/realtime/domain"
	restaurants "lunchVote/internal/modules/restaurants/domain"
	"lunchVote/internal/shared/auth"
	"lunchVote/internal/shared/calendar"
	"lunchVote/internal/shared/validation"
)

var (
	owner    = auth.Identity{UserID: 10, Username: "owner", Roles: []string{auth.RoleRestaurantOwner}}
	stranger = auth.Identity{UserID: 11, Username: "stranger", Roles: []string{auth.RoleRestaurantOwner}}
	today    = time.Date(2026, 10, 18, 11, 30, 0, 0, time.UTC)
)

func newCreateFixture() (*CreateMenuUseCase, *fakeMenuRepository, *recordingPublisher) {
	rest := map[uint]restaurants.Restaurant{1: {ID: 1, OwnerID: owner.UserID, Name: "Trattoria"}}
	repo := &fakeMenuRepository{rest: rest}
	publisher := &recordingPublisher{}
	uc := NewCreateMenuUseCase(repo, fakeRestaurantFinder(rest), publisher, calendar.Fixed(today))
	return uc, repo, publisher
}

func fields(t *testing.T, body string) map[string]json.RawMessage {
	t.Helper()
	var out map[string]json.RawMessage
	if err := json.Unmarshal([]byte(body), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return out
}

func TestCreateMenuUseCase_Success(t *testing.T) {
	t.Parallel()

	uc, repo, publisher := newCreateFixture()
	menu, err := uc.Execute(context.Background(), owner, domain.V2Plus, fields(t, `{"restaurant_id": 1, "content": {"main": "Pizza"}}`))
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if menu.Content != `{"main":"Pizza"}` {
		t.Fatalf("unexpected stored content: %s", menu.Content)
	}
	if menu.Date != calendar.DayOf(today) {
		t.Fatalf("unexpected date: %v", menu.Date)
	}
	if menu.Restaurant.Name != "Trattoria" {
		t.Fatalf("expected restaurant to be loaded, got %+v", menu.Restaurant)
	}
	if len(repo.menus) != 1 {
		t.Fatalf("expected one stored menu, got %d", len(repo.menus))
	}
	if len(publisher.messages) != 1 || publisher.messages[0].Topic != realtime.TopicMenusCreated {
		t.Fatalf("expected menus.created event, got %+v", publisher.messages)
	}
	if publisher.messages[0].ResourceID != "1" {
		t.Fatalf("unexpected resource id: %s", publisher.messages[0].ResourceID)
	}
}

func TestCreateMenuUseCase_RejectsForeignRestaurant(t *testing.T) {
	t.Parallel()

	uc, repo, _ := newCreateFixture()
	_, err := uc.Execute(context.Background(), stranger, domain.V2Plus, fields(t, `{"restaurant_id": 1, "content": "not json"}`))
	if !errors.Is(err, ErrNotRestaurantOwner) {
		t.Fatalf("expected ownership error before content validation, got %v", err)
	}
	if len(repo.menus) != 0 {
		t.Fatal("nothing must be stored")
	}
}

func TestCreateMenuUseCase_ValidationErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		body  string
		field string
		msg   string
	}{
		{"missing restaurant", `{"content": {}}`, "restaurant_id", validation.MsgRequired},
		{"unknown restaurant", `{"restaurant_id": 7, "content": {}}`, "restaurant_id", `Invalid pk "7" - object does not exist.`},
		{"invalid json string", `{"restaurant_id": 1, "content": "{broken"}`, "content", validation.MsgInvalidJSON},
		{"missing content", `{"restaurant_id": 1}`, "content", validation.MsgRequired},
	}
	for _, tc := range cases {
		uc, _, _ := newCreateFixture()
		_, err := uc.Execute(context.Background(), owner, domain.V2Plus, fields(t, tc.body))
		errs, ok := validation.As(err)
		if !ok {
			t.Fatalf("%s: expected validation errors, got %v", tc.name, err)
		}
		if len(errs[tc.field]) != 1 || errs[tc.field][0] != tc.msg {
			t.Fatalf("%s: expected %s=%q, got %v", tc.name, tc.field, tc.msg, errs)
		}
	}
}

func TestCreateMenuUseCase_DuplicatePreCheck(t *testing.T) {
	t.Parallel()

	uc, repo, publisher := newCreateFixture()
	body := `{"restaurant_id": 1, "items": {"main": "Pizza"}}`
	if _, err := uc.Execute(context.Background(), owner, domain.V1, fields(t, body)); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := uc.Execute(context.Background(), owner, domain.V1, fields(t, body))
	errs, ok := validation.As(err)
	if !ok {
		t.Fatalf("expected validation errors, got %v", err)
	}
	if errs[validation.NonFieldKey][0] != domain.MsgDuplicateMenuUniqueSet || errs[validation.DetailKey][0] != domain.MsgDuplicateMenu {
		t.Fatalf("unexpected duplicate errors: %v", errs)
	}
	if len(repo.menus) != 1 || len(publisher.messages) != 1 {
		t.Fatalf("expected a single menu and event, got %d menus %d events", len(repo.menus), len(publisher.messages))
	}
}

func TestCreateMenuUseCase_StorageConflictMapsToDuplicate(t *testing.T) {
	t.Parallel()

	uc, repo, _ := newCreateFixture()
	repo.createFn = func(*domain.Menu) error { return port.ErrDuplicateMenu }

	_, err := uc.Execute(context.Background(), owner, domain.V2Plus, fields(t, `{"restaurant_id": 1, "content": {}}`))
	errs, ok := validation.As(err)
	if !ok || errs[validation.DetailKey][0] != domain.MsgDuplicateMenu {
		t.Fatalf("expected duplicate menu error, got %v", err)
	}
}

func TestCreateMenuUseCase_PublishFailureDoesNotFail(t *testing.T) {
	t.Parallel()

	uc, _, publisher := newCreateFixture()
	publisher.err = errors.New("broker down")

	if _, err := uc.Execute(context.Background(), owner, domain.V2Plus, fields(t, `{"restaurant_id": "1", "content": "[1,2]"}`)); err != nil {
		t.Fatalf("expected success despite publish failure, got %v", err)
	}
}
