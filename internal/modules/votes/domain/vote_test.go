package domain

import (
	"encoding/json"
	"strings"
	"testing"

	menus "lunchVote/internal/modules/menus/domain"
	restaurants "lunchVote/internal/modules/restaurants/domain"
	"lunchVote/internal/shared/calendar"
)

func TestEncodeNestsVersionedMenu(t *testing.T) {
	t.Parallel()

	day := calendar.Day{Year: 2026, Month: 10, Date: 18}
	vote := Vote{
		ID:         9,
		EmployeeID: 3,
		MenuID:     2,
		Menu: menus.Menu{
			ID:         2,
			Restaurant: restaurants.Restaurant{ID: 1, Name: "Trattoria"},
			Content:    `{"main":"Pizza"}`,
			Date:       day,
		},
		Date: day,
	}

	v1, err := json.Marshal(Encode(menus.V1, vote))
	if err != nil {
		t.Fatalf("marshal v1: %v", err)
	}
	if !strings.Contains(string(v1), `"items":{"main":"Pizza"}`) || strings.Contains(string(v1), `"content"`) {
		t.Fatalf("unexpected v1 body: %s", v1)
	}

	v2, err := json.Marshal(Encode(menus.V2Plus, vote))
	if err != nil {
		t.Fatalf("marshal v2: %v", err)
	}
	want := `{"id":9,"employee":3,"menu":{"id":2,"restaurant":{"id":1,"name":"Trattoria","description":""},"content":{"main":"Pizza"},"date":"2026-10-18"},"date":"2026-10-18"}`
	if string(v2) != want {
		t.Fatalf("unexpected v2 body:\n got %s\nwant %s", v2, want)
	}
}
