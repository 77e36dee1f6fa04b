package domain

import (
	"strings"
	"testing"

	"lunchVote/internal/shared/validation"
)

func TestCreateRestaurantCommandValidate(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		cmd  CreateRestaurantCommand
		want string
	}{
		"valid":    {CreateRestaurantCommand{Name: "  Trattoria  "}, ""},
		"missing":  {CreateRestaurantCommand{Name: "   "}, validation.MsgRequired},
		"too long": {CreateRestaurantCommand{Name: strings.Repeat("x", NameMaxLength+1)}, MsgNameTooLong},
	}
	for name, tc := range cases {
		errs := tc.cmd.Validate()
		if tc.want == "" {
			if len(errs) != 0 {
				t.Fatalf("%s: unexpected errors %v", name, errs)
			}
			if tc.cmd.Name != "Trattoria" {
				t.Fatalf("%s: expected trimmed name, got %q", name, tc.cmd.Name)
			}
			continue
		}
		if len(errs["name"]) != 1 || errs["name"][0] != tc.want {
			t.Fatalf("%s: expected %q, got %v", name, tc.want, errs)
		}
	}
}
