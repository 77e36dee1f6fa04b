package transport

import (
	"strings"

	"lunchVote/internal/shared/validation"
)

func requireFields(fields map[string]string) error {
	errs := validation.Errors{}
	for name, value := range fields {
		if strings.TrimSpace(value) == "" {
			errs.Add(name, validation.MsgRequired)
		}
	}
	return errs.OrNil()
}
