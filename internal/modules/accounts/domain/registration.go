package domain

import (
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"

	"lunchVote/internal/shared/validation"
)

const (
	UsernameMaxLength = 150
	PasswordMinLength = 8

	MsgUsernameTaken   = "Username is already taken."
	MsgEmailTaken      = "Email is already taken."
	MsgInvalidEmail    = "Enter a valid email address."
	MsgInvalidUsername = "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters."
	MsgPasswordShort   = "Ensure this field has at least 8 characters."
	MsgUsernameLong    = "Ensure this field has no more than 150 characters."
)

var usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

// Registration is the sign-up request. IsEmployee is a pointer so a missing flag can be reported.
type Registration struct {
	Username   string `json:"username"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	IsEmployee *bool  `json:"is_employee"`
}

// Validate checks field formats. Uniqueness is checked against storage by the use case.
func (r *Registration) Validate() validation.Errors {
	errs := validation.Errors{}
	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.TrimSpace(r.Email)

	switch {
	case r.Username == "":
		errs.Add("username", validation.MsgRequired)
	case utf8.RuneCountInString(r.Username) > UsernameMaxLength:
		errs.Add("username", MsgUsernameLong)
	case !usernamePattern.MatchString(r.Username):
		errs.Add("username", MsgInvalidUsername)
	}

	if r.Email == "" {
		errs.Add("email", validation.MsgRequired)
	} else if addr, err := mail.ParseAddress(r.Email); err != nil || addr.Address != r.Email {
		errs.Add("email", MsgInvalidEmail)
	}

	if r.Password == "" {
		errs.Add("password", validation.MsgRequired)
	} else if utf8.RuneCountInString(r.Password) < PasswordMinLength {
		errs.Add("password", MsgPasswordShort)
	}

	if r.IsEmployee == nil {
		errs.Add("is_employee", validation.MsgRequired)
	}
	return errs
}
