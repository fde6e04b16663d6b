// Package validation holds the field rules for users and posts. Every
// applicable rule runs and its message accumulates into the result; nothing
// short-circuits, so a caller always sees the complete violation set.
package validation

import (
	"strings"

	"blogsvc/internal/core/domain"

	"github.com/go-playground/validator/v10"
)

// Mode selects the lifecycle path being validated. The age rule only
// applies on the create path.
type Mode int

const (
	ModeCreate Mode = iota
	ModeUpdate
)

const (
	msgBlank      = "can't be blank"
	msgInvalid    = "is invalid"
	msgGreaterTh0 = "must be greater than 0"
	msgTooShort   = "is too short (minimum is 10 characters)"
	msgMustExist  = "must exist"

	contentMinLen = 10
)

// ValidateUser evaluates the user rules and returns the violations found.
// Guests are exempt from the name and email rules; the age rule runs only
// in create mode and only when a value was supplied.
func ValidateUser(v *validator.Validate, u *domain.User, mode Mode) domain.FieldErrors {
	errs := domain.FieldErrors{}

	if !u.IsGuest() {
		if strings.TrimSpace(u.Name) == "" {
			errs.Add("name", msgBlank)
		}
		// Presence and format are independent checks; a blank email
		// fails both and collects both messages.
		if strings.TrimSpace(u.Email) == "" {
			errs.Add("email", msgBlank)
		}
		if v.Var(u.Email, "email") != nil {
			errs.Add("email", msgInvalid)
		}
	}

	if mode == ModeCreate && u.Age != nil && *u.Age <= 0 {
		errs.Add("age", msgGreaterTh0)
	}

	return errs
}

// ValidatePost evaluates the post rules. Owner existence beyond a non-zero
// user_id is the coordinator's job; a zero owner is already a violation.
func ValidatePost(v *validator.Validate, p *domain.Post) domain.FieldErrors {
	errs := domain.FieldErrors{}

	if strings.TrimSpace(p.Title) == "" {
		errs.Add("title", msgBlank)
	}
	if len([]rune(p.Content)) < contentMinLen {
		errs.Add("content", msgTooShort)
	}
	if p.UserID == 0 {
		errs.Add("user", msgMustExist)
	}

	return errs
}

// MissingOwner is the violation the coordinator records when a post's
// user_id does not resolve to a stored user.
func MissingOwner(errs domain.FieldErrors) domain.FieldErrors {
	if errs == nil {
		errs = domain.FieldErrors{}
	}
	errs.Add("user", msgMustExist)
	return errs
}
