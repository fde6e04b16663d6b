package domain

import (
	"time"
)

type UserType string

const (
	Regular UserType = "regular"
	Premium UserType = "premium"
	Admin   UserType = "admin"
	Guest   UserType = "guest"
)

// User is an account record. Age and BirthDate are optional; pointers
// distinguish "not supplied" from zero values.
type User struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Age       *int       `json:"age,omitempty"`
	FirstName string     `json:"first_name,omitempty"`
	LastName  string     `json:"last_name,omitempty"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
	UserType  UserType   `json:"user_type"`
	Active    bool       `json:"active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Persisted reports whether storage has assigned an id yet.
func (u *User) Persisted() bool {
	return u.ID != 0
}

func (u *User) IsGuest() bool {
	return u.UserType == Guest
}

// FullName joins first and last name with a single space. Missing parts
// render as empty strings, so the result may carry a stray space.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// AgeNextYear returns today.Year - birth.Year + 1. This is a plain
// calendar-year subtraction and ignores whether the birthday has passed
// within the year. The second return is false when no birth date is set.
func (u *User) AgeNextYear(today time.Time) (int, bool) {
	if u.BirthDate == nil {
		return 0, false
	}
	return today.Year() - u.BirthDate.Year() + 1, true
}
