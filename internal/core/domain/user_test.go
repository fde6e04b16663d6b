package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestFullName(t *testing.T) {
	u := &User{FirstName: "Jane", LastName: "Doe"}
	assert.Equal(t, "Jane Doe", u.FullName())
}

func TestFullNameMissingParts(t *testing.T) {
	// Plain concatenation, not a cleanup function: absent parts leave
	// the joining space in place.
	assert.Equal(t, " Doe", (&User{LastName: "Doe"}).FullName())
	assert.Equal(t, "Jane ", (&User{FirstName: "Jane"}).FullName())
	assert.Equal(t, " ", (&User{}).FullName())
}

func TestAgeNextYear(t *testing.T) {
	u := &User{BirthDate: date(1990, time.March, 10)}
	today := time.Date(2023, time.June, 15, 0, 0, 0, 0, time.UTC)

	age, ok := u.AgeNextYear(today)
	assert.True(t, ok)
	assert.Equal(t, 34, age)
}

func TestAgeNextYearIgnoresBirthdayWithinYear(t *testing.T) {
	// Calendar-year subtraction only: the result is identical before
	// and after the March 10 birthday. Documented policy, kept as is.
	u := &User{BirthDate: date(1990, time.March, 10)}

	before := time.Date(2023, time.January, 2, 0, 0, 0, 0, time.UTC)
	after := time.Date(2023, time.December, 30, 0, 0, 0, 0, time.UTC)

	ageBefore, _ := u.AgeNextYear(before)
	ageAfter, _ := u.AgeNextYear(after)
	assert.Equal(t, 34, ageBefore)
	assert.Equal(t, 34, ageAfter)
}

func TestAgeNextYearNoBirthDate(t *testing.T) {
	_, ok := (&User{}).AgeNextYear(time.Now())
	assert.False(t, ok)
}

func TestPersisted(t *testing.T) {
	assert.False(t, (&User{}).Persisted())
	assert.True(t, (&User{ID: 7}).Persisted())
}

func TestIsGuest(t *testing.T) {
	assert.True(t, (&User{UserType: Guest}).IsGuest())
	assert.False(t, (&User{UserType: Regular}).IsGuest())
}
