package dto

import (
	"regexp"
	"time"
)

var (
	telephonePattern = regexp.MustCompile(`^\+?\d{9,12}$`)
	// passwordPattern requires at least one digit and one uppercase letter.
	passwordPattern = regexp.MustCompile(`\d.*[A-Z]|[A-Z].*\d`)
)

// fieldErrors accumulates per-field validation detail for 422 responses.
type fieldErrors map[string]any

func (f fieldErrors) add(field, problem string) {
	f[field] = problem
}

func (f fieldErrors) orNil() map[string]any {
	if len(f) == 0 {
		return nil
	}
	return f
}

func checkLength(errs fieldErrors, field, value string, min, max int) {
	if len(value) < min || len(value) > max {
		errs.add(field, "length out of bounds")
	}
}

func checkOptionalLength(errs fieldErrors, field string, value *string, min, max int) {
	if value == nil {
		return
	}
	checkLength(errs, field, *value, min, max)
}

func checkTelephone(errs fieldErrors, field string, value *string) {
	if value == nil {
		return
	}
	if !telephonePattern.MatchString(*value) {
		errs.add(field, "invalid telephone number")
	}
}

func checkPassword(errs fieldErrors, field, value string) {
	if len(value) < 8 || len(value) > 36 {
		errs.add(field, "length out of bounds")
		return
	}
	if !passwordPattern.MatchString(value) {
		errs.add(field, "must contain an uppercase letter and a digit")
	}
}

// checkBirthDate rejects dates in the future or beyond a plausible lifespan.
func checkBirthDate(errs fieldErrors, field string, value time.Time) {
	now := time.Now()
	if value.After(now) {
		errs.add(field, "birth date in the future")
		return
	}
	if value.Before(now.AddDate(-125, 0, 0)) {
		errs.add(field, "birth date too far in the past")
	}
}
