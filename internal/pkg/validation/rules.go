package validation

import (
	"regexp"
	"strings"
)

// Validation rule patterns
var (
	// Email validation pattern
	EmailPattern = `^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,4}$`

	// Zero-padded 24-hour clock time, e.g. "10:00"
	ClockPattern = `^([01]\d|2[0-3]):[0-5]\d$`

	// Password min length
	PasswordMinLength = 8

	// Name validation min/max length
	NameMinLength = 2
	NameMaxLength = 100
)

// CompiledPatterns caches compiled regex patterns.
var CompiledPatterns = struct {
	Email *regexp.Regexp
	Clock *regexp.Regexp
}{
	Email: regexp.MustCompile(EmailPattern),
	Clock: regexp.MustCompile(ClockPattern),
}

// weekdayTokens are the accepted schedule_days values.
var weekdayTokens = map[string]struct{}{
	"monday":    {},
	"tuesday":   {},
	"wednesday": {},
	"thursday":  {},
	"friday":    {},
	"saturday":  {},
	"sunday":    {},
}

// ValidEmail reports whether the value matches the email pattern.
func ValidEmail(value string) bool {
	return CompiledPatterns.Email.MatchString(strings.ToLower(value))
}

// ValidClock reports whether the value is a zero-padded "HH:MM" time.
func ValidClock(value string) bool {
	return CompiledPatterns.Clock.MatchString(value)
}

// ValidWeekday reports whether the token is a lowercase English
// weekday name.
func ValidWeekday(token string) bool {
	_, ok := weekdayTokens[token]
	return ok
}

// ValidWeekdays reports whether every token in the set is a valid
// weekday. An empty set is invalid: a recurrence rule needs at least
// one weekday.
func ValidWeekdays(tokens []string) bool {
	if len(tokens) == 0 {
		return false
	}
	for _, t := range tokens {
		if !ValidWeekday(t) {
			return false
		}
	}
	return true
}
