package validation

import (
	"regexp"
	"strings"
)

// Validation rule patterns
var (
	// Email validation pattern - local@domain shape
	EmailPattern = `^[^\s@]+@[^\s@]+\.[^\s@]+$`

	// Phone numbers may contain digits, spaces, hyphens, parentheses and a plus sign
	PhonePattern = `^[\d\s\-+()]+$`

	// Calendar dates use the YYYY-MM-DD form
	DatePattern = `^\d{4}-\d{2}-\d{2}$`

	// Cover letter max length
	CoverLetterMaxLength = 2000
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Email *regexp.Regexp
	Phone *regexp.Regexp
	Date  *regexp.Regexp
}{
	Email: regexp.MustCompile(EmailPattern),
	Phone: regexp.MustCompile(PhonePattern),
	Date:  regexp.MustCompile(DatePattern),
}

// IsValidEmail reports whether the value has a standard local@domain shape.
func IsValidEmail(email string) bool {
	return CompiledPatterns.Email.MatchString(email)
}

// IsValidPhoneNumber reports whether the value is a plausible phone number:
// only digits, spaces, hyphens, parentheses and plus allowed, with 6 to 15
// digits once separators are stripped.
func IsValidPhoneNumber(phone string) bool {
	if phone == "" || !CompiledPatterns.Phone.MatchString(phone) {
		return false
	}
	digits := 0
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits >= 6 && digits <= 15
}

// IsValidDate reports whether the value matches the YYYY-MM-DD form.
// Only the shape is checked here; range checks belong to the caller.
func IsValidDate(date string) bool {
	return CompiledPatterns.Date.MatchString(strings.TrimSpace(date))
}
