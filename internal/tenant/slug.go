package tenant

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// GenerateSlug builds the login namespace discriminator from the company
// name: lowercase ascii words joined by dashes plus a random suffix so two
// clinics with the same name never collide.
func GenerateSlug(companyName string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(companyName) {
		switch {
		case r >= 'a' && r <= 'z', unicode.IsDigit(r):
			b.WriteRune(r)
			lastDash = false
		case r == ' ' || r == '-':
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}

	slug := strings.Trim(b.String(), "-")
	suffix := uuid.NewString()[:6]
	if slug == "" {
		return suffix
	}
	return slug + "-" + suffix
}
