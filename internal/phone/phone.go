// Package phone canonicalizes Israeli mobile numbers. The canonical form is
// the uniqueness key for participant identity and OTP issuance, so every
// accepted written form of one physical number must collapse to one string.
package phone

import (
	"regexp"
	"strings"

	"github.com/galvital/YogaMoves/domain"
)

// Accepted written forms of an Israeli mobile number, after separators are
// stripped: +9725XXXXXXXX, 9725XXXXXXXX, 05XXXXXXXX. Landlines and foreign
// numbers are rejected.
var patterns = []*regexp.Regexp{
	regexp.MustCompile(`^\+9725[0-9]{8}$`),
	regexp.MustCompile(`^9725[0-9]{8}$`),
	regexp.MustCompile(`^05[0-9]{8}$`),
}

var separators = strings.NewReplacer(" ", "", "-", "", "\t", "")

// Valid reports whether raw is an acceptable Israeli mobile number in any of
// the three written forms.
func Valid(raw string) bool {
	cleaned := separators.Replace(raw)
	for _, p := range patterns {
		if p.MatchString(cleaned) {
			return true
		}
	}
	return false
}

// Normalize rewrites an accepted number into the canonical +972 form.
// Normalizing an already canonical number is a no-op.
func Normalize(raw string) (string, error) {
	if !Valid(raw) {
		return "", domain.ErrInvalidPhone
	}
	cleaned := separators.Replace(raw)
	switch {
	case strings.HasPrefix(cleaned, "+972"):
		return cleaned, nil
	case strings.HasPrefix(cleaned, "972"):
		return "+" + cleaned, nil
	default: // 05X...
		return "+972" + cleaned[1:], nil
	}
}
