package wifi

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// NormalizeLocation turns a room label such as "Living Room" or "living-room"
// into the snake_case key used in prompts and logs ("living_room").
func NormalizeLocation(value string) string {
	folded := cases.Fold().String(norm.NFKC.String(strings.TrimSpace(value)))
	var b strings.Builder
	pendingSep := false
	for _, r := range folded {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
		default:
			pendingSep = true
		}
	}
	return b.String()
}
