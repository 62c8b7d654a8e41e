package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldTransform strips combining marks so accented names fold to ASCII.
var foldTransform = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Key converts a display name into the normalized key used everywhere a
// competitor or event is referenced: lowercase, accents folded, runs of
// whitespace collapsed to single hyphens, punctuation dropped.
func Key(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return ""
	}
	folded, _, err := transform.String(foldTransform, name)
	if err == nil {
		name = folded
	}
	var b strings.Builder
	b.Grow(len(name))
	lastHyphen := true // suppress a leading hyphen
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		case unicode.IsSpace(r) || r == '-' || r == '_' || r == '.' || r == '\'':
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
