package catalog

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Skin tone modifiers are category Sk; the rest of Sk (^, `) is kept.
const (
	skinToneFirst = 0x1F3FB
	skinToneLast  = 0x1F3FF
)

// isDecoration reports whether r is an emoji or decorative symbol that should
// not appear in a category name.
func isDecoration(r rune) bool {
	switch {
	case unicode.Is(unicode.So, r), // pictographs, dingbats, stars
		unicode.Is(unicode.Cf, r), // zero-width joiners and spaces
		unicode.Is(unicode.Me, r), // combining enclosing keycap
		unicode.Is(unicode.Variation_Selector, r):
		return true
	case r >= skinToneFirst && r <= skinToneLast:
		return true
	}
	return false
}

// CleanHeading strips decorative characters from a heading title and
// collapses whitespace. "🔥 热门推荐工具" becomes "热门推荐工具".
func CleanHeading(title string) string {
	t := transform.Chain(norm.NFC, runes.Remove(runes.Predicate(isDecoration)))
	out, _, err := transform.String(t, title)
	if err != nil {
		out = title
	}
	return strings.Join(strings.Fields(out), " ")
}
