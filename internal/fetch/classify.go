package fetch

import "strings"

// KeywordRule assigns entries whose name contains any keyword to Category.
type KeywordRule struct {
	Category string
	Keywords []string
}

// Classified is an entry with the category it was assigned to.
type Classified struct {
	Entry
	Category string
}

// Classify assigns each entry to the first rule with a keyword contained in
// its name. Unmatched entries go to fallback, or are dropped when fallback
// is empty. Entry order is preserved.
func Classify(entries []Entry, rules []KeywordRule, fallback string) []Classified {
	out := make([]Classified, 0, len(entries))
	for _, e := range entries {
		category := match(e.Name, rules)
		if category == "" {
			category = fallback
		}
		if category == "" {
			continue
		}
		out = append(out, Classified{Entry: e, Category: category})
	}
	return out
}

func match(name string, rules []KeywordRule) string {
	for _, r := range rules {
		for _, k := range r.Keywords {
			if k != "" && strings.Contains(name, k) {
				return r.Category
			}
		}
	}
	return ""
}
