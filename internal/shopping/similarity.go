package shopping

import (
	"strings"
	"unicode"
)

// normalizeItemName lowercases, trims, and strips everything except word
// characters and spaces, so "Milk (2%)" and "milk 2" compare equal-ish
func normalizeItemName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == ' ' {
			return r
		}
		return -1
	}, name)
}

// itemNamesSimilar treats two normalized names as similar when either is
// a substring of the other. Names shorter than 3 characters must match
// exactly; otherwise "a" would match everything.
func itemNamesSimilar(name1, name2 string) bool {
	if len(name1) < 3 || len(name2) < 3 {
		return name1 == name2
	}
	return strings.Contains(name1, name2) || strings.Contains(name2, name1)
}
