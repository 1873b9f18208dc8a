// Package accentx compiles free-text search terms into accent-insensitive,
// case-insensitive SQLite GLOB patterns.
//
// The directory data mixes accented and unaccented spellings of the same
// French words ("Électricité" vs "Electricite", "Thiès" vs "Thies"), so a
// search term typed without accents must still match the accented form. Each
// ASCII letter of the input expands to a GLOB character class containing the
// letter, its case counterpart and every diacritic variant it may stand for:
//
//	a -> a à á â ã ä å    e -> e è é ê ë    i -> i ì í î ï
//	o -> o ò ó ô õ ö      u -> u ù ú û ü    c -> c ç
//	n -> n ñ              y -> y ý ÿ
//
// Already-accented input letters fold to the other case ("é" also matches
// "É"). Remaining characters pass through literally, with GLOB metacharacters
// escaped via single-character classes.
package accentx

import (
	"strings"
	"unicode"
)

// variants maps a lowercase ASCII letter to its lowercase diacritic variants.
// The uppercase forms are derived with strings.ToUpper at compile time.
var variants = map[rune]string{
	'a': "àáâãäå",
	'e': "èéêë",
	'i': "ìíîï",
	'o': "òóôõö",
	'u': "ùúûü",
	'c': "ç",
	'n': "ñ",
	'y': "ýÿ",
}

// GlobPattern compiles term into a SQLite GLOB pattern fragment. The result
// matches the term exactly; callers add "*" wildcards for substring matching
// (see ContainsPattern).
func GlobPattern(term string) string {
	var b strings.Builder
	b.Grow(len(term) * 4)

	for _, r := range term {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			writeLetterClass(&b, r)
		case r == '*' || r == '?' || r == '[':
			// GLOB metacharacters match themselves inside a class.
			b.WriteByte('[')
			b.WriteRune(r)
			b.WriteByte(']')
		default:
			writeFoldedRune(&b, r)
		}
	}

	return b.String()
}

// ContainsPattern compiles term into a GLOB pattern matching any value that
// contains the term. An empty term yields "*".
func ContainsPattern(term string) string {
	return "*" + GlobPattern(term) + "*"
}

// writeFoldedRune emits r case-insensitively: letters with a distinct case
// counterpart become a two-rune class ("é" matches "É" too), everything else
// passes through literally.
func writeFoldedRune(b *strings.Builder, r rune) {
	lower := unicode.ToLower(r)
	upper := unicode.ToUpper(r)
	if lower == upper {
		b.WriteRune(r)
		return
	}
	b.WriteByte('[')
	b.WriteRune(lower)
	b.WriteRune(upper)
	b.WriteByte(']')
}

// writeLetterClass emits a character class covering both cases of the letter
// and all of its diacritic variants.
func writeLetterClass(b *strings.Builder, r rune) {
	lower := r
	if r >= 'A' && r <= 'Z' {
		lower = r + ('a' - 'A')
	}
	upper := lower - ('a' - 'A')

	b.WriteByte('[')
	b.WriteRune(lower)
	b.WriteRune(upper)
	if extra, ok := variants[lower]; ok {
		b.WriteString(extra)
		b.WriteString(strings.ToUpper(extra))
	}
	b.WriteByte(']')
}
