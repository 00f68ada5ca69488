package scanner

import (
	"unicode"
	"unicode/utf8"
)

// hashtagSpecial holds the joiners and script punctuation allowed inside a
// hashtag in addition to decimal digits.
var hashtagSpecial = map[rune]bool{
	'_':    true,
	0x200C: true, // zero-width non-joiner
	0x200D: true, // zero-width joiner
	0xA67E: true,
	0x05BE: true, // Hebrew maqaf
	0x05F3: true, // Hebrew geresh
	0x05F4: true, // Hebrew gershayim
	0xFF5E: true,
	0x301C: true,
	0x309B: true,
	0x309C: true,
	0x30A0: true,
	0x30FB: true, // katakana middle dot
	0x3003: true,
	0x0F0B: true,
	0x0F0C: true,
	0x00B7: true,
}

func isLetterOrMark(r rune) bool { return unicode.IsLetter(r) || unicode.IsMark(r) }

func isHashtagSpecial(r rune) bool {
	return hashtagSpecial[r] || unicode.Is(unicode.Nd, r)
}

// ValidHashtagPredecessor reports whether a hashtag may follow r.
func ValidHashtagPredecessor(r rune) bool {
	if r == 0xFE0E || r == 0xFE0F {
		return true
	}
	return r != '&' && !isLetterOrMark(r)
}

// ParseHashtag matches '#' or '＃' followed by letters, marks, digits and
// joiners, at least one of which is a letter or mark. It returns the matched
// length in bytes.
func ParseHashtag(s string) (int, bool) {
	n, ok := hashPrefix(s)
	if !ok {
		return 0, false
	}
	first, _ := utf8.DecodeRuneInString(s[n:])
	if first == 0xFE0F || first == 0x20E3 {
		return 0, false
	}
	hasLetter := false
	for n < len(s) {
		r, size := utf8.DecodeRuneInString(s[n:])
		switch {
		case isLetterOrMark(r):
			hasLetter = true
		case isHashtagSpecial(r):
		default:
			return n, hasLetter
		}
		n += size
	}
	return n, hasLetter
}

func hashPrefix(s string) (int, bool) {
	switch {
	case len(s) > 0 && s[0] == '#':
		return 1, true
	case hasPrefixRune(s, 0xFF03):
		return 3, true
	}
	return 0, false
}

func atPrefix(s string) (int, bool) {
	switch {
	case len(s) > 0 && s[0] == '@':
		return 1, true
	case hasPrefixRune(s, 0xFF20):
		return 3, true
	}
	return 0, false
}

func hasPrefixRune(s string, r rune) bool {
	got, _ := utf8.DecodeRuneInString(s)
	return got == r
}
