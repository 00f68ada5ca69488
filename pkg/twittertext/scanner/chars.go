package scanner

// IsSpace reports whether r separates tokens. The set is narrower than
// unicode.IsSpace and wider than ASCII whitespace.
func IsSpace(r rune) bool {
	switch r {
	case 0x20, 0x85, 0xA0, 0x1680, 0x180E, 0x2028, 0x2029, 0x202F, 0x205F, 0x3000:
		return true
	}
	return (r >= 0x09 && r <= 0x0D) || (r >= 0x2000 && r <= 0x200A)
}

// IsPunctuation reports whether r is ASCII punctuation.
func IsPunctuation(r rune) bool {
	switch r {
	case '-', '_', '!', '"', '#', '$', '%', '&', '\'', '(', ')', '*', '+', ',', '.', '/',
		'\\', ':', ';', '<', '=', '>', '?', '@', '[', ']', '^', '`', '{', '|', '}', '~':
		return true
	}
	return false
}

// IsInvalidChar reports whether r is one of the code points a message may
// never contain.
func IsInvalidChar(r rune) bool {
	return r == 0xFFFE || r == 0xFEFF || r == 0xFFFF
}

// IsLatinAccent reports whether r is an accented Latin letter or a combining
// diacritic that may appear inside usernames' neighbours and bare domains.
func IsLatinAccent(r rune) bool {
	switch {
	case r >= 0x00C0 && r <= 0x00D6,
		r >= 0x00D8 && r <= 0x00F6,
		r >= 0x00F8 && r <= 0x00FF,
		r >= 0x0100 && r <= 0x024F,
		r == 0x0253, r == 0x0254,
		r == 0x0256, r == 0x0257,
		r == 0x0259, r == 0x025B, r == 0x0263, r == 0x0268, r == 0x026F,
		r == 0x0272, r == 0x0289, r == 0x028B, r == 0x02BB,
		r >= 0x0300 && r <= 0x036F,
		r >= 0x1E00 && r <= 0x1EFF:
		return true
	}
	return false
}

func isCyrillic(r rune) bool { return r >= 0x0400 && r <= 0x04FF }

func isASCIIAlpha(r rune) bool { return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') }

func isASCIIDigit(r rune) bool { return r >= '0' && r <= '9' }

func isASCIIAlnum(r rune) bool { return isASCIIAlpha(r) || isASCIIDigit(r) }

func isHexDigit(r rune) bool {
	return isASCIIDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

// isURLDelimiter reports whether r ends a URL context: CJK punctuation,
// kana, ideographs, Hangul syllables and fullwidth forms.
func isURLDelimiter(r rune) bool {
	return (r >= 0x3000 && r <= 0x303F) ||
		(r >= 0x3040 && r <= 0x309F) ||
		(r >= 0x30A0 && r <= 0x30FF) ||
		(r >= 0x4E00 && r <= 0x9FFF) ||
		(r >= 0xAC00 && r <= 0xD7AF) ||
		(r >= 0xFF00 && r <= 0xFFEF)
}

// fastSkip is the set of ASCII bytes that can never start an entity.
var fastSkip = func() (set [128]bool) {
	for _, b := range []byte(" .,!?'\"-_\n\r\t()[]{}:;<>/\\|`~=+*&^%0123456789") {
		set[b] = true
	}
	return set
}()
