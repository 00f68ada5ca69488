package scanner

const (
	maxCashtagSymbol = 6
	maxCashtagSuffix = 2
)

// ParseCashtag matches '$' followed by one to six ASCII letters and an
// optional '.' or '_' with one or two more letters. The match fails when an
// ASCII letter or digit directly follows it. It returns the matched length
// in bytes.
func ParseCashtag(s string) (int, bool) {
	if len(s) == 0 || s[0] != '$' {
		return 0, false
	}
	n := 1 + countASCIILetters(s[1:], maxCashtagSymbol)
	if n == 1 {
		return 0, false
	}
	if n < len(s) && (s[n] == '.' || s[n] == '_') {
		if k := countASCIILetters(s[n+1:], maxCashtagSuffix); k > 0 {
			n += 1 + k
		}
	}
	if n < len(s) && isASCIIAlnum(rune(s[n])) {
		return 0, false
	}
	return n, true
}

func countASCIILetters(s string, limit int) int {
	n := 0
	for n < len(s) && n < limit && isASCIIAlpha(rune(s[n])) {
		n++
	}
	return n
}
