package hostname

import (
	"strings"
	"unicode/utf8"

	"twittertext/pkg/twittertext/tld"
)

// Oracle answers TLD membership for an already lowercased label.
type Oracle func(label string) bool

// labelAt returns the label that starts right after the dot at dotPos.
func labelAt(domain string, dotPos int) string {
	rest := domain[dotPos+1:]
	if i := strings.IndexByte(rest, '.'); i >= 0 {
		return rest[:i]
	}
	return rest
}

func dotPositions(domain string) []int {
	var dots []int
	for i := 0; i < len(domain); i++ {
		if domain[i] == '.' {
			dots = append(dots, i)
		}
	}
	return dots
}

// TLDBoundary finds where the rightmost valid TLD of domain ends and returns
// that byte offset. exact is set for URLs without a protocol, which may also
// resolve a Unicode TLD glued to trailing text (".みんなです" → ".みんな").
//
// When a label mixes scripts the search first walks left to right and
// accepts the Latin prefix of the mixed label if it is a TLD
// ("example.comだよね.comtest" → "example.com").
func TLDBoundary(domain string, exact bool, isTLD Oracle) (int, bool) {
	if isTLD == nil {
		isTLD = tld.IsValid
	}
	dots := dotPositions(domain)

	mixed := false
	for _, label := range strings.Split(domain, ".") {
		if HasScriptMixing(label) {
			mixed = true
			break
		}
	}
	if mixed {
		for _, dot := range dots {
			label := labelAt(domain, dot)
			if !HasScriptMixing(label) {
				continue
			}
			prefix := label[:ScriptBoundary(label)]
			if prefix != "" && isTLD(strings.ToLower(prefix)) {
				return dot + 1 + len(prefix), true
			}
		}
	}

	for i := len(dots) - 1; i >= 0; i-- {
		dot := dots[i]
		label := labelAt(domain, dot)
		lower := strings.ToLower(label)
		if isTLD(lower) {
			return dot + 1 + len(label), true
		}

		// ".com-that-you-meant-to-separate"
		if h := strings.IndexByte(label, '-'); h > 0 && isTLD(strings.ToLower(label[:h])) {
			return dot + 1 + h, true
		}

		if exact && !isASCII(lower) {
			n := 0
			for j := range label {
				if n >= 2 && isTLD(strings.ToLower(label[:j])) {
					return dot + 1 + j, true
				}
				n++
			}
		}
	}
	return 0, false
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// labelBeforeTLD returns the label that immediately precedes the last dot of
// domain, or "" when domain has a single label.
func labelBeforeTLD(domain string) string {
	last := strings.LastIndexByte(domain, '.')
	if last <= 0 {
		return ""
	}
	start := strings.LastIndexByte(domain[:last], '.') + 1
	return domain[start:last]
}

// UnderscoreBeforeTLD reports whether the label adjoining the TLD contains
// an underscore. Subdomains further left may contain one.
func UnderscoreBeforeTLD(domain string) bool {
	return strings.ContainsRune(labelBeforeTLD(domain), '_')
}
