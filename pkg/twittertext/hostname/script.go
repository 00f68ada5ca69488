package hostname

import (
	"strings"
	"unicode/utf8"
)

// IsLatin reports whether r is an ASCII letter or falls in Latin-1
// Supplement, Latin Extended-A or Latin Extended-B.
func IsLatin(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= 0x00C0 && r <= 0x024F)
}

func isPunycodeLabel(label string) bool {
	return strings.HasPrefix(label, "xn--") || strings.HasPrefix(label, "XN--")
}

// HasScriptMixing reports whether a non-Latin character follows a Latin
// letter inside label. Digits and hyphens never count, and xn-- labels are
// exempt.
func HasScriptMixing(label string) bool {
	if isPunycodeLabel(label) {
		return false
	}
	seenLatin := false
	for _, r := range label {
		switch {
		case IsLatin(r):
			seenLatin = true
		case (r >= '0' && r <= '9') || r == '-':
		case seenLatin:
			return true
		}
	}
	return false
}

// ScriptBoundary returns the byte length of the prefix of label that ends
// where a non-Latin character first follows a Latin letter. Labels that
// start in another script keep their leading run.
func ScriptBoundary(label string) int {
	end := 0
	seenLatin := false
	for i, r := range label {
		latin := IsLatin(r)
		switch {
		case latin || (r >= '0' && r <= '9') || r == '-':
			seenLatin = seenLatin || latin
			end = i + utf8.RuneLen(r)
		case seenLatin:
			return end
		default:
			end = i + utf8.RuneLen(r)
		}
	}
	return end
}

// ValidDomainEnd scans the labels of domain right to left and returns the
// byte offset where the domain must end: inside the first label with script
// mixing, or len(domain) if none mixes.
func ValidDomainEnd(domain string) int {
	labelEnd := len(domain)
	for labelEnd >= 0 {
		labelStart := strings.LastIndexByte(domain[:labelEnd], '.') + 1
		label := domain[labelStart:labelEnd]
		if HasScriptMixing(label) {
			return labelStart + ScriptBoundary(label)
		}
		labelEnd = labelStart - 1
	}
	return len(domain)
}
