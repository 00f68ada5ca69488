package scanner

import (
	"strings"
	"unicode/utf8"
)

const maxTCoPathLength = 40

// URLMatch describes a matched URL. HostStart and HostEnd are byte offsets
// of the host within the match.
type URLMatch struct {
	Len       int
	HostStart int
	HostEnd   int
	TCo       bool
}

// ParseURL matches an http or https URL at the start of s.
func ParseURL(s string) (URLMatch, bool) {
	if m, ok := parseTCoURL(s); ok {
		return m, true
	}
	return parseNormalURL(s)
}

// ParseURLWithoutProtocol matches a bare domain with an optional port, path,
// query and fragment. Domain labels are limited to ASCII letters, digits and
// Latin accents, except that the final label may be a Unicode TLD.
func ParseURLWithoutProtocol(s string) (URLMatch, bool) {
	if !hasDotBeforeSpace(s) {
		return URLMatch{}, false
	}
	return matchURLWithoutProtocol(s)
}

// matchURLWithoutProtocol is ParseURLWithoutProtocol for callers that have
// already seen a '.' ahead of the next space.
func matchURLWithoutProtocol(s string) (URLMatch, bool) {
	n, ok := uwpDomain(s)
	if !ok {
		return URLMatch{}, false
	}
	hostEnd := n
	n += optionalTail(s[n:])
	return URLMatch{Len: n, HostEnd: hostEnd}, true
}

func hasDotBeforeSpace(s string) bool {
	for _, r := range s {
		if IsSpace(r) {
			return false
		}
		if r == '.' {
			return true
		}
	}
	return false
}

// protocol matches "http://" or "https://" case-insensitively.
func protocol(s string) int {
	if len(s) < 7 || !strings.EqualFold(s[:4], "http") {
		return 0
	}
	n := 4
	if s[n] == 's' || s[n] == 'S' {
		n++
	}
	if !strings.HasPrefix(s[n:], "://") {
		return 0
	}
	return n + 3
}

// isTCoHost reports whether s starts with the bare host "t.co" and not a
// longer domain such as "t.com" or "t.co.uk".
func isTCoHost(s string) bool {
	if !strings.HasPrefix(s, "t.co") {
		return false
	}
	rest := s[len("t.co"):]
	r, _ := utf8.DecodeRuneInString(rest)
	switch {
	case rest == "":
		return true
	case r == '.':
		return domainSegment(rest[1:]) == 0
	case r == '-' || r == '_':
		return false
	}
	return !isDomainChar(r)
}

func parseTCoURL(s string) (URLMatch, bool) {
	p := protocol(s)
	if p == 0 || !isTCoHost(s[p:]) {
		return URLMatch{}, false
	}
	m := URLMatch{HostStart: p, HostEnd: p + len("t.co"), TCo: true}
	n := m.HostEnd
	if n < len(s) && s[n] == '/' {
		k := 0
		for n+1+k < len(s) && isASCIIAlnum(rune(s[n+1+k])) {
			k++
		}
		if k > maxTCoPathLength {
			return URLMatch{}, false
		}
		n += 1 + k
	}
	if q, ok := query(s[n:]); ok {
		n += q
		if f, ok := fragment(s[n:]); ok {
			n += f
		}
	}
	m.Len = n
	return m, true
}

func parseNormalURL(s string) (URLMatch, bool) {
	n := protocol(s)
	if n == 0 {
		return URLMatch{}, false
	}
	if u, ok := userinfo(s[n:]); ok {
		n += u
	}
	h, ok := host(s[n:])
	if !ok {
		return URLMatch{}, false
	}
	m := URLMatch{HostStart: n, HostEnd: n + h}
	n += h
	n += optionalTail(s[n:])
	m.Len = n
	return m, true
}

// optionalTail matches the optional port, path, query and fragment that
// follow a host.
func optionalTail(s string) int {
	n := 0
	if p, ok := port(s); ok {
		n += p
	}
	if p, ok := path(s[n:]); ok {
		n += p
	}
	if q, ok := query(s[n:]); ok {
		n += q
	}
	if f, ok := fragment(s[n:]); ok {
		n += f
	}
	return n
}

func isUserinfoChar(r rune) bool {
	return isASCIIAlnum(r) || strings.ContainsRune("-._~:!$&'()*+,;=", r) || isCyrillic(r)
}

// userinfo matches "user:pass@", allowing percent-encoded octets.
func userinfo(s string) (int, bool) {
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case r == '@':
			return i + 1, true
		case r == '%':
			if i+2 >= len(s) || !isHexDigit(rune(s[i+1])) || !isHexDigit(rune(s[i+2])) {
				return 0, false
			}
			i += 3
			continue
		case !isUserinfoChar(r):
			return 0, false
		}
		i += size
	}
	return 0, false
}

func host(s string) (int, bool) {
	if isTCoHost(s) {
		return 0, false
	}
	if n, ok := ipLiteral(s); ok {
		return n, true
	}
	if n, ok := ipv4(s); ok {
		return n, true
	}
	return domain(s)
}

func ipLiteral(s string) (int, bool) {
	if len(s) == 0 || s[0] != '[' {
		return 0, false
	}
	n := 1
	for n < len(s) && (isHexDigit(rune(s[n])) || s[n] == ':' || s[n] == '.') {
		n++
	}
	if n == 1 || n >= len(s) || s[n] != ']' {
		return 0, false
	}
	return n + 1, true
}

func ipv4(s string) (int, bool) {
	n := 0
	for i := 0; i < 4; i++ {
		if i > 0 {
			if n >= len(s) || s[n] != '.' {
				return 0, false
			}
			n++
		}
		k := decOctet(s[n:])
		if k == 0 {
			return 0, false
		}
		n += k
	}
	return n, true
}

// decOctet matches 0-255 the way an ordered alternation would: the first
// alternative that matches wins, without considering what follows.
func decOctet(s string) int {
	digit := func(i int, lo, hi byte) bool { return i < len(s) && s[i] >= lo && s[i] <= hi }
	switch {
	case strings.HasPrefix(s, "25") && digit(2, '0', '5'):
		return 3
	case digit(0, '2', '2') && digit(1, '0', '4') && digit(2, '0', '9'):
		return 3
	case digit(0, '1', '1') && digit(1, '0', '9') && digit(2, '0', '9'):
		return 3
	case digit(0, '1', '9') && digit(1, '0', '9'):
		return 2
	case digit(0, '0', '9'):
		return 1
	}
	return 0
}

func port(s string) (int, bool) {
	if len(s) < 2 || s[0] != ':' || s[1] < '1' || s[1] > '9' {
		return 0, false
	}
	n := 2
	for n < len(s) && isASCIIDigit(rune(s[n])) {
		n++
	}
	return n, true
}

// isDomainChar accepts anything that is not a space, ASCII punctuation or
// an invalid character, so CJK, Cyrillic and other scripts are allowed.
func isDomainChar(r rune) bool {
	return r != utf8.RuneError && !IsSpace(r) && !IsPunctuation(r) && !IsInvalidChar(r)
}

func isUWPDomainChar(r rune) bool { return isASCIIAlnum(r) || IsLatinAccent(r) }

func punycodeSegment(s string) int {
	if len(s) < 5 || !strings.EqualFold(s[:4], "xn--") {
		return 0
	}
	n := 4
	for n < len(s) && (isASCIIAlnum(rune(s[n])) || s[n] == '-') {
		n++
	}
	if n == 4 {
		return 0
	}
	return n
}

// labelRun matches one or more characters accepted by ok, allowing a single
// '-' or '_' between two accepted characters.
func labelRun(s string, ok func(rune) bool) int {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || !ok(r) {
		return 0
	}
	end := size
	for i := size; i < len(s); {
		r, size = utf8.DecodeRuneInString(s[i:])
		switch {
		case r == '-' || r == '_':
			next, nsize := utf8.DecodeRuneInString(s[i+size:])
			if nsize == 0 || !ok(next) {
				return end
			}
			i += size + nsize
		case ok(r):
			i += size
		default:
			return end
		}
		end = i
	}
	return end
}

func domainSegment(s string) int {
	if n := punycodeSegment(s); n > 0 {
		return n
	}
	return labelRun(s, isDomainChar)
}

// domain matches dot-separated labels. A dot belongs to the domain only when
// a label follows it. The label right before the last one may not contain
// an underscore.
func domain(s string) (int, bool) {
	n, prev, cur := 0, "", ""
	for {
		seg := domainSegment(s[n:])
		if seg == 0 {
			return 0, false
		}
		prev, cur = cur, s[n:n+seg]
		n += seg
		if n >= len(s) || s[n] != '.' || domainSegment(s[n+1:]) == 0 {
			break
		}
		n++
	}
	if strings.ContainsRune(prev, '_') {
		return 0, false
	}
	return n, true
}

func isUnicodeTLDChar(r rune) bool {
	return r >= utf8.RuneSelf && r != utf8.RuneError && !IsSpace(r) && !IsInvalidChar(r)
}

func unicodeTLDSegment(s string) int {
	n := 0
	for n < len(s) {
		r, size := utf8.DecodeRuneInString(s[n:])
		if !isUnicodeTLDChar(r) {
			break
		}
		n += size
	}
	return n
}

func isInvalidTLDSuffix(r rune) bool { return isASCIIAlnum(r) || r == '@' || r == 0xFF20 }

// uwpDomain matches the domain of a URL without protocol. The final label
// may be a run of non-ASCII characters so that Unicode TLDs are found.
func uwpDomain(s string) (int, bool) {
	n := 0
	for {
		seg := labelRun(s[n:], isUWPDomainChar)
		if seg == 0 {
			seg = unicodeTLDSegment(s[n:])
			if seg == 0 {
				return 0, false
			}
			return uwpDomainEnd(s, n+seg)
		}
		n += seg
		if n < len(s) && s[n] == '.' {
			next := s[n+1:]
			if labelRun(next, isUWPDomainChar) > 0 || unicodeTLDSegment(next) > 0 {
				n++
				continue
			}
		}
		return uwpDomainEnd(s, n)
	}
}

func uwpDomainEnd(s string, n int) (int, bool) {
	r, size := utf8.DecodeRuneInString(s[n:])
	if size > 0 && isInvalidTLDSuffix(r) {
		return 0, false
	}
	if !strings.Contains(s[:n], ".") {
		return 0, false
	}
	return n, true
}

func isCyrillicOrAccent(r rune) bool { return isCyrillic(r) || IsLatinAccent(r) }

func isURLPathEnd(r rune) bool {
	return isASCIIAlnum(r) || strings.ContainsRune("=_-+", r) || isCyrillicOrAccent(r)
}

func isPathPunctuation(r rune) bool { return strings.ContainsRune("!*';:,.$%[]~|&@–", r) }

func isPathChar(r rune) bool {
	return r != '(' && r != ')' && (isURLPathEnd(r) || isPathPunctuation(r) || r == '/')
}

// path matches a '/'-prefixed path. Parentheses must balance; trailing
// punctuation is not part of the path.
func path(s string) (int, bool) {
	if len(s) == 0 || s[0] != '/' {
		return 0, false
	}
	end, depth := 1, 0
scan:
	for i := 1; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case r == '(':
			depth++
		case r == ')':
			if depth == 0 {
				break scan
			}
			depth--
		case !isPathChar(r):
			break scan
		}
		i += size
		end = i
	}
	if depth > 0 {
		end = lastBalanced(s, end)
	}
	trimmed := strings.TrimRightFunc(s[:end], isPathPunctuation)
	return len(trimmed), true
}

// lastBalanced returns the end of the longest prefix of s[:limit] that
// leaves no parenthesis open.
func lastBalanced(s string, limit int) int {
	last, depth := 1, 0
	for i := 1; i < limit; {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		}
		i += size
		if depth == 0 && (isPathChar(r) || r == ')') {
			last = i
		}
	}
	return last
}

func isQueryEndChar(r rune) bool { return isASCIIAlnum(r) || strings.ContainsRune("-_&=/+", r) }

func isQueryPunctuation(r rune) bool { return strings.ContainsRune("!?*'();:$%[].~|@,", r) }

// query matches '?' and a run of query characters. Punctuation only counts
// when an end character follows it. "?#" matches just the '?'.
func query(s string) (int, bool) {
	if len(s) == 0 || s[0] != '?' {
		return 0, false
	}
	if len(s) > 1 && s[1] == '#' {
		return 1, true
	}
	last := 0
	for i := 1; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if !isQueryEndChar(r) && !isQueryPunctuation(r) {
			break
		}
		i += size
		if isQueryEndChar(r) {
			last = i
		}
	}
	if last == 0 {
		return 0, false
	}
	return last, true
}

func fragment(s string) (int, bool) {
	if len(s) == 0 || s[0] != '#' {
		return 0, false
	}
	n := 1
	for n < len(s) {
		r, size := utf8.DecodeRuneInString(s[n:])
		if !isQueryEndChar(r) && r != '#' && !isQueryPunctuation(r) {
			break
		}
		n += size
	}
	return n, true
}
