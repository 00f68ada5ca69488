package scanner

const (
	maxUsernameLength = 20
	maxListSlugLength = 25
)

// Mention describes a matched @mention. SlugStart is zero unless the match
// is a list, in which case it is the offset just past the '/'.
type Mention struct {
	Len       int
	SlugStart int
	Federated bool
}

// IsList reports whether the mention names a list.
func (m Mention) IsList() bool { return m.SlugStart > 0 }

func isUsernameByte(b byte) bool { return isASCIIAlnum(rune(b)) || b == '_' }

func isListSlugByte(b byte) bool { return isUsernameByte(b) || b == '-' }

func usernameLen(s string) int {
	n := 0
	for n < len(s) && n < maxUsernameLength && isUsernameByte(s[n]) {
		n++
	}
	return n
}

// ParseUsername matches '@' or '＠' followed by up to 20 characters of
// [A-Za-z0-9_].
func ParseUsername(s string) (int, bool) {
	p, ok := atPrefix(s)
	if !ok {
		return 0, false
	}
	n := usernameLen(s[p:])
	if n == 0 {
		return 0, false
	}
	return p + n, true
}

// ParseList matches a username followed by '/' and a slug of one to 25
// characters that starts with a letter. It returns the total length and the
// offset of the slug.
func ParseList(s string) (n, slugStart int, ok bool) {
	p, ok := atPrefix(s)
	if !ok {
		return 0, 0, false
	}
	u := usernameLen(s[p:])
	if u == 0 {
		return 0, 0, false
	}
	slash := p + u
	if slash >= len(s) || s[slash] != '/' {
		return 0, 0, false
	}
	slugStart = slash + 1
	if slugStart >= len(s) || !isASCIIAlpha(rune(s[slugStart])) {
		return 0, 0, false
	}
	end := slugStart + 1
	for end < len(s) && end-slugStart < maxListSlugLength && isListSlugByte(s[end]) {
		end++
	}
	return end, slugStart, true
}

// ParseMentionOrList tries a list first and then a plain username.
func ParseMentionOrList(s string) (Mention, bool) {
	if n, slug, ok := ParseList(s); ok {
		return Mention{Len: n, SlugStart: slug}, true
	}
	if n, ok := ParseUsername(s); ok {
		return Mention{Len: n}, true
	}
	return Mention{}, false
}

// ParseAnyMention tries a federated mention, then a list, then a username.
func ParseAnyMention(s string) (Mention, bool) {
	if n, ok := ParseFederatedMention(s); ok {
		return Mention{Len: n, Federated: true}, true
	}
	return ParseMentionOrList(s)
}

// ParseFederatedMention matches @user@domain where both parts are runs of
// [A-Za-z0-9_] joined by runs of '.' or '-'. The inner '@' must be ASCII.
func ParseFederatedMention(s string) (int, bool) {
	p, ok := atPrefix(s)
	if !ok {
		return 0, false
	}
	u := federatedSegment(s[p:])
	if u == 0 {
		return 0, false
	}
	at := p + u
	if at >= len(s) || s[at] != '@' {
		return 0, false
	}
	d := federatedSegment(s[at+1:])
	if d == 0 {
		return 0, false
	}
	return at + 1 + d, true
}

func isFederatedSeparator(b byte) bool { return b == '.' || b == '-' }

// federatedSegment returns the length of the longest prefix of s made of
// username characters where separator runs are always followed by a
// username character.
func federatedSegment(s string) int {
	if len(s) == 0 || !isUsernameByte(s[0]) {
		return 0
	}
	end := 1
	for i := 1; i < len(s); {
		switch {
		case isUsernameByte(s[i]):
			i++
			end = i
		case isFederatedSeparator(s[i]):
			j := i + 1
			for j < len(s) && isFederatedSeparator(s[j]) {
				j++
			}
			if j >= len(s) || !isUsernameByte(s[j]) {
				return end
			}
			i = j + 1
			end = i
		default:
			return end
		}
	}
	return end
}
