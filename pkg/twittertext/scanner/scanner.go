// Package scanner finds entity candidates in message text in a single
// left-to-right pass.
//
// The scanner knows nothing about TLDs or UTF-16. It reports byte spans for
// URLs, mentions, lists, federated mentions, hashtags, cashtags, emoji and
// invalid characters; callers validate URL hosts and translate offsets.
package scanner

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Mode selects which mention grammar is tried at '@'.
type Mode int

const (
	// ModeStandard recognises usernames and lists.
	ModeStandard Mode = iota
	// ModeFederated also recognises @user@domain, before lists and usernames.
	ModeFederated
)

// Backend scans text into ordered, non-overlapping spans. URL spans that
// are not Validated still need their host resolved by the caller.
type Backend interface {
	Scan(text string, mode Mode) []Span
}

// Scanner is the hand-written Backend. It visits every position once and
// leaves URL hosts to the caller.
type Scanner struct{}

// Scan implements Backend.
func (Scanner) Scan(text string, mode Mode) []Span { return Scan(text, mode) }

// Default is the Backend used when none is configured.
var Default Backend = Scanner{}

// Scan returns every span found in text, in document order.
func Scan(text string, mode Mode) []Span {
	return scanRange(text, 0, len(text), mode, nil, make([]Span, 0, 8))
}

// resolver finishes a URL span while scanning. It returns the span to keep,
// or false to drop it; the scan resumes after the original span either way.
type resolver func(text string, sp Span) (Span, bool)

// scanRange scans the positions in [from, to) and appends what it finds to
// spans. A span that starts before to may end after it.
func scanRange(text string, from, to int, mode Mode, resolve resolver, spans []Span) []Span {
	emit := func(sp Span) {
		if resolve != nil && sp.Kind.IsURL() {
			var ok bool
			if sp, ok = resolve(text, sp); !ok {
				return
			}
		}
		spans = append(spans, sp)
	}
	c := newCursor(text, from)
	for pos := from; pos < to; {
		b := text[pos]
		if b < utf8.RuneSelf {
			if fastSkip[b] {
				pos++
				continue
			}
			if sp, ok := entityAt(text, pos, mode, c); ok {
				emit(sp)
				pos = sp.End
				continue
			}
			switch b {
			case '$':
				pos += 1 + c.skipInvalidCashtagURL(text, pos+1)
			case '@':
				pos += 1 + c.skipEmailDomain(text, pos+1)
			default:
				pos++
			}
			continue
		}

		r, size := utf8.DecodeRuneInString(text[pos:])
		if sp, ok := entityAt(text, pos, mode, c); ok {
			emit(sp)
			pos = sp.End
			continue
		}
		switch {
		case IsInvalidChar(r):
			emit(Span{Kind: KindInvalidChar, Start: pos, End: pos + size})
			pos += size
		case IsEmojiStart(r):
			if n, ok := MatchEmoji(text[pos:]); ok && IsValidEmoji(text[pos:pos+n]) {
				emit(Span{Kind: KindEmoji, Start: pos, End: pos + n})
				pos += n
				continue
			}
			pos += size
		case r == 0xFF20:
			pos += size + c.skipEmailDomain(text, pos+size)
		default:
			pos += size
		}
	}
	return spans
}

func entityAt(text string, pos int, mode Mode, c *cursor) (Span, bool) {
	first, size := utf8.DecodeRuneInString(text[pos:])
	prev, hasPrev := rune(0), pos > 0
	if hasPrev {
		prev, _ = utf8.DecodeLastRuneInString(text[:pos])
	}

	switch {
	case first == '@' || first == 0xFF20:
		return mentionAt(text, pos, mode)

	case first == '#' || first == 0xFF03:
		if hasPrev && !ValidHashtagPredecessor(prev) {
			return Span{}, false
		}
		if hasURLProtocol(text[pos+size:]) {
			return Span{}, false
		}
		if n, ok := ParseHashtag(text[pos:]); ok {
			return Span{Kind: KindHashtag, Start: pos, End: pos + n}, true
		}

	case first == '$':
		if hasPrev && !IsSpace(prev) {
			return Span{}, false
		}
		if n, ok := ParseCashtag(text[pos:]); ok {
			return Span{Kind: KindCashtag, Start: pos, End: pos + n}, true
		}

	case first == 'h' || first == 'H':
		if hasPrev && isEntitySigil(prev) {
			return Span{}, false
		}
		if m, ok := ParseURL(text[pos:]); ok {
			return urlSpan(KindURL, pos, m), true
		}
		return uwpAt(text, pos, c)

	case isASCIIAlnum(first) || IsLatinAccent(first):
		if hasPrev && isEntitySigil(prev) {
			return Span{}, false
		}
		return uwpAt(text, pos, c)
	}
	return Span{}, false
}

func isEntitySigil(r rune) bool {
	return r == '@' || r == '#' || r == '$' || r == 0xFF20 || r == 0xFF03
}

func hasURLProtocol(s string) bool {
	for _, p := range []string{"http://", "https://", "HTTP://", "HTTPS://"} {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func urlSpan(kind Kind, pos int, m URLMatch) Span {
	return Span{
		Kind:      kind,
		Start:     pos,
		End:       pos + m.Len,
		HostStart: pos + m.HostStart,
		HostEnd:   pos + m.HostEnd,
		TCo:       m.TCo,
	}
}

func uwpAt(text string, pos int, c *cursor) (Span, bool) {
	if c.insideProtocolURL(text, pos) || !c.dotAhead(text, pos) {
		return Span{}, false
	}
	m, ok := matchURLWithoutProtocol(text[pos:])
	if !ok {
		return Span{}, false
	}
	if r, _ := utf8.DecodeRuneInString(text[pos+m.Len:]); r == '@' || r == 0xFF20 {
		return Span{}, false
	}
	return urlSpan(KindURLWithoutProtocol, pos, m), true
}

func invalidMentionPredecessor(r rune) bool {
	if isASCIIAlnum(r) {
		return true
	}
	switch r {
	case '_', '@', 0xFF20, '!', '#', '$', '%', '&', '*', '=', '/':
		return true
	}
	return false
}

func mentionAt(text string, pos int, mode Mode) (Span, bool) {
	if pos > 0 {
		prev, _ := utf8.DecodeLastRuneInString(text[:pos])
		if invalidMentionPredecessor(prev) && !isRetweetPrefix(text[:pos]) {
			return Span{}, false
		}
	}
	var (
		m  Mention
		ok bool
	)
	if mode == ModeFederated {
		m, ok = ParseAnyMention(text[pos:])
	} else {
		m, ok = ParseMentionOrList(text[pos:])
	}
	if !ok || invalidMentionSuccessor(text[pos+m.Len:]) {
		return Span{}, false
	}
	sp := Span{Kind: KindUsername, Start: pos, End: pos + m.Len}
	switch {
	case m.Federated:
		sp.Kind = KindFederatedMention
	case m.IsList():
		sp.Kind = KindList
		sp.SlugStart = pos + m.SlugStart
	}
	return sp, true
}

func invalidMentionSuccessor(rest string) bool {
	r, size := utf8.DecodeRuneInString(rest)
	if size == 0 {
		return false
	}
	return r == '@' || r == 0xFF20 || r == '-' || IsLatinAccent(r) || strings.HasPrefix(rest, "://")
}

// isRetweetPrefix reports whether before ends in "RT" or "RT:" (any case)
// that stands at the start of the text or after whitespace.
func isRetweetPrefix(before string) bool {
	for _, suffix := range []int{3, 2} {
		if len(before) < suffix {
			continue
		}
		tail := before[len(before)-suffix:]
		if suffix == 3 && tail[2] != ':' {
			continue
		}
		if !strings.EqualFold(tail[:2], "RT") {
			continue
		}
		head := before[:len(before)-suffix]
		if head == "" {
			return true
		}
		if r, _ := utf8.DecodeLastRuneInString(head); unicode.IsSpace(r) {
			return true
		}
	}
	return false
}
