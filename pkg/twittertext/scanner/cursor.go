package scanner

import (
	"strings"
	"unicode/utf8"
)

// cursor remembers what a scan has already read around its position so the
// URL-without-protocol checks cost linear time over a long word. Positions
// passed to insideProtocolURL must not decrease.
type cursor struct {
	seen      int  // text[:seen] has been folded into wordStart and proto
	wordStart int  // just past the last space or URL delimiter before seen
	proto     bool // text[wordStart:seen] contains "://"

	ahead   int  // position stop was computed from, -1 if none
	stop    int  // first '.' or space at or after ahead, or len(text)
	stopDot bool // text[stop] is '.'
}

func isWordBreak(r rune) bool { return IsSpace(r) || isURLDelimiter(r) }

func newCursor(text string, from int) *cursor {
	c := &cursor{seen: from, ahead: -1}
	before := text[:from]
	if i := strings.LastIndexFunc(before, isWordBreak); i >= 0 {
		_, size := utf8.DecodeRuneInString(before[i:])
		c.wordStart = i + size
	}
	c.proto = strings.Contains(text[c.wordStart:from], "://")
	return c
}

// insideProtocolURL reports whether "://" occurs after the last space or URL
// delimiter before pos, which means a protocol URL failed to parse here.
func (c *cursor) insideProtocolURL(text string, pos int) bool {
	seg := text[c.seen:pos]
	if i := strings.LastIndexFunc(seg, isWordBreak); i >= 0 {
		_, size := utf8.DecodeRuneInString(seg[i:])
		c.wordStart = c.seen + i + size
		c.proto = strings.Contains(text[c.wordStart:pos], "://")
	} else if !c.proto {
		// "://" may straddle the previous position.
		c.proto = strings.Contains(text[max(c.wordStart, c.seen-2):pos], "://")
	}
	c.seen = pos
	return c.proto
}

// dotAhead reports whether a '.' comes before the next space at or after
// pos.
func (c *cursor) dotAhead(text string, pos int) bool {
	if c.ahead < 0 || pos < c.ahead || pos > c.stop {
		c.ahead = pos
		i := strings.IndexFunc(text[pos:], func(r rune) bool { return r == '.' || IsSpace(r) })
		if i < 0 {
			c.stop, c.stopDot = len(text), false
		} else {
			c.stop, c.stopDot = pos+i, text[pos+i] == '.'
		}
	}
	return c.stopDot
}

// skipEmailDomain returns the length of the domain at pos, right after an
// '@' that did not start a mention, so user@mail.com does not yield
// mail.com.
func (c *cursor) skipEmailDomain(text string, pos int) int {
	if !c.dotAhead(text, pos) {
		return 0
	}
	if m, ok := matchURLWithoutProtocol(text[pos:]); ok {
		return m.Len
	}
	return 0
}

// skipInvalidCashtagURL returns how much of a URL-looking tail after a
// failed '$' must be consumed so it is not extracted later.
func (c *cursor) skipInvalidCashtagURL(text string, pos int) int {
	if m, ok := ParseURL(text[pos:]); ok {
		return m.Len
	}
	return c.skipEmailDomain(text, pos)
}
