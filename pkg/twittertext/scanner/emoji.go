package scanner

import (
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/npillmayer/uax/emoji"
)

const (
	zwj             = 0x200D
	variationText   = 0xFE0E
	variationEmoji  = 0xFE0F
	combiningKeycap = 0x20E3
	cancelTag       = 0xE007F
)

// IsEmojiStart reports whether r can begin an emoji sequence.
func IsEmojiStart(r rune) bool {
	switch {
	case r == 0x00A9, r == 0x00AE:
		return true
	case r >= 0x203C && r <= 0x3299:
		return true
	case r >= 0x1F000 && r <= 0x1FAFF:
		return true
	}
	return isKeycapBase(r)
}

func isKeycapBase(r rune) bool { return r == '#' || r == '*' || isASCIIDigit(r) }

func isSkinTone(r rune) bool { return r >= 0x1F3FB && r <= 0x1F3FF }

func isRegionalIndicator(r rune) bool { return r >= 0x1F1E6 && r <= 0x1F1FF }

func isTag(r rune) bool { return r >= 0xE0000 && r <= 0xE007F }

func isEmojiModifier(r rune) bool {
	switch {
	case isSkinTone(r), isTag(r):
		return true
	case r == variationText, r == variationEmoji, r == combiningKeycap:
		return true
	}
	return r >= 0x1F1E0 && r <= 0x1F1FF
}

// MatchEmoji permissively matches an emoji sequence at the start of s: a
// keycap, or a start character followed by modifiers and ZWJ-joined starts.
// The match is not validated; see IsValidEmoji.
func MatchEmoji(s string) (int, bool) {
	first, n := utf8.DecodeRuneInString(s)
	if !IsEmojiStart(first) {
		return 0, false
	}
	if isKeycapBase(first) {
		r, size := utf8.DecodeRuneInString(s[n:])
		if r == variationEmoji {
			n += size
			r, size = utf8.DecodeRuneInString(s[n:])
		}
		if r != combiningKeycap {
			return 0, false
		}
		return n + size, true
	}
	for n < len(s) {
		r, size := utf8.DecodeRuneInString(s[n:])
		switch {
		case isEmojiModifier(r):
			n += size
		case r == zwj:
			next, nsize := utf8.DecodeRuneInString(s[n+size:])
			if !IsEmojiStart(next) {
				return n, true
			}
			n += size + nsize
		default:
			return n, true
		}
	}
	return n, true
}

var setupEmoji sync.Once

// IsValidEmoji reports whether seq is a recognised emoji: a pictograph with
// optional presentation selector, skin tone and tag sequence, a keycap, a
// flag made of two regional indicators, or a ZWJ chain of these.
func IsValidEmoji(seq string) bool {
	if seq == "" {
		return false
	}
	setupEmoji.Do(emoji.SetupEmojisClasses)
	if !strings.ContainsRune(seq, zwj) {
		seq = strings.TrimSuffix(seq, string(rune(variationEmoji)))
	}
	for _, part := range strings.Split(seq, string(rune(zwj))) {
		if !validEmojiElement(part) {
			return false
		}
	}
	return true
}

func validEmojiElement(s string) bool {
	rs := []rune(s)
	if len(rs) == 0 {
		return false
	}
	base := rs[0]
	switch {
	case isKeycapBase(base):
		rest := rs[1:]
		if len(rest) > 0 && rest[0] == variationEmoji {
			rest = rest[1:]
		}
		return len(rest) == 1 && rest[0] == combiningKeycap
	case isRegionalIndicator(base):
		return len(rs) == 2 && isRegionalIndicator(rs[1])
	case !unicode.Is(emoji.Extended_Pictographic, base):
		return false
	}
	rest := rs[1:]
	if len(rest) > 0 && (rest[0] == variationEmoji || rest[0] == variationText) {
		rest = rest[1:]
	}
	if len(rest) > 0 && isSkinTone(rest[0]) {
		rest = rest[1:]
	}
	if len(rest) == 0 {
		return true
	}
	// Subdivision flags: tag characters terminated by CANCEL TAG.
	for i, r := range rest {
		if !isTag(r) {
			return false
		}
		if r == cancelTag {
			return i == len(rest)-1 && i > 0
		}
	}
	return false
}
