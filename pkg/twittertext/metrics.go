package twittertext

import (
	"unicode/utf16"
	"unicode/utf8"
)

type trackAction int

const (
	trackText trackAction = iota
	trackEmoji
	trackURL
)

// TextMetrics accumulates the weighted length of a text as it is walked
// span by span. Offsets are in UTF-16 code units.
type TextMetrics struct {
	config           *Configuration
	valid            bool
	weighted         int
	offset           int
	validOffset      int
	normalizedLength int
	scaledMax        int
}

// NewTextMetrics returns metrics for a text whose NFC form is
// normalizedLength UTF-16 units long.
func NewTextMetrics(config *Configuration, normalizedLength int) *TextMetrics {
	return &TextMetrics{
		config:           config,
		valid:            true,
		normalizedLength: normalizedLength,
		scaledMax:        config.MaxWeightedTweetLength * config.Scale,
	}
}

// Invalidate marks the text as containing a forbidden character.
func (m *TextMetrics) Invalidate() { m.valid = false }

func (m *TextMetrics) addOffset(n int) {
	m.offset += n
	if m.valid && m.weighted <= m.scaledMax {
		m.validOffset += n
	}
}

// TrackText weighs r by the configured ranges.
func (m *TextMetrics) TrackText(r rune) {
	if m.offset >= m.normalizedLength {
		return
	}
	m.weighted += m.config.weight(r)
	m.addOffset(utf16Len(r))
}

// TrackEmoji advances over a code point of an emoji sequence whose weight
// has already been counted.
func (m *TextMetrics) TrackEmoji(r rune) { m.addOffset(utf16Len(r)) }

// TrackEmojiSequence counts one emoji sequence at the default weight.
func (m *TextMetrics) TrackEmojiSequence() { m.weighted += m.config.DefaultWeight }

// TrackURL counts a URL of utf16Length units at the transformed length.
func (m *TextMetrics) TrackURL(utf16Length int) {
	m.weighted += m.config.TransformedURLLength * m.config.Scale
	m.addOffset(utf16Length)
}

// scan consumes text[pos:limit] with the given action and returns the new
// position and the UTF-16 length consumed.
func (m *TextMetrics) scan(text string, pos, limit int, action trackAction) (int, int) {
	n := 0
	for pos < limit {
		r, size := utf8.DecodeRuneInString(text[pos:])
		pos += size
		n += utf16Len(r)
		switch action {
		case trackText:
			m.TrackText(r)
		case trackEmoji:
			m.TrackEmoji(r)
		}
	}
	if action == trackURL {
		m.TrackURL(n)
	}
	return pos, n
}

// Results reports the verdict. originalLength is the UTF-16 length of the
// text before normalization; ranges are expressed against it.
func (m *TextMetrics) Results(originalLength int) ParseResults {
	scale := max(m.config.Scale, 1)
	maxLength := max(m.config.MaxWeightedTweetLength, 1)
	diff := originalLength - m.normalizedLength
	scaled := m.weighted / scale
	return ParseResults{
		WeightedLength:   scaled,
		Permillage:       scaled * 1000 / maxLength,
		IsValid:          m.valid && scaled <= m.config.MaxWeightedTweetLength,
		DisplayTextRange: Range{Start: 0, End: m.offset + diff - 1},
		ValidTextRange:   Range{Start: 0, End: m.validOffset + diff - 1},
	}
}

func utf16Len(r rune) int {
	if n := utf16.RuneLen(r); n > 0 {
		return n
	}
	return 1
}

// utf16Length returns the UTF-16 length of s.
func utf16Length(s string) int {
	n := 0
	for _, r := range s {
		n += utf16Len(r)
	}
	return n
}
