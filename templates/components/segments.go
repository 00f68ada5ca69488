package components

import (
	"unicode/utf16"

	"twittertext/internal/domain"
	"twittertext/pkg/twittertext"
)

// Segment is a run of text rendered one way: inside a mark when Kind is set,
// struck through when Over is set.
type Segment struct {
	Text string
	Kind string
	Over bool
}

// Segments cuts text at entity boundaries and at validEnd. Offsets are UTF-16
// code units into text; entities out of order or out of range are dropped.
func Segments(text string, ents []twittertext.Entity, validEnd int) []Segment {
	units := utf16.Encode([]rune(text))
	validEnd = min(max(validEnd, 0), len(units))
	var segs []Segment
	plain := func(from, to int) {
		if from >= to {
			return
		}
		if from < validEnd {
			segs = append(segs, Segment{Text: decode(units[from:min(to, validEnd)])})
		}
		if to > validEnd {
			segs = append(segs, Segment{Text: decode(units[max(from, validEnd):to]), Over: true})
		}
	}
	pos := 0
	for _, e := range ents {
		if e.Start < pos || e.End > len(units) {
			continue
		}
		plain(pos, e.Start)
		segs = append(segs, Segment{Text: decode(units[e.Start:e.End]), Kind: string(domain.KindOf(e))})
		pos = e.End
	}
	plain(pos, len(units))
	return segs
}

// ValidEnd converts the end of a's valid text range, which counts units of
// the text as sent, into an exclusive offset into a.Text.
func ValidEnd(sent string, a *domain.Analysis) int {
	shrink := utf16Len(sent) - utf16Len(a.Text)
	return max(a.Results.ValidTextRange.End+1-shrink, 0)
}

func decode(u []uint16) string { return string(utf16.Decode(u)) }

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}
