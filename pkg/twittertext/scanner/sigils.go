package scanner

import (
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/coregx/ahocorasick"
)

var sigils = sync.OnceValues(func() (*ahocorasick.Automaton, error) {
	return ahocorasick.NewBuilder().
		AddStrings([]string{"@", "＠", "$"}).
		SetMatchKind(ahocorasick.LeftmostLongest).
		SetPrefilter(true).
		Build()
})

// sigilPositions returns the byte offsets of every '@', '＠' and '$' in
// text. ok is false if the automaton could not be built.
func sigilPositions(text string) (pos []int, ok bool) {
	ac, err := sigils()
	if err != nil {
		return nil, false
	}
	for _, m := range ac.FindAllOverlapping([]byte(text)) {
		pos = append(pos, m.Start)
	}
	return pos, true
}

// ScanMentions returns the username, list and (in federated mode)
// federated mention spans of text. It only visits sigil positions, and falls
// back to a full Scan when a candidate may sit inside a URL.
func ScanMentions(text string, mode Mode) []Span {
	positions, ok := sigilPositions(text)
	if !ok {
		return filterMentions(Scan(text, mode))
	}
	var (
		spans []Span
		end   int
		word  wordMarks
	)
	for _, pos := range positions {
		if pos < end || text[pos] == '$' {
			continue
		}
		if word.mayBeInsideURL(text, pos) {
			return filterMentions(Scan(text, mode))
		}
		if sp, ok := mentionAt(text, pos, mode); ok {
			spans = append(spans, sp)
			end = sp.End
		}
	}
	return spans
}

// ScanCashtags returns the cashtag spans of text. A cashtag always follows
// a space, and no other span contains one, so visiting each '$' gives the
// same answer as a full Scan.
func ScanCashtags(text string) []Span {
	positions, ok := sigilPositions(text)
	if !ok {
		return filterKind(Scan(text, ModeStandard), KindCashtag)
	}
	var spans []Span
	for _, pos := range positions {
		if text[pos] != '$' {
			continue
		}
		if pos > 0 {
			if prev, _ := utf8.DecodeLastRuneInString(text[:pos]); !IsSpace(prev) {
				continue
			}
		}
		if n, ok := ParseCashtag(text[pos:]); ok {
			spans = append(spans, Span{Kind: KindCashtag, Start: pos, End: pos + n})
		}
	}
	return spans
}

// wordMarks tracks whether the word around increasing positions contains
// a '.' or ':', the only way a URL or an email domain can reach a sigil.
type wordMarks struct {
	seen   int
	marked bool
}

func (w *wordMarks) mayBeInsideURL(text string, pos int) bool {
	seg := text[w.seen:pos]
	if i := strings.LastIndexFunc(seg, IsSpace); i >= 0 {
		_, size := utf8.DecodeRuneInString(seg[i:])
		w.marked = strings.ContainsAny(seg[i+size:], ".:")
	} else if !w.marked {
		w.marked = strings.ContainsAny(seg, ".:")
	}
	w.seen = pos
	return w.marked
}

func filterMentions(spans []Span) []Span {
	out := spans[:0]
	for _, sp := range spans {
		switch sp.Kind {
		case KindUsername, KindList, KindFederatedMention:
			out = append(out, sp)
		}
	}
	return out
}

func filterKind(spans []Span, kind Kind) []Span {
	out := spans[:0]
	for _, sp := range spans {
		if sp.Kind == kind {
			out = append(out, sp)
		}
	}
	return out
}
