package scanner

import (
	"slices"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/coregx/ahocorasick"

	"twittertext/pkg/twittertext/hostname"
	"twittertext/pkg/twittertext/tld"
)

// Permissive is a Backend that splits text into words first and runs the
// grammar only over words that can hold an entity: those with a sigil, a
// '.', a ':' or a non-ASCII character. Hosts are matched permissively and
// left to the caller's TLD oracle.
type Permissive struct{}

// Scan implements Backend.
func (Permissive) Scan(text string, mode Mode) []Span {
	spans := make([]Span, 0, 8)
	end := 0
	for start := 0; start < len(text); {
		r, size := utf8.DecodeRuneInString(text[start:])
		if IsSpace(r) {
			start += size
			continue
		}
		stop := len(text)
		if i := strings.IndexFunc(text[start:], IsSpace); i >= 0 {
			stop = start + i
		}
		if stop > end && mayHoldEntity(text[start:stop]) {
			spans = scanRange(text, max(start, end), stop, mode, nil, spans)
			if n := len(spans); n > 0 {
				end = max(end, spans[n-1].End)
			}
		}
		start = stop
	}
	return spans
}

// mayHoldEntity reports whether any grammar can match inside word. Plain
// ASCII words without a sigil, '.' or ':' never yield a span.
func mayHoldEntity(word string) bool {
	for i := 0; i < len(word); i++ {
		switch b := word[i]; {
		case b >= utf8.RuneSelf, b == '@', b == '#', b == '$', b == '.', b == ':':
			return true
		}
	}
	return false
}

// FullTLD is a Backend whose URL rules resolve the host's TLD while
// matching, against an automaton compiled from the embedded TLD table. Its
// URL spans come back Validated and already trimmed; a caller's TLD oracle
// is not consulted.
type FullTLD struct{}

// Scan implements Backend.
func (FullTLD) Scan(text string, mode Mode) []Span {
	hosts := hostname.NewValidator(tldMatcher())
	resolve := func(text string, sp Span) (Span, bool) {
		trim, ok := hosts.Validate(sp.Candidate(text))
		if !ok {
			return Span{}, false
		}
		sp.End -= trim
		sp.Validated = true
		return sp, true
	}
	return scanRange(text, 0, len(text), mode, resolve, make([]Span, 0, 8))
}

// tldMatcher compiles every known TLD into one automaton. A label is a TLD
// when ".label." is matched from its first byte to its last; the label has
// no dots, so no shorter pattern can cover it.
var tldMatcher = sync.OnceValue(func() hostname.Oracle {
	names := tld.All()
	patterns := make([]string, len(names))
	for i, name := range names {
		patterns[i] = "." + name + "."
	}
	ac, err := ahocorasick.NewBuilder().
		AddStrings(patterns).
		SetMatchKind(ahocorasick.LeftmostLongest).
		Build()
	if err != nil {
		return tld.IsValid
	}
	return func(label string) bool {
		hay := []byte("." + label + ".")
		for _, m := range ac.FindAllOverlapping(hay) {
			if m.Start == 0 && m.End == len(hay) {
				return true
			}
		}
		return false
	}
})

// Candidate returns the host check input for a URL span of text.
func (sp Span) Candidate(text string) hostname.Candidate {
	kind := hostname.KindProtocol
	switch {
	case sp.TCo:
		kind = hostname.KindTCo
	case sp.Kind == KindURLWithoutProtocol:
		kind = hostname.KindWithoutProtocol
	}
	return hostname.Candidate{
		URL:       text[sp.Start:sp.End],
		HostStart: sp.HostStart - sp.Start,
		HostEnd:   sp.HostEnd - sp.Start,
		Kind:      kind,
	}
}

var backends = map[string]Backend{
	"scanner":    Scanner{},
	"permissive": Permissive{},
	"full_tld":   FullTLD{},
}

// BackendByName returns a shipped backend: "scanner", "permissive" or
// "full_tld".
func BackendByName(name string) (Backend, bool) {
	b, ok := backends[strings.ToLower(name)]
	return b, ok
}

// BackendNames lists the shipped backends, sorted.
func BackendNames() []string {
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
