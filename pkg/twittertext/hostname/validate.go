// Package hostname decides whether the host of a URL candidate is real:
// it resolves the TLD boundary, trims labels that drift into another script,
// and checks that the host survives IDNA conversion.
package hostname

import (
	"strings"

	"twittertext/pkg/twittertext/tld"
)

// Kind distinguishes the three URL shapes the scanner emits.
type Kind int

const (
	// KindProtocol is an http:// or https:// URL.
	KindProtocol Kind = iota
	// KindWithoutProtocol is a bare domain such as "example.com/path".
	KindWithoutProtocol
	// KindTCo is a t.co short link; its TLD is never looked up.
	KindTCo
)

// Candidate is a URL span and the byte range of its host inside URL.
type Candidate struct {
	URL       string
	HostStart int
	HostEnd   int
	Kind      Kind
}

// Validator checks URL candidates against a TLD oracle.
type Validator struct {
	isTLD Oracle
}

// NewValidator returns a Validator backed by isTLD, or by the embedded TLD
// table when isTLD is nil.
func NewValidator(isTLD Oracle) *Validator {
	return &Validator{isTLD: isTLD}
}

// Validate returns how many bytes to trim from the end of c.URL so that it
// ends on a valid TLD, and false when the candidate is not a URL at all.
// Trimming the host also drops everything after it.
func (v *Validator) Validate(c Candidate) (int, bool) {
	domain := c.URL[c.HostStart:c.HostEnd]
	hasScheme := c.Kind != KindWithoutProtocol

	if c.Kind == KindTCo {
		if !ValidPunycode(c.URL, domain, true) {
			return 0, false
		}
		return 0, true
	}

	if c.Kind == KindWithoutProtocol {
		if validEnd := ValidDomainEnd(domain); validEnd < len(domain) {
			trimmed := domain[:validEnd]
			dot := strings.LastIndexByte(trimmed, '.')
			if dot < 0 || !v.oracle()(strings.ToLower(trimmed[dot+1:])) {
				return 0, false
			}
			return v.finish(c, domain, validEnd, hasScheme)
		}
	}

	end, ok := TLDBoundary(domain, c.Kind == KindWithoutProtocol, v.oracle())
	if !ok {
		return 0, false
	}
	return v.finish(c, domain, end, hasScheme)
}

func (v *Validator) oracle() Oracle {
	if v == nil || v.isTLD == nil {
		return tld.IsValid
	}
	return v.isTLD
}

func (v *Validator) finish(c Candidate, domain string, end int, hasScheme bool) (int, bool) {
	kept := domain[:end]
	if UnderscoreBeforeTLD(kept) {
		return 0, false
	}
	url := c.URL
	trim := 0
	if end < len(domain) {
		trim = len(domain) - end + len(c.URL) - c.HostEnd
		url = c.URL[:len(c.URL)-trim]
	}
	if !ValidPunycode(url, kept, hasScheme) {
		return 0, false
	}
	return trim, true
}
