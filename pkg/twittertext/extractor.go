// Package twittertext extracts URLs, mentions, lists, hashtags, cashtags and
// federated mentions from short messages and computes their weighted length.
package twittertext

import (
	"strings"
	"unicode/utf8"

	"twittertext/pkg/twittertext/hostname"
	"twittertext/pkg/twittertext/scanner"
)

// rule selects which scanned spans become entities.
type rule func(k scanner.Kind) bool

func kinds(ks ...scanner.Kind) rule {
	return func(k scanner.Kind) bool {
		for _, want := range ks {
			if k == want {
				return true
			}
		}
		return false
	}
}

func noEntities(scanner.Kind) bool { return false }

// Option configures an Extractor or ValidatingExtractor.
type Option func(*options)

type options struct {
	backend            scanner.Backend
	hosts              *hostname.Validator
	urlWithoutProtocol bool
}

func newOptions(opts []Option) options {
	o := options{backend: scanner.Default, hosts: hostname.NewValidator(nil), urlWithoutProtocol: true}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithBackend replaces the scanner backend. See scanner.BackendByName for
// the shipped ones.
func WithBackend(b scanner.Backend) Option {
	return func(o *options) { o.backend = b }
}

// WithTLDOracle replaces the embedded TLD table. Backends that resolve
// hosts themselves, such as scanner.FullTLD, keep their own table.
func WithTLDOracle(isTLD hostname.Oracle) Option {
	return func(o *options) { o.hosts = hostname.NewValidator(isTLD) }
}

// WithURLWithoutProtocol sets whether bare domains are extracted as URLs.
func WithURLWithoutProtocol(enabled bool) Option {
	return func(o *options) { o.urlWithoutProtocol = enabled }
}

func (o *options) urlRule() rule {
	if o.urlWithoutProtocol {
		return kinds(scanner.KindURL, scanner.KindURLWithoutProtocol)
	}
	return kinds(scanner.KindURL)
}

func (o *options) entitiesRule(federated bool) rule {
	ks := []scanner.Kind{scanner.KindURL, scanner.KindHashtag, scanner.KindCashtag, scanner.KindList, scanner.KindUsername}
	if o.urlWithoutProtocol {
		ks = append(ks, scanner.KindURLWithoutProtocol)
	}
	if federated {
		ks = append(ks, scanner.KindFederatedMention)
	}
	return kinds(ks...)
}

var (
	hashtagRule          = kinds(scanner.KindHashtag)
	cashtagRule          = kinds(scanner.KindCashtag)
	usernameRule         = kinds(scanner.KindUsername)
	mentionsOrListsRule  = kinds(scanner.KindUsername, scanner.KindList)
	federatedMentionRule = kinds(scanner.KindUsername, scanner.KindFederatedMention)
)

// collect keeps the spans accepted by accept plus the emoji and invalid
// character spans needed for length accounting. URL spans the backend has
// not validated are checked against the TLD oracle and trimmed to their
// valid host.
func (o *options) collect(text string, spans []scanner.Span, accept rule) []scanner.Span {
	out := spans[:0]
	for _, sp := range spans {
		switch {
		case sp.Kind == scanner.KindEmoji || sp.Kind == scanner.KindInvalidChar:
		case !accept(sp.Kind):
			continue
		case sp.Kind.IsURL() && !sp.Validated:
			trim, ok := o.hosts.Validate(sp.Candidate(text))
			if !ok {
				continue
			}
			sp.End -= trim
		}
		out = append(out, sp)
	}
	return out
}

// entityFromSpan builds the entity for sp, whose UTF-16 offsets are start
// and end. Emoji and invalid character spans yield no entity.
func entityFromSpan(text string, sp scanner.Span, start, end int) (Entity, bool) {
	s := text[sp.Start:sp.End]
	e := Entity{Start: start, End: end}
	switch sp.Kind {
	case scanner.KindURL, scanner.KindURLWithoutProtocol:
		e.Type, e.Value = URL, s
	case scanner.KindHashtag:
		e.Type, e.Value = Hashtag, dropSigil(s)
	case scanner.KindCashtag:
		e.Type, e.Value = Cashtag, dropSigil(s)
	case scanner.KindUsername:
		e.Type, e.Value = Mention, dropSigil(s)
	case scanner.KindList:
		slash := sp.SlugStart - 1 - sp.Start
		e.Type, e.Value, e.ListSlug = Mention, dropSigil(s[:slash]), s[slash:]
	case scanner.KindFederatedMention:
		e.Type, e.Value = FederatedMention, s
	default:
		return Entity{}, false
	}
	return e, true
}

func dropSigil(s string) string {
	_, size := utf8.DecodeRuneInString(s)
	return s[size:]
}

// entities converts spans to entities, translating byte offsets to UTF-16.
func entities(text string, spans []scanner.Span) []Entity {
	var out []Entity
	pos, offset := 0, 0
	for _, sp := range spans {
		offset += utf16Length(text[pos:sp.Start])
		n := utf16Length(text[sp.Start:sp.End])
		if e, ok := entityFromSpan(text, sp, offset, offset+n); ok {
			out = append(out, e)
		}
		offset += n
		pos = sp.End
	}
	return out
}

// replyUsername finds a username at the start of text, after optional
// whitespace. It returns the byte span of the mention.
func replyUsername(text string) (scanner.Span, bool) {
	start := strings.IndexFunc(text, func(r rune) bool { return !scanner.IsSpace(r) })
	if start < 0 {
		return scanner.Span{}, false
	}
	n, ok := scanner.ParseUsername(text[start:])
	if !ok {
		return scanner.Span{}, false
	}
	rest := text[start+n:]
	if r, size := utf8.DecodeRuneInString(rest); size > 0 {
		if r == '@' || r == 0xFF20 || scanner.IsLatinAccent(r) || strings.HasPrefix(rest, "://") {
			return scanner.Span{}, false
		}
	}
	return scanner.Span{Kind: scanner.KindUsername, Start: start, End: start + n}, true
}

// Extractor extracts entities without computing length metrics. It is
// safe for concurrent use once configured.
type Extractor struct {
	opts options
}

// NewExtractor returns an Extractor using the hand-written scanner and the
// embedded TLD table unless overridden.
func NewExtractor(opts ...Option) *Extractor {
	return &Extractor{opts: newOptions(opts)}
}

// SetExtractURLWithoutProtocol sets whether bare domains are extracted.
func (e *Extractor) SetExtractURLWithoutProtocol(enabled bool) { e.opts.urlWithoutProtocol = enabled }

// ExtractURLWithoutProtocol reports whether bare domains are extracted.
func (e *Extractor) ExtractURLWithoutProtocol() bool { return e.opts.urlWithoutProtocol }

func (e *Extractor) extract(text string, mode scanner.Mode, accept rule) []Entity {
	if text == "" {
		return nil
	}
	spans := e.opts.collect(text, e.opts.backend.Scan(text, mode), accept)
	return entities(text, spans)
}

// usesDefaultScanner reports whether the sigil sub-scans give the same
// answer as the configured backend.
func (e *Extractor) usesDefaultScanner() bool {
	_, ok := e.opts.backend.(scanner.Scanner)
	return ok
}

// ExtractURLsWithIndices returns URLs, including bare domains unless that
// has been disabled.
func (e *Extractor) ExtractURLsWithIndices(text string) []Entity {
	return e.extract(text, scanner.ModeStandard, e.opts.urlRule())
}

func (e *Extractor) ExtractHashtagsWithIndices(text string) []Entity {
	return e.extract(text, scanner.ModeStandard, hashtagRule)
}

func (e *Extractor) ExtractCashtagsWithIndices(text string) []Entity {
	if text == "" {
		return nil
	}
	if e.usesDefaultScanner() {
		return entities(text, scanner.ScanCashtags(text))
	}
	return e.extract(text, scanner.ModeStandard, cashtagRule)
}

// ExtractMentionedScreennamesWithIndices returns plain @mentions; lists are
// not included.
func (e *Extractor) ExtractMentionedScreennamesWithIndices(text string) []Entity {
	if text == "" {
		return nil
	}
	if e.usesDefaultScanner() {
		spans := e.opts.collect(text, scanner.ScanMentions(text, scanner.ModeStandard), usernameRule)
		return entities(text, spans)
	}
	return e.extract(text, scanner.ModeStandard, usernameRule)
}

func (e *Extractor) ExtractMentionsOrListsWithIndices(text string) []Entity {
	return e.extract(text, scanner.ModeStandard, mentionsOrListsRule)
}

// ExtractFederatedMentionsWithIndices returns plain mentions and
// @user@domain mentions.
func (e *Extractor) ExtractFederatedMentionsWithIndices(text string) []Entity {
	return e.extract(text, scanner.ModeFederated, federatedMentionRule)
}

// ExtractEntitiesWithIndices returns URLs, hashtags, cashtags, mentions and
// lists in document order. URLs follow the URL-without-protocol setting
// like ExtractURLsWithIndices: bare domains are included unless that has
// been disabled.
func (e *Extractor) ExtractEntitiesWithIndices(text string) []Entity {
	return e.extract(text, scanner.ModeStandard, e.opts.entitiesRule(false))
}

// ExtractEntitiesWithIndicesFederated is ExtractEntitiesWithIndices with
// federated mentions.
func (e *Extractor) ExtractEntitiesWithIndicesFederated(text string) []Entity {
	return e.extract(text, scanner.ModeFederated, e.opts.entitiesRule(true))
}

// ExtractScan scans text without returning entities.
func (e *Extractor) ExtractScan(text string) []Entity {
	return e.extract(text, scanner.ModeStandard, noEntities)
}

// ExtractReplyUsername returns the username that opens text, if any.
func (e *Extractor) ExtractReplyUsername(text string) (Entity, bool) {
	sp, ok := replyUsername(text)
	if !ok {
		return Entity{}, false
	}
	got := entities(text, []scanner.Span{sp})
	return got[0], true
}

func (e *Extractor) ExtractURLs(text string) []string {
	return values(e.ExtractURLsWithIndices(text))
}

func (e *Extractor) ExtractHashtags(text string) []string {
	return values(e.ExtractHashtagsWithIndices(text))
}

func (e *Extractor) ExtractCashtags(text string) []string {
	return values(e.ExtractCashtagsWithIndices(text))
}

func (e *Extractor) ExtractMentionedScreennames(text string) []string {
	return values(e.ExtractMentionedScreennamesWithIndices(text))
}

// ExtractFederatedMentions returns plain mentions without the '@' and
// federated mentions in full.
func (e *Extractor) ExtractFederatedMentions(text string) []string {
	return values(e.ExtractFederatedMentionsWithIndices(text))
}

func values(es []Entity) []string {
	out := make([]string, len(es))
	for i, e := range es {
		out[i] = e.Value
	}
	return out
}
