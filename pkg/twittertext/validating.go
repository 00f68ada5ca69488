package twittertext

import (
	"golang.org/x/text/unicode/norm"

	"twittertext/pkg/twittertext/scanner"
)

// ExtractResult is the entities of a text together with its length verdict.
type ExtractResult struct {
	ParseResults ParseResults `json:"parse_results"`
	Entities     []Entity     `json:"entities"`
}

// MentionResult is the reply mention of a text, if any, and the length
// verdict.
type MentionResult struct {
	ParseResults ParseResults `json:"parse_results"`
	Mention      *Entity      `json:"mention,omitempty"`
}

// ValidatingExtractor extracts entities from one text and weighs it against
// a Configuration. The text is NFC-normalized at construction; offsets refer
// to the normalized text and the reported ranges to the original.
type ValidatingExtractor struct {
	opts             options
	config           *Configuration
	text             string
	originalLength   int
	normalizedLength int
}

// NewValidatingExtractor normalizes text to NFC and binds it to config.
func NewValidatingExtractor(config *Configuration, text string, opts ...Option) *ValidatingExtractor {
	nfc := text
	if !norm.NFC.IsNormalString(text) {
		nfc = norm.NFC.String(text)
	}
	v := newValidating(config, nfc, opts)
	v.originalLength = utf16Length(text)
	return v
}

// NewValidatingExtractorNFC binds text, which the caller guarantees is
// already NFC, to config.
func NewValidatingExtractorNFC(config *Configuration, text string, opts ...Option) *ValidatingExtractor {
	return newValidating(config, text, opts)
}

func newValidating(config *Configuration, text string, opts []Option) *ValidatingExtractor {
	n := utf16Length(text)
	return &ValidatingExtractor{
		opts:             newOptions(opts),
		config:           config,
		text:             text,
		originalLength:   n,
		normalizedLength: n,
	}
}

// Text returns the normalized text being extracted from.
func (v *ValidatingExtractor) Text() string { return v.text }

// SetExtractURLWithoutProtocol sets whether bare domains are extracted.
func (v *ValidatingExtractor) SetExtractURLWithoutProtocol(enabled bool) {
	v.opts.urlWithoutProtocol = enabled
}

func (v *ValidatingExtractor) extract(mode scanner.Mode, accept rule) ExtractResult {
	if v.text == "" {
		return ExtractResult{ParseResults: EmptyParseResults()}
	}
	spans := v.opts.collect(v.text, v.opts.backend.Scan(v.text, mode), accept)
	return v.result(spans)
}

// result walks the text once, weighing every character and emitting the
// entities of the accepted spans.
func (v *ValidatingExtractor) result(spans []scanner.Span) ExtractResult {
	text := v.text
	m := NewTextMetrics(v.config, v.normalizedLength)
	var ents []Entity
	pos, offset := 0, 0
	for _, sp := range spans {
		var n int
		pos, n = m.scan(text, pos, sp.Start, trackText)
		offset += n
		switch {
		case sp.Kind == scanner.KindInvalidChar:
			m.Invalidate()
		case sp.Kind == scanner.KindEmoji && v.config.EmojiParsingEnabled:
			m.TrackEmojiSequence()
			pos, n = m.scan(text, pos, sp.End, trackEmoji)
			offset += n
		default:
			action := trackText
			if sp.Kind.IsURL() {
				action = trackURL
			}
			pos, n = m.scan(text, pos, sp.End, action)
			if e, ok := entityFromSpan(text, sp, offset, offset+n); ok {
				ents = append(ents, e)
			}
			offset += n
		}
	}
	m.scan(text, pos, len(text), trackText)
	return ExtractResult{ParseResults: m.Results(v.originalLength), Entities: ents}
}

func (v *ValidatingExtractor) ExtractURLsWithIndices() ExtractResult {
	return v.extract(scanner.ModeStandard, v.opts.urlRule())
}

func (v *ValidatingExtractor) ExtractHashtagsWithIndices() ExtractResult {
	return v.extract(scanner.ModeStandard, hashtagRule)
}

func (v *ValidatingExtractor) ExtractCashtagsWithIndices() ExtractResult {
	return v.extract(scanner.ModeStandard, cashtagRule)
}

func (v *ValidatingExtractor) ExtractMentionedScreennamesWithIndices() ExtractResult {
	return v.extract(scanner.ModeStandard, usernameRule)
}

func (v *ValidatingExtractor) ExtractMentionsOrListsWithIndices() ExtractResult {
	return v.extract(scanner.ModeStandard, mentionsOrListsRule)
}

func (v *ValidatingExtractor) ExtractFederatedMentionsWithIndices() ExtractResult {
	return v.extract(scanner.ModeFederated, federatedMentionRule)
}

func (v *ValidatingExtractor) ExtractEntitiesWithIndices() ExtractResult {
	return v.extract(scanner.ModeStandard, v.opts.entitiesRule(false))
}

func (v *ValidatingExtractor) ExtractEntitiesWithIndicesFederated() ExtractResult {
	return v.extract(scanner.ModeFederated, v.opts.entitiesRule(true))
}

// ExtractScan weighs the text without extracting entities. URLs are
// weighed as ordinary text.
func (v *ValidatingExtractor) ExtractScan() ExtractResult {
	return v.extract(scanner.ModeStandard, noEntities)
}

// ExtractReplyUsername returns the opening username with the verdict for
// the whole text. Without a reply mention the verdict is empty.
func (v *ValidatingExtractor) ExtractReplyUsername() MentionResult {
	sp, ok := replyUsername(v.text)
	if !ok {
		return MentionResult{ParseResults: EmptyParseResults()}
	}
	res := v.ExtractEntitiesWithIndices()
	mention := entities(v.text, []scanner.Span{sp})[0]
	return MentionResult{ParseResults: res.ParseResults, Mention: &mention}
}
