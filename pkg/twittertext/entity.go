package twittertext

import "fmt"

// EntityType is the kind of an extracted entity. The numbering is part of
// the interchange format.
type EntityType int

const (
	URL EntityType = iota
	Hashtag
	Mention
	Cashtag
	FederatedMention
)

var entityTypeNames = [...]string{
	URL:              "url",
	Hashtag:          "hashtag",
	Mention:          "mention",
	Cashtag:          "cashtag",
	FederatedMention: "federated_mention",
}

func (t EntityType) String() string {
	if t < 0 || int(t) >= len(entityTypeNames) {
		return fmt.Sprintf("EntityType(%d)", int(t))
	}
	return entityTypeNames[t]
}

// MarshalText encodes the type by name.
func (t EntityType) MarshalText() ([]byte, error) {
	if t < 0 || int(t) >= len(entityTypeNames) {
		return nil, fmt.Errorf("unknown entity type %d", int(t))
	}
	return []byte(entityTypeNames[t]), nil
}

// UnmarshalText decodes a type name produced by MarshalText.
func (t *EntityType) UnmarshalText(b []byte) error {
	for i, name := range entityTypeNames {
		if name == string(b) {
			*t = EntityType(i)
			return nil
		}
	}
	return fmt.Errorf("unknown entity type %q", b)
}

// Entity is an extracted URL, hashtag, mention, list, cashtag or federated
// mention. Start and End are UTF-16 code-unit offsets into the text, End
// exclusive.
//
// Value omits the leading sigil for hashtags, cashtags and mentions. For a
// list, Value is the owner's screen name and ListSlug is "/slug". URLs and
// federated mentions keep their full text.
type Entity struct {
	Type        EntityType `json:"type"`
	Value       string     `json:"value"`
	Start       int        `json:"start"`
	End         int        `json:"end"`
	ListSlug    string     `json:"list_slug,omitempty"`
	DisplayURL  string     `json:"display_url,omitempty"`
	ExpandedURL string     `json:"expanded_url,omitempty"`
}

// IsList reports whether the entity is a @user/list mention.
func (e Entity) IsList() bool { return e.Type == Mention && e.ListSlug != "" }

// Range is an inclusive range of offsets.
type Range struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
}

// EmptyRange is the range reported for empty input.
var EmptyRange = Range{Start: 0, End: -1}

// Contains reports whether i lies within the range.
func (r Range) Contains(i int) bool { return i >= r.Start && i <= r.End }

// WeightedRange assigns a weight to a range of code points. It encodes as
// {"range":{"start":0,"end":4351},"weight":100}; the flat form
// {"start":0,"end":4351,"weight":100} is also accepted when decoding.
type WeightedRange struct {
	Range  Range `json:"range" yaml:"range"`
	Weight int   `json:"weight" yaml:"weight"`
}

// Contains reports whether the code point r falls in the range.
func (w WeightedRange) Contains(r rune) bool { return w.Range.Contains(int(r)) }

// ParseResults is the length verdict for a text.
type ParseResults struct {
	WeightedLength   int   `json:"weighted_length"`
	Permillage       int   `json:"permillage"`
	IsValid          bool  `json:"is_valid"`
	DisplayTextRange Range `json:"display_text_range"`
	ValidTextRange   Range `json:"valid_text_range"`
}

// EmptyParseResults returns the verdict for empty input.
func EmptyParseResults() ParseResults {
	return ParseResults{DisplayTextRange: EmptyRange, ValidTextRange: EmptyRange}
}
