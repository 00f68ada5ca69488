package scanner

// Kind identifies the micro-grammar that produced a Span.
type Kind int

const (
	KindURL Kind = iota
	KindURLWithoutProtocol
	KindHashtag
	KindCashtag
	KindUsername
	KindList
	KindFederatedMention
	KindEmoji
	KindInvalidChar
)

var kindNames = [...]string{
	KindURL:                "url",
	KindURLWithoutProtocol: "url_without_protocol",
	KindHashtag:            "hashtag",
	KindCashtag:            "cashtag",
	KindUsername:           "username",
	KindList:               "list",
	KindFederatedMention:   "federated_mention",
	KindEmoji:              "emoji",
	KindInvalidChar:        "invalid_char",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// IsURL reports whether the span is a URL with or without protocol.
func (k Kind) IsURL() bool { return k == KindURL || k == KindURLWithoutProtocol }

// Span is a scanned region of the input. Offsets are byte offsets into the
// scanned text; Start is inclusive and End exclusive.
//
// HostStart and HostEnd are set for URL spans. SlugStart is set for list
// spans and points just past the '/'. Validated marks a URL span whose host
// the backend has already resolved.
type Span struct {
	Kind      Kind
	Start     int
	End       int
	HostStart int
	HostEnd   int
	SlugStart int
	TCo       bool
	Validated bool
}

// Text returns the slice of s covered by the span.
func (sp Span) Text(s string) string { return s[sp.Start:sp.End] }
