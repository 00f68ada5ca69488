// Package domain contains the request and result types of the text
// analysis service.
package domain

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"

	"twittertext/pkg/twittertext"
)

// DefaultConfigName is used when a request names no configuration.
const DefaultConfigName = "v3"

// EntityKind selects a family of entities in an extract request. Mentions
// and lists share an EntityType but are requested separately.
type EntityKind string

const (
	KindURL       EntityKind = "url"
	KindHashtag   EntityKind = "hashtag"
	KindMention   EntityKind = "mention"
	KindList      EntityKind = "list"
	KindCashtag   EntityKind = "cashtag"
	KindFederated EntityKind = "federated"
)

// AllKinds lists every EntityKind in a stable order.
var AllKinds = []EntityKind{KindURL, KindHashtag, KindMention, KindList, KindCashtag, KindFederated}

// ParseKind resolves a kind name case-insensitively.
func ParseKind(s string) (EntityKind, bool) {
	k := EntityKind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllKinds {
		if k == known {
			return k, true
		}
	}
	return "", false
}

// KindOf returns the kind an entity belongs to.
func KindOf(e twittertext.Entity) EntityKind {
	switch e.Type {
	case twittertext.URL:
		return KindURL
	case twittertext.Hashtag:
		return KindHashtag
	case twittertext.Cashtag:
		return KindCashtag
	case twittertext.FederatedMention:
		return KindFederated
	}
	if e.IsList() {
		return KindList
	}
	return KindMention
}

// ExtractRequest asks for the entities of a text.
type ExtractRequest struct {
	Text      string   `json:"text" form:"text"`
	Types     []string `json:"types,omitempty" form:"types"`
	Federated bool     `json:"federated,omitempty" form:"federated"`
	// URLWithoutProtocol defaults to true when nil.
	URLWithoutProtocol *bool `json:"url_without_protocol,omitempty"`
}

// ParseRequest asks for the weighted length of a text.
type ParseRequest struct {
	Text        string `json:"text" form:"text"`
	Config      string `json:"config,omitempty" form:"config"`
	ExtractURLs bool   `json:"extract_urls,omitempty" form:"extract_urls"`
}

// ValidateRequest asks whether a whole string is a valid item of Kind.
type ValidateRequest struct {
	Kind   string `json:"kind" form:"kind"`
	Text   string `json:"text" form:"text"`
	Config string `json:"config,omitempty" form:"config"`
}

// Analysis is the result of weighing a text and extracting its entities.
// Text is the NFC form of the input; entity offsets refer to it, while the
// ranges in Results refer to the input as sent.
type Analysis struct {
	Config   string                   `json:"config"`
	Version  int                      `json:"version"`
	Text     string                   `json:"text"`
	Results  twittertext.ParseResults `json:"results"`
	Entities []twittertext.Entity     `json:"entities"`
}

// Validation is the verdict of a ValidateRequest.
type Validation struct {
	Kind  string `json:"kind"`
	Text  string `json:"text"`
	Valid bool   `json:"valid"`
}

// AnalysisKey is the cache key of a parse: the configuration's name and a
// hash of its contents, the flags and a hash of the text. A preset reloaded
// with new weights under the same name gets new keys.
func AnalysisKey(name string, cfg *twittertext.Configuration, extractURLs bool, text string) string {
	var b strings.Builder
	b.WriteString(name)
	b.WriteByte('/')
	b.WriteString(strconv.FormatUint(ConfigFingerprint(cfg), 16))
	b.WriteByte('/')
	b.WriteString(strconv.FormatBool(extractURLs))
	b.WriteByte('/')
	b.WriteString(strconv.FormatUint(xxhash.Sum64String(text), 16))
	b.WriteByte('/')
	b.WriteString(strconv.Itoa(len(text)))
	return b.String()
}

// ConfigFingerprint hashes every field of cfg.
func ConfigFingerprint(cfg *twittertext.Configuration) uint64 {
	data, err := json.Marshal(cfg)
	if err != nil {
		return 0
	}
	return xxhash.Sum64(data)
}
