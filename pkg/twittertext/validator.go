package twittertext

import (
	"strings"
	"unicode/utf8"

	"twittertext/pkg/twittertext/scanner"
)

// MaxTweetLength is the maximum weighted length of a message.
const MaxTweetLength = 280

const defaultShortURLLength = 23

// Validator answers yes/no questions about whole strings.
type Validator struct {
	config              *Configuration
	extractor           *Extractor
	shortURLLength      int
	shortURLLengthHTTPS int
}

// NewValidator returns a Validator weighing with ConfigV1.
func NewValidator() *Validator { return NewValidatorWithConfig(ConfigV1()) }

// NewValidatorWithConfig returns a Validator weighing with config.
func NewValidatorWithConfig(config *Configuration) *Validator {
	return &Validator{
		config:              config,
		extractor:           NewExtractor(),
		shortURLLength:      defaultShortURLLength,
		shortURLLengthHTTPS: defaultShortURLLength,
	}
}

// IsValidTweet reports whether text is within the length limit and free of
// forbidden characters.
func (v *Validator) IsValidTweet(text string) bool {
	return Parse(text, v.config, false).IsValid
}

func hasAtPrefix(s string) bool { return strings.HasPrefix(s, "@") || strings.HasPrefix(s, "＠") }

// IsValidUsername reports whether s is exactly one @username.
func (v *Validator) IsValidUsername(s string) bool {
	if !hasAtPrefix(s) {
		return false
	}
	names := v.extractor.ExtractMentionedScreennames(s)
	return len(names) == 1 && utf8.RuneCountInString(names[0]) == utf8.RuneCountInString(s)-1
}

// IsValidList reports whether s is exactly one @user/list.
func (v *Validator) IsValidList(s string) bool {
	if !hasAtPrefix(s) {
		return false
	}
	lists := v.extractor.ExtractMentionsOrListsWithIndices(s)
	return len(lists) == 1 && lists[0].ListSlug != "" && lists[0].End == utf8.RuneCountInString(s)
}

// IsValidHashtag reports whether s is exactly one hashtag.
func (v *Validator) IsValidHashtag(s string) bool {
	if !strings.HasPrefix(s, "#") && !strings.HasPrefix(s, "＃") {
		return false
	}
	tags := v.extractor.ExtractHashtags(s)
	return len(tags) == 1 && utf8.RuneCountInString(tags[0]) == utf8.RuneCountInString(s)-1
}

// IsValidURL reports whether all of s parses as a URL with protocol. The TLD
// is not checked.
func (v *Validator) IsValidURL(s string) bool {
	m, ok := scanner.ParseURL(s)
	return ok && m.Len == len(s)
}

// IsValidURLWithoutProtocol reports whether all of s parses as a bare
// domain URL.
func (v *Validator) IsValidURLWithoutProtocol(s string) bool {
	m, ok := scanner.ParseURLWithoutProtocol(s)
	return ok && m.Len == len(s)
}

func (v *Validator) MaxTweetLength() int { return MaxTweetLength }

func (v *Validator) ShortURLLength() int { return v.shortURLLength }

func (v *Validator) SetShortURLLength(n int) { v.shortURLLength = n }

func (v *Validator) ShortURLLengthHTTPS() int { return v.shortURLLengthHTTPS }

func (v *Validator) SetShortURLLengthHTTPS(n int) { v.shortURLLengthHTTPS = n }
