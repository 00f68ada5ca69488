package twittertext

// Parse weighs text against config. When extractURLs is set, URLs count at
// the configured transformed length; otherwise they count as text.
func Parse(text string, config *Configuration, extractURLs bool, opts ...Option) ParseResults {
	v := NewValidatingExtractor(config, text, opts...)
	if extractURLs {
		return v.ExtractURLsWithIndices().ParseResults
	}
	return v.ExtractScan().ParseResults
}
