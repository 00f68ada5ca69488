package usecases

import (
	"twittertext/internal/domain"
	"twittertext/pkg/twittertext"
)

// AnalysisCache stores analyses by domain.AnalysisKey.
type AnalysisCache interface {
	Get(key string) (*domain.Analysis, bool)
	Set(key string, analysis *domain.Analysis)
}

// ConfigSource resolves configuration names. It returns the resolved name,
// which differs from the argument for aliases such as "".
type ConfigSource interface {
	Config(name string) (string, *twittertext.Configuration, bool)
	Names() []string
}

func checkText(text string, maxBytes int) error {
	if text == "" {
		return domain.ErrEmptyText
	}
	if maxBytes > 0 && len(text) > maxBytes {
		return domain.ErrTextTooLong
	}
	return nil
}
