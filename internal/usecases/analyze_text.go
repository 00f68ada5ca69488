package usecases

import (
	"context"
	"fmt"

	"twittertext/internal/domain"
	"twittertext/pkg/log"
	"twittertext/pkg/twittertext"
)

// AnalyzeTextUseCase weighs a text against a named configuration and
// extracts its entities, consulting the cache first.
type AnalyzeTextUseCase struct {
	cache    AnalysisCache
	configs  ConfigSource
	maxBytes int
	opts     []twittertext.Option
	logger   *log.Logger
}

// NewAnalyzeTextUseCase builds the use case. opts configure every
// ValidatingExtractor it creates.
func NewAnalyzeTextUseCase(cache AnalysisCache, configs ConfigSource, maxBytes int, logger *log.Logger, opts ...twittertext.Option) *AnalyzeTextUseCase {
	return &AnalyzeTextUseCase{
		cache:    cache,
		configs:  configs,
		maxBytes: maxBytes,
		opts:     opts,
		logger:   logger.Named("analyze"),
	}
}

// Execute returns the analysis of req.Text. With ExtractURLs set, URLs are
// weighed at the configuration's transformed length and every entity is
// reported; otherwise only the length verdict is computed.
func (uc *AnalyzeTextUseCase) Execute(ctx context.Context, req domain.ParseRequest) (*domain.Analysis, error) {
	if err := checkText(req.Text, uc.maxBytes); err != nil {
		return nil, err
	}
	name, cfg, ok := uc.configs.Config(req.Config)
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownConfig, req.Config)
	}

	key := domain.AnalysisKey(name, cfg, req.ExtractURLs, req.Text)
	if analysis, found := uc.cache.Get(key); found {
		uc.logger.DebugCtx(ctx, "cache hit", "config", name)
		return analysis, nil
	}

	v := twittertext.NewValidatingExtractor(cfg, req.Text, uc.opts...)
	var res twittertext.ExtractResult
	if req.ExtractURLs {
		res = v.ExtractEntitiesWithIndices()
	} else {
		res = v.ExtractScan()
	}
	analysis := &domain.Analysis{
		Config:   name,
		Version:  cfg.Version,
		Text:     v.Text(),
		Results:  res.ParseResults,
		Entities: res.Entities,
	}
	if analysis.Entities == nil {
		analysis.Entities = []twittertext.Entity{}
	}
	uc.cache.Set(key, analysis)

	uc.logger.DebugCtx(ctx, "text analyzed",
		"config", name,
		"weighted_length", res.ParseResults.WeightedLength,
		"valid", res.ParseResults.IsValid,
		"entities", len(analysis.Entities))
	return analysis, nil
}
