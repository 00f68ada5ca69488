package usecases

import (
	"context"
	"fmt"
	"strings"

	"twittertext/internal/domain"
	"twittertext/pkg/log"
	"twittertext/pkg/twittertext"
)

// ValidationKinds lists the kinds ValidateTextUseCase accepts.
var ValidationKinds = []string{"tweet", "username", "list", "hashtag", "url", "url_without_protocol"}

// ValidateTextUseCase answers whether a whole string is a valid tweet,
// username, list, hashtag or URL.
type ValidateTextUseCase struct {
	configs  ConfigSource
	maxBytes int
	logger   *log.Logger
}

func NewValidateTextUseCase(configs ConfigSource, maxBytes int, logger *log.Logger) *ValidateTextUseCase {
	return &ValidateTextUseCase{configs: configs, maxBytes: maxBytes, logger: logger.Named("validate")}
}

func (uc *ValidateTextUseCase) Execute(ctx context.Context, req domain.ValidateRequest) (*domain.Validation, error) {
	if err := checkText(req.Text, uc.maxBytes); err != nil {
		return nil, err
	}
	kind := strings.ToLower(strings.TrimSpace(req.Kind))

	var valid bool
	switch kind {
	case "tweet":
		_, cfg, ok := uc.configs.Config(req.Config)
		if !ok {
			return nil, fmt.Errorf("%w: %q", domain.ErrUnknownConfig, req.Config)
		}
		valid = twittertext.NewValidatorWithConfig(cfg).IsValidTweet(req.Text)
	case "username":
		valid = twittertext.NewValidator().IsValidUsername(req.Text)
	case "list":
		valid = twittertext.NewValidator().IsValidList(req.Text)
	case "hashtag":
		valid = twittertext.NewValidator().IsValidHashtag(req.Text)
	case "url":
		valid = twittertext.NewValidator().IsValidURL(req.Text)
	case "url_without_protocol":
		valid = twittertext.NewValidator().IsValidURLWithoutProtocol(req.Text)
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownValidation, req.Kind)
	}

	uc.logger.DebugCtx(ctx, "text validated", "kind", kind, "valid", valid)
	return &domain.Validation{Kind: kind, Text: req.Text, Valid: valid}, nil
}
