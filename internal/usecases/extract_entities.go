package usecases

import (
	"context"
	"fmt"

	"twittertext/internal/domain"
	"twittertext/pkg/log"
	"twittertext/pkg/twittertext"
)

// ExtractEntitiesUseCase finds the entities of a text.
type ExtractEntitiesUseCase struct {
	maxBytes int
	opts     []twittertext.Option
	logger   *log.Logger
}

func NewExtractEntitiesUseCase(maxBytes int, logger *log.Logger, opts ...twittertext.Option) *ExtractEntitiesUseCase {
	return &ExtractEntitiesUseCase{maxBytes: maxBytes, opts: opts, logger: logger.Named("extract")}
}

// Execute returns the entities of req.Text in document order, restricted to
// req.Types when it is non-empty.
func (uc *ExtractEntitiesUseCase) Execute(ctx context.Context, req domain.ExtractRequest) ([]twittertext.Entity, error) {
	if err := checkText(req.Text, uc.maxBytes); err != nil {
		return nil, err
	}
	wanted, err := kindSet(req.Types)
	if err != nil {
		return nil, err
	}

	e := twittertext.NewExtractor(uc.opts...)
	if req.URLWithoutProtocol != nil {
		e.SetExtractURLWithoutProtocol(*req.URLWithoutProtocol)
	}
	var all []twittertext.Entity
	if req.Federated || wanted[domain.KindFederated] {
		all = e.ExtractEntitiesWithIndicesFederated(req.Text)
	} else {
		all = e.ExtractEntitiesWithIndices(req.Text)
	}

	out := make([]twittertext.Entity, 0, len(all))
	for _, ent := range all {
		if len(wanted) == 0 || wanted[domain.KindOf(ent)] {
			out = append(out, ent)
		}
	}
	uc.logger.DebugCtx(ctx, "entities extracted", "count", len(out), "federated", req.Federated)
	return out, nil
}

func kindSet(names []string) (map[domain.EntityKind]bool, error) {
	set := make(map[domain.EntityKind]bool, len(names))
	for _, name := range names {
		k, ok := domain.ParseKind(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", domain.ErrUnknownEntityType, name)
		}
		set[k] = true
	}
	return set, nil
}
