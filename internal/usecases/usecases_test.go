package usecases_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"twittertext/internal/domain"
	"twittertext/internal/usecases"
	"twittertext/pkg/log"
	"twittertext/pkg/twittertext"
)

// MockCache is a mock implementation of AnalysisCache.
type MockCache struct {
	items map[string]*domain.Analysis
	gets  int
	sets  int
}

func NewMockCache() *MockCache {
	return &MockCache{items: make(map[string]*domain.Analysis)}
}

func (m *MockCache) Get(key string) (*domain.Analysis, bool) {
	m.gets++
	a, ok := m.items[key]
	return a, ok
}

func (m *MockCache) Set(key string, a *domain.Analysis) {
	m.sets++
	m.items[key] = a
}

// MockConfigs is a mock implementation of ConfigSource.
type MockConfigs struct{}

func (MockConfigs) Config(name string) (string, *twittertext.Configuration, bool) {
	if name == "" {
		name = "v3"
	}
	cfg, ok := twittertext.ConfigByName(name)
	return name, cfg, ok
}

func (MockConfigs) Names() []string { return twittertext.PresetNames() }

// ReloadableConfigs serves one preset whose contents can be swapped.
type ReloadableConfigs struct {
	cfg *twittertext.Configuration
}

func (r *ReloadableConfigs) Config(string) (string, *twittertext.Configuration, bool) {
	return "house", r.cfg, true
}

func (r *ReloadableConfigs) Names() []string { return []string{"house"} }

// AnalyzeTextUseCase tests

func TestAnalyzeTextUseCase_Execute_ComputesAndCaches(t *testing.T) {
	// Arrange
	cache := NewMockCache()
	uc := usecases.NewAnalyzeTextUseCase(cache, MockConfigs{}, 0, log.Discard())
	req := domain.ParseRequest{Text: "see https://example.com/a/long/path #go", ExtractURLs: true}

	// Act
	got, err := uc.Execute(context.Background(), req)

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Config != "v3" || got.Version != 3 {
		t.Errorf("config: got %s/%d, want v3/3", got.Config, got.Version)
	}
	if want := 4 + 23 + 4; got.Results.WeightedLength != want {
		t.Errorf("WeightedLength: got %d, want %d", got.Results.WeightedLength, want)
	}
	if len(got.Entities) != 2 || got.Entities[0].Type != twittertext.URL || got.Entities[1].Value != "go" {
		t.Errorf("Entities: got %+v", got.Entities)
	}
	if cache.sets != 1 {
		t.Errorf("cache sets: got %d, want 1", cache.sets)
	}
}

func TestAnalyzeTextUseCase_Execute_CacheHit(t *testing.T) {
	// Arrange
	cache := NewMockCache()
	cached := &domain.Analysis{Config: "v2", Version: 2}
	cache.Set(domain.AnalysisKey("v2", twittertext.ConfigV2(), false, "hello"), cached)
	uc := usecases.NewAnalyzeTextUseCase(cache, MockConfigs{}, 0, log.Discard())

	// Act
	got, err := uc.Execute(context.Background(), domain.ParseRequest{Text: "hello", Config: "v2"})

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != cached {
		t.Errorf("expected cached analysis, got %+v", got)
	}
	if cache.sets != 1 {
		t.Errorf("cache sets: got %d, want 1", cache.sets)
	}
}

func TestAnalyzeTextUseCase_Execute_ReloadedPresetMissesCache(t *testing.T) {
	// Arrange
	cache := NewMockCache()
	configs := &ReloadableConfigs{cfg: twittertext.ConfigV3()}
	uc := usecases.NewAnalyzeTextUseCase(cache, configs, 0, log.Discard())
	req := domain.ParseRequest{Text: "hello", Config: "house"}
	first, err := uc.Execute(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	reloaded := twittertext.ConfigV3()
	reloaded.DefaultWeight = 200
	reloaded.Ranges = nil
	configs.cfg = reloaded

	// Act
	second, err := uc.Execute(context.Background(), req)

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Results.WeightedLength != 5 {
		t.Errorf("first WeightedLength: got %d, want 5", first.Results.WeightedLength)
	}
	if second.Results.WeightedLength != 10 {
		t.Errorf("reloaded WeightedLength: got %d, want 10", second.Results.WeightedLength)
	}
	if cache.sets != 2 {
		t.Errorf("cache sets: got %d, want 2", cache.sets)
	}
}

func TestAnalyzeTextUseCase_Execute_ReportsNormalizedText(t *testing.T) {
	uc := usecases.NewAnalyzeTextUseCase(NewMockCache(), MockConfigs{}, 0, log.Discard())

	got, err := uc.Execute(context.Background(), domain.ParseRequest{Text: "cafe\u0301 #go"})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Text != "caf\u00e9 #go" {
		t.Errorf("Text: got %q, want %q", got.Text, "caf\u00e9 #go")
	}
}

func TestAnalyzeTextUseCase_Execute_WithoutURLsHasNoEntities(t *testing.T) {
	uc := usecases.NewAnalyzeTextUseCase(NewMockCache(), MockConfigs{}, 0, log.Discard())

	got, err := uc.Execute(context.Background(), domain.ParseRequest{Text: "https://example.com/a/long/path"})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Results.WeightedLength != 31 {
		t.Errorf("WeightedLength: got %d, want 31", got.Results.WeightedLength)
	}
	if got.Entities == nil || len(got.Entities) != 0 {
		t.Errorf("Entities: got %#v, want empty slice", got.Entities)
	}
}

func TestAnalyzeTextUseCase_Execute_Errors(t *testing.T) {
	tests := []struct {
		name string
		req  domain.ParseRequest
		want error
	}{
		{"empty text", domain.ParseRequest{}, domain.ErrEmptyText},
		{"too long", domain.ParseRequest{Text: strings.Repeat("a", 11)}, domain.ErrTextTooLong},
		{"unknown config", domain.ParseRequest{Text: "hi", Config: "v7"}, domain.ErrUnknownConfig},
	}
	uc := usecases.NewAnalyzeTextUseCase(NewMockCache(), MockConfigs{}, 10, log.Discard())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

// ExtractEntitiesUseCase tests

func TestExtractEntitiesUseCase_Execute_FiltersByType(t *testing.T) {
	const text = "@user/list and @bob #tag $CASH example.com"
	tests := []struct {
		name   string
		types  []string
		values []string
	}{
		{"all", nil, []string{"user", "bob", "tag", "CASH", "example.com"}},
		{"lists only", []string{"list"}, []string{"user"}},
		{"mentions only", []string{"mention"}, []string{"bob"}},
		{"tags", []string{"hashtag", "CASHTAG"}, []string{"tag", "CASH"}},
		{"urls", []string{"url"}, []string{"example.com"}},
	}
	uc := usecases.NewExtractEntitiesUseCase(0, log.Discard())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := uc.Execute(context.Background(), domain.ExtractRequest{Text: text, Types: tt.types})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.values) {
				t.Fatalf("got %+v, want values %v", got, tt.values)
			}
			for i, v := range tt.values {
				if got[i].Value != v {
					t.Errorf("entity %d: got %q, want %q", i, got[i].Value, v)
				}
			}
		})
	}
}

func TestExtractEntitiesUseCase_Execute_FederatedAndUWPToggle(t *testing.T) {
	// Arrange
	uc := usecases.NewExtractEntitiesUseCase(0, log.Discard())
	off := false

	// Act
	fed, err := uc.Execute(context.Background(), domain.ExtractRequest{Text: "@alice@example.social hi", Types: []string{"federated"}})
	bare, err2 := uc.Execute(context.Background(), domain.ExtractRequest{Text: "visit example.com", URLWithoutProtocol: &off})

	// Assert
	if err != nil || err2 != nil {
		t.Fatalf("unexpected errors: %v, %v", err, err2)
	}
	if len(fed) != 1 || fed[0].Value != "@alice@example.social" {
		t.Errorf("federated: got %+v", fed)
	}
	if len(bare) != 0 {
		t.Errorf("url without protocol disabled: got %+v", bare)
	}
}

func TestExtractEntitiesUseCase_Execute_UnknownType(t *testing.T) {
	uc := usecases.NewExtractEntitiesUseCase(0, log.Discard())

	_, err := uc.Execute(context.Background(), domain.ExtractRequest{Text: "hi", Types: []string{"emoji"}})

	if !errors.Is(err, domain.ErrUnknownEntityType) {
		t.Errorf("got %v, want ErrUnknownEntityType", err)
	}
}

// ValidateTextUseCase tests

func TestValidateTextUseCase_Execute(t *testing.T) {
	tests := []struct {
		kind   string
		text   string
		config string
		want   bool
	}{
		{"tweet", strings.Repeat("a", 280), "", true},
		{"tweet", strings.Repeat("a", 280), "v1", false},
		{"username", "@jack", "", true},
		{"username", "@jack!", "", false},
		{"list", "@jack/team", "", true},
		{"hashtag", "#golang", "", true},
		{"URL", "https://example.com/x", "", true},
		{"url_without_protocol", "example.com", "", true},
	}
	uc := usecases.NewValidateTextUseCase(MockConfigs{}, 0, log.Discard())
	for _, tt := range tests {
		t.Run(tt.kind+"/"+tt.text[:min(len(tt.text), 12)], func(t *testing.T) {
			got, err := uc.Execute(context.Background(), domain.ValidateRequest{Kind: tt.kind, Text: tt.text, Config: tt.config})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Valid != tt.want {
				t.Errorf("Valid: got %v, want %v", got.Valid, tt.want)
			}
		})
	}
}

func TestValidateTextUseCase_Execute_Errors(t *testing.T) {
	uc := usecases.NewValidateTextUseCase(MockConfigs{}, 0, log.Discard())

	_, err := uc.Execute(context.Background(), domain.ValidateRequest{Kind: "emoji", Text: "x"})
	if !errors.Is(err, domain.ErrUnknownValidation) {
		t.Errorf("kind: got %v, want ErrUnknownValidation", err)
	}
	_, err = uc.Execute(context.Background(), domain.ValidateRequest{Kind: "tweet", Text: "x", Config: "v0"})
	if !errors.Is(err, domain.ErrUnknownConfig) {
		t.Errorf("config: got %v, want ErrUnknownConfig", err)
	}
	_, err = uc.Execute(context.Background(), domain.ValidateRequest{Kind: "tweet"})
	if !errors.Is(err, domain.ErrEmptyText) {
		t.Errorf("empty: got %v, want ErrEmptyText", err)
	}
}
