package twittertext

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Configuration controls how text is weighted. A *Configuration is treated
// as immutable once shared; the With methods return modified copies.
type Configuration struct {
	Version                int             `json:"version" yaml:"version"`
	MaxWeightedTweetLength int             `json:"max_weighted_tweet_length" yaml:"max_weighted_tweet_length"`
	Scale                  int             `json:"scale" yaml:"scale"`
	DefaultWeight          int             `json:"default_weight" yaml:"default_weight"`
	TransformedURLLength   int             `json:"transformed_url_length" yaml:"transformed_url_length"`
	Ranges                 []WeightedRange `json:"ranges" yaml:"ranges"`
	EmojiParsingEnabled    bool            `json:"emoji_parsing_enabled" yaml:"emoji_parsing_enabled"`
}

func v2Ranges() []WeightedRange {
	return []WeightedRange{
		{Range: Range{Start: 0, End: 4351}, Weight: 100},
		{Range: Range{Start: 8192, End: 8205}, Weight: 100},
		{Range: Range{Start: 8208, End: 8223}, Weight: 100},
		{Range: Range{Start: 8242, End: 8247}, Weight: 100},
	}
}

// ConfigV1 returns the original 140-character configuration.
func ConfigV1() *Configuration {
	return &Configuration{
		Version:                1,
		MaxWeightedTweetLength: 140,
		Scale:                  1,
		DefaultWeight:          1,
		TransformedURLLength:   23,
		Ranges:                 []WeightedRange{},
	}
}

// ConfigV2 returns the 280-unit configuration where CJK and most other
// scripts weigh double.
func ConfigV2() *Configuration {
	return &Configuration{
		Version:                2,
		MaxWeightedTweetLength: 280,
		Scale:                  100,
		DefaultWeight:          200,
		TransformedURLLength:   23,
		Ranges:                 v2Ranges(),
	}
}

// ConfigV3 is ConfigV2 with emoji sequences counted as a single unit.
func ConfigV3() *Configuration {
	c := ConfigV2()
	c.Version = 3
	c.EmojiParsingEnabled = true
	return c
}

// DefaultConfig returns the current configuration, ConfigV3.
func DefaultConfig() *Configuration { return ConfigV3() }

var presets = map[string]func() *Configuration{
	"v1": ConfigV1,
	"v2": ConfigV2,
	"v3": ConfigV3,
}

// ConfigByName returns a built-in preset ("v1", "v2" or "v3").
func ConfigByName(name string) (*Configuration, bool) {
	f, ok := presets[strings.ToLower(name)]
	if !ok {
		return nil, false
	}
	return f(), true
}

// PresetNames lists the built-in presets in order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// weightedRangeDoc is the decoding form of a WeightedRange. Either Range or
// both Start and End must be present.
type weightedRangeDoc struct {
	Range  *Range `json:"range" yaml:"range"`
	Start  *int   `json:"start" yaml:"start"`
	End    *int   `json:"end" yaml:"end"`
	Weight int    `json:"weight" yaml:"weight"`
}

func (d weightedRangeDoc) weightedRange() (WeightedRange, error) {
	w := WeightedRange{Weight: d.Weight}
	switch {
	case d.Range != nil:
		w.Range = *d.Range
	case d.Start != nil && d.End != nil:
		w.Range = Range{Start: *d.Start, End: *d.End}
	default:
		return WeightedRange{}, fmt.Errorf("weighted range needs \"range\" or \"start\" and \"end\"")
	}
	return w, nil
}

// UnmarshalJSON accepts the nested and the flat range forms.
func (w *WeightedRange) UnmarshalJSON(data []byte) error {
	var d weightedRangeDoc
	if err := json.Unmarshal(data, &d); err != nil {
		return err
	}
	wr, err := d.weightedRange()
	if err != nil {
		return err
	}
	*w = wr
	return nil
}

// UnmarshalYAML accepts the nested and the flat range forms.
func (w *WeightedRange) UnmarshalYAML(node *yaml.Node) error {
	var d weightedRangeDoc
	if err := node.Decode(&d); err != nil {
		return err
	}
	wr, err := d.weightedRange()
	if err != nil {
		return err
	}
	*w = wr
	return nil
}

// ParseConfigurationJSON decodes and validates a JSON configuration.
func ParseConfigurationJSON(data []byte) (*Configuration, error) {
	var c Configuration
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// ParseConfigurationYAML decodes and validates a YAML configuration.
func ParseConfigurationYAML(data []byte) (*Configuration, error) {
	var c Configuration
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadConfiguration reads a configuration file. The format is chosen by
// extension: .json, .yaml or .yml.
func LoadConfiguration(path string) (*Configuration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read configuration: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return ParseConfigurationJSON(data)
	case ".yaml", ".yml":
		return ParseConfigurationYAML(data)
	}
	return nil, fmt.Errorf("%w: unsupported file type %q", ErrInvalidConfiguration, filepath.Ext(path))
}

// Validate reports whether c can be used for weighting.
func (c *Configuration) Validate() error {
	switch {
	case c.Scale <= 0:
		return fmt.Errorf("%w: scale must be positive", ErrInvalidConfiguration)
	case c.MaxWeightedTweetLength <= 0:
		return fmt.Errorf("%w: max_weighted_tweet_length must be positive", ErrInvalidConfiguration)
	case c.DefaultWeight < 0 || c.TransformedURLLength < 0:
		return fmt.Errorf("%w: weights must not be negative", ErrInvalidConfiguration)
	}
	for i, r := range c.Ranges {
		if r.Range.Start > r.Range.End {
			return fmt.Errorf("%w: range %d is inverted", ErrInvalidConfiguration, i)
		}
		if r.Weight < 0 {
			return fmt.Errorf("%w: range %d has a negative weight", ErrInvalidConfiguration, i)
		}
	}
	return nil
}

func (c *Configuration) clone() *Configuration {
	cp := *c
	cp.Ranges = slices.Clone(c.Ranges)
	return &cp
}

func (c *Configuration) WithVersion(v int) *Configuration {
	cp := c.clone()
	cp.Version = v
	return cp
}

func (c *Configuration) WithMaxWeightedTweetLength(n int) *Configuration {
	cp := c.clone()
	cp.MaxWeightedTweetLength = n
	return cp
}

func (c *Configuration) WithScale(n int) *Configuration {
	cp := c.clone()
	cp.Scale = n
	return cp
}

func (c *Configuration) WithDefaultWeight(n int) *Configuration {
	cp := c.clone()
	cp.DefaultWeight = n
	return cp
}

func (c *Configuration) WithTransformedURLLength(n int) *Configuration {
	cp := c.clone()
	cp.TransformedURLLength = n
	return cp
}

func (c *Configuration) WithRanges(ranges []WeightedRange) *Configuration {
	cp := c.clone()
	cp.Ranges = slices.Clone(ranges)
	return cp
}

func (c *Configuration) WithEmojiParsingEnabled(enabled bool) *Configuration {
	cp := c.clone()
	cp.EmojiParsingEnabled = enabled
	return cp
}

// weight returns the weight of code point r: the first matching range, or
// the default weight.
func (c *Configuration) weight(r rune) int {
	if len(c.Ranges) > 0 {
		if first := c.Ranges[0]; first.Range.Start == 0 && int(r) <= first.Range.End {
			return first.Weight
		}
	}
	for _, wr := range c.Ranges {
		if wr.Contains(r) {
			return wr.Weight
		}
	}
	return c.DefaultWeight
}
