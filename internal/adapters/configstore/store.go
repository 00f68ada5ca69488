// Package configstore serves weighting configurations by name: the
// built-in presets plus any loaded from a YAML file that is reloaded when
// it changes.
package configstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"twittertext/pkg/log"
	"twittertext/pkg/twittertext"
)

// presetsFile is the YAML layout of the presets file.
type presetsFile struct {
	Default string                               `yaml:"default"`
	Presets map[string]twittertext.Configuration `yaml:"presets"`
}

// Store is safe for concurrent use.
type Store struct {
	path   string
	logger *log.Logger

	mu          sync.RWMutex
	presets     map[string]*twittertext.Configuration
	defaultName string
	modTime     time.Time
}

// New returns a store holding only the built-in presets.
func New(logger *log.Logger) *Store {
	return &Store{
		logger:      logger.Named("configstore"),
		presets:     builtins(),
		defaultName: "v3",
	}
}

// Load returns a store with the presets of the YAML file at path merged
// over the built-ins. A missing file is not an error.
func Load(path string, logger *log.Logger) (*Store, error) {
	s := New(logger)
	s.path = path
	if err := s.Reload(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	return s, nil
}

func builtins() map[string]*twittertext.Configuration {
	m := make(map[string]*twittertext.Configuration)
	for _, name := range twittertext.PresetNames() {
		m[name], _ = twittertext.ConfigByName(name)
	}
	return m
}

// Reload rereads the presets file. On error the previous presets stay in
// effect.
func (s *Store) Reload() error {
	info, err := os.Stat(s.path)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return err
	}
	presets, def, err := decode(data)
	if err != nil {
		return fmt.Errorf("%s: %w", s.path, err)
	}

	s.mu.Lock()
	s.presets = presets
	s.defaultName = def
	s.modTime = info.ModTime()
	s.mu.Unlock()

	s.logger.Info("presets loaded", "path", s.path, "count", len(presets), "default", def)
	return nil
}

func decode(data []byte) (map[string]*twittertext.Configuration, string, error) {
	var file presetsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, "", fmt.Errorf("%w: %v", twittertext.ErrInvalidConfiguration, err)
	}
	presets := builtins()
	for name, cfg := range file.Presets {
		name = strings.ToLower(name)
		if _, builtin := presets[name]; builtin {
			return nil, "", fmt.Errorf("%w: preset %q shadows a built-in", twittertext.ErrInvalidConfiguration, name)
		}
		if err := cfg.Validate(); err != nil {
			return nil, "", fmt.Errorf("preset %q: %w", name, err)
		}
		presets[name] = &cfg
	}
	def := strings.ToLower(file.Default)
	if def == "" {
		def = "v3"
	}
	if _, ok := presets[def]; !ok {
		return nil, "", fmt.Errorf("%w: default preset %q is not defined", twittertext.ErrInvalidConfiguration, def)
	}
	return presets, def, nil
}

// Config returns the named configuration. An empty name selects the
// default preset.
func (s *Store) Config(name string) (string, *twittertext.Configuration, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == "default" {
		name = s.defaultName
	}
	cfg, ok := s.presets[name]
	return name, cfg, ok
}

// Names lists the available presets in order.
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.presets))
	for name := range s.presets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Watch polls the presets file every interval and reloads it when its
// modification time changes. It returns when ctx is done.
func (s *Store) Watch(ctx context.Context, interval time.Duration) {
	if s.path == "" {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.poll()
		}
	}
}

func (s *Store) poll() {
	info, err := os.Stat(s.path)
	if err != nil {
		return
	}
	s.mu.RLock()
	changed := info.ModTime().After(s.modTime)
	s.mu.RUnlock()
	if !changed {
		return
	}
	if err := s.Reload(); err != nil {
		s.logger.Warn("presets reload failed, keeping previous", "path", s.path, "error", err)
	}
}
