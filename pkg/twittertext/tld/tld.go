// Package tld answers whether a label is a top-level domain delegated by ICANN.
//
// The table is embedded at build time from tlds.yaml. Every Unicode entry is
// also registered under its xn-- form, so callers may look up either.
package tld

import (
	_ "embed"
	"fmt"
	"sort"
	"sync"

	"golang.org/x/net/idna"
	"gopkg.in/yaml.v3"
)

//go:embed tlds.yaml
var tldsYAML []byte

// Table groups TLDs the same way tlds.yaml does.
type Table struct {
	Country []string `yaml:"country"`
	Generic []string `yaml:"generic"`
}

var (
	loadOnce sync.Once
	known    map[string]struct{}
	loadErr  error
)

// Parse decodes a TLD table from YAML.
func Parse(data []byte) (*Table, error) {
	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("decode tld table: %w", err)
	}
	if len(t.Country)+len(t.Generic) == 0 {
		return nil, fmt.Errorf("decode tld table: no entries")
	}
	return &t, nil
}

// Set builds the lookup set for the table, adding the ASCII form of every
// internationalized entry.
func (t *Table) Set() map[string]struct{} {
	set := make(map[string]struct{}, 2*(len(t.Country)+len(t.Generic)))
	for _, group := range [][]string{t.Country, t.Generic} {
		for _, name := range group {
			set[name] = struct{}{}
			if ascii, err := idna.Punycode.ToASCII(name); err == nil && ascii != name {
				set[ascii] = struct{}{}
			}
		}
	}
	return set
}

func load() {
	t, err := Parse(tldsYAML)
	if err != nil {
		loadErr = err
		known = map[string]struct{}{}
		return
	}
	known = t.Set()
}

// IsValid reports whether s is a known TLD. The lookup is case-sensitive;
// callers lowercase first.
func IsValid(s string) bool {
	loadOnce.Do(load)
	_, ok := known[s]
	return ok
}

// Err returns the error hit while decoding the embedded table, if any.
func Err() error {
	loadOnce.Do(load)
	return loadErr
}

// All returns every known TLD, sorted.
func All() []string {
	loadOnce.Do(load)
	out := make([]string, 0, len(known))
	for name := range known {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
