// Package catalog holds the static routing metadata for every model the
// gateway can serve: the mapping from a caller-facing logical name to the
// vendor-qualified model identifier, its capability flags, and its output
// limits. The table is the source of truth for provider routing and is
// immutable once loaded.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed models.yaml
var modelsYAML []byte

// ErrUnknownModel is returned by Lookup when a logical name has no entry.
var ErrUnknownModel = errors.New("unknown model")

// ModelEntry describes one logical model: where it routes and what it can do.
// VendorFamily is derived from the segment of VendorModelID preceding the
// first "/" at load time, so routing never re-parses identifiers.
type ModelEntry struct {
	Name            string `yaml:"name"`
	VendorModelID   string `yaml:"model"`
	VendorFamily    string `yaml:"-"`
	SupportsVision  bool   `yaml:"vision"`
	MaxOutputTokens int    `yaml:"max_output_tokens"`
	SystemPrompt    string `yaml:"system_prompt"`
}

// Catalog is an immutable lookup table of model entries keyed by logical name.
type Catalog struct {
	entries map[string]ModelEntry
}

type catalogFile struct {
	Models []ModelEntry `yaml:"models"`
}

// Load parses the embedded model table. It is intended to be called once at
// process start; the result is safe for concurrent reads.
func Load() (*Catalog, error) {
	return Parse(modelsYAML)
}

// Parse builds a Catalog from YAML data. Exposed separately from Load so
// tests and alternative deployments can supply their own table.
func Parse(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("error parsing model catalog: %w", err)
	}
	if len(file.Models) == 0 {
		return nil, errors.New("model catalog is empty")
	}

	entries := make(map[string]ModelEntry, len(file.Models))
	for _, entry := range file.Models {
		if entry.Name == "" {
			return nil, errors.New("model catalog entry is missing a name")
		}
		if entry.VendorModelID == "" {
			return nil, fmt.Errorf("model catalog entry %q is missing a vendor model id", entry.Name)
		}
		if _, exists := entries[entry.Name]; exists {
			return nil, fmt.Errorf("duplicate model catalog entry %q", entry.Name)
		}
		entry.VendorFamily = vendorFamily(entry.VendorModelID)
		entries[entry.Name] = entry
	}

	return &Catalog{entries: entries}, nil
}

// Lookup resolves a logical name to its entry. Returns an error wrapping
// [ErrUnknownModel] when the name is absent.
func (catalog *Catalog) Lookup(name string) (ModelEntry, error) {
	entry, found := catalog.entries[name]
	if !found {
		return ModelEntry{}, fmt.Errorf("%w: %q", ErrUnknownModel, name)
	}
	return entry, nil
}

// Names returns the logical names of every catalog entry, in no particular
// order. Useful for listing available models to the caller.
func (catalog *Catalog) Names() []string {
	names := make([]string, 0, len(catalog.entries))
	for name := range catalog.entries {
		names = append(names, name)
	}
	return names
}

// vendorFamily extracts the vendor family from a vendor-qualified model id,
// e.g. "google/gemini-2.5-pro" -> "google". An identifier with no separator
// is its own family.
func vendorFamily(vendorModelID string) string {
	family, _, found := strings.Cut(vendorModelID, "/")
	if !found {
		return vendorModelID
	}
	return family
}
