package bundle

import (
	"context"
	"fmt"

	"github.com/c360studio/plughost/store"
)

// MemoryBundle is the in-memory description of one bundle: its manifest
// triples and its data files keyed by file URI.
type MemoryBundle struct {
	Manifest []store.Triple
	Files    map[string][]store.Triple
}

// MemorySource is a Source backed by in-memory bundles. Hosts use it to
// feed programmatic metadata into a world; tests use it as a fixture.
// Locations are returned in AddBundle order.
type MemorySource struct {
	order   []string
	bundles map[string]MemoryBundle
}

// NewMemorySource returns an empty MemorySource.
func NewMemorySource() *MemorySource {
	return &MemorySource{bundles: make(map[string]MemoryBundle)}
}

// AddBundle registers a bundle under the given URI, replacing any previous
// registration for the same URI.
func (m *MemorySource) AddBundle(uri string, b MemoryBundle) {
	if _, exists := m.bundles[uri]; !exists {
		m.order = append(m.order, uri)
	}
	m.bundles[uri] = b
}

// Locations returns the registered bundle URIs in registration order.
func (m *MemorySource) Locations(context.Context) ([]string, error) {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out, nil
}

// Manifest returns the bundle's manifest triples.
func (m *MemorySource) Manifest(_ context.Context, bundleURI string) ([]store.Triple, error) {
	b, ok := m.bundles[bundleURI]
	if !ok {
		return nil, fmt.Errorf("unknown bundle %q", bundleURI)
	}
	return b.Manifest, nil
}

// DataFile returns the triples of one data file. The file is looked up
// across all registered bundles.
func (m *MemorySource) DataFile(_ context.Context, fileURI string) ([]store.Triple, error) {
	for _, b := range m.bundles {
		if ts, ok := b.Files[fileURI]; ok {
			return ts, nil
		}
	}
	return nil, fmt.Errorf("unknown data file %q", fileURI)
}
