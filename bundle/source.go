// Package bundle abstracts the discovery and ingestion side of the plugin
// metadata world: where bundles live, and how their files become triples.
//
// The concrete metadata syntax is out of scope here. A Source hands the
// world already-parsed triples; parsing is delegated to a TripleReader so
// hosts can plug in a full Turtle parser. A minimal N-Triples reader is
// provided for tooling and tests.
package bundle

import (
	"context"

	"github.com/c360studio/plughost/store"
)

// Source supplies candidate bundle locations and their parsed triples.
//
// Locations returns an ordered, finite list of bundle URIs. Manifest
// returns the eager subset of a bundle's triples (plugin existence, type,
// and pointers to data files). DataFile returns the triples of one data
// file, pulled on demand when a plugin is first queried.
type Source interface {
	Locations(ctx context.Context) ([]string, error)
	Manifest(ctx context.Context, bundleURI string) ([]store.Triple, error)
	DataFile(ctx context.Context, fileURI string) ([]store.Triple, error)
}

// DynManifest is a host-supplied hook that programmatically contributes
// extra triples for a bundle at load time. Errors are non-fatal and are
// treated as "no additional triples".
type DynManifest func(ctx context.Context, bundleURI string) ([]store.Triple, error)

// TripleReader turns one metadata file into triples. Implementations are
// expected to resolve relative URIs in the file against its own location.
type TripleReader interface {
	ReadFile(ctx context.Context, path string) ([]store.Triple, error)
}
