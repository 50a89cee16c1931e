package bundle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/c360studio/plughost/store"
)

// EnvSearchPath is the environment variable overriding the bundle search
// path, as a colon-separated directory list.
const EnvSearchPath = "LV2_PATH"

// manifestPattern matches the manifest file inside a bundle directory.
const manifestPattern = "manifest.{ttl,nt}"

// ErrNotFileURI is returned when a bundle URI does not use the file scheme.
var ErrNotFileURI = errors.New("not a file URI")

// DefaultSearchPath returns the bundle search directories: the EnvSearchPath
// override when set, otherwise the conventional user and system locations.
func DefaultSearchPath() []string {
	if env := os.Getenv(EnvSearchPath); env != "" {
		return filepath.SplitList(env)
	}
	paths := []string{"/usr/local/lib/lv2", "/usr/lib/lv2"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append([]string{filepath.Join(home, ".lv2")}, paths...)
	}
	return paths
}

// FSSource enumerates plugin bundles on the local filesystem. A bundle is a
// "*.lv2" directory containing a manifest file. Parsing is delegated to the
// configured TripleReader.
type FSSource struct {
	paths  []string
	reader TripleReader
	logger *slog.Logger
}

// FSOption configures an FSSource.
type FSOption func(*FSSource)

// WithFSLogger sets the logger used for scan diagnostics.
func WithFSLogger(l *slog.Logger) FSOption {
	return func(f *FSSource) { f.logger = l }
}

// NewFSSource returns a Source scanning the given directories with the given
// reader. An empty searchPath falls back to DefaultSearchPath.
func NewFSSource(searchPath []string, reader TripleReader, opts ...FSOption) *FSSource {
	if len(searchPath) == 0 {
		searchPath = DefaultSearchPath()
	}
	f := &FSSource{paths: searchPath, reader: reader, logger: slog.Default()}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Locations scans the search path for bundle directories. Unreadable
// directories are skipped with a debug log; scan order is search-path order,
// bundle names sorted within each directory for determinism.
func (f *FSSource) Locations(_ context.Context) ([]string, error) {
	var out []string
	for _, dir := range f.paths {
		matches, err := doublestar.Glob(os.DirFS(dir), "*.lv2/"+manifestPattern)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", dir, err)
		}
		if len(matches) == 0 {
			f.logger.Debug("no bundles found", "dir", dir)
			continue
		}
		sort.Strings(matches)
		seen := make(map[string]bool)
		for _, m := range matches {
			bundleDir := filepath.Join(dir, filepath.Dir(m))
			if seen[bundleDir] {
				continue
			}
			seen[bundleDir] = true
			out = append(out, FileURI(bundleDir)+"/")
		}
	}
	return out, nil
}

// Manifest reads and parses the bundle's manifest file.
func (f *FSSource) Manifest(ctx context.Context, bundleURI string) ([]store.Triple, error) {
	dir, err := URIToPath(bundleURI)
	if err != nil {
		return nil, err
	}
	matches, err := doublestar.Glob(os.DirFS(dir), manifestPattern)
	if err != nil || len(matches) == 0 {
		return nil, fmt.Errorf("bundle %s has no readable manifest", bundleURI)
	}
	sort.Strings(matches)
	return f.reader.ReadFile(ctx, filepath.Join(dir, matches[0]))
}

// DataFile reads and parses one data file referenced by a manifest.
func (f *FSSource) DataFile(ctx context.Context, fileURI string) ([]store.Triple, error) {
	path, err := URIToPath(fileURI)
	if err != nil {
		return nil, err
	}
	return f.reader.ReadFile(ctx, path)
}

// FileURI converts a filesystem path to a file URI.
func FileURI(path string) string {
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(path)}
	return u.String()
}

// URIToPath converts a file URI back to a filesystem path. Non-file URIs
// yield ErrNotFileURI.
func URIToPath(uri string) (string, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("parse %q: %w", uri, err)
	}
	if u.Scheme != "file" {
		return "", fmt.Errorf("%w: %q", ErrNotFileURI, uri)
	}
	return filepath.FromSlash(strings.TrimSuffix(u.Path, "/")), nil
}
