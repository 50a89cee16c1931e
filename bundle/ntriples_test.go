package bundle

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/c360studio/plughost/store"
	"github.com/c360studio/plughost/value"
)

func writeNT(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "manifest.nt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNTriplesReader(t *testing.T) {
	const data = `# comment line
<http://example.org/amp> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://lv2plug.in/ns/lv2core#Plugin> .
<http://example.org/amp> <http://usefulinc.com/ns/doap#name> "Amplifier"@en .

_:port0 <http://lv2plug.in/ns/lv2core#symbol> "gain" .
_:port0 <http://lv2plug.in/ns/lv2core#index> "0"^^<http://www.w3.org/2001/XMLSchema#integer> .
_:port0 <http://lv2plug.in/ns/lv2core#default> "0.5"^^<http://www.w3.org/2001/XMLSchema#decimal> .
_:port0 <http://example.org/toggled> "true"^^<http://www.w3.org/2001/XMLSchema#boolean> .
`
	path := writeNT(t, data)

	triples, err := NTriplesReader{}.ReadFile(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, triples, 6)

	require.Equal(t, value.NewURI("http://example.org/amp"), triples[0].Subject)
	require.Equal(t, value.NewStringLang("Amplifier", "en"), triples[1].Object)
	require.Equal(t, value.NewBlank("port0"), triples[2].Subject)
	require.Equal(t, value.NewString("gain"), triples[2].Object)
	require.Equal(t, value.NewInt(0), triples[3].Object)
	require.Equal(t, value.NewFloat(0.5), triples[4].Object)
	require.Equal(t, value.NewBool(true), triples[5].Object)
}

func TestNTriplesReaderEscapes(t *testing.T) {
	path := writeNT(t, `<http://example.org/s> <http://example.org/p> "line\none \"two\"" .`+"\n")
	triples, err := NTriplesReader{}.ReadFile(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, triples, 1)
	require.Equal(t, value.NewString("line\none \"two\""), triples[0].Object)
}

func TestNTriplesReaderErrors(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"missing terminator", `<http://a> <http://b> <http://c>`},
		{"unterminated uri", `<http://a <http://b> <http://c> .`},
		{"unterminated string", `<http://a> <http://b> "oops .`},
		{"literal subject", `"nope" <http://b> <http://c> .`},
		{"bad integer", `<http://a> <http://b> "xyz"^^<http://www.w3.org/2001/XMLSchema#integer> .`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeNT(t, tt.line+"\n")
			_, err := NTriplesReader{}.ReadFile(context.Background(), path)
			require.Error(t, err)
		})
	}
}

func TestMemorySource(t *testing.T) {
	src := NewMemorySource()
	manifest := []store.Triple{{
		Subject:   value.NewURI("http://example.org/amp"),
		Predicate: value.NewURI("http://www.w3.org/1999/02/22-rdf-syntax-ns#type"),
		Object:    value.NewURI("http://lv2plug.in/ns/lv2core#Plugin"),
	}}
	src.AddBundle("file:///bundles/amp.lv2/", MemoryBundle{
		Manifest: manifest,
		Files: map[string][]store.Triple{
			"file:///bundles/amp.lv2/amp.nt": nil,
		},
	})
	src.AddBundle("file:///bundles/delay.lv2/", MemoryBundle{})

	locs, err := src.Locations(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"file:///bundles/amp.lv2/", "file:///bundles/delay.lv2/"}, locs)

	got, err := src.Manifest(context.Background(), "file:///bundles/amp.lv2/")
	require.NoError(t, err)
	require.Equal(t, manifest, got)

	_, err = src.Manifest(context.Background(), "file:///bundles/nope.lv2/")
	require.Error(t, err)

	_, err = src.DataFile(context.Background(), "file:///bundles/amp.lv2/amp.nt")
	require.NoError(t, err)
}

func TestFileURIRoundTrip(t *testing.T) {
	uri := FileURI("/usr/lib/lv2/amp.lv2")
	require.Equal(t, "file:///usr/lib/lv2/amp.lv2", uri)

	path, err := URIToPath(uri + "/")
	require.NoError(t, err)
	require.Equal(t, "/usr/lib/lv2/amp.lv2", path)

	_, err = URIToPath("http://example.org/amp.lv2")
	require.ErrorIs(t, err, ErrNotFileURI)
}

func TestFSSourceLocations(t *testing.T) {
	root := t.TempDir()
	ampDir := filepath.Join(root, "amp.lv2")
	require.NoError(t, os.MkdirAll(ampDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(ampDir, "manifest.nt"), []byte(
		"<http://example.org/amp> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://lv2plug.in/ns/lv2core#Plugin> .\n"), 0o644))
	// Not a bundle: no manifest.
	require.NoError(t, os.MkdirAll(filepath.Join(root, "junk.lv2"), 0o755))
	// Not a bundle: wrong suffix.
	require.NoError(t, os.MkdirAll(filepath.Join(root, "other"), 0o755))

	src := NewFSSource([]string{root}, NTriplesReader{})
	locs, err := src.Locations(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{FileURI(ampDir) + "/"}, locs)

	triples, err := src.Manifest(context.Background(), locs[0])
	require.NoError(t, err)
	require.Len(t, triples, 1)
}
