package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/c360studio/plughost/store"
	"github.com/c360studio/plughost/value"
	"github.com/c360studio/plughost/vocabulary"
)

func sampleTriples() []store.Triple {
	amp := value.NewURI("http://example.org/amp")
	return []store.Triple{
		{Subject: amp, Predicate: value.NewURI(vocabulary.PredType), Object: value.NewURI(vocabulary.ClassPlugin)},
		{Subject: amp, Predicate: value.NewURI(vocabulary.PredName), Object: value.NewStringLang("Amp", "en")},
		{Subject: amp, Predicate: value.NewURI(vocabulary.PredPort), Object: value.NewBlank("p0")},
		{Subject: value.NewBlank("p0"), Predicate: value.NewURI(vocabulary.PredIndex), Object: value.NewInt(0)},
	}
}

func TestExportTurtle(t *testing.T) {
	out, err := New(nil).Export(sampleTriples(), FormatTurtle)
	require.NoError(t, err)

	require.Contains(t, out, "@prefix lv2: <http://lv2plug.in/ns/lv2core#> .")
	require.Contains(t, out, "lv2:Plugin")
	require.Contains(t, out, "rdf:type")
	require.Contains(t, out, `"Amp"@en`)
	require.Contains(t, out, "_:p0 lv2:index 0 .")
	// Subjects outside any registered namespace stay fully qualified.
	require.Contains(t, out, "<http://example.org/amp>")
}

func TestExportTurtleCustomPrefix(t *testing.T) {
	ns := vocabulary.NewTable()
	ns.Register("eg", "http://example.org/")
	out, err := New(ns).Export(sampleTriples(), FormatTurtle)
	require.NoError(t, err)
	require.Contains(t, out, "eg:amp rdf:type lv2:Plugin .")
}

func TestExportNTriples(t *testing.T) {
	out, err := New(nil).Export(sampleTriples(), FormatNTriples)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	require.Equal(t,
		"<http://example.org/amp> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://lv2plug.in/ns/lv2core#Plugin> .",
		lines[0])
	require.Equal(t, "_:p0 <http://lv2plug.in/ns/lv2core#index> 0 .", lines[3])
}

func TestExportUnknownFormat(t *testing.T) {
	_, err := New(nil).Export(nil, Format("xml"))
	require.Error(t, err)
}
