package commands

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/plughost/bundle"
)

const testPluginURI = "http://example.org/plugins/amp"

// writeTestBundle lays out a minimal amp.lv2 bundle under dir and returns
// the search path root.
func writeTestBundle(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	bdir := filepath.Join(dir, "amp.lv2")
	require.NoError(t, os.MkdirAll(bdir, 0o755))

	dataPath := filepath.Join(bdir, "amp.nt")
	manifest := fmt.Sprintf(
		"<%s> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://lv2plug.in/ns/lv2core#Plugin> .\n"+
			"<%s> <http://www.w3.org/2000/01/rdf-schema#seeAlso> <%s> .\n",
		testPluginURI, testPluginURI, bundle.FileURI(dataPath))
	require.NoError(t, os.WriteFile(filepath.Join(bdir, "manifest.ttl"), []byte(manifest), 0o644))

	data := fmt.Sprintf(
		"<%s> <http://usefulinc.com/ns/doap#name> \"Amp\" .\n"+
			"<%s> <http://lv2plug.in/ns/lv2core#port> _:p0 .\n"+
			"_:p0 <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://lv2plug.in/ns/lv2core#InputPort> .\n"+
			"_:p0 <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://lv2plug.in/ns/lv2core#AudioPort> .\n"+
			"_:p0 <http://lv2plug.in/ns/lv2core#index> \"0\"^^<http://www.w3.org/2001/XMLSchema#integer> .\n"+
			"_:p0 <http://lv2plug.in/ns/lv2core#symbol> \"in\" .\n"+
			"_:p0 <http://lv2plug.in/ns/lv2core#name> \"Input\" .\n",
		testPluginURI, testPluginURI)
	require.NoError(t, os.WriteFile(dataPath, []byte(data), 0o644))
	return dir
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := Root("test")
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestListCommand(t *testing.T) {
	dir := writeTestBundle(t)

	out, err := runCommand(t, "--lv2-path", dir, "list")
	require.NoError(t, err)
	assert.Contains(t, out, testPluginURI)
	assert.Contains(t, out, "Amp")
}

func TestListVerbose(t *testing.T) {
	dir := writeTestBundle(t)

	out, err := runCommand(t, "--lv2-path", dir, "list", "--verbose")
	require.NoError(t, err)
	assert.Contains(t, out, "BUNDLE")
	assert.Contains(t, out, "amp.lv2")
}

func TestShowCommand(t *testing.T) {
	dir := writeTestBundle(t)

	out, err := runCommand(t, "--lv2-path", dir, "show", testPluginURI)
	require.NoError(t, err)
	assert.Contains(t, out, "Name:    Amp")
	assert.Contains(t, out, "[0] in")
	assert.Contains(t, out, "Input")
}

func TestShowUnknownPlugin(t *testing.T) {
	dir := writeTestBundle(t)

	_, err := runCommand(t, "--lv2-path", dir, "show", "http://example.org/nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestClassesCommand(t *testing.T) {
	dir := writeTestBundle(t)

	out, err := runCommand(t, "--lv2-path", dir, "classes")
	require.NoError(t, err)
	assert.Contains(t, out, "http://lv2plug.in/ns/lv2core#Plugin")
}

func TestExportNTriples(t *testing.T) {
	dir := writeTestBundle(t)

	out, err := runCommand(t, "--lv2-path", dir, "export", "--format", "ntriples")
	require.NoError(t, err)
	assert.Contains(t, out, "<"+testPluginURI+">")
	// Lazily loaded data files must be exported too.
	assert.Contains(t, out, "\"Amp\"")
}

func TestExportTurtlePrefixes(t *testing.T) {
	dir := writeTestBundle(t)

	out, err := runCommand(t, "--lv2-path", dir, "export")
	require.NoError(t, err)
	assert.Contains(t, out, "@prefix lv2:")
	assert.Contains(t, out, "lv2:Plugin")
}

func TestExportUnknownFormat(t *testing.T) {
	dir := writeTestBundle(t)

	_, err := runCommand(t, "--lv2-path", dir, "export", "--format", "xml")
	require.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, err := runCommand(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "plughost version test")
}
