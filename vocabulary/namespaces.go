package vocabulary

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/c360studio/plughost/value"
)

// ErrUnknownPrefix is returned by Expand when the prefix of a compact term
// has no registered namespace.
var ErrUnknownPrefix = errors.New("unknown namespace prefix")

// ErrBadQName is returned by Expand when the term is not of the form
// "prefix:local".
var ErrBadQName = errors.New("malformed prefixed name")

// builtins are the namespaces every table starts with.
var builtins = map[string]string{
	"lv2":  NSLV2,
	"rdf":  NSRDF,
	"rdfs": NSRDFS,
	"xsd":  NSXSD,
	"doap": NSDOAP,
	"foaf": NSFOAF,
	"dc":   NSDC,
	"ui":   NSUI,
	"ev":   NSEvent,
	"midi": NSMIDI,
	"dman": NSDynManifest,
}

// Table maps short prefixes to URI stems. The built-in vocabulary prefixes
// are always present; namespaces declared in ingested data are registered on
// top and may shadow built-ins.
//
// Table is safe for concurrent use.
type Table struct {
	mu       sync.RWMutex
	prefixes map[string]string
}

// NewTable returns a Table holding the built-in prefixes.
func NewTable() *Table {
	p := make(map[string]string, len(builtins))
	for k, v := range builtins {
		p[k] = v
	}
	return &Table{prefixes: p}
}

// Register maps prefix to the given URI stem, shadowing any existing entry.
func (t *Table) Register(prefix, base string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.prefixes[prefix] = base
}

// Lookup returns the URI stem for a prefix.
func (t *Table) Lookup(prefix string) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	base, ok := t.prefixes[prefix]
	return base, ok
}

// Expand resolves a compact "prefix:local" term into a URI Value.
// It returns ErrBadQName when the term has no colon and ErrUnknownPrefix
// when the prefix is not registered.
func (t *Table) Expand(qname string) (value.Value, error) {
	prefix, local, ok := strings.Cut(qname, ":")
	if !ok {
		return value.Value{}, fmt.Errorf("%w: %q", ErrBadQName, qname)
	}
	base, found := t.Lookup(prefix)
	if !found {
		return value.Value{}, fmt.Errorf("%w: %q", ErrUnknownPrefix, prefix)
	}
	return value.NewURI(base + local), nil
}

// Prefixes returns a copy of the current prefix map, for serializers that
// want to emit @prefix directives.
func (t *Table) Prefixes() map[string]string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make(map[string]string, len(t.prefixes))
	for k, v := range t.prefixes {
		out[k] = v
	}
	return out
}
