// Package export serializes metadata store contents back to RDF text
// formats, for debugging worlds and exchanging fixtures.
package export

import (
	"fmt"
	"sort"
	"strings"

	"github.com/c360studio/plughost/store"
	"github.com/c360studio/plughost/value"
	"github.com/c360studio/plughost/vocabulary"
)

// Format specifies the output serialization format.
type Format string

const (
	// FormatTurtle produces Turtle (.ttl) output with @prefix directives
	// and prefix-compacted terms.
	FormatTurtle Format = "turtle"

	// FormatNTriples produces one full statement per line (.nt).
	FormatNTriples Format = "ntriples"
)

// Exporter serializes triples using a namespace table for compaction.
type Exporter struct {
	prefixes map[string]string
}

// New returns an Exporter compacting against the given namespace table.
// A nil table uses the built-in vocabularies.
func New(ns *vocabulary.Table) *Exporter {
	if ns == nil {
		ns = vocabulary.NewTable()
	}
	return &Exporter{prefixes: ns.Prefixes()}
}

// Export serializes the triples to the given format.
func (e *Exporter) Export(triples []store.Triple, format Format) (string, error) {
	switch format {
	case FormatTurtle:
		return e.toTurtle(triples), nil
	case FormatNTriples:
		return e.toNTriples(triples), nil
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

func (e *Exporter) toTurtle(triples []store.Triple) string {
	var sb strings.Builder

	prefixKeys := make([]string, 0, len(e.prefixes))
	for k := range e.prefixes {
		prefixKeys = append(prefixKeys, k)
	}
	sort.Strings(prefixKeys)
	for _, prefix := range prefixKeys {
		fmt.Fprintf(&sb, "@prefix %s: <%s> .\n", prefix, e.prefixes[prefix])
	}
	sb.WriteString("\n")

	for _, t := range triples {
		fmt.Fprintf(&sb, "%s %s %s .\n",
			e.compact(t.Subject), e.compact(t.Predicate), e.compact(t.Object))
	}
	return sb.String()
}

func (e *Exporter) toNTriples(triples []store.Triple) string {
	var sb strings.Builder
	for _, t := range triples {
		fmt.Fprintf(&sb, "%s %s %s .\n",
			t.Subject.TurtleToken(), t.Predicate.TurtleToken(), t.Object.TurtleToken())
	}
	return sb.String()
}

// compact renders a value, shortening URIs to prefix:local form when a
// registered namespace matches and the local part is a safe name.
func (e *Exporter) compact(v value.Value) string {
	if !v.IsURI() {
		return v.TurtleToken()
	}
	uri := v.AsURI()
	best, bestStem := "", ""
	for prefix, stem := range e.prefixes {
		if strings.HasPrefix(uri, stem) && len(stem) > len(bestStem) {
			best, bestStem = prefix, stem
		}
	}
	if bestStem == "" {
		return v.TurtleToken()
	}
	local := uri[len(bestStem):]
	if local == "" || !safeLocalName(local) {
		return v.TurtleToken()
	}
	return best + ":" + local
}

func safeLocalName(s string) bool {
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
		default:
			return false
		}
	}
	return true
}
