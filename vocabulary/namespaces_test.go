package vocabulary

import (
	"errors"
	"testing"
)

func TestExpandBuiltins(t *testing.T) {
	tests := []struct {
		name  string
		qname string
		want  string
	}{
		{"lv2 class", "lv2:Plugin", "http://lv2plug.in/ns/lv2core#Plugin"},
		{"lv2 predicate", "lv2:port", "http://lv2plug.in/ns/lv2core#port"},
		{"rdf type", "rdf:type", "http://www.w3.org/1999/02/22-rdf-syntax-ns#type"},
		{"doap name", "doap:name", "http://usefulinc.com/ns/doap#name"},
		{"ui class", "ui:UI", "http://lv2plug.in/ns/extensions/ui#UI"},
		{"empty local part", "lv2:", "http://lv2plug.in/ns/lv2core#"},
	}

	tbl := NewTable()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := tbl.Expand(tt.qname)
			if err != nil {
				t.Fatalf("Expand(%q) error: %v", tt.qname, err)
			}
			if got := v.AsURI(); got != tt.want {
				t.Errorf("Expand(%q) = %q, want %q", tt.qname, got, tt.want)
			}
		})
	}
}

func TestExpandUnknownPrefix(t *testing.T) {
	tbl := NewTable()
	_, err := tbl.Expand("nosuch:thing")
	if !errors.Is(err, ErrUnknownPrefix) {
		t.Errorf("Expand with unknown prefix: got %v, want ErrUnknownPrefix", err)
	}
}

func TestExpandMalformed(t *testing.T) {
	tbl := NewTable()
	_, err := tbl.Expand("no-colon-here")
	if !errors.Is(err, ErrBadQName) {
		t.Errorf("Expand with malformed term: got %v, want ErrBadQName", err)
	}
}

func TestRegisterShadowsAndExtends(t *testing.T) {
	tbl := NewTable()
	tbl.Register("eg", "http://example.org/ns#")

	v, err := tbl.Expand("eg:thing")
	if err != nil {
		t.Fatalf("Expand after Register: %v", err)
	}
	if got := v.AsURI(); got != "http://example.org/ns#thing" {
		t.Errorf("Expand(eg:thing) = %q", got)
	}

	// Registered namespaces shadow built-ins without mutating other tables.
	tbl.Register("lv2", "http://example.org/other#")
	v, _ = tbl.Expand("lv2:Plugin")
	if got := v.AsURI(); got != "http://example.org/other#Plugin" {
		t.Errorf("shadowed Expand(lv2:Plugin) = %q", got)
	}

	fresh := NewTable()
	v, _ = fresh.Expand("lv2:Plugin")
	if got := v.AsURI(); got != ClassPlugin {
		t.Errorf("fresh table affected by Register: %q", got)
	}
}
