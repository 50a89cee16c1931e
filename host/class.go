package host

import (
	"strings"

	"github.com/c360studio/plughost/value"
	"github.com/c360studio/plughost/vocabulary"
)

// PluginClass is a read-only node in the plugin class tree. The root class
// (lv2:Plugin) has no parent. The tree is rebuilt when a load completes and
// is frozen between loads.
type PluginClass struct {
	w         *World
	uri       string
	parentURI string // empty for the root class
	label     string
}

// URI returns the class URI.
func (c *PluginClass) URI() string {
	c.w.ensureOpen()
	return c.uri
}

// ParentURI returns the parent class URI, or "" for the root class.
func (c *PluginClass) ParentURI() string {
	c.w.ensureOpen()
	return c.parentURI
}

// Label returns the human-readable class label.
func (c *PluginClass) Label() string {
	c.w.ensureOpen()
	return c.label
}

// Children returns the classes whose parent link points at this class, in
// discovery order.
func (c *PluginClass) Children() []*PluginClass {
	c.w.ensureOpen()
	c.w.mu.RLock()
	defer c.w.mu.RUnlock()
	var out []*PluginClass
	for _, uri := range c.w.classOrder {
		child := c.w.classes[uri]
		if child.parentURI == c.uri {
			out = append(out, child)
		}
	}
	return out
}

// PluginClassRoot returns the root of the class tree.
func (w *World) PluginClassRoot() *PluginClass {
	w.ensureOpen()
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.rootClass
}

// PluginClasses returns every known plugin class, root first, then in
// discovery order.
func (w *World) PluginClasses() []*PluginClass {
	w.ensureOpen()
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]*PluginClass, 0, len(w.classOrder))
	for _, uri := range w.classOrder {
		out = append(out, w.classes[uri])
	}
	return out
}

// PluginClassByURI returns the class with the given URI.
func (w *World) PluginClassByURI(uri string) (*PluginClass, bool) {
	w.ensureOpen()
	w.mu.RLock()
	defer w.mu.RUnlock()
	c, ok := w.classes[uri]
	return c, ok
}

// rebuildClassTree derives the class tree from rdfs:subClassOf assertions.
// Only classes whose ancestor chain reaches the root plugin class are kept.
// Caller holds w.mu.
func (w *World) rebuildClassTree() {
	parents := make(map[string]string)
	var order []string
	it := w.graph.Match(value.Value{}, value.NewURI(vocabulary.PredSubClassOf), value.Value{})
	for t, ok := it.Next(); ok; t, ok = it.Next() {
		if !t.Subject.IsURI() || !t.Object.IsURI() {
			continue
		}
		sub := t.Subject.AsURI()
		if _, seen := parents[sub]; !seen {
			parents[sub] = t.Object.AsURI()
			order = append(order, sub)
		}
	}

	// reaches reports whether the ancestor chain of uri ends at the root.
	reachable := map[string]bool{vocabulary.ClassPlugin: true}
	var reaches func(uri string, seen map[string]bool) bool
	reaches = func(uri string, seen map[string]bool) bool {
		if r, ok := reachable[uri]; ok {
			return r
		}
		if seen[uri] {
			return false // cycle
		}
		seen[uri] = true
		parent, ok := parents[uri]
		if !ok {
			reachable[uri] = false
			return false
		}
		r := reaches(parent, seen)
		reachable[uri] = r
		return r
	}

	classes := map[string]*PluginClass{vocabulary.ClassPlugin: w.rootClass}
	classOrder := []string{vocabulary.ClassPlugin}
	for _, uri := range order {
		if !reaches(uri, map[string]bool{}) {
			continue
		}
		classes[uri] = &PluginClass{
			w:         w,
			uri:       uri,
			parentURI: parents[uri],
			label:     w.classLabel(uri),
		}
		classOrder = append(classOrder, uri)
	}
	w.classes = classes
	w.classOrder = classOrder
}

// classLabel returns the rdfs:label for a class, falling back to the local
// name of its URI. Caller holds w.mu.
func (w *World) classLabel(uri string) string {
	for _, o := range w.graph.Objects(value.NewURI(uri), value.NewURI(vocabulary.PredLabel)) {
		if o.IsString() {
			return o.AsString()
		}
	}
	if i := strings.LastIndexAny(uri, "#/"); i >= 0 && i+1 < len(uri) {
		return uri[i+1:]
	}
	return uri
}
