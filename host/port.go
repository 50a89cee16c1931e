package host

import (
	"math"
	"sort"

	"github.com/c360studio/plughost/value"
	"github.com/c360studio/plughost/vocabulary"
)

// Port is a read-only view of one plugin port. Ports are owned by exactly
// one Plugin and exist only after that plugin has materialized; their
// accessors answer pattern queries scoped to the port's graph node.
type Port struct {
	plugin *Plugin
	node   value.Value
	index  int
	symbol string
	classes []value.Value
}

// Index returns the port index. Indexes are dense, 0-based, and match the
// native ABI port ordering.
func (p *Port) Index() int {
	p.plugin.w.ensureOpen()
	return p.index
}

// Symbol returns the port symbol, unique within its plugin.
func (p *Port) Symbol() string {
	p.plugin.w.ensureOpen()
	return p.symbol
}

// Node returns the port's graph node, for hosts issuing their own queries.
func (p *Port) Node() value.Value {
	p.plugin.w.ensureOpen()
	return p.node
}

// Classes returns the port's type classes (direction and kind URIs).
func (p *Port) Classes() []value.Value {
	p.plugin.w.ensureOpen()
	return append([]value.Value(nil), p.classes...)
}

// IsA reports whether the port carries the given class.
func (p *Port) IsA(class value.Value) bool {
	p.plugin.w.ensureOpen()
	for _, c := range p.classes {
		if c.Equals(class) {
			return true
		}
	}
	return false
}

// isAll reports whether the port's class set is a superset of all filters.
func (p *Port) isAll(classes []value.Value) bool {
	for _, c := range classes {
		if !p.IsA(c) {
			return false
		}
	}
	return true
}

// Name returns the port's human-readable lv2:name, language-filtered.
func (p *Port) Name() (string, bool) {
	for _, v := range p.Value(value.NewURI(vocabulary.PredPortName)) {
		if v.IsString() {
			return v.AsString(), true
		}
	}
	return "", false
}

// Value queries the objects of (port-node, pred, ?) with language
// filtering, excluding blank nodes. The result is a caller-owned copy.
func (p *Port) Value(pred value.Value) []value.Value {
	p.plugin.w.ensureOpen()
	return p.plugin.valueForSubject(p.node, pred)
}

// Properties returns the port's lv2:portProperty URIs.
func (p *Port) Properties() []value.Value {
	p.plugin.w.ensureOpen()
	w := p.plugin.w
	w.mu.RLock()
	defer w.mu.RUnlock()
	var out []value.Value
	for _, o := range w.graph.Objects(p.node, value.NewURI(vocabulary.PredPortProperty)) {
		if o.IsURI() {
			out = append(out, o)
		}
	}
	return out
}

// HasProperty reports whether the port declares the given property.
func (p *Port) HasProperty(property value.Value) bool {
	for _, prop := range p.Properties() {
		if prop.Equals(property) {
			return true
		}
	}
	return false
}

// SupportsEvent reports whether an event port declares support for the
// given event type.
func (p *Port) SupportsEvent(eventType value.Value) bool {
	p.plugin.w.ensureOpen()
	w := p.plugin.w
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.graph.Has(p.node, value.NewURI(vocabulary.PredSupportsEvent), eventType)
}

// Range returns the port's default, minimum and maximum values. Absent
// values are zero Values; check with IsNil.
func (p *Port) Range() (def, min, max value.Value) {
	p.plugin.w.ensureOpen()
	w := p.plugin.w
	w.mu.RLock()
	defer w.mu.RUnlock()
	first := func(pred string) value.Value {
		for _, o := range w.graph.Objects(p.node, value.NewURI(pred)) {
			if o.IsLiteral() {
				return o
			}
		}
		return value.Value{}
	}
	return first(vocabulary.PredDefault), first(vocabulary.PredMinimum), first(vocabulary.PredMaximum)
}

// RangeFloat is Range projected onto float64, with NaN for absent or
// non-numeric values.
func (p *Port) RangeFloat() (def, min, max float64) {
	d, lo, hi := p.Range()
	conv := func(v value.Value) float64 {
		if f, ok := v.Float(); ok {
			return f
		}
		return math.NaN()
	}
	return conv(d), conv(lo), conv(hi)
}

// ScalePoint is a (label, value) pair describing one notable value of a
// control port.
type ScalePoint struct {
	label string
	val   value.Value
}

// Label returns the scale point label.
func (s ScalePoint) Label() string { return s.label }

// Value returns the scale point value.
func (s ScalePoint) Value() value.Value { return s.val }

// ScalePoints returns the port's scale points sorted by label. The slice
// and its contents are caller-owned copies.
func (p *Port) ScalePoints() []ScalePoint {
	p.plugin.w.ensureOpen()
	w := p.plugin.w
	w.mu.RLock()
	defer w.mu.RUnlock()
	var out []ScalePoint
	for _, node := range w.graph.Objects(p.node, value.NewURI(vocabulary.PredScalePoint)) {
		if !node.IsBlank() && !node.IsURI() {
			continue
		}
		sp := ScalePoint{}
		for _, o := range w.graph.Objects(node, value.NewURI(vocabulary.PredLabel)) {
			if o.IsString() {
				sp.label = o.AsString()
				break
			}
		}
		for _, o := range w.graph.Objects(node, value.NewURI(vocabulary.PredValue)) {
			if o.IsLiteral() {
				sp.val = o
				break
			}
		}
		out = append(out, sp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].label < out[j].label })
	return out
}
