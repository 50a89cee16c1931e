package host

import (
	"context"
	"math"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/c360studio/plughost/value"
	"github.com/c360studio/plughost/vocabulary"
)

// Plugin is the lazily materialized metadata cache for one discovered
// plugin. Manifest-level facts (URI, bundle, data file pointers) are known
// at discovery; everything else is pulled from the plugin's data files on
// first query and cached. The cache is computed at most once per Plugin;
// language filtering applies per query, not at materialization.
type Plugin struct {
	w         *World
	uri       value.Value
	bundleURI string
	dataURIs  []string

	once    sync.Once
	invalid atomic.Bool

	// Cached after materialization.
	ports        []*Port
	required     []value.Value
	optional     []value.Value
	authorName   string
	authorEmail  string
	authorHome   string
	latencyPort  int
	hasLatency   bool
	uis          []*UI
}

// URI returns the plugin URI.
func (p *Plugin) URI() value.Value {
	p.w.ensureOpen()
	return p.uri
}

// BundleURI returns the URI of the bundle the plugin was discovered in.
func (p *Plugin) BundleURI() string {
	p.w.ensureOpen()
	return p.bundleURI
}

// DataURIs returns the URIs of the data files describing the plugin.
func (p *Plugin) DataURIs() []string {
	p.w.ensureOpen()
	return append([]string(nil), p.dataURIs...)
}

// materialize pulls the plugin's data file triples into the store and
// populates the cache. It runs at most once; concurrent first queries wait
// for the single computation.
func (p *Plugin) materialize() {
	p.once.Do(func() {
		w := p.w
		w.mu.Lock()
		defer w.mu.Unlock()

		ctx := context.Background()
		for _, fileURI := range p.dataURIs {
			if w.source == nil {
				break
			}
			triples, err := w.source.DataFile(ctx, fileURI)
			if err != nil {
				w.warn(p.bundleURI, "unreadable data file", err)
				continue
			}
			w.ingest(p.bundleURI, triples)
		}
		w.metrics.lazyLoads.Inc()

		p.buildPorts()
		p.buildFeatures()
		p.buildAuthor()
		p.buildUIs()

		if !p.portSymbolsValid() {
			p.invalid.Store(true)
			w.logger.Warn("plugin failed validity check", "plugin", p.uri.AsURI())
		}
		w.logger.Debug("plugin materialized",
			"plugin", p.uri.AsURI(), "ports", len(p.ports))
	})
}

// buildPorts constructs the port list from lv2:port assertions, ordered by
// lv2:index. Caller holds w.mu.
func (p *Plugin) buildPorts() {
	nodes := p.w.graph.Objects(p.uri, value.NewURI(vocabulary.PredPort))
	for _, node := range nodes {
		if !node.IsBlank() && !node.IsURI() {
			continue
		}
		port := &Port{plugin: p, node: node, index: -1}
		for _, o := range p.w.graph.Objects(node, value.NewURI(vocabulary.PredIndex)) {
			if o.IsInt() {
				port.index = int(o.AsInt())
				break
			}
		}
		for _, o := range p.w.graph.Objects(node, value.NewURI(vocabulary.PredSymbol)) {
			if o.IsString() {
				port.symbol = o.AsString()
				break
			}
		}
		for _, o := range p.w.graph.Objects(node, value.NewURI(vocabulary.PredType)) {
			if o.IsURI() {
				port.classes = append(port.classes, o)
			}
		}
		p.ports = append(p.ports, port)
	}
	sort.SliceStable(p.ports, func(i, j int) bool {
		return p.ports[i].index < p.ports[j].index
	})
	latency := value.NewURI(vocabulary.PredReportsLatency)
	for _, port := range p.ports {
		for _, o := range p.w.graph.Objects(port.node, value.NewURI(vocabulary.PredPortProperty)) {
			if o.Equals(latency) {
				p.hasLatency = true
				p.latencyPort = port.index
			}
		}
		if p.hasLatency {
			break
		}
	}
}

// buildFeatures caches the required and optional feature lists. Caller
// holds w.mu.
func (p *Plugin) buildFeatures() {
	for _, o := range p.w.graph.Objects(p.uri, value.NewURI(vocabulary.PredRequiredFeature)) {
		if o.IsURI() {
			p.required = append(p.required, o)
		}
	}
	for _, o := range p.w.graph.Objects(p.uri, value.NewURI(vocabulary.PredOptionalFeature)) {
		if o.IsURI() {
			p.optional = append(p.optional, o)
		}
	}
}

// buildAuthor resolves doap:maintainer contact details. Caller holds w.mu.
func (p *Plugin) buildAuthor() {
	maintainers := p.w.graph.Objects(p.uri, value.NewURI(vocabulary.PredMaintainer))
	if len(maintainers) == 0 {
		return
	}
	node := maintainers[0]
	get := func(pred string) string {
		for _, o := range p.w.graph.Objects(node, value.NewURI(pred)) {
			switch {
			case o.IsString():
				return o.AsString()
			case o.IsURI():
				return o.AsURI()
			}
		}
		return ""
	}
	p.authorName = get(vocabulary.PredFOAFName)
	p.authorEmail = get(vocabulary.PredFOAFMbox)
	p.authorHome = get(vocabulary.PredFOAFHomepage)
}

// buildUIs resolves the plugin's declared UIs. Caller holds w.mu.
func (p *Plugin) buildUIs() {
	for _, node := range p.w.graph.Objects(p.uri, value.NewURI(vocabulary.PredUI)) {
		if !node.IsURI() {
			continue
		}
		ui := &UI{w: p.w, uri: node, bundleURI: p.bundleURI}
		for _, o := range p.w.graph.Objects(node, value.NewURI(vocabulary.PredType)) {
			if o.IsURI() {
				ui.classes = append(ui.classes, o)
			}
		}
		for _, o := range p.w.graph.Objects(node, value.NewURI(vocabulary.PredUIBinary)) {
			if o.IsURI() {
				ui.binaryURI = o.AsURI()
				break
			}
		}
		p.uis = append(p.uis, ui)
	}
}

// portSymbolsValid reports whether every port carries a unique, non-empty
// symbol. Plugins failing this are excluded from World.Plugins.
func (p *Plugin) portSymbolsValid() bool {
	seen := make(map[string]bool, len(p.ports))
	for _, port := range p.ports {
		if port.symbol == "" || seen[port.symbol] {
			return false
		}
		seen[port.symbol] = true
	}
	return true
}

// Verify runs the strict validity check: the plugin has a name, every port
// has a class and a unique non-empty symbol, and the declared required
// features appear in the supported feature list. It never mutates cached
// state beyond triggering the one-time materialization.
func (p *Plugin) Verify() bool {
	p.w.ensureOpen()
	p.materialize()
	if _, ok := p.Name(); !ok {
		return false
	}
	if !p.portSymbolsValid() {
		return false
	}
	for _, port := range p.ports {
		if len(port.classes) == 0 {
			return false
		}
	}
	supported := make(map[string]bool)
	for _, f := range p.SupportedFeatures() {
		supported[f.AsURI()] = true
	}
	for _, f := range p.required {
		if !supported[f.AsURI()] {
			return false
		}
	}
	return true
}

// Name returns the plugin's doap:name, language-filtered.
func (p *Plugin) Name() (string, bool) {
	for _, v := range p.Value(value.NewURI(vocabulary.PredName)) {
		if v.IsString() {
			return v.AsString(), true
		}
	}
	return "", false
}

// Value queries the objects of (plugin, pred, ?), filtered by the language
// policy in effect now. Blank node objects are excluded: they are internal
// structure, not presentable results. The returned slice is a fresh copy
// owned by the caller.
func (p *Plugin) Value(pred value.Value) []value.Value {
	p.w.ensureOpen()
	p.materialize()
	return p.valueForSubject(p.uri, pred)
}

// ValueForSubject is Value with an explicit subject, for querying nodes
// related to the plugin (presets, extensions) with the same filtering.
func (p *Plugin) ValueForSubject(subj, pred value.Value) []value.Value {
	p.w.ensureOpen()
	p.materialize()
	return p.valueForSubject(subj, pred)
}

func (p *Plugin) valueForSubject(subj, pred value.Value) []value.Value {
	p.w.mu.RLock()
	objects := p.w.graph.Objects(subj, pred)
	p.w.mu.RUnlock()
	p.w.metrics.queries.Inc()

	var out []value.Value
	for _, o := range objects {
		if o.IsBlank() {
			continue
		}
		out = append(out, o)
	}
	return filterValues(out, p.w.filterPolicySnapshot())
}

// NumPorts returns the number of ports.
func (p *Plugin) NumPorts() int {
	p.w.ensureOpen()
	p.materialize()
	return len(p.ports)
}

// Ports returns the port list in index order.
func (p *Plugin) Ports() []*Port {
	p.w.ensureOpen()
	p.materialize()
	return append([]*Port(nil), p.ports...)
}

// PortByIndex returns the port with the given index, or nil.
func (p *Plugin) PortByIndex(index int) *Port {
	p.w.ensureOpen()
	p.materialize()
	for _, port := range p.ports {
		if port.index == index {
			return port
		}
	}
	return nil
}

// PortBySymbol returns the port with the given symbol, or nil.
func (p *Plugin) PortBySymbol(symbol string) *Port {
	p.w.ensureOpen()
	p.materialize()
	for _, port := range p.ports {
		if port.symbol == symbol {
			return port
		}
	}
	return nil
}

// NumPortsOfClass counts the ports whose class set contains every given
// class (AND semantics across filters).
func (p *Plugin) NumPortsOfClass(classes ...value.Value) int {
	p.w.ensureOpen()
	p.materialize()
	n := 0
	for _, port := range p.ports {
		if port.isAll(classes) {
			n++
		}
	}
	return n
}

// PortRangesFloat fills min, max and def with the numeric port ranges, in
// port index order. Each non-nil slice must be sized to the plugin's port
// count; a mismatch is a caller contract violation and panics. Entries for
// ports without a numeric value are set to NaN.
func (p *Plugin) PortRangesFloat(min, max, def []float64) {
	p.w.ensureOpen()
	p.materialize()
	for _, dst := range [][]float64{min, max, def} {
		if dst != nil && len(dst) != len(p.ports) {
			panic("plughost: PortRangesFloat slice length does not match port count")
		}
	}
	fill := func(dst []float64, pick func(*Port) value.Value) {
		if dst == nil {
			return
		}
		for i, port := range p.ports {
			if f, ok := pick(port).Float(); ok {
				dst[i] = f
			} else {
				dst[i] = math.NaN()
			}
		}
	}
	fill(min, func(pt *Port) value.Value { _, v, _ := pt.Range(); return v })
	fill(max, func(pt *Port) value.Value { _, _, v := pt.Range(); return v })
	fill(def, func(pt *Port) value.Value { v, _, _ := pt.Range(); return v })
}

// HasLatency reports whether any port reports latency.
func (p *Plugin) HasLatency() bool {
	p.w.ensureOpen()
	p.materialize()
	return p.hasLatency
}

// LatencyPortIndex returns the index of the latency reporting port. The
// caller must check HasLatency first; calling this without a latency port
// is a contract violation and panics.
func (p *Plugin) LatencyPortIndex() int {
	p.w.ensureOpen()
	p.materialize()
	if !p.hasLatency {
		panic("plughost: LatencyPortIndex called on plugin without latency port")
	}
	return p.latencyPort
}

// RequiredFeatures returns the features the plugin requires to instantiate.
func (p *Plugin) RequiredFeatures() []value.Value {
	p.w.ensureOpen()
	p.materialize()
	return append([]value.Value(nil), p.required...)
}

// OptionalFeatures returns the features the plugin can use but does not need.
func (p *Plugin) OptionalFeatures() []value.Value {
	p.w.ensureOpen()
	p.materialize()
	return append([]value.Value(nil), p.optional...)
}

// SupportedFeatures returns the union of required and optional features.
func (p *Plugin) SupportedFeatures() []value.Value {
	p.w.ensureOpen()
	p.materialize()
	out := make([]value.Value, 0, len(p.required)+len(p.optional))
	out = append(out, p.required...)
	out = append(out, p.optional...)
	return out
}

// HasFeature reports whether the plugin requires or optionally supports
// the given feature URI.
func (p *Plugin) HasFeature(feature value.Value) bool {
	for _, f := range p.SupportedFeatures() {
		if f.Equals(feature) {
			return true
		}
	}
	return false
}

// IsReplaced reports whether another discovered plugin declares that it
// replaces this one.
func (p *Plugin) IsReplaced() bool {
	p.w.ensureOpen()
	p.materialize()
	p.w.mu.RLock()
	defer p.w.mu.RUnlock()
	return p.w.graph.Has(value.Value{}, value.NewURI(vocabulary.PredReplaces), p.uri)
}

// Class returns the plugin's most specific class present in the class tree,
// falling back to the root class.
func (p *Plugin) Class() *PluginClass {
	p.w.ensureOpen()
	p.materialize()
	p.w.mu.RLock()
	defer p.w.mu.RUnlock()
	for _, o := range p.w.graph.Objects(p.uri, value.NewURI(vocabulary.PredType)) {
		if !o.IsURI() || o.AsURI() == vocabulary.ClassPlugin {
			continue
		}
		if c, ok := p.w.classes[o.AsURI()]; ok {
			return c
		}
	}
	return p.w.rootClass
}

// AuthorName returns the plugin author's name.
func (p *Plugin) AuthorName() (string, bool) {
	p.w.ensureOpen()
	p.materialize()
	return p.authorName, p.authorName != ""
}

// AuthorEmail returns the plugin author's contact address.
func (p *Plugin) AuthorEmail() (string, bool) {
	p.w.ensureOpen()
	p.materialize()
	return p.authorEmail, p.authorEmail != ""
}

// AuthorHomepage returns the plugin author's homepage.
func (p *Plugin) AuthorHomepage() (string, bool) {
	p.w.ensureOpen()
	p.materialize()
	return p.authorHome, p.authorHome != ""
}

// LibraryURI returns the lv2:binary shared library URI.
func (p *Plugin) LibraryURI() (string, bool) {
	p.w.ensureOpen()
	p.materialize()
	p.w.mu.RLock()
	defer p.w.mu.RUnlock()
	for _, o := range p.w.graph.Objects(p.uri, value.NewURI(vocabulary.PredBinary)) {
		if o.IsURI() {
			return o.AsURI(), true
		}
	}
	return "", false
}

// UIs returns the plugin's declared UIs.
func (p *Plugin) UIs() []*UI {
	p.w.ensureOpen()
	p.materialize()
	return append([]*UI(nil), p.uis...)
}

// UIByURI returns the plugin's UI with the given URI.
func (p *Plugin) UIByURI(uri string) (*UI, bool) {
	p.w.ensureOpen()
	p.materialize()
	for _, u := range p.uis {
		if u.uri.AsURI() == uri {
			return u, true
		}
	}
	return nil, false
}

// Instantiate creates a native instance of the plugin through the world's
// backend. The returned Instance has a lifetime independent of the World.
func (p *Plugin) Instantiate(ctx context.Context, sampleRate float64, features []string) (Instance, error) {
	p.w.ensureOpen()
	p.materialize()
	if p.w.backend == nil {
		return nil, ErrNoBackend
	}
	return p.w.backend.Instantiate(ctx, p, sampleRate, features)
}
