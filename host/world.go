// Package host implements the metadata world: bundle ingestion, the plugin
// set, the plugin class tree, and the query surfaces over the triple store.
//
// A World has a single logical owner. LoadBundle, LoadAll, SetOption and
// Close must be serialized against each other and against any query that may
// trigger lazy plugin materialization; read-only queries against already
// materialized plugins may run concurrently. The world's own mutex enforces
// this, but hosts should not rely on it for ordering guarantees.
//
// Handles obtained from a World (Plugin, Port, PluginClass, UI) are views
// into the world's store. Closing the World invalidates all of them: any
// later use panics rather than reading freed state.
package host

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/c360studio/plughost/bundle"
	"github.com/c360studio/plughost/store"
	"github.com/c360studio/plughost/value"
	"github.com/c360studio/plughost/vocabulary"
)

// Recognized SetOption keys. Unrecognized keys are ignored.
const (
	// OptionFilterLanguage toggles language-tag filtering of literal query
	// results. Boolean valued.
	OptionFilterLanguage = "filter-language"

	// OptionDynManifest toggles invocation of the dynamic manifest hook at
	// bundle load time. Boolean valued.
	OptionDynManifest = "dynamic-manifest"
)

type worldState int

const (
	stateEmpty worldState = iota
	stateLoading
	stateReady
	stateClosed
)

// Options is the world configuration snapshot.
//
// FilterLanguage and LanguagePreferences drive literal filtering. Changing
// them after load affects subsequent queries only: a plugin's cached fields
// keep the policy under which they were first computed.
type Options struct {
	FilterLanguage      bool
	DynManifest         bool
	LanguagePreferences []string
}

// Warning records a non-fatal ingestion problem.
type Warning struct {
	Bundle  string
	Message string
	Err     error
}

// Conflict records a plugin URI discovered in more than one bundle. The
// first discovery wins; later ones are dropped.
type Conflict struct {
	PluginURI     string
	KeptBundle    string
	DroppedBundle string
}

// World owns the triple store, the namespace table, the discovered bundle
// and plugin sets, the plugin class tree, and the configuration options.
type World struct {
	mu     sync.RWMutex
	closed atomic.Bool
	state  worldState

	logger  *slog.Logger
	metrics *worldMetrics

	ns      *vocabulary.Table
	graph   *store.Store
	source  bundle.Source
	dyn     bundle.DynManifest
	backend Backend
	opts    Options

	bundles     map[string]bool
	plugins     map[string]*Plugin
	pluginOrder []string

	classes    map[string]*PluginClass
	classOrder []string
	rootClass  *PluginClass

	warnings  []Warning
	conflicts []Conflict
}

// Option configures a World at construction time.
type Option func(*World)

// WithSource sets the bundle source used by LoadAll and LoadBundle.
func WithSource(src bundle.Source) Option {
	return func(w *World) { w.source = src }
}

// WithLogger sets the structured logger for ingestion diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(w *World) { w.logger = l }
}

// WithDynManifest installs the dynamic manifest hook. It only runs when the
// corresponding option is enabled.
func WithDynManifest(h bundle.DynManifest) Option {
	return func(w *World) { w.dyn = h }
}

// WithBackend installs the native instantiation backend.
func WithBackend(b Backend) Option {
	return func(w *World) { w.backend = b }
}

// WithOptions sets the initial option values.
func WithOptions(o Options) Option {
	return func(w *World) { w.opts = o }
}

// New creates an empty World.
func New(opts ...Option) *World {
	w := &World{
		logger:  slog.Default(),
		ns:      vocabulary.NewTable(),
		graph:   store.New(),
		bundles: make(map[string]bool),
		plugins: make(map[string]*Plugin),
		classes: make(map[string]*PluginClass),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.metrics == nil {
		w.metrics = newWorldMetrics(nil)
	}
	w.rootClass = &PluginClass{w: w, uri: vocabulary.ClassPlugin, label: "Plugin"}
	w.classes[vocabulary.ClassPlugin] = w.rootClass
	w.classOrder = []string{vocabulary.ClassPlugin}
	return w
}

// ensureOpen panics when the world has been closed. Every handle accessor
// routes through it so that use after teardown fails loudly instead of
// reading invalidated state.
func (w *World) ensureOpen() {
	if w.closed.Load() {
		panic("plughost: use of closed world")
	}
}

// Close tears the world down. All Plugin, Port, PluginClass and UI handles
// obtained from it become invalid; using one afterwards panics. Close is
// terminal and idempotent.
func (w *World) Close() {
	if w.closed.Swap(true) {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.state = stateClosed
	w.graph = nil
	w.plugins = nil
	w.pluginOrder = nil
	w.classes = nil
	w.rootClass = nil
}

// Namespaces returns the world's namespace table.
func (w *World) Namespaces() *vocabulary.Table {
	w.ensureOpen()
	return w.ns
}

// SetOption sets a recognized configuration option. Unrecognized keys are
// ignored without error. Options affect bundles loaded and queries issued
// after the call; cached plugin fields are not recomputed.
func (w *World) SetOption(key string, v value.Value) {
	w.ensureOpen()
	w.mu.Lock()
	defer w.mu.Unlock()
	switch key {
	case OptionFilterLanguage:
		if v.IsBool() {
			w.opts.FilterLanguage = v.AsBool()
		}
	case OptionDynManifest:
		if v.IsBool() {
			w.opts.DynManifest = v.AsBool()
		}
	default:
		w.logger.Debug("ignoring unknown option", "key", key)
	}
}

// SetLanguagePreferences sets the ordered accepted-language list used by
// literal filtering.
func (w *World) SetLanguagePreferences(tags []string) {
	w.ensureOpen()
	w.mu.Lock()
	defer w.mu.Unlock()
	w.opts.LanguagePreferences = append([]string(nil), tags...)
}

// LoadBundle ingests one bundle. It is idempotent per bundle URI: loading
// the same bundle twice leaves the store and plugin set unchanged.
//
// Manifest triples are ingested eagerly; data files referenced via
// rdfs:seeAlso are deferred until the owning plugin is first queried.
// Malformed or unreadable bundle data is recorded as a warning and skipped;
// LoadBundle only returns an error for host misconfiguration.
func (w *World) LoadBundle(ctx context.Context, bundleURI string) error {
	w.ensureOpen()
	if w.source == nil {
		return fmt.Errorf("load bundle %s: no bundle source configured", bundleURI)
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.bundles[bundleURI] {
		return nil
	}
	w.state = stateLoading
	w.bundles[bundleURI] = true

	var added []store.Triple
	manifest, err := w.source.Manifest(ctx, bundleURI)
	if err != nil {
		w.warn(bundleURI, "unreadable manifest", err)
	} else {
		added = append(added, w.ingest(bundleURI, manifest)...)
	}

	if w.opts.DynManifest && w.dyn != nil {
		extra, err := w.dyn(ctx, bundleURI)
		if err != nil {
			// Hook failures mean "no additional triples".
			w.warn(bundleURI, "dynamic manifest hook failed", err)
		} else {
			added = append(added, w.ingest(bundleURI, extra)...)
		}
	}

	w.discoverPlugins(bundleURI, added)
	w.rebuildClassTree()
	w.state = stateReady
	w.metrics.bundlesLoaded.Inc()
	w.logger.Debug("bundle loaded", "bundle", bundleURI, "triples", w.graph.Size())
	return nil
}

// LoadAll enumerates all candidate bundle locations from the source and
// loads each. Per-bundle problems are recorded as warnings; only a failure
// to enumerate locations is returned.
func (w *World) LoadAll(ctx context.Context) error {
	w.ensureOpen()
	if w.source == nil {
		return fmt.Errorf("load all: no bundle source configured")
	}
	locations, err := w.source.Locations(ctx)
	if err != nil {
		return fmt.Errorf("enumerate bundles: %w", err)
	}
	for _, loc := range locations {
		if err := w.LoadBundle(ctx, loc); err != nil {
			return err
		}
	}
	return nil
}

// ingest appends triples to the store, skipping invalid ones with a
// warning, and returns the triples actually added. Caller holds w.mu.
func (w *World) ingest(bundleURI string, triples []store.Triple) []store.Triple {
	var added []store.Triple
	for _, t := range triples {
		if err := w.graph.Add(t); err != nil {
			w.warn(bundleURI, "invalid triple", err)
			continue
		}
		added = append(added, t)
		w.metrics.triplesIngested.Inc()
	}
	return added
}

// discoverPlugins registers plugins announced by this bundle's triples.
// Duplicate plugin URIs across bundles: the first discovery wins and the
// later one is recorded as a conflict. Caller holds w.mu.
func (w *World) discoverPlugins(bundleURI string, added []store.Triple) {
	typePred := value.NewURI(vocabulary.PredType)
	pluginClass := value.NewURI(vocabulary.ClassPlugin)
	for _, t := range added {
		if !t.Predicate.Equals(typePred) || !t.Object.Equals(pluginClass) {
			continue
		}
		subj := t.Subject
		if !subj.IsURI() {
			continue
		}
		uri := subj.AsURI()
		if existing, ok := w.plugins[uri]; ok {
			if existing.bundleURI != bundleURI {
				w.conflicts = append(w.conflicts, Conflict{
					PluginURI:     uri,
					KeptBundle:    existing.bundleURI,
					DroppedBundle: bundleURI,
				})
				w.logger.Warn("duplicate plugin dropped",
					"plugin", uri, "kept", existing.bundleURI, "dropped", bundleURI)
			}
			continue
		}
		var dataURIs []string
		for _, o := range w.graph.Objects(subj, value.NewURI(vocabulary.PredSeeAlso)) {
			if o.IsURI() {
				dataURIs = append(dataURIs, o.AsURI())
			}
		}
		p := &Plugin{
			w:         w,
			uri:       subj,
			bundleURI: bundleURI,
			dataURIs:  dataURIs,
		}
		w.plugins[uri] = p
		w.pluginOrder = append(w.pluginOrder, uri)
		w.metrics.pluginsDiscovered.Inc()
	}
}

func (w *World) warn(bundleURI, msg string, err error) {
	w.warnings = append(w.warnings, Warning{Bundle: bundleURI, Message: msg, Err: err})
	w.metrics.ingestWarnings.Inc()
	w.logger.Warn(msg, "bundle", bundleURI, "err", err)
}

// Plugins returns the discovered plugins that pass the discovery-time
// validity check, in discovery order. Plugins later found to declare
// duplicate or empty port symbols are excluded from subsequent calls.
func (w *World) Plugins() []*Plugin {
	w.ensureOpen()
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]*Plugin, 0, len(w.pluginOrder))
	for _, uri := range w.pluginOrder {
		p := w.plugins[uri]
		if p.invalid.Load() {
			continue
		}
		out = append(out, p)
	}
	return out
}

// PluginByURI returns the plugin with the given URI.
func (w *World) PluginByURI(uri string) (*Plugin, bool) {
	w.ensureOpen()
	w.mu.RLock()
	defer w.mu.RUnlock()
	p, ok := w.plugins[uri]
	if !ok || p.invalid.Load() {
		return nil, false
	}
	return p, true
}

// Warnings returns the ingestion warnings recorded so far.
func (w *World) Warnings() []Warning {
	w.ensureOpen()
	w.mu.RLock()
	defer w.mu.RUnlock()
	return append([]Warning(nil), w.warnings...)
}

// Conflicts returns the duplicate-plugin conflicts recorded so far.
func (w *World) Conflicts() []Conflict {
	w.ensureOpen()
	w.mu.RLock()
	defer w.mu.RUnlock()
	return append([]Conflict(nil), w.conflicts...)
}

// Store exposes the world's triple store for read-only queries. Mutating it
// directly is unsupported.
func (w *World) Store() *store.Store {
	w.ensureOpen()
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.graph
}

// filterPolicySnapshot captures the current filtering options. Caller need
// not hold w.mu.
func (w *World) filterPolicySnapshot() filterPolicy {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return newFilterPolicy(w.opts.FilterLanguage, w.opts.LanguagePreferences)
}
