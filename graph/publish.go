// Package graph publishes discovered plugin metadata to a knowledge graph
// over NATS, so fleet-wide tooling can query what is installed where.
package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/c360studio/semstreams/message"
	"github.com/c360studio/semstreams/natsclient"

	"github.com/c360studio/plughost/host"
)

// GraphIngestSubject is the NATS subject for graph entity ingestion.
const GraphIngestSubject = "graph.ingest.entity"

// Dotted predicates for plugin entities, three-level notation for NATS
// wildcard queries.
const (
	// PluginURI is the plugin's LV2 URI.
	PluginURI = "audio.plugin.uri"

	// PluginName is the plugin's human-readable name.
	PluginName = "audio.plugin.name"

	// PluginBundle is the URI of the bundle the plugin lives in.
	PluginBundle = "audio.plugin.bundle"

	// PluginClass is the plugin's most specific class URI.
	PluginClass = "audio.plugin.class"

	// PluginPorts is the plugin's port count.
	PluginPorts = "audio.plugin.ports"

	// PluginLatent reports whether the plugin declares a latency port.
	PluginLatent = "audio.plugin.latent"

	// PluginAuthor is the plugin author's name.
	PluginAuthor = "audio.plugin.author"
)

// publishSource identifies this library as the assertion source.
const publishSource = "plughost.discovery"

// EntityIngestMessage is the wire format for graph ingestion, matching the
// format used by other graph components.
type EntityIngestMessage struct {
	ID        string           `json:"id"`
	Triples   []message.Triple `json:"triples"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// PublishPlugin publishes one discovered plugin to the knowledge graph.
// A nil client is a no-op, so hosts without NATS degrade gracefully.
func PublishPlugin(ctx context.Context, nc *natsclient.Client, p *host.Plugin) error {
	if nc == nil {
		return nil
	}

	entityID := PluginEntityID(p.URI().AsURI())
	now := time.Now()
	assert := func(predicate string, object any) message.Triple {
		return message.Triple{
			Subject:    entityID,
			Predicate:  predicate,
			Object:     object,
			Source:     publishSource,
			Timestamp:  now,
			Confidence: 1.0,
		}
	}

	triples := []message.Triple{
		assert(PluginURI, p.URI().AsURI()),
		assert(PluginBundle, p.BundleURI()),
		assert(PluginClass, p.Class().URI()),
		assert(PluginPorts, p.NumPorts()),
		assert(PluginLatent, p.HasLatency()),
	}
	if name, ok := p.Name(); ok {
		triples = append(triples, assert(PluginName, name))
	}
	if author, ok := p.AuthorName(); ok {
		triples = append(triples, assert(PluginAuthor, author))
	}

	msg := EntityIngestMessage{
		ID:        entityID,
		Triples:   triples,
		UpdatedAt: now,
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal plugin entity: %w", err)
	}
	if err := nc.PublishToStream(ctx, GraphIngestSubject, data); err != nil {
		return fmt.Errorf("publish plugin entity: %w", err)
	}
	return nil
}

// PublishAll publishes every valid plugin in the world. The first publish
// failure stops the walk and is returned.
func PublishAll(ctx context.Context, nc *natsclient.Client, w *host.World) error {
	for _, p := range w.Plugins() {
		if err := PublishPlugin(ctx, nc, p); err != nil {
			return err
		}
	}
	return nil
}

// PluginEntityID derives a stable graph entity ID from a plugin URI.
// Format: plughost.local.audio.lv2.plugin.<slug>
func PluginEntityID(pluginURI string) string {
	return fmt.Sprintf("plughost.local.audio.lv2.plugin.%s", slugify(pluginURI))
}

// slugify flattens a URI into an identifier safe for dotted entity IDs.
func slugify(uri string) string {
	uri = strings.TrimPrefix(uri, "http://")
	uri = strings.TrimPrefix(uri, "https://")
	var sb strings.Builder
	for _, r := range uri {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			sb.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			sb.WriteRune(r + ('a' - 'A'))
		default:
			sb.WriteRune('_')
		}
	}
	return sb.String()
}
