// Package vocabulary defines the IRIs used by plugin metadata graphs and the
// prefix table that expands compact "prefix:local" terms into full URIs.
//
// The LV2 core namespace and the standard companion vocabularies (rdf, rdfs,
// doap, foaf, ui, event, midi, dynmanifest) are always present in the
// built-in table. Namespaces declared by ingested metadata are layered on
// top via Table.Register.
//
// IRI constants follow the usual grouping:
//   - Class* constants name plugin and UI classes
//   - PortClass* constants name port type classes
//   - Pred* constants name predicates
//
// Expansion of an unknown prefix is an ordinary error (ErrUnknownPrefix),
// never a panic: metadata files routinely reference vocabularies the host
// has no interest in.
package vocabulary
