// Package store is the in-memory model of the pm document store.
//
// A Store maps scope names to ordered lists of documents. A document is a
// Node: an ordered object whose entries are sentences. A sentence Value is a
// tagged variant, either a string leaf or a nested Node, so arrays, numbers,
// booleans and null cannot be represented at all and are rejected while
// decoding.
//
// Scope and key order is insertion order and survives every round trip, so
// exports, candidate lists and hashcodes are stable.
//
// The package is pure data: it never touches the disk. Parse and Marshal
// convert to and from JSON, ParseYAML and MarshalYAML to and from YAML, and
// Validate checks the extra invariants an imported store must satisfy.
package store
