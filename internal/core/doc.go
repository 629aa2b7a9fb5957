// Package core orchestrates the schema engine over the record store.
//
// This package is the entry point for everything the web layer does:
// it loads the three registry documents, assembles the maintenance
// schema, computes vehicle health, validates and persists registry
// edits, and renders the fleet export. All domain rules live in
// internal/schema; core wires them to persisted state.
//
// # Registry loading
//
// The three registries (exclusions, aliases, categories) load per
// operation, never as process-wide state. A missing document or an
// unreachable store degrades that registry to its hardcoded default
// with a warning log; callers never see an error for a registry load.
// The raw column listing has no such fallback: if the vehicle table
// cannot be read there is no schema to assemble, and the operation
// fails outright.
//
// # Error Handling
//
// Technical errors are mapped to user-friendly messages using
// [MapError]. Each category has a code range for support reference:
//
//   - DB001-DB004: record store errors (connection, timeout)
//   - SCH001-SCH004: schema assembly and vehicle lookup errors
//   - VAL001-VAL004: validation errors on registry and service edits
package core
