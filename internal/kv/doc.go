// Package kv is the persistent key-value store behind every carpool ledger.
//
// # Overview
//
// Values are opaque byte slices stored under string keys. Set overwrites,
// Get returns (nil, nil) for keys that were never set or were removed, and
// Clear empties the store. GetJSON/SetJSON layer JSON encoding on top, which
// is how the directory and ledgers persist their slots.
//
// Implementations
//
//   - SQLStore:    table "kv" over dbx.DBTX, used with SQLite (default) and
//     Postgres; placeholders are rebound per driver.
//   - MemoryStore: map-backed, for tests and throwaway sessions.
//
// # Atomicity
//
// Atomically runs a function against a Store view whose writes are applied
// all together or not at all (a SQL transaction, or a copy-on-write map).
package kv
