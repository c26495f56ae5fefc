// Package control
// License: Apache-2.0
//
// Runtime configuration, metrics, and debug introspection layer for
// anellus rings and their drivers.
//
// Provides concurrent-safe state handling primitives including:
//   - Snapshot config reads with typed getters and reload observers
//   - Per-ring atomic operation counters
//   - A registry for publishing counter snapshots
//   - Debug hooks and probe registration
package control
