// Package config loads grid properties from a file and the environment and
// keeps them current while the file changes.
//
// A config file is TOML or YAML, chosen by extension. Top-level keys are
// grid properties. The optional "columns" table holds per-column
// overrides keyed by column index:
//
//	scrollingEnabled = false
//
//	[columns.2]
//	scrollingEnabled = true
//
// Environment variables prefixed with GRIDKIT_ override file values
// (GRIDKIT_HOVER_ENABLED=false sets hoverEnabled).
//
// # Sub-packages
//
//   - layer: property scopes, resolution and the layer manager
//   - loader: TOML, YAML and environment loading
//   - watcher: file watching for live reload
//   - notify: change notification
package config
