// Package render groups the output sinks for computed board geometry.
//
// Subpackages:
//   - styles: the Style interface, the default visual style, and TOML themes
//   - svg: the vector diagram sink (the primary output format)
//   - jsonsink: geometry and label export for external tooling
//
// All sinks are deterministic: identical input produces byte-identical
// output. There is no randomness and no timestamping anywhere in the
// render path.
package render
