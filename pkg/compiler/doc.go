// Package compiler defines the in-memory program representation the
// Quill toolchain hands to compiler plugins: an immutable snapshot of
// named source units plus the symbol and module-reference metadata the
// plugin pipeline needs for discovery.
//
// A Program is never mutated in place. Every With* method returns a new
// snapshot; earlier snapshots stay valid and inspectable until they are
// garbage-collected. Source units are identified by file path: two
// units with the same path are the same slot across snapshots even when
// their text differs.
package compiler
