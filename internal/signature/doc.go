// Package signature maps stored field types to the types used in generated
// accessor signatures.
//
// Two strategies are provided:
//
//   - Full: owned text becomes borrowed text, optional wrappers are mapped
//     recursively and re-wrapped, sequence wrappers become borrowed slices of
//     the mapped element, and any other named path collapses to its last
//     segment's bare identifier. Non-path shapes are rejected.
//   - Shallow: only owned text is rewritten; every other shape is returned
//     unchanged.
//
// The optional wrapper is always checked before the sequence wrapper, so a
// Dialect that uses one identifier for both treats the type as optional.
package signature
