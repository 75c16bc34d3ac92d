// Package analyze provides the declaration model and the source front end.
//
// It turns Rust-syntax struct declarations (via tree-sitter) or textual type
// strings into a canonical in-memory model of aggregates and their fields.
//
// Key types:
//   - TypeExpr: closed set of type shapes (Path/Ref/Slice/Array/Tuple/Opaque)
//   - Aggregate: struct name, visibility and ordered fields
//   - Field: field name, visibility and stored type
package analyze
