// Package gen renders synthesized accessor sets as Rust impl blocks.
//
// Generation approach uses text/template. Every generated function carries
// its markers as outer attributes, and bodies follow a fixed shape:
//   - constructor: struct literal with field init shorthand
//   - setter: plain field assignment
//   - getter: clone of a borrow of the field
//
// Output is deterministic: files are ordered by first appearance of their
// source, and impl blocks by input order within a file.
package gen
