// Package match finds identifiers that nearly match a known name.
//
// It backs two kinds of hints: "did you mean" suggestions for misspelled
// option values, and warnings for field types that look like a wrapper the
// signature mapper recognizes but are spelled differently (Optional<T>,
// string, Vector<T>), which would otherwise be mapped as plain paths.
//
// Key functions:
//   - NormalizeIdent: folds case and separators for comparison
//   - Distance: edit distance between two identifiers
//   - Similarity: distance scaled to a 0..1 score
//   - Rank / Closest: orders candidates by similarity
package match
