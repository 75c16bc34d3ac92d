// Package plan synthesizes the accessor set for an aggregate declaration.
//
// Synthesis pipeline, per aggregate:
//  1. Reject unit declarations and positional fields
//  2. Map every field type through the selected signature strategy
//  3. Build the constructor, then one setter/getter pair per field in
//     declaration order
//  4. Reject the whole set if two generated functions share a name
//
// Synthesis is atomic: either the complete AccessorSet is returned or an
// error and nothing else. Batches of independent aggregates can be
// synthesized concurrently with SynthesizeAll.
package plan
