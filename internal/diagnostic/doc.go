// Package diagnostic provides the error taxonomy and structured diagnostics
// reported while synthesizing accessor blocks.
//
// Key capabilities:
//   - Typed errors for unsupported field shapes, unmappable types and
//     generated name collisions, each with a stable code
//   - Sentinels for errors.Is checks
//   - A Diagnostics collector that reports every failing aggregate at once
package diagnostic
