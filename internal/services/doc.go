// Package services defines shared utilities consumed by the extraction engine
// and the provider integration.
//
// Key responsibilities:
//   - Context helpers that stamp video IDs, operation names, and correlation
//     identifiers for logging.
//   - Structured error markers plus the Wrap helper that keep failure messages
//     uniform (operation, video ID, requested parameters) and classifiable via
//     errors.Is.
//
// Use these helpers when wiring new engine operations so operational behaviour
// (error handling, observability, retries) stays uniform across the library.
package services
