// Package services defines shared utilities consumed by the HTTP daemon, the
// CLI and the backend integrations under it.
//
// Key responsibilities:
//   - Context helpers that stamp route names and correlation identifiers for
//     logging.
//   - Structured error markers plus the Wrap helper, and HTTPStatus which
//     turns a marked error into the status code the daemon answers with.
//
// The Ollama integration lives in the ollama subpackage. Its failures are
// typed and never marked here; the advisor folds them into envelopes.
package services
