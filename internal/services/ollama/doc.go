// Package ollama turns a local Ollama server into a dependable source of
// WiFi advice.
//
// # Pipeline
//
// Every call flows through the same four steps:
//
//	send      one POST to /api/generate, failures typed as *TransportError
//	execute   bounded retries for connection and timeout failures only
//	Normalize done/empty checks, then JSON decoding with a text fallback
//	Result    tagged union consumed by the advisor's envelope shaper
//
// HTTP status errors and malformed payloads are never retried. A reply that
// reports done=false is always an *IncompleteReply, whatever its text says.
//
// # Entry Points
//
// NewClient: construct a client from Config.
// Client.Generate: run a prompt through the retry pipeline and normalize it.
// Client.IsReachable: five second GET of /api/tags, never errors.
// Client.ListModels / Client.HasModel: model inventory for health output.
//
// The package does not log. Callers decide what to record.
package ollama
