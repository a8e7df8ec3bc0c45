// Package wifi holds the measurement vocabulary shared by the prompt builders,
// the HTTP layer and the CLI.
//
// Ratings come in two five-word scales (Standard and Legacy). Every rating
// resolves to a Rank so either scale can be read while the configured one is
// used for output. Classify grades raw dBm/ms/Mbps readings with the same
// thresholds the mobile client uses, and Decide applies the local
// recommendation rules that /explain later turns into prose.
package wifi
