// Package daemon runs the long-lived hifiwifi HTTP service.
//
// It wires configuration and the advisor service into a single lifecycle with
// flock-based locking in the state directory, so only one daemon serves a
// given installation. The HTTP surface exposes /health, /analyze, /explain,
// /chat and /decide behind request-ID, CORS, logging and panic-recovery
// middleware, and speaks HTTP/1.1 and cleartext HTTP/2.
//
// Handlers decode and validate requests with internal/api. Rejected requests
// get a 4xx status; anything the advisor answers, including backend failures,
// is written as a 200 envelope.
package daemon
