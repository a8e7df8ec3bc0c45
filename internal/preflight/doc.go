// Package preflight provides readiness checks for the Ollama backend and the
// filesystem paths hifiwifi depends on.
//
// These checks run in two contexts:
//   - "hifiwifi serve" runs RunAll after creating its directories and logs a
//     warning per failed check; the daemon still starts so /health can report
//     the degraded state.
//   - "hifiwifi probe" renders the results as a table or JSON.
package preflight
