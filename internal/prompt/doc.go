// Package prompt renders measurement and decision shapes into backend prompts.
//
// Every builder is a pure function of its input. Missing fields become
// "unknown" or "N/A" placeholders; builders never reject partial input.
package prompt
