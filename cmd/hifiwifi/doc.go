// Package main hosts the hifiwifi CLI entrypoint and command graph.
//
// "serve" runs the HTTP API in the foreground. The one-shot commands
// (analyze, explain, chat, decide) call the same advisor the API uses and
// print its envelope as JSON, so a backend problem looks identical from the
// terminal and from the mobile app. "probe" and "config" are operator tools.
//
// Logs from one-shot commands go to stderr; stdout carries only results.
package main
