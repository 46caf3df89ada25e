// Package orchestrator wires the numerology calculator, theme selection and
// the renderer registry behind a single entry point used by the HTTP handlers
// and the CLI.
package orchestrator
