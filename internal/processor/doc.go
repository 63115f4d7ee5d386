// Package processor contains the core business logic behind the langsync
// commands. It resolves the effective settings, builds the language trees,
// runs the diff and repair engines, records runs in the journal and hands
// the results to the reporter.
package processor
