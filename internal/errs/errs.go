// Package errs defines the error shapes returned across the module
// boundary.
//
// Validation failures and constraint violations are turned into *HTTPError
// values carrying a status code, a machine-friendly code and optional
// per-field errors, so a serving layer can render them without inspecting
// driver or validator internals.
package errs
