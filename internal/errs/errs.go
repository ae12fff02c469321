// Package errs defines custom error types and utilities.
//
// Its purpose is to give every failed request the same JSON shape,
// `{"ok": false, ...}`, whether the failure is a field-level validation
// problem or an unknown route.
package errs
