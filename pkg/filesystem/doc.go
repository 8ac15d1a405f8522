// Package filesystem provides filesystem implementations for tuckfix.
//
// This package contains implementations of the types.FS interface:
// the real OS filesystem and an afero-backed filesystem used by tests.
package filesystem
