// Package types defines the core data model shared by tuckfix components:
// the immutable StatusSnapshot reported by tuckr, its ConflictEntry values,
// per-group resolution Outcomes, and the FS and Tool capability interfaces
// that the resolver depends on.
package types
