// Package status turns a tuckr status document into a types.StatusSnapshot.
//
// The document is JSON. Unknown keys are ignored and missing collections
// default to empty. tuckr itself writes "symlinked"/"not_symlinked"; the
// shorter "linked"/"not_linked" spellings are accepted too, as are both
// "nonexistent" and "non_existent". The order of the conflict mapping is
// preserved because groups are processed in that order.
package status
