// Package project infers the project folder of a conflicting group: the
// ancestor directory named after the group, which can be backed up with a
// single rename instead of one rename per file.
package project

import (
	"path/filepath"

	"github.com/arthur-debert/tuckfix/pkg/types"
)

// InferFolder walks up from the parent of the first conflict's target path
// and returns the first ancestor whose base name equals group. The walk
// stops without a match at boundary (normally the home directory) or at the
// filesystem root; the boundary itself is never returned. Only path strings
// are inspected.
func InferFolder(group string, conflicts []types.ConflictEntry, boundary string) (string, bool) {
	if group == "" || len(conflicts) == 0 {
		return "", false
	}

	target := conflicts[0].TargetPath
	if !filepath.IsAbs(target) {
		return "", false
	}

	if boundary != "" {
		boundary = filepath.Clean(boundary)
	}

	dir := filepath.Dir(filepath.Clean(target))
	for {
		if dir == boundary {
			return "", false
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			// reached the root
			return "", false
		}
		if filepath.Base(dir) == group {
			return dir, true
		}
		dir = parent
	}
}
