package types

import (
	"context"
	"io/fs"
)

// FS is the slice of filesystem behaviour tuckfix needs. Renames are the
// only mutation the program ever performs.
type FS interface {
	// Lstat must not follow symlinks. Implementations backed by filesystems
	// without symlink support may fall back to Stat.
	Lstat(name string) (fs.FileInfo, error)

	Rename(oldpath, newpath string) error
}

// Tool is the capability surface of the external link manager (tuckr).
type Tool interface {
	// Add links a group, skipping the excluded groups.
	Add(ctx context.Context, group string, excludes []string) error

	// Status queries a fresh snapshot scoped to one group.
	Status(ctx context.Context, group string) (*StatusSnapshot, error)
}
