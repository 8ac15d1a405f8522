// Package backup moves conflicting paths out of the way by renaming them to
// a suffixed backup name. A relocation is a single rename: nothing is
// copied, deleted or overwritten.
package backup

import (
	stderrors "errors"
	"io/fs"
	"strings"

	"github.com/arthur-debert/tuckfix/pkg/errors"
	"github.com/arthur-debert/tuckfix/pkg/logging"
	"github.com/arthur-debert/tuckfix/pkg/types"
	"github.com/rs/zerolog"
)

// Relocation describes one file-level relocation attempt.
type Relocation struct {
	From string
	To   string

	// Skipped is set when the source had already disappeared.
	Skipped bool
}

// Relocator renames paths to their backup names on an FS.
type Relocator struct {
	fs     types.FS
	logger zerolog.Logger
}

// NewRelocator creates a Relocator operating on fsys.
func NewRelocator(fsys types.FS) *Relocator {
	return &Relocator{
		fs:     fsys,
		logger: logging.GetLogger("backup"),
	}
}

// BackupPath returns the backup name for path.
func BackupPath(path, suffix string) string {
	return path + "-" + suffix
}

// RelocateFolder renames a project folder to its backup name and returns the
// new path. It fails if the folder is gone or the backup name is taken.
func (r *Relocator) RelocateFolder(path, suffix string) (string, error) {
	if err := validate(path, suffix); err != nil {
		return "", err
	}

	if _, err := r.fs.Lstat(path); err != nil {
		return "", sourceError(err, path)
	}

	dest := BackupPath(path, suffix)
	if err := r.rename(path, dest); err != nil {
		return "", err
	}
	return dest, nil
}

// RelocateFile renames one conflicting file to its backup name. A target
// that no longer exists is reported as Skipped rather than as an error.
func (r *Relocator) RelocateFile(entry types.ConflictEntry, suffix string) (Relocation, error) {
	rel := Relocation{From: entry.TargetPath, To: BackupPath(entry.TargetPath, suffix)}

	if err := validate(entry.TargetPath, suffix); err != nil {
		return rel, err
	}

	if _, err := r.fs.Lstat(entry.TargetPath); err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			r.logger.Debug().Str("path", entry.TargetPath).Msg("Conflict target vanished before relocation")
			rel.Skipped = true
			return rel, nil
		}
		return rel, sourceError(err, entry.TargetPath)
	}

	if err := r.rename(rel.From, rel.To); err != nil {
		return rel, err
	}
	return rel, nil
}

// rename re-checks the destination right before renaming; rename(2) would
// silently replace an existing file or empty directory.
func (r *Relocator) rename(from, to string) error {
	if _, err := r.fs.Lstat(to); err == nil {
		return errors.Newf(errors.ErrDestinationExists, "backup path %s already exists", to).
			WithDetail("source", from).
			WithDetail("destination", to)
	} else if !stderrors.Is(err, fs.ErrNotExist) {
		return errors.Wrapf(err, errors.ErrRelocation, "cannot inspect backup path %s", to).
			WithDetail("source", from).
			WithDetail("destination", to)
	}

	r.logger.Debug().Str("from", from).Str("to", to).Msg("Renaming")

	if err := r.fs.Rename(from, to); err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return sourceError(err, from)
		}
		return errors.Wrapf(err, errors.ErrRelocation, "cannot rename %s to %s", from, to).
			WithDetail("source", from).
			WithDetail("destination", to)
	}
	return nil
}

func validate(path, suffix string) error {
	if strings.TrimSpace(suffix) == "" {
		return errors.New(errors.ErrInvalidInput, "backup suffix must not be blank")
	}
	if path == "" {
		return errors.New(errors.ErrInvalidInput, "cannot relocate an empty path")
	}
	return nil
}

func sourceError(err error, path string) error {
	if stderrors.Is(err, fs.ErrNotExist) {
		return errors.Wrapf(err, errors.ErrSourceMissing, "%s no longer exists", path).
			WithDetail("source", path)
	}
	return errors.Wrapf(err, errors.ErrRelocation, "cannot inspect %s", path).
		WithDetail("source", path)
}

// IsRelocationError reports whether err came from a failed relocation.
func IsRelocationError(err error) bool {
	switch errors.GetErrorCode(err) {
	case errors.ErrRelocation, errors.ErrDestinationExists, errors.ErrSourceMissing:
		return true
	}
	return false
}
