package testutil

import (
	"context"
	stderrors "errors"
	"io/fs"
	"sync"

	"github.com/arthur-debert/tuckfix/pkg/errors"
	"github.com/arthur-debert/tuckfix/pkg/types"
)

// AddCall records one FakeTool.Add invocation.
type AddCall struct {
	Group    string
	Excludes []string
}

// FakeTool behaves like tuckr against a TestEnvironment: a group's
// conflicts are the tracked target paths that currently exist, and Add
// succeeds only once none exist.
type FakeTool struct {
	FS      types.FS
	Targets map[string][]string

	// Sticky groups always report their original conflicts, no matter
	// what happened on disk.
	Sticky map[string]bool

	// Missing simulates an absent tuckr binary.
	Missing bool

	// StatusErr, when set, is returned by Status.
	StatusErr error

	mu          sync.Mutex
	addCalls    []AddCall
	statusCalls []string
	linked      map[string]bool
}

// NewFakeTool creates a FakeTool tracking targets per group.
func NewFakeTool(fsys types.FS, targets map[string][]string) *FakeTool {
	return &FakeTool{
		FS:      fsys,
		Targets: targets,
		Sticky:  map[string]bool{},
		linked:  map[string]bool{},
	}
}

func (f *FakeTool) Add(_ context.Context, group string, excludes []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.addCalls = append(f.addCalls, AddCall{Group: group, Excludes: append([]string(nil), excludes...)})
	if f.Missing {
		return errors.New(errors.ErrToolNotFound, "tuckr not found in PATH")
	}
	if len(f.conflicts(group)) > 0 {
		return errors.Newf(errors.ErrLink, "tuckr add %s failed", group).
			WithDetail("exitCode", 1).
			WithDetail("stderr", "conflicting files exist")
	}
	f.linked[group] = true
	return nil
}

func (f *FakeTool) Status(_ context.Context, group string) (*types.StatusSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.statusCalls = append(f.statusCalls, group)
	if f.Missing {
		return nil, errors.New(errors.ErrToolNotFound, "tuckr not found in PATH")
	}
	if f.StatusErr != nil {
		return nil, f.StatusErr
	}

	data := types.SnapshotData{}
	if conflicts := f.conflicts(group); len(conflicts) > 0 {
		data.Unlinked = []string{group}
		data.Conflicts = []types.GroupConflicts{{Group: group, Entries: conflicts}}
	} else if f.linked[group] {
		data.Linked = []string{group}
	} else {
		data.Unlinked = []string{group}
	}
	return types.NewStatusSnapshot(data), nil
}

// AddCalls returns the recorded Add invocations.
func (f *FakeTool) AddCalls() []AddCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]AddCall(nil), f.addCalls...)
}

// StatusCalls returns the groups Status was queried for.
func (f *FakeTool) StatusCalls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.statusCalls...)
}

// Linked reports whether Add succeeded for group.
func (f *FakeTool) Linked(group string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.linked[group]
}

func (f *FakeTool) conflicts(group string) []types.ConflictEntry {
	var paths []string
	for _, p := range f.Targets[group] {
		if f.Sticky[group] || f.exists(p) {
			paths = append(paths, p)
		}
	}
	if len(paths) == 0 {
		return nil
	}
	return Entries(paths...)
}

func (f *FakeTool) exists(path string) bool {
	_, err := f.FS.Lstat(path)
	return err == nil || !stderrors.Is(err, fs.ErrNotExist)
}
