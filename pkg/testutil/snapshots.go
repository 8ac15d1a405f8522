package testutil

import "github.com/arthur-debert/tuckfix/pkg/types"

// Entries builds conflict entries for the given target paths.
func Entries(paths ...string) []types.ConflictEntry {
	out := make([]types.ConflictEntry, len(paths))
	for i, p := range paths {
		out[i] = types.ConflictEntry{TargetPath: p, Reason: "file exists"}
	}
	return out
}

// ConflictSnapshot builds a snapshot holding one conflicted group.
func ConflictSnapshot(group string, paths ...string) *types.StatusSnapshot {
	return types.NewStatusSnapshot(types.SnapshotData{
		Unlinked:  []string{group},
		Conflicts: []types.GroupConflicts{{Group: group, Entries: Entries(paths...)}},
	})
}

// CleanSnapshot builds a snapshot in which group has no conflicts.
func CleanSnapshot(group string) *types.StatusSnapshot {
	return types.NewStatusSnapshot(types.SnapshotData{Unlinked: []string{group}})
}
