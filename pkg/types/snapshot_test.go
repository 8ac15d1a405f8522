// TEST TYPE: Unit Tests
// DEPENDENCIES: None
// PURPOSE: Test StatusSnapshot construction, ordering and immutability

package types_test

import (
	"testing"

	"github.com/arthur-debert/tuckfix/pkg/types"
	"github.com/stretchr/testify/assert"
)

func TestNewStatusSnapshot_KeepsConflictOrder(t *testing.T) {
	snap := types.NewStatusSnapshot(types.SnapshotData{
		Conflicts: []types.GroupConflicts{
			{Group: "zsh", Entries: []types.ConflictEntry{{TargetPath: "/home/u/.zshrc"}}},
			{Group: "nvim", Entries: []types.ConflictEntry{{TargetPath: "/home/u/.config/nvim/init.lua"}}},
			{Group: "alacritty"},
		},
	})

	assert.Equal(t, []string{"zsh", "nvim", "alacritty"}, snap.ConflictGroups())
	assert.True(t, snap.HasConflicts("nvim"))
	assert.False(t, snap.HasConflicts("alacritty"))
	assert.Nil(t, snap.Conflicts("alacritty"))
	assert.Nil(t, snap.Conflicts("missing"))
}

func TestNewStatusSnapshot_MergesRepeatedGroup(t *testing.T) {
	snap := types.NewStatusSnapshot(types.SnapshotData{
		Conflicts: []types.GroupConflicts{
			{Group: "nvim", Entries: []types.ConflictEntry{{TargetPath: "/a"}}},
			{Group: "zsh", Entries: []types.ConflictEntry{{TargetPath: "/b"}}},
			{Group: "nvim", Entries: []types.ConflictEntry{{TargetPath: "/c"}}},
		},
	})

	assert.Equal(t, []string{"nvim", "zsh"}, snap.ConflictGroups())
	assert.Equal(t, []types.ConflictEntry{{TargetPath: "/a"}, {TargetPath: "/c"}}, snap.Conflicts("nvim"))
}

func TestStatusSnapshot_IsImmutable(t *testing.T) {
	linked := []string{"zsh"}
	entries := []types.ConflictEntry{{TargetPath: "/home/u/.gitconfig", Reason: "file exists"}}
	snap := types.NewStatusSnapshot(types.SnapshotData{
		Linked:    linked,
		Conflicts: []types.GroupConflicts{{Group: "git", Entries: entries}},
	})

	linked[0] = "changed"
	entries[0].TargetPath = "/changed"
	assert.Equal(t, []string{"zsh"}, snap.Linked())
	assert.Equal(t, "/home/u/.gitconfig", snap.Conflicts("git")[0].TargetPath)

	got := snap.Conflicts("git")
	got[0].Reason = "mutated"
	assert.Equal(t, "file exists", snap.Conflicts("git")[0].Reason)

	groups := snap.Linked()
	groups[0] = "mutated"
	assert.Equal(t, []string{"zsh"}, snap.Linked())
}

func TestStatusSnapshot_PendingGroups(t *testing.T) {
	snap := types.NewStatusSnapshot(types.SnapshotData{
		Unlinked: []string{"tmux", "nvim", "git"},
		Conflicts: []types.GroupConflicts{
			{Group: "nvim", Entries: []types.ConflictEntry{{TargetPath: "/home/u/.config/nvim/init.lua"}}},
			{Group: "zsh", Entries: []types.ConflictEntry{{TargetPath: "/home/u/.zshrc"}}},
		},
	})

	assert.Equal(t, []string{"nvim", "zsh", "tmux", "git"}, snap.PendingGroups())
}

func TestOutcome_IsFailure(t *testing.T) {
	assert.False(t, types.OutcomeResolved.IsFailure())
	for _, o := range []types.Outcome{
		types.OutcomeStillConflicted,
		types.OutcomeUnresolvable,
		types.OutcomeLinkFailed,
		types.OutcomeAborted,
	} {
		assert.True(t, o.IsFailure(), o.String())
	}
}
