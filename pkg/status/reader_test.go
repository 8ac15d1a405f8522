// TEST TYPE: Unit Tests
// DEPENDENCIES: None
// PURPOSE: Test parsing of tuckr status documents

package status_test

import (
	"strings"
	"testing"

	"github.com/arthur-debert/tuckfix/pkg/errors"
	"github.com/arthur-debert/tuckfix/pkg/status"
	"github.com/arthur-debert/tuckfix/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_LinkedOnly(t *testing.T) {
	snap, err := status.Parse([]byte(`{"linked":["zsh"],"not_linked":[],"conflicts":{}}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"zsh"}, snap.Linked())
	assert.Empty(t, snap.Unlinked())
	assert.Empty(t, snap.ConflictGroups())
}

func TestParse_ConflictEntries(t *testing.T) {
	raw := `{
		"conflicts": {
			"nvim": [
				{"target_path": "/home/u/.config/nvim/init.lua", "reason": "file exists"},
				{"target_path": "/home/u/.config/nvim/lua/plugins.lua", "reason": "file exists"}
			]
		}
	}`

	snap, err := status.Parse([]byte(raw))
	require.NoError(t, err)

	assert.Equal(t, []types.ConflictEntry{
		{TargetPath: "/home/u/.config/nvim/init.lua", Reason: "file exists"},
		{TargetPath: "/home/u/.config/nvim/lua/plugins.lua", Reason: "file exists"},
	}, snap.Conflicts("nvim"))
}

func TestParse_PreservesConflictOrder(t *testing.T) {
	raw := `{"conflicts": {
		"zsh": [{"target_path": "/home/u/.zshrc", "reason": "r"}],
		"alacritty": [{"target_path": "/home/u/.config/alacritty/alacritty.toml", "reason": "r"}],
		"bat": [{"target_path": "/home/u/.config/bat/config", "reason": "r"}],
		"nvim": [{"target_path": "/home/u/.config/nvim/init.lua", "reason": "r"}]
	}}`

	snap, err := status.Parse([]byte(raw))
	require.NoError(t, err)
	assert.Equal(t, []string{"zsh", "alacritty", "bat", "nvim"}, snap.ConflictGroups())
}

func TestParse_KeyAliases(t *testing.T) {
	raw := `{
		"symlinked": ["zsh", "git"],
		"linked": ["git", "tmux"],
		"not_symlinked": ["nvim"],
		"not_linked": ["bat"],
		"nonexistent": ["ghost"],
		"non_existent": ["phantom", "ghost"],
		"unsupported": ["yabai"]
	}`

	snap, err := status.Parse([]byte(raw))
	require.NoError(t, err)

	assert.Equal(t, []string{"git", "tmux", "zsh"}, snap.Linked())
	assert.Equal(t, []string{"bat", "nvim"}, snap.Unlinked())
	assert.Equal(t, []string{"ghost", "phantom"}, snap.Nonexistent())
	assert.Equal(t, []string{"yabai"}, snap.Unsupported())
}

func TestParse_MissingKeysDefaultToEmpty(t *testing.T) {
	for _, raw := range []string{`{}`, `{"unknown_key": 42}`, `{"conflicts": null}`, `null`} {
		t.Run(raw, func(t *testing.T) {
			snap, err := status.Parse([]byte(raw))
			require.NoError(t, err)
			assert.Empty(t, snap.Linked())
			assert.Empty(t, snap.Unlinked())
			assert.Empty(t, snap.Unsupported())
			assert.Empty(t, snap.Nonexistent())
			assert.Empty(t, snap.ConflictGroups())
		})
	}
}

func TestParse_Malformed(t *testing.T) {
	tests := map[string]string{
		"truncated":         `{"linked": ["zsh"`,
		"not_json":          `tuckr: command not found`,
		"wrong_list_type":   `{"linked": "zsh"}`,
		"wrong_conflicts":   `{"conflicts": ["nvim"]}`,
		"wrong_entry_shape": `{"conflicts": {"nvim": "init.lua"}}`,
	}

	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := status.Parse([]byte(raw))
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrMalformedInput))
		})
	}
}

func TestRead(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		snap, err := status.Read(strings.NewReader(`{"not_linked": ["nvim"]}`))
		require.NoError(t, err)
		assert.Equal(t, []string{"nvim"}, snap.Unlinked())
	})

	t.Run("empty", func(t *testing.T) {
		_, err := status.Read(strings.NewReader("  \n\t"))
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := status.Read(strings.NewReader("{"))
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrMalformedInput))
	})
}
