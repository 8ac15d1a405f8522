// TEST TYPE: Unit Tests
// DEPENDENCIES: Real filesystem (t.TempDir), afero
// PURPOSE: Test the OS and afero implementations of types.FS

package filesystem_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/tuckfix/pkg/filesystem"
	"github.com/arthur-debert/tuckfix/pkg/types"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOSFS_LstatDoesNotFollowSymlinks(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "target")
	link := filepath.Join(dir, "link")
	require.NoError(t, os.WriteFile(target, []byte("x"), 0644))
	require.NoError(t, os.Symlink(target, link))

	fsys := filesystem.NewOS()

	info, err := fsys.Lstat(link)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&os.ModeSymlink)

	info, err = fsys.Lstat(target)
	require.NoError(t, err)
	assert.Zero(t, info.Mode()&os.ModeSymlink)
}

type fsFixture struct {
	fsys types.FS
	root string
	seed func(t *testing.T, path string)
}

func TestImplementations_Rename(t *testing.T) {
	fixtures := map[string]func(t *testing.T) fsFixture{
		"os": func(t *testing.T) fsFixture {
			return fsFixture{
				fsys: filesystem.NewOS(),
				root: t.TempDir(),
				seed: func(t *testing.T, path string) {
					require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
				},
			}
		},
		"afero_basepath": func(t *testing.T) fsFixture {
			base := afero.NewBasePathFs(afero.NewOsFs(), t.TempDir())
			return fsFixture{
				fsys: filesystem.NewAferoFS(base),
				root: "/",
				seed: func(t *testing.T, path string) {
					require.NoError(t, afero.WriteFile(base, path, []byte("x"), 0644))
				},
			}
		},
		"afero_memmap": func(t *testing.T) fsFixture {
			mem := afero.NewMemMapFs()
			require.NoError(t, mem.MkdirAll("/home", 0755))
			return fsFixture{
				fsys: filesystem.NewAferoFS(mem),
				root: "/home",
				seed: func(t *testing.T, path string) {
					require.NoError(t, afero.WriteFile(mem, path, []byte("x"), 0644))
				},
			}
		},
	}

	for name, build := range fixtures {
		t.Run(name, func(t *testing.T) {
			fx := build(t)
			src := filepath.Join(fx.root, "gitconfig")
			dst := filepath.Join(fx.root, "gitconfig-backup")
			fx.seed(t, src)

			require.NoError(t, fx.fsys.Rename(src, dst))

			_, err := fx.fsys.Lstat(src)
			assert.True(t, os.IsNotExist(err))
			_, err = fx.fsys.Lstat(dst)
			assert.NoError(t, err)
		})
	}
}
