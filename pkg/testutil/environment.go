package testutil

import (
	stderrors "errors"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/tuckfix/pkg/filesystem"
	"github.com/arthur-debert/tuckfix/pkg/types"
	"github.com/spf13/afero"
)

// DefaultHome is the virtual home directory used by TestEnvironment.
const DefaultHome = "/home/u"

// FileTree represents a directory structure for testing. String values are
// file contents, nested FileTree values are directories.
type FileTree map[string]interface{}

// TestEnvironment is an isolated filesystem where absolute paths map into a
// temp directory, so renames behave exactly as on the real OS.
type TestEnvironment struct {
	HomeDir string
	Base    afero.Fs
	FS      types.FS

	t *testing.T
}

// NewTestEnvironment creates an environment with an empty DefaultHome.
func NewTestEnvironment(t *testing.T) *TestEnvironment {
	t.Helper()

	base := afero.NewBasePathFs(afero.NewOsFs(), t.TempDir())
	env := &TestEnvironment{
		HomeDir: DefaultHome,
		Base:    base,
		FS:      filesystem.NewAferoFS(base),
		t:       t,
	}
	env.MkdirAll(DefaultHome)
	return env
}

// WithFileTree creates tree under the home directory.
func (env *TestEnvironment) WithFileTree(tree FileTree) *TestEnvironment {
	env.t.Helper()
	createFileTree(env.t, env.Base, env.HomeDir, tree)
	return env
}

// WriteFile creates path, and any missing parents, with content.
func (env *TestEnvironment) WriteFile(path, content string) {
	env.t.Helper()
	env.MkdirAll(filepath.Dir(path))
	if err := afero.WriteFile(env.Base, path, []byte(content), 0644); err != nil {
		env.t.Fatalf("Failed to write file %s: %v", path, err)
	}
}

// MkdirAll creates a directory and its parents.
func (env *TestEnvironment) MkdirAll(path string) {
	env.t.Helper()
	if err := env.Base.MkdirAll(path, 0755); err != nil {
		env.t.Fatalf("Failed to create directory %s: %v", path, err)
	}
}

// Exists reports whether path exists, without following symlinks.
func (env *TestEnvironment) Exists(path string) bool {
	env.t.Helper()
	_, err := env.FS.Lstat(path)
	if err == nil {
		return true
	}
	if !stderrors.Is(err, fs.ErrNotExist) {
		env.t.Fatalf("Failed to stat %s: %v", path, err)
	}
	return false
}

// ReadFile returns the content of path.
func (env *TestEnvironment) ReadFile(path string) string {
	env.t.Helper()
	data, err := afero.ReadFile(env.Base, path)
	if err != nil {
		env.t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(data)
}

// Path joins elements onto the home directory.
func (env *TestEnvironment) Path(elem ...string) string {
	return filepath.Join(append([]string{env.HomeDir}, elem...)...)
}

func createFileTree(t *testing.T, base afero.Fs, basePath string, tree FileTree) {
	t.Helper()

	for name, content := range tree {
		fullPath := filepath.Join(basePath, name)

		switch v := content.(type) {
		case string:
			if err := base.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
				t.Fatalf("Failed to create directory %s: %v", filepath.Dir(fullPath), err)
			}
			if err := afero.WriteFile(base, fullPath, []byte(v), 0644); err != nil {
				t.Fatalf("Failed to write file %s: %v", fullPath, err)
			}
		case FileTree:
			if err := base.MkdirAll(fullPath, 0755); err != nil {
				t.Fatalf("Failed to create directory %s: %v", fullPath, err)
			}
			createFileTree(t, base, fullPath, v)
		default:
			t.Fatalf("Invalid file tree content type for %s: %T", name, content)
		}
	}
}
