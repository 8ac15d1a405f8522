package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/tuckfix/pkg/errors"
	"github.com/mitchellh/go-homedir"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for tuckfix
	EnvConfigDir = "TUCKFIX_CONFIG_DIR"

	// EnvStateDir overrides the XDG state directory for tuckfix
	EnvStateDir = "TUCKFIX_STATE_DIR"

	// EnvXDGStateHome is read directly so tests and callers can change it at runtime
	EnvXDGStateHome = "XDG_STATE_HOME"

	// EnvXDGConfigHome is read directly for the same reason
	EnvXDGConfigHome = "XDG_CONFIG_HOME"
)

const (
	// AppDirName is the directory name for tuckfix-specific files
	AppDirName = "tuckfix"

	// LogFileName is the name of the JSON log file in the state directory
	LogFileName = "tuckfix.log"
)

// ConfigFileNames are the user config files looked up in ConfigDir, in order.
var ConfigFileNames = []string{"config.toml", "config.yaml", "config.yml"}

// Paths exposes the directories tuckfix reads from and writes to.
type Paths interface {
	HomeDir() string
	ConfigDir() string
	StateDir() string
	LogFilePath() string

	// ConfigFile returns the first existing user config file, or "" if none.
	ConfigFile() string

	// Boundary resolves the directory at which folder inference stops.
	// An empty value means the home directory.
	Boundary(configured string) (string, error)
}

type paths struct {
	home      string
	configDir string
	stateDir  string
}

// New creates a Paths instance from the current environment.
func New() (Paths, error) {
	home, err := homedir.Dir()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "cannot determine home directory")
	}

	p := &paths{home: home}

	switch {
	case os.Getenv(EnvConfigDir) != "":
		p.configDir = ExpandHome(os.Getenv(EnvConfigDir))
	case os.Getenv(EnvXDGConfigHome) != "":
		p.configDir = filepath.Join(os.Getenv(EnvXDGConfigHome), AppDirName)
	default:
		p.configDir = filepath.Join(xdg.ConfigHome, AppDirName)
	}

	switch {
	case os.Getenv(EnvStateDir) != "":
		p.stateDir = ExpandHome(os.Getenv(EnvStateDir))
	case os.Getenv(EnvXDGStateHome) != "":
		p.stateDir = filepath.Join(os.Getenv(EnvXDGStateHome), AppDirName)
	default:
		p.stateDir = filepath.Join(xdg.StateHome, AppDirName)
	}

	return p, nil
}

func (p *paths) HomeDir() string { return p.home }

func (p *paths) ConfigDir() string { return p.configDir }

func (p *paths) StateDir() string { return p.stateDir }

func (p *paths) LogFilePath() string {
	return filepath.Join(p.stateDir, LogFileName)
}

func (p *paths) ConfigFile() string {
	for _, name := range ConfigFileNames {
		candidate := filepath.Join(p.configDir, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
	}
	return ""
}

func (p *paths) Boundary(configured string) (string, error) {
	if configured == "" {
		return filepath.Clean(p.home), nil
	}

	expanded := ExpandHome(configured)
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrConfigValid, "invalid boundary %q", configured)
	}
	return abs, nil
}

// ExpandHome expands a leading ~ to the home directory. Paths of the form
// ~user are returned unchanged.
func ExpandHome(path string) string {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return path
	}
	return expanded
}
