package config

import (
	"fmt"
	"strings"
	"time"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Formats lists the accepted output formats.
var Formats = []string{FormatText, FormatJSON, FormatYAML}

// ColorModes lists the accepted color modes.
var ColorModes = []string{ColorAuto, ColorAlways, ColorNever}

// Config is the effective tuckfix configuration.
type Config struct {
	Backup  Backup   `koanf:"backup"`
	Exclude []string `koanf:"exclude"`
	Tool    Tool     `koanf:"tool"`
	Resolve Resolve  `koanf:"resolve"`
	Output  Output   `koanf:"output"`
	Strict  bool     `koanf:"strict"`

	// Source is the user config file that was loaded, if any.
	Source string `koanf:"-"`
}

type Backup struct {
	Suffix string `koanf:"suffix"`
}

type Tool struct {
	Binary  string        `koanf:"binary"`
	Timeout time.Duration `koanf:"timeout"`
}

type Resolve struct {
	Boundary string `koanf:"boundary"`
}

type Output struct {
	Format string `koanf:"format"`
	Color  string `koanf:"color"`
}

// Validate checks values no later stage can recover from.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Backup.Suffix) == "" {
		return fmt.Errorf("backup.suffix must not be empty or only whitespace")
	}
	if strings.ContainsRune(c.Backup.Suffix, '/') {
		return fmt.Errorf("backup.suffix must not contain a path separator: %q", c.Backup.Suffix)
	}
	if strings.TrimSpace(c.Tool.Binary) == "" {
		return fmt.Errorf("tool.binary must not be empty")
	}
	if c.Tool.Timeout < 0 {
		return fmt.Errorf("tool.timeout must not be negative: %s", c.Tool.Timeout)
	}
	if !contains(Formats, c.Output.Format) {
		return fmt.Errorf("output.format must be one of %s, got %q", strings.Join(Formats, ", "), c.Output.Format)
	}
	if !contains(ColorModes, c.Output.Color) {
		return fmt.Errorf("output.color must be one of %s, got %q", strings.Join(ColorModes, ", "), c.Output.Color)
	}
	return nil
}

// ToMap returns the configuration as nested maps keyed like the config
// file, suitable for re-encoding.
func (c *Config) ToMap() map[string]interface{} {
	exclude := c.Exclude
	if exclude == nil {
		exclude = []string{}
	}
	return map[string]interface{}{
		"exclude": exclude,
		"strict":  c.Strict,
		"backup": map[string]interface{}{
			"suffix": c.Backup.Suffix,
		},
		"tool": map[string]interface{}{
			"binary":  c.Tool.Binary,
			"timeout": c.Tool.Timeout.String(),
		},
		"resolve": map[string]interface{}{
			"boundary": c.Resolve.Boundary,
		},
		"output": map[string]interface{}{
			"format": c.Output.Format,
			"color":  c.Output.Color,
		},
	}
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
