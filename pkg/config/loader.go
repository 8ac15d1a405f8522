package config

import (
	_ "embed"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/tuckfix/pkg/errors"
	"github.com/arthur-debert/tuckfix/pkg/paths"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes environment overrides: TUCKFIX_BACKUP_SUFFIX sets
// backup.suffix.
const EnvPrefix = "TUCKFIX_"

//go:embed embedded/defaults.toml
var defaultConfig []byte

type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, stderrors.New("not implemented")
}

// LoadOptions controls where configuration is read from.
type LoadOptions struct {
	// File is an explicit config file. When empty the first existing file
	// of paths.ConfigFileNames in the config directory is used, if any.
	File string

	// Overrides holds dotted keys set on the command line. They win over
	// every other source.
	Overrides map[string]interface{}
}

// DefaultContent returns the embedded default configuration.
func DefaultContent() string {
	return string(defaultConfig)
}

// Load builds the effective configuration. It does not log: it runs
// before logging is configured, and callers report cfg.Source instead.
func Load(opts LoadOptions) (*Config, error) {
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. User config file
	source, err := resolveConfigFile(opts.File)
	if err != nil {
		return nil, err
	}
	if source != "" {
		parser, err := parserFor(source)
		if err != nil {
			return nil, err
		}
		if err := k.Load(file.Provider(source), parser); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", source).
				WithDetail("path", source)
		}
	}

	// 3. Environment
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	// 4. Command line
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load flag overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	cfg.Source = source
	cfg.Exclude = cleanList(cfg.Exclude)
	cfg.Output.Format = strings.ToLower(strings.TrimSpace(cfg.Output.Format))
	cfg.Output.Color = strings.ToLower(strings.TrimSpace(cfg.Output.Color))

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigValid, "invalid configuration")
	}
	return &cfg, nil
}

// envKey maps TUCKFIX_TOOL_TIMEOUT to tool.timeout.
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".")
}

func resolveConfigFile(explicit string) (string, error) {
	if explicit != "" {
		path := paths.ExpandHome(explicit)
		if _, err := os.Stat(path); err != nil {
			return "", errors.Wrapf(err, errors.ErrConfigLoad, "cannot read config file %s", path).
				WithDetail("path", path)
		}
		return path, nil
	}

	p, err := paths.New()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrConfigLoad, "cannot locate config directory")
	}
	return p.ConfigFile(), nil
}

func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.Parser(), nil
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	default:
		return nil, errors.Newf(errors.ErrConfigLoad, "unsupported config file type %q", filepath.Ext(path)).
			WithDetail("path", path)
	}
}

// cleanList trims entries and drops empty and repeated ones.
func cleanList(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, item := range in {
		item = strings.TrimSpace(item)
		if item == "" || seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	return out
}
