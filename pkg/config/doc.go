// Package config loads tuckfix configuration. Sources are layered with
// koanf: embedded defaults, then the user config file (TOML or YAML), then
// TUCKFIX_* environment variables, then explicitly set command line flags.
package config
