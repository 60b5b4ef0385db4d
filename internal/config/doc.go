// Package config loads and validates asrscore configuration.
//
// Configuration is a TOML file, by default at ~/.config/asrscore/config.toml,
// with a project-local asrscore.toml fallback. Defaults apply for every field
// so the toolkit runs without a config file. Path fields are expanded (~ and
// environment variables) and normalized during load.
package config
