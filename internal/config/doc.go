// Package config provides configuration management for docscan.
// It defines default values, the runtime Config built from CLI flags,
// and the .docscan YAML configuration file with per-collection overrides.
package config
