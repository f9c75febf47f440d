// Package config loads server-wide subscription service limits from YAML.
// Omitted fields fall back to defaults, so a partial file is valid.
package config
