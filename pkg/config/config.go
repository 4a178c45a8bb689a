// Package config loads optional run-configuration files for tex.
package config

// Config holds run defaults loadable from a .texrc file. Command-line flags
// always take precedence; the file only supplies defaults.
type Config struct {
	// Root is the directory file selection is rooted at.
	Root string `json:"root,omitempty" yaml:"root,omitempty" hcl:"root,optional"`
	// Ignore lists doublestar globs excluded from selection.
	Ignore []string `json:"ignore,omitempty" yaml:"ignore,omitempty" hcl:"ignore,optional"`
	// Overwrite skips backup creation before writing changes.
	Overwrite bool `json:"overwrite,omitempty" yaml:"overwrite,omitempty" hcl:"overwrite,optional"`
	// DryRun previews changes without writing anything.
	DryRun bool `json:"dry_run,omitempty" yaml:"dry_run,omitempty" hcl:"dry_run,optional"`
	// ShowDiff prints a diff preview for changed files.
	ShowDiff bool `json:"show_diff,omitempty" yaml:"show_diff,omitempty" hcl:"show_diff,optional"`

	location string // path the config was loaded from
}

// Location returns the path this config was loaded from.
func (c *Config) Location() string {
	return c.location
}

// DefaultPath is the config file looked for when --config is not given.
const DefaultPath = ".texrc.yaml"
