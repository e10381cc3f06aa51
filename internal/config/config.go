// Package config holds runtime configuration: defaults, layered loading
// (defaults, YAML file, SEQPATH_* environment, CLI flags) and validation.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// --- Enum types for validated string fields ---

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stderr is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Operation selects what a batch rename does to each path.
type Operation string

const (
	OpSetVersion   Operation = "set-version"   // Set an explicit version.
	OpBumpVersion  Operation = "bump-version"  // Increment the current version.
	OpOffsetFrames Operation = "offset-frames" // Shift digit frames by FrameOffset.
)

// OutputFormat selects how descriptors and reports are printed.
type OutputFormat string

const (
	OutputText OutputFormat = "text"
	OutputJSON OutputFormat = "json"
	OutputYAML OutputFormat = "yaml"
)

// Config holds all runtime settings. It is populated by [DefaultConfig],
// then overlaid by [Load] before being passed (by pointer) to packages that
// need it. The koanf tags are the keys used by the YAML file, the SEQPATH_*
// environment and the flag layer.
type Config struct {
	// Root directory for scan, rename and check (positional arg).
	Root string `koanf:"root"`

	// Scanner.
	Pattern        string   `koanf:"pattern"`         // Case-insensitive regex searched in file names.
	MaxDepth       int      `koanf:"max_depth"`       // 0 = unlimited.
	ExcludeNames   []string `koanf:"exclude_names"`   // Directory names never descended.
	ExcludePattern string   `koanf:"exclude_pattern"` // Regex matched against whole directory names.
	ExcludeGlobs   []string `koanf:"exclude_globs"`   // Globs matched against root-relative directory paths.

	// Path mutation.
	Operation     Operation `koanf:"operation"`
	Version       string    `koanf:"version"`        // set-version value (digits).
	Minor         string    `koanf:"minor"`          // Optional minor for major.minor.
	SetFolder     bool      `koanf:"folder"`         // Default: true. Cleared by --no-folder.
	MajorMinor    bool      `koanf:"major_minor"`    // Read file versions as major.minor.
	VersionPrefix string    `koanf:"version_prefix"` // "", "v" or "V".
	VersionSep    string    `koanf:"version_sep"`    // "", ".", "_" or "-".
	FramePrefix   string    `koanf:"frame_prefix"`   // Separator used when a name has none.
	FrameOffset   int       `koanf:"frame_offset"`

	// Behavior.
	DryRun      bool   `koanf:"dry_run"`
	Force       bool   `koanf:"force"`        // Overwrite existing targets.
	MaxAttempts int    `koanf:"max_attempts"` // Default: 4. Rename attempts on transient errors.
	Journal     string `koanf:"journal"`      // bbolt undo journal; default under the user cache dir.
	Sequences   bool   `koanf:"sequences"`    // scan: collapse frames into sequences.

	// Display and logging.
	Output    OutputFormat `koanf:"output"` // Default: "text".
	Verbose   bool         `koanf:"verbose"`
	ColorMode ColorMode    `koanf:"color"` // Default: "auto".
	LogFile   string       `koanf:"log_file"`

	// ConfigFile is the optional YAML file layered under env and flags.
	ConfigFile string `koanf:"-"`
}

// DefaultConfig returns a Config with all defaults. Used as the bottom
// layer before [Load] applies file, environment and flag overrides.
func DefaultConfig() Config {
	return Config{
		Operation:   OpSetVersion,
		SetFolder:   true,
		MaxAttempts: 4,
		Journal:     DefaultJournalPath(),
		Output:      OutputText,
		ColorMode:   ColorAuto,
	}
}

// DefaultJournalPath returns the journal location under the user cache
// directory, or a dotfile in the working directory when there is none.
func DefaultJournalPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ".seqpath-journal.db"
	}
	return filepath.Join(dir, "seqpath", "journal.db")
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// Validate checks enum fields, mutation arguments and scanner patterns.
func (c *Config) Validate() error {
	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	switch c.Output {
	case OutputText, OutputJSON, OutputYAML:
		// valid
	default:
		return errors.New("invalid output format (use 'text', 'json' or 'yaml')")
	}

	switch c.Operation {
	case OpSetVersion, OpBumpVersion, OpOffsetFrames:
		// valid
	default:
		return errors.New("invalid operation (use 'set-version', 'bump-version' or 'offset-frames')")
	}

	if c.MaxDepth < 0 {
		return fmt.Errorf("max depth must not be negative (got %d)", c.MaxDepth)
	}
	if c.MaxAttempts < 1 {
		return fmt.Errorf("max attempts must be at least 1 (got %d)", c.MaxAttempts)
	}
	for name, re := range map[string]string{"pattern": c.Pattern, "exclude pattern": c.ExcludePattern} {
		if _, err := regexp.Compile(re); err != nil {
			return fmt.Errorf("invalid %s %q: %w", name, re, err)
		}
	}
	return nil
}

// ValidateOperation checks the arguments the configured operation needs.
// Called by commands that mutate paths; inspect and check never need it.
func (c *Config) ValidateOperation() error {
	if c.Operation == OpSetVersion && c.Version == "" {
		return errors.New("set-version needs --version")
	}
	if c.Minor != "" && c.Operation != OpSetVersion {
		return errors.New("--minor only applies to set-version")
	}
	if c.Operation == OpOffsetFrames && c.FrameOffset == 0 {
		return errors.New("offset-frames needs a non-zero --frame-offset")
	}
	return nil
}
