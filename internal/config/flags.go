package config

// This file registers CLI flags on cobra/pflag flag sets and maps flag names
// to config keys. Flags are grouped into global, scan, mutation and behavior.
// Flags never write into Config directly: [Load] reads the ones the user
// changed as the top configuration layer, so defaults, file and environment
// hold unless a flag is passed.

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// flagKeys maps flag names whose config key is not the flag name with dashes
// turned into underscores.
var flagKeys = map[string]string{
	"exclude":      "exclude_names",
	"exclude-glob": "exclude_globs",
	"log":          "log_file",
	"op":           "operation",
	"no-folder":    "folder",
}

// negatedFlags hold the inverse of their config key (e.g. --no-folder -> folder=false).
var negatedFlags = map[string]bool{
	"no-folder": true,
}

// flagKey returns the config key for a flag name.
func flagKey(name string) string {
	if key, ok := flagKeys[name]; ok {
		return key
	}
	return strings.ReplaceAll(name, "-", "_")
}

// AddGlobalFlags registers --config, -v/--verbose, --color, -l/--log, -o/--output.
func AddGlobalFlags(fs *pflag.FlagSet, cfg *Config) {
	d := DefaultConfig()
	fs.StringVar(&cfg.ConfigFile, "config", "", "YAML config file")
	fs.BoolP("verbose", "v", d.Verbose, "Verbose output")
	fs.Var(newColorModeValue(d.ColorMode), "color", "Color output: auto | always | never")
	fs.StringP("log", "l", "", "Append logs to file")
	fs.VarP(newOutputFormatValue(d.Output), "output", "o", "Output format: text | json | yaml")
}

// AddScanFlags registers the directory walk filters.
func AddScanFlags(fs *pflag.FlagSet) {
	fs.String("pattern", "", "Only files whose name matches this regex (case-insensitive)")
	fs.Int("max-depth", 0, "Maximum directory depth below root (0 = unlimited)")
	fs.StringSlice("exclude", nil, "Directory names to skip (repeatable)")
	fs.String("exclude-pattern", "", "Skip directories whose name matches this regex")
	fs.StringSlice("exclude-glob", nil, "Skip directories matching this glob, relative to root (repeatable)")
}

// AddMajorMinorFlag registers --major-minor, shared by every command that
// reads versions.
func AddMajorMinorFlag(fs *pflag.FlagSet) {
	fs.Bool("major-minor", false, "Read file versions as major.minor (comp_v3.2)")
}

// AddVersionFlags registers the version mutation options.
func AddVersionFlags(fs *pflag.FlagSet) {
	AddMajorMinorFlag(fs)
	fs.Bool("no-folder", false, "Do not rewrite the versioned folder")
	fs.String("version-prefix", "", "Version marker letter: v | V")
	fs.String("version-sep", "", "Major/minor separator: . | _ | -")
}

// AddFrameFlags registers the frame mutation options.
func AddFrameFlags(fs *pflag.FlagSet) {
	fs.String("frame-prefix", "", "Frame separator when a name has none: . | _ | -")
}

// AddJournalFlags registers the options shared by rename and undo.
func AddJournalFlags(fs *pflag.FlagSet) {
	d := DefaultConfig()
	fs.BoolP("dry-run", "d", false, "Preview only; do not rename")
	fs.Int("max-attempts", d.MaxAttempts, "Rename attempts on transient errors")
	fs.String("journal", d.Journal, "Undo journal path")
}

// AddRenameFlags registers the batch rename operation and its behavior.
// Version and frame options are registered too.
func AddRenameFlags(fs *pflag.FlagSet) {
	d := DefaultConfig()
	AddVersionFlags(fs)
	AddFrameFlags(fs)
	AddJournalFlags(fs)
	fs.Var(newOperationValue(d.Operation), "op", "Operation: set-version | bump-version | offset-frames")
	fs.String("version", "", "Version for set-version")
	fs.String("minor", "", "Minor version for set-version in major.minor mode")
	fs.Int("frame-offset", 0, "Frame offset for offset-frames")
	fs.BoolP("force", "f", false, "Overwrite existing targets")
}

// pflag.Value adapters so enum types (ColorMode, Operation, OutputFormat)
// are validated at parse time.

type colorModeValue struct{ v ColorMode }

func newColorModeValue(v ColorMode) *colorModeValue { return &colorModeValue{v} }

func (c *colorModeValue) String() string { return string(c.v) }
func (c *colorModeValue) Type() string   { return "colorMode" }
func (c *colorModeValue) Set(s string) error {
	switch ColorMode(strings.ToLower(s)) {
	case ColorAuto, ColorAlways, ColorNever:
		c.v = ColorMode(strings.ToLower(s))
	default:
		return fmt.Errorf("invalid color mode %q (use 'auto', 'always' or 'never')", s)
	}
	return nil
}

type operationValue struct{ v Operation }

func newOperationValue(v Operation) *operationValue { return &operationValue{v} }

func (o *operationValue) String() string { return string(o.v) }
func (o *operationValue) Type() string   { return "operation" }
func (o *operationValue) Set(s string) error {
	switch Operation(strings.ToLower(s)) {
	case OpSetVersion, OpBumpVersion, OpOffsetFrames:
		o.v = Operation(strings.ToLower(s))
	default:
		return fmt.Errorf("invalid operation %q (use 'set-version', 'bump-version' or 'offset-frames')", s)
	}
	return nil
}

type outputFormatValue struct{ v OutputFormat }

func newOutputFormatValue(v OutputFormat) *outputFormatValue { return &outputFormatValue{v} }

func (o *outputFormatValue) String() string { return string(o.v) }
func (o *outputFormatValue) Type() string   { return "outputFormat" }
func (o *outputFormatValue) Set(s string) error {
	switch OutputFormat(strings.ToLower(s)) {
	case OutputText, OutputJSON, OutputYAML:
		o.v = OutputFormat(strings.ToLower(s))
	default:
		return fmt.Errorf("invalid output format %q (use 'text', 'json' or 'yaml')", s)
	}
	return nil
}
