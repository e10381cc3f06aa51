package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
)

// EnvPrefix is the prefix of environment overrides (SEQPATH_MAX_DEPTH=2).
const EnvPrefix = "SEQPATH_"

// Load fills cfg from, lowest first: [DefaultConfig], the YAML file named
// by cfg.ConfigFile (if any), SEQPATH_* environment variables, and the
// flags in fs the user actually changed. fs may be nil. Root and
// ConfigFile are kept.
func Load(cfg *Config, fs *pflag.FlagSet) error {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(DefaultConfig(), "koanf"), nil); err != nil {
		return errors.Wrap(err, "load defaults")
	}
	if cfg.ConfigFile != "" {
		if err := k.Load(file.Provider(cfg.ConfigFile), yaml.Parser()); err != nil {
			return errors.Wrapf(err, "load config file %s", cfg.ConfigFile)
		}
	}
	envKey := func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return errors.Wrap(err, "load environment")
	}
	if fs != nil {
		if err := k.Load(&flagProvider{fs: fs}, nil); err != nil {
			return errors.Wrap(err, "load flags")
		}
	}

	root, configFile := cfg.Root, cfg.ConfigFile
	if err := k.Unmarshal("", cfg); err != nil {
		return errors.Wrap(err, "decode config")
	}
	cfg.Root, cfg.ConfigFile = root, configFile
	return nil
}

// flagProvider is a koanf.Provider over the changed flags of a pflag set.
type flagProvider struct {
	fs *pflag.FlagSet
}

// ReadBytes is not supported; flags are read as a map.
func (p *flagProvider) ReadBytes() ([]byte, error) {
	return nil, errors.New("flag provider does not support ReadBytes")
}

// Read returns the changed flags keyed by config key.
func (p *flagProvider) Read() (map[string]interface{}, error) {
	out := make(map[string]interface{})
	var err error
	p.fs.Visit(func(f *pflag.Flag) {
		if err != nil || f.Name == "config" {
			return
		}
		var v interface{}
		v, err = flagValue(p.fs, f)
		if err != nil {
			return
		}
		out[flagKey(f.Name)] = v
	})
	return out, err
}

func flagValue(fs *pflag.FlagSet, f *pflag.Flag) (interface{}, error) {
	switch f.Value.Type() {
	case "bool":
		b, err := fs.GetBool(f.Name)
		if err != nil {
			return nil, err
		}
		if negatedFlags[f.Name] {
			return !b, nil
		}
		return b, nil
	case "int":
		return fs.GetInt(f.Name)
	case "stringSlice":
		return fs.GetStringSlice(f.Name)
	case "string", "colorMode", "operation", "outputFormat":
		return f.Value.String(), nil
	default:
		return nil, fmt.Errorf("flag --%s: unsupported type %s", f.Name, f.Value.Type())
	}
}
