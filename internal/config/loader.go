package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Config file names searched in the working directory and ~/.datalens.
const (
	ConfigFileName    = "datalens.yaml"
	ConfigFileNameAlt = "datalens.yml"
)

var configFileUsed string

// Load reads configuration with the usual precedence:
// flags > env vars (DATALENS_ prefix) > config file > defaults.
// cfgFile may be empty, in which case known locations are searched.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults.
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"port":           DefaultPort,
		"watch":          true,
		"auto_open":      false,
		"preview_rows":   DefaultPreviewRows,
		"output":         DefaultOutput,
		"verbose":        false,
		"session_secret": "",
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file, when present.
	configFileUsed = findConfigFile(cfgFile)
	if configFileUsed != "" {
		if err := k.Load(file.Provider(configFileUsed), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFileUsed, err)
		}
	} else if cfgFile != "" {
		return nil, fmt.Errorf("config file not found: %s", cfgFile)
	}

	// 3. Environment variables: DATALENS_DATA_DIR -> data_dir.
	if err := k.Load(env.Provider("DATALENS_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "DATALENS_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags that were explicitly set, kebab-case mapped to snake_case.
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if cfg.PreviewRows <= 0 {
		cfg.PreviewRows = DefaultPreviewRows
	}
	return &cfg, nil
}

// ConfigFileUsed returns the path of the config file that was loaded, if
// any.
func ConfigFileUsed() string {
	return configFileUsed
}

// findConfigFile finds the config file to use.
// Priority: explicit path > ./datalens.yaml > ./datalens.yml > ~/.datalens/.
func findConfigFile(explicit string) string {
	if explicit != "" {
		if _, err := os.Stat(explicit); err == nil {
			return explicit
		}
		return ""
	}

	candidates := []string{ConfigFileName, ConfigFileNameAlt}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates,
			filepath.Join(home, ".datalens", ConfigFileName),
			filepath.Join(home, ".datalens", ConfigFileNameAlt),
		)
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
