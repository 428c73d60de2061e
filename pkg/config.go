package kushn

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-ini/ini"
)

// ConfigFileName is looked up in the processed root by LoadConfig.
const ConfigFileName = ".kushnrc"

// Config holds settings read from the optional .kushnrc INI file:
//
//	[output]
//	name = kushn_result.json
//
//	[hash]
//	algorithm = sha256
//
//	[scan]
//	policy = strict
//
// Command-line flags override config values, which override the defaults.
type Config struct {
	OutputName string
	Algorithm  string
	Policy     Policy
}

// DefaultConfig returns the settings used when no config file is present.
func DefaultConfig() *Config {
	return &Config{
		OutputName: DefaultManifestName,
		Algorithm:  "sha256",
		Policy:     PolicyStrict,
	}
}

// LoadConfig reads the .kushnrc file from root. A missing file yields the
// defaults; a present but invalid file is an error.
func LoadConfig(root string) (*Config, error) {
	cfg := DefaultConfig()

	path := filepath.Join(root, ConfigFileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	iniFile, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
	}

	if v := iniFile.Section("output").Key("name").String(); v != "" {
		cfg.OutputName = v
	}
	if v := iniFile.Section("hash").Key("algorithm").String(); v != "" {
		if _, err := GetAlgorithm(v); err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
		cfg.Algorithm = v
	}
	switch v := iniFile.Section("scan").Key("policy").String(); v {
	case "", "strict":
		cfg.Policy = PolicyStrict
	case "lenient":
		cfg.Policy = PolicyLenient
	default:
		return nil, fmt.Errorf("config file %s: unknown scan policy %q", path, v)
	}

	return cfg, nil
}
