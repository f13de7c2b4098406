// Package wcconfig loads default translation options from a YAML
// configuration file located via XDG, and merges them with CLI-flag
// overrides.
package wcconfig

import (
	"log"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config is the YAML-serializable set of default translation options.
type Config struct {
	KeywordSpec string `yaml:"keywordSpec"`
	EOLStyle    string `yaml:"eolStyle"`
	Repair      bool   `yaml:"repair"`
	Expand      bool   `yaml:"expand"`
}

// DefaultConfigYaml is written to disk the first time ConfigPath does not
// exist.
var DefaultConfigYaml = []byte(`# wcxlate default configuration
keywordSpec: "Revision Date Author URL Id"
eolStyle: "lf"
repair: false
expand: true
`)

// ConfigPath returns the path to the configuration file.
func ConfigPath() (string, error) {
	path := filepath.Join("wcxlate", "config.yaml")
	return xdg.ConfigFile(path)
}

// LoadOrCreateConfig loads the config file if it exists and writes a
// default config file otherwise. If forceDefaultConfig is true (the CLI's
// -noconfig flag), the on-disk file is ignored entirely and the embedded
// default is used. If configPath is non-empty (the CLI's -config flag),
// it is used in place of the XDG-located ConfigPath.
func LoadOrCreateConfig(configPath string, forceDefaultConfig bool) (Config, error) {
	if forceDefaultConfig {
		log.Printf("Using default config\n")
		return unmarshalConfig(DefaultConfigYaml)
	}

	path := configPath
	if path == "" {
		var err error
		path, err = ConfigPath()
		if err != nil {
			return Config{}, errors.Wrap(err, "wcconfig.ConfigPath")
		}
	}

	log.Printf("Loading config from %q\n", path)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		log.Printf("Writing default config to %q\n", path)
		if err := saveDefaultConfig(path); err != nil {
			return Config{}, errors.Wrapf(err, "writing default config to %q", path)
		}
		return unmarshalConfig(DefaultConfigYaml)
	} else if err != nil {
		return Config{}, errors.Wrapf(err, "loading config from %q", path)
	}

	return unmarshalConfig(data)
}

func unmarshalConfig(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(err, "yaml.Unmarshal")
	}
	return cfg, nil
}

func saveDefaultConfig(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "os.MkdirAll")
	}
	if err := os.WriteFile(path, DefaultConfigYaml, 0644); err != nil {
		return errors.Wrap(err, "os.WriteFile")
	}
	return nil
}

// Merge overlays the non-empty string fields of overlay onto base and
// always takes Repair and Expand from overlay, returning the result. CLI
// flags are the overlay.
func Merge(base, overlay Config) Config {
	merged := base
	if overlay.KeywordSpec != "" {
		merged.KeywordSpec = overlay.KeywordSpec
	}
	if overlay.EOLStyle != "" {
		merged.EOLStyle = overlay.EOLStyle
	}
	// Repair and Expand are bare bools with no "unset" state distinct
	// from false; callers that want flag precedence for these track
	// whether the flag was explicitly set and overlay accordingly before
	// calling Merge.
	merged.Repair = overlay.Repair
	merged.Expand = overlay.Expand
	return merged
}
