package config

import (
	"github.com/spf13/afero"
	"golang.org/x/xerrors"
	"gopkg.in/yaml.v2"
)

// Config is the optional YAML configuration file. Everything here can
// also be set on the command line; flags win.
type Config struct {
	APIURL         string   `yaml:"api_url"`
	InputDir       string   `yaml:"input_dir"`
	OutputDir      string   `yaml:"output_dir"`
	NameColumns    []string `yaml:"name_columns"`
	VersionColumns []string `yaml:"version_columns"`
}

func Load(appFs afero.Fs, filePath string) (Config, error) {
	b, err := afero.ReadFile(appFs, filePath)
	if err != nil {
		return Config{}, xerrors.Errorf("unable to read config %s: %w", filePath, err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return Config{}, xerrors.Errorf("unable to parse config %s: %w", filePath, err)
	}
	return c, nil
}
