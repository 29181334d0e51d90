package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/creasty/defaults"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/scorg/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"
)

// settings is the content of config.yaml. Unset keys keep their defaults.
type settings struct {
	Backend  string `mapstructure:"backend" yaml:"backend" default:"sqlite"`
	DataDir  string `mapstructure:"data_dir" yaml:"data_dir,omitempty"`
	DBFile   string `mapstructure:"db_file" yaml:"db_file" default:"scorg.sqlite"`
	LogLevel string `mapstructure:"log_level" yaml:"log_level" default:"warn"`
}

// storeConfig returns the Dao configuration for dataDir.
func (s settings) storeConfig(dataDir string) types.Config {
	return types.Config{Backend: s.Backend, DataDir: dataDir, DBFile: s.DBFile}
}

func defaultSettings() (settings, error) {
	var s settings
	if err := defaults.Set(&s); err != nil {
		return settings{}, fmt.Errorf("apply defaults: %w", err)
	}
	return s, nil
}

// loadSettings reads config.yaml from configDir with Viper. A missing
// directory or file yields the defaults.
func loadSettings(configDir string) (settings, error) {
	s, err := defaultSettings()
	if err != nil {
		return settings{}, err
	}

	v := viper.New()
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return s, nil
		}
		return settings{}, fmt.Errorf("read config: %w", err)
	}
	if err := v.Unmarshal(&s); err != nil {
		return settings{}, fmt.Errorf("decode config: %w", err)
	}
	if err := s.storeConfig("").Validate(); err != nil {
		return settings{}, fmt.Errorf("config %s: %w", v.ConfigFileUsed(), err)
	}
	return s, nil
}

// writeConfigIfMissing writes s to configDir/config.yaml unless the file
// exists. It reports whether a file was written.
func writeConfigIfMissing(configDir string, s settings) (bool, error) {
	path := filepath.Join(configDir, configFileExt)
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat config file: %w", err)
	}

	data, err := yaml.Marshal(&s)
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}
	header := []byte("# scorg configuration\n")
	if err := os.WriteFile(path, append(header, data...), 0o644); err != nil {
		return false, err
	}
	return true, nil
}
