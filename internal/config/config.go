package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Defaults. The input and output names are the fixed dataset paths the pipeline
// is written for; they are relative to the working directory.
const (
	DefaultInputPath     = "World_population_messy.csv"
	DefaultOutputPath    = "world_population_cleaned.csv"
	DefaultChartsDir     = "charts"
	DefaultDashboardAddr = "127.0.0.1:8050"
	DefaultLogLevel      = "info"
)

// Global configuration structure.
type Global struct {
	InputPath      string `mapstructure:"input_path" yaml:"input_path"`
	OutputPath     string `mapstructure:"output_path" yaml:"output_path"`
	ChartsDir      string `mapstructure:"charts_dir" yaml:"charts_dir"`
	DashboardAddr  string `mapstructure:"dashboard_addr" yaml:"dashboard_addr"`
	LogLevel       string `mapstructure:"log_level" yaml:"log_level"`
	WaitForDismiss bool   `mapstructure:"wait_for_dismiss" yaml:"wait_for_dismiss"`
}

// Default returns the configuration used when no file or environment overrides exist.
func Default() *Global {
	return &Global{
		InputPath:      DefaultInputPath,
		OutputPath:     DefaultOutputPath,
		ChartsDir:      DefaultChartsDir,
		DashboardAddr:  DefaultDashboardAddr,
		LogLevel:       DefaultLogLevel,
		WaitForDismiss: true,
	}
}

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".popclean"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.popclean/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		dir, err := configDir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("POPCLEAN")
	v.AutomaticEnv()

	d := Default()
	v.SetDefault("input_path", d.InputPath)
	v.SetDefault("output_path", d.OutputPath)
	v.SetDefault("charts_dir", d.ChartsDir)
	v.SetDefault("dashboard_addr", d.DashboardAddr)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("wait_for_dismiss", d.WaitForDismiss)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := configDir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read; a file that exists must parse
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}
