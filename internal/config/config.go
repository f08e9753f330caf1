// Package config defines the data structures related to configuration and
// includes functions for loading and validating it.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/iwvelando/construction-projection/pkg/constants"
	"github.com/iwvelando/construction-projection/pkg/validation"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for construction-projection.
type Configuration struct {
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`
	Logging  LoggingConfig  `mapstructure:"logging" yaml:"logging,omitempty"`
	Output   OutputConfig   `mapstructure:"output" yaml:"output,omitempty"`
	Server   ServerConfig   `mapstructure:"server" yaml:"server"`
}

// DatabaseConfig selects the ledger database.
type DatabaseConfig struct {
	Driver string `mapstructure:"driver" yaml:"driver,omitempty"` // sqlite, pgx; inferred from dsn when empty
	DSN    string `mapstructure:"dsn" yaml:"dsn"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `mapstructure:"level" yaml:"level,omitempty"`           // debug, info, warn, error
	Format     string `mapstructure:"format" yaml:"format,omitempty"`         // json, console
	OutputFile string `mapstructure:"outputFile" yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format,omitempty"` // pretty, csv
}

// ServerConfig holds HTTP server options.
type ServerConfig struct {
	Address        string `mapstructure:"address" yaml:"address"`
	MaxRequestSize string `mapstructure:"maxRequestSize" yaml:"maxRequestSize"` // e.g. 256K, 1M
	Passphrase     string `mapstructure:"passphrase" yaml:"passphrase,omitempty"`
}

// Defaults returns the configuration used when no file or environment
// override is present.
func Defaults() Configuration {
	return Configuration{
		Database: DatabaseConfig{DSN: constants.DefaultDatabaseDSN},
		Logging:  LoggingConfig{Level: "info", Format: "console"},
		Output:   OutputConfig{Format: constants.OutputFormatPretty},
		Server: ServerConfig{
			Address:        constants.DefaultServerAddress,
			MaxRequestSize: fmt.Sprintf("%d", constants.DefaultMaxRequestSizeBytes),
		},
	}
}

// LoadConfiguration loads the YAML configuration at configPath, layered over
// Defaults and under PROJECTION_* environment variables. A missing file is not
// an error; every value then comes from defaults and the environment.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigType("yml")
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	d := Defaults()
	v.SetDefault("database.driver", d.Database.Driver)
	v.SetDefault("database.dsn", d.Database.DSN)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.outputFile", d.Logging.OutputFile)
	v.SetDefault("output.format", d.Output.Format)
	v.SetDefault("server.address", d.Server.Address)
	v.SetDefault("server.maxRequestSize", d.Server.MaxRequestSize)
	v.SetDefault("server.passphrase", d.Server.Passphrase)

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			v.SetConfigFile(configPath)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("error reading config file, %s", err)
			}
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("error reading config file, %s", err)
		}
	}

	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// Validate checks the configuration for values that would fail at startup.
func (c *Configuration) Validate() error {
	var problems []string

	if strings.TrimSpace(c.Database.DSN) == "" {
		problems = append(problems, "database.dsn cannot be empty")
	}
	switch strings.ToLower(c.Database.Driver) {
	case "", constants.DriverSQLite, "sqlite3", constants.DriverPostgres, "postgres", "postgresql":
	default:
		problems = append(problems, fmt.Sprintf("unsupported database.driver %q", c.Database.Driver))
	}

	switch strings.ToLower(c.Logging.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		problems = append(problems, fmt.Sprintf("unsupported logging.level %q", c.Logging.Level))
	}
	switch strings.ToLower(c.Logging.Format) {
	case "", "json", "console":
	default:
		problems = append(problems, fmt.Sprintf("unsupported logging.format %q", c.Logging.Format))
	}

	if c.Output.Format != "" {
		if err := validation.ValidateOutputFormat(c.Output.Format); err != nil {
			problems = append(problems, err.Error())
		}
	}

	if _, err := ParseSize(c.Server.MaxRequestSize); err != nil {
		problems = append(problems, fmt.Sprintf("server.maxRequestSize: %v", err))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

// RequestSizeBytes returns server.maxRequestSize in bytes, falling back to
// the default for empty or non-positive values.
func (s ServerConfig) RequestSizeBytes() (int64, error) {
	n, err := ParseSize(s.MaxRequestSize)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return constants.DefaultMaxRequestSizeBytes, nil
	}
	return n, nil
}
