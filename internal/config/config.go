// Package config loads deadwood's analysis configuration from
// .deadwood/config.json via viper.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config is deadwood's on-disk configuration (schema version 1).
type Config struct {
	Version  int            `json:"version" mapstructure:"version"`
	DeadCode DeadCodeConfig `json:"deadCode" mapstructure:"deadCode"`
	Logging  LoggingConfig  `json:"logging" mapstructure:"logging"`
}

// DeadCodeConfig holds the six recognized analyzer options from the
// external-interfaces section of the design, plus the Scope and Exclude
// reporting filters.
type DeadCodeConfig struct {
	RetainPublic                 bool     `json:"retainPublic" mapstructure:"retainPublic"`
	RetainCgoExported             bool     `json:"retainCgoExported" mapstructure:"retainCgoExported"`
	RetainAssignOnlyProperties   bool     `json:"retainAssignOnlyProperties" mapstructure:"retainAssignOnlyProperties"`
	RetainUnusedInterfaceParams  bool     `json:"retainUnusedInterfaceFuncParams" mapstructure:"retainUnusedInterfaceFuncParams"`
	ExternalMarshalerInterfaces  []string `json:"externalMarshalerInterfaces" mapstructure:"externalMarshalerInterfaces"`
	IgnoreCommentCommands        bool     `json:"ignoreCommentCommands" mapstructure:"ignoreCommentCommands"`
	Scope                        []string `json:"scope" mapstructure:"scope"`
	Exclude                      []string `json:"exclude" mapstructure:"exclude"`
}

// LoggingConfig configures the slog-based logger.
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

// DefaultConfig returns deadwood's default configuration.
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		DeadCode: DeadCodeConfig{
			RetainPublic:                false,
			RetainCgoExported:           true,
			RetainAssignOnlyProperties:  false,
			RetainUnusedInterfaceParams: true,
			ExternalMarshalerInterfaces: nil,
			IgnoreCommentCommands:       false,
			Scope:                       nil,
			Exclude:                     nil,
		},
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
	}
}

// LoadConfig loads configuration from <repoRoot>/.deadwood/config.json,
// falling back to DefaultConfig when the file does not exist.
func LoadConfig(repoRoot string) (*Config, error) {
	v := viper.New()
	v.SetDefault("version", 1)

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(repoRoot, ".deadwood"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to <repoRoot>/.deadwood/config.json.
func (c *Config) Save(repoRoot string) error {
	dir := filepath.Join(repoRoot, ".deadwood")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0o644)
}

// Validate checks the configuration for internal consistency.
func (c *Config) Validate() error {
	if c.Version != 1 {
		return &ValidationError{Field: "version", Message: "unsupported config version"}
	}
	return nil
}

// ValidationError reports an invalid configuration field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
