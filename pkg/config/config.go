package config

import (
	"regexp"

	"github.com/sdejongh/mclean/pkg/keep"
	"github.com/sdejongh/mclean/pkg/logging"
	"github.com/sdejongh/mclean/pkg/models"
)

// Config represents the application configuration
type Config struct {
	Rules   RulesConfig   `yaml:"rules"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// RulesConfig holds classification settings
type RulesConfig struct {
	// Default rule groups, OR-ed with the command-line flags
	models.RuleFlags `yaml:",inline"`

	// Patterns are extra regular expressions for always-disposable names
	Patterns []string `yaml:"patterns"`
	// Whitelist are extra regular expressions for resolved paths never deleted
	Whitelist []string `yaml:"whitelist"`
	// KeepFile is the per-root keep file name, empty to disable
	KeepFile string `yaml:"keep_file"`
}

// OutputConfig holds output-related settings
type OutputConfig struct {
	Format  models.OutputFormat `yaml:"format"`  // "human", "json" or "progress"
	Quiet   bool                `yaml:"quiet"`   // Suppress "entering" lines
	Verbose bool                `yaml:"verbose"` // Print a summary at the end
}

// LoggingConfig holds logging-related settings
type LoggingConfig struct {
	Format string `yaml:"format"` // "json" or "text"
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	File   string `yaml:"file"`   // Log file path (empty = no logging)
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Rules: RulesConfig{
			KeepFile: keep.DefaultFileName,
		},
		Output: OutputConfig{
			Format: models.OutputHuman,
		},
		Logging: LoggingConfig{
			Format: "text",
			Level:  "info",
		},
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	for _, pattern := range c.Rules.Patterns {
		if _, err := regexp.Compile(pattern); err != nil {
			return &models.ValidationError{
				Field:   "rules.patterns",
				Message: "invalid regular expression " + pattern + ": " + err.Error(),
			}
		}
	}

	for _, pattern := range c.Rules.Whitelist {
		if _, err := regexp.Compile(pattern); err != nil {
			return &models.ValidationError{
				Field:   "rules.whitelist",
				Message: "invalid regular expression " + pattern + ": " + err.Error(),
			}
		}
	}

	validFormats := map[models.OutputFormat]bool{
		models.OutputHuman:    true,
		models.OutputJSON:     true,
		models.OutputProgress: true,
	}
	if !validFormats[c.Output.Format] {
		return &models.ValidationError{
			Field:   "output.format",
			Message: "must be 'human', 'json', or 'progress'",
		}
	}

	if _, err := logging.ParseFormat(c.Logging.Format); err != nil {
		return &models.ValidationError{
			Field:   "logging.format",
			Message: "must be 'json' or 'text'",
		}
	}

	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return &models.ValidationError{
			Field:   "logging.level",
			Message: "must be 'debug', 'info', 'warn', or 'error'",
		}
	}

	return nil
}
