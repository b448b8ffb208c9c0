package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sdejongh/mclean/pkg/keep"
	"github.com/sdejongh/mclean/pkg/models"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() error = %v", err)
	}
	if cfg.Rules.Latex || cfg.Rules.Compiled || cfg.Rules.Diff {
		t.Error("no optional rule group should be enabled by default")
	}
	if cfg.Rules.KeepFile != keep.DefaultFileName {
		t.Errorf("KeepFile = %q, want %q", cfg.Rules.KeepFile, keep.DefaultFileName)
	}
	if cfg.Output.Format != models.OutputHuman {
		t.Errorf("Output.Format = %q, want human", cfg.Output.Format)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		field  string
	}{
		{"BadPattern", func(c *Config) { c.Rules.Patterns = []string{"("} }, "rules.patterns"},
		{"BadWhitelist", func(c *Config) { c.Rules.Whitelist = []string{"[z-a]"} }, "rules.whitelist"},
		{"BadOutput", func(c *Config) { c.Output.Format = "xml" }, "output.format"},
		{"BadLogFormat", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"BadLogLevel", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			err := cfg.Validate()
			var verr *models.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate() error = %v, want *models.ValidationError", err)
			}
			if verr.Field != tt.field {
				t.Errorf("Field = %q, want %q", verr.Field, tt.field)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	tempDir := t.TempDir()

	t.Run("Partial", func(t *testing.T) {
		path := filepath.Join(tempDir, "partial.yaml")
		content := "rules:\n  latex: true\n  patterns:\n    - '.*\\.swp'\n  whitelist:\n    - /vendor/\n"
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		cfg, err := LoadFromFile(path)
		if err != nil {
			t.Fatalf("LoadFromFile() error = %v", err)
		}
		if !cfg.Rules.Latex || cfg.Rules.Compiled || cfg.Rules.Diff {
			t.Errorf("rule flags = %+v, want latex only", cfg.Rules.RuleFlags)
		}
		if len(cfg.Rules.Patterns) != 1 || cfg.Rules.Patterns[0] != `.*\.swp` {
			t.Errorf("Patterns = %v", cfg.Rules.Patterns)
		}
		if len(cfg.Rules.Whitelist) != 1 || cfg.Rules.Whitelist[0] != "/vendor/" {
			t.Errorf("Whitelist = %v", cfg.Rules.Whitelist)
		}
		// Untouched sections keep their defaults
		if cfg.Rules.KeepFile != keep.DefaultFileName || cfg.Logging.Level != "info" {
			t.Errorf("defaults lost: %+v", cfg)
		}
	})

	t.Run("ForceIsIgnored", func(t *testing.T) {
		path := filepath.Join(tempDir, "force.yaml")
		if err := os.WriteFile(path, []byte("rules:\n  force: true\n"), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}
		cfg, err := LoadFromFile(path)
		if err != nil {
			t.Fatalf("LoadFromFile() error = %v", err)
		}
		if cfg.Rules.Force {
			t.Error("force must not be settable from a config file")
		}
	})

	t.Run("Missing", func(t *testing.T) {
		if _, err := LoadFromFile(filepath.Join(tempDir, "missing.yaml")); err == nil {
			t.Error("LoadFromFile() should fail for a missing file")
		}
	})

	t.Run("Malformed", func(t *testing.T) {
		path := filepath.Join(tempDir, "bad.yaml")
		if err := os.WriteFile(path, []byte("rules: [unterminated"), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}
		if _, err := LoadFromFile(path); err == nil {
			t.Error("LoadFromFile() should fail for malformed YAML")
		}
	})

	t.Run("Invalid", func(t *testing.T) {
		path := filepath.Join(tempDir, "invalid.yaml")
		if err := os.WriteFile(path, []byte("output:\n  format: xml\n"), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}
		_, err := LoadFromFile(path)
		var verr *models.ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("LoadFromFile() error = %v, want wrapped ValidationError", err)
		}
	})
}

func TestSaveToFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "mclean.yaml")

	cfg := Default()
	cfg.Rules.Compiled = true
	cfg.Rules.Patterns = []string{`core\.[0-9]+`}
	cfg.Output.Quiet = true

	if err := SaveToFile(cfg, path); err != nil {
		t.Fatalf("SaveToFile() error = %v", err)
	}

	loaded, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}
	if !loaded.Rules.Compiled || !loaded.Output.Quiet || len(loaded.Rules.Patterns) != 1 {
		t.Errorf("round trip lost settings: %+v", loaded)
	}

	cfg.Output.Format = "bogus"
	if err := SaveToFile(cfg, path); err == nil {
		t.Error("SaveToFile() should refuse an invalid configuration")
	}
}
