// Package config loads the optional Quill launch configuration.
// The file is read once at startup and never written back by the running
// editor; appearance-panel state in particular always starts from built-in
// defaults and is not persisted here.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gobwas/glob"
	"gopkg.in/yaml.v3"
)

// Config represents the application launch configuration.
type Config struct {
	Editor struct {
		DefaultDirectory string `yaml:"default_directory"` // Directory opened in the browser at startup
		Autosave         bool   `yaml:"autosave"`          // Write-through save on every buffer change
	} `yaml:"editor"`
	Browser struct {
		ShowHidden bool     `yaml:"show_hidden"` // Include dot-files in listings
		Ignore     []string `yaml:"ignore"`      // Glob patterns for entries to hide
	} `yaml:"browser"`
	Highlight struct {
		Grammar string `yaml:"grammar"` // Fixed grammar for the decorator
		Style   string `yaml:"style"`   // Chroma style name
	} `yaml:"highlight"`
	Theme struct {
		Name     string `yaml:"name"`     // Theme name (default, dark, light, etc.)
		Primary  string `yaml:"primary"`  // Primary color for branding
		Success  string `yaml:"success"`  // Success message color
		Warning  string `yaml:"warning"`  // Warning message color
		Error    string `yaml:"error"`    // Error message color
		Info     string `yaml:"info"`     // Informational message color
		Emphasis string `yaml:"emphasis"` // Emphasis color for text that should stand out
		Border   string `yaml:"border"`   // Border color for frames
	} `yaml:"theme"`
	Log struct {
		Debug bool `yaml:"debug"` // Enable debug-level logging
	} `yaml:"log"`
}

// LoadConfig loads configuration from the default location
// (~/.config/quill/config.yaml).
func LoadConfig() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	configPath := filepath.Join(home, ".config", "quill", "config.yaml")
	return LoadConfigFile(configPath)
}

// LoadConfigFile loads configuration from a specific file path.
// If the file doesn't exist, returns default configuration.
func LoadConfigFile(path string) (*Config, error) {
	// Start with default configuration; fields the file omits keep their
	// defaults.
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	// A theme name alone selects a predefined palette; explicit color
	// keys in the file still override individual entries.
	if cfg.Theme.Name != "" {
		cfg.ApplyTheme(cfg.Theme.Name)
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns the default configuration with safe defaults.
func defaultConfig() *Config {
	cfg := &Config{}

	cfg.Editor.DefaultDirectory = ""
	cfg.Editor.Autosave = true // Write-through on change, as the editor shipped

	cfg.Browser.ShowHidden = true
	cfg.Browser.Ignore = []string{}

	cfg.Highlight.Grammar = "rust"
	cfg.Highlight.Style = "dracula"

	cfg.ApplyTheme("default")

	return cfg
}

// SaveConfig saves the configuration to the specified file.
// It creates parent directories if they don't exist. Used by `quill init`
// to seed a starting config; the running editor never calls this.
func SaveConfig(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid.
// Returns error if any settings are invalid.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("nil config")
	}

	if c.Highlight.Grammar == "" {
		return fmt.Errorf("highlight grammar must not be empty")
	}
	if c.Highlight.Style == "" {
		return fmt.Errorf("highlight style must not be empty")
	}

	for i, pattern := range c.Browser.Ignore {
		if pattern == "" {
			return fmt.Errorf("ignore pattern %d: pattern cannot be empty", i)
		}
		if _, err := glob.Compile(pattern); err != nil {
			return fmt.Errorf("ignore pattern %d: %w", i, err)
		}
	}

	if c.Editor.DefaultDirectory != "" {
		info, err := os.Stat(c.Editor.DefaultDirectory)
		if err != nil {
			if os.IsNotExist(err) {
				return fmt.Errorf("default directory does not exist: %s", c.Editor.DefaultDirectory)
			}
			return fmt.Errorf("error accessing default directory: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("default directory is not a directory: %s", c.Editor.DefaultDirectory)
		}
	}

	return nil
}

// IgnoreMatchers compiles the browser ignore patterns.
// Validate has already rejected patterns that fail to compile.
func (c *Config) IgnoreMatchers() []glob.Glob {
	matchers := make([]glob.Glob, 0, len(c.Browser.Ignore))
	for _, pattern := range c.Browser.Ignore {
		g, err := glob.Compile(pattern)
		if err != nil {
			continue
		}
		matchers = append(matchers, g)
	}
	return matchers
}

// New creates a new configuration instance with default values.
func New() *Config {
	return defaultConfig()
}

// GetTheme returns a predefined theme configuration by name.
// If the theme doesn't exist, returns the default theme.
func GetTheme(name string) map[string]string {
	themes := map[string]map[string]string{
		"default": {
			"primary":  "213", // Purple
			"success":  "114", // Green
			"warning":  "220", // Yellow
			"error":    "196", // Red
			"info":     "39",  // Blue
			"emphasis": "212", // Light Pink
			"border":   "213", // Purple
		},
		"dark": {
			"primary":  "105", // Dark Blue
			"success":  "78",  // Dark Green
			"warning":  "214", // Dark Yellow
			"error":    "160", // Dark Red
			"info":     "33",  // Dark Blue
			"emphasis": "147", // Light Blue
			"border":   "105", // Dark Blue
		},
		"light": {
			"primary":  "135", // Light Purple
			"success":  "150", // Light Green
			"warning":  "222", // Light Yellow
			"error":    "210", // Light Red
			"info":     "117", // Light Blue
			"emphasis": "219", // Very Light Pink
			"border":   "135", // Light Purple
		},
		"monochrome": {
			"primary":  "245", // Light Grey
			"success":  "252", // White
			"warning":  "241", // Medium Grey
			"error":    "232", // Black
			"info":     "248", // Grey
			"emphasis": "255", // Bright White
			"border":   "245", // Light Grey
		},
	}

	if theme, exists := themes[name]; exists {
		return theme
	}

	return themes["default"]
}

// ApplyTheme sets the theme in the configuration.
// It updates the theme colors based on the theme name.
func (c *Config) ApplyTheme(name string) {
	theme := GetTheme(name)

	c.Theme.Name = name
	c.Theme.Primary = theme["primary"]
	c.Theme.Success = theme["success"]
	c.Theme.Warning = theme["warning"]
	c.Theme.Error = theme["error"]
	c.Theme.Info = theme["info"]
	c.Theme.Emphasis = theme["emphasis"]
	c.Theme.Border = theme["border"]
}

// ListThemes returns a list of available theme names.
func ListThemes() []string {
	return []string{"default", "dark", "light", "monochrome"}
}
