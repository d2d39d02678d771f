// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"gopkg.in/yaml.v3"
)

// ConfigEnvVar names an explicit configuration file, checked before the
// standard locations.
const ConfigEnvVar = "JUDGMENT_EXTRACT_CONFIG"

// Classifier providers.
const (
	ProviderRule   = "rule"
	ProviderOpenAI = "openai"
)

// ExtractionConfig tunes the rule-based extractors.
type ExtractionConfig struct {
	// HeadRunes is the leading region basic fields are read from.
	HeadRunes int `yaml:"head_runes"`
	// LawyerTail is the share of the document, from the end, searched for
	// representation passages.
	LawyerTail float64 `yaml:"lawyer_tail"`
	// ChineseRatio is the CJK share above which a document is Chinese.
	ChineseRatio float64 `yaml:"chinese_ratio"`
}

// Config represents the application configuration
type Config struct {
	// Default settings
	Defaults struct {
		Format    string `yaml:"format"`
		Fields    string `yaml:"fields"`
		Output    string `yaml:"output"`
		Workers   int    `yaml:"workers"`
		Verbose   bool   `yaml:"verbose"`
		Debug     bool   `yaml:"debug"`
		NoColor   bool   `yaml:"no_color"`
		Quiet     bool   `yaml:"quiet"`
		Recursive bool   `yaml:"recursive"`
		Classify  bool   `yaml:"classify"`
	} `yaml:"defaults"`

	Extraction ExtractionConfig `yaml:"extraction"`

	// PDF decoding
	Decoder struct {
		Backends []string `yaml:"backends"`
		MaxPages int      `yaml:"max_pages"`
		Validate bool     `yaml:"validate"`
	} `yaml:"decoder"`

	// Semantic classifier settings. The API key itself is never stored here;
	// APIKeyEnv names the environment variable that holds it.
	Classifier struct {
		Provider         string `yaml:"provider"`
		BaseURL          string `yaml:"base_url"`
		Model            string `yaml:"model"`
		APIKeyEnv        string `yaml:"api_key_env"`
		TimeoutSeconds   int    `yaml:"timeout_seconds"`
		MaxRetries       int    `yaml:"max_retries"`
		FailureThreshold int    `yaml:"failure_threshold"`
	} `yaml:"classifier"`

	// Record store
	Store struct {
		DSN string `yaml:"dsn"`
	} `yaml:"store"`

	// Profiles
	Profiles map[string]Profile `yaml:"profiles"`
}

// Profile represents a named set of overrides
type Profile struct {
	Format      string            `yaml:"format"`
	Fields      string            `yaml:"fields"`
	Workers     int               `yaml:"workers"`
	Verbose     bool              `yaml:"verbose"`
	Debug       bool              `yaml:"debug"`
	NoColor     bool              `yaml:"no_color"`
	Recursive   bool              `yaml:"recursive"`
	Classify    bool              `yaml:"classify"`
	Store       string            `yaml:"store"`
	Description string            `yaml:"description"`
	Extraction  *ExtractionConfig `yaml:"extraction,omitempty"`
}

// DefaultWorkers is min(NumCPU, 8).
func DefaultWorkers() int {
	return min(runtime.NumCPU(), 8)
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	config := &Config{
		Profiles: make(map[string]Profile),
	}

	// Set default values
	config.Defaults.Format = "text"
	config.Defaults.Fields = "all"
	config.Defaults.Workers = DefaultWorkers()

	config.Extraction = ExtractionConfig{
		HeadRunes:    15000,
		LawyerTail:   0.2,
		ChineseRatio: 0.1,
	}

	config.Decoder.Backends = []string{"ledongthuc", "plaintext"}
	config.Decoder.Validate = true

	config.Classifier.Provider = ProviderRule
	config.Classifier.Model = "gpt-4o-mini"
	config.Classifier.APIKeyEnv = "OPENAI_API_KEY"
	config.Classifier.TimeoutSeconds = 60
	config.Classifier.MaxRetries = 3
	config.Classifier.FailureThreshold = 5

	config.Profiles["fast"] = Profile{
		Format:      "json",
		Fields:      "all",
		Classify:    false,
		Description: "Rule-based extraction only, JSON output",
	}
	config.Profiles["full"] = Profile{
		Format:      "xlsx",
		Fields:      "all",
		Classify:    true,
		Description: "Extraction plus semantic classification, spreadsheet output",
	}

	return config
}

// LoadConfig loads configuration from the specified file path
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	// If no config file specified, return default config
	if configPath == "" {
		return config, nil
	}

	// Read config file
	cleanPath := filepath.Clean(configPath)
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	defaultValidate := config.Decoder.Validate

	// Parse YAML
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	// Restore defaults if not explicitly set in config file
	if !containsField(data, "decoder", "validate") {
		config.Decoder.Validate = defaultValidate
	}
	if config.Profiles == nil {
		config.Profiles = make(map[string]Profile)
	}

	// Validate the configuration
	if err := ValidateConfig(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// FindConfigFile looks for a configuration file in standard locations
func FindConfigFile() string {
	if env := os.Getenv(ConfigEnvVar); env != "" && fileExists(env) {
		return env
	}

	// Check current directory first - prioritize config.yaml
	for _, name := range []string{"config.yaml", "judgment-extract.yaml", ".judgment-extract.yaml", ".judgment-extract.yml"} {
		if fileExists(name) {
			return name
		}
	}

	// User configuration directory: XDG_CONFIG_HOME, ~/Library/Application
	// Support or %AppData% depending on the platform
	if dir, err := os.UserConfigDir(); err == nil {
		for _, name := range []string{"config.yaml", "config.yml"} {
			configFile := filepath.Join(dir, "judgment-extract", name)
			if fileExists(configFile) {
				return configFile
			}
		}
	}

	// Check legacy location in home directory
	if home, err := os.UserHomeDir(); err == nil {
		homeConfig := filepath.Join(home, ".judgment-extract.yaml")
		if fileExists(homeConfig) {
			return homeConfig
		}
	}

	return ""
}

// fileExists checks if a file exists and is not a directory
func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// ListProfiles returns the available profile names, sorted
func (c *Config) ListProfiles() []string {
	profiles := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		profiles = append(profiles, name)
	}
	sort.Strings(profiles)
	return profiles
}

// GetProfile returns a profile by name, or nil if not found
func (c *Config) GetProfile(name string) *Profile {
	if profile, exists := c.Profiles[name]; exists {
		return &profile
	}
	return nil
}

// containsField reports whether the YAML document sets the nested key path.
func containsField(data []byte, path ...string) bool {
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return false
	}
	current := raw
	for i, key := range path {
		value, exists := current[key]
		if !exists {
			return false
		}
		if i == len(path)-1 {
			return true
		}
		next, ok := value.(map[string]interface{})
		if !ok {
			return false
		}
		current = next
	}
	return false
}

// ValidateConfig checks value ranges
func ValidateConfig(config *Config) error {
	if config == nil {
		return fmt.Errorf("configuration cannot be nil")
	}

	if err := validateExtraction(config.Extraction); err != nil {
		return fmt.Errorf("extraction: %w", err)
	}
	if config.Defaults.Workers < 0 {
		return fmt.Errorf("defaults: workers must not be negative, got %d", config.Defaults.Workers)
	}
	if config.Decoder.MaxPages < 0 {
		return fmt.Errorf("decoder: max_pages must not be negative, got %d", config.Decoder.MaxPages)
	}

	switch config.Classifier.Provider {
	case "", ProviderRule, ProviderOpenAI:
	default:
		return fmt.Errorf("classifier: unknown provider %q", config.Classifier.Provider)
	}
	if config.Classifier.MaxRetries < 0 || config.Classifier.TimeoutSeconds < 0 {
		return fmt.Errorf("classifier: retries and timeout must not be negative")
	}

	// Validate profile-specific settings
	for profileName, profile := range config.Profiles {
		if profile.Workers < 0 {
			return fmt.Errorf("profile '%s': workers must not be negative", profileName)
		}
		if profile.Extraction != nil {
			if err := validateExtraction(*profile.Extraction); err != nil {
				return fmt.Errorf("profile '%s': extraction: %w", profileName, err)
			}
		}
	}

	return nil
}

func validateExtraction(e ExtractionConfig) error {
	if e.HeadRunes < 0 {
		return fmt.Errorf("head_runes must not be negative, got %d", e.HeadRunes)
	}
	if e.LawyerTail < 0 || e.LawyerTail > 1 {
		return fmt.Errorf("lawyer_tail must be within [0, 1], got %v", e.LawyerTail)
	}
	if e.ChineseRatio < 0 || e.ChineseRatio > 1 {
		return fmt.Errorf("chinese_ratio must be within [0, 1], got %v", e.ChineseRatio)
	}
	return nil
}

// LoadConfigOrDefault loads configuration from configFile (or searches standard locations
// when configFile is empty). If loading fails, it returns a default configuration.
func LoadConfigOrDefault(configFile string) *Config {
	configPath := configFile
	if configPath == "" {
		configPath = FindConfigFile()
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		// Fall back to defaults; callers should not crash on a missing/bad config file.
		cfg = DefaultConfig()
	}
	return cfg
}
