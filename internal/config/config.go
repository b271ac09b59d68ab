// Package config provides XML-based configuration with environment overrides.
package config

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// AppConfig is the root XML configuration structure.
type AppConfig struct {
	XMLName xml.Name `xml:"XMLValidator"`

	Server     ServerConfig     `xml:"Server"`
	Storage    StorageConfig    `xml:"Storage"`
	Processing ProcessingConfig `xml:"Processing"`
	Advanced   AdvancedConfig   `xml:"Advanced"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port         int    `xml:"Port"`
	BindAddress  string `xml:"BindAddress"`
	EnableCORS   bool   `xml:"EnableCORS"`
	AllowOrigins string `xml:"AllowOrigins"`
	ReadTimeout  int    `xml:"ReadTimeoutSeconds"`
	WriteTimeout int    `xml:"WriteTimeoutSeconds"`
	IdleTimeout  int    `xml:"IdleTimeoutSeconds"`
	BodyLimit    string `xml:"BodyLimit"`
}

// StorageConfig contains temporary storage settings.
type StorageConfig struct {
	// TempDirectory is the scratch root for per-request workspaces.
	// Empty means a subdirectory of the system temp directory.
	TempDirectory string `xml:"TempDirectory"`
	MaxUploadSize string `xml:"MaxUploadSize"`
}

// ProcessingConfig contains workspace sweep and response settings.
type ProcessingConfig struct {
	SweepIntervalMinutes   int  `xml:"SweepIntervalMinutes"`
	WorkspaceMaxAgeMinutes int  `xml:"WorkspaceMaxAgeMinutes"`
	EnableCompression      bool `xml:"EnableCompression"`
	CompressionLevel       int  `xml:"CompressionLevel"`
}

// AdvancedConfig contains logging and tuning options.
type AdvancedConfig struct {
	LogLevel             string `xml:"LogLevel"`
	EnableRequestLogging bool   `xml:"EnableRequestLogging"`
	Debug                bool   `xml:"Debug"`
	ProfilePath          string `xml:"ProfilePath"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:         8000,
			BindAddress:  "0.0.0.0",
			EnableCORS:   false,
			AllowOrigins: "*",
			ReadTimeout:  30,
			WriteTimeout: 30,
			IdleTimeout:  120,
			BodyLimit:    "100M",
		},
		Storage: StorageConfig{
			TempDirectory: "",
			MaxUploadSize: "100M",
		},
		Processing: ProcessingConfig{
			SweepIntervalMinutes:   5,
			WorkspaceMaxAgeMinutes: 30,
			EnableCompression:      true,
			CompressionLevel:       5,
		},
		Advanced: AdvancedConfig{
			LogLevel:             "info",
			EnableRequestLogging: true,
			Debug:                false,
			ProfilePath:          "",
		},
	}
}

// LoadConfig loads configuration from an XML file, creating it with defaults
// on first run.
func LoadConfig(configPath string) (*AppConfig, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		config := DefaultConfig()
		if err := config.Save(configPath); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
		config.applyEnvironmentOverrides()
		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := xml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config.applyEnvironmentOverrides()
	config.resolvePaths(filepath.Dir(configPath))

	return config, nil
}

// Save writes the configuration to an XML file.
func (c *AppConfig) Save(configPath string) error {
	output, err := xml.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(xml.Header + "\n<!-- XML Validator Configuration -->\n<!-- This file is auto-generated on first run -->\n\n")
	content := append(header, output...)

	if err := os.WriteFile(configPath, content, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// applyEnvironmentOverrides allows environment variables to override config values.
func (c *AppConfig) applyEnvironmentOverrides() {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Server.Port = p
		}
	}

	if tempDir := os.Getenv("TEMP_DIR"); tempDir != "" {
		c.Storage.TempDirectory = tempDir
	}

	if maxSize := os.Getenv("MAX_UPLOAD_SIZE"); maxSize != "" {
		c.Storage.MaxUploadSize = maxSize
		c.Server.BodyLimit = maxSize
	}

	if level := os.Getenv("LOG_LEVEL"); level != "" {
		c.Advanced.LogLevel = level
	}

	if debug := os.Getenv("DEBUG"); debug != "" {
		c.Advanced.Debug = debug == "1" || strings.EqualFold(debug, "true")
	}
}

// resolvePaths converts relative paths to absolute based on config file location.
func (c *AppConfig) resolvePaths(configDir string) {
	if c.Storage.TempDirectory != "" && !filepath.IsAbs(c.Storage.TempDirectory) {
		c.Storage.TempDirectory = filepath.Join(configDir, c.Storage.TempDirectory)
	}
	if c.Advanced.ProfilePath != "" && !filepath.IsAbs(c.Advanced.ProfilePath) {
		c.Advanced.ProfilePath = filepath.Join(configDir, c.Advanced.ProfilePath)
	}
}

// GetServerAddr returns the server bind address.
func (c *AppConfig) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.BindAddress, c.Server.Port)
}

// MaxUploadBytes returns the configured maximum upload size in bytes.
// Unparseable values fall back to 100MB.
func (c *AppConfig) MaxUploadBytes() int64 {
	n, err := ParseSize(c.Storage.MaxUploadSize)
	if err != nil {
		return 100 * 1024 * 1024
	}
	return n
}

// EnsureDirectories creates the temp directory if one is configured.
func (c *AppConfig) EnsureDirectories() error {
	if c.Storage.TempDirectory == "" {
		return nil
	}
	if err := os.MkdirAll(c.Storage.TempDirectory, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", c.Storage.TempDirectory, err)
	}
	return nil
}

// ParseSize parses sizes like "100M", "2G", "512K" or a plain byte count.
func ParseSize(s string) (int64, error) {
	s = strings.TrimSpace(strings.ToUpper(s))
	if s == "" {
		return 0, fmt.Errorf("empty size")
	}

	multiplier := int64(1)
	switch s[len(s)-1] {
	case 'K':
		multiplier = 1024
		s = s[:len(s)-1]
	case 'M':
		multiplier = 1024 * 1024
		s = s[:len(s)-1]
	case 'G':
		multiplier = 1024 * 1024 * 1024
		s = s[:len(s)-1]
	}

	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q: %w", s, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("negative size %q", s)
	}

	return n * multiplier, nil
}
