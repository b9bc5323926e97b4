// Package config provides thread-safe configuration management for d3l. The
// configuration is an INI file whose values are addressed as "section.key";
// keys missing from the file fall back to the Defaults table.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/ini.v1"
)

// Config manages the d3l configuration file with thread-safe operations
type Config struct {
	filePath string
	file     *ini.File
	loaded   bool // Track if configuration has been loaded from disk
	mu       sync.Mutex
}

// DefaultPath returns $HOME/.d3l.ini, or .d3l.ini when no home is known
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".d3l.ini"
	}
	return filepath.Join(home, ".d3l.ini")
}

// New creates a new Config instance. An empty path means DefaultPath.
func New(filePath string) *Config {
	if filePath == "" {
		filePath = DefaultPath()
	}

	return &Config{
		filePath: filePath,
		file:     ini.Empty(),
	}
}

// ensureLoaded loads configuration data from disk once.
// This method must only be called while holding c.mu.Lock.
func (c *Config) ensureLoaded() error {
	if c.loaded {
		return nil
	}
	return c.load()
}

// splitKey turns "section.key" into its parts; a key without a dot lives in
// the default section
func splitKey(key string) (string, string) {
	if i := strings.LastIndex(key, "."); i >= 0 {
		return key[:i], key[i+1:]
	}
	return ini.DefaultSection, key
}

// Load reads configuration from file
func (c *Config) Load() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load()
}

func (c *Config) load() error {
	// If file doesn't exist, that's okay - we'll create it on Save
	if _, err := os.Stat(c.filePath); os.IsNotExist(err) {
		c.loaded = true
		return nil
	}

	file, err := ini.Load(c.filePath)
	if err != nil {
		return fmt.Errorf("failed to load config file: %w", err)
	}

	c.file = file
	c.loaded = true
	return nil
}

// save writes configuration to file using atomic write pattern.
// This method must only be called while holding c.mu.Lock.
func (c *Config) save() error {
	dir := filepath.Dir(c.filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	tmpFile, err := os.CreateTemp(dir, ".d3l.ini.tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath) // Cleanup on error

	if err := tmpFile.Chmod(0600); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to set permissions on temp file: %w", err)
	}

	if _, err := c.file.WriteTo(tmpFile); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, c.filePath); err != nil {
		return fmt.Errorf("failed to rename temp file to config: %w", err)
	}

	return nil
}

// Save writes the current configuration to disk
func (c *Config) Save() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.save()
}

// Get retrieves a configuration value (thread-safe)
func (c *Config) Get(key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ensureLoaded(); err != nil {
		return "", fmt.Errorf("failed to load config: %w", err)
	}

	section, name := splitKey(key)
	sec, err := c.file.GetSection(section)
	if err != nil || !sec.HasKey(name) {
		return "", fmt.Errorf("config key not found: %s", key)
	}
	return sec.Key(name).String(), nil
}

// GetOrDefault retrieves a value or returns default if not found (thread-safe)
// First checks the config, then the Defaults table, then the provided fallback
func (c *Config) GetOrDefault(key, defaultValue string) string {
	if value, err := c.Get(key); err == nil {
		return value
	}
	if tableDefault, exists := Defaults[key]; exists {
		return tableDefault
	}
	return defaultValue
}

// valueKey wraps a raw value in an ini key to reuse its parsers
func valueKey(key, value string) (*ini.Key, error) {
	k, err := ini.Empty().Section(ini.DefaultSection).NewKey("value", value)
	if err != nil {
		return nil, fmt.Errorf("invalid value for %s: %w", key, err)
	}
	return k, nil
}

// GetBool parses a boolean value (true/false, yes/no, on/off, 1/0),
// falling back to the Defaults table
func (c *Config) GetBool(key string) (bool, error) {
	k, err := valueKey(key, c.GetOrDefault(key, "false"))
	if err != nil {
		return false, err
	}
	b, err := k.Bool()
	if err != nil {
		return false, fmt.Errorf("invalid boolean for %s: %w", key, err)
	}
	return b, nil
}

// GetInt parses an integer value, falling back to the Defaults table
func (c *Config) GetInt(key string) (int, error) {
	k, err := valueKey(key, c.GetOrDefault(key, "0"))
	if err != nil {
		return 0, err
	}
	n, err := k.Int()
	if err != nil {
		return 0, fmt.Errorf("invalid integer for %s: %w", key, err)
	}
	return n, nil
}

// Set sets a configuration value and saves the file (thread-safe)
// Automatically loads existing configuration if not already loaded to prevent data loss
func (c *Config) Set(key, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ensureLoaded(); err != nil {
		return fmt.Errorf("failed to load existing config before set: %w", err)
	}

	section, name := splitKey(key)
	c.file.Section(section).Key(name).SetValue(value)
	return c.save()
}

// Exists checks if a key is present in the file (thread-safe)
func (c *Config) Exists(key string) bool {
	_, err := c.Get(key)
	return err == nil
}

// GetAll returns all configuration values as "section.key" pairs (thread-safe)
func (c *Config) GetAll() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()

	result := map[string]string{}
	if err := c.ensureLoaded(); err != nil {
		return result
	}

	for _, sec := range c.file.Sections() {
		for _, key := range sec.Keys() {
			name := key.Name()
			if sec.Name() != ini.DefaultSection {
				name = sec.Name() + "." + name
			}
			result[name] = key.String()
		}
	}
	return result
}

// Delete removes a configuration key and saves the file (thread-safe)
func (c *Config) Delete(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ensureLoaded(); err != nil {
		return fmt.Errorf("failed to load existing config before delete: %w", err)
	}

	section, name := splitKey(key)
	if sec, err := c.file.GetSection(section); err == nil {
		sec.DeleteKey(name)
	}
	return c.save()
}

// FilePath returns the configuration file path
func (c *Config) FilePath() string {
	return c.filePath
}
