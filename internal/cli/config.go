// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-cipher.
//
// go-cipher is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jeremyhahn/go-cipher/pkg/keystore"
	"github.com/jeremyhahn/go-cipher/pkg/logging"
	"github.com/jeremyhahn/go-cipher/pkg/storage/file"
	"gopkg.in/yaml.v3"
)

// Config holds global CLI configuration
type Config struct {
	// ConfigFile is the path to the configuration file
	ConfigFile string `yaml:"-"`

	// KeyDir is the directory for key storage
	KeyDir string `yaml:"key_dir"`

	// Verbose enables verbose logging
	Verbose bool `yaml:"verbose"`

	// DefaultAlgorithm is used when key generate is run without --algorithm
	DefaultAlgorithm string `yaml:"default_algorithm"`

	// DefaultMode is used when key generate is run without --mode
	DefaultMode string `yaml:"default_mode"`

	// DefaultPadding is used when key generate is run without --padding
	DefaultPadding string `yaml:"default_padding"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		KeyDir:           defaultKeyDir(),
		Verbose:          false,
		DefaultAlgorithm: "aes",
		DefaultMode:      "gcm",
		DefaultPadding:   "none",
	}
}

// LoadConfigFile merges settings from the YAML config file, if one exists.
// An explicit --config that cannot be read is an error; the default
// location is optional.
func (c *Config) LoadConfigFile() error {
	path := c.ConfigFile
	explicit := path != ""
	if !explicit {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil
		}
		path = filepath.Join(home, ".cipher.yaml")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// Logger returns a logger honoring the verbose flag.
func (c *Config) Logger() *logging.Logger {
	return logging.NewLogger(c.Verbose)
}

// CreateStore opens the keystore over file-based storage in KeyDir.
// The caller owns the store and must close it.
func (c *Config) CreateStore() (*keystore.Store, error) {
	storageBackend, err := file.New(c.KeyDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage backend: %w", err)
	}
	return keystore.New(&keystore.Config{
		Storage: storageBackend,
		Logger:  c.Logger(),
	})
}

// defaultKeyDir returns the default key storage directory.
func defaultKeyDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".cipher/keys"
	}
	return filepath.Join(home, ".cipher", "keys")
}
