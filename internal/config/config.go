package config

import (
	"ctrlsheet/internal/logger"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Scan    ScanConfig    `toml:"scan"`
	Extract ExtractConfig `toml:"extract"`
	Compare CompareConfig `toml:"compare"`
	UI      UIConfig      `toml:"ui"`
}

type ScanConfig struct {
	InputDirectory  string `toml:"input_directory"`
	OutputDirectory string `toml:"output_directory"`
}

type ExtractConfig struct {
	OutputSuffix string `toml:"output_suffix"`
}

type CompareConfig struct {
	OutputSuffix   string `toml:"output_suffix"`
	TrimWhitespace bool   `toml:"trim_whitespace"`
	IgnoreCase     bool   `toml:"ignore_case"`
}

type UIConfig struct {
	RowsPerPage int `toml:"rows_per_page"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		Scan: ScanConfig{
			InputDirectory:  ".",
			OutputDirectory: ".",
		},
		Extract: ExtractConfig{
			OutputSuffix: "_extracted",
		},
		Compare: CompareConfig{
			OutputSuffix:   "_conclusion",
			TrimWhitespace: true,
			IgnoreCase:     true,
		},
		UI: UIConfig{
			RowsPerPage: 20,
		},
	}
}

// LoadConfig loads configuration from the specified config file path
func LoadConfig(configPath string) (*Config, error) {
	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		// Create configs directory if it doesn't exist
		configDir := filepath.Dir(configPath)
		if err := os.MkdirAll(configDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create config directory: %v", err)
		}

		defaultConfig := Default()
		err = SaveConfig(configPath, defaultConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to create default config: %v", err)
		}

		logger.Info("Created default config file", "path", configPath)
		return defaultConfig, nil
	}

	// Decode the file over the defaults so a partial config keeps the
	// documented values for everything it omits, booleans included
	config := *Default()
	config.Scan.OutputDirectory = ""
	_, err := toml.DecodeFile(configPath, &config)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file %s: %v", configPath, err)
	}

	// Output directory follows the input directory unless set explicitly
	if config.Scan.OutputDirectory == "" {
		config.Scan.OutputDirectory = config.Scan.InputDirectory
	}

	logger.Info("Loaded configuration", "path", configPath)
	return &config, nil
}

// SaveConfig saves configuration to the specified config file path
func SaveConfig(configPath string, config *Config) error {
	file, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("failed to create config file: %v", err)
	}
	defer file.Close()

	encoder := toml.NewEncoder(file)
	err = encoder.Encode(config)
	if err != nil {
		return fmt.Errorf("failed to encode config: %v", err)
	}

	logger.Info("Saved configuration", "path", configPath)
	return nil
}
