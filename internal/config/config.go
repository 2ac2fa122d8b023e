// Package config provides functions for loading and saving repo-admins configuration files.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the structure of repo-admins.yaml. It holds defaults for
// the resolve command; environment variables and flags override these values.
type Config struct {
	Org         string `yaml:"org"`
	Repo        string `yaml:"repo,omitempty"`
	IssueOrg    string `yaml:"issue_org,omitempty"`
	IssueRepo   string `yaml:"issue_repo,omitempty"`
	IssueNumber int    `yaml:"issue_number,omitempty"`
	CloseIssue  bool   `yaml:"close_issue,omitempty"`
}

// LoadConfig loads the configuration from the specified file
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename) //nolint:gosec // Config filename is from command-line flag
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

// SaveConfig saves the configuration to the specified file
func SaveConfig(filename string, config *Config) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
