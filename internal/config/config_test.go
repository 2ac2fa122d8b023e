package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name          string
		fileContent   string
		wantErr       bool
		wantErrMsg    string
		expectedOrg   string
		expectedIssue int
	}{
		{
			name: "valid config",
			fileContent: `org: testorg
repo: testrepo
issue_org: trackerorg
issue_repo: tracker
issue_number: 42
close_issue: true`,
			wantErr:       false,
			expectedOrg:   "testorg",
			expectedIssue: 42,
		},
		{
			name: "minimal config",
			fileContent: `org: minimalorg
repo: minimalrepo`,
			wantErr:       false,
			expectedOrg:   "minimalorg",
			expectedIssue: 0,
		},
		{
			name:        "file not found",
			fileContent: "",
			wantErr:     true,
			wantErrMsg:  "failed to read config file",
		},
		{
			name:        "invalid yaml",
			fileContent: "invalid: yaml: content: [",
			wantErr:     true,
			wantErrMsg:  "failed to parse config file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tempDir := t.TempDir()
			configFile := filepath.Join(tempDir, "config.yaml")

			if tt.name != "file not found" {
				if err := os.WriteFile(configFile, []byte(tt.fileContent), 0644); err != nil {
					t.Fatalf("failed to write test file: %v", err)
				}
			}

			config, err := LoadConfig(configFile)

			if tt.wantErr {
				if err == nil {
					t.Errorf("LoadConfig() expected error, got nil")
					return
				}
				if tt.wantErrMsg != "" && !strings.Contains(err.Error(), tt.wantErrMsg) {
					t.Errorf("LoadConfig() error = %v, want error containing %v", err, tt.wantErrMsg)
				}
				return
			}

			if err != nil {
				t.Errorf("LoadConfig() unexpected error = %v", err)
				return
			}

			if config.Org != tt.expectedOrg {
				t.Errorf("LoadConfig() org = %v, want %v", config.Org, tt.expectedOrg)
			}

			if config.IssueNumber != tt.expectedIssue {
				t.Errorf("LoadConfig() issue_number = %v, want %v", config.IssueNumber, tt.expectedIssue)
			}
		})
	}
}

func TestSaveConfig(t *testing.T) {
	tests := []struct {
		name   string
		config *Config
	}{
		{
			name: "full config",
			config: &Config{
				Org:         "testorg",
				Repo:        "testrepo",
				IssueOrg:    "trackerorg",
				IssueRepo:   "tracker",
				IssueNumber: 7,
				CloseIssue:  true,
			},
		},
		{
			name: "target coordinates only",
			config: &Config{
				Org:  "testorg",
				Repo: "testrepo",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tempDir := t.TempDir()
			configFile := filepath.Join(tempDir, "config.yaml")

			if err := SaveConfig(configFile, tt.config); err != nil {
				t.Errorf("SaveConfig() unexpected error = %v", err)
				return
			}

			// Verify the file was created and can be loaded back
			loadedConfig, err := LoadConfig(configFile)
			if err != nil {
				t.Errorf("SaveConfig() created invalid file: %v", err)
				return
			}

			if loadedConfig.Org != tt.config.Org {
				t.Errorf("SaveConfig() saved org = %v, want %v", loadedConfig.Org, tt.config.Org)
			}

			if loadedConfig.IssueRepo != tt.config.IssueRepo {
				t.Errorf("SaveConfig() saved issue_repo = %v, want %v", loadedConfig.IssueRepo, tt.config.IssueRepo)
			}

			if loadedConfig.CloseIssue != tt.config.CloseIssue {
				t.Errorf("SaveConfig() saved close_issue = %v, want %v", loadedConfig.CloseIssue, tt.config.CloseIssue)
			}
		})
	}
}
