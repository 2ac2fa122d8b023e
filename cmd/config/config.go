// Package config implements the config command for initializing and updating repo-admins configuration.
package config

import (
	"fmt"
	"log/slog"

	"os/exec"
	"regexp"
	"strings"

	cfg "github.com/alan/repo-admins/internal/config"
	"github.com/spf13/cobra"
)

// NewConfigCmd creates and returns the config command
func NewConfigCmd(globalConfigFile *string, loadConfig func(string) (*cfg.Config, error), saveConfig func(string, *cfg.Config) error) *cobra.Command {
	var (
		org         string
		repo        string
		issueOrg    string
		issueRepo   string
		issueNumber int
		closeIssue  bool
	)

	cobraCmd := &cobra.Command{
		Use:   "config",
		Short: "Initialize a new repo-admins.yaml configuration file",
		Long: `Config creates a new repo-admins.yaml file with defaults for the resolve
command: the target organization and repository, and the tracking issue
coordinates.

When run from a git repository root, it will automatically detect the
organization and repository from the git remote origin. The tracking issue
defaults to the target repository when not configured.`,
		SilenceUsage: true,
		RunE: func(cobraCmd *cobra.Command, _ []string) error {
			closeIssueSet := cobraCmd.Flags().Changed("close-issue")
			return runConfigWithGitDetection(*globalConfigFile, org, repo, issueOrg, issueRepo, issueNumber, closeIssue, closeIssueSet, loadConfig, saveConfig)
		},
	}

	cobraCmd.Flags().StringVarP(&org, "org", "o", "", "GitHub organization (auto-detected from git if available)")
	cobraCmd.Flags().StringVarP(&repo, "repo", "r", "", "GitHub repository name (auto-detected from git if available)")
	cobraCmd.Flags().StringVar(&issueOrg, "issue-org", "", "Organization of the tracking issue")
	cobraCmd.Flags().StringVar(&issueRepo, "issue-repo", "", "Repository of the tracking issue")
	cobraCmd.Flags().IntVarP(&issueNumber, "issue-number", "n", 0, "Tracking issue number")
	cobraCmd.Flags().BoolVar(&closeIssue, "close-issue", false, "Close the tracking issue after a completed run")

	return cobraCmd
}

// runConfigWithGitDetection handles config creation with git auto-detection
func runConfigWithGitDetection(configFile, org, repo, issueOrg, issueRepo string, issueNumber int, closeIssue, closeIssueSet bool, loadConfig func(string) (*cfg.Config, error), saveConfig func(string, *cfg.Config) error) error {
	config, isUpdate := loadOrCreateConfig(configFile, loadConfig)

	if org != "" {
		config.Org = org
	}
	if repo != "" {
		config.Repo = repo
	}
	if issueOrg != "" {
		config.IssueOrg = issueOrg
	}
	if issueRepo != "" {
		config.IssueRepo = issueRepo
	}
	if issueNumber > 0 {
		config.IssueNumber = issueNumber
	}
	if closeIssueSet {
		config.CloseIssue = closeIssue
	}

	// Try git detection for still-missing target coordinates
	if config.Org == "" || config.Repo == "" {
		if detectedOrg, detectedRepo, err := detectGitRepo(); err == nil {
			if config.Org == "" {
				config.Org = detectedOrg
				slog.Info("Auto-detected organization", "org", detectedOrg)
			}
			if config.Repo == "" {
				config.Repo = detectedRepo
				slog.Info("Auto-detected repository", "repo", detectedRepo)
			}
		}
	}

	if config.Org == "" {
		return fmt.Errorf("organization is required (use --org flag or run from a git repository)")
	}
	if config.Repo == "" {
		return fmt.Errorf("repository is required (use --repo flag or run from a git repository)")
	}

	if err := saveConfig(configFile, config); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	displayConfigSuccess(configFile, config, isUpdate)
	return nil
}

// displayConfigSuccess shows the configuration success message
func displayConfigSuccess(configFile string, config *cfg.Config, isUpdate bool) {
	action := "initialized"
	if isUpdate {
		action = "updated"
	}
	fmt.Printf("Successfully %s %s with:\n", action, configFile)
	fmt.Printf("  Organization: %s\n", config.Org)
	fmt.Printf("  Repository: %s\n", config.Repo)

	issueOrg := config.IssueOrg
	if issueOrg == "" {
		issueOrg = config.Org
	}
	issueRepo := config.IssueRepo
	if issueRepo == "" {
		issueRepo = config.Repo
	}
	if config.IssueNumber > 0 {
		fmt.Printf("  Tracking Issue: %s/%s#%d\n", issueOrg, issueRepo, config.IssueNumber)
	} else {
		fmt.Printf("  Tracking Issue: %s/%s (number from flags or environment)\n", issueOrg, issueRepo)
	}
	fmt.Printf("  Close Issue: %t\n", config.CloseIssue)
}

// loadOrCreateConfig loads existing config or creates a new one
func loadOrCreateConfig(configFile string, loadConfig func(string) (*cfg.Config, error)) (*cfg.Config, bool) {
	if config, err := loadConfig(configFile); err == nil {
		// File exists and was loaded successfully
		return config, true
	}

	// File doesn't exist or couldn't be loaded, create new config
	return &cfg.Config{}, false
}

// detectGitRepo attempts to detect the org and repo from the git remote origin
func detectGitRepo() (string, string, error) {
	if !isGitRepository() {
		return "", "", fmt.Errorf("not in a git repository")
	}

	gitCmd := exec.Command("git", "remote", "get-url", "origin")
	output, err := gitCmd.Output()
	if err != nil {
		return "", "", fmt.Errorf("failed to read git remote: %w", err)
	}

	return parseRemoteURL(strings.TrimSpace(string(output)))
}

// isGitRepository checks if current directory is in a git repository
func isGitRepository() bool {
	gitCmd := exec.Command("git", "rev-parse", "--git-dir")
	return gitCmd.Run() == nil
}

// parseRemoteURL extracts org and repo from various GitHub URL formats
func parseRemoteURL(remoteURL string) (string, string, error) {
	// Handle SSH format: git@github.com:org/repo.git
	sshRegex := regexp.MustCompile(`git@github\.com:([^/]+)/([^/]+?)(?:\.git)?$`)
	if matches := sshRegex.FindStringSubmatch(remoteURL); len(matches) == 3 {
		return matches[1], matches[2], nil
	}

	// Handle HTTPS format: https://github.com/org/repo.git
	httpsRegex := regexp.MustCompile(`https://github\.com/([^/]+)/([^/]+?)(?:\.git)?/?$`)
	if matches := httpsRegex.FindStringSubmatch(remoteURL); len(matches) == 3 {
		return matches[1], matches[2], nil
	}

	return "", "", fmt.Errorf("unable to parse GitHub remote URL: %s", remoteURL)
}
