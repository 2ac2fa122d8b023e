package resolve

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alan/repo-admins/internal/config"
	"github.com/alan/repo-admins/internal/resolver"
)

func noConfig(string) (*config.Config, error) {
	return nil, fmt.Errorf("config not found")
}

func TestNewResolveCmd(t *testing.T) {
	configFile := "repo-admins.yaml"
	cobraCmd := NewResolveCmd(&configFile, noConfig)

	if cobraCmd.Use != "resolve" {
		t.Errorf("NewResolveCmd() Use = %v, want %v", cobraCmd.Use, "resolve")
	}

	for _, flag := range []string{"org", "repo", "issue-org", "issue-repo", "issue-number", "actor", "close-issue"} {
		if cobraCmd.Flags().Lookup(flag) == nil {
			t.Errorf("NewResolveCmd() missing flag %q", flag)
		}
	}
}

func TestBuildQuery_FromFlags(t *testing.T) {
	flags := &queryFlags{
		org:         "acme",
		repo:        "widgets",
		issueNumber: 42,
		actor:       "octocat",
	}

	query, actor, source, err := buildQuery("repo-admins.yaml", noConfig, flags)
	require.NoError(t, err)

	assert.Equal(t, "acme", query.Org)
	assert.Equal(t, "widgets", query.TargetRepo)
	assert.Equal(t, "acme", query.IssueOrg, "issue org defaults to the target org")
	assert.Equal(t, "widgets", query.IssueRepo, "issue repo defaults to the target repo")
	assert.Equal(t, 42, query.IssueNumber)
	assert.False(t, query.CloseIssueOnCompletion)
	assert.Equal(t, "octocat", actor)
	assert.NotNil(t, source)
}

func TestBuildQuery_CrossRepoTracking(t *testing.T) {
	flags := &queryFlags{
		org:         "acme",
		repo:        "widgets",
		issueOrg:    "acme-infra",
		issueRepo:   "requests",
		issueNumber: 7,
		actor:       "octocat",
	}

	query, _, _, err := buildQuery("repo-admins.yaml", noConfig, flags)
	require.NoError(t, err)

	assert.Equal(t, "acme-infra", query.IssueOrg)
	assert.Equal(t, "requests", query.IssueRepo)
}

func TestBuildQuery_MissingOrg(t *testing.T) {
	flags := &queryFlags{repo: "widgets", issueNumber: 42, actor: "octocat"}

	_, _, _, err := buildQuery("repo-admins.yaml", noConfig, flags)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "REPO_ADMINS_ORG")
}

func TestBuildQuery_MissingActor(t *testing.T) {
	flags := &queryFlags{org: "acme", repo: "widgets", issueNumber: 42}

	_, _, _, err := buildQuery("repo-admins.yaml", noConfig, flags)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "REPO_ADMINS_ACTOR")
}

func TestBuildQuery_ConfigDefaults(t *testing.T) {
	loadConfig := func(string) (*config.Config, error) {
		return &config.Config{
			Org:         "acme",
			Repo:        "widgets",
			IssueOrg:    "acme-infra",
			IssueRepo:   "requests",
			IssueNumber: 7,
			CloseIssue:  true,
		}, nil
	}

	query, actor, _, err := buildQuery("repo-admins.yaml", loadConfig, &queryFlags{actor: "octocat"})
	require.NoError(t, err)

	assert.Equal(t, "acme", query.Org)
	assert.Equal(t, "widgets", query.TargetRepo)
	assert.Equal(t, "acme-infra", query.IssueOrg)
	assert.Equal(t, "requests", query.IssueRepo)
	assert.Equal(t, 7, query.IssueNumber)
	assert.True(t, query.CloseIssueOnCompletion)
	assert.Equal(t, "octocat", actor)
}

func TestBuildQuery_FlagsOverrideConfig(t *testing.T) {
	loadConfig := func(string) (*config.Config, error) {
		return &config.Config{
			Org:         "acme",
			Repo:        "widgets",
			IssueNumber: 7,
			CloseIssue:  true,
		}, nil
	}

	flags := &queryFlags{
		repo:          "gadgets",
		issueNumber:   99,
		actor:         "octocat",
		closeIssue:    false,
		closeIssueSet: true,
	}

	query, _, _, err := buildQuery("repo-admins.yaml", loadConfig, flags)
	require.NoError(t, err)

	assert.Equal(t, "gadgets", query.TargetRepo)
	assert.Equal(t, 99, query.IssueNumber)
	assert.False(t, query.CloseIssueOnCompletion, "an explicit --close-issue=false beats the config default")
}

func TestBuildQuery_EnvironmentFillsGaps(t *testing.T) {
	t.Setenv("REPO_ADMINS_ORG", "env-org")
	t.Setenv("REPO_ADMINS_ACTOR", " octocat ")

	flags := &queryFlags{repo: "widgets", issueNumber: 42}

	query, actor, _, err := buildQuery("repo-admins.yaml", noConfig, flags)
	require.NoError(t, err)

	assert.Equal(t, "env-org", query.Org)
	assert.Equal(t, "octocat", actor, "actor value is trimmed")
}

func TestDescribeOutcome(t *testing.T) {
	tests := []struct {
		outcome resolver.Outcome
		want    string
	}{
		{resolver.Outcome{Kind: resolver.OutcomeRepoNotFound}, "target repository not found"},
		{resolver.Outcome{Kind: resolver.OutcomeVerificationError, Message: "boom"}, "repository verification failed: boom"},
		{resolver.Outcome{Kind: resolver.OutcomeCollaboratorLookupError, Message: "boom"}, "direct admin lookup failed: boom"},
		{resolver.Outcome{Kind: resolver.OutcomeTeamLookupError, Message: "boom"}, "team lookup failed: boom"},
		{resolver.Outcome{Kind: resolver.OutcomeNoAdminsFound}, "no admins found"},
	}

	for _, tt := range tests {
		t.Run(string(tt.outcome.Kind), func(t *testing.T) {
			if got := describeOutcome(tt.outcome); got != tt.want {
				t.Errorf("describeOutcome() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRunResolve_MissingAdminToken(t *testing.T) {
	flags := &queryFlags{org: "acme", repo: "widgets", issueNumber: 42, actor: "octocat"}

	query, actor, source, err := buildQuery("repo-admins.yaml", noConfig, flags)
	require.NoError(t, err)

	err = runResolve(context.Background(), query, actor, source)

	require.Error(t, err)
	if !strings.Contains(err.Error(), "REPO_ADMINS_ADMIN_TOKEN") {
		t.Errorf("runResolve() error = %v, want error naming the admin token variable", err)
	}
}
