// Package resolve implements the resolve command that reports repository
// admins on a tracking issue.
package resolve

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/alan/repo-admins/internal/config"
	"github.com/alan/repo-admins/internal/github"
	"github.com/alan/repo-admins/internal/params"
	"github.com/alan/repo-admins/internal/report"
	"github.com/alan/repo-admins/internal/resolver"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// queryFlags holds the flag values for one invocation
type queryFlags struct {
	org           string
	repo          string
	issueOrg      string
	issueRepo     string
	issueNumber   int
	actor         string
	closeIssue    bool
	closeIssueSet bool
}

// NewResolveCmd creates and returns the resolve command
func NewResolveCmd(globalConfigFile *string, loadConfig func(string) (*config.Config, error)) *cobra.Command {
	flags := &queryFlags{}

	cobraCmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve repository admins and report them on the tracking issue",
		Long: `Resolve merges direct admin collaborators with admin-team members into a
deduplicated admin set, posts the result (or any failure) as a comment on the
tracking issue, and optionally closes that issue.

Requires REPO_ADMINS_ADMIN_TOKEN (admin-scoped) to be set. Comments are posted
with REPO_ADMINS_COMMENT_TOKEN when set, otherwise with the admin token.`,
		SilenceUsage: true,
		RunE: func(cobraCmd *cobra.Command, _ []string) error {
			flags.closeIssueSet = cobraCmd.Flags().Changed("close-issue")

			query, actor, source, err := buildQuery(*globalConfigFile, loadConfig, flags)
			if err != nil {
				return err
			}

			return runResolve(cobraCmd.Context(), query, actor, source)
		},
	}

	cobraCmd.Flags().StringVarP(&flags.org, "org", "o", "", "GitHub organization of the target repository")
	cobraCmd.Flags().StringVarP(&flags.repo, "repo", "r", "", "Target repository name")
	cobraCmd.Flags().StringVar(&flags.issueOrg, "issue-org", "", "Organization of the tracking issue (defaults to --org)")
	cobraCmd.Flags().StringVar(&flags.issueRepo, "issue-repo", "", "Repository of the tracking issue (defaults to --repo)")
	cobraCmd.Flags().IntVarP(&flags.issueNumber, "issue-number", "n", 0, "Tracking issue number")
	cobraCmd.Flags().StringVarP(&flags.actor, "actor", "a", "", "Login of the user who triggered the run, mentioned in every comment")
	cobraCmd.Flags().BoolVar(&flags.closeIssue, "close-issue", false, "Close the tracking issue after a completed run")

	return cobraCmd
}

// buildQuery merges flags, environment parameters, and configuration-file
// defaults (flags win, then environment, then file) into the resolution query
func buildQuery(configFile string, loadConfig func(string) (*config.Config, error), flags *queryFlags) (resolver.Query, string, *params.Source, error) {
	// The defaults file is optional; flags and environment can cover everything
	defaults := map[string]string{}
	if cfg, err := loadConfig(configFile); err == nil {
		if cfg.Org != "" {
			defaults["org"] = cfg.Org
		}
		if cfg.Repo != "" {
			defaults["repo"] = cfg.Repo
		}
		if cfg.IssueOrg != "" {
			defaults["issue-org"] = cfg.IssueOrg
		}
		if cfg.IssueRepo != "" {
			defaults["issue-repo"] = cfg.IssueRepo
		}
		if cfg.IssueNumber != 0 {
			defaults["issue-number"] = strconv.Itoa(cfg.IssueNumber)
		}
		defaults["close-issue"] = strconv.FormatBool(cfg.CloseIssue)
	}

	source := params.New(defaults)
	source.Override("org", flags.org)
	source.Override("repo", flags.repo)
	source.Override("issue-org", flags.issueOrg)
	source.Override("issue-repo", flags.issueRepo)
	source.Override("actor", flags.actor)
	if flags.issueNumber > 0 {
		source.Override("issue-number", strconv.Itoa(flags.issueNumber))
	}
	if flags.closeIssueSet {
		source.Override("close-issue", strconv.FormatBool(flags.closeIssue))
	}

	org, err := source.Required("org")
	if err != nil {
		return resolver.Query{}, "", nil, err
	}

	repo, err := source.Required("repo")
	if err != nil {
		return resolver.Query{}, "", nil, err
	}

	issueNumber, err := source.RequiredInt("issue-number")
	if err != nil {
		return resolver.Query{}, "", nil, err
	}

	actor, err := source.Required("actor")
	if err != nil {
		return resolver.Query{}, "", nil, err
	}

	query := resolver.Query{
		Org:                    org,
		TargetRepo:             repo,
		IssueOrg:               source.Optional("issue-org", org),
		IssueRepo:              source.Optional("issue-repo", repo),
		IssueNumber:            issueNumber,
		CloseIssueOnCompletion: source.Bool("close-issue"),
	}

	return query, actor, source, nil
}

// runResolve builds the two API clients, runs the resolution pipeline, and
// reports the result on the tracking issue. A non-success terminal outcome is
// returned as an error so the process exits non-zero alongside the comment.
func runResolve(ctx context.Context, query resolver.Query, actor string, source *params.Source) error {
	adminToken, err := source.Required("admin-token")
	if err != nil {
		return err
	}
	commentToken := source.Optional("comment-token", adminToken)

	adminClient := github.NewClient(ctx, adminToken)
	commentClient := adminClient
	if commentToken != adminToken {
		commentClient = github.NewClient(ctx, commentToken)
	}

	slog.Info("resolving repository admins",
		"org", query.Org,
		"repo", query.TargetRepo,
		"issue", fmt.Sprintf("%s/%s#%d", query.IssueOrg, query.IssueRepo, query.IssueNumber))

	result := resolver.Resolve(ctx, adminClient, query)

	if err := report.Report(ctx, commentClient, query, actor, result); err != nil {
		return err
	}

	printStatus(result)

	if !result.Succeeded() {
		return fmt.Errorf("admin resolution did not succeed: %s", describeOutcome(result.Outcome))
	}

	return nil
}

// printStatus prints a short colored summary to the terminal
func printStatus(result resolver.Result) {
	for _, failure := range result.TeamFailures {
		fmt.Printf("%s member lookup failed for team %q\n", color.YellowString("⚠"), failure.TeamName)
	}

	if result.Succeeded() {
		fmt.Printf("%s resolved %d admin(s)\n", color.GreenString("✓"), len(result.Outcome.Emails))
		return
	}

	fmt.Printf("%s %s\n", color.RedString("✗"), describeOutcome(result.Outcome))
}

// describeOutcome summarizes a terminal outcome for terminal output and the
// process error
func describeOutcome(outcome resolver.Outcome) string {
	switch outcome.Kind {
	case resolver.OutcomeRepoNotFound:
		return "target repository not found"
	case resolver.OutcomeVerificationError:
		return "repository verification failed: " + outcome.Message
	case resolver.OutcomeCollaboratorLookupError:
		return "direct admin lookup failed: " + outcome.Message
	case resolver.OutcomeTeamLookupError:
		return "team lookup failed: " + outcome.Message
	case resolver.OutcomeNoAdminsFound:
		return "no admins found"
	}
	return string(outcome.Kind)
}
